package utils

import (
	"time"
)

const (
	LogFileName     = "fediwallet.log"
	DefaultLogLevel = "info"

	// UserFilePerm is the permission of directories created for the user.
	UserFilePerm = 0700

	// DefaultPageSize is the number of transactions requested per page when
	// the caller does not ask for a specific limit.
	DefaultPageSize = 20

	// SatsUnit is appended to formatted satoshi amounts.
	SatsUnit = "SATS"

	// DetailTimeFormat lays out timestamps in transaction details.
	DetailTimeFormat = "Jan 02 2006, 3:04pm"

	dateOnlyFormat = "2006-01-02"
	timeOnlyformat = "15:04:05"
)

// ExtractDateOrTime returns the date represented by the timestamp as a date string
// if the timestamp is over 24 hours ago. Otherwise, the time alone is returned as a string.
func ExtractDateOrTime(timestamp int64) string {
	utcTime := time.Unix(timestamp, 0).UTC()
	if time.Now().UTC().Sub(utcTime).Hours() > 24 {
		return utcTime.Format(dateOnlyFormat)
	}
	return utcTime.Format(timeOnlyformat)
}

// FormatDetailTime formats a unix seconds timestamp for detail views. A nil
// location formats in UTC.
func FormatDetailTime(timestamp int64, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return time.Unix(timestamp, 0).In(loc).Format(DetailTimeFormat)
}
