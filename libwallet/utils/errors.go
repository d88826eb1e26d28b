package utils

import (
	"context"
	stderrors "errors"

	"decred.org/dcrwallet/v2/errors"
	"github.com/asdine/storm"
)

const (
	// Error Codes
	ErrInvalid              = "invalid"
	ErrExist                = "exists"
	ErrNotExist             = "not_exists"
	ErrUnavailable          = "unavailable"
	ErrFetchFailed          = "fetch_failed"
	ErrNotConnected         = "not_connected"
	ErrContextCanceled      = "context_canceled"
	ErrFederationRequired   = "federation_required"
	ErrBackendDatabaseInUse = "backend_db_in_use"
	ErrListenerAlreadyExist = "listener_already_exist"
)

var (
	ErrNoFederation    = errors.New(ErrFederationRequired)
	ErrEmptyResponse   = errors.New("empty response from backend")
	ErrUnknownCurrency = errors.New("unknown currency code")
)

// TranslateError maps a typed wallet error to one of the error codes above.
// Errors that have no code are returned unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	if err == storm.ErrNotFound {
		return errors.New(ErrNotExist)
	}
	if stderrors.Is(err, context.Canceled) {
		return errors.New(ErrContextCanceled)
	}
	if err, ok := err.(*errors.Error); ok {
		switch err.Kind {
		case errors.Invalid:
			return errors.New(ErrInvalid)
		case errors.Exist:
			return errors.New(ErrExist)
		case errors.NotExist:
			return errors.New(ErrNotExist)
		case errors.IO:
			return errors.New(ErrFetchFailed)
		case errors.Bug:
			return errors.New(ErrUnavailable)
		}
		if err.Err != nil {
			return TranslateError(err.Err)
		}
	}
	return err
}
