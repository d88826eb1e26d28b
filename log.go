// Copyright (c) 2016, 2018 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/crypto-power/fediwallet/libwallet/bridge"
	"github.com/crypto-power/fediwallet/libwallet/history"
	libutils "github.com/crypto-power/fediwallet/libwallet/utils"
	"github.com/crypto-power/fediwallet/libwallet/walletdata"
	"github.com/crypto-power/fediwallet/logger"
	"github.com/decred/slog"
	"github.com/jrick/logrotate/rotator"
)

// logWriter implements an io.Writer that outputs to both standard error and
// the write-end pipe of an initialized log rotator.
type logWriter struct{}

// Write writes the data in p to standard error and the log rotator. Standard
// output is left to the history listing.
func (logWriter) Write(p []byte) (n int, err error) {
	os.Stderr.Write(p)
	if logRotator == nil {
		return len(p), nil
	}
	return logRotator.Write(p)
}

// Loggers per subsystem.  A single backend logger is created and all subsytem
// loggers created from it will write to the backend.  When adding new
// subsystems, add the subsystem logger variable here and to the
// subsystemLoggers map.
//
// Loggers can not be used before the log rotator has been initialized with a
// log file.  This must be performed early during application startup by calling
// initLogRotator.
var (
	// backendLog is the logging backend used to create all subsystem loggers.
	backendLog = slog.NewBackend(logWriter{})

	// logRotator is one of the logging outputs.
	logRotator *rotator.Rotator

	log     = backendLog.Logger("FDWL")
	histLog = backendLog.Logger("HIST")
	brdgLog = backendLog.Logger("BRDG")
	wdatLog = backendLog.Logger("WDAT")
)

// Initialize package-global logger variables.
func init() {
	history.UseLogger(histLog)
	bridge.UseLogger(brdgLog)
	walletdata.UseLogger(wdatLog)

	logger.New(subsystemLoggers)
}

// subsystemLoggers maps each subsystem identifier to its associated logger.
var subsystemLoggers = map[string]slog.Logger{
	"FDWL": log,
	"HIST": histLog,
	"BRDG": brdgLog,
	"WDAT": wdatLog,
}

// initLogRotator initializes the logging rotater to write logs to logFile and
// create roll files in the same directory.  It must be called before the
// package-global log rotater variables are used.
func initLogRotator(logDir string, maxRolls int) {
	if logRotator != nil {
		logRotator.Close()
	}

	err := os.MkdirAll(logDir, libutils.UserFilePerm)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create log directory: %v\n", err)
		os.Exit(1)
	}

	r, err := rotator.New(filepath.Join(logDir, libutils.LogFileName), 32*1024, false, maxRolls)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create file rotator: %v\n", err)
		os.Exit(1)
	}
	logRotator = r
}

func isExistSystem(subsysID string) bool {
	_, exists := subsystemLoggers[subsysID]
	return exists
}
