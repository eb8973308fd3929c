package main

import (
	"errors"
	"fmt"
)

// ConfigurationError rejects a configuration value before any sampling happens.
type ConfigurationError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// SamplingError means a metric could not be read from the host.
type SamplingError struct {
	Metric MetricKind
	Err    error
}

func (e *SamplingError) Error() string {
	return fmt.Sprintf("sampling %s: %v", e.Metric, e.Err)
}

func (e *SamplingError) Unwrap() error {
	return e.Err
}

// PersistenceError means an output file could not be written.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

const (
	exitOK          = 0
	exitFailure     = 1
	exitConfig      = 2
	exitSampling    = 3
	exitPersistence = 4
)

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var cfgErr *ConfigurationError
	var sampleErr *SamplingError
	var persistErr *PersistenceError
	switch {
	case errors.As(err, &cfgErr):
		return exitConfig
	case errors.As(err, &sampleErr):
		return exitSampling
	case errors.As(err, &persistErr):
		return exitPersistence
	}
	return exitFailure
}
