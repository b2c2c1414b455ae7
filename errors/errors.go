// Package errors provides the coded error type shared by every package of the
// docking engine. Merge, geometry and efficiency failures carry a Code so that
// callers can tell a per-pose failure from a fatal one without string matching.
package errors

import (
	"errors"
	"fmt"
)

// Code identifies a failure category.
type Code string

func (c Code) String() string {
	return string(c)
}

const (
	CodeOK                    Code = "OK"
	CodeUnknown               Code = "UNKNOWN"
	CodeInternal              Code = "INTERNAL"
	CodeInvalidParam          Code = "INVALID_PARAM"
	CodeNotFound              Code = "NOT_FOUND"
	CodeGeometry              Code = "GEOMETRY"
	CodeConnectivityIntegrity Code = "CONNECTIVITY_INTEGRITY"
	CodeSerialOverflow        Code = "SERIAL_OVERFLOW"
	CodeRecordFormat          Code = "RECORD_FORMAT"
	CodeDescriptorUnavailable Code = "DESCRIPTOR_UNAVAILABLE"
	CodeEfficiency            Code = "EFFICIENCY_COMPUTATION"
	CodeInteractionDetection  Code = "INTERACTION_DETECTION"
	CodeTimeout               Code = "TIMEOUT"
	CodeExternalTool          Code = "EXTERNAL_TOOL"
)

// AppError is the error type returned across package boundaries.
type AppError struct {
	Code    Code
	Message string
	Detail  string
	Cause   error
}

// Error formats as "[CODE] message: detail: cause", omitting empty parts.
func (e *AppError) Error() string {
	s := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Detail != "" {
		s += ": " + e.Detail
	}
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetail returns a copy of e with Detail set.
func (e *AppError) WithDetail(detail string) *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Detail = detail
	return &clone
}

// WithDetailf is WithDetail with a format string.
func (e *AppError) WithDetailf(format string, args ...interface{}) *AppError {
	return e.WithDetail(fmt.Sprintf(format, args...))
}

// New constructs an AppError without an underlying cause.
func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap attaches code and message to err. A nil err yields nil.
// With CodeUnknown the code of an AppError already in the chain is kept.
func Wrap(err error, code Code, message string) *AppError {
	if err == nil {
		return nil
	}
	if code == CodeUnknown {
		var ae *AppError
		if errors.As(err, &ae) {
			code = ae.Code
		}
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// IsCode reports whether any AppError in err's chain has the given code.
func IsCode(err error, code Code) bool {
	var ae *AppError
	for err != nil {
		if errors.As(err, &ae) {
			if ae.Code == code {
				return true
			}
			err = ae.Cause
			continue
		}
		return false
	}
	return false
}

// GetCode returns the code of the first AppError in err's chain.
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeUnknown
}

// Is and As re-export the standard library helpers so callers need one import.
func Is(err, target error) bool { return errors.Is(err, target) }

func As(err error, target interface{}) bool { return errors.As(err, target) }
