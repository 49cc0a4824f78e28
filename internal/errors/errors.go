package errors

import (
	"errors"
	"strings"
)

// KitError is the error type returned by dbtestkit for conditions it
// detects itself. Errors from the underlying drivers are wrapped as the
// cause and never retried or recovered.
type KitError struct {
	Code    string
	Message string
	cause   error
}

func (e *KitError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *KitError) Unwrap() error {
	return e.cause
}

func (e *KitError) Is(target error) bool {
	if t, ok := target.(*KitError); ok {
		return e.Code == t.Code
	}
	return false
}

var (
	ErrUnknownDriver     = &KitError{Code: "T1001", Message: "Unknown database driver"}
	ErrDriverMismatch    = &KitError{Code: "T1002", Message: "Resolved driver does not match EXPECT_DB_DRIVER"}
	ErrUnknownSubscriber = &KitError{Code: "T1003", Message: "Unknown event subscriber"}
	ErrSetupFailed       = &KitError{Code: "T1004", Message: "Test database setup failed"}
	ErrConnectionFailed  = &KitError{Code: "T1005", Message: "Database not reachable"}
	ErrInvalidConfig     = &KitError{Code: "T1006", Message: "Invalid configuration"}
)

func NewKitError(code, message string, cause error) *KitError {
	return &KitError{Code: code, Message: message, cause: cause}
}

func WrapKitError(sentinel *KitError, cause error) *KitError {
	return &KitError{Code: sentinel.Code, Message: sentinel.Message, cause: cause}
}

// WrapWithMessage keeps the sentinel's code but replaces the message, so
// callers can attach expected/actual detail while errors.Is still matches.
func WrapWithMessage(sentinel *KitError, message string, cause error) *KitError {
	return &KitError{Code: sentinel.Code, Message: message, cause: cause}
}

func IsUnknownDriver(err error) bool {
	return errors.Is(err, ErrUnknownDriver)
}

func IsDriverMismatch(err error) bool {
	return errors.Is(err, ErrDriverMismatch)
}

func IsUnknownSubscriber(err error) bool {
	return errors.Is(err, ErrUnknownSubscriber)
}

func IsSetupFailure(err error) bool {
	return errors.Is(err, ErrSetupFailed)
}

func IsConnectionFailed(err error) bool {
	if errors.Is(err, ErrConnectionFailed) {
		return true
	}
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "network is unreachable")
}
