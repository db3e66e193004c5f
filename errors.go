package clean

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// EMALFORMED marks pages whose expected HTML structure is missing in a way
// the traversal cannot proceed without (e.g. no table on the index page).
// Structure whose absence just means "no records available" is not an error;
// those extraction points return (value, ok) instead.
const (
	EINVALID     = "invalid"     // validation failed
	ENOTFOUND    = "not_found"   // entity does not exist
	EMALFORMED   = "malformed"   // page structure broke an assumption
	EUNAVAILABLE = "unavailable" // remote fetch failed
	EINTERNAL    = "internal"    // internal error (e.g. cache I/O)
)

// Error represents an application-specific error. Errors carry a machine
// readable code and a human readable message.
type Error struct {
	// Machine readable error code.
	Code string

	// Human readable message.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("clean error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
