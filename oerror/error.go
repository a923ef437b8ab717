package oerror

import "fmt"

// XPBDError is the error type returned by every package in this module.
type XPBDError struct {
	Err string
}

// New formats a new XPBDError. Arguments are handled in the manner of fmt.Sprintf.
func New(format string, args ...any) *XPBDError {
	if len(args) == 0 {
		return &XPBDError{Err: format}
	}
	return &XPBDError{Err: fmt.Sprintf(format, args...)}
}

func (e *XPBDError) Error() string {
	return e.Err
}
