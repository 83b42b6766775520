// Package liberr carries the coded errors the stores and the circulation
// engine report to their callers. The core never logs; it only returns these.
package liberr

import (
	"errors"
	"fmt"
)

type ErrCode string

const (
	ErrValidation      ErrCode = "VALIDATION_ERROR"
	ErrNotFound        ErrCode = "NOT_FOUND"
	ErrNoCopies        ErrCode = "NO_COPIES_AVAILABLE"
	ErrAlreadyReturned ErrCode = "ALREADY_RETURNED"
	ErrInvariant       ErrCode = "INVARIANT_VIOLATION"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string {
	if e.msg == "" {
		return string(e.code)
	}
	return e.msg
}
func (e codedError) Code() ErrCode { return e.code }

func New(c ErrCode, msg string) error { return codedError{code: c, msg: msg} }

func Newf(c ErrCode, format string, args ...any) error {
	return codedError{code: c, msg: fmt.Sprintf(format, args...)}
}

// Code extracts the error code, or "" for uncoded errors.
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}
