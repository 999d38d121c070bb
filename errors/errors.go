package errors

import (
	goerrors "errors"
	"fmt"
)

type AppError struct {
	Code Code
	Op   string
	Err  error
}

func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Op, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func WrapWithCode(code Code, op string, err error) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Code: code,
		Op:   op,
		Err:  err,
	}
}

// New builds an AppError without an underlying cause.
func New(code Code, op string, msg string) error {
	return &AppError{
		Code: code,
		Op:   op,
		Err:  goerrors.New(msg),
	}
}

// CodeOf extracts the Code from an error chain, or "" if none.
func CodeOf(err error) Code {
	var appErr *AppError
	if goerrors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
