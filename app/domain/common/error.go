package common

import (
	"errors"
	"fmt"
)

// ErrValidation tags errors caused by bad caller input so transport layers can
// map them to 400 without inspecting messages.
var ErrValidation = errors.New("validation failed")

// Error represents a standardized error with code and underlying error
type Error struct {
	Err  error  `json:"-"`
	Code string `json:"code"`
}

func NewError(err error, code string) *Error {
	return &Error{
		Err:  err,
		Code: code,
	}
}

func NewErrorWithMessage(message string, code string) *Error {
	return &Error{
		Err:  fmt.Errorf("%s", message),
		Code: code,
	}
}

func NewValidationError(message string, code string) *Error {
	return &Error{
		Err:  fmt.Errorf("%w: %s", ErrValidation, message),
		Code: code,
	}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return ""
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) GetMessage() string {
	return e.Error()
}

func (e *Error) GetCode() string {
	return e.Code
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
