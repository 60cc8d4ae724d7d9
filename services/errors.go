package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type AppError struct {
	HTTPCode int
	Message  string
	Data     interface{}
	Err      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newAppError(httpCode int, message string, err error) *AppError {
	return &AppError{HTTPCode: httpCode, Message: message, Err: err}
}

func newAppErrorWithData(httpCode int, message string, data interface{}, err error) *AppError {
	return &AppError{HTTPCode: httpCode, Message: message, Data: data, Err: err}
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// isDuplicateKey reports whether the store's unique constraint rejected a
// write. The pre-insert duplicate checks are only an early user-facing error;
// this is the actual serialization point for racing creates.
func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
