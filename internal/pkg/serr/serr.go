package serr

import (
	"fmt"
	"runtime/debug"
)

// ServiceError is an error that carries the HTTP status it should be reported with.
// Env holds extra key/value context that is logged but never sent to the client.
type ServiceError struct {
	Err        error
	Msg        string
	StackTrace string
	StatusCode int
	Env        map[string]string
}

func NewServiceError(err error, statusCode int, msg string, args ...any) *ServiceError {
	return &ServiceError{
		Err:        err,
		Msg:        fmt.Sprintf(msg, args...),
		StatusCode: statusCode,
		StackTrace: string(debug.Stack()),
		Env:        make(map[string]string),
	}
}

func (e *ServiceError) Error() string {
	return e.Msg
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// With adds a context value and returns the error for chaining.
func (e *ServiceError) With(key, value string) *ServiceError {
	e.Env[key] = value
	return e
}
