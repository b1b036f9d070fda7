// Copyright The taskcal Authors.
// SPDX-License-Identifier: MIT

// Package domain defines the taskcal domain contracts: error taxonomy,
// repository interfaces and messaging interfaces.
package domain

import "errors"

// ErrorType is the semantic category of a domain error.
type ErrorType int

const (
	ErrorTypeValidation  ErrorType = iota // input validation failures
	ErrorTypeNotFound                     // missing resources
	ErrorTypeConflict                     // revision mismatches
	ErrorTypeInternal                     // everything unexpected
	ErrorTypeUnavailable                  // dependency not ready
)

// DomainError carries a semantic type alongside the message so transports can
// map it without string matching.
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// GetErrorType returns the semantic type of an error, defaulting to internal
// for errors produced outside this package.
func GetErrorType(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ErrorTypeInternal
}

func NewValidationError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeValidation, Message: message, Err: errors.Join(err...)}
}

func NewNotFoundError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeNotFound, Message: message, Err: errors.Join(err...)}
}

func NewConflictError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeConflict, Message: message, Err: errors.Join(err...)}
}

func NewInternalError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeInternal, Message: message, Err: errors.Join(err...)}
}

func NewUnavailableError(message string, err ...error) *DomainError {
	return &DomainError{Type: ErrorTypeUnavailable, Message: message, Err: errors.Join(err...)}
}
