package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/lib/pq"
)

const (
	ErrStatusInternalServer         = http.StatusInternalServerError
	ErrStatusClient                 = http.StatusBadRequest
	ErrStatusNotLoggedIn            = http.StatusUnauthorized
	ErrStatusUnauthorized           = http.StatusUnauthorized
	ErrStatusNotFound               = http.StatusNotFound
	ErrStatusEmailAlreadyUsed       = http.StatusBadRequest
	ErrStatusFileSizeExceedingLimit = http.StatusRequestEntityTooLarge
)

var (
	ErrInternalServer          = errors.New("Internal server error")
	ErrClient                  = errors.New("Bad request")
	ErrNotLoggedIn             = errors.New("Unauthorized access")
	ErrInvalidCredentialsEmail = errors.New("Email or password is incorrect")
	ErrNotFound                = errors.New("Resource not found")
	ErrProductNotFound         = fmt.Errorf("Product not found: %w", ErrNotFound)
	ErrFileNotFound            = fmt.Errorf("File not found: %w", ErrNotFound)
	ErrAccountNotFound         = errors.New("Account not found")
	ErrEmailAlreadyUsed        = errors.New("Email has already been used")
	ErrTokenExpired            = errors.New("The token is already expired")
	ErrIOFault                 = errors.New("File could not be processed")
	ErrFileSizeExceedingLimit  = errors.New("Uploaded file exceeds the size limit")
)

var errorMap = map[error]int{
	ErrInternalServer:          ErrStatusInternalServer,
	ErrInvalidCredentialsEmail: ErrStatusUnauthorized,
	ErrNotLoggedIn:             ErrStatusNotLoggedIn,
	ErrClient:                  ErrStatusClient,
	ErrNotFound:                ErrStatusNotFound,
	ErrAccountNotFound:         ErrStatusNotFound,
	ErrEmailAlreadyUsed:        ErrStatusEmailAlreadyUsed,
	ErrTokenExpired:            ErrStatusUnauthorized,
	ErrIOFault:                 ErrStatusInternalServer,
	ErrFileSizeExceedingLimit:  ErrStatusFileSizeExceedingLimit,
}

// FieldError is a single violated field of a rejected request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}

	return fmt.Sprintf("Validation failed for fields: %s", strings.Join(names, ", "))
}

// StorageError wraps a failure of the relational store. Op is the human
// readable action that failed, e.g. "Error persisting the product".
type StorageError struct {
	Op  string
	Err error
}

func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s, the most likely cause is: %s", e.Op, e.Cause())
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Cause returns the most specific description of the underlying failure.
func (e *StorageError) Cause() string {
	if e.Err == nil {
		return "unknown"
	}

	var pqErr *pq.Error
	if errors.As(e.Err, &pqErr) {
		if pqErr.Detail != "" {
			return fmt.Sprintf("%s (%s)", pqErr.Message, pqErr.Detail)
		}
		return pqErr.Message
	}

	err := e.Err
	for {
		next := errors.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}

	return err.Error()
}

func GetErrorStatusCode(err error) int {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return ErrStatusClient
	}

	var storageErr *StorageError
	if errors.As(err, &storageErr) {
		return ErrStatusInternalServer
	}

	if errStatusCode, ok := errorMap[err]; ok {
		return errStatusCode
	}

	for target, code := range errorMap {
		if errors.Is(err, target) {
			return code
		}
	}

	return errorMap[ErrInternalServer]
}
