package error

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeValidation          = 4001
	CodeInvalidAmount       = 4002
	CodeConfiguration       = 4003
	CodeAuthentication      = 4010
	CodeNotAuthenticated    = 4011
	CodeCardNotFound        = 4040
	CodeTransactionNotFound = 4041
	CodeNotFound            = 4042
	CodeSyncQueueClosed     = 4090

	// 5xxx - Server and upstream errors
	CodeInternalServer = 5000
	CodePersistence    = 5001
	CodeRemote         = 5020
)

// Base error types
var (
	// ErrValidation is returned when input or a remote snapshot is malformed
	ErrValidation = errors.New("validation failed")

	// ErrInvalidAmount is returned when an amount cannot be parsed or is out of range
	ErrInvalidAmount = fmt.Errorf("%w: invalid amount", ErrValidation)

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrCardNotFound is returned when the referenced card doesn't exist
	ErrCardNotFound = errors.New("card not found")

	// ErrTransactionNotFound is returned when the referenced transaction doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrAuth is the base for every authentication failure
	ErrAuth = errors.New("authentication failed")

	// ErrInvalidCredentials is returned when the username/password pair does not match
	ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", ErrAuth)

	// ErrInvalidFederatedToken is returned when an identity token cannot be decoded or has expired
	ErrInvalidFederatedToken = fmt.Errorf("%w: invalid identity token", ErrAuth)

	// ErrNotAuthenticated is returned when an operation needs an account and none is signed in
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNetwork is the base for every remote backup failure
	ErrNetwork = errors.New("remote backup request failed")

	// ErrConfiguration is returned when sync is attempted without a required credential
	ErrConfiguration = errors.New("backup is not configured")

	// ErrBackupTokenMissing is returned when no access token is stored for the account
	ErrBackupTokenMissing = fmt.Errorf("%w: access token is not set", ErrConfiguration)

	// ErrBackupDocumentIDMissing is returned when a pull is attempted before the first push
	ErrBackupDocumentIDMissing = fmt.Errorf("%w: backup document id is not set", ErrConfiguration)

	// ErrSyncQueueClosed is returned when sync work arrives after shutdown
	ErrSyncQueueClosed = errors.New("sync queue is not accepting work")

	// ErrPersistence is returned when the local durable store fails
	ErrPersistence = errors.New("local storage error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.Is(err, ErrConfiguration):
		return CodeConfiguration
	case errors.Is(err, ErrNotAuthenticated):
		return CodeNotAuthenticated
	case errors.Is(err, ErrAuth):
		return CodeAuthentication
	case errors.Is(err, ErrCardNotFound):
		return CodeCardNotFound
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrSyncQueueClosed):
		return CodeSyncQueueClosed
	case errors.Is(err, ErrNetwork):
		return CodeRemote
	case errors.Is(err, ErrPersistence):
		return CodePersistence
	default:
		return CodeInternalServer
	}
}

// HTTPStatus maps a domain error onto the status code the local API answers with
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotAuthenticated), errors.Is(err, ErrAuth):
		return http.StatusUnauthorized
	case IsNotFoundError(err):
		return http.StatusNotFound
	case errors.Is(err, ErrConfiguration):
		return http.StatusPreconditionFailed
	case errors.Is(err, ErrSyncQueueClosed):
		return http.StatusConflict
	case errors.Is(err, ErrNetwork):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ValidationError describes a rejected field value
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
}

// Is checks if the target error is an ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// LogFields returns a map of fields for structured logging
func (e *ValidationError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "validation_error",
		"field":      e.Field,
		"reason":     e.Reason,
		"error_code": CodeValidation,
	}
}

// NewValidationError creates a new validation error for a field
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError identifies the missing entity
type NotFoundError struct {
	Entity string
	ID     string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// Is matches the generic and the entity specific sentinel
func (e *NotFoundError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return true
	case ErrCardNotFound:
		return e.Entity == EntityCard
	case ErrTransactionNotFound:
		return e.Entity == EntityTransaction
	}
	return false
}

// LogFields returns a map of fields for structured logging
func (e *NotFoundError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "not_found",
		"entity":     e.Entity,
		"id":         e.ID,
		"error_code": ErrorCode(e),
	}
}

// Entity names used by NotFoundError
const (
	EntityCard        = "card"
	EntityTransaction = "transaction"
	EntityDocument    = "document"
)

// NewCardNotFoundError creates a not found error for a card
func NewCardNotFoundError(id string) error {
	return &NotFoundError{Entity: EntityCard, ID: id}
}

// NewTransactionNotFoundError creates a not found error for a transaction
func NewTransactionNotFoundError(id string) error {
	return &NotFoundError{Entity: EntityTransaction, ID: id}
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrCardNotFound) ||
		errors.Is(err, ErrTransactionNotFound)
}

// IsAuthError checks if the error is an authentication failure
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAuth)
}

// IsConfigurationError checks if the error is caused by missing backup credentials
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsNetworkError checks if the error came from the remote backup store
func IsNetworkError(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// WrapPersistence marks err as a local storage failure unless it already is one
func WrapPersistence(err error) error {
	if err == nil || errors.Is(err, ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}
