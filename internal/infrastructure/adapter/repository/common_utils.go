package repository

import (
	"fmt"
	"strings"

	coreport "github.com/amirhossein-jamali/balance-app/internal/domain/port/core"
	"github.com/amirhossein-jamali/balance-app/internal/infrastructure/adapter/database"
)

// ErrorType represents the type of database error that occurred
type ErrorType string

const (
	DuplicateKeyError ErrorType = "duplicate_key"
	TransientError    ErrorType = "transient"
	LockError         ErrorType = "lock"
	ConnectionError   ErrorType = "connection"
	ConstraintError   ErrorType = "constraint"
	SchemaError       ErrorType = "schema"
	UnknownError      ErrorType = "unknown"
)

// ErrorClassifier provides methods to classify database errors
type ErrorClassifier struct{}

// NewErrorClassifier creates a new ErrorClassifier
func NewErrorClassifier() *ErrorClassifier {
	return &ErrorClassifier{}
}

// Classify returns the type of error
func (c *ErrorClassifier) Classify(err error) ErrorType {
	switch {
	case err == nil:
		return ""
	case c.IsDuplicateKeyError(err):
		return DuplicateKeyError
	case c.IsLockError(err):
		return LockError
	case c.IsSchemaError(err):
		return SchemaError
	case c.IsTransientError(err):
		return TransientError
	case c.IsConnectionError(err):
		return ConnectionError
	case c.IsConstraintError(err):
		return ConstraintError
	default:
		return UnknownError
	}
}

// IsDuplicateKeyError checks if the error is a duplicate key error
func (c *ErrorClassifier) IsDuplicateKeyError(err error) bool {
	return containsAny(err, "duplicate key", "UNIQUE constraint", "Duplicate entry")
}

// IsTransientError checks if an error is transient and can be retried
func (c *ErrorClassifier) IsTransientError(err error) bool {
	return containsAny(err,
		"connection reset",
		"connection refused",
		"timeout",
		"deadline exceeded",
		"server closed",
		"broken pipe",
	)
}

// IsLockError checks if the error is due to locking
func (c *ErrorClassifier) IsLockError(err error) bool {
	return containsAny(err,
		"database is locked",
		"database table is locked",
		"deadlock",
		"lock wait timeout",
		"could not serialize access",
	)
}

// IsSchemaError checks if the store has not been migrated
func (c *ErrorClassifier) IsSchemaError(err error) bool {
	return containsAny(err, "no such table", "no such column", "does not exist")
}

// IsConnectionError checks if the error is related to database connectivity
func (c *ErrorClassifier) IsConnectionError(err error) bool {
	return containsAny(err, "connection", "dial", "unable to open database", "sql: database is closed")
}

// IsConstraintError checks if the error is related to constraint violations
func (c *ErrorClassifier) IsConstraintError(err error) bool {
	return containsAny(err, "constraint", "violates", "foreign key", "NOT NULL")
}

func containsAny(err error, needles ...string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, needle := range needles {
		if strings.Contains(msg, needle) {
			return true
		}
	}
	return false
}

// storeBase holds what every partition repository shares
type storeBase struct {
	manager         *database.Manager
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
	partition       database.Partition
}

func newStoreBase(manager *database.Manager, logger coreport.Logger, partition database.Partition) storeBase {
	return storeBase{
		manager:         manager,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
		partition:       partition,
	}
}

// handleDatabaseError logs a failed operation and maps it to a domain error
func (b storeBase) handleDatabaseError(operation string, err error) error {
	b.logger.Error(fmt.Sprintf("Database error when %s %s", operation, b.partition), map[string]any{
		"partition":  string(b.partition),
		"error":      err.Error(),
		"error_type": string(b.errorClassifier.Classify(err)),
	})
	return b.manager.GetErrorMapper().MapError(err, b.partition, operation)
}
