package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainErr "github.com/amirhossein-jamali/balance-app/internal/domain/error"
)

// Partition names the persisted partition an error came from
type Partition string

const (
	PartitionData        Partition = "data"
	PartitionAccount     Partition = "account"
	PartitionPreferences Partition = "preferences"
)

// ErrorMapper maps database errors to domain errors
type ErrorMapper struct{}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{}
}

// MapError wraps a database error in ErrPersistence with a short cause
func (m *ErrorMapper) MapError(err error, partition Partition, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return err
	}

	errMsg := strings.ToLower(err.Error())

	var cause string
	switch {
	case errors.Is(err, context.DeadlineExceeded) ||
		strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "deadline exceeded"):
		cause = "timed out"
	case strings.Contains(errMsg, "database is locked") ||
		strings.Contains(errMsg, "deadlock") ||
		strings.Contains(errMsg, "lock timeout"):
		cause = "store is locked"
	case strings.Contains(errMsg, "unique constraint") ||
		strings.Contains(errMsg, "duplicate key"):
		cause = "duplicate record"
	case strings.Contains(errMsg, "foreign key constraint") ||
		strings.Contains(errMsg, "check constraint"):
		cause = "constraint violation"
	case strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "no connection") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "unable to open database"):
		cause = "store unavailable"
	case strings.Contains(errMsg, "no such table") ||
		strings.Contains(errMsg, "does not exist"):
		cause = "schema is not migrated"
	default:
		cause = err.Error()
	}

	return fmt.Errorf("%w: %s %s: %s", domainErr.ErrPersistence, operation, partition, cause)
}
