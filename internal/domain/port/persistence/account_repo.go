package persistence

import (
	"context"

	"github.com/amirhossein-jamali/balance-app/internal/domain/entity"
)

// AccountRepository persists the account/session partition
type AccountRepository interface {
	// Load returns the stored account, or nil without error when signed out
	//
	// Possible errors:
	// - ErrPersistence: If the local store cannot be read
	Load(ctx context.Context) (*entity.Account, error)

	// Save stores the account together with its backup credential, replacing any previous one
	Save(ctx context.Context, account *entity.Account) error

	// Clear removes the partition
	Clear(ctx context.Context) error
}
