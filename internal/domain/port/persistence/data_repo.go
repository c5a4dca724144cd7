package persistence

import (
	"context"

	"github.com/amirhossein-jamali/balance-app/internal/domain/entity"
)

// DataRepository persists the card, transaction and settings partition
type DataRepository interface {
	// Load returns the stored data set, or an empty one with default settings
	// when nothing has been saved yet
	//
	// Possible errors:
	// - ErrPersistence: If the local store cannot be read
	Load(ctx context.Context) (*entity.DataState, error)

	// Save replaces the whole partition atomically
	// Either every card, transaction and the settings row are written, or nothing is
	//
	// Possible errors:
	// - ErrPersistence: If the local store cannot be written
	Save(ctx context.Context, state *entity.DataState) error

	// Clear removes the partition
	Clear(ctx context.Context) error
}
