package remote

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/balance-app/internal/domain/entity"
)

// DocumentSummary describes one backup document found in the remote store
type DocumentSummary struct {
	ID          string
	Description string
	UpdatedAt   time.Time
}

// RemoteUser is the profile behind a backup access token
type RemoteUser struct {
	Login string
	Name  string
	Email string
}

// BackupGateway reads and writes one snapshot document in the remote backup store.
// It holds an access token and an optional document id.
//
// Every failure of the remote store is returned as *errs.RemoteError so callers
// can branch on its kind.
type BackupGateway interface {
	// DocumentID returns the currently held document id, "" when none
	DocumentID() string

	// SaveDocument creates a document when no id is held, otherwise updates the held one.
	// The returned id is adopted by the gateway.
	SaveDocument(ctx context.Context, snapshot *entity.Snapshot) (string, error)

	// LoadDocument fetches and validates the held document
	//
	// Possible errors:
	// - ErrBackupDocumentIDMissing: If no document id is held
	// - ErrValidation: If the document is missing the snapshot file or has the wrong shape
	LoadDocument(ctx context.Context) (*entity.Snapshot, error)

	// DocumentExists probes for a document; a not-found response yields false
	DocumentExists(ctx context.Context, id string) (bool, error)

	// DeleteDocument deletes id, or the held document when id is empty.
	// The held id is cleared when it matches.
	DeleteDocument(ctx context.Context, id string) error

	// ListDocuments returns the backup documents owned by the token
	ListDocuments(ctx context.Context) ([]DocumentSummary, error)

	// ValidateToken performs a lightweight authenticated probe and never returns an error
	ValidateToken(ctx context.Context) bool

	// UserInfo returns the profile the token belongs to
	UserInfo(ctx context.Context) (*RemoteUser, error)
}

// GatewayFactory builds a gateway bound to one credential snapshot
type GatewayFactory func(token, documentID string) BackupGateway
