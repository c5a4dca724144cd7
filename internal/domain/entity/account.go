package entity

import (
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/balance-app/internal/domain/error"
)

// AuthProvider tags how an account signed in
type AuthProvider string

// Auth providers
const (
	ProviderDemo   AuthProvider = "demo"
	ProviderGoogle AuthProvider = "google"
)

// DemoAccountID is the fixed identifier of the demo account
const DemoAccountID = "1"

// Account is the signed-in identity together with its backup credential
type Account struct {
	ID         string
	Username   string
	Name       string
	Email      string
	Picture    string
	Provider   AuthProvider
	ExternalID string
	Backup     BackupCredential
}

// BackupCredential holds the secret token and remote document id used for sync
type BackupCredential struct {
	Token        string
	DocumentID   string
	AutoSync     bool
	LastSyncTime *time.Time
}

// IsConfigured is true iff a non-blank token is present.
// A missing document id only means the next push creates one.
func (b BackupCredential) IsConfigured() bool {
	return strings.TrimSpace(b.Token) != ""
}

// BackupCredentialUpdate is a partial update; nil fields are left untouched
type BackupCredentialUpdate struct {
	Token        *string
	DocumentID   *string
	AutoSync     *bool
	LastSyncTime *time.Time
}

// Merge returns the credential with the update applied
func (b BackupCredential) Merge(update BackupCredentialUpdate) BackupCredential {
	next := b
	if update.Token != nil {
		next.Token = strings.TrimSpace(*update.Token)
	}
	if update.DocumentID != nil {
		next.DocumentID = strings.TrimSpace(*update.DocumentID)
	}
	if update.AutoSync != nil {
		next.AutoSync = *update.AutoSync
	}
	if update.LastSyncTime != nil {
		t := *update.LastSyncTime
		next.LastSyncTime = &t
	}
	return next
}

// IsBackupConfigured reports whether the account can push to the backup store
func (a *Account) IsBackupConfigured() bool {
	return a != nil && a.Backup.IsConfigured()
}

// Clone returns a deep copy safe to hand to callers
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	c := *a
	if a.Backup.LastSyncTime != nil {
		t := *a.Backup.LastSyncTime
		c.Backup.LastSyncTime = &t
	}
	return &c
}

// NewDemoAccount creates the account for the built-in credential pair
func NewDemoAccount(username string) *Account {
	return &Account{
		ID:       DemoAccountID,
		Username: username,
		Name:     username,
		Provider: ProviderDemo,
	}
}

// FederatedIdentity is the profile decoded from a verified identity assertion
type FederatedIdentity struct {
	Subject    string
	Email      string
	Name       string
	GivenName  string
	FamilyName string
	Picture    string
}

// NewFederatedAccount maps a decoded identity onto an account
func NewFederatedAccount(identity FederatedIdentity) (*Account, error) {
	if strings.TrimSpace(identity.Subject) == "" {
		return nil, errs.ErrInvalidFederatedToken
	}

	name := strings.TrimSpace(identity.Name)
	if name == "" {
		name = strings.TrimSpace(identity.GivenName + " " + identity.FamilyName)
	}
	if name == "" {
		name = identity.Email
	}

	return &Account{
		ID:         identity.Subject,
		Username:   name,
		Name:       name,
		Email:      identity.Email,
		Picture:    identity.Picture,
		Provider:   ProviderGoogle,
		ExternalID: identity.Subject,
	}, nil
}
