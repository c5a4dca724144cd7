package dto

import (
	"time"

	"github.com/amirhossein-jamali/balance-app/internal/domain/entity"
	"github.com/amirhossein-jamali/balance-app/internal/domain/port/remote"
)

// LoginRequest is the demo username/password pair
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// FederatedLoginRequest carries the identity token issued by the federated provider
type FederatedLoginRequest struct {
	Credential string `json:"credential" binding:"required"`
}

// BackupResponse describes the backup credential without its secret token
type BackupResponse struct {
	Configured   bool       `json:"configured"`
	DocumentID   string     `json:"documentId,omitempty"`
	AutoSync     bool       `json:"autoSync"`
	LastSyncTime *time.Time `json:"lastSyncTime,omitempty"`
}

// AccountResponse is the signed-in identity
type AccountResponse struct {
	ID       string         `json:"id"`
	Username string         `json:"username,omitempty"`
	Name     string         `json:"name,omitempty"`
	Email    string         `json:"email,omitempty"`
	Picture  string         `json:"picture,omitempty"`
	Provider string         `json:"provider"`
	Backup   BackupResponse `json:"backup"`
}

// SessionResponse is the session state polled by the UI
type SessionResponse struct {
	Authenticated bool             `json:"authenticated"`
	Account       *AccountResponse `json:"account,omitempty"`
	Error         string           `json:"error,omitempty"`
}

// BackupSettingsRequest is a partial update of the backup credential
type BackupSettingsRequest struct {
	Token      *string `json:"token"`
	DocumentID *string `json:"documentId"`
	AutoSync   *bool   `json:"autoSync"`
}

// TokenValidationResponse reports the outcome of a token probe
type TokenValidationResponse struct {
	Valid bool `json:"valid"`
}

// BackupDocumentResponse is one backup document found in the remote store
type BackupDocumentResponse struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToAccountResponse maps an account; nil stays nil
func ToAccountResponse(account *entity.Account) *AccountResponse {
	if account == nil {
		return nil
	}
	return &AccountResponse{
		ID:       account.ID,
		Username: account.Username,
		Name:     account.Name,
		Email:    account.Email,
		Picture:  account.Picture,
		Provider: string(account.Provider),
		Backup: BackupResponse{
			Configured:   account.Backup.IsConfigured(),
			DocumentID:   account.Backup.DocumentID,
			AutoSync:     account.Backup.AutoSync,
			LastSyncTime: account.Backup.LastSyncTime,
		},
	}
}

// ToUpdate converts the request into a credential overlay
func (r BackupSettingsRequest) ToUpdate() entity.BackupCredentialUpdate {
	return entity.BackupCredentialUpdate{
		Token:      r.Token,
		DocumentID: r.DocumentID,
		AutoSync:   r.AutoSync,
	}
}

// ToBackupDocumentResponses maps remote summaries
func ToBackupDocumentResponses(docs []remote.DocumentSummary) []BackupDocumentResponse {
	out := make([]BackupDocumentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, BackupDocumentResponse{
			ID:          doc.ID,
			Description: doc.Description,
			UpdatedAt:   doc.UpdatedAt,
		})
	}
	return out
}
