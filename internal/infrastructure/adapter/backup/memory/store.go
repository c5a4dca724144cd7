// Package memory is an in-process backup store for offline runs and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/amirhossein-jamali/balance-app/internal/domain/entity"
	errs "github.com/amirhossein-jamali/balance-app/internal/domain/error"
	coreport "github.com/amirhossein-jamali/balance-app/internal/domain/port/core"
	"github.com/amirhossein-jamali/balance-app/internal/domain/port/remote"
	"github.com/amirhossein-jamali/balance-app/internal/infrastructure/adapter/backup/codec"
)

// Description is set on every stored document
const Description = "Balance App - Personal Finance Data Backup (local)"

type document struct {
	owner       string
	description string
	content     []byte
	updatedAt   time.Time
}

// Store keeps encoded snapshot documents per access token
type Store struct {
	idGenerator  coreport.IDGenerator
	timeProvider coreport.TimeProvider
	logger       coreport.Logger

	mu        sync.RWMutex
	documents map[string]*document
}

// NewStore creates an empty store
func NewStore(idGenerator coreport.IDGenerator, timeProvider coreport.TimeProvider, logger coreport.Logger) *Store {
	return &Store{
		idGenerator:  idGenerator,
		timeProvider: timeProvider,
		logger:       logger,
		documents:    make(map[string]*document),
	}
}

// Factory returns a GatewayFactory over this store
func (s *Store) Factory() remote.GatewayFactory {
	return func(token, documentID string) remote.BackupGateway {
		return &Gateway{store: s, token: strings.TrimSpace(token), documentID: documentID}
	}
}

// Put stores raw document content under id for token, mostly for tests
func (s *Store) Put(token, id string, content []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[id] = &document{
		owner:       token,
		description: Description,
		content:     append([]byte(nil), content...),
		updatedAt:   s.timeProvider.Now(),
	}
}

// Len returns the number of stored documents
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}

// Gateway is one credential's view of the store
type Gateway struct {
	store *Store
	token string

	mu         sync.Mutex
	documentID string
}

func (g *Gateway) authorize(op string) error {
	if g.token == "" {
		return errs.NewRemoteError(errs.RemoteUnauthorized, 401, op, nil)
	}
	return nil
}

// owned returns the document when it exists and belongs to the token; caller holds the store lock
func (g *Gateway) owned(op, id string) (*document, error) {
	doc, ok := g.store.documents[id]
	if !ok || doc.owner != g.token {
		return nil, errs.NewRemoteError(errs.RemoteNotFound, 404, op, fmt.Errorf("document %s not found", id))
	}
	return doc, nil
}

// DocumentID returns the held document id
func (g *Gateway) DocumentID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.documentID
}

// SaveDocument creates or replaces the held document
func (g *Gateway) SaveDocument(ctx context.Context, snapshot *entity.Snapshot) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errs.NewRemoteError(errs.RemoteNetworkUnreachable, 0, "save", err)
	}
	if err := g.authorize("save"); err != nil {
		return "", err
	}

	content, err := codec.Encode(snapshot)
	if err != nil {
		return "", err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.store.mu.Lock()
	defer g.store.mu.Unlock()

	id := g.documentID
	if id == "" {
		id = g.store.idGenerator.NewID()
	} else if _, err := g.owned("update", id); err != nil {
		return "", err
	}

	g.store.documents[id] = &document{
		owner:       g.token,
		description: Description,
		content:     content,
		updatedAt:   g.store.timeProvider.Now(),
	}
	g.documentID = id

	g.store.logger.Debug("Backup document stored in memory", map[string]any{
		"document_id": id,
		"bytes":       len(content),
	})
	return id, nil
}

// LoadDocument decodes the held document
func (g *Gateway) LoadDocument(ctx context.Context) (*entity.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.NewRemoteError(errs.RemoteNetworkUnreachable, 0, "load", err)
	}
	if err := g.authorize("load"); err != nil {
		return nil, err
	}

	id := g.DocumentID()
	if id == "" {
		return nil, errs.ErrBackupDocumentIDMissing
	}

	g.store.mu.RLock()
	doc, err := g.owned("load", id)
	var content []byte
	if err == nil {
		content = append([]byte(nil), doc.content...)
	}
	g.store.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	return codec.Decode(content)
}

// DocumentExists reports whether id is stored for the token
func (g *Gateway) DocumentExists(ctx context.Context, id string) (bool, error) {
	if err := g.authorize("exists"); err != nil {
		return false, err
	}

	g.store.mu.RLock()
	defer g.store.mu.RUnlock()
	_, err := g.owned("exists", id)
	return err == nil, nil
}

// DeleteDocument removes id, or the held document when id is empty
func (g *Gateway) DeleteDocument(ctx context.Context, id string) error {
	if err := g.authorize("delete"); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if id == "" {
		id = g.documentID
	}
	if id == "" {
		return errs.ErrBackupDocumentIDMissing
	}

	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	if _, err := g.owned("delete", id); err != nil {
		return err
	}
	delete(g.store.documents, id)

	if id == g.documentID {
		g.documentID = ""
	}
	return nil
}

// ListDocuments returns the token's documents, most recently updated first
func (g *Gateway) ListDocuments(ctx context.Context) ([]remote.DocumentSummary, error) {
	if err := g.authorize("list"); err != nil {
		return nil, err
	}

	g.store.mu.RLock()
	defer g.store.mu.RUnlock()

	docs := make([]remote.DocumentSummary, 0, len(g.store.documents))
	for id, doc := range g.store.documents {
		if doc.owner != g.token {
			continue
		}
		docs = append(docs, remote.DocumentSummary{ID: id, Description: doc.description, UpdatedAt: doc.updatedAt})
	}
	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].UpdatedAt.Equal(docs[j].UpdatedAt) {
			return docs[i].UpdatedAt.After(docs[j].UpdatedAt)
		}
		return docs[i].ID < docs[j].ID
	})
	return docs, nil
}

// ValidateToken accepts any non-blank token
func (g *Gateway) ValidateToken(ctx context.Context) bool {
	return g.authorize("validate") == nil
}

// UserInfo returns a synthetic profile for the token
func (g *Gateway) UserInfo(ctx context.Context) (*remote.RemoteUser, error) {
	if err := g.authorize("user"); err != nil {
		return nil, err
	}
	return &remote.RemoteUser{Login: "local", Name: "Local backup"}, nil
}
