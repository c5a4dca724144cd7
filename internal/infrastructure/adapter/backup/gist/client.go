// Package gist implements the backup gateway on top of the GitHub Gist REST API.
package gist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/amirhossein-jamali/balance-app/internal/domain/entity"
	errs "github.com/amirhossein-jamali/balance-app/internal/domain/error"
	coreport "github.com/amirhossein-jamali/balance-app/internal/domain/port/core"
	"github.com/amirhossein-jamali/balance-app/internal/domain/port/remote"
	"github.com/amirhossein-jamali/balance-app/internal/infrastructure/adapter/backup/codec"
	"golang.org/x/oauth2"
)

const (
	// DefaultBaseURL is the public GitHub API
	DefaultBaseURL = "https://api.github.com"
	// DefaultRequestTimeout bounds every call to the API
	DefaultRequestTimeout = 15 * coreport.Second

	// Description is set on every backup gist
	Description = "Balance App - Personal Finance Data Backup"
	// ListFilter selects backup gists by description
	ListFilter = "Balance App"

	listPageSize = 100
	maxListPages = 10
	maxErrorBody = 4 << 10
)

// Options configures the gist client
type Options struct {
	BaseURL        string
	RequestTimeout coreport.Duration
	// Transport is the base round tripper under the token transport, http.DefaultTransport when nil
	Transport http.RoundTripper
}

func (o Options) withDefaults() Options {
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = DefaultRequestTimeout
	}
	return o
}

// Client talks to the Gist API with one access token and an optional held gist id
type Client struct {
	opts       Options
	httpClient *http.Client
	// rawClient fetches truncated file content from raw_url without the token
	rawClient    *http.Client
	timeProvider coreport.TimeProvider
	logger       coreport.Logger

	mu         sync.Mutex
	documentID string
}

// NewClient creates a client bound to token and documentID
func NewClient(token, documentID string, opts Options, timeProvider coreport.TimeProvider, logger coreport.Logger) *Client {
	opts = opts.withDefaults()
	return &Client{
		opts: opts,
		httpClient: &http.Client{
			Transport: &oauth2.Transport{
				Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
				Base:   opts.Transport,
			},
		},
		rawClient:    &http.Client{Transport: opts.Transport},
		timeProvider: timeProvider,
		logger:       logger,
		documentID:   documentID,
	}
}

// NewFactory returns a GatewayFactory producing gist clients
func NewFactory(opts Options, timeProvider coreport.TimeProvider, logger coreport.Logger) remote.GatewayFactory {
	return func(token, documentID string) remote.BackupGateway {
		return NewClient(token, documentID, opts, timeProvider, logger)
	}
}

type gistFile struct {
	Content   string `json:"content"`
	Truncated bool   `json:"truncated,omitempty"`
	RawURL    string `json:"raw_url,omitempty"`
}

type gistRequest struct {
	Files       map[string]gistFile `json:"files"`
	Description string              `json:"description"`
	Public      bool                `json:"public"`
}

type gistResponse struct {
	ID          string               `json:"id"`
	Description string               `json:"description"`
	UpdatedAt   time.Time            `json:"updated_at"`
	Files       map[string]*gistFile `json:"files"`
}

type userResponse struct {
	Login string `json:"login"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type apiError struct {
	Message string `json:"message"`
}

// DocumentID returns the held gist id
func (c *Client) DocumentID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.documentID
}

func (c *Client) setDocumentID(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.documentID = id
}

// SaveDocument creates a gist when none is held, otherwise updates it
func (c *Client) SaveDocument(ctx context.Context, snapshot *entity.Snapshot) (string, error) {
	content, err := codec.Encode(snapshot)
	if err != nil {
		return "", err
	}

	body := gistRequest{
		Files:       map[string]gistFile{codec.FileName: {Content: string(content)}},
		Description: Description,
		Public:      false,
	}

	var resp gistResponse
	id := c.DocumentID()
	if id == "" {
		err = c.do(ctx, "create", http.MethodPost, "/gists", body, &resp)
	} else {
		err = c.do(ctx, "update", http.MethodPatch, "/gists/"+id, body, &resp)
	}
	if err != nil {
		return "", err
	}

	if resp.ID == "" {
		resp.ID = id
	}
	c.setDocumentID(resp.ID)

	c.logger.Info("Backup document saved", map[string]any{
		"document_id": resp.ID,
		"created":     id == "",
		"bytes":       len(content),
	})
	return resp.ID, nil
}

// LoadDocument fetches and decodes the held gist
func (c *Client) LoadDocument(ctx context.Context) (*entity.Snapshot, error) {
	id := c.DocumentID()
	if id == "" {
		return nil, errs.ErrBackupDocumentIDMissing
	}

	var resp gistResponse
	if err := c.do(ctx, "load", http.MethodGet, "/gists/"+id, nil, &resp); err != nil {
		return nil, err
	}

	file, ok := resp.Files[codec.FileName]
	if !ok || file == nil {
		return nil, errs.NewValidationError("files", "snapshot file not found in backup document")
	}

	content := []byte(file.Content)
	if file.Truncated && file.RawURL != "" {
		raw, err := c.fetchRaw(ctx, file.RawURL)
		if err != nil {
			return nil, err
		}
		content = raw
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, errs.NewValidationError("files", "snapshot file is empty")
	}

	snapshot, err := codec.Decode(content)
	if err != nil {
		c.logger.Warn("Backup document failed validation", coreport.ErrorFields(err, map[string]any{
			"document_id": id,
		}))
		return nil, err
	}
	return snapshot, nil
}

// DocumentExists probes a gist; 404 yields false
func (c *Client) DocumentExists(ctx context.Context, id string) (bool, error) {
	err := c.do(ctx, "exists", http.MethodGet, "/gists/"+id, nil, nil)
	if err == nil {
		return true, nil
	}
	if errs.RemoteErrorKindOf(err) == errs.RemoteNotFound {
		return false, nil
	}
	return false, err
}

// DeleteDocument deletes id, or the held gist when id is empty
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	held := c.DocumentID()
	if id == "" {
		id = held
	}
	if id == "" {
		return errs.ErrBackupDocumentIDMissing
	}

	if err := c.do(ctx, "delete", http.MethodDelete, "/gists/"+id, nil, nil); err != nil {
		return err
	}

	if id == held {
		c.setDocumentID("")
	}
	return nil
}

// ListDocuments returns the token owner's backup gists
func (c *Client) ListDocuments(ctx context.Context) ([]remote.DocumentSummary, error) {
	var docs []remote.DocumentSummary

	for page := 1; page <= maxListPages; page++ {
		var batch []gistResponse
		path := fmt.Sprintf("/gists?per_page=%d&page=%d", listPageSize, page)
		if err := c.do(ctx, "list", http.MethodGet, path, nil, &batch); err != nil {
			return nil, err
		}

		for _, g := range batch {
			if !strings.Contains(g.Description, ListFilter) {
				continue
			}
			docs = append(docs, remote.DocumentSummary{
				ID:          g.ID,
				Description: g.Description,
				UpdatedAt:   g.UpdatedAt,
			})
		}

		if len(batch) < listPageSize {
			break
		}
	}

	return docs, nil
}

// ValidateToken reports whether the token is accepted
func (c *Client) ValidateToken(ctx context.Context) bool {
	return c.do(ctx, "validate", http.MethodGet, "/user", nil, nil) == nil
}

// UserInfo returns the GitHub profile of the token owner
func (c *Client) UserInfo(ctx context.Context) (*remote.RemoteUser, error) {
	var resp userResponse
	if err := c.do(ctx, "user", http.MethodGet, "/user", nil, &resp); err != nil {
		return nil, err
	}

	name := resp.Name
	if name == "" {
		name = resp.Login
	}
	return &remote.RemoteUser{Login: resp.Login, Name: name, Email: resp.Email}, nil
}

func (c *Client) fetchRaw(ctx context.Context, rawURL string) ([]byte, error) {
	ctx, cancel := c.timeProvider.WithTimeout(ctx, c.opts.RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errs.NewRemoteError(errs.RemoteUnknown, 0, "load", err)
	}

	resp, err := c.rawClient.Do(req)
	if err != nil {
		return nil, errs.NewRemoteError(errs.RemoteNetworkUnreachable, 0, "load", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, statusError("load", resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.NewRemoteError(errs.RemoteNetworkUnreachable, resp.StatusCode, "load", err)
	}
	return data, nil
}

// do performs one API call under the request timeout; out may be nil
func (c *Client) do(ctx context.Context, op, method, path string, body any, out any) error {
	ctx, cancel := c.timeProvider.WithTimeout(ctx, c.opts.RequestTimeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errs.NewRemoteError(errs.RemoteUnknown, 0, op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.opts.BaseURL+path, reader)
	if err != nil {
		return errs.NewRemoteError(errs.RemoteUnknown, 0, op, err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := c.timeProvider.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Backup store unreachable", map[string]any{
			"operation": op,
			"method":    method,
			"path":      path,
			"error":     err.Error(),
		})
		return errs.NewRemoteError(errs.RemoteNetworkUnreachable, 0, op, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Backup store call", map[string]any{
		"operation":   op,
		"method":      method,
		"path":        path,
		"status_code": resp.StatusCode,
		"elapsed":     c.timeProvider.Since(start).Std().String(),
	})

	if resp.StatusCode >= http.StatusMultipleChoices {
		err := statusError(op, resp)
		c.logger.Warn("Backup store rejected request", coreport.ErrorFields(err, nil))
		return err
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return errs.NewRemoteError(errs.RemoteNetworkUnreachable, resp.StatusCode, op, err)
		}
		return errs.NewRemoteError(errs.RemoteUnknown, resp.StatusCode, op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func statusError(op string, resp *http.Response) error {
	var apiErr apiError
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if json.Unmarshal(data, &apiErr) != nil || apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return errs.NewRemoteError(errs.ClassifyStatus(resp.StatusCode), resp.StatusCode, op, errors.New(apiErr.Message))
}
