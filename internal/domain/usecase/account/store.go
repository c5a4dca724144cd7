package account

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"

	"github.com/amirhossein-jamali/balance-app/internal/domain/entity"
	errs "github.com/amirhossein-jamali/balance-app/internal/domain/error"
	coreport "github.com/amirhossein-jamali/balance-app/internal/domain/port/core"
	"github.com/amirhossein-jamali/balance-app/internal/domain/port/identity"
	"github.com/amirhossein-jamali/balance-app/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/balance-app/internal/domain/port/remote"
	"github.com/amirhossein-jamali/balance-app/internal/domain/port/usecase"
)

// DemoCredentials is the single username/password pair accepted by Login
type DemoCredentials struct {
	Username string
	Password string
}

// DefaultDemoCredentials returns the built-in demo pair
func DefaultDemoCredentials() DemoCredentials {
	return DemoCredentials{Username: "user", Password: "pass"}
}

// Store holds the signed-in account, its backup credential and the UI preferences
type Store struct {
	accounts    persistence.AccountRepository
	preferences persistence.PreferencesRepository
	decoder     identity.Decoder
	gateways    remote.GatewayFactory
	demo        DemoCredentials
	logger      coreport.Logger

	mu        sync.RWMutex
	account   *entity.Account
	prefs     entity.UIPreferences
	isLoading bool
	errMsg    string
	wiper     usecase.DataWiper
}

var _ usecase.AccountUseCase = (*Store)(nil)
var _ usecase.BackupCredentialSource = (*Store)(nil)

// NewStore creates a signed-out account store
func NewStore(
	accounts persistence.AccountRepository,
	preferences persistence.PreferencesRepository,
	decoder identity.Decoder,
	gateways remote.GatewayFactory,
	demo DemoCredentials,
	logger coreport.Logger,
) *Store {
	return &Store{
		accounts:    accounts,
		preferences: preferences,
		decoder:     decoder,
		gateways:    gateways,
		demo:        demo,
		logger:      logger,
		prefs:       entity.DefaultUIPreferences(),
	}
}

// SetDataWiper registers the data store cleared on logout.
// The data store reads credentials from this store, so it is bound after both exist.
func (s *Store) SetDataWiper(wiper usecase.DataWiper) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wiper = wiper
}

// Load restores the persisted session and UI preferences
func (s *Store) Load(ctx context.Context) error {
	account, err := s.accounts.Load(ctx)
	if err != nil {
		s.logger.Error("Failed to load session", coreport.ErrorFields(err, nil))
		return errs.WrapPersistence(err)
	}

	prefs, err := s.preferences.Load(ctx)
	if err != nil {
		s.logger.Error("Failed to load UI preferences", coreport.ErrorFields(err, nil))
		return errs.WrapPersistence(err)
	}

	s.mu.Lock()
	s.account = account
	s.prefs = prefs
	s.mu.Unlock()

	if account != nil {
		s.logger.Info("Session restored", map[string]any{
			"account_id": account.ID,
			"provider":   string(account.Provider),
		})
	}
	return nil
}

// Login signs in with the demo username/password pair
func (s *Store) Login(ctx context.Context, credentials usecase.Credentials) error {
	s.begin()

	if !s.demoMatches(credentials) {
		s.logger.Warn("Login rejected", map[string]any{
			"username": credentials.Username,
		})
		return s.fail(ctx, errs.ErrInvalidCredentials)
	}

	return s.signIn(ctx, entity.NewDemoAccount(credentials.Username))
}

// LoginWithFederatedToken signs in with an identity token issued by the federated provider
func (s *Store) LoginWithFederatedToken(ctx context.Context, token string) error {
	s.begin()

	federated, err := s.decoder.Decode(ctx, token)
	if err != nil {
		if !errs.IsAuthError(err) {
			err = fmt.Errorf("%w: %v", errs.ErrInvalidFederatedToken, err)
		}
		s.logger.Warn("Federated login rejected", coreport.ErrorFields(err, nil))
		return s.fail(ctx, err)
	}

	account, err := entity.NewFederatedAccount(*federated)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.signIn(ctx, account)
}

// Logout clears the session and wipes every local partition.
// The in-memory session is cleared even when wiping storage fails.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	previous := s.account
	s.account = nil
	s.prefs = entity.DefaultUIPreferences()
	s.errMsg = ""
	s.isLoading = false
	wiper := s.wiper
	s.mu.Unlock()

	var errList []error
	if wiper != nil {
		if err := wiper.ClearData(ctx); err != nil {
			errList = append(errList, err)
		}
	}
	if err := s.accounts.Clear(ctx); err != nil {
		errList = append(errList, errs.WrapPersistence(err))
	}
	if err := s.preferences.Clear(ctx); err != nil {
		errList = append(errList, errs.WrapPersistence(err))
	}

	fields := map[string]any{}
	if previous != nil {
		fields["account_id"] = previous.ID
	}

	if err := errors.Join(errList...); err != nil {
		s.logger.Error("Logout left local data behind", coreport.ErrorFields(err, fields))
		return err
	}

	s.logger.Info("Signed out", fields)
	return nil
}

// Account returns a copy of the signed-in account, nil when signed out
func (s *Store) Account() *entity.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account.Clone()
}

// IsAuthenticated reports whether an account is signed in
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.account != nil
}

// IsLoading reports whether a login is in progress
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isLoading
}

// Error returns the last recorded error message
func (s *Store) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// ClearError drops the last error message
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
}

func (s *Store) demoMatches(credentials usecase.Credentials) bool {
	userOK := subtle.ConstantTimeCompare([]byte(credentials.Username), []byte(s.demo.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(credentials.Password), []byte(s.demo.Password)) == 1
	return userOK && passOK
}

func (s *Store) signIn(ctx context.Context, account *entity.Account) error {
	if err := s.accounts.Save(ctx, account); err != nil {
		return s.fail(ctx, errs.WrapPersistence(err))
	}

	s.mu.Lock()
	s.account = account
	s.isLoading = false
	s.errMsg = ""
	s.mu.Unlock()

	s.logger.Info("Signed in", map[string]any{
		"account_id": account.ID,
		"provider":   string(account.Provider),
	})
	return nil
}

func (s *Store) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoading = true
	s.errMsg = ""
}

// fail records a failed sign-in; the session ends up signed out
func (s *Store) fail(ctx context.Context, err error) error {
	s.mu.Lock()
	s.account = nil
	s.isLoading = false
	s.errMsg = err.Error()
	s.mu.Unlock()

	if clearErr := s.accounts.Clear(ctx); clearErr != nil {
		s.logger.Warn("Failed to clear stored session", coreport.ErrorFields(clearErr, nil))
	}
	return err
}
