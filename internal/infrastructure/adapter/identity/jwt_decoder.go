package identity

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/amirhossein-jamali/balance-app/internal/domain/entity"
	errs "github.com/amirhossein-jamali/balance-app/internal/domain/error"
	coreport "github.com/amirhossein-jamali/balance-app/internal/domain/port/core"
	"github.com/golang-jwt/jwt/v5"
)

// GoogleIssuers are the issuers Google signs ID tokens with
var GoogleIssuers = []string{"https://accounts.google.com", "accounts.google.com"}

// profileClaims are the ID token claims mapped onto an account
type profileClaims struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
	jwt.RegisteredClaims
}

// JWTDecoder reads an ID token that the identity provider's client library has already verified.
// The signature is not checked again; expiry, audience and issuer are.
type JWTDecoder struct {
	clientID     string
	issuers      []string
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	parser       *jwt.Parser
}

// NewJWTDecoder creates a decoder; an empty clientID skips the audience check
func NewJWTDecoder(clientID string, issuers []string, timeProvider coreport.TimeProvider, logger coreport.Logger) *JWTDecoder {
	return &JWTDecoder{
		clientID:     strings.TrimSpace(clientID),
		issuers:      issuers,
		timeProvider: timeProvider,
		logger:       logger,
		parser:       jwt.NewParser(),
	}
}

// Decode extracts the profile carried by token
func (d *JWTDecoder) Decode(ctx context.Context, token string) (*entity.FederatedIdentity, error) {
	claims := &profileClaims{}
	if _, _, err := d.parser.ParseUnverified(strings.TrimSpace(token), claims); err != nil {
		return nil, d.reject("malformed token", err)
	}

	if err := d.validate(claims); err != nil {
		return nil, d.reject(err.Error(), nil)
	}

	return &entity.FederatedIdentity{
		Subject:    claims.Subject,
		Email:      claims.Email,
		Name:       claims.Name,
		GivenName:  claims.GivenName,
		FamilyName: claims.FamilyName,
		Picture:    claims.Picture,
	}, nil
}

func (d *JWTDecoder) validate(claims *profileClaims) error {
	if strings.TrimSpace(claims.Subject) == "" {
		return fmt.Errorf("subject is missing")
	}

	now := d.timeProvider.Now()
	if claims.ExpiresAt != nil && !now.Before(claims.ExpiresAt.Time) {
		return fmt.Errorf("token expired")
	}
	if claims.NotBefore != nil && now.Before(claims.NotBefore.Time) {
		return fmt.Errorf("token not valid yet")
	}
	if d.clientID != "" && !slices.Contains(claims.Audience, d.clientID) {
		return fmt.Errorf("token issued for another audience")
	}
	if len(d.issuers) > 0 && !slices.Contains(d.issuers, claims.Issuer) {
		return fmt.Errorf("unexpected issuer %q", claims.Issuer)
	}
	return nil
}

func (d *JWTDecoder) reject(reason string, cause error) error {
	fields := map[string]any{"reason": reason}
	if cause != nil {
		fields["error"] = cause.Error()
	}
	d.logger.Warn("Federated token rejected", fields)
	return fmt.Errorf("%w: %s", errs.ErrInvalidFederatedToken, reason)
}
