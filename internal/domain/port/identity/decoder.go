package identity

import (
	"context"

	"github.com/amirhossein-jamali/balance-app/internal/domain/entity"
)

// Decoder turns an externally verified identity assertion into profile fields
type Decoder interface {
	// Decode returns the identity carried by token
	//
	// Possible errors:
	// - ErrInvalidFederatedToken: If the token is malformed, expired or issued for another audience
	Decode(ctx context.Context, token string) (*entity.FederatedIdentity, error)
}
