package gateway

import (
	"context"
	"fmt"

	"kisaanchat/internal/common"
	"kisaanchat/internal/user"
)

// PrincipalKind classifies who is on the other end of a connection.
type PrincipalKind string

const (
	KindFarmer PrincipalKind = "farmer"
	KindAdmin  PrincipalKind = "admin"
	KindAgent  PrincipalKind = "agent"
)

// Principal is the authenticated identity attached to a connection for
// its whole lifetime.
type Principal struct {
	UserID string
	Name   string
	Kind   PrincipalKind

	// FarmerID is set for agent principals only: the one farmer this
	// agent session is allowed to serve.
	FarmerID string
}

// Authenticator validates handshake credentials. Two schemes are
// accepted: user access tokens (farmers and admins) and the short-lived
// tokens issued to the automated agent. User tokens are tried first.
type Authenticator struct {
	users user.UserRepository
}

func NewAuthenticator(users user.UserRepository) *Authenticator {
	return &Authenticator{users: users}
}

// Authenticate resolves a raw token into a principal. The raw token is
// never logged or echoed back; all failures collapse into
// ErrAuthentication.
func (a *Authenticator) Authenticate(ctx context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: no token supplied", ErrAuthentication)
	}

	if claims, err := common.ValidToken(token); err == nil {
		return a.resolveUser(ctx, claims)
	}

	if claims, err := common.ValidAgentToken(token); err == nil {
		return &Principal{
			UserID:   common.AIAgentID,
			Name:     claims.Name,
			Kind:     KindAgent,
			FarmerID: claims.FarmerID,
		}, nil
	}

	return nil, ErrAuthentication
}

func (a *Authenticator) resolveUser(ctx context.Context, claims *common.Claims) (*Principal, error) {
	u, err := a.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown user", ErrAuthentication)
	}

	kind := KindFarmer
	if u.Role == "admin" {
		kind = KindAdmin
	}

	return &Principal{
		UserID: claims.UserID,
		Name:   u.Name,
		Kind:   kind,
	}, nil
}
