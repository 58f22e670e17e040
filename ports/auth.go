package ports

import "context"

// Identity is the verified subject returned by the managed auth
// provider.
type Identity struct {
	Subject  string `json:"sub"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// AuthSession is the result of exchanging a callback code.
type AuthSession struct {
	AccessToken string
	Identity    Identity
}

// AuthProvider is the boundary to the external managed auth service.
type AuthProvider interface {
	// VerifyToken resolves a session token to its identity. Unknown or
	// expired tokens yield an UNAUTHENTICATED error.
	VerifyToken(ctx context.Context, token string) (*Identity, error)

	// ExchangeCode trades an auth callback code for a session.
	ExchangeCode(ctx context.Context, code string) (*AuthSession, error)
}
