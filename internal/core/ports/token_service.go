package ports

// Identity is the verified content of a session token.
type Identity struct {
	UserID string
	Role   string
}

// TokenService mints and verifies signed session tokens. Tokens are
// self-contained: nothing is persisted server-side and nothing is
// revocable before the embedded expiry.
type TokenService interface {
	Issue(userID, role string) (string, error)
	// Verify returns domain.ErrTokenExpired for an expired token and
	// domain.ErrTokenInvalid for any other failure (bad signature,
	// malformed, wrong algorithm).
	Verify(token string) (*Identity, error)
}
