// file: model/token.go

package model

import "time"

// TokenKind identifies which expiry policy issued a token and whether it
// is persisted. Auth tokens are stateless; the other kinds are stored and
// revocable by row deletion.
type TokenKind string

const (
	TokenKindAuth     TokenKind = "auth"
	TokenKindRefresh  TokenKind = "refresh"
	TokenKindRecovery TokenKind = "recovery"
	TokenKindVerify   TokenKind = "verify"
)

// Persisted reports whether tokens of this kind get a store row.
func (k TokenKind) Persisted() bool {
	return k != TokenKindAuth
}

// TokenRecord is a persisted token row. Rows are only ever created or
// deleted; deleting the row is the revocation mechanism.
type TokenRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userID"`
	Token     string    `json:"-"` // The signed string is never echoed back.
	Kind      TokenKind `json:"kind"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// TokenPayload is the minimal claim set embedded in signed tokens.
// It never includes the password hash.
type TokenPayload struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// IssuedToken is what Sign hands back to callers.
type IssuedToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
