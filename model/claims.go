package model

import "github.com/golang-jwt/jwt/v5"

type AppClaims struct {
	UserID string `json:"id"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Payload extracts the transport-neutral claim set.
func (c *AppClaims) Payload() TokenPayload {
	return TokenPayload{
		ID:    c.UserID,
		Email: c.Email,
		Role:  c.Role,
	}
}
