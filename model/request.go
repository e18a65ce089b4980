// file: model/request.go

package model

// LoginRequest defines the payload for credential authentication.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// SignupRequest defines the payload for creating a new user account.
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	LastName string `json:"lastName" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone" validate:"required"`
	RoleID   string `json:"roleID" validate:"required,uuid4"`
}

// RecoveryRequest asks for a password-recovery mail.
type RecoveryRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest carries the new password; the recovery token
// travels in the query string.
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

// RefreshRequest carries a refresh token for renewal or logout.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// RevokeSessionsRequest names the user whose sessions are dropped.
type RevokeSessionsRequest struct {
	UserID string `json:"userID" validate:"required,uuid4"`
}
