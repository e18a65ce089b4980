package service

import (
	"grafik-auth-api/common"
	"grafik-auth-api/logger"

	"golang.org/x/crypto/bcrypt"
)

// IHashService defines the contract for credential hashing.
type IHashService interface {
	HashPassword(password string) *common.Response
	ComparePassword(password, hash string) *common.Response
}

// HashService wraps bcrypt behind the result envelope. Stateless; safe for
// concurrent use.
type HashService struct {
	cost int
}

// NewHashService creates a HashService with the configured work factor.
func NewHashService(cost int) *HashService {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &HashService{cost: cost}
}

// HashPassword applies a salted one-way hash to the plaintext.
func (s *HashService) HashPassword(password string) *common.Response {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return common.NewResponse(nil, err.Error(), common.CodeError)
	}
	return common.NewResponse(string(bytes), "Password hashed successfully", common.CodeSuccess)
}

// ComparePassword checks the plaintext against the stored hash using
// bcrypt's constant-time comparison. Fails closed: an invalid hash format
// surfaces as ERROR, never as a match.
func (s *HashService) ComparePassword(password, hash string) *common.Response {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == bcrypt.ErrMismatchedHashAndPassword {
		return common.NewResponse(nil, "Incorrect password", common.CodeInvalidCredentials)
	}
	if err != nil {
		logger.Log.WithError(err).Error("Failed to compare password hash")
		return common.NewResponse(nil, err.Error(), common.CodeError)
	}
	return common.NewResponse(true, "Password verified", common.CodeSuccess)
}
