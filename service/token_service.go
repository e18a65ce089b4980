// file: service/token_service.go

package service

import (
	"database/sql"
	"errors"
	"fmt"
	"grafik-auth-api/common"
	"grafik-auth-api/logger"
	"grafik-auth-api/model"
	"grafik-auth-api/repository"
	"regexp"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ITokenService defines the contract for the token lifecycle.
type ITokenService interface {
	Sign(kind model.TokenKind, payload model.TokenPayload) *common.Response
	Decode(token string) *common.Response
	Revoke(token string) *common.Response
	RevokeAllForUser(userID string) *common.Response
	VerifyAuth(token string) (*model.AppClaims, error)
}

// TokenService signs, decodes and revokes tokens of the four kinds.
// Auth tokens are stateless (signature+expiry only); refresh, recovery and
// verify tokens are persisted so they can be revoked by row deletion.
type TokenService struct {
	repo      repository.ITokenRepository
	secret    []byte
	durations map[model.TokenKind]time.Duration
}

var expiresInPattern = regexp.MustCompile(`^(\d+)([smhd])$`)

// parseExpiresIn converts a "<integer><s|m|h|d>" policy string into a
// duration. Malformed strings are an error, never a silent default.
func parseExpiresIn(expiresIn string) (time.Duration, error) {
	match := expiresInPattern.FindStringSubmatch(expiresIn)
	if match == nil {
		return 0, fmt.Errorf("invalid expiresIn format: %s", expiresIn)
	}

	value, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, fmt.Errorf("invalid expiresIn format: %s", expiresIn)
	}

	switch match[2] {
	case "s":
		return time.Duration(value) * time.Second, nil
	case "m":
		return time.Duration(value) * time.Minute, nil
	case "h":
		return time.Duration(value) * time.Hour, nil
	case "d":
		return time.Duration(value) * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unknown time unit: %s", match[2])
	}
}

// TokenDurations holds the per-kind expiry policy strings from config.
type TokenDurations struct {
	Auth     string
	Refresh  string
	Recovery string
	Verify   string
}

// NewTokenService resolves the expiry policy once at construction. There
// is no cross-kind fallback; any malformed duration fails construction.
func NewTokenService(secret string, durations TokenDurations, repo repository.ITokenRepository) (*TokenService, error) {
	parsed := make(map[model.TokenKind]time.Duration, 4)
	for kind, raw := range map[model.TokenKind]string{
		model.TokenKindAuth:     durations.Auth,
		model.TokenKindRefresh:  durations.Refresh,
		model.TokenKindRecovery: durations.Recovery,
		model.TokenKindVerify:   durations.Verify,
	} {
		d, err := parseExpiresIn(raw)
		if err != nil {
			return nil, fmt.Errorf("token duration for kind %q: %w", kind, err)
		}
		parsed[kind] = d
	}

	return &TokenService{
		repo:      repo,
		secret:    []byte(secret),
		durations: parsed,
	}, nil
}

// Sign produces a signed token of the given kind embedding the payload,
// persisting a token record for revocable kinds before returning.
func (s *TokenService) Sign(kind model.TokenKind, payload model.TokenPayload) *common.Response {
	duration, ok := s.durations[kind]
	if !ok {
		return common.NewResponse(nil, fmt.Sprintf("unknown token kind: %s", kind), common.CodeError)
	}

	now := time.Now()
	expiresAt := now.Add(duration)

	claims := &model.AppClaims{
		UserID: payload.ID,
		Email:  payload.Email,
		Role:   payload.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		logger.Log.WithError(err).WithField("kind", kind).Error("Failed to sign token")
		return common.NewResponse(nil, err.Error(), common.CodeError)
	}

	if kind.Persisted() {
		record := &model.TokenRecord{
			UserID:    payload.ID,
			Token:     tokenString,
			Kind:      kind,
			ExpiresAt: expiresAt,
		}
		if err := s.repo.Create(record); err != nil {
			logger.Log.WithError(err).WithField("kind", kind).Error("Failed to persist token record")
			return common.NewResponse(nil, err.Error(), common.CodeError)
		}
	}

	issued := model.IssuedToken{
		Token:     tokenString,
		ExpiresAt: expiresAt,
	}
	return common.NewResponse(issued, "Token created successfully", common.CodeSuccess)
}

// Decode validates a persisted-kind token: store lookup first ("never
// issued" and "already revoked" are deliberately indistinguishable), then
// strict expiry, then signature. The record is never deleted here; callers
// wanting expire-on-read cleanup call Revoke themselves.
func (s *TokenService) Decode(token string) *common.Response {
	record, err := s.repo.GetByToken(token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.NewResponse(nil, "Token not found", common.CodeTokenInvalid)
		}
		return common.NewResponse(nil, err.Error(), common.CodeError)
	}

	// Strict comparison: a token expiring at exactly now is still valid.
	if record.ExpiresAt.Before(time.Now()) {
		return common.NewResponse(nil, "Token expired", common.CodeTokenExpired)
	}

	// Signature check only. The store row is the expiry authority for
	// persisted kinds; the second-truncated exp claim can lag expires_at.
	claims, err := s.parseClaims(token, jwt.WithoutClaimsValidation())
	if err != nil {
		return common.NewResponse(nil, "Token invalid", common.CodeTokenInvalid)
	}

	return common.NewResponse(claims.Payload(), "Token decoded successfully", common.CodeSuccess)
}

// Revoke deletes the token record. A second call for the same token
// reports TOKEN_INVALID; callers treat "already gone" as acceptable.
func (s *TokenService) Revoke(token string) *common.Response {
	deleted, err := s.repo.DeleteByToken(token)
	if err != nil {
		return common.NewResponse(nil, err.Error(), common.CodeError)
	}
	if !deleted {
		return common.NewResponse(nil, "Token not found", common.CodeTokenInvalid)
	}
	return common.NewResponse(true, "Token deleted successfully", common.CodeSuccess)
}

// RevokeAllForUser drops every persisted token the user holds, ending all
// of their sessions at once.
func (s *TokenService) RevokeAllForUser(userID string) *common.Response {
	if err := s.repo.DeleteByUserID(userID); err != nil {
		return common.NewResponse(nil, err.Error(), common.CodeError)
	}
	return common.NewResponse(true, "Sessions revoked successfully", common.CodeSuccess)
}

// VerifyAuth statelessly verifies an auth-kind token by signature and
// expiry claim. Auth tokens have no store row and cannot be revoked early.
func (s *TokenService) VerifyAuth(token string) (*model.AppClaims, error) {
	return s.parseClaims(token)
}

func (s *TokenService) parseClaims(token string, extra ...jwt.ParserOption) (*model.AppClaims, error) {
	opts := append([]jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}, extra...)

	claims := &model.AppClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}
