// router/router_test.go
package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"grafik-auth-api/handler"
	"grafik-auth-api/model"
	"grafik-auth-api/router"
	"grafik-auth-api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopTokenRepo struct{}

func (noopTokenRepo) Create(record *model.TokenRecord) error              { return nil }
func (noopTokenRepo) GetByToken(token string) (*model.TokenRecord, error) { return nil, nil }
func (noopTokenRepo) DeleteByToken(token string) (bool, error)            { return false, nil }
func (noopTokenRepo) DeleteByUserID(userID string) error                  { return nil }

func newTokenService(t *testing.T) service.ITokenService {
	t.Helper()
	svc, err := service.NewTokenService("test-secret", service.TokenDurations{
		Auth:     "1h",
		Refresh:  "7d",
		Recovery: "10m",
		Verify:   "7d",
	}, noopTokenRepo{})
	require.NoError(t, err)
	return svc
}

func TestNewRouter_HealthRoute(t *testing.T) {
	r := router.NewRouter(nil, nil, "")

	req, _ := http.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "grafik-auth-api")
}

func TestNewRouter_UnknownRoute(t *testing.T) {
	r := router.NewRouter(nil, nil, "")

	req, _ := http.NewRequest("GET", "/does-not-exist", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestNewRouter_MethodNotAllowed(t *testing.T) {
	r := router.NewRouter(nil, nil, "")

	req, _ := http.NewRequest("POST", "/health", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

// The session-revocation routes sit behind the bearer middleware; an
// unauthenticated request never reaches the handler.
func TestNewRouter_ProtectedRoutesRequireAuth(t *testing.T) {
	tokens := newTokenService(t)
	r := router.NewRouter(handler.NewAuthHandler(nil), tokens, "admin-role")

	for _, path := range []string{"/auth/logout-all", "/auth/revoke-user"} {
		req, _ := http.NewRequest("POST", path, nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
	}
}

// The admin revoke route additionally gates on the role claim.
func TestNewRouter_RevokeUserRequiresAdminRole(t *testing.T) {
	tokens := newTokenService(t)
	r := router.NewRouter(handler.NewAuthHandler(nil), tokens, "admin-role")

	signed := tokens.Sign(model.TokenKindAuth, model.TokenPayload{ID: "u1", Role: "viewer-role"})
	require.True(t, signed.IsSuccess())

	req, _ := http.NewRequest("POST", "/auth/revoke-user", nil)
	req.Header.Set("Authorization", "Bearer "+signed.Data.(model.IssuedToken).Token)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}
