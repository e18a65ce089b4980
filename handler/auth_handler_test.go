// handler/auth_handler_test.go
package handler

import (
	"context"
	"encoding/json"
	"grafik-auth-api/common"
	"grafik-auth-api/model"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Login(req model.LoginRequest) *common.Response {
	args := m.Called(req)
	return args.Get(0).(*common.Response)
}
func (m *mockAuthService) Signup(req model.SignupRequest) *common.Response {
	args := m.Called(req)
	return args.Get(0).(*common.Response)
}
func (m *mockAuthService) RecoveryPass(req model.RecoveryRequest) *common.Response {
	args := m.Called(req)
	return args.Get(0).(*common.Response)
}
func (m *mockAuthService) ResetPass(token string, req model.ResetPasswordRequest) *common.Response {
	args := m.Called(token, req)
	return args.Get(0).(*common.Response)
}
func (m *mockAuthService) CheckToken(token string) *common.Response {
	args := m.Called(token)
	return args.Get(0).(*common.Response)
}
func (m *mockAuthService) RefreshAuthToken(req model.RefreshRequest) *common.Response {
	args := m.Called(req)
	return args.Get(0).(*common.Response)
}
func (m *mockAuthService) VerifyAccount(token string) *common.Response {
	args := m.Called(token)
	return args.Get(0).(*common.Response)
}
func (m *mockAuthService) Logout(req model.RefreshRequest) *common.Response {
	args := m.Called(req)
	return args.Get(0).(*common.Response)
}
func (m *mockAuthService) LogoutAll(userID string) *common.Response {
	args := m.Called(userID)
	return args.Get(0).(*common.Response)
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) common.Response {
	var res common.Response
	err := json.Unmarshal(rr.Body.Bytes(), &res)
	assert.NoError(t, err)
	return res
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success maps to 200", func(t *testing.T) {
		mockSvc := new(mockAuthService)
		mockSvc.On("Login", mock.Anything).Return(common.NewResponse(nil, "Login successful", common.CodeSuccess)).Once()
		h := NewAuthHandler(mockSvc)

		req, _ := http.NewRequest("POST", "/auth/login", strings.NewReader(`{"email":"ada@test.com","password":"password123"}`))
		rr := httptest.NewRecorder()
		h.Login(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, common.CodeSuccess, decodeEnvelope(t, rr).Code)
	})

	t.Run("invalid credentials map to 401", func(t *testing.T) {
		mockSvc := new(mockAuthService)
		mockSvc.On("Login", mock.Anything).Return(common.NewResponse(nil, "Invalid credentials, try again", common.CodeInvalidCredentials)).Once()
		h := NewAuthHandler(mockSvc)

		req, _ := http.NewRequest("POST", "/auth/login", strings.NewReader(`{"email":"ada@test.com","password":"wrongpass1"}`))
		rr := httptest.NewRecorder()
		h.Login(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, common.CodeInvalidCredentials, decodeEnvelope(t, rr).Code)
	})

	t.Run("validation failure is 400 and never reaches the service", func(t *testing.T) {
		mockSvc := new(mockAuthService)
		h := NewAuthHandler(mockSvc)

		req, _ := http.NewRequest("POST", "/auth/login", strings.NewReader(`{"email":"not-an-email","password":"short"}`))
		rr := httptest.NewRecorder()
		h.Login(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, common.CodeValidationError, decodeEnvelope(t, rr).Code)
		mockSvc.AssertNotCalled(t, "Login")
	})
}

func TestAuthHandler_Signup_CreatedStatus(t *testing.T) {
	mockSvc := new(mockAuthService)
	mockSvc.On("Signup", mock.Anything).Return(common.NewResponse(nil, "User created successfully", common.CodeSuccess)).Once()
	h := NewAuthHandler(mockSvc)

	body := `{"name":"Ada","lastName":"Lovelace","email":"ada@test.com","password":"password123","phone":"+34600000000","roleID":"0b3b1a98-a5b0-4c1e-9c1b-2b3f1b6ddc10"}`
	req, _ := http.NewRequest("POST", "/auth/signup", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Signup(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestAuthHandler_VerifyAccount_ExternalMapping(t *testing.T) {
	// The precise internal causes all surface as ALREADY_VERIFIED.
	internalCodes := []common.ResponseCode{
		common.CodeTokenInvalid,
		common.CodeTokenExpired,
		common.CodeNotFound,
	}

	for _, code := range internalCodes {
		t.Run(string(code), func(t *testing.T) {
			mockSvc := new(mockAuthService)
			mockSvc.On("VerifyAccount", "tok").Return(common.NewResponse(nil, "", code)).Once()
			h := NewAuthHandler(mockSvc)

			req, _ := http.NewRequest("GET", "/auth/verify-account?token=tok", nil)
			rr := httptest.NewRecorder()
			h.VerifyAccount(rr, req)

			assert.Equal(t, http.StatusConflict, rr.Code)
			assert.Equal(t, common.CodeAlreadyVerified, decodeEnvelope(t, rr).Code)
		})
	}

	t.Run("success passes through", func(t *testing.T) {
		mockSvc := new(mockAuthService)
		mockSvc.On("VerifyAccount", "tok").Return(common.NewResponse(nil, "Account verified successfully", common.CodeSuccess)).Once()
		h := NewAuthHandler(mockSvc)

		req, _ := http.NewRequest("GET", "/auth/verify-account?token=tok", nil)
		rr := httptest.NewRecorder()
		h.VerifyAccount(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestAuthHandler_CheckToken(t *testing.T) {
	t.Run("expired maps to 401", func(t *testing.T) {
		mockSvc := new(mockAuthService)
		mockSvc.On("CheckToken", "tok").Return(common.NewResponse(nil, "Token expired", common.CodeTokenExpired)).Once()
		h := NewAuthHandler(mockSvc)

		req, _ := http.NewRequest("GET", "/auth/check-token?token=tok", nil)
		rr := httptest.NewRecorder()
		h.CheckToken(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("missing token is 400", func(t *testing.T) {
		mockSvc := new(mockAuthService)
		h := NewAuthHandler(mockSvc)

		req, _ := http.NewRequest("GET", "/auth/check-token", nil)
		rr := httptest.NewRecorder()
		h.CheckToken(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockSvc.AssertNotCalled(t, "CheckToken")
	})
}

func TestAuthHandler_ResetPass_MissingToken(t *testing.T) {
	mockSvc := new(mockAuthService)
	h := NewAuthHandler(mockSvc)

	req, _ := http.NewRequest("PATCH", "/auth/reset-pass", strings.NewReader(`{"password":"newPassword123"}`))
	rr := httptest.NewRecorder()
	h.ResetPass(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockSvc.AssertNotCalled(t, "ResetPass")
}

func TestAuthHandler_LogoutAll(t *testing.T) {
	t.Run("revokes the authenticated subject's sessions", func(t *testing.T) {
		mockSvc := new(mockAuthService)
		mockSvc.On("LogoutAll", "u1").Return(common.NewResponse(nil, "All sessions closed successfully", common.CodeSuccess)).Once()
		h := NewAuthHandler(mockSvc)

		req, _ := http.NewRequest("POST", "/auth/logout-all", nil)
		req = req.WithContext(context.WithValue(req.Context(), UserIDKey, "u1"))
		rr := httptest.NewRecorder()
		h.LogoutAll(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing subject is 401", func(t *testing.T) {
		mockSvc := new(mockAuthService)
		h := NewAuthHandler(mockSvc)

		req, _ := http.NewRequest("POST", "/auth/logout-all", nil)
		rr := httptest.NewRecorder()
		h.LogoutAll(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		mockSvc.AssertNotCalled(t, "LogoutAll")
	})
}

func TestAuthHandler_RevokeUser(t *testing.T) {
	t.Run("revokes the named user's sessions", func(t *testing.T) {
		mockSvc := new(mockAuthService)
		mockSvc.On("LogoutAll", "0b3b1a98-a5b0-4c1e-9c1b-2b3f1b6ddc10").
			Return(common.NewResponse(nil, "All sessions closed successfully", common.CodeSuccess)).Once()
		h := NewAuthHandler(mockSvc)

		req, _ := http.NewRequest("POST", "/auth/revoke-user", strings.NewReader(`{"userID":"0b3b1a98-a5b0-4c1e-9c1b-2b3f1b6ddc10"}`))
		rr := httptest.NewRecorder()
		h.RevokeUser(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("non-uuid target is 400", func(t *testing.T) {
		mockSvc := new(mockAuthService)
		h := NewAuthHandler(mockSvc)

		req, _ := http.NewRequest("POST", "/auth/revoke-user", strings.NewReader(`{"userID":"not-a-uuid"}`))
		rr := httptest.NewRecorder()
		h.RevokeUser(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockSvc.AssertNotCalled(t, "LogoutAll")
	})
}

func TestStatusForCode(t *testing.T) {
	tests := []struct {
		code     common.ResponseCode
		expected int
	}{
		{common.CodeSuccess, http.StatusOK},
		{common.CodeValidationError, http.StatusBadRequest},
		{common.CodeInvalidCredentials, http.StatusUnauthorized},
		{common.CodeTokenExpired, http.StatusUnauthorized},
		{common.CodeTokenInvalid, http.StatusUnauthorized},
		{common.CodeNotFound, http.StatusNotFound},
		{common.CodeAlreadyExists, http.StatusConflict},
		{common.CodeAlreadyVerified, http.StatusConflict},
		{common.CodeUpdatedFailed, http.StatusUnprocessableEntity},
		{common.CodeError, http.StatusInternalServerError},
		{common.CodeInternalServerError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, statusForCode(tt.code), "code %s", tt.code)
	}
}
