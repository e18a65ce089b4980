package handler

import (
	"grafik-auth-api/common"
	"grafik-auth-api/model"
	"grafik-auth-api/service"
	"net/http"
)

// AuthHandler exposes the auth flows over HTTP. Every endpoint answers
// with the uniform {code, message, data} envelope; this layer owns the
// envelope-to-status mapping.
type AuthHandler struct {
	Auth service.IAuthService
}

func NewAuthHandler(auth service.IAuthService) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

// statusForCode maps result codes to HTTP statuses. The services never
// deal in statuses themselves.
func statusForCode(code common.ResponseCode) int {
	switch code {
	case common.CodeSuccess:
		return http.StatusOK
	case common.CodeValidationError:
		return http.StatusBadRequest
	case common.CodeInvalidCredentials, common.CodeTokenExpired, common.CodeTokenInvalid:
		return http.StatusUnauthorized
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeAlreadyExists, common.CodeAlreadyVerified:
		return http.StatusConflict
	case common.CodeUpdatedFailed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func sendEnvelope(w http.ResponseWriter, res *common.Response) {
	common.WriteResponse(w, statusForCode(res.Code), res)
}

// Login godoc
// @Summary      Authenticate with email and password
// @Description  Returns the user projection plus an auth/refresh token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.LoginRequest true "Credentials"
// @Success      200 {object} common.Response
// @Failure      401 {object} common.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return
	}
	sendEnvelope(w, h.Auth.Login(req))
}

// Signup godoc
// @Summary      Create a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.SignupRequest true "New account"
// @Success      201 {object} common.Response
// @Failure      409 {object} common.Response
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req model.SignupRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return
	}
	res := h.Auth.Signup(req)
	if res.IsSuccess() {
		common.WriteResponse(w, http.StatusCreated, res)
		return
	}
	sendEnvelope(w, res)
}

// RecoveryPass godoc
// @Summary      Request a password-recovery mail
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.RecoveryRequest true "Account email"
// @Success      200 {object} common.Response
// @Failure      401 {object} common.Response
// @Router       /auth/recovery [post]
func (h *AuthHandler) RecoveryPass(w http.ResponseWriter, r *http.Request) {
	var req model.RecoveryRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return
	}
	sendEnvelope(w, h.Auth.RecoveryPass(req))
}

// ResetPass godoc
// @Summary      Reset the password with a recovery token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        token query string true "Recovery token"
// @Param        request body model.ResetPasswordRequest true "New password"
// @Success      200 {object} common.Response
// @Failure      401 {object} common.Response
// @Router       /auth/reset-pass [patch]
func (h *AuthHandler) ResetPass(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		sendEnvelope(w, common.NewResponse(nil, "Missing token", common.CodeValidationError))
		return
	}
	var req model.ResetPasswordRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return
	}
	sendEnvelope(w, h.Auth.ResetPass(token, req))
}

// CheckToken godoc
// @Summary      Probe a session token
// @Tags         auth
// @Produce      json
// @Param        token query string true "Token"
// @Success      200 {object} common.Response
// @Failure      401 {object} common.Response
// @Router       /auth/check-token [get]
func (h *AuthHandler) CheckToken(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		sendEnvelope(w, common.NewResponse(nil, "Missing token", common.CodeValidationError))
		return
	}
	sendEnvelope(w, h.Auth.CheckToken(token))
}

// RefreshAuthToken godoc
// @Summary      Renew the auth token with a refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.RefreshRequest true "Refresh token"
// @Success      200 {object} common.Response
// @Router       /auth/refresh [post]
func (h *AuthHandler) RefreshAuthToken(w http.ResponseWriter, r *http.Request) {
	var req model.RefreshRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return
	}
	sendEnvelope(w, h.Auth.RefreshAuthToken(req))
}

// VerifyAccount godoc
// @Summary      Verify an account with its verification token
// @Description  Any failure is reported as ALREADY_VERIFIED; the precise cause stays internal
// @Tags         auth
// @Produce      json
// @Param        token query string true "Verification token"
// @Success      200 {object} common.Response
// @Failure      409 {object} common.Response
// @Router       /auth/verify-account [get]
func (h *AuthHandler) VerifyAccount(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		sendEnvelope(w, common.NewResponse(nil, "Missing token", common.CodeValidationError))
		return
	}

	res := h.Auth.VerifyAccount(token)
	// Single external mapping layer: bad token, expired token and unknown
	// user are indistinguishable from an already-verified account here.
	switch res.Code {
	case common.CodeTokenInvalid, common.CodeTokenExpired, common.CodeNotFound:
		sendEnvelope(w, common.NewResponse(nil, "Account already verified", common.CodeAlreadyVerified))
	default:
		sendEnvelope(w, res)
	}
}

// Logout godoc
// @Summary      Revoke a refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body model.RefreshRequest true "Refresh token"
// @Success      200 {object} common.Response
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req model.RefreshRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return
	}
	sendEnvelope(w, h.Auth.Logout(req))
}

// LogoutAll godoc
// @Summary      Revoke every session of the authenticated user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} common.Response
// @Failure      401 {object} common.Response
// @Router       /auth/logout-all [post]
func (h *AuthHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(UserIDKey).(string)
	if !ok || userID == "" {
		common.NewAppError(http.StatusUnauthorized, "Authentication required", nil).Send(w)
		return
	}
	sendEnvelope(w, h.Auth.LogoutAll(userID))
}

// RevokeUser godoc
// @Summary      Revoke every session of a given user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body model.RevokeSessionsRequest true "Target user"
// @Success      200 {object} common.Response
// @Failure      403 {object} common.Response
// @Router       /auth/revoke-user [post]
func (h *AuthHandler) RevokeUser(w http.ResponseWriter, r *http.Request) {
	var req model.RevokeSessionsRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return
	}
	sendEnvelope(w, h.Auth.LogoutAll(req.UserID))
}
