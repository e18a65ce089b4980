// file: service/auth_service.go

package service

import (
	"fmt"
	"grafik-auth-api/common"
	"grafik-auth-api/logger"
	"grafik-auth-api/model"
)

// IAuthService exposes the orchestrated auth flows to the transport layer.
type IAuthService interface {
	Login(req model.LoginRequest) *common.Response
	Signup(req model.SignupRequest) *common.Response
	RecoveryPass(req model.RecoveryRequest) *common.Response
	ResetPass(token string, req model.ResetPasswordRequest) *common.Response
	CheckToken(token string) *common.Response
	RefreshAuthToken(req model.RefreshRequest) *common.Response
	VerifyAccount(token string) *common.Response
	Logout(req model.RefreshRequest) *common.Response
	LogoutAll(userID string) *common.Response
}

// AuthSession is the login result: the safe user projection plus the
// freshly issued token pair.
type AuthSession struct {
	User         model.User        `json:"user"`
	AuthToken    model.IssuedToken `json:"authToken"`
	RefreshToken model.IssuedToken `json:"refreshToken"`
}

// RefreshSession is the refresh result. The refresh token is echoed back
// unchanged: refresh tokens are not rotated on use.
type RefreshSession struct {
	User         model.User        `json:"user"`
	AuthToken    model.IssuedToken `json:"authToken"`
	RefreshToken string            `json:"refreshToken"`
}

// RecoveryTokenData is the recovery-request result.
type RecoveryTokenData struct {
	ResetPassToken model.IssuedToken `json:"resetPassToken"`
}

// AuthService composes the token service, credential hasher, user
// directory and mail notifier into the business flows. Flows are ordered
// steps with no rollback: a later failure never retracts an earlier side
// effect.
type AuthService struct {
	hash   IHashService
	tokens ITokenService
	users  IUserService
	mail   IMailService
}

func NewAuthService(hash IHashService, tokens ITokenService, users IUserService, mail IMailService) *AuthService {
	return &AuthService{
		hash:   hash,
		tokens: tokens,
		users:  users,
		mail:   mail,
	}
}

// guard is the per-flow failure boundary: an unexpected fault inside a
// flow becomes an ERROR envelope carrying the fault's message instead of
// escaping to the transport layer.
func (s *AuthService) guard(res **common.Response) {
	if r := recover(); r != nil {
		logger.Log.WithField("fault", fmt.Sprint(r)).Error("Unexpected fault in auth flow")
		*res = common.NewResponse(nil, fmt.Sprint(r), common.CodeError)
	}
}

// Login authenticates credentials and mints an auth/refresh token pair.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(req model.LoginRequest) (res *common.Response) {
	defer s.guard(&res)

	const invalidCredentialsMessage = "Invalid credentials, try again"

	userRes := s.users.FindByIdentifier("email", req.Email)
	if userRes.Code == common.CodeNotFound {
		return common.NewResponse(nil, invalidCredentialsMessage, common.CodeInvalidCredentials)
	}
	if !userRes.IsSuccess() {
		return common.NewResponse(nil, userRes.Message, common.CodeError)
	}
	user := userRes.Data.(model.User)

	cmp := s.hash.ComparePassword(req.Password, user.Password)
	if cmp.Code == common.CodeInvalidCredentials {
		return common.NewResponse(nil, invalidCredentialsMessage, common.CodeInvalidCredentials)
	}
	if !cmp.IsSuccess() {
		return common.NewResponse(nil, cmp.Message, common.CodeError)
	}

	payload := model.TokenPayload{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.RoleID,
	}

	authRes := s.tokens.Sign(model.TokenKindAuth, payload)
	if !authRes.IsSuccess() {
		return common.NewResponse(nil, "Error creating access token", common.CodeError)
	}

	refreshRes := s.tokens.Sign(model.TokenKindRefresh, payload)
	if !refreshRes.IsSuccess() {
		return common.NewResponse(nil, "Error creating refresh token", common.CodeError)
	}

	session := AuthSession{
		User:         user.Projection(),
		AuthToken:    authRes.Data.(model.IssuedToken),
		RefreshToken: refreshRes.Data.(model.IssuedToken),
	}
	return common.NewResponse(session, "Login successful", common.CodeSuccess)
}

// Signup delegates to the user directory and passes its result code
// through unchanged.
func (s *AuthService) Signup(req model.SignupRequest) (res *common.Response) {
	defer s.guard(&res)
	return s.users.Create(req)
}

// RecoveryPass issues a recovery token and mails the reset link. An
// unregistered address gets a "not registered" mail and the same masked
// INVALID_CREDENTIALS code the login flow uses.
func (s *AuthService) RecoveryPass(req model.RecoveryRequest) (res *common.Response) {
	defer s.guard(&res)

	userRes := s.users.FindByIdentifier("email", req.Email)
	if !userRes.IsSuccess() {
		s.mail.SendAuthTemplate(req.Email, MailTemplateData{
			Subject:       "Access request for GRAFIK PLAY",
			Preheader:     "Request access to GRAFIK PLAY to reach your visual content",
			Title:         "You don't have access to GRAFIK PLAY",
			Text1:         "To reach the content, request access to",
			TextAction:    "GRAFIK PLAY",
			TextActionURL: "/",
			ButtonText:    "Request access",
			ButtonURL:     "/auth/login",
		})
		return common.NewResponse(nil, "The email is not registered", common.CodeInvalidCredentials)
	}
	user := userRes.Data.(model.User)

	tokenRes := s.tokens.Sign(model.TokenKindRecovery, model.TokenPayload{ID: user.ID})
	if !tokenRes.IsSuccess() {
		return common.NewResponse(nil, "Error creating reset password token", common.CodeError)
	}
	issued := tokenRes.Data.(model.IssuedToken)

	s.mail.SendAuthTemplate(user.Email, MailTemplateData{
		Subject:       "Password recovery",
		Preheader:     "Recover your password to access your visual content",
		Title:         "Password recovery",
		Text1:         "Recover your password to access your content on",
		TextAction:    "GRAFIK PLAY",
		TextActionURL: "/",
		Text2:         ", click the button below",
		ButtonText:    "Recover password",
		ButtonURL:     fmt.Sprintf("/auth/reset-pass?token=%s", issued.Token),
	})

	return common.NewResponse(
		RecoveryTokenData{ResetPassToken: issued},
		"Reset password token sent to email successfully",
		common.CodeSuccess,
	)
}

// ResetPass decodes the recovery token, stores the new password, sends the
// confirmation mail and revokes the token.
func (s *AuthService) ResetPass(token string, req model.ResetPasswordRequest) (res *common.Response) {
	defer s.guard(&res)

	decoded := s.tokens.Decode(token)
	if decoded.Code == common.CodeTokenExpired {
		return common.NewResponse(nil, "Token expired", common.CodeTokenExpired)
	}
	if decoded.Code == common.CodeTokenInvalid {
		return common.NewResponse(nil, "Invalid token", common.CodeTokenInvalid)
	}
	if !decoded.IsSuccess() {
		return common.NewResponse(nil, decoded.Message, common.CodeError)
	}
	payload := decoded.Data.(model.TokenPayload)

	userRes := s.users.FindByIdentifier("id", payload.ID)
	if !userRes.IsSuccess() {
		return common.NewResponse(nil, "Error finding user", common.CodeNotFound)
	}
	user := userRes.Data.(model.User)

	if updateRes := s.users.UpdatePassword(user.ID, req.Password); !updateRes.IsSuccess() {
		return common.NewResponse(nil, "Error updating password", common.CodeUpdatedFailed)
	}

	s.mail.SendAuthTemplate(user.Email, MailTemplateData{
		Subject:       "Password updated",
		Preheader:     "Your password has been updated",
		Title:         "Your password has been updated",
		Text1:         "Click the link below to access your content on",
		TextAction:    "GRAFIK PLAY",
		TextActionURL: "/auth/login",
		Text2:         ", click the button below",
		ButtonText:    "Access my content",
		ButtonURL:     "/auth/login",
	})

	s.tokens.Revoke(token)

	return common.NewResponse(nil, "Password updated successfully", common.CodeSuccess)
}

// CheckToken probes a persisted token. An expired token is revoked as a
// cleanup side effect before the TOKEN_EXPIRED result is returned; an
// invalid token has nothing to revoke.
func (s *AuthService) CheckToken(token string) (res *common.Response) {
	defer s.guard(&res)

	decoded := s.tokens.Decode(token)
	if decoded.Code == common.CodeTokenExpired {
		s.tokens.Revoke(token)
		return common.NewResponse(nil, "Token expired", common.CodeTokenExpired)
	}
	if decoded.Code == common.CodeTokenInvalid {
		return common.NewResponse(nil, "Invalid token", common.CodeTokenInvalid)
	}
	if !decoded.IsSuccess() {
		return common.NewResponse(nil, decoded.Message, common.CodeError)
	}

	return common.NewResponse(decoded.Data, "Valid token", common.CodeSuccess)
}

// RefreshAuthToken mints a fresh auth token against a valid refresh token.
// The refresh token itself is echoed back unchanged.
func (s *AuthService) RefreshAuthToken(req model.RefreshRequest) (res *common.Response) {
	defer s.guard(&res)

	decoded := s.tokens.Decode(req.RefreshToken)
	if !decoded.IsSuccess() {
		return common.NewResponse(nil, "Error decoding refresh token", common.CodeError)
	}
	payload := decoded.Data.(model.TokenPayload)

	userRes := s.users.FindByIdentifier("id", payload.ID)
	if !userRes.IsSuccess() {
		return common.NewResponse(nil, "Error finding user", common.CodeError)
	}
	user := userRes.Data.(model.User)

	authRes := s.tokens.Sign(model.TokenKindAuth, model.TokenPayload{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.RoleID,
	})
	if !authRes.IsSuccess() {
		return common.NewResponse(nil, "Error creating access token", common.CodeError)
	}

	session := RefreshSession{
		User:         user.Projection(),
		AuthToken:    authRes.Data.(model.IssuedToken),
		RefreshToken: req.RefreshToken,
	}
	return common.NewResponse(session, "Auth token updated successfully", common.CodeSuccess)
}

// VerifyAccount consumes a verification token and flips the user to
// verified. It reports the precise internal cause (invalid/expired token,
// missing user, already verified); the handler collapses all of those to
// a single ALREADY_VERIFIED surface.
func (s *AuthService) VerifyAccount(token string) (res *common.Response) {
	defer s.guard(&res)

	decoded := s.tokens.Decode(token)
	if decoded.Code == common.CodeTokenExpired || decoded.Code == common.CodeTokenInvalid {
		return common.NewResponse(nil, "Error decoding verification token", decoded.Code)
	}
	if !decoded.IsSuccess() {
		return common.NewResponse(nil, decoded.Message, common.CodeError)
	}
	payload := decoded.Data.(model.TokenPayload)

	userRes := s.users.FindByIdentifier("id", payload.ID)
	if !userRes.IsSuccess() {
		return common.NewResponse(nil, "Error finding user", common.CodeNotFound)
	}
	user := userRes.Data.(model.User)

	if user.IsVerified {
		return common.NewResponse(nil, "Account already verified", common.CodeAlreadyVerified)
	}

	if revokeRes := s.tokens.Revoke(token); !revokeRes.IsSuccess() {
		return common.NewResponse(nil, "Error deleting verification token", common.CodeError)
	}

	if updateRes := s.users.UpdateVerifyAccount(user.ID); !updateRes.IsSuccess() {
		return common.NewResponse(nil, "Error updating user", common.CodeError)
	}

	s.mail.SendAuthTemplate(user.Email, MailTemplateData{
		Subject:       "Your account has been verified!",
		Preheader:     "Your account has been verified. Access your exclusive visual content now.",
		Title:         "Account verified successfully",
		Text1:         "You can now access your content on",
		TextAction:    "GRAFIK PLAY",
		TextActionURL: "/auth/login",
		Text2:         ", click the button below",
		ButtonText:    "Access my content",
		ButtonURL:     "/auth/login",
	})

	return common.NewResponse(nil, "Account verified successfully", common.CodeSuccess)
}

// Logout revokes the refresh token, ending the session.
func (s *AuthService) Logout(req model.RefreshRequest) (res *common.Response) {
	defer s.guard(&res)

	if revokeRes := s.tokens.Revoke(req.RefreshToken); !revokeRes.IsSuccess() {
		return common.NewResponse(nil, "Error deleting refresh token", common.CodeError)
	}

	return common.NewResponse(nil, "Session closed successfully", common.CodeSuccess)
}

// LogoutAll revokes every persisted token the user holds: all refresh
// sessions plus any pending recovery or verification tokens.
func (s *AuthService) LogoutAll(userID string) (res *common.Response) {
	defer s.guard(&res)

	if revokeRes := s.tokens.RevokeAllForUser(userID); !revokeRes.IsSuccess() {
		return common.NewResponse(nil, "Error deleting user sessions", common.CodeError)
	}

	return common.NewResponse(nil, "All sessions closed successfully", common.CodeSuccess)
}
