package router

import (
	"grafik-auth-api/handler"
	"grafik-auth-api/service"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func NewRouter(authHandler *handler.AuthHandler, tokens service.ITokenService, adminRoleID string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	if authHandler != nil {
		mux.HandleFunc("POST /auth/signup", authHandler.Signup)
		mux.HandleFunc("POST /auth/login", authHandler.Login)
		mux.HandleFunc("POST /auth/recovery", authHandler.RecoveryPass)
		mux.HandleFunc("PATCH /auth/reset-pass", authHandler.ResetPass)
		mux.HandleFunc("GET /auth/check-token", authHandler.CheckToken)
		mux.HandleFunc("POST /auth/refresh", authHandler.RefreshAuthToken)
		mux.HandleFunc("GET /auth/verify-account", authHandler.VerifyAccount)
		mux.HandleFunc("POST /auth/logout", authHandler.Logout)
	}

	if authHandler != nil && tokens != nil {
		authed := handler.AuthMiddleware(tokens)
		mux.Handle("POST /auth/logout-all", authed(http.HandlerFunc(authHandler.LogoutAll)))
		mux.Handle("POST /auth/revoke-user",
			authed(handler.RoleMiddleware(adminRoleID)(http.HandlerFunc(authHandler.RevokeUser))))
	}

	return handler.RecoverMiddleware(mux)
}
