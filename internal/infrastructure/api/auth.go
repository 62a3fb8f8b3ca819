package api

import (
	"context"
	"net/http"

	"github.com/jhoicas/invorya-dashboard/internal/application/dto"
)

// AuthAPI endpoints /auth/*.
type AuthAPI struct{ d Doer }

// Login POST /auth/login.
func (a *AuthAPI) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	return call[dto.AuthResponse](ctx, a.d, http.MethodPost, "/auth/login", nil,
		dto.LoginRequest{Email: email, Password: password})
}

// Register POST /auth/register.
func (a *AuthAPI) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	return call[dto.AuthResponse](ctx, a.d, http.MethodPost, "/auth/register", nil, in)
}

// Logout POST /auth/logout (invalida la sesión en el servidor).
func (a *AuthAPI) Logout(ctx context.Context) error {
	_, err := call[Ack](ctx, a.d, http.MethodPost, "/auth/logout", nil, nil)
	return err
}

// Me GET /auth/me.
func (a *AuthAPI) Me(ctx context.Context) (*dto.MeResponse, error) {
	return call[dto.MeResponse](ctx, a.d, http.MethodGet, "/auth/me", nil, nil)
}

// Refresh POST /auth/refresh. Definido pero nunca invocado automáticamente.
func (a *AuthAPI) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	return call[dto.AuthResponse](ctx, a.d, http.MethodPost, "/auth/refresh", nil,
		dto.RefreshRequest{RefreshToken: refreshToken})
}
