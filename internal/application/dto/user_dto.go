package dto

import "github.com/jhoicas/invorya-dashboard/internal/domain/entity"

// LoginRequest entrada para POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// RegisterRequest entrada para POST /auth/register (crea tenant + usuario admin).
type RegisterRequest struct {
	Email       string `json:"email" form:"email"`
	Password    string `json:"password" form:"password"`
	FirstName   string `json:"first_name" form:"first_name"`
	LastName    string `json:"last_name" form:"last_name"`
	CompanyName string `json:"company_name" form:"company_name"`
}

// RefreshRequest entrada para POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// AuthData payload de login/register/refresh.
type AuthData struct {
	User         entity.User `json:"user"`
	Token        string      `json:"token"`
	RefreshToken string      `json:"refresh_token"`
}

// AuthResponse respuesta completa de login/register.
type AuthResponse = Envelope[AuthData]

// MeResponse respuesta de GET /auth/me.
type MeResponse = Envelope[entity.User]

// SessionView estado de sesión expuesto por GET /auth/session.
// Route es la última navegación pedida por la sesión (/dashboard, /auth/login).
type SessionView struct {
	State         string          `json:"state"`
	Authenticated bool            `json:"authenticated"`
	User          *entity.User    `json:"user"`
	Capabilities  map[string]bool `json:"capabilities"`
	Route         string          `json:"route,omitempty"`
}
