package mockapi

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/invorya-dashboard/internal/application/dto"
	"github.com/jhoicas/invorya-dashboard/internal/domain/entity"
	pkgjwt "github.com/jhoicas/invorya-dashboard/pkg/jwt"
)

// AddUser crea una cuenta en tenantID. Útil para sembrar datos en tests.
func (s *Server) AddUser(email, password, firstName, lastName string, role entity.Role, tenantID string) (entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.opts.BcryptCost)
	if err != nil {
		return entity.User{}, fmt.Errorf("mockapi: hash password: %w", err)
	}
	now := s.now()
	u := entity.User{
		ID:        uuid.NewString(),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		FirstName: firstName,
		LastName:  lastName,
		Role:      role,
		TenantID:  tenantID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[u.Email]; exists {
		return entity.User{}, fmt.Errorf("mockapi: email %s ya registrado", u.Email)
	}
	s.accounts[u.Email] = &account{user: u, hash: hash}
	return u, nil
}

func (s *Server) issue(u entity.User) (dto.AuthData, error) {
	access, err := pkgjwt.Generate(s.opts.Secret, u.ID, u.TenantID, u.Role.String(), pkgjwt.KindAccess, s.opts.Issuer, s.opts.AccessTTL)
	if err != nil {
		return dto.AuthData{}, err
	}
	refresh, err := pkgjwt.Generate(s.opts.Secret, u.ID, u.TenantID, u.Role.String(), pkgjwt.KindRefresh, s.opts.Issuer, s.opts.RefreshTTL)
	if err != nil {
		return dto.AuthData{}, err
	}
	s.mu.Lock()
	s.issued[access] = true
	s.mu.Unlock()
	return dto.AuthData{User: u, Token: access, RefreshToken: refresh}, nil
}

func (s *Server) register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid_body", "invalid request body")
	}
	if in.Email == "" || in.Password == "" || in.CompanyName == "" {
		return fail(c, fiber.StatusBadRequest, "validation", "missing required fields")
	}
	u, err := s.AddUser(in.Email, in.Password, in.FirstName, in.LastName, entity.RoleAdmin, uuid.NewString())
	if err != nil {
		return fail(c, fiber.StatusConflict, "conflict", "email already registered")
	}
	data, err := s.issue(u)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "internal", err.Error())
	}
	s.log.Info().Str("email", u.Email).Str("tenant_id", u.TenantID).Msg("registro")
	return c.Status(fiber.StatusCreated).JSON(dto.AuthResponse{Success: true, Data: data, Message: "registration successful"})
}

func (s *Server) login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid_body", "invalid request body")
	}
	if in.Email == "" || in.Password == "" {
		return fail(c, fiber.StatusBadRequest, "validation", "email and password are required")
	}
	s.mu.Lock()
	acc, found := s.accounts[strings.ToLower(strings.TrimSpace(in.Email))]
	s.mu.Unlock()
	if !found || bcrypt.CompareHashAndPassword(acc.hash, []byte(in.Password)) != nil {
		return fail(c, fiber.StatusUnauthorized, "invalid_credentials", "Credenciales inválidas")
	}
	if !acc.user.IsActive {
		return fail(c, fiber.StatusForbidden, "inactive", "user is inactive")
	}
	data, err := s.issue(acc.user)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "internal", err.Error())
	}
	return c.JSON(dto.AuthResponse{Success: true, Data: data, Message: "login successful"})
}

func (s *Server) refresh(c *fiber.Ctx) error {
	var in dto.RefreshRequest
	if err := c.BodyParser(&in); err != nil || in.RefreshToken == "" {
		return fail(c, fiber.StatusBadRequest, "validation", "refresh token is required")
	}
	claims, err := pkgjwt.Parse(s.opts.Secret, in.RefreshToken, pkgjwt.KindRefresh)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "unauthorized", "invalid refresh token")
	}
	u, found := s.userByID(claims.UserID)
	if !found {
		return fail(c, fiber.StatusUnauthorized, "unauthorized", "user not found")
	}
	data, err := s.issue(u)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "internal", err.Error())
	}
	return c.JSON(dto.AuthResponse{Success: true, Data: data})
}

func (s *Server) logout(c *fiber.Ctx) error {
	token := strings.TrimSpace(strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer"))
	s.mu.Lock()
	delete(s.issued, token)
	s.mu.Unlock()
	return okMessage(c, "logout successful")
}

func (s *Server) me(c *fiber.Ctx) error {
	u, found := s.userByID(claimsOf(c).UserID)
	if !found {
		return fail(c, fiber.StatusNotFound, "not_found", "user not found")
	}
	return ok(c, fiber.StatusOK, u)
}

func (s *Server) userByID(id string) (entity.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acc := range s.accounts {
		if acc.user.ID == id {
			return acc.user, true
		}
	}
	return entity.User{}, false
}
