package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"stocksim/internal/delivery/http/dto"
	"stocksim/internal/domain"
	"stocksim/internal/middleware"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	userRepo       domain.UserRepository
	accountRepo    domain.AccountRepository
	initialBalance float64
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo domain.UserRepository, accountRepo domain.AccountRepository, initialBalance float64) *AuthHandler {
	return &AuthHandler{
		userRepo:       userRepo,
		accountRepo:    accountRepo,
		initialBalance: initialBalance,
	}
}

// Register handles user registration. A virtual account funded with
// the configured initial balance is created alongside the user.
// POST /api/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		return BadRequestResponse(c, "Email and password are required")
	}
	if len(req.Password) < 6 {
		return BadRequestResponse(c, "Password must be at least 6 characters")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to hash password", err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: string(hashedPassword),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := h.userRepo.Create(ctx, user); err != nil {
		return DomainErrorResponse(c, err)
	}

	account := &domain.VirtualAccount{
		ID:             uuid.New(),
		UserID:         user.ID,
		Balance:        h.initialBalance,
		InitialBalance: h.initialBalance,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := h.accountRepo.Create(ctx, account); err != nil {
		return InternalServerErrorResponse(c, "Failed to create virtual account", err)
	}

	return CreatedResponse(c, map[string]interface{}{
		"message": "User registered successfully",
		"email":   user.Email,
		"balance": account.Balance,
	})
}

// Login handles user login
// POST /api/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	if req.Email == "" || req.Password == "" {
		return BadRequestResponse(c, "Email and password are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(req.Email)))
	if err != nil {
		return UnauthorizedResponse(c, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return UnauthorizedResponse(c, "Invalid credentials")
	}

	token, err := middleware.GenerateJWT(user.ID)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to generate token", err)
	}

	cookie := &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true in production with HTTPS
		SameSite: http.SameSiteStrictMode,
		MaxAge:   86400, // 24 hours
	}
	c.SetCookie(cookie)

	return SuccessResponse(c, dto.LoginResponse{
		Token: token,
		User: &dto.UserOutput{
			ID:       user.ID.String(),
			Email:    user.Email,
			FullName: user.FullName,
		},
	})
}

// Logout handles user logout
// POST /api/auth/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	cookie := &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1, // Delete cookie
	}
	c.SetCookie(cookie)

	return SuccessMessageResponse(c, "Logged out", nil)
}
