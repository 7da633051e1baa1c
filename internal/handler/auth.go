package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/oceanview/hotel-reservation/internal/config"
	"github.com/oceanview/hotel-reservation/internal/repository"
	"github.com/oceanview/hotel-reservation/internal/utils"
)

// AuthHandler bundles dependencies for authentication endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(cfg config.Config, users *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResp struct {
	Token    string    `json:"token"`
	Expires  time.Time `json:"expires"`
	Username string    `json:"username"`
	FullName string    `json:"full_name"`
	Role     string    `json:"role"`
	Message  string    `json:"message"`
}

// Login verifies staff credentials and returns a signed access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid username or password"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid username or password"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.Username, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	return c.JSON(http.StatusOK, loginResp{
		Token:    access.Token,
		Expires:  access.Exp,
		Username: u.Username,
		FullName: u.FullName,
		Role:     u.Role,
		Message:  "Login successful",
	})
}

// Me returns the authenticated user's identity from the verified token.
func (h *AuthHandler) Me(c echo.Context) error {
	username, _ := c.Get("username").(string)
	role, _ := c.Get("role").(string)
	if username == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, echo.Map{"username": username, "role": role})
}
