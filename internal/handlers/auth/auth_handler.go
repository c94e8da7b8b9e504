// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"

	"homescout-service/internal/domain/profile"
	"homescout-service/internal/middleware"
	xerrors "homescout-service/internal/pkg/errors"
	"homescout-service/internal/pkg/response"
	service "homescout-service/internal/service/auth"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new account. POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req profile.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	p, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrDuplicateEntry) {
			response.Error(c, http.StatusConflict, "email already registered", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to register", err)
		return
	}

	response.Success(c, http.StatusCreated, "registered successfully", p)
}

// Login authenticates and opens a session. POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req profile.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		if xerrors.Is(err, xerrors.ErrRateLimited) {
			response.Error(c, http.StatusTooManyRequests, "too many login attempts, try again later", nil)
			return
		}
		response.Unauthorized(c, "invalid email or password")
		return
	}

	response.Success(c, http.StatusOK, "login successful", result)
}

// Logout revokes the current token. POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	err := h.authService.Logout(
		c.Request.Context(),
		middleware.GetUserID(c),
		middleware.GetJTI(c),
		middleware.GetExpiresAt(c),
	)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to logout", err)
		return
	}

	response.Success(c, http.StatusOK, "logged out", nil)
}

// LogoutAll drops every session of the user. POST /auth/logout-all
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	if err := h.authService.LogoutAll(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to logout", err)
		return
	}

	response.Success(c, http.StatusOK, "all sessions terminated", nil)
}

// Me returns the caller's profile. GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	p, err := h.authService.GetProfile(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.NotFound(c, "profile not found")
		return
	}

	response.Success(c, http.StatusOK, "profile", p)
}

// UpdateMe updates the caller's profile. PATCH /auth/me
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var req profile.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	p, err := h.authService.UpdateProfile(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to update profile", err)
		return
	}

	response.Success(c, http.StatusOK, "profile updated", p)
}

// Sessions lists the caller's live sessions. GET /auth/sessions
func (h *AuthHandler) Sessions(c *gin.Context) {
	sessions, err := h.authService.Sessions(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list sessions", err)
		return
	}

	response.Success(c, http.StatusOK, "active sessions", sessions)
}
