package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	appidentity "github.com/tiendapro/backend/internal/application/identity"
	"github.com/tiendapro/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles signup, login and token lifecycle endpoints
type AuthHandler struct {
	BaseHandler
	auth  *appidentity.AuthService
	users *appidentity.UserService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth *appidentity.AuthService, users *appidentity.UserService) *AuthHandler {
	return &AuthHandler{auth: auth, users: users}
}

// RegisterRoutes mounts auth routes under /auth
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/signup", h.Signup)
	auth.POST("/login", h.Login)
	auth.POST("/refresh", h.Refresh)
	auth.POST("/logout", h.Logout)
	auth.GET("/me", h.Me)
}

// Signup creates an organization together with its first admin user
func (h *AuthHandler) Signup(c *gin.Context) {
	var req appidentity.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.auth.Signup(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// Login authenticates a user and returns a token pair
func (h *AuthHandler) Login(c *gin.Context) {
	var req appidentity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Refresh rotates a refresh token into a fresh token pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req appidentity.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.auth.Refresh(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// logoutRequest carries the refresh token to revoke alongside the
// access token taken from the Authorization header
type logoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Logout revokes the caller's current access and refresh tokens
func (h *AuthHandler) Logout(c *gin.Context) {
	var req logoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	accessToken := strings.TrimPrefix(c.GetHeader(middleware.AuthHeaderKey), middleware.BearerPrefix)
	if err := h.auth.Logout(c.Request.Context(), accessToken, req.RefreshToken); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(c *gin.Context) {
	orgID, err := getOrgID(c)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	user, err := h.users.Get(c.Request.Context(), orgID, userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, user)
}
