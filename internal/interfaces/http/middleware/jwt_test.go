package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiendapro/backend/internal/infrastructure/auth"
	"github.com/tiendapro/backend/internal/infrastructure/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-of-sufficient-length",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "tiendapro-test",
	})
}

func issueToken(t *testing.T, svc *auth.JWTService, role string) (*auth.TokenPair, auth.GenerateTokenInput) {
	t.Helper()
	input := auth.GenerateTokenInput{
		OrgID:  uuid.New(),
		UserID: uuid.New(),
		Email:  "ana@example.com",
		Role:   role,
	}
	pair, err := svc.GenerateTokenPair(input)
	require.NoError(t, err)
	return pair, input
}

func newProtectedRouter(cfg JWTMiddlewareConfig) *gin.Engine {
	r := gin.New()
	r.Use(JWTAuthMiddlewareWithConfig(cfg))
	r.GET("/api/v1/users", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"org_id": GetJWTOrgID(c), "user_id": GetJWTUserID(c)})
	})
	r.POST("/api/v1/auth/login", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	svc := newJWTService()
	pair, input := issueToken(t, svc, "admin")
	r := newProtectedRouter(DefaultJWTConfig(svc))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), input.OrgID.String())
	assert.Contains(t, w.Body.String(), input.UserID.String())
}

func TestJWTAuthMiddleware_MissingToken(t *testing.T) {
	r := newProtectedRouter(DefaultJWTConfig(newJWTService()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/users", nil))

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestJWTAuthMiddleware_MalformedHeader(t *testing.T) {
	r := newProtectedRouter(DefaultJWTConfig(newJWTService()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.Header.Set("Authorization", "Token abc123")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
}

func TestJWTAuthMiddleware_RefreshTokenRejected(t *testing.T) {
	svc := newJWTService()
	pair, _ := issueToken(t, svc, "admin")
	r := newProtectedRouter(DefaultJWTConfig(svc))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN_TYPE")
}

func TestJWTAuthMiddleware_SkipPaths(t *testing.T) {
	r := newProtectedRouter(DefaultJWTConfig(newJWTService()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthMiddleware_BlacklistedToken(t *testing.T) {
	svc := newJWTService()
	pair, _ := issueToken(t, svc, "admin")
	blacklist := auth.NewInMemoryTokenBlacklist()

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	require.NoError(t, blacklist.AddToBlacklist(context.Background(), claims.ID, time.Hour))

	cfg := DefaultJWTConfig(svc)
	cfg.TokenBlacklist = blacklist
	r := newProtectedRouter(cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_REVOKED")
}

func TestJWTAuthMiddleware_InvalidatedUserSession(t *testing.T) {
	svc := newJWTService()
	pair, input := issueToken(t, svc, "admin")
	blacklist := auth.NewInMemoryTokenBlacklist()

	// Invalidation happens after issuance, so the token must be rejected
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, blacklist.InvalidateUserTokens(context.Background(), input.UserID.String(), time.Hour))

	cfg := DefaultJWTConfig(svc)
	cfg.TokenBlacklist = blacklist
	r := newProtectedRouter(cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	svc := newJWTService()
	adminPair, _ := issueToken(t, svc, "admin")
	staffPair, _ := issueToken(t, svc, "staff")

	r := gin.New()
	r.Use(JWTAuthMiddlewareWithConfig(DefaultJWTConfig(svc)))
	r.DELETE("/api/v1/users/:id", RequireRole("admin"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	t.Run("admin allowed", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/users/abc", nil)
		req.Header.Set("Authorization", "Bearer "+adminPair.AccessToken)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("staff forbidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/users/abc", nil)
		req.Header.Set("Authorization", "Bearer "+staffPair.AccessToken)
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "FORBIDDEN")
	})
}
