package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type pingRegistrar struct {
	prefix string
}

func (p *pingRegistrar) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET(p.prefix+"/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	r := NewRouter(gin.New(), WithAPIVersion("v2"))

	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterRegister(t *testing.T) {
	r := NewRouter(gin.New())

	r.Register(&pingRegistrar{prefix: "/a"}, &pingRegistrar{prefix: "/b"})

	assert.Len(t, r.registrars, 2)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	NewRouter(engine).Register(&pingRegistrar{prefix: "/test"}).Setup()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/test/ping", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestRouterSetupCustomVersion(t *testing.T) {
	engine := gin.New()
	NewRouter(engine, WithAPIVersion("v2")).Register(&pingRegistrar{prefix: "/test"}).Setup()

	req := httptest.NewRequest(http.MethodGet, "/api/v2/test/ping", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
