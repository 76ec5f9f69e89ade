package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	appidentity "github.com/tiendapro/backend/internal/application/identity"
	apppartner "github.com/tiendapro/backend/internal/application/partner"
	appprocurement "github.com/tiendapro/backend/internal/application/procurement"
	appreport "github.com/tiendapro/backend/internal/application/report"
	"github.com/tiendapro/backend/internal/domain/identity"
	"github.com/tiendapro/backend/internal/domain/partner"
	"github.com/tiendapro/backend/internal/infrastructure/auth"
	"github.com/tiendapro/backend/internal/infrastructure/config"
	"github.com/tiendapro/backend/internal/infrastructure/persistence"
	"github.com/tiendapro/backend/internal/infrastructure/persistence/models"
	"github.com/tiendapro/backend/internal/interfaces/http/middleware"
	"github.com/tiendapro/backend/internal/interfaces/http/router"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testServer hosts the full API surface against an in-memory database.
type testServer struct {
	engine *gin.Engine
	access string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&identity.Organization{},
		&identity.User{},
		&partner.Provider{},
		&partner.Store{},
		&models.PurchaseModel{},
		&models.PurchaseLineModel{},
		&models.PaymentModel{},
	))

	orgRepo := persistence.NewGormOrganizationRepository(db)
	userRepo := persistence.NewGormUserRepository(db)
	providerRepo := persistence.NewGormProviderRepository(db)
	storeRepo := persistence.NewGormStoreRepository(db)
	purchaseRepo := persistence.NewGormPurchaseRepository(db)
	paymentRepo := persistence.NewGormPaymentRepository(db)
	reportRepo := persistence.NewGormReportRepository(db)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-of-sufficient-length",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "tiendapro-test",
	})
	blacklist := auth.NewInMemoryTokenBlacklist()

	userService := appidentity.NewUserService(userRepo)
	authService := appidentity.NewAuthService(db, orgRepo, userRepo, jwtService, blacklist, zap.NewNop())
	providerService := apppartner.NewProviderService(providerRepo, purchaseRepo)
	storeService := apppartner.NewStoreService(storeRepo)
	purchaseService := appprocurement.NewPurchaseService(db, purchaseRepo, paymentRepo, providerRepo, storeRepo, nil)
	paymentService := appprocurement.NewPaymentService(db, purchaseRepo, paymentRepo, nil)
	reportService := appreport.NewReportService(reportRepo)

	engine := gin.New()
	engine.Use(middleware.RequestID())

	jwtCfg := middleware.DefaultJWTConfig(jwtService)
	jwtCfg.TokenBlacklist = blacklist
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtCfg))

	router.NewRouter(engine).Register(
		NewAuthHandler(authService, userService),
		NewUserHandler(userService),
		NewProviderHandler(providerService),
		NewStoreHandler(storeService),
		NewPurchaseHandler(purchaseService),
		NewPaymentHandler(paymentService),
		NewReportHandler(reportService),
	).Setup()

	srv := &testServer{engine: engine}
	srv.signup(t)
	return srv
}

// signup creates the test organization and stores its admin access token
func (s *testServer) signup(t *testing.T) {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/auth/signup", gin.H{
		"org_name":  "Tienda Don Pedro",
		"org_slug":  "tienda-don-pedro",
		"email":     "ana@example.com",
		"password":  "correct-horse",
		"full_name": "Ana Morales",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.AccessToken)
	s.access = resp.Data.AccessToken
}

// do performs a request, marshalling body as JSON when non-nil
func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

// authed performs a request using the admin token
func (s *testServer) authed(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	return s.do(t, method, path, body, s.access)
}

// decodeData unmarshals the data field of a response envelope into out
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.True(t, envelope.Success)
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

// createProvider registers a provider over HTTP and returns its ID
func (s *testServer) createProvider(t *testing.T, code, name string) string {
	t.Helper()
	w := s.authed(t, http.MethodPost, "/api/v1/providers", gin.H{
		"code":        code,
		"name":        name,
		"credit_days": 30,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var provider struct {
		ID string `json:"id"`
	}
	decodeData(t, w, &provider)
	return provider.ID
}

// createStore registers a store over HTTP and returns its ID
func (s *testServer) createStore(t *testing.T, code, name string) string {
	t.Helper()
	w := s.authed(t, http.MethodPost, "/api/v1/stores", gin.H{
		"code": code,
		"name": name,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var store struct {
		ID string `json:"id"`
	}
	decodeData(t, w, &store)
	return store.ID
}

// createPurchase registers a 1000.00 purchase due in 30 days
func (s *testServer) createPurchase(t *testing.T, storeID, providerID, invoice string) string {
	t.Helper()
	w := s.authed(t, http.MethodPost, "/api/v1/purchases", gin.H{
		"store_id":       storeID,
		"provider_id":    providerID,
		"invoice_number": invoice,
		"purchase_date":  time.Now().Add(-24 * time.Hour).Format(time.RFC3339),
		"due_date":       time.Now().Add(30 * 24 * time.Hour).Format(time.RFC3339),
		"lines": []gin.H{
			{"name": "Coffee beans 1kg", "quantity": "10", "unit": "bag", "unit_price": "100"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var purchase struct {
		ID string `json:"id"`
	}
	decodeData(t, w, &purchase)
	return purchase.ID
}
