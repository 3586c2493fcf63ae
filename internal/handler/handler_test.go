package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Pranavipulluri/break-even/internal/auth"
	"github.com/Pranavipulluri/break-even/internal/config"
	"github.com/Pranavipulluri/break-even/internal/database"
	"github.com/Pranavipulluri/break-even/internal/domain"
	"github.com/Pranavipulluri/break-even/internal/mail"
	"github.com/Pranavipulluri/break-even/internal/middleware"
	"github.com/Pranavipulluri/break-even/internal/repository"
	"github.com/Pranavipulluri/break-even/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testEnv wires the full ingestion stack against an in-memory SQLite
// database, with enrichment running synchronously so side effects can be
// asserted right after a request.
type testEnv struct {
	app *fiber.App
	db  *gorm.DB

	feedbackRepo   *repository.FeedbackRepository
	interestRepo   *repository.InterestRepository
	subscriberRepo *repository.SubscriberRepository
	analyticsRepo  *repository.AnalyticsRepository
	customerRepo   *repository.CustomerRepository

	jwtService *auth.JWTService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Expiry = time.Hour

	feedbackRepo := repository.NewFeedbackRepository(db)
	interestRepo := repository.NewInterestRepository(db)
	subscriberRepo := repository.NewSubscriberRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	productRepo := repository.NewProductRepository(db)

	enricher := service.NewEnrichmentService(subscriberRepo, analyticsRepo, mail.NewSender(cfg))
	enricher.Dispatch = func(fn func()) { fn() }

	jwtService := auth.NewJWTService(cfg)
	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	feedbackHandler := NewFeedbackHandler(feedbackRepo, enricher)
	interestHandler := NewInterestHandler(interestRepo, enricher)
	newsletterHandler := NewNewsletterHandler(subscriberRepo, enricher)
	authHandler := NewAuthHandler(customerRepo, enricher, jwtService)
	messageHandler := NewMessageHandler(messageRepo)
	productHandler := NewProductHandler(productRepo)
	dashboardHandler := NewDashboardHandler(feedbackRepo, interestRepo, subscriberRepo, messageRepo)

	app := fiber.New()
	api := app.Group("/api/v1")

	public := api.Group("/public")
	public.Post("/feedback", feedbackHandler.Submit)
	public.Get("/feedback/recent", feedbackHandler.Recent)
	public.Post("/interest", interestHandler.Submit)
	public.Post("/newsletter", newsletterHandler.Subscribe)
	public.Post("/register", authHandler.Register)
	public.Post("/login", authHandler.Login)
	public.Post("/messages", messageHandler.Submit)
	public.Get("/products", productHandler.PublicList)

	feedbackRoutes := api.Group("/feedback", authMiddleware.Required())
	feedbackRoutes.Get("/", feedbackHandler.List)
	feedbackRoutes.Get("/stats", feedbackHandler.Stats)

	interestRoutes := api.Group("/interests", authMiddleware.Required())
	interestRoutes.Get("/", interestHandler.List)
	interestRoutes.Patch("/:id/status", interestHandler.UpdateStatus)

	api.Get("/dashboard/stats", authMiddleware.Required(), dashboardHandler.Stats)

	return &testEnv{
		app:            app,
		db:             db,
		feedbackRepo:   feedbackRepo,
		interestRepo:   interestRepo,
		subscriberRepo: subscriberRepo,
		analyticsRepo:  analyticsRepo,
		customerRepo:   customerRepo,
		jwtService:     jwtService,
	}
}

func (e *testEnv) postJSON(t *testing.T, path string, body interface{}) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) patchJSON(t *testing.T, path string, body interface{}, token string) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPatch, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func newGetRequest(t *testing.T, path, token string) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

// tokenForBusiness registers a throwaway dashboard account and returns a
// valid bearer token scoped to the given business.
func (e *testEnv) tokenForBusiness(t *testing.T, businessID *uuid.UUID) string {
	t.Helper()

	customer := &domain.Customer{
		Name:         "Owner",
		Email:        uuid.New().String() + "@example.com",
		BusinessID:   businessID,
		PasswordHash: "unused",
		LoginCount:   1,
		IsActive:     true,
	}
	require.NoError(t, e.customerRepo.Create(customer))

	token, err := e.jwtService.GenerateToken(customer)
	require.NoError(t, err)
	return token
}

// envelope mirrors dto.Response with data left raw for per-test decoding.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), "body: %s", raw)
	return env
}

func decodeData(t *testing.T, env envelope, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, out))
}
