package handlers

import (
	"net"
	"net/http"

	"eventify/internal/services"
	"eventify/internal/store"
	"eventify/monitoring"
	"eventify/security"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/redis/go-redis/v9"
)

// Dependencies is everything the router needs. Redis, RateLimiter and
// Monitor may be nil.
type Dependencies struct {
	Store          *store.Store
	Redis          *redis.Client
	Auth           *services.AuthService
	Catalog        *services.CatalogService
	Approvals      *services.ApprovalService
	Payments       *services.PaymentService
	Registrations  *services.RegistrationService
	RateLimiter    *security.RateLimiter
	Monitor        *monitoring.Monitor
	CORSOrigins    []string
	// TrustedProxies may set X-Forwarded-For; everyone else is keyed by
	// their peer address.
	TrustedProxies []*net.IPNet
	// StubCheckout serves the stub provider's fake checkout page.
	StubCheckout   bool
}

// NewRouter builds the HTTP API.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.IPExtractor = security.ClientIPExtractor(deps.TrustedProxies)

	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	e.Use(RequestLogger(deps.Monitor))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, echo.HeaderXRequestID},
	}))

	authHandler := NewAuthHandler(deps.Auth)
	catalogHandler := NewCatalogHandler(deps.Catalog)
	adminHandler := NewAdminHandler(deps.Approvals)
	paymentHandler := NewPaymentHandler(deps.Payments)
	registrationHandler := NewRegistrationHandler(deps.Registrations)
	healthHandler := NewHealthHandler(deps.Store, deps.Redis)

	requireAuth := security.RequireAuth(deps.Auth)

	e.GET("/health", healthHandler.Check)
	if deps.StubCheckout {
		e.GET("/stub-checkout", paymentHandler.StubCheckout)
	}

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register, deps.RateLimiter.AuthRateLimit())
	auth.POST("/login", authHandler.Login, deps.RateLimiter.AuthRateLimit())
	auth.GET("/me", authHandler.Me)

	api.GET("/colleges", catalogHandler.ListColleges)
	api.GET("/colleges/:id", catalogHandler.GetCollege)
	api.GET("/colleges/:id/events", catalogHandler.ListCollegeEvents)
	api.GET("/events", catalogHandler.ListEvents)
	api.GET("/events/:id", catalogHandler.GetEvent)
	api.GET("/challenges", catalogHandler.ListChallenges)
	api.GET("/challenges/:id", catalogHandler.GetChallenge)

	admin := api.Group("/admin", requireAuth)
	admin.GET("/colleges/pending", adminHandler.PendingColleges)
	admin.POST("/colleges/:id/approve", adminHandler.ApproveCollege)
	admin.GET("/events/pending", adminHandler.PendingEvents)
	admin.POST("/events/:id/approve", adminHandler.ApproveEvent)
	admin.GET("/challenges/pending", adminHandler.PendingChallenges)
	admin.POST("/challenges/:id/approve", adminHandler.ApproveChallenge)

	api.POST("/payments/create-session", paymentHandler.CreateSession, requireAuth)
	api.POST("/register-event", registrationHandler.Register, requireAuth)
	api.GET("/registrations", registrationHandler.ListMine, requireAuth)

	return e
}
