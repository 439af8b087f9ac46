package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/ballotportal/election-api/internal/api/handler"
	"github.com/ballotportal/election-api/internal/api/middleware"
	"github.com/ballotportal/election-api/internal/core/domain"
	"github.com/ballotportal/election-api/internal/core/ports"
)

// Services are the core services the HTTP layer delegates to.
type Services struct {
	Auth      ports.AuthService
	Profiles  ports.ProfileService
	Elections ports.ElectionService
	Periods   ports.PeriodService
	Votes     ports.VotingService
	Results   ports.ResultsService
}

// Options configures the router.
type Options struct {
	JWTSecret string
	Logger    zerolog.Logger
	// Readiness holds the dependency checks behind /health/ready.
	Readiness map[string]handler.Check
	// Registerer receives the HTTP metrics. Nil means the default registry.
	Registerer prometheus.Registerer
	// Gatherer backs /metrics. Nil means the default registry.
	Gatherer prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(opts.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "voting",
		Registerer: opts.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Operational routes (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(opts.Readiness).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: opts.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	periods := handler.NewPeriodHandler(svc.Periods)
	votes := handler.NewVoteHandler(svc.Votes)
	results := handler.NewResultsHandler(svc.Results)
	profiles := handler.NewProfileHandler(svc.Profiles)
	elections := handler.NewElectionHandler(svc.Elections)

	auth := middleware.Auth(opts.JWTSecret)

	// --- Voter routes ---
	public := e.Group("/api/public", auth)
	public.GET("/periods", periods.List)
	public.GET("/periods/:id/timing", periods.Timing)
	public.GET("/candidates", periods.Candidates)
	public.POST("/votes", votes.Cast)
	public.GET("/public-results", results.Public)
	public.GET("/profile", profiles.Get)
	public.PUT("/profile", profiles.Put)

	// --- Administration ---
	admin := e.Group("/api/admin", auth, middleware.RequireRole(domain.RoleAdmin))
	admin.POST("/users", profiles.Upsert)
	admin.POST("/elections", elections.Create)
	admin.GET("/elections", elections.List)
	admin.POST("/periods", periods.Create)
	admin.POST("/periods/:id/candidates", periods.AddCandidate)
	admin.POST("/periods/:id/publish", periods.Publish)
	admin.GET("/periods/:id/results", results.Admin)

	return e
}

// requestLogger routes Echo's request log through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
