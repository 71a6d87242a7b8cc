package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/wrenchly/wrenchly/modules/appointment"
	"github.com/wrenchly/wrenchly/modules/invoice"
	"github.com/wrenchly/wrenchly/modules/vehicle"
	"github.com/wrenchly/wrenchly/pkg/authz"
	"github.com/wrenchly/wrenchly/pkg/config"
	"github.com/wrenchly/wrenchly/pkg/gate"
	"github.com/wrenchly/wrenchly/pkg/httpserver"
	"github.com/wrenchly/wrenchly/pkg/idp"
	"github.com/wrenchly/wrenchly/pkg/logger"
	"github.com/wrenchly/wrenchly/pkg/membership"
	"github.com/wrenchly/wrenchly/pkg/pg"
	"github.com/wrenchly/wrenchly/pkg/ratelimiter"
	"github.com/wrenchly/wrenchly/pkg/redis"
	"github.com/wrenchly/wrenchly/pkg/response"
)

type appConfig struct {
	Env     string `env:"APP_ENV" envDefault:"development"`
	Service string `env:"APP_NAME" envDefault:"wrenchly"`
}

func main() {
	ctx := context.Background()

	var (
		appCfg   appConfig
		httpCfg  httpserver.Config
		pgCfg    pg.Config
		redisCfg redis.Config
		idpCfg   idp.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&httpCfg)
	config.MustLoad(&pgCfg)
	config.MustLoad(&redisCfg)
	config.MustLoad(&idpCfg)

	extractors := append(gate.LoggerExtractors(), authz.RoleLoggerExtractor())
	log := logger.New(
		logger.WithEnvironment(appCfg.Env, appCfg.Service),
		logger.WithContextExtractors(extractors...),
	)
	logger.SetAsDefault(log)

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		log.ErrorContext(ctx, "postgres connection failed", logger.Error(err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		log.ErrorContext(ctx, "migrations failed", logger.Error(err))
		os.Exit(1)
	}

	redisClient, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		log.ErrorContext(ctx, "redis connection failed", logger.Error(err))
		os.Exit(1)
	}
	defer redisClient.Close()

	idpClient, err := idp.New(idpCfg)
	if err != nil {
		log.ErrorContext(ctx, "identity provider client setup failed", logger.Error(err))
		os.Exit(1)
	}

	registry, err := authz.NewRegistry(authz.DefaultGrants())
	if err != nil {
		log.ErrorContext(ctx, "role registry construction failed", logger.Error(err))
		os.Exit(1)
	}

	g := gate.New(registry, idpClient, membership.NewResolver(idpClient), gate.WithLogger(log))

	limiter, err := ratelimiter.NewBucket(
		ratelimiter.NewRedisStore(redisClient),
		ratelimiter.Config{Capacity: 30, RefillRate: 30, RefillInterval: time.Minute},
	)
	if err != nil {
		log.ErrorContext(ctx, "rate limiter setup failed", logger.Error(err))
		os.Exit(1)
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", httpserver.HealthCheckHandler(ctx, log))
	r.Get("/ready", httpserver.HealthCheckHandler(ctx, log,
		pg.Healthcheck(pool),
		redis.Healthcheck(redisClient),
	))

	// Unauthenticated surfaces are the ones attackers probe; meter them.
	r.Group(func(pub chi.Router) {
		pub.Use(ratelimiter.Middleware(limiter, ratelimiter.ByClientIP))
		pub.Get(gate.SignInPath, signInPage(idpCfg.BaseURL))
		pub.Get(gate.OrgSelectPath, orgSelectionPage)
		pub.Get(gate.ForbiddenPath, forbiddenPage)
	})

	vehicleSvc := vehicle.NewService(vehicle.NewPGRepository(pool), vehicle.WithLogger(log))
	appointmentSvc := appointment.NewService(appointment.NewPGRepository(pool), appointment.WithLogger(log))
	invoiceSvc := invoice.NewService(invoice.NewPGRepository(pool), invoice.WithLogger(log))

	r.Route("/orgs/{tenantID}", func(org chi.Router) {
		org.With(g.Pages(gate.MembershipOnly())).Get("/", dashboardPage)
		org.Mount("/vehicles", vehicle.Router(vehicleSvc, g))
		org.Mount("/appointments", appointment.Router(appointmentSvc, g))
		org.Mount("/invoices", invoice.Router(invoiceSvc, g))
	})

	srv := httpserver.NewFromConfig(httpCfg,
		httpserver.WithLogger(log),
		httpserver.WithStartHook(func(l *slog.Logger) { l.Info("server listening", "addr", httpCfg.Addr) }),
	)
	if err := srv.Run(ctx, r); err != nil {
		log.ErrorContext(ctx, "server exited with error", logger.Error(err))
		os.Exit(1)
	}
}

// signInPage hands the browser off to the hosted identity provider, which
// owns the actual sign-in flow, and passes the return_to parameter through.
func signInPage(idpBaseURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		target := idpBaseURL + "/sign-in"
		if returnTo := r.URL.Query().Get("return_to"); returnTo != "" {
			target += "?return_to=" + url.QueryEscape(returnTo)
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
	}
}

func orgSelectionPage(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"message": "select an organization to continue",
	})
}

func forbiddenPage(w http.ResponseWriter, r *http.Request) {
	response.Error(w, response.ErrForbidden)
}

// dashboardPage is the organization landing page behind the gate.
func dashboardPage(w http.ResponseWriter, r *http.Request) {
	principal, _ := gate.PrincipalFromContext(r.Context())
	role, _ := authz.RoleFromContext(r.Context())
	response.JSON(w, http.StatusOK, map[string]string{
		"principal": principal.Email,
		"role":      role.String(),
	})
}
