package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mercatoapp/mercato-backend/api/controllers"
	"github.com/mercatoapp/mercato-backend/api/middleware"
	"github.com/mercatoapp/mercato-backend/internal/auth"
	"github.com/mercatoapp/mercato-backend/internal/cart"
	"github.com/mercatoapp/mercato-backend/internal/catalog"
	"github.com/mercatoapp/mercato-backend/pkg/auth/session"
	"github.com/mercatoapp/mercato-backend/pkg/config"
	"github.com/mercatoapp/mercato-backend/pkg/logger"
	"github.com/mercatoapp/mercato-backend/pkg/metrics"
	"github.com/mercatoapp/mercato-backend/pkg/redis"
)

// Deps carries everything the router mounts. Nil optional fields disable
// the corresponding surface (metrics, rate limiting) rather than panic.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              controllers.Pinger
	Redis           *redis.Client
	SessionManager  session.AccessSessionChecker
	AuthService     auth.Service
	RegisterService auth.RegisterService
	CartService     cart.Service
	CatalogService  *catalog.Service
	HTTPMetrics     *metrics.HTTPMetrics
	MetricsGatherer prometheus.Gatherer
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		chimiddleware.StripSlashes,
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	var cache controllers.Pinger
	if deps.Redis != nil {
		cache = deps.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, cache, logg))
	})

	if deps.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.MetricsGatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		if deps.Redis != nil {
			r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
			r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).Post("/register", controllers.AuthRegister(deps.RegisterService, deps.AuthService, logg))
		} else {
			r.Post("/login", controllers.AuthLogin(deps.AuthService, logg))
			r.Post("/register", controllers.AuthRegister(deps.RegisterService, deps.AuthService, logg))
		}
		r.Post("/logout", controllers.AuthLogout(deps.AuthService, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog", controllers.CatalogMenu(deps.CatalogService, logg))
		r.Get("/home", controllers.Home(deps.CatalogService, logg))
		r.Get("/restaurants", controllers.Restaurants(deps.CatalogService, logg))
		r.Get("/market", controllers.Market(deps.CatalogService, logg))
		r.Get("/pharmacy", controllers.Pharmacy(deps.CatalogService, logg))
		r.Get("/liquor", controllers.Liquor(deps.CatalogService, logg))
		r.Get("/pets", controllers.Pets(deps.CatalogService, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))
			r.Get("/", controllers.CartGet(deps.CartService, logg))
			r.Post("/add", controllers.CartAddItem(deps.CartService, logg))
			r.Post("/remove/{itemId}", controllers.CartRemoveItem(deps.CartService, logg))
			r.Post("/clear", controllers.CartClear(deps.CartService, logg))
		})
	})

	return r
}
