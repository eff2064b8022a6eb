package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mercatoapp/mercato-backend/api/routes"
	"github.com/mercatoapp/mercato-backend/internal/auth"
	"github.com/mercatoapp/mercato-backend/internal/cart"
	"github.com/mercatoapp/mercato-backend/internal/catalog"
	"github.com/mercatoapp/mercato-backend/internal/users"
	"github.com/mercatoapp/mercato-backend/pkg/auth/session"
	"github.com/mercatoapp/mercato-backend/pkg/config"
	"github.com/mercatoapp/mercato-backend/pkg/db"
	"github.com/mercatoapp/mercato-backend/pkg/firebase"
	"github.com/mercatoapp/mercato-backend/pkg/logger"
	"github.com/mercatoapp/mercato-backend/pkg/metrics"
	"github.com/mercatoapp/mercato-backend/pkg/migrate"
	"github.com/mercatoapp/mercato-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	var profileSync *firebase.Client
	if cfg.Firebase.Enabled() {
		profileSync, err = firebase.NewClient(cfg.Firebase, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create firebase client", err)
			os.Exit(1)
		}
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registerParams := auth.RegisterServiceParams{
		TxRunner:       dbClient,
		PasswordConfig: cfg.Password,
		Logger:         logg,
	}
	if profileSync != nil {
		registerParams.ProfileSync = profileSync
	}
	registerService, err := auth.NewRegisterService(registerParams)
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewServiceWithDB(dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	catalogService := catalog.NewServiceWithDB(dbClient.DB())

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:          cfg,
			Logger:          logg,
			DB:              dbClient,
			Redis:           redisClient,
			SessionManager:  sessionManager,
			AuthService:     authService,
			RegisterService: registerService,
			CartService:     cartService,
			CatalogService:  catalogService,
			HTTPMetrics:     httpMetrics,
			MetricsGatherer: registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
