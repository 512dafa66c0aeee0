package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"pipelinecrm/internal/config"
	"pipelinecrm/internal/database"
	"pipelinecrm/internal/middleware"
	"pipelinecrm/internal/modules/analytics"
	"pipelinecrm/internal/modules/auth"
	"pipelinecrm/internal/modules/catalog"
	"pipelinecrm/internal/modules/interaction"
	"pipelinecrm/internal/modules/opportunity"
	jwtsvc "pipelinecrm/internal/pkg/jwt"
	"pipelinecrm/internal/realtime"
	"pipelinecrm/internal/repository"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is empty")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connect")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("database migrate")
	}
	sqlxDB, err := database.Sqlx(db)
	if err != nil {
		log.Fatal().Err(err).Msg("sqlx wrap")
	}

	orgRepo := repository.NewOrganizationRepository(db)
	principalRepo := repository.NewPrincipalRepository(db)
	productRepo := repository.NewProductRepository(db)
	oppRepo := repository.NewOpportunityRepository(db)
	interactionRepo := repository.NewInteractionRepository(db)
	userRepo := repository.NewUserRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(sqlxDB)

	hub := realtime.NewHub()
	defer hub.Close()

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(orgRepo, principalRepo, productRepo, hub)
	catalogHandler := catalog.NewHandler(catalogService)

	oppService := opportunity.NewService(oppRepo, orgRepo, principalRepo, hub)
	oppHandler := opportunity.NewHandler(oppService)

	interactionService := interaction.NewService(interactionRepo, principalRepo)
	interactionHandler := interaction.NewHandler(interactionService)

	analyticsService := analytics.NewService(analyticsRepo)
	analyticsHandler := analytics.NewHandler(analyticsService)

	realtimeHandler := realtime.NewHandler(hub)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			catalogHandler.RegisterRoutes(protected)
			oppHandler.RegisterRoutes(protected)
			interactionHandler.RegisterRoutes(protected)
			analyticsHandler.RegisterRoutes(protected)
			realtimeHandler.RegisterRoutes(protected)
		}
	}

	log.Info().Str("addr", cfg.HTTPAddr).Msg("starting API server")
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
