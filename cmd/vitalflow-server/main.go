package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vitalflow/vitalflow/internal/config"
	"github.com/vitalflow/vitalflow/internal/domain/billing"
	"github.com/vitalflow/vitalflow/internal/domain/clinical"
	"github.com/vitalflow/vitalflow/internal/domain/encounter"
	"github.com/vitalflow/vitalflow/internal/domain/identity"
	"github.com/vitalflow/vitalflow/internal/domain/medication"
	"github.com/vitalflow/vitalflow/internal/domain/notify"
	"github.com/vitalflow/vitalflow/internal/platform/actor"
	"github.com/vitalflow/vitalflow/internal/platform/cache"
	"github.com/vitalflow/vitalflow/internal/platform/db"
	"github.com/vitalflow/vitalflow/internal/platform/middleware"
	"github.com/vitalflow/vitalflow/internal/platform/ws"
)

const countCacheTTL = 30 * time.Second

func main() {
	rootCmd := &cobra.Command{
		Use:   "vitalflow-server",
		Short: "Hospital information system API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Unread/unacknowledged badge counters live in Redis when configured,
	// otherwise in process memory.
	var counts cache.CountStore
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("invalid REDIS_URL")
		}
		rdb := redis.NewClient(opts)
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		counts = cache.NewRedisCountStore(rdb, countCacheTTL)
		logger.Info().Msg("connected to redis")
	} else {
		counts = cache.NewMemoryCountStore(countCacheTTL)
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SanitizeWithLogger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.BodyLimit("1M"))
	e.Use(middleware.RequestTimeout(30 * time.Second))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID", "X-Actor-Role", "X-Actor-ID"},
	}))
	e.Use(actor.Middleware())
	e.Use(middleware.Audit(logger))

	// Rate limiting
	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}

	// Route groups
	apiV1 := e.Group("/api/v1")
	alertGroup := e.Group("/alert")
	messageGroup := e.Group("/message")
	apiV1.Use(middleware.RateLimit(rateLimitCfg))
	alertGroup.Use(middleware.RateLimit(rateLimitCfg))
	messageGroup.Use(middleware.RateLimit(rateLimitCfg))

	// WebSocket hub for live alert/message delivery
	hub := ws.NewHub()
	wsHandler := ws.NewHandler(hub)
	wsHandler.RegisterRoutes(e.Group("/ws"))

	// Notification core
	notifySvc := notify.NewService(pool, notify.NewAlertRepoPG(pool), notify.NewMessageRepoPG(pool), hub, counts)
	notify.NewHandler(notifySvc).RegisterRoutes(alertGroup, messageGroup)

	// Entity domains
	identitySvc := identity.NewService(
		identity.NewPatientRepoPG(pool),
		identity.NewDoctorRepoPG(pool),
		identity.NewNurseRepoPG(pool),
		identity.NewProxyRepoPG(pool),
	)
	identity.NewHandler(identitySvc).RegisterRoutes(apiV1)

	encounterSvc := encounter.NewService(encounter.NewVisitRepoPG(pool), encounter.NewDischargeRepoPG(pool))
	encounter.NewHandler(encounterSvc).RegisterRoutes(apiV1)

	clinicalSvc := clinical.NewService(clinical.NewVitalRepoPG(pool), clinical.NewConditionRepoPG(pool))
	clinical.NewHandler(clinicalSvc).RegisterRoutes(apiV1)

	medicationSvc := medication.NewService(medication.NewRepoPG(pool))
	medication.NewHandler(medicationSvc).RegisterRoutes(apiV1)

	billingSvc := billing.NewService(billing.NewInsuranceRepoPG(pool))
	billing.NewHandler(billingSvc).RegisterRoutes(apiV1)

	// Health checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
