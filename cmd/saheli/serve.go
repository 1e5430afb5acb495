package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/hersaheli/saheli/internal/api"
	"github.com/hersaheli/saheli/internal/cli"
	"github.com/hersaheli/saheli/internal/config"
	"github.com/hersaheli/saheli/internal/db"
	"github.com/hersaheli/saheli/internal/services"
	"github.com/spf13/cobra"
)

const tokenPurgeInterval = 6 * time.Hour

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if dbPath != "" {
			cfg.DBPath = dbPath
		}
		return runServer(cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServer(cfg config.Config) error {
	time.Local = cfg.Location

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return err
	}

	repositories := db.NewRepositories(database)
	symptomCount, contentCount, err := cli.SeedCatalogs(repositories)
	if err != nil {
		return err
	}
	if symptomCount > 0 || contentCount > 0 {
		log.Printf("seeded %d symptoms and %d content items", symptomCount, contentCount)
	}

	handler, err := api.NewHandler(database, cfg.SecretKey, cfg.Location, api.TokenSettings{
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
	})
	if err != nil {
		return err
	}

	app := fiber.New(fiber.Config{
		AppName:               "Saheli",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(corsMiddlewareConfig(cfg.CORSAllowedOrigin)))

	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()
	go runTokenPurger(lifecycleCtx, services.NewSessionService(repositories.Tokens), tokenPurgeInterval)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Saheli listening on http://0.0.0.0:%s (db: %s, tz: %s)", cfg.Port, cfg.DBPath, cfg.Location.String())
	return app.Listen(":" + cfg.Port)
}

func corsMiddlewareConfig(allowedOrigin string) cors.Config {
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}
	return cors.Config{
		AllowOrigins: allowedOrigin,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}
}

func runTokenPurger(ctx context.Context, sessions *services.SessionService, interval time.Duration) {
	purge := func() {
		removed, err := sessions.PurgeExpired(time.Now().UTC())
		if err != nil {
			log.Printf("token purge failed: %v", err)
			return
		}
		if removed > 0 {
			log.Printf("purged %d expired token records", removed)
		}
	}

	purge()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purge()
		}
	}
}
