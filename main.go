package main

import (
	"fmt"
	"os"

	"github.com/saviladev/PhishingDetector/internal/api"
	"github.com/saviladev/PhishingDetector/internal/cache"
	"github.com/saviladev/PhishingDetector/internal/config"
	"github.com/saviladev/PhishingDetector/internal/database"
	"github.com/saviladev/PhishingDetector/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	log, err := createLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	db, err := database.NewPostgresConnection(cfg.Database.DSN())
	if err != nil {
		log.Error("Failed to connect to database", logger.Error(err))
		return 1
	}
	defer func() { _ = db.Close() }()

	log.Info("Database connected",
		logger.String("host", cfg.Database.Host),
		logger.Int("port", cfg.Database.Port),
		logger.String("database", cfg.Database.Database),
	)

	statsCache := createStatsCache(cfg, log)

	return runServer(cfg, log, database.NewRepository(db), statsCache)
}

// loadConfig loads and validates configuration.
func loadConfig() (*config.Config, error) {
	configPath := config.GetConfigPath("config.yml")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if validationErr := cfg.Validate(); validationErr != nil {
		return nil, fmt.Errorf("validate config: %w", validationErr)
	}
	return cfg, nil
}

// createLogger creates a logger instance from configuration.
func createLogger(cfg *config.Config) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(logger.String("service", cfg.Service.Name)), nil
}

// createStatsCache connects the optional Redis statistics cache. A
// connection failure disables caching rather than preventing startup.
func createStatsCache(cfg *config.Config, log logger.Logger) *cache.StatsCache {
	if cfg.Redis.Addr == "" {
		log.Info("Statistics cache disabled, no redis address configured")
		return cache.NewStatsCache(nil, cfg.Redis.StatsTTL, log)
	}

	client, err := cache.NewClient(cfg.Redis.Addr, cfg.Redis.Password)
	if err != nil {
		log.Warn("Statistics cache unavailable, serving from database",
			logger.Error(err),
		)
		return cache.NewStatsCache(nil, cfg.Redis.StatsTTL, log)
	}

	log.Info("Statistics cache connected", logger.String("addr", cfg.Redis.Addr))
	return cache.NewStatsCache(client, cfg.Redis.StatsTTL, log)
}

// runServer creates the router and starts the HTTP server.
func runServer(cfg *config.Config, log logger.Logger, repo *database.Repository, statsCache *cache.StatsCache) int {
	router := api.NewRouter(repo, statsCache, cfg, log)
	srv := router.NewServer(log)

	log.Info("Phishing detector starting",
		logger.Int("port", cfg.Service.Port),
	)

	if err := srv.Run(); err != nil {
		log.Error("Server error", logger.Error(err))
		return 1
	}

	log.Info("Phishing detector exited cleanly")
	return 0
}
