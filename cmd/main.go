package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"hospguardian/internal/ai"
	"hospguardian/internal/api"
	"hospguardian/internal/config"
	"hospguardian/internal/database"
	"hospguardian/internal/monitoring"
	"hospguardian/internal/store"
	"hospguardian/internal/syncer"
)

var (
	configFile = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "no .env file found, using system environment variables")
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config %s unavailable (%v), using defaults\n", *configFile, err)
		cfg = config.Default()
	}

	log := setupLogger(cfg)
	log.Info().Int("port", cfg.Server.Port).Str("driver", cfg.Database.Driver).Msg("starting HospGuardian API server")

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	kv, err := store.NewKV(db, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize key-value store")
	}

	metrics := monitoring.NewMetrics()
	hub := syncer.NewHub(log)
	broadcaster := syncer.NewBroadcaster(kv, metrics, log)
	broadcaster.AttachSender(hub)

	st := store.New(kv, broadcaster, metrics, log)

	gateway := ai.NewGateway(initializeLLM(cfg, log), nil, ai.LogSpeaker{Log: log}, metrics, log)

	secret := cfg.Auth.JWTSecret
	if secret == "" {
		secret = "hospguardian-dev-secret"
		log.Warn().Msg("no JWT secret configured, using development default")
	}

	server := api.NewServer(st, broadcaster, hub, gateway, metrics, secret, log)

	go startMetricsServer(cfg.Server.MetricsPort, metrics, log)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: server.Router,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info().Msg("shutting down servers")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("API server shutdown error")
		}
	}()

	log.Info().Msgf("API server listening on :%d", cfg.Server.Port)
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("API server error")
	}
}

func setupLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	var out = zerolog.New(os.Stdout)
	if cfg.Log.Pretty {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	return out.Level(level).With().Timestamp().Logger()
}

// initializeLLM builds the generative-AI client. A missing key or
// disabled config returns nil; the gateway then serves fallbacks only.
func initializeLLM(cfg *config.Config, log zerolog.Logger) llms.Model {
	if !cfg.AI.Enabled {
		return nil
	}
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		log.Warn().Msg("AI enabled but OPENAI_API_KEY not set, insights will use fallbacks")
		return nil
	}
	llm, err := openai.New(
		openai.WithModel(cfg.AI.Model),
		openai.WithToken(key),
	)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize AI client, insights will use fallbacks")
		return nil
	}
	return llm
}

func startMetricsServer(port int, metrics *monitoring.Metrics, log zerolog.Logger) {
	metricsRouter := gin.New()
	metricsRouter.GET("/metrics", gin.WrapH(metrics.Handler()))

	log.Info().Msgf("metrics server listening on :%d", port)
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Error().Err(err).Msg("metrics server error")
	}
}
