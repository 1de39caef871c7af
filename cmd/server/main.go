package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskboard/pkg/board"
	"taskboard/pkg/config"
	"taskboard/pkg/preference"
	"taskboard/pkg/taskapi"
	"taskboard/pkg/view"
	"taskboard/pkg/web"
	"taskboard/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	debug := flag.Bool("debug", false, "sets log level to debug")
	trace := flag.Bool("trace", false, "sets log level to trace")
	flag.Parse()

	utils.LoadEnvFile()
	utils.InitLogger(*debug, *trace)

	cfg := config.FromEnv()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	backends, err := config.OpenBackends(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open backends")
	}

	apiURL, err := preference.ResolveAPIURL(ctx, backends.Preferences)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to resolve API URL")
	}
	log.Info().Str("apiUrl", apiURL).Msg("Using task API")

	client := taskapi.NewClient(apiURL, taskapi.WithTimeout(cfg.RequestTimeout))
	controller := board.NewController(client, view.Options{
		APIURL:     apiURL,
		TimeLayout: cfg.TimeLayout,
	})

	rateLimiter, err := web.NewLimiter(cfg.RateLimit, backends.Cache)
	if err != nil {
		log.Fatal().Err(err).Str("rate", cfg.RateLimit).Msg("Invalid rate limit")
	}

	log.Info().Msgf("Allowed origins: %v", cfg.AllowedOrigins)
	router := web.NewRouter(web.Config{
		Board:          controller,
		Health:         client,
		AllowedOrigins: cfg.AllowedOrigins,
		Limiter:        rateLimiter,
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.ServerPort).Msg("Serving task board")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Msgf("Received signal: %s. Shutting down...", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server Shutdown:")
	}
	backends.Close()
	log.Info().Msg("Server exiting")
}
