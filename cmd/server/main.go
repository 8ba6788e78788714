package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/dkeye/Consult/internal/adapters/http"
	"github.com/dkeye/Consult/internal/adapters/questions"
	"github.com/dkeye/Consult/internal/adapters/sentiment"
	"github.com/dkeye/Consult/internal/adapters/transcribe"
	"github.com/dkeye/Consult/internal/app"
	"github.com/dkeye/Consult/internal/app/orch"
	"github.com/dkeye/Consult/internal/audio"
	"github.com/dkeye/Consult/internal/config"
	"github.com/dkeye/Consult/internal/metrics"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("failed to read .env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		log.Warn().Str("log_level", cfg.LogLevel).Msg("unknown log level, keeping info")
	}

	transcriber, err := transcribe.New(ctx, cfg.Transcription, cfg.Audio.SampleRate)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up transcription")
	}
	if c, ok := transcriber.(io.Closer); ok {
		defer c.Close()
	}
	analyzer, err := sentiment.New(ctx, cfg.Sentiment)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up sentiment")
	}
	rules, err := questions.LoadRulebook(cfg.Questions.RulesPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load question rules")
	}
	log.Info().
		Str("transcription", cfg.Transcription.Backend).
		Str("sentiment", cfg.Sentiment.Backend).
		Int("rules", rules.Len()).
		Msg("collaborators ready")

	m := metrics.NewMetrics()
	o := &orch.Orchestrator{
		Registry:    app.NewRegistry(app.WithMetrics(m)),
		Windower:    audio.NewWindower(cfg.Audio.SampleRate, cfg.Audio.WindowSeconds),
		Transcriber: transcriber,
		Sentiment:   analyzer,
		Questions:   rules,
		Policy:      app.SimplePolicy{},
		Metrics:     m,
	}

	r := router.SetupRouter(ctx, cfg, o)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("Consult server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
