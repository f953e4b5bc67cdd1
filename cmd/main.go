package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"speech-enrichment-service/internal/app"
	"speech-enrichment-service/internal/config"
	"speech-enrichment-service/internal/enrich"
	"speech-enrichment-service/internal/events"
	"speech-enrichment-service/internal/feedback"
	httpapi "speech-enrichment-service/internal/http"
	"speech-enrichment-service/internal/jobs"
	"speech-enrichment-service/internal/observability"
	"speech-enrichment-service/internal/schema"
	"speech-enrichment-service/internal/service/prosody"
	prosodymock "speech-enrichment-service/internal/service/prosody/mock"
	prosodyremote "speech-enrichment-service/internal/service/prosody/remote"
	"speech-enrichment-service/internal/service/transcript"
	"speech-enrichment-service/internal/service/transcript/assemblyai"
	transcriptmock "speech-enrichment-service/internal/service/transcript/mock"
	"speech-enrichment-service/internal/service/vision"
	visionmock "speech-enrichment-service/internal/service/vision/mock"
	visionremote "speech-enrichment-service/internal/service/vision/remote"
)

func main() {
	cfg := config.Load()
	application := app.New(cfg)
	if err := application.Start(); err != nil {
		log.Fatal().Err(err).Msg("Application failed to start")
	}

	// Kafka publisher with separate topics for degraded and complete reports
	publisher := events.New(&events.Config{
		Enabled:       cfg.Kafka.Enabled,
		Brokers:       cfg.Kafka.Brokers,
		TopicDegraded: cfg.Kafka.TopicDegraded,
		TopicComplete: cfg.Kafka.TopicComplete,
		Principal:     cfg.Kafka.Principal,
	})
	defer publisher.Close()

	enricher := buildEnricher(cfg)
	orchestrator := jobs.NewOrchestrator(
		jobs.NewStore(),
		enricher,
		buildTranscriptAdapter(cfg),
		buildVisionAdapter(cfg),
		buildProsodyAdapter(cfg),
		publisher,
	)

	handlers := &httpapi.Handlers{
		Orchestrator: orchestrator,
		Enricher:     enricher,
		Validator:    schema.New(),
		Feedback:     buildFeedbackGenerator(cfg),
	}

	// Observability sidecar: /metrics, /healthz, /readyz
	obsServer := observability.NewServer(":" + cfg.Service.ObservabilityPort)
	obsServer.Start()

	apiServer := &http.Server{
		Addr:         ":" + cfg.Service.HTTPPort,
		Handler:      httpapi.NewRouter(handlers),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Service.HTTPPort).Msg("Speech enrichment service started")
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP serve failed")
		}
	}()
	obsServer.SetReady(true)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	obsServer.SetReady(false)
	log.Info().Msg("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP shutdown error")
	}
	if err := obsServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Observability shutdown error")
	}
	application.Shutdown()
}

func buildEnricher(cfg *config.Configuration) *enrich.Enricher {
	if cfg.Enrich.ThresholdsPath == "" {
		return enrich.NewDefault()
	}
	th, err := enrich.LoadThresholds(cfg.Enrich.ThresholdsPath)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.Enrich.ThresholdsPath).
			Msg("Could not load threshold overrides, using defaults")
	}
	return enrich.New(th, enrich.DefaultLexicon())
}

func buildTranscriptAdapter(cfg *config.Configuration) transcript.Adapter {
	if cfg.Providers.Transcript.Provider == "remote" {
		return assemblyai.New(assemblyai.Config{
			BaseURL:      cfg.Providers.Transcript.BaseURL,
			APIKey:       cfg.Providers.Transcript.APIKey,
			PollInterval: cfg.Providers.Transcript.PollInterval,
			Timeout:      cfg.Providers.Transcript.Timeout,
		})
	}
	return transcriptmock.New()
}

func buildVisionAdapter(cfg *config.Configuration) vision.Adapter {
	if cfg.Providers.Vision.Provider == "remote" {
		return visionremote.New(visionremote.Config{
			BaseURL: cfg.Providers.Vision.BaseURL,
			APIKey:  cfg.Providers.Vision.APIKey,
		})
	}
	return visionmock.New()
}

func buildProsodyAdapter(cfg *config.Configuration) prosody.Adapter {
	if cfg.Providers.Prosody.Provider == "remote" {
		return prosodyremote.New(prosodyremote.Config{
			BaseURL: cfg.Providers.Prosody.BaseURL,
			APIKey:  cfg.Providers.Prosody.APIKey,
			Timeout: cfg.Providers.Prosody.Timeout,
		})
	}
	return prosodymock.New()
}

func buildFeedbackGenerator(cfg *config.Configuration) *feedback.Generator {
	if cfg.Providers.Feedback.Provider != "remote" {
		return nil
	}
	return feedback.New(feedback.Config{
		BaseURL: cfg.Providers.Feedback.BaseURL,
		APIKey:  cfg.Providers.Feedback.APIKey,
		Model:   cfg.Providers.Feedback.Model,
		Timeout: cfg.Providers.Feedback.Timeout,
	})
}
