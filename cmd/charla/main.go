// Charla is a bilingual voice translation daemon. It detects whether input
// text (or transcribed speech) is English or Spanish, translates it to the
// other language, and optionally synthesizes the result as speech.
//
// Usage:
//
//	charla [flags]
//	charla --config /path/to/charla.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/charlavoz/charla/docs" // registers the swagger spec
	"github.com/charlavoz/charla/internal/config"
	"github.com/charlavoz/charla/internal/dispatch"
	"github.com/charlavoz/charla/internal/health"
	"github.com/charlavoz/charla/internal/lang"
	"github.com/charlavoz/charla/internal/translate"
	"github.com/charlavoz/charla/internal/transport"
	httptransport "github.com/charlavoz/charla/internal/transport/http"
	"github.com/charlavoz/charla/internal/tts"
	"github.com/charlavoz/charla/internal/tts/elevenlabs"
	"github.com/charlavoz/charla/internal/voice"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configFile := flag.String("config", "", "path to config file (e.g. configs/charla.local.yaml)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("charla %s\n", version)
		os.Exit(0)
	}

	// Load configuration.
	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging.
	config.SetupLogging(cfg.Logging)
	slog.Info("charla starting", "version", version)

	// Create root context with signal handling for graceful shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load the voice catalog once; it is read-only for the process lifetime.
	catalog := voice.Load(cfg.Voices.CSVPath)

	// Build the translation engine. A missing completion credential is fatal.
	detector := lang.NewDetector(
		cfg.Detection.DiacriticWeight,
		cfg.Detection.FunctionWordWeight,
		cfg.Detection.Threshold)
	engine, err := translate.New(cfg.Completion, detector)
	if err != nil {
		slog.Error("failed to initialize translation engine", "error", err)
		os.Exit(1)
	}
	slog.Info("translation engine ready",
		"completion_model", cfg.Completion.CompletionModel,
		"transcription_model", cfg.Completion.TranscriptionModel)

	// Speech synthesis degrades gracefully when the credential is absent.
	var synth tts.Synthesizer
	var lister httptransport.VoiceLister
	if cfg.Speech.APIKey == "" {
		slog.Warn("speech synthesis credential not set, TTS unavailable")
	} else {
		client := elevenlabs.New(cfg.Speech)
		synth = client
		lister = client
		slog.Info("speech synthesis ready")
	}
	speaker := tts.NewSpeaker(synth, catalog)
	defer speaker.Close()

	// Create the dispatcher.
	dispatcher := dispatch.New(engine, speaker)

	// Initialize enabled transports.
	var transports []transport.Transport
	if cfg.Transports.HTTP.Enabled {
		transports = append(transports, httptransport.New(cfg.Transports.HTTP.Port, catalog, speaker, lister))
	}
	if len(transports) == 0 {
		slog.Error("no transports enabled — enable at least one in config")
		os.Exit(1)
	}

	// Start health check server.
	healthServer := health.New(cfg.Server.HealthPort, catalog)
	go func() {
		if err := healthServer.ListenAndServe(ctx); err != nil {
			slog.Error("health server failed", "error", err)
		}
	}()

	// Start all transports.
	var wg sync.WaitGroup
	for _, t := range transports {
		wg.Add(1)
		go func(t transport.Transport) {
			defer wg.Done()
			slog.Info("starting transport", "name", t.Name())
			if err := t.Listen(ctx, dispatcher.Handle); err != nil {
				slog.Error("transport failed", "name", t.Name(), "error", err)
			}
		}(t)
	}

	// Mark as ready once all transports are started.
	healthServer.SetReady(true)
	slog.Info("charla ready",
		"transports", len(transports),
		"health_port", cfg.Server.HealthPort,
		"tts_enabled", speaker.Enabled())

	// Block until shutdown signal.
	<-ctx.Done()
	slog.Info("shutdown signal received, draining...")

	// Close all transports gracefully.
	for _, t := range transports {
		if err := t.Close(); err != nil {
			slog.Error("transport close error", "name", t.Name(), "error", err)
		}
	}

	wg.Wait()
	slog.Info("charla stopped")
}
