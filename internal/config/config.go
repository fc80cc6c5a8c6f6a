// Package config handles loading and validating the charla configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration for the charla daemon.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Transports TransportsConfig `mapstructure:"transports"`
	Completion CompletionConfig `mapstructure:"completion"`
	Speech     SpeechConfig     `mapstructure:"speech"`
	Voices     VoicesConfig     `mapstructure:"voices"`
	Detection  DetectionConfig  `mapstructure:"detection"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig holds the health check server settings.
type ServerConfig struct {
	HealthPort int `mapstructure:"health_port"`
}

// TransportsConfig holds the configuration for each transport layer.
type TransportsConfig struct {
	HTTP HTTPConfig `mapstructure:"http"`
}

// HTTPConfig configures the HTTP transport.
type HTTPConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// CompletionConfig holds the Groq completion/transcription API settings.
// The same credential covers language classification, translation, and
// Whisper transcription.
type CompletionConfig struct {
	APIKey             string        `mapstructure:"api_key"`
	BaseURL            string        `mapstructure:"base_url"`
	CompletionModel    string        `mapstructure:"completion_model"`
	TranscriptionModel string        `mapstructure:"transcription_model"`
	Timeout            time.Duration `mapstructure:"timeout"`
}

// SpeechConfig holds the ElevenLabs text-to-speech API settings.
// An empty APIKey disables synthesis rather than failing startup.
type SpeechConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// VoicesConfig locates the tabular voice directory.
type VoicesConfig struct {
	CSVPath string `mapstructure:"csv_path"`
}

// DetectionConfig tunes the heuristic language classifier. The weights and
// threshold are empirical; they are configurable rather than hardcoded.
type DetectionConfig struct {
	DiacriticWeight    int `mapstructure:"diacritic_weight"`
	FunctionWordWeight int `mapstructure:"function_word_weight"`
	Threshold          int `mapstructure:"threshold"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// Load reads the configuration from file, environment variables, and defaults.
// If configFile is non-empty it is used directly; otherwise the standard
// search order applies: ./charla.yaml, ./configs/charla.yaml, /etc/charla/charla.yaml.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.health_port", 8081)
	v.SetDefault("transports.http.enabled", true)
	v.SetDefault("transports.http.port", 8080)
	v.SetDefault("completion.api_key", "${GROQ_API_KEY}")
	v.SetDefault("completion.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("completion.completion_model", "llama-3.3-70b-versatile")
	v.SetDefault("completion.transcription_model", "whisper-large-v3-turbo")
	v.SetDefault("completion.timeout", "30s")
	v.SetDefault("speech.api_key", "${ELEVEN_LABS_API_KEY}")
	v.SetDefault("speech.base_url", "https://api.elevenlabs.io/v1")
	v.SetDefault("speech.timeout", "30s")
	v.SetDefault("voices.csv_path", "reference/spanish_voices.csv")
	v.SetDefault("detection.diacritic_weight", 2)
	v.SetDefault("detection.function_word_weight", 1)
	v.SetDefault("detection.threshold", 2)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("charla")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/charla")
	}

	// Environment variables: CHARLA_SERVER_HEALTH_PORT, CHARLA_COMPLETION_API_KEY, etc.
	v.SetEnvPrefix("CHARLA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (optional — env vars and defaults are sufficient)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		slog.Info("no config file found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Resolve env var references in sensitive fields (e.g., "${GROQ_API_KEY}")
	cfg.Completion.APIKey = resolveEnvRef(cfg.Completion.APIKey)
	cfg.Speech.APIKey = resolveEnvRef(cfg.Speech.APIKey)

	return &cfg, nil
}

// resolveEnvRef replaces "${VAR_NAME}" patterns with the corresponding env var
// value. An unset variable resolves to the empty string so that a missing
// credential reads as absent rather than as the literal placeholder.
func resolveEnvRef(val string) string {
	if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
		return os.Getenv(val[2 : len(val)-1])
	}
	return val
}

// SetupLogging configures the global slog logger based on config.
func SetupLogging(cfg LoggingConfig) {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
