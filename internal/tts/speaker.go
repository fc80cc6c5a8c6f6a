package tts

import (
	"context"
	"log/slog"

	"github.com/charlavoz/charla/internal/voice"
)

// Speaker resolves a voice selection against the catalog and synthesizes
// speech through the configured backend. It is the null-safe boundary the
// pipeline talks to: every failure path returns nil audio, never an error.
type Speaker struct {
	synth   Synthesizer // nil when TTS is disabled
	catalog *voice.Catalog
}

// NewSpeaker creates a Speaker. A nil synthesizer produces a disabled
// speaker whose Speak always returns nil.
func NewSpeaker(synth Synthesizer, catalog *voice.Catalog) *Speaker {
	return &Speaker{synth: synth, catalog: catalog}
}

// Enabled reports whether a synthesis backend is configured.
func (s *Speaker) Enabled() bool { return s.synth != nil }

// Catalog exposes the voice catalog for selection UIs.
func (s *Speaker) Catalog() *voice.Catalog { return s.catalog }

// Speak synthesizes text with the voice named by displayName, or the
// language's default voice when displayName is empty. Display names are
// resolved across both catalog partitions. An unresolvable voice aborts
// before any network call. Returns nil on any failure.
func (s *Speaker) Speak(ctx context.Context, text, language, displayName string) []byte {
	if s.synth == nil {
		return nil
	}

	rec, ok := s.resolve(language, displayName)
	if !ok {
		slog.Error("no voice resolved for synthesis", "language", language, "voice", displayName)
		return nil
	}

	slog.Info("synthesizing speech", "voice", rec.DisplayName, "voice_id", rec.VoiceID, "text_length", len(text))

	audio, err := s.synth.Synthesize(ctx, text, rec.VoiceID)
	if err != nil {
		slog.Error("speech synthesis failed", "voice", rec.DisplayName, "error", err)
		return nil
	}
	return audio
}

func (s *Speaker) resolve(language, displayName string) (voice.Record, bool) {
	if displayName != "" {
		return s.catalog.Lookup(displayName)
	}
	return s.catalog.First(language)
}

// Close releases the underlying synthesizer.
func (s *Speaker) Close() error {
	if s.synth == nil {
		return nil
	}
	return s.synth.Close()
}
