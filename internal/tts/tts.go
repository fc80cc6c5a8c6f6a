// Package tts defines the interface for text-to-speech synthesis and the
// catalog-backed voice resolution layer on top of it.
//
// Charla synthesizes the translated text in the target language so a
// text-in → voice-out exchange works end to end. Synthesis is optional:
// when no speech credential is configured, the pipeline degrades to
// text-only output.
package tts

import "context"

// Synthesizer converts text to audio using a provider-side voice ID.
type Synthesizer interface {
	// Synthesize generates audio (MP3) from the given text.
	Synthesize(ctx context.Context, text, voiceID string) ([]byte, error)

	// Close releases any resources held by the synthesizer.
	Close() error
}
