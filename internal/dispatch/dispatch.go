// Package dispatch implements the core translation pipeline.
//
// The dispatcher receives messages from transports and runs them through
// transcribe → classify → translate → synthesize. Remote failures never
// surface as errors here: the engine and speaker absorb them into sentinel
// values, and the dispatcher only inspects those.
package dispatch

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charlavoz/charla/internal/message"
	"github.com/charlavoz/charla/internal/translate"
	"github.com/charlavoz/charla/internal/voice"
)

// Engine is the translation core the dispatcher drives.
type Engine interface {
	// DetectAndTranslate classifies text and translates it to the other language.
	DetectAndTranslate(ctx context.Context, text string) translate.Result

	// Transcribe converts audio to text, returning an "Error"-prefixed
	// string on failure.
	Transcribe(ctx context.Context, audio []byte, contentType string) string
}

// Speaker synthesizes speech for translated text.
type Speaker interface {
	// Enabled reports whether a synthesis backend is configured.
	Enabled() bool

	// Speak returns synthesized audio, or nil on any failure.
	Speak(ctx context.Context, text, language, displayName string) []byte
}

// Dispatcher is the central pipeline engine.
type Dispatcher struct {
	engine  Engine
	speaker Speaker
}

// New creates a new Dispatcher.
func New(engine Engine, speaker Speaker) *Dispatcher {
	return &Dispatcher{engine: engine, speaker: speaker}
}

// resolveResponseMode determines the effective ResponseMode for a message.
// If the caller didn't specify one, the default depends on whether TTS is
// available.
func (d *Dispatcher) resolveResponseMode(mode message.ResponseMode) message.ResponseMode {
	switch mode {
	case message.ResponseModeNone, message.ResponseModeText,
		message.ResponseModeAudio, message.ResponseModeTextAudio:
		return mode
	default:
		if d.speaker.Enabled() {
			return message.ResponseModeTextAudio
		}
		return message.ResponseModeText
	}
}

// wantText returns true if the response mode includes text output.
func wantText(mode message.ResponseMode) bool {
	return mode == message.ResponseModeText || mode == message.ResponseModeTextAudio
}

// wantAudio returns true if the response mode includes audio output.
func wantAudio(mode message.ResponseMode) bool {
	return mode == message.ResponseModeAudio || mode == message.ResponseModeTextAudio
}

// Handle processes a single message through the full pipeline.
// This function is passed as the transport.Handler to each transport.
func (d *Dispatcher) Handle(ctx context.Context, msg *message.Message) (*message.TranslationResult, error) {
	start := time.Now()
	logger := slog.With("message_id", msg.ID, "source", msg.Source)

	respMode := d.resolveResponseMode(msg.ResponseMode)
	logger.Info("dispatch started", "response_mode", respMode)

	result := &message.TranslationResult{
		MessageID: msg.ID,
		Direction: message.DirectionNone,
	}

	// Step 1: Transcribe audio (if present).
	var input string
	switch {
	case msg.HasAudio():
		logger.Debug("transcribing audio", "content_type", msg.ContentType, "bytes", len(msg.Audio))
		transcript := d.engine.Transcribe(ctx, msg.Audio, msg.ContentType)
		if strings.HasPrefix(transcript, "Error") {
			result.Error = transcript
			logger.Error("transcription failed", "detail", transcript)
			return result, nil
		}
		input = transcript
		result.Transcript = transcript
		logger.Info("transcription complete", "text_length", len(transcript))
	case msg.Text != "":
		input = msg.Text
		result.Transcript = msg.Text
		logger.Debug("using text input directly")
	default:
		result.Error = "message has no audio and no text"
		return result, nil
	}

	// Step 2: Classify and translate.
	res := d.engine.DetectAndTranslate(ctx, input)
	result.DetectedLanguage = string(res.Detected)
	result.Direction = res.Direction
	logger.Info("translation complete", "detected", res.Detected, "direction", res.Direction, "failed", res.Failed())

	if wantText(respMode) || res.Failed() || res.Direction == message.DirectionNone {
		// Failures and rejections always surface as text so the caller
		// can show something, even in audio-only mode.
		result.TranslatedText = res.UserText()
	}

	// Step 3: Synthesize the translation in the target language.
	if wantAudio(respMode) && d.speaker.Enabled() && !res.Failed() && res.Direction != message.DirectionNone {
		targetLang := targetLanguage(res.Direction)
		logger.Debug("synthesizing translation", "language", targetLang, "voice", msg.Voice)
		audio := d.speaker.Speak(ctx, res.Text, targetLang, msg.Voice)
		if audio == nil {
			logger.Warn("synthesis failed, continuing without audio")
		} else {
			result.SetAudioBytes(audio)
			result.AudioContentType = "audio/mpeg"
			logger.Info("synthesis complete", "audio_bytes", len(audio))
		}
	}

	logger.Info("dispatch complete", "duration", time.Since(start))
	return result, nil
}

// targetLanguage maps a translation direction to the catalog partition the
// synthesized voice should come from.
func targetLanguage(direction message.Direction) string {
	if direction == message.DirectionEnToEs {
		return voice.LanguageSpanish
	}
	return voice.LanguageEnglish
}
