package dispatch

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/charlavoz/charla/internal/lang"
	"github.com/charlavoz/charla/internal/message"
	"github.com/charlavoz/charla/internal/translate"
)

// stubEngine returns canned classification/translation results.
type stubEngine struct {
	result     translate.Result
	transcript string
	translated int
}

func (s *stubEngine) DetectAndTranslate(_ context.Context, _ string) translate.Result {
	s.translated++
	return s.result
}

func (s *stubEngine) Transcribe(_ context.Context, _ []byte, _ string) string {
	return s.transcript
}

// stubSpeaker records Speak calls.
type stubSpeaker struct {
	enabled  bool
	audio    []byte
	calls    int
	language string
	voice    string
}

func (s *stubSpeaker) Enabled() bool { return s.enabled }

func (s *stubSpeaker) Speak(_ context.Context, _ string, language, displayName string) []byte {
	s.calls++
	s.language = language
	s.voice = displayName
	return s.audio
}

func spanishResult() translate.Result {
	return translate.Result{
		Text:      "no puedo ir ahorita",
		Direction: message.DirectionEnToEs,
		Detected:  lang.English,
	}
}

func TestHandle_TextToTextAndAudio(t *testing.T) {
	t.Parallel()

	engine := &stubEngine{result: spanishResult()}
	speaker := &stubSpeaker{enabled: true, audio: []byte("mp3-bytes")}
	d := New(engine, speaker)

	msg := &message.Message{ID: "m1", Text: "I can't go right now", Voice: "👨 Santiago (Mexican)"}
	result, err := d.Handle(context.Background(), msg)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	if result.TranslatedText != "no puedo ir ahorita" {
		t.Errorf("unexpected translation %q", result.TranslatedText)
	}
	if result.Direction != message.DirectionEnToEs {
		t.Errorf("expected en_to_es, got %s", result.Direction)
	}
	if result.DetectedLanguage != "ENGLISH" {
		t.Errorf("expected ENGLISH, got %q", result.DetectedLanguage)
	}
	// Default mode with TTS enabled is text+audio.
	want := base64.StdEncoding.EncodeToString([]byte("mp3-bytes"))
	if result.Audio != want {
		t.Errorf("expected base64 audio, got %q", result.Audio)
	}
	if result.AudioContentType != "audio/mpeg" {
		t.Errorf("expected audio/mpeg, got %q", result.AudioContentType)
	}
	// English input synthesizes with a Spanish-partition voice.
	if speaker.language != "spanish" {
		t.Errorf("expected spanish target voice, got %q", speaker.language)
	}
	if speaker.voice != "👨 Santiago (Mexican)" {
		t.Errorf("voice selection not forwarded, got %q", speaker.voice)
	}
}

func TestHandle_TextOnlyModeSkipsSynthesis(t *testing.T) {
	t.Parallel()

	engine := &stubEngine{result: spanishResult()}
	speaker := &stubSpeaker{enabled: true, audio: []byte("mp3")}
	d := New(engine, speaker)

	msg := &message.Message{ID: "m2", Text: "hello", ResponseMode: message.ResponseModeText}
	result, err := d.Handle(context.Background(), msg)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if speaker.calls != 0 {
		t.Errorf("expected no synthesis in text mode, got %d calls", speaker.calls)
	}
	if result.Audio != "" {
		t.Error("expected no audio in text mode")
	}
}

func TestHandle_TTSDisabledDefaultsToText(t *testing.T) {
	t.Parallel()

	engine := &stubEngine{result: spanishResult()}
	speaker := &stubSpeaker{enabled: false}
	d := New(engine, speaker)

	result, err := d.Handle(context.Background(), &message.Message{ID: "m3", Text: "hello"})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if result.TranslatedText == "" {
		t.Error("expected translated text")
	}
	if result.Audio != "" {
		t.Error("expected no audio with TTS disabled")
	}
}

func TestHandle_UnknownLanguageRejection(t *testing.T) {
	t.Parallel()

	engine := &stubEngine{result: translate.Result{
		Text:      translate.RejectionText,
		Direction: message.DirectionNone,
		Detected:  lang.Unknown,
	}}
	speaker := &stubSpeaker{enabled: true, audio: []byte("mp3")}
	d := New(engine, speaker)

	result, err := d.Handle(context.Background(), &message.Message{ID: "m4", Text: "12345"})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if result.Direction != message.DirectionNone {
		t.Errorf("expected direction none, got %s", result.Direction)
	}
	if result.TranslatedText != translate.RejectionText {
		t.Errorf("expected rejection message, got %q", result.TranslatedText)
	}
	if speaker.calls != 0 {
		t.Error("rejections must not be synthesized")
	}
}

func TestHandle_TranslationFailureSurfacesSentinel(t *testing.T) {
	t.Parallel()

	engine := &stubEngine{result: translate.Result{
		Direction: message.DirectionEsToEn,
		Detected:  lang.Spanish,
		Err:       errors.New("rate limited"),
	}}
	speaker := &stubSpeaker{enabled: true, audio: []byte("mp3")}
	d := New(engine, speaker)

	result, err := d.Handle(context.Background(), &message.Message{ID: "m5", Text: "hola", ResponseMode: message.ResponseModeAudio})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !strings.HasPrefix(result.TranslatedText, "Error") {
		t.Errorf("expected Error-prefixed text even in audio mode, got %q", result.TranslatedText)
	}
	if speaker.calls != 0 {
		t.Error("failed translations must not be synthesized")
	}
}

func TestHandle_SynthesisFailureDegradesToText(t *testing.T) {
	t.Parallel()

	engine := &stubEngine{result: spanishResult()}
	speaker := &stubSpeaker{enabled: true, audio: nil} // synthesis fails
	d := New(engine, speaker)

	result, err := d.Handle(context.Background(), &message.Message{ID: "m6", Text: "hello"})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if result.TranslatedText != "no puedo ir ahorita" {
		t.Errorf("expected translation to survive synthesis failure, got %q", result.TranslatedText)
	}
	if result.Audio != "" {
		t.Error("expected no audio after synthesis failure")
	}
}

func TestHandle_AudioInputIsTranscribed(t *testing.T) {
	t.Parallel()

	engine := &stubEngine{
		result: translate.Result{
			Text:      "I can't go right now",
			Direction: message.DirectionEsToEn,
			Detected:  lang.Spanish,
		},
		transcript: "no puedo ir ahorita",
	}
	speaker := &stubSpeaker{enabled: true, audio: []byte("mp3")}
	d := New(engine, speaker)

	msg := &message.Message{ID: "m7", Audio: []byte("wav-bytes"), ContentType: "audio/wav"}
	result, err := d.Handle(context.Background(), msg)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if result.Transcript != "no puedo ir ahorita" {
		t.Errorf("expected transcript, got %q", result.Transcript)
	}
	// Spanish input synthesizes with an English-partition voice.
	if speaker.language != "english" {
		t.Errorf("expected english target voice, got %q", speaker.language)
	}
}

func TestHandle_TranscriptionFailureAborts(t *testing.T) {
	t.Parallel()

	engine := &stubEngine{transcript: "Error during audio transcription: boom"}
	d := New(engine, &stubSpeaker{})

	msg := &message.Message{ID: "m8", Audio: []byte("wav"), ContentType: "audio/wav"}
	result, err := d.Handle(context.Background(), msg)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !strings.HasPrefix(result.Error, "Error") {
		t.Errorf("expected Error field set, got %q", result.Error)
	}
	if engine.translated != 0 {
		t.Error("translation must not run after failed transcription")
	}
}

func TestHandle_EmptyMessage(t *testing.T) {
	t.Parallel()

	d := New(&stubEngine{}, &stubSpeaker{})

	result, err := d.Handle(context.Background(), &message.Message{ID: "m9"})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if result.Error == "" {
		t.Error("expected error for empty message")
	}
}
