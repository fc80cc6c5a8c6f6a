package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charlavoz/charla/internal/message"
	"github.com/charlavoz/charla/internal/transport"
	"github.com/charlavoz/charla/internal/tts/elevenlabs"
	"github.com/charlavoz/charla/internal/voice"
)

type stubSpeaker struct {
	enabled bool
	audio   []byte
}

func (s *stubSpeaker) Enabled() bool { return s.enabled }

func (s *stubSpeaker) Speak(_ context.Context, _, _, _ string) []byte { return s.audio }

func echoHandler(t *testing.T) (transport.Handler, *message.Message) {
	t.Helper()

	captured := &message.Message{}
	handler := func(_ context.Context, msg *message.Message) (*message.TranslationResult, error) {
		*captured = *msg
		return &message.TranslationResult{
			MessageID:      msg.ID,
			Direction:      message.DirectionEnToEs,
			TranslatedText: "no puedo ir ahorita",
		}, nil
	}
	return handler, captured
}

func testServer(t *testing.T, speaker Speaker, lister VoiceLister) (*httptest.Server, *message.Message) {
	t.Helper()

	handler, captured := echoHandler(t)
	tr := New(0, voice.Fallback(), speaker, lister)
	server := httptest.NewServer(tr.routes(handler))
	t.Cleanup(server.Close)
	return server, captured
}

func TestHandleTranslate_JSON(t *testing.T) {
	t.Parallel()

	server, captured := testServer(t, &stubSpeaker{}, nil)

	body, _ := json.Marshal(message.Message{Text: "I can't go right now", Voice: "👨 Will (American)"})
	resp, err := http.Post(server.URL+"/translate", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /translate: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result message.TranslationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if result.TranslatedText != "no puedo ir ahorita" {
		t.Errorf("unexpected translation %q", result.TranslatedText)
	}
	if captured.ID == "" {
		t.Error("expected a generated message ID")
	}
	if result.MessageID != captured.ID {
		t.Errorf("result message ID %q does not match %q", result.MessageID, captured.ID)
	}
	if captured.Voice != "👨 Will (American)" {
		t.Errorf("voice not forwarded, got %q", captured.Voice)
	}
}

func TestHandleTranslate_RawAudioWithHeaders(t *testing.T) {
	t.Parallel()

	server, captured := testServer(t, &stubSpeaker{}, nil)

	req, _ := http.NewRequest(http.MethodPost, server.URL+"/translate", strings.NewReader("raw-wav-bytes"))
	req.Header.Set("Content-Type", "audio/wav")
	req.Header.Set("X-Charla-Source", "phone-alice")
	req.Header.Set("X-Charla-Voice", "👩 Lumina (Colombian)")
	req.Header.Set("X-Charla-Response-Mode", "text")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST /translate: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if string(captured.Audio) != "raw-wav-bytes" {
		t.Errorf("audio not forwarded, got %q", captured.Audio)
	}
	if captured.ContentType != "audio/wav" {
		t.Errorf("content type not forwarded, got %q", captured.ContentType)
	}
	if captured.Source != "phone-alice" {
		t.Errorf("source not forwarded, got %q", captured.Source)
	}
	if captured.ResponseMode != message.ResponseModeText {
		t.Errorf("response mode not forwarded, got %q", captured.ResponseMode)
	}
}

func TestHandleTranslate_InvalidJSON(t *testing.T) {
	t.Parallel()

	server, _ := testServer(t, &stubSpeaker{}, nil)

	resp, err := http.Post(server.URL+"/translate", "application/json", strings.NewReader("{not json"))
	if err != nil {
		t.Fatalf("POST /translate: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestHandleVoices(t *testing.T) {
	t.Parallel()

	server, _ := testServer(t, &stubSpeaker{}, nil)

	resp, err := http.Get(server.URL + "/voices")
	if err != nil {
		t.Fatalf("GET /voices: %v", err)
	}
	defer resp.Body.Close()

	var listing map[string][]voice.Record
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		t.Fatalf("decoding listing: %v", err)
	}
	if len(listing["english"]) != 2 || len(listing["spanish"]) != 2 {
		t.Errorf("expected 2+2 fallback voices, got %d+%d", len(listing["english"]), len(listing["spanish"]))
	}
}

func TestHandleVoices_LanguageFilter(t *testing.T) {
	t.Parallel()

	server, _ := testServer(t, &stubSpeaker{}, nil)

	resp, err := http.Get(server.URL + "/voices?language=spanish")
	if err != nil {
		t.Fatalf("GET /voices: %v", err)
	}
	defer resp.Body.Close()

	var listing map[string][]voice.Record
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		t.Fatalf("decoding listing: %v", err)
	}
	if len(listing) != 1 || len(listing["spanish"]) != 2 {
		t.Errorf("expected spanish-only listing, got %v", listing)
	}

	bad, err := http.Get(server.URL + "/voices?language=french")
	if err != nil {
		t.Fatalf("GET /voices: %v", err)
	}
	defer bad.Body.Close()
	if bad.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for unsupported language, got %d", bad.StatusCode)
	}
}

func TestHandleSpeak(t *testing.T) {
	t.Parallel()

	server, _ := testServer(t, &stubSpeaker{enabled: true, audio: []byte("mp3-bytes")}, nil)

	body, _ := json.Marshal(map[string]string{"text": "hola", "language": "spanish"})
	resp, err := http.Post(server.URL+"/speak", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /speak: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Type"); got != "audio/mpeg" {
		t.Errorf("expected audio/mpeg, got %q", got)
	}
}

func TestHandleSpeak_DisabledAndFailed(t *testing.T) {
	t.Parallel()

	disabled, _ := testServer(t, &stubSpeaker{enabled: false}, nil)
	body, _ := json.Marshal(map[string]string{"text": "hola", "language": "spanish"})
	resp, err := http.Post(disabled.URL+"/speak", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /speak: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected 503 when TTS disabled, got %d", resp.StatusCode)
	}

	failing, _ := testServer(t, &stubSpeaker{enabled: true, audio: nil}, nil)
	resp2, err := http.Post(failing.URL+"/speak", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /speak: %v", err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusBadGateway {
		t.Errorf("expected 502 on synthesis failure, got %d", resp2.StatusCode)
	}
}

type stubLister struct {
	voices []elevenlabs.Voice
}

func (s *stubLister) Voices(_ context.Context) ([]elevenlabs.Voice, error) {
	return s.voices, nil
}

func TestHandleRemoteVoices(t *testing.T) {
	t.Parallel()

	lister := &stubLister{voices: []elevenlabs.Voice{{VoiceID: "v1", Name: "Sarah"}}}
	server, _ := testServer(t, &stubSpeaker{enabled: true}, lister)

	resp, err := http.Get(server.URL + "/voices/remote")
	if err != nil {
		t.Fatalf("GET /voices/remote: %v", err)
	}
	defer resp.Body.Close()

	var voices []elevenlabs.Voice
	if err := json.NewDecoder(resp.Body).Decode(&voices); err != nil {
		t.Fatalf("decoding voices: %v", err)
	}
	if len(voices) != 1 || voices[0].VoiceID != "v1" {
		t.Errorf("unexpected voices: %+v", voices)
	}

	noLister, _ := testServer(t, &stubSpeaker{}, nil)
	resp2, err := http.Get(noLister.URL + "/voices/remote")
	if err != nil {
		t.Fatalf("GET /voices/remote: %v", err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected 503 without lister, got %d", resp2.StatusCode)
	}
}
