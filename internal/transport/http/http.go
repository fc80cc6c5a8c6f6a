// Package http implements the HTTP transport for charla.
//
// This transport exposes the translation pipeline as a REST API: text or
// recorded audio goes in, translated text and synthesized speech come out.
// It also serves the voice catalog for selection UIs and a provider-side
// voice listing for diagnostics.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/charlavoz/charla/internal/message"
	"github.com/charlavoz/charla/internal/transport"
	"github.com/charlavoz/charla/internal/tts/elevenlabs"
	"github.com/charlavoz/charla/internal/voice"
)

// Speaker synthesizes speech for the standalone /speak endpoint.
type Speaker interface {
	Enabled() bool
	Speak(ctx context.Context, text, language, displayName string) []byte
}

// VoiceLister fetches the provider-side voice listing (diagnostic only).
type VoiceLister interface {
	Voices(ctx context.Context) ([]elevenlabs.Voice, error)
}

// Transport implements transport.Transport over HTTP.
type Transport struct {
	port    int
	catalog *voice.Catalog
	speaker Speaker
	lister  VoiceLister // nil when TTS is disabled
	server  *http.Server
}

// New creates a new HTTP transport on the given port.
func New(port int, catalog *voice.Catalog, speaker Speaker, lister VoiceLister) *Transport {
	return &Transport{port: port, catalog: catalog, speaker: speaker, lister: lister}
}

// Name returns the transport identifier.
func (t *Transport) Name() string { return "http" }

// routes builds the request mux. Split out from Listen so tests can drive
// the handlers without binding a port.
func (t *Transport) routes(handler transport.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	// POST /translate — accepts text or audio, returns the translation.
	mux.HandleFunc("POST /translate", func(w http.ResponseWriter, r *http.Request) {
		t.handleTranslate(w, r, handler)
	})

	// GET /voices — catalog listing for voice pickers.
	mux.HandleFunc("GET /voices", t.handleVoices)

	// GET /voices/remote — provider-side voice listing (diagnostic).
	mux.HandleFunc("GET /voices/remote", t.handleRemoteVoices)

	// POST /speak — standalone text-to-speech.
	mux.HandleFunc("POST /speak", t.handleSpeak)

	// Swagger UI — serves the generated OpenAPI docs.
	mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return mux
}

// Listen starts the HTTP server and routes incoming requests to the handler.
func (t *Transport) Listen(ctx context.Context, handler transport.Handler) error {
	mux := t.routes(handler)

	t.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", t.port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("http transport listening", "port", t.port)

	go func() {
		<-ctx.Done()
		slog.Info("http transport shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = t.server.Shutdown(shutdownCtx)
	}()

	if err := t.server.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("http listen: %w", err)
	}
	return nil
}

// handleTranslate processes a POST /translate request.
//
// @Summary     Translate text or recorded speech
// @Description Accepts a JSON message (typed text or base64 audio) or raw audio bytes.
// @Description The input is transcribed if needed, its language detected, and the text
// @Description translated to the other language; the response optionally carries
// @Description synthesized speech of the translation.
// @Tags        translate
// @Accept      json
// @Accept      audio/wav
// @Accept      audio/webm
// @Produce     json
// @Param       message  body      message.Message  true  "Translation request (JSON). For raw audio, POST the bytes directly with the appropriate Content-Type."
// @Param       X-Charla-Source         header  string  false  "Sender identifier (used with raw audio uploads)"
// @Param       X-Charla-Voice          header  string  false  "Voice display name (used with raw audio uploads)"
// @Param       X-Charla-Response-Mode  header  string  false  "none | text | audio | text+audio"
// @Success     200  {object}  message.TranslationResult  "Translation result"
// @Failure     400  {string}  string  "Invalid request body or headers"
// @Failure     500  {string}  string  "Internal processing error"
// @Router      /translate [post]
func (t *Transport) handleTranslate(w http.ResponseWriter, r *http.Request, handler transport.Handler) {
	var msg message.Message

	contentType := r.Header.Get("Content-Type")
	switch {
	case contentType == "application/json":
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
			http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
			return
		}
	default:
		// Treat body as raw audio; read options from headers.
		audioData, err := io.ReadAll(io.LimitReader(r.Body, 25<<20)) // 25 MB limit
		if err != nil {
			http.Error(w, "reading audio: "+err.Error(), http.StatusBadRequest)
			return
		}
		msg.Audio = audioData
		msg.ContentType = contentType
		msg.Source = r.Header.Get("X-Charla-Source")
		msg.Voice = r.Header.Get("X-Charla-Voice")
		msg.ResponseMode = message.ResponseMode(r.Header.Get("X-Charla-Response-Mode"))
	}

	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	msg.Timestamp = time.Now()

	result, err := handler(r.Context(), &msg)
	if err != nil {
		slog.Error("dispatch failed", "error", err)
		http.Error(w, "dispatch error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

// handleVoices serves the loaded voice catalog.
//
// @Summary     List selectable voices
// @Description Returns the voice catalog, optionally restricted to one language.
// @Tags        voices
// @Produce     json
// @Param       language  query  string  false  "english or spanish"
// @Success     200  {object}  map[string][]voice.Record
// @Failure     400  {string}  string  "Unsupported language"
// @Router      /voices [get]
func (t *Transport) handleVoices(w http.ResponseWriter, r *http.Request) {
	listing := make(map[string][]voice.Record)

	languages := []string{voice.LanguageEnglish, voice.LanguageSpanish}
	if lang := r.URL.Query().Get("language"); lang != "" {
		if t.catalog.Options(lang) == nil {
			http.Error(w, "unsupported language: "+lang, http.StatusBadRequest)
			return
		}
		languages = []string{lang}
	}

	for _, lang := range languages {
		records := make([]voice.Record, 0)
		for _, name := range t.catalog.Options(lang) {
			if rec, ok := t.catalog.Get(lang, name); ok {
				records = append(records, rec)
			}
		}
		listing[lang] = records
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(listing)
}

// handleRemoteVoices serves the provider-side voice listing.
//
// @Summary     List provider-side voices (diagnostic)
// @Tags        voices
// @Produce     json
// @Success     200  {array}   elevenlabs.Voice
// @Failure     502  {string}  string  "Provider listing failed"
// @Failure     503  {string}  string  "TTS not configured"
// @Router      /voices/remote [get]
func (t *Transport) handleRemoteVoices(w http.ResponseWriter, r *http.Request) {
	if t.lister == nil {
		http.Error(w, "speech synthesis is not configured", http.StatusServiceUnavailable)
		return
	}

	voices, err := t.lister.Voices(r.Context())
	if err != nil {
		slog.Error("remote voice listing failed", "error", err)
		http.Error(w, "provider voice listing failed", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(voices)
}

// speakRequest is the body of POST /speak.
type speakRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Voice    string `json:"voice,omitempty"`
}

// handleSpeak synthesizes arbitrary text with a selected voice.
//
// @Summary     Synthesize speech
// @Description Converts text to MP3 using a catalog voice. Every call
// @Description re-synthesizes; nothing is cached.
// @Tags        speak
// @Accept      json
// @Produce     audio/mpeg
// @Param       request  body  speakRequest  true  "Text, target language, optional voice display name"
// @Success     200  {file}    binary  "MP3 audio"
// @Failure     400  {string}  string  "Missing text"
// @Failure     502  {string}  string  "Synthesis failed"
// @Failure     503  {string}  string  "TTS not configured"
// @Router      /speak [post]
func (t *Transport) handleSpeak(w http.ResponseWriter, r *http.Request) {
	if !t.speaker.Enabled() {
		http.Error(w, "speech synthesis is not configured", http.StatusServiceUnavailable)
		return
	}

	var req speakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Text == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}

	audio := t.speaker.Speak(r.Context(), req.Text, req.Language, req.Voice)
	if audio == nil {
		http.Error(w, "speech synthesis failed, please try again", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	_, _ = w.Write(audio)
}

// Close gracefully shuts down the HTTP server.
func (t *Transport) Close() error {
	if t.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return t.server.Shutdown(ctx)
	}
	return nil
}
