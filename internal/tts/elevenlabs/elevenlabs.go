// Package elevenlabs implements the TTS Synthesizer against the ElevenLabs
// REST API.
//
// Every call uses the flash model with fixed voice-quality settings: the
// pipeline targets conversational round trips, so latency wins over
// configurability here. The response body is a chunked MP3 stream that is
// concatenated into a single buffer.
package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/charlavoz/charla/internal/config"
)

const (
	// modelID is the low-latency multilingual model (~75ms to first byte).
	modelID = "eleven_flash_v2_5"

	// outputFormat is MP3 at 44.1 kHz / 128 kbps.
	outputFormat = "mp3_44100_128"
)

// voiceSettings are the fixed voice-quality parameters sent on every request.
type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

var defaultVoiceSettings = voiceSettings{
	Stability:       0.5,
	SimilarityBoost: 0.5,
	Style:           0.0,
	UseSpeakerBoost: true,
}

// Client talks to the ElevenLabs API.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// New creates a new ElevenLabs client from config.
func New(cfg config.SpeechConfig) *Client {
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// Synthesize converts text to MP3 audio using the given provider voice ID.
func (c *Client) Synthesize(ctx context.Context, text, voiceID string) ([]byte, error) {
	reqBody := struct {
		Text          string        `json:"text"`
		ModelID       string        `json:"model_id"`
		VoiceSettings voiceSettings `json:"voice_settings"`
	}{
		Text:          text,
		ModelID:       modelID,
		VoiceSettings: defaultVoiceSettings,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshalling synthesis request: %w", err)
	}

	url := fmt.Sprintf("%s/text-to-speech/%s?output_format=%s", c.baseURL, voiceID, outputFormat)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating synthesis request: %w", err)
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("synthesis request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("synthesis failed (status %d): %s", resp.StatusCode, respBody)
	}

	// Concatenate the chunked audio stream into one owned buffer.
	var audio bytes.Buffer
	if _, err := io.Copy(&audio, resp.Body); err != nil {
		return nil, fmt.Errorf("reading audio stream: %w", err)
	}

	slog.Debug("synthesis complete", "voice_id", voiceID, "audio_bytes", audio.Len())
	return audio.Bytes(), nil
}

// Voice is a provider-side voice as returned by the listing endpoint.
type Voice struct {
	VoiceID  string            `json:"voice_id"`
	Name     string            `json:"name"`
	Category string            `json:"category,omitempty"`
	Labels   map[string]string `json:"labels,omitempty"`
}

// Voices fetches the provider-side voice listing. This is diagnostic only;
// voice selection runs against the local catalog.
func (c *Client) Voices(ctx context.Context) ([]Voice, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/voices", nil)
	if err != nil {
		return nil, fmt.Errorf("creating voices request: %w", err)
	}
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("voices request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("voices listing failed (status %d): %s", resp.StatusCode, respBody)
	}

	var listing struct {
		Voices []Voice `json:"voices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decoding voices listing: %w", err)
	}
	return listing.Voices, nil
}

// Close is a no-op — connections are per-request.
func (c *Client) Close() error { return nil }
