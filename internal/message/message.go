// Package message defines the core data types flowing through the charla pipeline.
package message

import (
	"encoding/base64"
	"time"
)

// Direction is the source→target language pair of a translation.
type Direction string

const (
	// DirectionEnToEs is English source, Spanish target.
	DirectionEnToEs Direction = "en_to_es"

	// DirectionEsToEn is Spanish source, English target.
	DirectionEsToEn Direction = "es_to_en"

	// DirectionNone means no translation happened (language could not be
	// classified, or the input never reached the router).
	DirectionNone Direction = "none"
)

// ResponseMode controls what output the caller wants back.
// The caller declares desired output in the request body and the server
// populates or omits response fields accordingly.
type ResponseMode string

const (
	// ResponseModeNone suppresses translation output. Only the transcript
	// and detected language are returned.
	ResponseModeNone ResponseMode = "none"

	// ResponseModeText returns the translated text.
	ResponseModeText ResponseMode = "text"

	// ResponseModeAudio returns TTS-synthesized audio only (no text).
	ResponseModeAudio ResponseMode = "audio"

	// ResponseModeTextAudio returns both text and synthesized audio.
	ResponseModeTextAudio ResponseMode = "text+audio"
)

// Message represents an incoming translation request from any transport.
type Message struct {
	// ID is a unique identifier for this message (UUID).
	ID string `json:"id"`

	// Source identifies the sender (e.g., "web-client", "phone-alice").
	Source string `json:"source,omitempty"`

	// Audio is the raw recorded audio payload. Nil if the message is text-only.
	Audio []byte `json:"audio,omitempty"`

	// ContentType is the MIME type of the audio (e.g., "audio/wav", "audio/webm").
	ContentType string `json:"content_type,omitempty"`

	// Text is typed input (bypasses transcription).
	Text string `json:"text,omitempty"`

	// Voice is an optional voice display name (e.g., "👨 Santiago (Mexican)")
	// selecting the synthesis voice. Empty picks the default voice for the
	// target language.
	Voice string `json:"voice,omitempty"`

	// ResponseMode controls the response output:
	//   "none"       — transcript and detection only
	//   "text"       — translated text only
	//   "audio"      — synthesized audio only
	//   "text+audio" — both
	// Defaults to "text" when TTS is disabled, "text+audio" when enabled.
	ResponseMode ResponseMode `json:"response_mode,omitempty"`

	// Timestamp is when the message was received.
	Timestamp time.Time `json:"timestamp"`
}

// HasAudio returns true if the message contains an audio payload.
func (m *Message) HasAudio() bool {
	return len(m.Audio) > 0
}

// TranslationResult is the outcome of processing a message through the pipeline.
type TranslationResult struct {
	// MessageID is the original message ID.
	MessageID string `json:"message_id"`

	// Transcript is the text that entered the translator: the typed input,
	// or the transcription of the audio payload.
	Transcript string `json:"transcript,omitempty"`

	// DetectedLanguage is the classification outcome: "ENGLISH", "SPANISH"
	// or "UNKNOWN".
	DetectedLanguage string `json:"detected_language,omitempty"`

	// Direction is the translation direction that was applied.
	Direction Direction `json:"direction"`

	// TranslatedText is the translation, or a user-safe failure string.
	// A value with the literal prefix "Error" signals a failed remote call.
	// Populated when response_mode is "text" or "text+audio".
	TranslatedText string `json:"translated_text,omitempty"`

	// Audio is the TTS-synthesized translation as a base64-encoded string.
	// Populated when response_mode is "audio" or "text+audio".
	Audio string `json:"audio,omitempty"`

	// AudioContentType is the MIME type of Audio (e.g., "audio/mpeg").
	AudioContentType string `json:"audio_content_type,omitempty"`

	// Error is set if processing failed before the router ran (no input,
	// transcription failure).
	Error string `json:"error,omitempty"`
}

// SetAudioBytes base64-encodes raw audio bytes into Audio.
func (r *TranslationResult) SetAudioBytes(audio []byte) {
	if len(audio) > 0 {
		r.Audio = base64.StdEncoding.EncodeToString(audio)
	}
}
