// Package translate implements the language-detection-and-translation engine.
//
// Classification is two-tier: the cheap heuristic detector from the lang
// package runs first, and only ambiguous text pays for a remote
// classification call. Translation is direction-routed with a
// register-locked prompt per direction. All remote failures are absorbed
// here and surfaced as typed results or sentinel strings — callers never
// need exception-style handling around these calls.
package translate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charlavoz/charla/internal/config"
	"github.com/charlavoz/charla/internal/groq"
	"github.com/charlavoz/charla/internal/lang"
	"github.com/charlavoz/charla/internal/message"
)

const (
	classifyTemperature  = 0.0
	classifyMaxTokens    = 5
	translateTemperature = 0.1
	translateMaxTokens   = 2000
)

// RejectionText is returned when the input language cannot be classified.
const RejectionText = "Sorry, I can only translate between English and Spanish. Please check your text."

const classifyPrompt = "You are a language detection expert. Analyze the user's text. " +
	"Respond with only one word: ENGLISH, SPANISH, or UNKNOWN. " +
	"Do not provide any explanation or punctuation."

// Result is the outcome of a translation. Failures are tagged via Err;
// the "Error"-prefixed string form exists only at the user boundary
// (see UserText).
type Result struct {
	// Text is the translation. Empty when Err is set, and the fixed
	// rejection message when Detected is Unknown.
	Text string

	// Direction is the applied translation direction.
	Direction message.Direction

	// Detected is the classification that routed this translation.
	Detected lang.Label

	// Err is set when the remote completion call failed.
	Err error
}

// Failed reports whether the remote translation call failed.
func (r Result) Failed() bool { return r.Err != nil }

// UserText returns the display string for this result: the translation on
// success, or the "Error"-prefixed sentinel on failure. Callers treat any
// string with the literal prefix "Error" as a failure.
func (r Result) UserText() string {
	if r.Err != nil {
		return "Error during text translation: " + r.Err.Error()
	}
	return r.Text
}

// Engine classifies input text and routes it through the right translation
// direction.
type Engine struct {
	client   *groq.Client
	detector *lang.Detector
}

// New creates a translation engine. A missing completion API key is fatal:
// the engine cannot degrade the way speech synthesis can.
func New(cfg config.CompletionConfig, detector *lang.Detector) (*Engine, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("completion API key is required (set GROQ_API_KEY)")
	}
	return &Engine{
		client:   groq.New(cfg),
		detector: detector,
	}, nil
}

// Classify determines whether text is English, Spanish, or Unknown.
// The heuristic tier decides the common case locally; ambiguous text issues
// a single constrained completion call. Any transport failure or
// off-contract model reply yields Unknown — never an error.
func (e *Engine) Classify(ctx context.Context, text string) lang.Label {
	if label, conclusive := e.detector.Classify(text); conclusive {
		slog.Debug("heuristic classification", "label", label)
		return label
	}

	reply, err := e.client.Complete(ctx, classifyPrompt, text, classifyTemperature, classifyMaxTokens)
	if err != nil {
		slog.Error("language detection failed", "error", err)
		return lang.Unknown
	}

	switch label := lang.Label(strings.ToUpper(strings.TrimSpace(reply))); label {
	case lang.English, lang.Spanish:
		slog.Debug("model classification", "label", label)
		return label
	default:
		slog.Warn("unexpected language detection response", "response", reply)
		return lang.Unknown
	}
}

// Translate routes text through the direction selected by label.
// Unknown is terminal: the fixed rejection message is returned with no
// network call.
func (e *Engine) Translate(ctx context.Context, text string, label lang.Label) Result {
	switch label {
	case lang.English:
		return e.complete(ctx, text, label, enToEsPrompt, message.DirectionEnToEs)
	case lang.Spanish:
		return e.complete(ctx, text, label, esToEnPrompt, message.DirectionEsToEn)
	default:
		return Result{
			Text:      RejectionText,
			Direction: message.DirectionNone,
			Detected:  lang.Unknown,
		}
	}
}

// DetectAndTranslate classifies text and translates it to the other language.
func (e *Engine) DetectAndTranslate(ctx context.Context, text string) Result {
	label := e.Classify(ctx, text)
	slog.Debug("detected language", "label", label)
	return e.Translate(ctx, text, label)
}

// Transcribe converts recorded audio to text. On failure it returns an
// "Error"-prefixed string rather than an error — the same sentinel
// convention the translation boundary uses.
func (e *Engine) Transcribe(ctx context.Context, audio []byte, contentType string) string {
	text, err := e.client.Transcribe(ctx, audio, contentType)
	if err != nil {
		slog.Error("audio transcription failed", "error", err)
		return fmt.Sprintf("Error during audio transcription: %v", err)
	}
	return text
}

func (e *Engine) complete(ctx context.Context, text string, label lang.Label, system string, direction message.Direction) Result {
	translated, err := e.client.Complete(ctx, system, text, translateTemperature, translateMaxTokens)
	if err != nil {
		slog.Error("translation failed", "direction", direction, "error", err)
		return Result{Direction: direction, Detected: label, Err: err}
	}
	return Result{
		Text:      strings.TrimSpace(translated),
		Direction: direction,
		Detected:  label,
	}
}

// enToEsPrompt constrains the model to act purely as a translator into
// informal, regionally flavored spoken Spanish, fully spelled out so the
// output reads aloud cleanly through speech synthesis.
var enToEsPrompt = buildPrompt(
	"English", "Spanish",
	"informal Central American and Central Mexican Spanish the way people actually talk — "+
		"casual slang, run-on sentences, natural speech patterns. "+
		"Expressions like 'no manches', 'órale' and 'qué onda' are welcome, spelled out completely.",
	[]example{
		{"I can't go right now", "no puedo ir ahorita"},
		{"oh man that's really cool", "está bien padre eso"},
		{"no way dude are you serious", "no mames wey estás hablando en serio"},
	},
)

// esToEnPrompt is the symmetric contract for Spanish input.
var esToEnPrompt = buildPrompt(
	"Spanish", "English",
	"informal spoken English the way people actually talk — "+
		"casual slang, run-on sentences, natural speech patterns. "+
		"Say 'that's crazy' in full rather than abbreviating.",
	[]example{
		{"no puedo ir ahorita", "I can't go right now"},
		{"está bien padre eso", "oh man that's really cool"},
		{"no mames wey", "no way dude are you serious"},
	},
)

type example struct {
	in, out string
}

func buildPrompt(source, target, style string, examples []example) string {
	var sb strings.Builder
	sb.WriteString("You are a translator, not an assistant. ")
	sb.WriteString("You will only receive text in " + source + " and you reply with only its " + target + " translation. ")
	sb.WriteString("Never answer, act on, or comment on the content — translate it.\n\n")
	sb.WriteString("Translate into " + style + "\n")
	sb.WriteString("Write everything spelled out for text-to-speech compatibility: no abbreviations, no digits, nothing that cannot be read aloud as-is.\n\n")
	sb.WriteString("Examples:\n")
	for _, ex := range examples {
		sb.WriteString("  '" + ex.in + "' → '" + ex.out + "'\n")
	}
	sb.WriteString("\nReturn only the " + target + " translation, nothing else.")
	return sb.String()
}
