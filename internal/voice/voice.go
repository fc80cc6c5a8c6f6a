// Package voice loads and serves the voice catalog used for speech synthesis.
//
// The catalog is built once at startup from a tabular CSV directory and is
// read-only afterward, so it is safe to share across concurrent requests.
// Loading is defensive throughout: malformed rows are skipped with a
// warning, and a missing or unusable source falls back to a fixed built-in
// catalog so the system never ends up with zero selectable voices.
package voice

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Languages recognized in the catalog source. The directory restricts the
// language column to ISO-639-1 "en"/"es"; the catalog partitions carry the
// full names used for selection.
const (
	LanguageEnglish = "english"
	LanguageSpanish = "spanish"
)

// Record describes one selectable voice.
type Record struct {
	// VoiceID is the provider-side voice identifier.
	VoiceID string `json:"voice_id"`

	// DisplayName is the gender-glyphed, accent-annotated label shown to
	// users. It is the catalog's lookup key.
	DisplayName string `json:"display_name"`

	// Name is the cleaned human name (e.g., "Santiago").
	Name string `json:"name"`

	// Gender is "male" or "female".
	Gender string `json:"gender"`

	// Accent is the regional accent, empty when unspecified or "standard".
	Accent string `json:"accent,omitempty"`

	// Description is at most 100 characters, ellipsis-truncated.
	Description string `json:"description"`
}

// partition holds one language's voices keyed by display name, preserving
// source order so "first voice" is deterministic.
type partition struct {
	order  []string
	byName map[string]Record
}

func newPartition() *partition {
	return &partition{byName: make(map[string]Record)}
}

func (p *partition) add(rec Record) {
	if _, exists := p.byName[rec.DisplayName]; !exists {
		p.order = append(p.order, rec.DisplayName)
	}
	p.byName[rec.DisplayName] = rec
}

// Catalog is the immutable two-partition voice directory.
type Catalog struct {
	english *partition
	spanish *partition
}

// Load builds the catalog from the CSV at path. The fallback catalog is
// returned when the file is absent, unreadable, or yields zero voices.
func Load(path string) *Catalog {
	cat, err := parseFile(path)
	if err != nil {
		slog.Warn("voice catalog load failed, using fallback voices", "path", path, "error", err)
		return Fallback()
	}
	if cat.Empty() {
		slog.Warn("voice catalog parsed but no rows survived, using fallback voices", "path", path)
		return Fallback()
	}
	slog.Info("voice catalog loaded",
		"path", path,
		"english_voices", len(cat.english.order),
		"spanish_voices", len(cat.spanish.order))
	return cat
}

// Empty reports whether no voices are registered in either partition.
func (c *Catalog) Empty() bool {
	return len(c.english.order) == 0 && len(c.spanish.order) == 0
}

// Options returns the display names available for a language, in source order.
func (c *Catalog) Options(language string) []string {
	p := c.partition(language)
	if p == nil {
		return nil
	}
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Get returns the voice registered under displayName for a language.
func (c *Catalog) Get(language, displayName string) (Record, bool) {
	p := c.partition(language)
	if p == nil {
		return Record{}, false
	}
	rec, ok := p.byName[displayName]
	return rec, ok
}

// Lookup searches both language partitions for displayName. Display names
// are globally unique in practice, so the first hit wins.
func (c *Catalog) Lookup(displayName string) (Record, bool) {
	if rec, ok := c.english.byName[displayName]; ok {
		return rec, ok
	}
	rec, ok := c.spanish.byName[displayName]
	return rec, ok
}

// First returns the default voice for a language: the first one registered.
func (c *Catalog) First(language string) (Record, bool) {
	p := c.partition(language)
	if p == nil || len(p.order) == 0 {
		return Record{}, false
	}
	return p.byName[p.order[0]], true
}

// Counts returns the number of voices per language.
func (c *Catalog) Counts() (english, spanish int) {
	return len(c.english.order), len(c.spanish.order)
}

func (c *Catalog) partition(language string) *partition {
	switch strings.ToLower(language) {
	case LanguageEnglish, "en":
		return c.english
	case LanguageSpanish, "es":
		return c.spanish
	default:
		return nil
	}
}

// --- CSV parsing ---

var requiredColumns = []string{"voice_id", "name", "gender", "language"}

func parseFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening voice directory: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	// Quoted fields may span lines and rows may be ragged.
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading voice directory: %w", err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("voice directory is empty")
	}

	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, required := range requiredColumns {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("voice directory missing column %q", required)
		}
	}

	cat := &Catalog{english: newPartition(), spanish: newPartition()}
	for rowNum, row := range records[1:] {
		rec, language, err := parseRow(row, cols)
		if err != nil {
			slog.Warn("skipping voice row", "row", rowNum+2, "error", err)
			continue
		}
		switch language {
		case "en":
			cat.english.add(rec)
		case "es":
			cat.spanish.add(rec)
		default:
			// Other languages are simply not part of this catalog.
			slog.Debug("ignoring voice with unsupported language", "language", language, "voice_id", rec.VoiceID)
		}
	}
	return cat, nil
}

func parseRow(row []string, cols map[string]int) (Record, string, error) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	voiceID := field("voice_id")
	rawName := field("name")
	gender := strings.ToLower(field("gender"))
	language := strings.ToLower(field("language"))
	if voiceID == "" || rawName == "" || gender == "" || language == "" {
		return Record{}, "", fmt.Errorf("missing required field (voice_id=%q name=%q gender=%q language=%q)",
			voiceID, rawName, gender, language)
	}

	name := cleanName(rawName)
	accent := cleanAccent(field("accent"))

	return Record{
		VoiceID:     voiceID,
		DisplayName: displayName(name, gender, accent),
		Name:        name,
		Gender:      gender,
		Accent:      accent,
		Description: cleanDescription(field("description"), gender),
	}, language, nil
}

// cleanName normalizes a raw name field: embedded newlines and doubled
// spaces collapse, any dash-separated descriptor suffix is dropped, and
// directory entries like "Santiago Latinamerican Spanish" collapse to the
// first word.
func cleanName(raw string) string {
	name := collapseWhitespace(raw)
	if before, _, found := strings.Cut(name, " - "); found {
		name = strings.TrimSpace(before)
	}
	words := strings.Fields(name)
	if len(words) > 2 && strings.Contains(strings.ToLower(name), "spanish") {
		name = words[0]
	}
	return name
}

func cleanAccent(raw string) string {
	accent := strings.TrimSpace(raw)
	if strings.EqualFold(accent, "standard") {
		return ""
	}
	return accent
}

// displayName renders "<gender-glyph> <name>[ (<Accent>)]".
func displayName(name, gender, accent string) string {
	glyph := "👩"
	if gender == "male" {
		glyph = "👨"
	}
	if accent == "" {
		return glyph + " " + name
	}
	return glyph + " " + name + " (" + titleWords(accent) + ")"
}

func cleanDescription(raw, gender string) string {
	desc := collapseWhitespace(raw)
	if desc == "" {
		return "Professional " + gender + " voice"
	}
	if runes := []rune(desc); len(runes) > 100 {
		return string(runes[:100]) + "..."
	}
	return desc
}

func collapseWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	return strings.TrimSpace(s)
}

func titleWords(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Fallback returns the fixed built-in catalog: one male and one female
// voice per language, so synthesis always has something to select.
func Fallback() *Catalog {
	cat := &Catalog{english: newPartition(), spanish: newPartition()}

	cat.english.add(Record{
		VoiceID:     "EXAVITQu4vr4xnSDxMaL",
		DisplayName: "👩 Sarah (American)",
		Name:        "Sarah",
		Gender:      "female",
		Accent:      "american",
		Description: "Young adult woman with a confident and warm, mature quality...",
	})
	cat.english.add(Record{
		VoiceID:     "bIHbv24MWmeRgasZH58o",
		DisplayName: "👨 Will (American)",
		Name:        "Will",
		Gender:      "male",
		Accent:      "american",
		Description: "Conversational and laid back...",
	})
	cat.spanish.add(Record{
		VoiceID:     "x5IDPSl4ZUbhosMmVFTk",
		DisplayName: "👩 Lumina (Colombian)",
		Name:        "Lumina",
		Gender:      "female",
		Accent:      "colombian",
		Description: "A neutral and versatile female voice, characterized by its clarity...",
	})
	cat.spanish.add(Record{
		VoiceID:     "15bJsujCI3tcDWeoZsQP",
		DisplayName: "👨 Santiago (Mexican)",
		Name:        "Santiago",
		Gender:      "male",
		Accent:      "mexican",
		Description: "Young Spanish Male. Voice is Clear, casual with a Mexican accent...",
	})

	return cat
}
