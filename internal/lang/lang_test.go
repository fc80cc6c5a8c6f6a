package lang

import "testing"

func defaultDetector() *Detector {
	return NewDetector(2, 1, 2)
}

func TestClassify_EnglishFunctionWords(t *testing.T) {
	t.Parallel()

	d := defaultDetector()

	label, conclusive := d.Classify("the cat is on the table")
	if !conclusive {
		t.Fatal("expected conclusive classification")
	}
	if label != English {
		t.Errorf("expected ENGLISH, got %s", label)
	}

	spanish, english := d.Scores("the cat is on the table")
	if spanish != 0 {
		t.Errorf("expected spanish score 0, got %d", spanish)
	}
	if english < 3 {
		t.Errorf("expected english score >= 3, got %d", english)
	}
}

func TestClassify_SpanishDiacritics(t *testing.T) {
	t.Parallel()

	d := defaultDetector()

	label, conclusive := d.Classify("¿Dónde está el baño?")
	if !conclusive {
		t.Fatal("expected conclusive classification")
	}
	if label != Spanish {
		t.Errorf("expected SPANISH, got %s", label)
	}

	// ¿ ó á é ñ each score 2; "está" and "el" each score 1.
	spanish, _ := d.Scores("¿Dónde está el baño?")
	if spanish < 4 {
		t.Errorf("expected spanish score >= 4, got %d", spanish)
	}
}

func TestClassify_AmbiguousFallsThrough(t *testing.T) {
	t.Parallel()

	d := defaultDetector()

	cases := []struct {
		name string
		text string
	}{
		{"proper noun", "Barcelona"},
		{"numerals", "1234 5678"},
		{"empty", ""},
		{"whitespace", "   \n\t "},
		{"single article each", "the el"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			label, conclusive := d.Classify(tc.text)
			if conclusive {
				t.Errorf("expected inconclusive for %q, got %s", tc.text, label)
			}
			if label != Unknown {
				t.Errorf("expected UNKNOWN for %q, got %s", tc.text, label)
			}
		})
	}
}

func TestClassify_ThresholdBoundary(t *testing.T) {
	t.Parallel()

	d := defaultDetector()

	// Two English function words score exactly 2, which does not clear the
	// "> 2" threshold.
	spanish, english := d.Scores("the dog barked at")
	if spanish != 0 || english != 2 {
		t.Fatalf("unexpected scores: spanish=%d english=%d", spanish, english)
	}
	if _, conclusive := d.Classify("the dog barked at"); conclusive {
		t.Error("score of exactly 2 should be inconclusive")
	}

	// Three clear the threshold.
	label, conclusive := d.Classify("the dog barked at the mailman")
	if !conclusive || label != English {
		t.Errorf("expected conclusive ENGLISH, got %s (conclusive=%v)", label, conclusive)
	}
}

func TestScores_CaseInsensitive(t *testing.T) {
	t.Parallel()

	d := defaultDetector()

	lower, _ := d.Scores("el perro está en la casa")
	upper, _ := d.Scores("EL PERRO ESTÁ EN LA CASA")
	if lower != upper {
		t.Errorf("scores differ by case: %d vs %d", lower, upper)
	}
}

func TestNewDetector_DefaultsOnInvalidConfig(t *testing.T) {
	t.Parallel()

	d := NewDetector(0, -1, 0)
	if d.diacriticWeight != 2 || d.functionWordWeight != 1 || d.threshold != 2 {
		t.Errorf("expected defaults (2,1,2), got (%d,%d,%d)",
			d.diacriticWeight, d.functionWordWeight, d.threshold)
	}
}
