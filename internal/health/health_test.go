package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charlavoz/charla/internal/voice"
)

func TestWriteStatus(t *testing.T) {
	t.Parallel()

	s := New(0, voice.Fallback())

	rec := httptest.NewRecorder()
	s.writeStatus(rec)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 before ready, got %d", rec.Code)
	}

	var st status
	if err := json.NewDecoder(rec.Body).Decode(&st); err != nil {
		t.Fatalf("decoding status: %v", err)
	}
	if st.Status != "not_ready" {
		t.Errorf("expected not_ready, got %q", st.Status)
	}
	if st.EnglishVoices != 2 || st.SpanishVoices != 2 {
		t.Errorf("expected 2+2 voice counts, got %d+%d", st.EnglishVoices, st.SpanishVoices)
	}

	s.SetReady(true)
	rec = httptest.NewRecorder()
	s.writeStatus(rec)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 when ready, got %d", rec.Code)
	}
}
