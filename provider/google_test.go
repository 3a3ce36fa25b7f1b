package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ZaguanLabs/menuval"
)

type capturedQuery struct {
	q, target, source, format string
}

func newTranslateServer(t *testing.T, status int, translated string, got *capturedQuery) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got != nil {
			got.q = r.FormValue("q")
			got.target = r.FormValue("target")
			got.source = r.FormValue("source")
			got.format = r.FormValue("format")
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"code": status, "message": "quota exceeded"},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"translations": []map[string]string{{"translatedText": translated}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestGoogle(t *testing.T, srv *httptest.Server) *GoogleProvider {
	t.Helper()
	p, err := NewGoogleProvider(context.Background(), GoogleConfig{APIKey: "test", Endpoint: srv.URL + "/"})
	if err != nil {
		t.Fatalf("NewGoogleProvider failed: %v", err)
	}
	return p
}

func TestGoogleProvider_Translate(t *testing.T) {
	var got capturedQuery
	srv := newTranslateServer(t, http.StatusOK, "Chef&#39;s salad", &got)
	p := newTestGoogle(t, srv)

	out, err := p.Translate(context.Background(), TranslateRequest{
		Text:       "سلطة الشيف",
		SourceLang: menuval.LangAuto,
		TargetLang: menuval.LangEnglish,
	})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if out != "Chef's salad" {
		t.Errorf("Translate = %q, want unescaped text", out)
	}
	if got.q != "سلطة الشيف" || got.target != "en" || got.format != "text" {
		t.Errorf("request = %+v", got)
	}
	if got.source != "" {
		t.Errorf("auto source should not be sent, got %q", got.source)
	}
}

func TestGoogleProvider_ExplicitSource(t *testing.T) {
	var got capturedQuery
	srv := newTranslateServer(t, http.StatusOK, "دجاج", &got)
	p := newTestGoogle(t, srv)

	if _, err := p.Translate(context.Background(), TranslateRequest{
		Text:       "chicken",
		SourceLang: menuval.LangEnglish,
		TargetLang: menuval.LangArabic,
	}); err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if got.source != "en" {
		t.Errorf("source = %q, want en", got.source)
	}
}

func TestGoogleProvider_RateLimitedIsRetryable(t *testing.T) {
	srv := newTranslateServer(t, http.StatusTooManyRequests, "", nil)
	p := newTestGoogle(t, srv)

	_, err := p.Translate(context.Background(), TranslateRequest{Text: "tea", TargetLang: menuval.LangArabic})
	var perr *menuval.ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *ProviderError", err)
	}
	if !perr.Retryable {
		t.Error("429 should be retryable")
	}
	if !menuval.IsRetryable(err) {
		t.Error("IsRetryable should agree with the flag")
	}
}

func TestGoogleProvider_BadRequestNotRetryable(t *testing.T) {
	srv := newTranslateServer(t, http.StatusBadRequest, "", nil)
	p := newTestGoogle(t, srv)

	_, err := p.Translate(context.Background(), TranslateRequest{Text: "tea", TargetLang: "xx"})
	if err == nil || menuval.IsRetryable(err) {
		t.Errorf("400 should fail without retry, got %v", err)
	}
}
