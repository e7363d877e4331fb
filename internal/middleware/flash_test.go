package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFlashRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	Flash(rec, "Comment added!")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	rec2 := httptest.NewRecorder()
	if got := PopFlash(rec2, req); got != "Comment added!" {
		t.Fatalf("expected message back, got %q", got)
	}
	// Pop must clear the cookie.
	cleared := false
	for _, c := range rec2.Result().Cookies() {
		if c.Name == "flash" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("expected flash cookie to be cleared")
	}
}

func TestPopFlashEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := PopFlash(httptest.NewRecorder(), req); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
