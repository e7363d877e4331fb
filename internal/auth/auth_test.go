package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func sessionRequest(t *testing.T, userID uint) *http.Request {
	t.Helper()
	rec := httptest.NewRecorder()
	CreateSession(rec, userID)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestSessionRoundTrip(t *testing.T) {
	req := sessionRequest(t, 42)
	uid, ok := ParseSession(req)
	if !ok || uid != 42 {
		t.Fatalf("expected uid 42, got %d ok=%v", uid, ok)
	}
}

func TestSessionTamperRejected(t *testing.T) {
	req := sessionRequest(t, 42)
	c, err := req.Cookie("session")
	if err != nil {
		t.Fatal(err)
	}
	forged := strings.Replace(c.Value, "42.", "43.", 1)
	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	req2.AddCookie(&http.Cookie{Name: "session", Value: forged})
	if _, ok := ParseSession(req2); ok {
		t.Fatal("tampered session accepted")
	}
}

func TestRequireAuthRedirectsAnonymous(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not run")
	})
	req := httptest.NewRequest(http.MethodPost, "/politicians/1/rate/", nil)
	w := httptest.NewRecorder()
	RequireAuth(next).ServeHTTP(w, req)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login got %q", loc)
	}
	// The flash message accompanies the redirect.
	found := false
	for _, c := range w.Result().Cookies() {
		if c.Name == "flash" && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a flash cookie on auth redirect")
	}
}

func TestRequireAuthVerifierRejectsDeletedUser(t *testing.T) {
	SetUserVerifier(func(_ context.Context, _ uint) bool { return false })
	defer SetUserVerifier(nil)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler should not run")
	})
	req := httptest.NewRequest(http.MethodGet, "/politicians/add/", nil)
	req = req.WithContext(WithUserID(req.Context(), 7))
	w := httptest.NewRecorder()
	RequireAuth(next).ServeHTTP(w, req)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 got %d", w.Code)
	}
	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" && c.Value == "" {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("expected stale session to be cleared")
	}
}

func TestMiddlewareAttachesUserID(t *testing.T) {
	var got uint
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = UserIDFromContext(r.Context())
	})
	req := sessionRequest(t, 9)
	Middleware(next).ServeHTTP(httptest.NewRecorder(), req)
	if got != 9 {
		t.Fatalf("expected uid 9 in context, got %d", got)
	}
}
