package middleware

import (
	"net/http"
	"net/url"
	"time"
)

const flashCookieName = "flash"

// Flash stores a one-shot message cookie shown on the next rendered page.
func Flash(w http.ResponseWriter, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:  flashCookieName,
		Value: url.QueryEscape(msg),
		Path:  "/",
	})
}

// PopFlash returns the pending flash message, if any, and clears the cookie.
func PopFlash(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(flashCookieName)
	if err != nil || c.Value == "" {
		return ""
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1})
	if dec, derr := url.QueryUnescape(c.Value); derr == nil {
		return dec
	}
	return c.Value
}
