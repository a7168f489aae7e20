package http

import (
	"net/http"
	"time"
)

// Cookie names. The session cookie is the opaque per-browser session token;
// the trust cookie is the signed device-trust token that outlives sessions.
const (
	SessionCookieName = "authflow_session"
	TrustCookieName   = "device_trust"
)

// CookieConfig controls the attributes on issued cookies.
type CookieConfig struct {
	// Secure marks cookies Secure; disable only for local development.
	Secure bool

	SessionTTL time.Duration
	TrustTTL   time.Duration
}

func (c CookieConfig) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c CookieConfig) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c CookieConfig) setTrustCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     TrustCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.TrustTTL.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// cookieValue reads a cookie, returning "" when absent.
func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
