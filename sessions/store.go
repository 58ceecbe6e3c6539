package sessions

import (
	"net/http"
	"time"
)

const (
	// DefaultCookieName is the cookie carrying the signed session.
	DefaultCookieName = "session"
	// DefaultCookieTTL outlives the token on purpose: an expired token in a
	// live cookie is rejected by the codec, not by cookie absence.
	DefaultCookieTTL = 365 * 24 * time.Hour
)

// StoreConfig controls the session cookie.
type StoreConfig struct {
	CookieName string
	CookieTTL  time.Duration
	Path       string
	Secure     bool // always set Secure; otherwise only on https requests
}

// Store keeps the signed session in an HTTP-only cookie.
type Store struct {
	codec  *Codec
	config StoreConfig
}

// NewStore creates a cookie store backed by codec.
func NewStore(codec *Codec, cfg StoreConfig) *Store {
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultCookieName
	}
	if cfg.CookieTTL <= 0 {
		cfg.CookieTTL = DefaultCookieTTL
	}
	if cfg.Path == "" {
		cfg.Path = "/"
	}
	return &Store{codec: codec, config: cfg}
}

// Codec returns the codec used to sign and verify cookies.
func (s *Store) Codec() *Codec {
	return s.codec
}

// CookieName returns the session cookie name.
func (s *Store) CookieName() string {
	return s.config.CookieName
}

// Persist writes the signed token to the session cookie.
func (s *Store) Persist(w http.ResponseWriter, r *http.Request, signed string) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.CookieName,
		Value:    signed,
		Path:     s.config.Path,
		Expires:  NowTimeFunc().Add(s.config.CookieTTL),
		HttpOnly: true,
		Secure:   s.config.Secure || getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
	})
}

// Current decodes the session cookie of r. A missing cookie or a token that
// fails verification both yield nil.
func (s *Store) Current(r *http.Request) *Session {
	cookie, err := r.Cookie(s.config.CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	return s.codec.Decode(cookie.Value)
}

// Clear overwrites the session cookie with an empty, already expired value.
func (s *Store) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.CookieName,
		Value:    "",
		Path:     s.config.Path,
		MaxAge:   -1, // sent as Max-Age=0
		HttpOnly: true,
	})
}

// Bind attaches the request's session (possibly nil) and a way to clear it to
// the request context. It returns the session that was bound.
func (s *Store) Bind(w http.ResponseWriter, r *http.Request) (*http.Request, *Session) {
	session := s.Current(r)
	return r.WithContext(NewContext(r.Context(), session, func() { s.Clear(w) })), session
}

// getScheme determines the scheme (http/https) of the request
func getScheme(r *http.Request) string {
	if r == nil {
		return "http"
	}
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
