package server

import (
	"net/http"
	"net/url"

	"github.com/jrsteele09/go-console-gateway/console"
	"github.com/rs/zerolog/log"
)

// LoginPageData is what the login page needs to render.
type LoginPageData struct {
	Next  string `json:"next,omitempty"`  // page to return to after login
	Error string `json:"error,omitempty"` // message from a failed attempt
	Email string `json:"email,omitempty"` // Preserve email on error
}

// LoginPageHandler displays the login page (GET /login). The gate only lets
// callers without a session reach it.
func (s *Server) LoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		writeJSON(w, http.StatusOK, LoginPageData{
			Next:  safeNext(q.Get("next"), ""),
			Error: q.Get("error"),
			Email: q.Get("email"),
		})
	}
}

// LoginSubmissionHandler processes the login form submission
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		email := r.FormValue("email")
		password := r.FormValue("password")
		next := safeNext(r.FormValue("next"), RouteHome)

		result := s.console.Login(r.Context(), w, r, email, password)
		if result.Status != console.ResultSuccess {
			log.Debug().Str("email", email).Str("reason", result.Message).Msg("login rejected")
			redirectWithError(w, r, RouteLogin, result.Message, url.Values{"email": {email}, "next": {r.FormValue("next")}})
			return
		}

		redirectSuccess(w, r, next)
	}
}

func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.console.Logout(w)
		redirectSuccess(w, r, RouteLogin)
	}
}
