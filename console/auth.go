package console

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-console-gateway/apiclient"
	apperrors "github.com/jrsteele09/go-console-gateway/internal/errors"
	"github.com/jrsteele09/go-console-gateway/sessions"
	"github.com/rs/zerolog/log"
)

// ResultStatus is the toast variant shown after a login attempt.
type ResultStatus string

const (
	ResultSuccess     ResultStatus = "success"
	ResultDestructive ResultStatus = "destructive"
)

const (
	msgLoginSuccessful    = "Login successful"
	msgInvalidCredentials = "Invalid email or password"
	msgMissingCredentials = "Email and password are required"
	msgLoginFailed        = "Login failed"
)

// Result is the outcome of Login.
type Result struct {
	Message string       `json:"message"`
	Status  ResultStatus `json:"status"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User   sessions.Principal   `json:"user"`
	Tokens sessions.Credentials `json:"tokens"`
}

// Login exchanges the credentials with the backend and, on success, writes a
// new signed session cookie to w. It makes no use of any existing session.
func (c *Console) Login(ctx context.Context, w http.ResponseWriter, r *http.Request, email, password string) Result {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Result{Message: msgMissingCredentials, Status: ResultDestructive}
	}

	reqErr, resp := apperrors.Catch(func() (*loginResponse, error) {
		return apiclient.Do[loginResponse](ctx, c.gateway.Client(), http.MethodPost, pathLogin, loginRequest{Email: email, Password: password})
	})
	if reqErr != nil {
		if reqErr.Status == http.StatusUnauthorized {
			return Result{Message: msgInvalidCredentials, Status: ResultDestructive}
		}
		return Result{Message: reqErr.Message, Status: ResultDestructive}
	}
	if resp == nil || resp.Tokens.Access == "" {
		log.Warn().Str("email", email).Msg("login response carried no access token")
		return Result{Message: msgLoginFailed, Status: ResultDestructive}
	}

	signed, err := c.store.Codec().Encode(resp.User, resp.Tokens)
	if err != nil {
		log.Err(err).Str("email", email).Msg("failed to sign session")
		return Result{Message: msgLoginFailed, Status: ResultDestructive}
	}
	c.store.Persist(w, r, signed)

	log.Info().Str("email", resp.User.Email).Str("role", resp.User.Role).Msg("user logged in")
	return Result{Message: msgLoginSuccessful, Status: ResultSuccess}
}

// Logout clears the session cookie.
func (c *Console) Logout(w http.ResponseWriter) {
	c.store.Clear(w)
}
