// Package gateway is the single entry point feature code uses to reach the
// backend on behalf of the signed in user.
package gateway

import (
	"context"
	"net/http"
	"reflect"

	"github.com/jrsteele09/go-console-gateway/apiclient"
	apperrors "github.com/jrsteele09/go-console-gateway/internal/errors"
	"github.com/jrsteele09/go-console-gateway/sessions"
	"github.com/rs/zerolog/log"
)

const msgNotLoggedIn = "User not logged in"

// Config controls the wrapper's policies.
type Config struct {
	// LogoutOnUnauthorized clears the session cookie when the backend rejects
	// the access token with a 401.
	LogoutOnUnauthorized bool
}

// Gateway attaches the caller's credentials to backend calls and folds every
// recognised failure into an ActionResponse.
type Gateway struct {
	client *apiclient.Client
	config Config
}

// New creates a Gateway over client.
func New(client *apiclient.Client, cfg Config) *Gateway {
	return &Gateway{client: client, config: cfg}
}

// Client returns the underlying backend client for calls that need no session.
func (g *Gateway) Client() *apiclient.Client {
	return g.client
}

// Call performs one backend call as the session bound to ctx. Without a
// session no request is made and a 401 response is returned.
func Call[B any, D any](ctx context.Context, g *Gateway, method, path string, body B, opts ...apiclient.Option) ActionResponse[D] {
	session, ok := sessions.FromContext(ctx)
	if !ok {
		return Failure[D](http.StatusUnauthorized, msgNotLoggedIn)
	}

	opts = append(opts, apiclient.WithToken(session.Credentials.Token()))

	var payload any = body
	if isNil(body) {
		payload = nil
	}

	reqErr, data := apperrors.Catch(func() (*D, error) {
		return apiclient.Do[D](ctx, g.client, method, path, payload, opts...)
	})
	if reqErr != nil {
		if reqErr.Status == http.StatusUnauthorized && g.config.LogoutOnUnauthorized {
			if sessions.End(ctx) {
				log.Info().Str("email", session.Principal.Email).Str("path", path).Msg("backend rejected credentials, session cleared")
			}
		}
		return Failure[D](reqErr.Status, reqErr.Message)
	}
	return Success(data)
}

// Get performs a GET as the current session.
func Get[D any](ctx context.Context, g *Gateway, path string, opts ...apiclient.Option) ActionResponse[D] {
	return Call[any, D](ctx, g, http.MethodGet, path, nil, opts...)
}

// Delete performs a DELETE as the current session.
func Delete[D any](ctx context.Context, g *Gateway, path string, opts ...apiclient.Option) ActionResponse[D] {
	return Call[any, D](ctx, g, http.MethodDelete, path, nil, opts...)
}

// Post performs a POST as the current session.
func Post[B any, D any](ctx context.Context, g *Gateway, path string, body B, opts ...apiclient.Option) ActionResponse[D] {
	return Call[B, D](ctx, g, http.MethodPost, path, body, opts...)
}

// Put performs a PUT as the current session.
func Put[B any, D any](ctx context.Context, g *Gateway, path string, body B, opts ...apiclient.Option) ActionResponse[D] {
	return Call[B, D](ctx, g, http.MethodPut, path, body, opts...)
}

// Patch performs a PATCH as the current session.
func Patch[B any, D any](ctx context.Context, g *Gateway, path string, body B, opts ...apiclient.Option) ActionResponse[D] {
	return Call[B, D](ctx, g, http.MethodPatch, path, body, opts...)
}

// isNil reports whether a generic body carries no value, so that typed nil
// pointers are sent without a body rather than as JSON null.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
