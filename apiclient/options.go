package apiclient

import (
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
)

type options struct {
	timeout time.Duration
	header  http.Header
	query   url.Values
	token   *oauth2.Token
}

// Option adjusts a single call.
type Option func(*options)

// WithTimeout overrides the client's default deadline for one call.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithHeader sets a request header.
func WithHeader(key, value string) Option {
	return func(o *options) {
		o.header.Set(key, value)
	}
}

// WithQuery appends query parameters to the path.
func WithQuery(values url.Values) Option {
	return func(o *options) {
		if o.query == nil {
			o.query = url.Values{}
		}
		for k, vs := range values {
			for _, v := range vs {
				o.query.Add(k, v)
			}
		}
	}
}

// WithToken sets the Authorization header from token.
func WithToken(token *oauth2.Token) Option {
	return func(o *options) {
		o.token = token
	}
}
