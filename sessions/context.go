package sessions

import (
	"context"
	"sync"
)

type contextKey string

const bindingKey contextKey = "session"

// binding is the request scoped view of the session.
type binding struct {
	session *Session
	clear   func()
	once    sync.Once
}

// NewContext returns a context carrying session and a function that clears
// the session cookie for the current response.
func NewContext(ctx context.Context, session *Session, clear func()) context.Context {
	return context.WithValue(ctx, bindingKey, &binding{session: session, clear: clear})
}

// FromContext returns the session bound to ctx, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	b, ok := ctx.Value(bindingKey).(*binding)
	if !ok || b.session == nil {
		return nil, false
	}
	return b.session, true
}

// End clears the session cookie bound to ctx. It reports whether a binding
// was present. Repeated calls clear the cookie once.
func End(ctx context.Context) bool {
	b, ok := ctx.Value(bindingKey).(*binding)
	if !ok || b.clear == nil {
		return false
	}
	b.once.Do(b.clear)
	return true
}
