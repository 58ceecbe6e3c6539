package gate

// State is the outcome of evaluating one request.
type State int

const (
	PublicUnauthenticated State = iota
	PublicAuthenticated
	ProtectedAuthorized
	ProtectedUnauthorized
	ProtectedUnauthenticated
	// Bypassed requests never reach the gate (static assets, metrics).
	Bypassed
)

func (s State) String() string {
	switch s {
	case PublicUnauthenticated:
		return "public_unauthenticated"
	case PublicAuthenticated:
		return "public_authenticated"
	case ProtectedAuthorized:
		return "protected_authorized"
	case ProtectedUnauthorized:
		return "protected_unauthorized"
	case ProtectedUnauthenticated:
		return "protected_unauthenticated"
	case Bypassed:
		return "bypassed"
	default:
		return "unknown"
	}
}

// Allowed reports whether the request proceeds to its handler.
func (s State) Allowed() bool {
	return s == PublicUnauthenticated || s == ProtectedAuthorized || s == Bypassed
}

// Decision is the gate's verdict for a request. Redirect is set when the
// request is not allowed through.
type Decision struct {
	State    State
	Redirect string
}
