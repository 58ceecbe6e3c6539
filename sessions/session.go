package sessions

import (
	"time"

	"golang.org/x/oauth2"
)

// Principal is the authenticated identity returned by the backend login
// endpoint. It is embedded read-only in every session.
type Principal struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Phone string `json:"phone_number"`
}

// Credentials is the backend token pair. Only Access is ever sent upstream;
// refreshing is not supported.
type Credentials struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Token returns the access token as a bearer token.
func (c Credentials) Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  c.Access,
		RefreshToken: c.Refresh,
		TokenType:    "Bearer",
	}
}

// Session is the decoded form of the signed session token. The token is the
// only persistent representation; there is no server side session table.
type Session struct {
	ID          string
	Principal   Principal
	Credentials Credentials
	IssuedAt    time.Time
	ExpiresAt   time.Time
}
