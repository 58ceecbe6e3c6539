package sessions_test

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/jrsteele09/go-console-gateway/internal/errors"
	"github.com/jrsteele09/go-console-gateway/sessions"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret"

var (
	testPrincipal = sessions.Principal{
		Name:  "Jane Smith",
		Email: "jane@example.com",
		Role:  "admin",
		Phone: "+44 7700 900123",
	}
	testCredentials = sessions.Credentials{
		Access:  "access-token-1",
		Refresh: "refresh-token-1",
	}
)

// freezeTime pins sessions.NowTimeFunc for the duration of the test.
func freezeTime(t *testing.T, now time.Time) *time.Time {
	t.Helper()
	current := now
	previous := sessions.NowTimeFunc
	sessions.NowTimeFunc = func() time.Time { return current }
	t.Cleanup(func() { sessions.NowTimeFunc = previous })
	return &current
}

func newCodec(t *testing.T) *sessions.Codec {
	t.Helper()
	codec, err := sessions.NewCodec([]byte(testSecret), 0)
	require.NoError(t, err)
	return codec
}

func TestNewCodec(t *testing.T) {
	_, err := sessions.NewCodec(nil, time.Hour)
	require.ErrorIs(t, err, apperrors.ErrMissingSecret)

	codec, err := sessions.NewCodec([]byte("x"), 0)
	require.NoError(t, err)
	require.Equal(t, sessions.DefaultSessionTTL, codec.TTL())
}

func TestCodec_RoundTrip(t *testing.T) {
	freezeTime(t, time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC))
	codec := newCodec(t)

	signed, err := codec.Encode(testPrincipal, testCredentials)
	require.NoError(t, err)
	require.Len(t, strings.Split(signed, "."), 3)

	session := codec.Decode(signed)
	require.NotNil(t, session)
	require.Equal(t, testPrincipal, session.Principal)
	require.Equal(t, testCredentials, session.Credentials)
	require.NotEmpty(t, session.ID)
	require.Equal(t, 7*24*time.Hour, session.ExpiresAt.Sub(session.IssuedAt))
}

func TestCodec_Expired(t *testing.T) {
	now := freezeTime(t, time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC))
	codec := newCodec(t)

	signed, err := codec.Encode(testPrincipal, testCredentials)
	require.NoError(t, err)

	*now = now.Add(7*24*time.Hour - time.Minute)
	require.NotNil(t, codec.Decode(signed))

	*now = now.Add(2 * time.Minute)
	require.Nil(t, codec.Decode(signed))

	_, err = codec.Verify(signed)
	require.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestCodec_IssuerClockAhead(t *testing.T) {
	now := freezeTime(t, time.Date(2026, 3, 1, 9, 30, 0, 500_000_000, time.UTC))
	codec := newCodec(t)

	signed, err := codec.Encode(testPrincipal, testCredentials)
	require.NoError(t, err)

	// A replica whose clock lags the issuer still accepts the session.
	*now = now.Add(-2 * time.Second)
	session, err := codec.Verify(signed)
	require.NoError(t, err)
	require.Equal(t, testPrincipal, session.Principal)
}

func TestCodec_TamperedSignature(t *testing.T) {
	codec := newCodec(t)
	signed, err := codec.Encode(testPrincipal, testCredentials)
	require.NoError(t, err)

	parts := strings.Split(signed, ".")
	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	require.NoError(t, err)

	for i := range sig {
		flipped := make([]byte, len(sig))
		copy(flipped, sig)
		flipped[i] ^= 0xFF
		tampered := parts[0] + "." + parts[1] + "." + base64.RawURLEncoding.EncodeToString(flipped)
		require.Nil(t, codec.Decode(tampered), "byte %d", i)
	}
}

func TestCodec_Rejects(t *testing.T) {
	codec := newCodec(t)
	signed, err := codec.Encode(testPrincipal, testCredentials)
	require.NoError(t, err)

	other, err := sessions.NewCodec([]byte("another-secret"), 0)
	require.NoError(t, err)

	parts := strings.Split(signed, ".")
	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user":   map[string]string{"role": "admin"},
		"tokens": map[string]string{"access": "x"},
		"iat":    time.Now().Unix(),
		"exp":    time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user": map[string]string{"role": "admin"},
		"iat":  time.Now().Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noIat, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user": map[string]string{"role": "admin"},
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := map[string]string{
		"empty":            "",
		"garbage":          "not-a-token",
		"two segments":     parts[0] + "." + parts[1],
		"tampered payload": parts[0] + "." + parts[1] + "x." + parts[2],
		"alg none":         noneToken,
		"missing exp":      noExp,
		"missing iat":      noIat,
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			require.NotPanics(t, func() {
				require.Nil(t, codec.Decode(token))
			})
		})
	}

	t.Run("different secret", func(t *testing.T) {
		require.Nil(t, other.Decode(signed))
	})
}

func FuzzCodecDecode(f *testing.F) {
	codec, err := sessions.NewCodec([]byte(testSecret), 0)
	if err != nil {
		f.Fatal(err)
	}
	valid, err := codec.Encode(testPrincipal, testCredentials)
	if err != nil {
		f.Fatal(err)
	}

	f.Add(valid)
	f.Add("")
	f.Add("a.b.c")
	f.Add("eyJhbGciOiJub25lIn0.eyJ1c2VyIjp7fX0.")

	f.Fuzz(func(t *testing.T, input string) {
		session := codec.Decode(input)
		if session != nil && session.Principal != testPrincipal {
			t.Fatalf("forged principal accepted for %q", input)
		}
	})
}
