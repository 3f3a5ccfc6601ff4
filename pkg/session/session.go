package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lithammer/shortuuid/v4"
)

// ErrInvalidToken is returned by [Manager.Verify] when the presented
// cookie value doesn't parse as a validly signed, unexpired token.
var ErrInvalidToken = errors.New("session: invalid or expired token")

// claims is the JWT payload binding a cookie to a server-minted session
// ID; it carries nothing beyond the registered claims jwt/v5 already
// understands (subject, issued-at, expiry).
type claims struct {
	jwt.RegisteredClaims
}

// Manager mints session IDs and signs/verifies the JWT carried in the
// handshake cookie's value.
type Manager struct {
	secret []byte
	opts   CookieOptions
	ttl    time.Duration
}

// NewManager returns a Manager that signs tokens with secret (HMAC-SHA256)
// and issues cookies with opts, each valid for ttl.
func NewManager(secret []byte, opts CookieOptions, ttl time.Duration) *Manager {
	return &Manager{secret: secret, opts: opts, ttl: ttl}
}

// NewSessionID mints a fresh, URL-safe session identifier.
func (m *Manager) NewSessionID() string {
	return shortuuid.New()
}

// Issue signs a token binding sessionID and returns the Set-Cookie header
// value to send to the client.
func (m *Manager) Issue(name, sessionID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", err
	}

	opts := m.opts
	opts.Expires = now.Add(m.ttl)
	return Serialize(name, signed, opts), nil
}

// Verify validates a token previously produced by Issue and returns the
// session ID it's bound to.
func (m *Manager) Verify(token string) (string, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	return c.Subject, nil
}
