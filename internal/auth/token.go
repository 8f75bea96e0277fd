package auth

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenExpired is returned once the held token's exp claim has passed.
// The caller is expected to prompt for a fresh login; there is no refresh
// flow on the client side.
var ErrTokenExpired = errors.New("auth: bearer token expired")

// ErrNoToken is returned when no token has been set.
var ErrNoToken = errors.New("auth: no bearer token")

// StaticTokenSource holds one bearer token issued by the identity service.
// The token is only inspected, never verified; signature checking is the
// server's job.
type StaticTokenSource struct {
	mu     sync.Mutex
	token  string
	expiry time.Time
	now    func() time.Time
}

// NewStaticTokenSource creates a source holding token. The exp claim is read
// without signature verification; tokens without one never expire locally.
func NewStaticTokenSource(token string) *StaticTokenSource {
	s := &StaticTokenSource{now: time.Now}
	s.Set(token)
	return s
}

// Set replaces the held token, re-reading its expiry.
func (s *StaticTokenSource) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.expiry = time.Time{}
	if token == "" {
		return
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return
	}
	if exp, err := parsed.Claims.GetExpirationTime(); err == nil && exp != nil {
		s.expiry = exp.Time
	}
}

// Token returns the held token, or an error when none is set or it has
// expired.
func (s *StaticTokenSource) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return "", ErrNoToken
	}
	if !s.expiry.IsZero() && !s.now().Before(s.expiry) {
		return "", ErrTokenExpired
	}
	return s.token, nil
}
