package auth

import (
	"context"
	"net/http"
	"sync"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/openmind-services/helpdesk-dashboard/pkg/util"
)

// TokenSource supplies the bearer token attached to every remote call.
// Acquisition and refresh belong to the external identity provider; the
// engine only consumes the current token string.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenSource returns a fixed token for the session.
type StaticTokenSource struct {
	mu    sync.RWMutex
	token string
}

// NewStaticTokenSource builds a source around an externally acquired token.
func NewStaticTokenSource(token string) *StaticTokenSource {
	return &StaticTokenSource{token: token}
}

// Token returns the current token.
func (s *StaticTokenSource) Token(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

// SetToken swaps in a refreshed token from the identity provider.
func (s *StaticTokenSource) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// ExpiryCheckedSource wraps a TokenSource and fails fast with an AuthError
// when the token is visibly expired, saving a doomed round trip. Tokens whose
// expiry cannot be determined pass through; the remote store remains the
// authority.
type ExpiryCheckedSource struct {
	inner TokenSource
	now   func() time.Time
}

// NewExpiryCheckedSource wraps inner with a local expiry check.
func NewExpiryCheckedSource(inner TokenSource) *ExpiryCheckedSource {
	return &ExpiryCheckedSource{inner: inner, now: time.Now}
}

// Token returns the inner token, or an AuthError if it has expired.
func (s *ExpiryCheckedSource) Token(ctx context.Context) (string, error) {
	token, err := s.inner.Token(ctx)
	if err != nil {
		return "", err
	}
	if expired(token, s.now()) {
		return "", util.NewAuthError("access token expired", http.StatusUnauthorized)
	}
	return token, nil
}

// expired inspects the token's exp claim without verifying the signature.
// The engine never validates tokens; it only avoids sending ones that the
// store is guaranteed to reject.
func expired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
