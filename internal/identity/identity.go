// Package identity signs the site owner in and carries the resulting session.
//
// There is exactly one account, configured through the environment. A
// successful SignIn yields a Session and a signed token; the token is what
// the HTTP layer stores in a cookie and hands back to Verify on each request.
package identity

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "portfolio-admin"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid session")
)

// Session is an authenticated admin session. It is read-only once issued.
type Session struct {
	ID        string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Authenticator checks the configured admin credentials and issues tokens.
type Authenticator struct {
	email    string
	password string
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

func NewAuthenticator(email, password, secret string, ttl time.Duration) *Authenticator {
	return &Authenticator{
		email:    strings.ToLower(strings.TrimSpace(email)),
		password: password,
		secret:   []byte(secret),
		ttl:      ttl,
		now:      time.Now,
	}
}

// TTL is how long issued sessions stay valid.
func (a *Authenticator) TTL() time.Duration {
	return a.ttl
}

// SignIn returns a new session and its token, or ErrInvalidCredentials.
func (a *Authenticator) SignIn(email, password string) (Session, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(a.email)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	if !emailOK || !passOK {
		return Session{}, "", ErrInvalidCredentials
	}

	now := a.now().UTC().Truncate(time.Second)
	session := Session{
		ID:        uuid.NewString(),
		Email:     a.email,
		IssuedAt:  now,
		ExpiresAt: now.Add(a.ttl),
	}
	claims := jwt.RegisteredClaims{
		ID:        session.ID,
		Issuer:    issuer,
		Subject:   session.Email,
		IssuedAt:  jwt.NewNumericDate(session.IssuedAt),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return Session{}, "", fmt.Errorf("sign session: %w", err)
	}
	return session, token, nil
}

// Verify parses a token issued by SignIn.
func (a *Authenticator) Verify(token string) (Session, error) {
	if token == "" {
		return Session{}, ErrInvalidSession
	}
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if claims.Subject != a.email {
		return Session{}, ErrInvalidSession
	}

	s := Session{ID: claims.ID, Email: claims.Subject}
	if claims.IssuedAt != nil {
		s.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	s.ExpiresAt = claims.ExpiresAt.Time.UTC()
	return s, nil
}

type sessionKey struct{}

// WithSession returns ctx carrying s.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// FromContext returns the session stored by WithSession.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok
}
