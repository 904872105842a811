package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/samber/do"
	"github.com/skcvote/ballotd/internal/core"
)

// Session identifies a caller as either a voter ({userId}) or an admin
// ({admin: true}). The voter id is opaque to the rest of the system.
type Session struct {
	UserID string
	Admin  bool
}

type sessionClaims struct {
	jwt.RegisteredClaims

	Admin bool `json:"admin,omitempty"`
}

// Sessions signs and verifies the opaque session tokens carried by the
// evoting.sid cookie.
type Sessions struct {
	secret []byte
}

func NewSessions(injector *do.Injector) (*Sessions, error) {
	config, err := do.Invoke[core.Config](injector)
	if err != nil {
		return nil, err
	}

	if config.SessionSecret() == "" {
		return nil, errEmptySecret
	}

	return &Sessions{secret: []byte(config.SessionSecret())}, nil
}

func (s *Sessions) Issue(session Session, now time.Time) (string, error) {
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(core.SessionTTL)),
		},
		Admin: session.Admin,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}

	return token, nil
}

func (s *Sessions) Verify(token string) (Session, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	claims := &sessionClaims{}

	parsed, err := parser.ParseWithClaims(token, claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return Session{}, fmt.Errorf("%w: %w", core.ErrNotAuthenticated, err)
	}

	if !parsed.Valid {
		return Session{}, core.ErrNotAuthenticated
	}

	if !claims.Admin && claims.Subject == "" {
		return Session{}, core.ErrNotAuthenticated
	}

	return Session{
		UserID: claims.Subject,
		Admin:  claims.Admin,
	}, nil
}

func (s *Sessions) HealthCheck() error {
	return nil
}

func (s *Sessions) Shutdown() error {
	return nil
}

var errEmptySecret = errors.New("session secret is not configured")
