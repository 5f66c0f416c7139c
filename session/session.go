// Package session binds an authenticated login to the operations that follow
// it. The binding is carried as a signed token so a session value cannot be
// forged or edited in place; the role inside it is only a cached snapshot.
package session

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"pizzastore/errs"
	"pizzastore/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL bounds how long one log-in stays valid.
const DefaultTTL = 12 * time.Hour

type Claims struct {
	Login string          `json:"login"`
	Role  models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies session tokens with a per-process secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer creates an issuer with a fresh random secret.
func NewIssuer(ttl time.Duration) (*Issuer, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate session secret: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{secret: secret, ttl: ttl, now: time.Now}, nil
}

// Issue creates a signed token for login with a role snapshot
func (i *Issuer) Issue(login string, role models.UserRole) (string, error) {
	now := i.now()
	claims := Claims{
		Login: login,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   login,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Parse validates a token and returns its claims
func (i *Issuer) Parse(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(i.now))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: invalid or expired session", errs.ErrNotLoggedIn)
	}
	return claims, nil
}

// Prober looks up the role currently stored for a login.
type Prober interface {
	RoleOf(ctx context.Context, login string) (models.UserRole, error)
}

// Session is the state of one terminal user between log-in and log-out.
// The zero token means nobody is logged in.
type Session struct {
	issuer *Issuer
	token  string
	id     string
}

func New(issuer *Issuer) *Session {
	return &Session{issuer: issuer}
}

// Start binds login and role to the session, replacing any previous binding.
func (s *Session) Start(login string, role models.UserRole) error {
	token, err := s.issuer.Issue(login, role)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	claims, err := s.issuer.Parse(token)
	if err != nil {
		return err
	}
	s.token = token
	s.id = claims.ID
	return nil
}

// Require returns the verified claims or ErrNotLoggedIn.
func (s *Session) Require() (*Claims, error) {
	if s == nil || s.token == "" {
		return nil, fmt.Errorf("%w: no user logged in", errs.ErrNotLoggedIn)
	}
	claims, err := s.issuer.Parse(s.token)
	if err != nil {
		s.End()
		return nil, err
	}
	return claims, nil
}

func (s *Session) Active() bool {
	_, err := s.Require()
	return err == nil
}

// Login is the bound login, or "" when nobody is logged in.
func (s *Session) Login() string {
	claims, err := s.Require()
	if err != nil {
		return ""
	}
	return claims.Login
}

// Role is the cached role snapshot taken at log-in or at the last probe.
func (s *Session) Role() models.UserRole {
	claims, err := s.Require()
	if err != nil {
		return ""
	}
	return claims.Role
}

// ID identifies the current log-in in diagnostics.
func (s *Session) ID() string {
	return s.id
}

// Refresh replaces the cached role, keeping the login.
func (s *Session) Refresh(role models.UserRole) error {
	claims, err := s.Require()
	if err != nil {
		return err
	}
	if claims.Role == role {
		return nil
	}
	return s.Start(claims.Login, role)
}

// Rename rebinds the session to a new login after the user row was renamed.
func (s *Session) Rename(login string) error {
	claims, err := s.Require()
	if err != nil {
		return err
	}
	return s.Start(login, claims.Role)
}

// End clears the binding.
func (s *Session) End() {
	if s == nil {
		return
	}
	s.token = ""
	s.id = ""
}

// Authorize probes the live role of the session's login and checks it against
// allowed. An empty allowed list only requires the user to still exist. A
// login that no longer exists ends the session.
func (s *Session) Authorize(ctx context.Context, p Prober, allowed ...models.UserRole) (models.UserRole, error) {
	claims, err := s.Require()
	if err != nil {
		return "", err
	}
	role, err := p.RoleOf(ctx, claims.Login)
	if errors.Is(err, errs.ErrNotFound) {
		s.End()
		return "", fmt.Errorf("%w: user %s no longer exists", errs.ErrNotLoggedIn, claims.Login)
	}
	if err != nil {
		return "", err
	}
	if err := s.Refresh(role); err != nil {
		return "", err
	}
	if len(allowed) == 0 {
		return role, nil
	}
	for _, r := range allowed {
		if role == r {
			return role, nil
		}
	}
	return role, fmt.Errorf("%w: required role(s): %s", errs.ErrForbidden, RolesString(allowed))
}

// RolesString joins roles for messages.
func RolesString(roles []models.UserRole) string {
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, ", ")
}
