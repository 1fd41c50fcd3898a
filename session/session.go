package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// CookieName is the cookie carrying the session token.
const CookieName = "sid"

const tokenType = "session"

var (
	ErrInvalidToken = errors.New("invalid or expired session token")
	ErrRevoked      = errors.New("session revoked")
)

// Backend records live sessions so they can be revoked before they expire.
type Backend interface {
	Save(ctx context.Context, id string, userID uint, ttl time.Duration) error
	Lookup(ctx context.Context, id string) (uint, error)
	Delete(ctx context.Context, id string) error
}

// Manager issues signed session tokens and resolves them back to users.
// A token is an HS256 JWT whose jti names the server-side session record.
type Manager struct {
	secret  []byte
	ttl     time.Duration
	backend Backend
	now     func() time.Time
}

func NewManager(secret string, ttl time.Duration, backend Backend) *Manager {
	return &Manager{
		secret:  []byte(secret),
		ttl:     ttl,
		backend: backend,
		now:     time.Now,
	}
}

// TTL is how long issued sessions stay valid.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue starts a session for userID and returns its token.
func (m *Manager) Issue(ctx context.Context, userID uint) (string, error) {
	id := uuid.NewString()
	now := m.now()

	claims := jwt.RegisteredClaims{
		ID:        id,
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{Type: tokenType, RegisteredClaims: claims})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	if err := m.backend.Save(ctx, id, userID, m.ttl); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return signed, nil
}

// Resolve validates token and returns the user it was issued for.
func (m *Manager) Resolve(ctx context.Context, token string) (uint, error) {
	claims, err := m.parse(token)
	if err != nil {
		return 0, err
	}

	userID, err := m.backend.Lookup(ctx, claims.ID)
	if err != nil {
		return 0, err
	}
	if strconv.FormatUint(uint64(userID), 10) != claims.Subject {
		return 0, ErrInvalidToken
	}
	return userID, nil
}

// Revoke ends the session behind token. Unparseable tokens are ignored.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	claims, err := m.parse(token)
	if err != nil {
		return nil
	}
	return m.backend.Delete(ctx, claims.ID)
}

type sessionClaims struct {
	Type string `json:"typ"`
	jwt.RegisteredClaims
}

func (m *Manager) parse(token string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Type != tokenType || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
