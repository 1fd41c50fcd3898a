package session

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() (*Manager, *MemoryBackend) {
	backend := NewMemoryBackend()
	return NewManager("test-secret", time.Hour, backend), backend
}

func TestManager_IssueAndResolve(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	token, err := m.Issue(ctx, 42)
	require.NoError(t, err)

	userID, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestManager_RevokeEndsSession(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	token, err := m.Issue(ctx, 7)
	require.NoError(t, err)
	require.NoError(t, m.Revoke(ctx, token))

	_, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrRevoked)
	assert.NoError(t, m.Revoke(ctx, "garbage"))
}

func TestManager_RejectsTamperedAndForeignTokens(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	token, err := m.Issue(ctx, 1)
	require.NoError(t, err)

	other := NewManager("another-secret", time.Hour, NewMemoryBackend())
	_, err = other.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Resolve(ctx, token+"x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1", "typ": "access", "jti": "abc", "exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := access.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = m.Resolve(ctx, signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_ExpiredToken(t *testing.T) {
	m, _ := newTestManager()
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := m.Issue(context.Background(), 1)
	require.NoError(t, err)

	_, err = m.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMemoryBackend_Sweep(t *testing.T) {
	b := NewMemoryBackend()
	now := time.Now()
	b.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, b.Save(ctx, "short", 1, time.Minute))
	require.NoError(t, b.Save(ctx, "long", 2, time.Hour))

	now = now.Add(10 * time.Minute)
	assert.Equal(t, 1, b.Sweep())

	_, err := b.Lookup(ctx, "short")
	assert.ErrorIs(t, err, ErrRevoked)
	id, err := b.Lookup(ctx, "long")
	require.NoError(t, err)
	assert.Equal(t, uint(2), id)
}

func TestRedisBackend_PropagatesConnectionErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "unused:0",
		MaxRetries:  -1,
		DialTimeout: 10 * time.Millisecond,
		Dialer: func(context.Context, string, string) (net.Conn, error) {
			return nil, errors.New("redis unavailable")
		},
	})
	defer client.Close()

	m := NewManager("test-secret", time.Hour, NewRedisBackend(client))
	_, err := m.Issue(context.Background(), 1)
	assert.ErrorContains(t, err, "redis unavailable")
}
