package services_test

import (
	"context"
	"testing"

	apperrors "storefront/common/errors"
	"storefront/models"
	awspkg "storefront/pkg/aws"
	"storefront/repository"
	"storefront/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuth(t *testing.T) (*services.AuthService, *repository.MemoryStore, *fakeMetrics) {
	t.Helper()
	store := repository.NewMemoryStore()
	metrics := &fakeMetrics{}
	return services.NewAuthService(store, testCost, metrics, zap.NewNop()), store, metrics
}

func registerReq(username, email string) models.RegisterRequest {
	return models.RegisterRequest{Username: username, Password: "secret1", Email: email}
}

func TestRegister_HashesPassword(t *testing.T) {
	auth, store, metrics := newAuth(t)

	user, err := auth.Register(context.Background(), registerReq("alice", "alice@example.com"))
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.NotEqual(t, "secret1", user.Password)

	stored, err := store.GetUserByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.False(t, stored.IsAdmin)
	assert.Eventually(t, func() bool { return metrics.count(awspkg.MetricUserRegistrations) == 1 }, timeout, tick)
}

func TestRegister_Conflicts(t *testing.T) {
	tests := []struct {
		name    string
		req     models.RegisterRequest
		message string
	}{
		{"duplicate email", registerReq("other", "alice@example.com"), "Email already in use"},
		{"duplicate username", registerReq("alice", "other@example.com"), "Username already taken"},
		{"email checked first", registerReq("alice", "alice@example.com"), "Email already in use"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth, store, _ := newAuth(t)
			_, err := auth.Register(context.Background(), registerReq("alice", "alice@example.com"))
			require.NoError(t, err)

			_, err = auth.Register(context.Background(), tt.req)
			appErr := apperrors.From(err)
			assert.Equal(t, 400, appErr.Code)
			assert.Equal(t, tt.message, appErr.Message)

			users, err := store.ListUsers(context.Background())
			require.NoError(t, err)
			assert.Len(t, users, 1)
		})
	}
}

func TestLogin(t *testing.T) {
	auth, _, _ := newAuth(t)
	registered, err := auth.Register(context.Background(), registerReq("alice", "alice@example.com"))
	require.NoError(t, err)

	user, err := auth.Login(context.Background(), models.LoginRequest{Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = auth.Login(context.Background(), models.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = auth.Login(context.Background(), models.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = auth.Login(context.Background(), models.LoginRequest{Email: "alice@example.com"})
	assert.Equal(t, "Email and password are required", apperrors.From(err).Message)
}

func TestUpdateProfile(t *testing.T) {
	store := repository.NewMemoryStore()
	auth := services.NewAuthService(store, testCost, nil, zap.NewNop())
	users := services.NewUserService(store, testCost, zap.NewNop())
	ctx := context.Background()

	alice, err := auth.Register(ctx, registerReq("alice", "alice@example.com"))
	require.NoError(t, err)
	_, err = auth.Register(ctx, registerReq("bob", "bob@example.com"))
	require.NoError(t, err)

	t.Run("keeps own username", func(t *testing.T) {
		updated, err := users.UpdateProfile(ctx, alice.ID, models.UpdateProfileRequest{
			Username: strPtr("alice"),
			City:     strPtr("Lisbon"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Lisbon", updated.City)
	})

	t.Run("rejects taken email", func(t *testing.T) {
		_, err := users.UpdateProfile(ctx, alice.ID, models.UpdateProfileRequest{Email: strPtr("bob@example.com")})
		assert.Equal(t, "Email already in use", apperrors.From(err).Message)
	})

	t.Run("rejects taken username", func(t *testing.T) {
		_, err := users.UpdateProfile(ctx, alice.ID, models.UpdateProfileRequest{Username: strPtr("bob")})
		assert.Equal(t, "Username already taken", apperrors.From(err).Message)
	})

	t.Run("rehashes password", func(t *testing.T) {
		_, err := users.UpdateProfile(ctx, alice.ID, models.UpdateProfileRequest{Password: strPtr("newsecret")})
		require.NoError(t, err)

		_, err = auth.Login(ctx, models.LoginRequest{Email: "alice@example.com", Password: "newsecret"})
		assert.NoError(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := users.UpdateProfile(ctx, 99, models.UpdateProfileRequest{City: strPtr("Porto")})
		assert.Equal(t, 404, apperrors.From(err).Code)
	})
}
