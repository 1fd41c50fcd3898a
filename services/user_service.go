package services

import (
	"context"

	apperrors "storefront/common/errors"
	"storefront/models"
	"storefront/repository"

	"go.uber.org/zap"
)

type UserService struct {
	store  repository.Store
	hash   repository.PasswordHasher
	logger *zap.Logger
}

func NewUserService(store repository.Store, bcryptCost int, logger *zap.Logger) *UserService {
	return &UserService{store: store, hash: HashPassword(bcryptCost), logger: logger}
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "User not found")
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return users, nil
}

// UpdateProfile applies req to the caller's own record. A new username or
// email must not belong to anyone else, and a new password is re-hashed.
func (s *UserService) UpdateProfile(ctx context.Context, id uint, req models.UpdateProfileRequest) (*models.User, error) {
	patch := req.Patch()
	if patch.Password != nil {
		hashed, err := s.hash(*patch.Password)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		patch.Password = &hashed
	}

	var updated *models.User
	err := s.store.RunInTx(ctx, func(tx repository.Store) error {
		if err := ensureFree(ctx, tx, id, patch.Email, patch.Username); err != nil {
			return err
		}
		var err error
		updated, err = tx.UpdateUser(ctx, id, patch)
		if err != nil {
			return notFoundAs(err, "User not found")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("profile updated", zap.Uint("user_id", id))
	return updated, nil
}
