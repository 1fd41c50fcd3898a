package services

import (
	"context"
	"errors"

	apperrors "storefront/common/errors"
	awspkg "storefront/pkg/aws"
	"storefront/models"
	"storefront/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	errEmailTaken    = apperrors.Conflict("Email already in use")
	errUsernameTaken = apperrors.Conflict("Username already taken")
)

// HashPassword returns a bcrypt hasher at the given cost, suitable for
// repository.Seed.
func HashPassword(cost int) repository.PasswordHasher {
	return func(plain string) (string, error) {
		b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

type AuthService struct {
	store   repository.Store
	hash    repository.PasswordHasher
	metrics Metrics
	logger  *zap.Logger
}

func NewAuthService(store repository.Store, bcryptCost int, metrics Metrics, logger *zap.Logger) *AuthService {
	return &AuthService{
		store:   store,
		hash:    HashPassword(bcryptCost),
		metrics: metricsOrNop(metrics),
		logger:  logger,
	}
}

// Register creates a user after checking that the email and then the
// username are free. Both checks and the insert share one transaction.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	hashed, err := s.hash(req.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	var created *models.User
	err = s.store.RunInTx(ctx, func(tx repository.Store) error {
		if err := ensureFree(ctx, tx, 0, &req.Email, &req.Username); err != nil {
			return err
		}
		var err error
		created, err = tx.CreateUser(ctx, &models.User{
			Username:  req.Username,
			Password:  hashed,
			Email:     req.Email,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Address:   req.Address,
			City:      req.City,
			State:     req.State,
			ZipCode:   req.ZipCode,
			Country:   req.Country,
			Phone:     req.Phone,
		})
		if err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.Uint("user_id", created.ID))
	emit(s.logger, func(ctx context.Context) error {
		return s.metrics.RecordCount(ctx, awspkg.MetricUserRegistrations, nil)
	})
	return created, nil
}

// Login verifies an email and password pair.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperrors.BadRequest("Email and password are required")
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		s.logger.Info("login rejected", zap.Uint("user_id", user.ID))
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// ensureFree reports a conflict when email or username belongs to a user
// other than self. Nil pointers are not checked.
func ensureFree(ctx context.Context, store repository.Store, self uint, email, username *string) error {
	if email != nil {
		taken, err := takenBy(store.GetUserByEmail(ctx, *email))
		if err != nil {
			return err
		}
		if taken != 0 && taken != self {
			return errEmailTaken
		}
	}
	if username != nil {
		taken, err := takenBy(store.GetUserByUsername(ctx, *username))
		if err != nil {
			return err
		}
		if taken != 0 && taken != self {
			return errUsernameTaken
		}
	}
	return nil
}

// takenBy returns the id of the user found by a lookup, or zero when there
// is none.
func takenBy(user *models.User, err error) (uint, error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return 0, nil
	case err != nil:
		return 0, apperrors.Internal(err)
	}
	return user.ID, nil
}
