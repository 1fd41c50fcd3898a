package services

import (
	"context"
	"errors"

	apperrors "storefront/common/errors"
	"storefront/models"
	"storefront/repository"

	"go.uber.org/zap"
)

type ReviewService struct {
	store  repository.Store
	logger *zap.Logger
}

func NewReviewService(store repository.Store, logger *zap.Logger) *ReviewService {
	return &ReviewService{store: store, logger: logger}
}

func (s *ReviewService) ListForProduct(ctx context.Context, productID uint) ([]models.Review, error) {
	reviews, err := s.store.ListReviewsByProduct(ctx, productID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return reviews, nil
}

func (s *ReviewService) Create(ctx context.Context, userID, productID uint, req models.CreateReviewRequest) (*models.Review, error) {
	if _, err := s.store.GetProduct(ctx, productID); err != nil {
		return nil, notFoundAs(err, "Product not found")
	}

	review, err := s.store.CreateReview(ctx, &models.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return review, nil
}

// Delete removes a review written by userID. Admins may remove any review.
func (s *ReviewService) Delete(ctx context.Context, userID, reviewID uint) error {
	review, err := s.store.GetReview(ctx, reviewID)
	if err != nil {
		return notFoundAs(err, "Review not found")
	}

	if review.UserID != userID {
		caller, err := s.store.GetUser(ctx, userID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return apperrors.Internal(err)
		}
		if caller == nil || !caller.IsAdmin {
			return apperrors.ErrForbidden
		}
	}

	if _, err := s.store.DeleteReview(ctx, reviewID); err != nil {
		return apperrors.Internal(err)
	}
	s.logger.Info("review deleted", zap.Uint("review_id", reviewID), zap.Uint("by_user_id", userID))
	return nil
}
