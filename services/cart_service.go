package services

import (
	"context"

	apperrors "storefront/common/errors"
	awspkg "storefront/pkg/aws"
	"storefront/models"
	"storefront/repository"

	"go.uber.org/zap"
)

var (
	errInvalidQuantity  = apperrors.BadRequest("Invalid quantity")
	errCartItemNotFound = apperrors.NotFound("Cart item not found")
)

type CartService struct {
	store   repository.Store
	metrics Metrics
	logger  *zap.Logger
}

func NewCartService(store repository.Store, metrics Metrics, logger *zap.Logger) *CartService {
	return &CartService{store: store, metrics: metricsOrNop(metrics), logger: logger}
}

// List returns the user's cart with product details attached.
func (s *CartService) List(ctx context.Context, userID uint) ([]models.CartLine, error) {
	items, err := s.store.ListCartItems(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return enrichCart(ctx, s.store, items)
}

// Add puts a product in the cart. A line with the same product, size and
// color absorbs the quantity instead of a new line being created.
func (s *CartService) Add(ctx context.Context, userID uint, req models.AddToCartRequest) (*models.CartLine, error) {
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return nil, errInvalidQuantity
	}

	product, err := s.store.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, notFoundAs(err, "Product not found")
	}

	item, err := s.store.AddToCart(ctx, &models.CartItem{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  quantity,
		Size:      req.Size,
		Color:     req.Color,
	})
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	emit(s.logger, func(ctx context.Context) error {
		return s.metrics.RecordValue(ctx, awspkg.MetricCartItemsAdded, float64(quantity), nil)
	})
	return &models.CartLine{CartItem: *item, Product: product}, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID uint, quantity *int) (*models.CartLine, error) {
	if quantity == nil || *quantity < 1 {
		return nil, errInvalidQuantity
	}
	if err := s.owned(ctx, userID, itemID); err != nil {
		return nil, err
	}

	item, err := s.store.UpdateCartItemQuantity(ctx, itemID, *quantity)
	if err != nil {
		return nil, notFoundAs(err, "Cart item not found")
	}
	product, err := lookupProduct(ctx, s.store, item.ProductID)
	if err != nil {
		return nil, err
	}
	return &models.CartLine{CartItem: *item, Product: product}, nil
}

func (s *CartService) Remove(ctx context.Context, userID, itemID uint) error {
	if err := s.owned(ctx, userID, itemID); err != nil {
		return err
	}
	removed, err := s.store.DeleteCartItem(ctx, itemID)
	if err != nil {
		return apperrors.Internal(err)
	}
	if !removed {
		return errCartItemNotFound
	}
	return nil
}

func (s *CartService) Clear(ctx context.Context, userID uint) error {
	if err := s.store.ClearCart(ctx, userID); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// owned hides other users' cart items behind a 404.
func (s *CartService) owned(ctx context.Context, userID, itemID uint) error {
	item, err := s.store.GetCartItem(ctx, itemID)
	if err != nil {
		return notFoundAs(err, "Cart item not found")
	}
	if item.UserID != userID {
		return errCartItemNotFound
	}
	return nil
}
