// Package services holds the storefront's business workflows. Each service
// talks to persistence only through repository.Store and reports failures as
// *apperrors.Error values that controllers render unchanged.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	apperrors "storefront/common/errors"
	"storefront/models"
	"storefront/repository"

	"go.uber.org/zap"
)

// ErrEmptyCart is returned when an order is placed from an empty cart.
var ErrEmptyCart = apperrors.BadRequest("Cart is empty")

// ProductNotFoundError names a cart product that no longer exists at
// placement time.
type ProductNotFoundError struct {
	ProductID uint
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("Product with ID %d not found", e.ProductID)
}

func productNotFound(id uint) *apperrors.Error {
	cause := &ProductNotFoundError{ProductID: id}
	return apperrors.New(http.StatusNotFound, cause.Error(), cause)
}

// Metrics is the slice of the CloudWatch client the services report to.
type Metrics interface {
	RecordCount(ctx context.Context, metricName string, dimensions map[string]string) error
	RecordValue(ctx context.Context, metricName string, value float64, dimensions map[string]string) error
}

type nopMetrics struct{}

func (nopMetrics) RecordCount(context.Context, string, map[string]string) error { return nil }

func (nopMetrics) RecordValue(context.Context, string, float64, map[string]string) error {
	return nil
}

func metricsOrNop(m Metrics) Metrics {
	if m == nil {
		return nopMetrics{}
	}
	return m
}

const metricsTimeout = 5 * time.Second

// emit ships a metric without holding up the caller.
func emit(logger *zap.Logger, record func(ctx context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), metricsTimeout)
		defer cancel()
		if err := record(ctx); err != nil {
			logger.Debug("metric not recorded", zap.Error(err))
		}
	}()
}

// notFoundAs maps repository.ErrNotFound to a 404 with message and passes
// every other error through as a 500.
func notFoundAs(err error, message string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound(message).Wrap(err)
	}
	return apperrors.Internal(err)
}

// enrichCart attaches the referenced product to each cart item. Items whose
// product has since been deleted carry a nil product.
func enrichCart(ctx context.Context, store repository.Store, items []models.CartItem) ([]models.CartLine, error) {
	lines := make([]models.CartLine, 0, len(items))
	for _, item := range items {
		product, err := lookupProduct(ctx, store, item.ProductID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, models.CartLine{CartItem: item, Product: product})
	}
	return lines, nil
}

func enrichOrder(ctx context.Context, store repository.Store, order models.Order) (*models.OrderDetail, error) {
	items, err := store.ListOrderItems(ctx, order.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	detail := &models.OrderDetail{Order: order, Items: make([]models.OrderItemLine, 0, len(items))}
	for _, item := range items {
		product, err := lookupProduct(ctx, store, item.ProductID)
		if err != nil {
			return nil, err
		}
		detail.Items = append(detail.Items, models.OrderItemLine{OrderItem: item, Product: product})
	}
	return detail, nil
}

func lookupProduct(ctx context.Context, store repository.Store, id uint) (*models.Product, error) {
	product, err := store.GetProduct(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, nil
	case err != nil:
		return nil, apperrors.Internal(err)
	}
	return product, nil
}
