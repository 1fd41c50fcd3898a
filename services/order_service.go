package services

import (
	"context"
	"errors"
	"time"

	apperrors "storefront/common/errors"
	"storefront/events"
	awspkg "storefront/pkg/aws"
	"storefront/models"
	"storefront/repository"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

var (
	errOrderNotFound  = apperrors.NotFound("Order not found")
	errStatusRequired = apperrors.BadRequest("Status is required")
	errInvalidStatus  = apperrors.BadRequest("Invalid status")
)

type OrderService struct {
	store     repository.Store
	publisher events.Publisher
	metrics   Metrics
	validate  *validator.Validate
	placing   *keyedMutex
	logger    *zap.Logger
	now       func() time.Time
}

// NewOrderService wires order placement. publisher and metrics may be nil.
func NewOrderService(store repository.Store, publisher events.Publisher, metrics Metrics, logger *zap.Logger) *OrderService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &OrderService{
		store:     store,
		publisher: publisher,
		metrics:   metricsOrNop(metrics),
		validate:  models.NewValidator(),
		placing:   newKeyedMutex(),
		logger:    logger,
		now:       time.Now,
	}
}

// Place turns the user's cart into an order. Pricing, the order, its items
// and the cart clear commit together; on any failure the cart is untouched.
// Placements by the same user run one at a time so a cart is consumed once.
func (s *OrderService) Place(ctx context.Context, userID uint, req models.PlaceOrderRequest) (*models.OrderDetail, error) {
	unlock := s.placing.Lock(userID)
	defer unlock()

	var (
		order *models.Order
		count int
	)
	err := s.store.RunInTx(ctx, func(tx repository.Store) error {
		cart, err := tx.ListCartItems(ctx, userID)
		if err != nil {
			return apperrors.Internal(err)
		}
		if len(cart) == 0 {
			return ErrEmptyCart
		}

		prices := make([]decimal.Decimal, len(cart))
		total := decimal.Zero
		for i, item := range cart {
			product, err := tx.GetProduct(ctx, item.ProductID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return productNotFound(item.ProductID)
				}
				return apperrors.Internal(err)
			}
			prices[i] = product.EffectivePrice()
			total = total.Add(prices[i].Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		if err := s.validate.Struct(req); err != nil {
			return apperrors.FromBinding(err)
		}

		order, err = tx.CreateOrder(ctx, &models.Order{
			UserID:          userID,
			Status:          models.OrderStatusPending,
			Total:           total,
			ShippingAddress: req.ShippingAddress,
			ShippingCity:    req.ShippingCity,
			ShippingState:   req.ShippingState,
			ShippingZipCode: req.ShippingZipCode,
			ShippingCountry: req.ShippingCountry,
			PaymentMethod:   req.PaymentMethod,
		})
		if err != nil {
			return apperrors.Internal(err)
		}

		for i, item := range cart {
			_, err := tx.CreateOrderItem(ctx, &models.OrderItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     prices[i],
				Size:      item.Size,
				Color:     item.Color,
			})
			if err != nil {
				return apperrors.Internal(err)
			}
		}
		count = len(cart)

		if err := tx.ClearCart(ctx, userID); err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		emit(s.logger, func(ctx context.Context) error {
			return s.metrics.RecordCount(ctx, awspkg.MetricOrdersFailed, nil)
		})
		return nil, err
	}

	s.logger.Info("order placed",
		zap.Uint("order_id", order.ID),
		zap.Uint("user_id", userID),
		zap.String("total", order.Total.StringFixed(2)),
		zap.Int("items", count),
	)
	emit(s.logger, func(ctx context.Context) error {
		if err := s.metrics.RecordCount(ctx, awspkg.MetricOrdersCreated, nil); err != nil {
			return err
		}
		return s.metrics.RecordValue(ctx, awspkg.MetricOrderValue, order.Total.InexactFloat64(), nil)
	})
	s.publish(ctx, events.TypeOrderPlaced, order, count)

	return enrichOrder(ctx, s.store, *order)
}

func (s *OrderService) ListForUser(ctx context.Context, userID uint) ([]models.OrderDetail, error) {
	orders, err := s.store.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return s.details(ctx, orders, false)
}

// Get returns an order to its owner or to an admin.
func (s *OrderService) Get(ctx context.Context, callerID, orderID uint) (*models.OrderDetail, error) {
	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errOrderNotFound
		}
		return nil, apperrors.Internal(err)
	}

	if order.UserID != callerID {
		caller, err := s.store.GetUser(ctx, callerID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Internal(err)
		}
		if caller == nil || !caller.IsAdmin {
			return nil, apperrors.ErrForbidden
		}
	}
	return enrichOrder(ctx, s.store, *order)
}

// ListAll returns every order with its items and owning user.
func (s *OrderService) ListAll(ctx context.Context) ([]models.OrderDetail, error) {
	orders, err := s.store.ListOrders(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return s.details(ctx, orders, true)
}

// UpdateStatus sets any of the known statuses; there is no transition graph.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, status string) (*models.Order, error) {
	if status == "" {
		return nil, errStatusRequired
	}
	next := models.OrderStatus(status)
	if !next.Valid() {
		return nil, errInvalidStatus
	}

	order, err := s.store.UpdateOrderStatus(ctx, orderID, next)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errOrderNotFound
		}
		return nil, apperrors.Internal(err)
	}

	s.logger.Info("order status changed", zap.Uint("order_id", order.ID), zap.String("status", status))
	emit(s.logger, func(ctx context.Context) error {
		return s.metrics.RecordCount(ctx, awspkg.MetricOrderStatusChanged, map[string]string{"Status": status})
	})
	s.publish(ctx, events.TypeOrderStatusChanged, order, 0)
	return order, nil
}

func (s *OrderService) details(ctx context.Context, orders []models.Order, withUser bool) ([]models.OrderDetail, error) {
	out := make([]models.OrderDetail, 0, len(orders))
	users := make(map[uint]*models.User)
	for _, order := range orders {
		detail, err := enrichOrder(ctx, s.store, order)
		if err != nil {
			return nil, err
		}
		if withUser {
			user, seen := users[order.UserID]
			if !seen {
				user, err = s.store.GetUser(ctx, order.UserID)
				if err != nil && !errors.Is(err, repository.ErrNotFound) {
					return nil, apperrors.Internal(err)
				}
				users[order.UserID] = user
			}
			detail.User = user
		}
		out = append(out, *detail)
	}
	return out, nil
}

// publish delivers an order event after commit. Failures are logged only.
func (s *OrderService) publish(ctx context.Context, eventType string, order *models.Order, itemCount int) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	event := events.OrderEvent{
		Type:       eventType,
		OrderID:    order.ID,
		UserID:     order.UserID,
		Status:     string(order.Status),
		Total:      order.Total,
		ItemCount:  itemCount,
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish order event",
			zap.String("event_type", eventType),
			zap.Uint("order_id", order.ID),
			zap.Error(err),
		)
	}
}
