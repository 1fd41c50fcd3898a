package repository

import (
	"context"

	"storefront/models"
)

func (s *MemoryStore) GetOrder(_ context.Context, id uint) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.data.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &o, nil
}

func (s *MemoryStore) ListOrders(_ context.Context) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedByID(s.data.orders, nil), nil
}

func (s *MemoryStore) ListOrdersByUser(_ context.Context, userID uint) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sortedByID(s.data.orders, func(o *models.Order) bool {
		return o.UserID == userID
	}), nil
}

func (s *MemoryStore) CreateOrder(_ context.Context, order *models.Order) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.next.order++
	o := *order
	o.ID = s.data.next.order
	o.CreatedAt = s.stamp()
	s.data.orders[o.ID] = o
	return &o, nil
}

func (s *MemoryStore) UpdateOrderStatus(_ context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.data.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	o.Status = status
	s.data.orders[id] = o
	return &o, nil
}

func (s *MemoryStore) ListOrderItems(_ context.Context, orderID uint) ([]models.OrderItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sortedByID(s.data.orderItems, func(i *models.OrderItem) bool {
		return i.OrderID == orderID
	}), nil
}

func (s *MemoryStore) CreateOrderItem(_ context.Context, item *models.OrderItem) (*models.OrderItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.next.orderItem++
	i := detach(*item)
	i.ID = s.data.next.orderItem
	s.data.orderItems[i.ID] = i
	return detached(i), nil
}
