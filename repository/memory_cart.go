package repository

import (
	"context"

	"storefront/models"
)

func (s *MemoryStore) GetCartItem(_ context.Context, id uint) (*models.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.data.cartItems[id]
	if !ok {
		return nil, ErrNotFound
	}
	return detached(c), nil
}

func (s *MemoryStore) ListCartItems(_ context.Context, userID uint) ([]models.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sortedByID(s.data.cartItems, func(c *models.CartItem) bool {
		return c.UserID == userID
	}), nil
}

func (s *MemoryStore) AddToCart(_ context.Context, item *models.CartItem) (*models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := sortedByID(s.data.cartItems, item.SameLine)
	if len(existing) > 0 {
		line := existing[0]
		line.Quantity += item.Quantity
		s.data.cartItems[line.ID] = line
		return detached(line), nil
	}

	s.data.next.cartItem++
	c := detach(*item)
	c.ID = s.data.next.cartItem
	s.data.cartItems[c.ID] = c
	return detached(c), nil
}

func (s *MemoryStore) UpdateCartItemQuantity(_ context.Context, id uint, quantity int) (*models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.data.cartItems[id]
	if !ok {
		return nil, ErrNotFound
	}
	c.Quantity = quantity
	s.data.cartItems[id] = c
	return detached(c), nil
}

func (s *MemoryStore) DeleteCartItem(_ context.Context, id uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data.cartItems[id]; !ok {
		return false, nil
	}
	delete(s.data.cartItems, id)
	return true, nil
}

func (s *MemoryStore) ClearCart(_ context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, c := range s.data.cartItems {
		if c.UserID == userID {
			delete(s.data.cartItems, id)
		}
	}
	return nil
}
