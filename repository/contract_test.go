package repository_test

import (
	"context"
	"errors"
	"testing"

	"storefront/models"
	"storefront/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

// runStoreContract exercises the behaviour every Store implementation must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) repository.Store) {
	ctx := context.Background()

	t.Run("create assigns increasing ids and timestamps", func(t *testing.T) {
		s := newStore(t)
		a, err := s.CreateProduct(ctx, &models.Product{Name: "A", Description: "a", Price: models.Price("1"), Category: "c"})
		require.NoError(t, err)
		b, err := s.CreateProduct(ctx, &models.Product{Name: "B", Description: "b", Price: models.Price("2"), Category: "c"})
		require.NoError(t, err)

		assert.NotZero(t, a.ID)
		assert.Greater(t, b.ID, a.ID)
		assert.False(t, a.CreatedAt.IsZero())
	})

	t.Run("lookup of a missing entity reports not found", func(t *testing.T) {
		s := newStore(t)
		_, err := s.GetProduct(ctx, 999)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		_, err = s.GetUserByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, repository.ErrNotFound)
		_, err = s.GetOrder(ctx, 999)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("update merges fields and never creates", func(t *testing.T) {
		s := newStore(t)
		p, err := s.CreateProduct(ctx, &models.Product{Name: "Tee", Description: "d", Price: models.Price("10"), Category: "mens", InStock: true})
		require.NoError(t, err)

		price := models.Price("12.5")
		updated, err := s.UpdateProduct(ctx, p.ID, models.ProductPatch{Price: &price})
		require.NoError(t, err)
		assert.Equal(t, "Tee", updated.Name)
		assert.Equal(t, "12.50", updated.Price.StringFixed(2))
		assert.True(t, updated.InStock)

		_, err = s.UpdateProduct(ctx, p.ID+100, models.ProductPatch{Price: &price})
		assert.ErrorIs(t, err, repository.ErrNotFound)
		_, err = s.GetProduct(ctx, p.ID+100)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("delete reports whether a row was removed", func(t *testing.T) {
		s := newStore(t)
		p, err := s.CreateProduct(ctx, &models.Product{Name: "Tee", Description: "d", Price: models.Price("10"), Category: "mens"})
		require.NoError(t, err)

		removed, err := s.DeleteProduct(ctx, p.ID)
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = s.DeleteProduct(ctx, p.ID)
		require.NoError(t, err)
		assert.False(t, removed)
	})

	t.Run("add to cart merges identical lines", func(t *testing.T) {
		s := newStore(t)
		u, err := s.CreateUser(ctx, &models.User{Username: "cart", Email: "cart@example.com", Password: "x"})
		require.NoError(t, err)
		p, err := s.CreateProduct(ctx, &models.Product{Name: "Tee", Description: "d", Price: models.Price("10"), Category: "mens"})
		require.NoError(t, err)

		for _, q := range []int{1, 2, 3} {
			_, err := s.AddToCart(ctx, &models.CartItem{UserID: u.ID, ProductID: p.ID, Quantity: q, Size: strPtr("M")})
			require.NoError(t, err)
		}
		_, err = s.AddToCart(ctx, &models.CartItem{UserID: u.ID, ProductID: p.ID, Quantity: 1, Size: strPtr("L")})
		require.NoError(t, err)
		_, err = s.AddToCart(ctx, &models.CartItem{UserID: u.ID, ProductID: p.ID, Quantity: 4})
		require.NoError(t, err)

		items, err := s.ListCartItems(ctx, u.ID)
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, 6, items[0].Quantity)
		assert.Equal(t, "M", *items[0].Size)
		assert.Equal(t, 1, items[1].Quantity)
		assert.Equal(t, 4, items[2].Quantity)
		assert.Nil(t, items[2].Size)
	})

	t.Run("clear cart only touches the given user", func(t *testing.T) {
		s := newStore(t)
		a, err := s.CreateUser(ctx, &models.User{Username: "a", Email: "a@example.com", Password: "x"})
		require.NoError(t, err)
		b, err := s.CreateUser(ctx, &models.User{Username: "b", Email: "b@example.com", Password: "x"})
		require.NoError(t, err)
		p, err := s.CreateProduct(ctx, &models.Product{Name: "Tee", Description: "d", Price: models.Price("10"), Category: "mens"})
		require.NoError(t, err)

		_, err = s.AddToCart(ctx, &models.CartItem{UserID: a.ID, ProductID: p.ID, Quantity: 1})
		require.NoError(t, err)
		_, err = s.AddToCart(ctx, &models.CartItem{UserID: b.ID, ProductID: p.ID, Quantity: 1})
		require.NoError(t, err)

		require.NoError(t, s.ClearCart(ctx, a.ID))

		left, err := s.ListCartItems(ctx, a.ID)
		require.NoError(t, err)
		assert.Empty(t, left)
		other, err := s.ListCartItems(ctx, b.ID)
		require.NoError(t, err)
		assert.Len(t, other, 1)
	})

	t.Run("search is a case-insensitive substring match", func(t *testing.T) {
		s := newStore(t)
		_, err := s.CreateProduct(ctx, &models.Product{Name: "Classic Denim Jacket", Description: "A timeless jacket", Price: models.Price("89.99"), Category: "mens", SubCategory: "shirts"})
		require.NoError(t, err)
		_, err = s.CreateProduct(ctx, &models.Product{Name: "Cashmere Scarf", Description: "Warm", Price: models.Price("39.99"), Category: "accessories", SubCategory: "scarves"})
		require.NoError(t, err)

		found, err := s.ListProducts(ctx, models.ProductFilter{Search: "DeNiM"})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Classic Denim Jacket", found[0].Name)

		bySub, err := s.ListProducts(ctx, models.ProductFilter{Search: "scarv"})
		require.NoError(t, err)
		require.Len(t, bySub, 1)

		none, err := s.ListProducts(ctx, models.ProductFilter{Search: "sandals"})
		require.NoError(t, err)
		assert.Empty(t, none)

		byCategory, err := s.ListProducts(ctx, models.ProductFilter{Category: "accessories"})
		require.NoError(t, err)
		require.Len(t, byCategory, 1)
		assert.Equal(t, "Cashmere Scarf", byCategory[0].Name)
	})

	t.Run("transaction is all or nothing", func(t *testing.T) {
		s := newStore(t)
		u, err := s.CreateUser(ctx, &models.User{Username: "tx", Email: "tx@example.com", Password: "x"})
		require.NoError(t, err)

		boom := errors.New("boom")
		err = s.RunInTx(ctx, func(tx repository.Store) error {
			if _, err := tx.CreateOrder(ctx, &models.Order{UserID: u.ID, Status: models.OrderStatusPending, Total: models.Price("1")}); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)
		orders, err := s.ListOrdersByUser(ctx, u.ID)
		require.NoError(t, err)
		assert.Empty(t, orders)

		err = s.RunInTx(ctx, func(tx repository.Store) error {
			_, err := tx.CreateOrder(ctx, &models.Order{UserID: u.ID, Status: models.OrderStatusPending, Total: models.Price("1")})
			return err
		})
		require.NoError(t, err)
		orders, err = s.ListOrdersByUser(ctx, u.ID)
		require.NoError(t, err)
		assert.Len(t, orders, 1)
	})

	t.Run("order status is the only mutable order field", func(t *testing.T) {
		s := newStore(t)
		o, err := s.CreateOrder(ctx, &models.Order{UserID: 1, Status: models.OrderStatusPending, Total: models.Price("20"), PaymentMethod: "card"})
		require.NoError(t, err)

		updated, err := s.UpdateOrderStatus(ctx, o.ID, models.OrderStatusCancelled)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusCancelled, updated.Status)
		assert.Equal(t, "20.00", updated.Total.StringFixed(2))

		_, err = s.UpdateOrderStatus(ctx, o.ID+100, models.OrderStatusShipped)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
