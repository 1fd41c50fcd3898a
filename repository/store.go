package repository

import (
	"context"
	"errors"

	"storefront/models"
)

// ErrNotFound signals that the requested entity does not exist.
var ErrNotFound = errors.New("record not found")

// Store is the data access contract shared by the in-memory and SQL
// implementations. It holds no business rules beyond cart merging.
type Store interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	UpdateUser(ctx context.Context, id uint, patch models.UserPatch) (*models.User, error)

	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uint, patch models.ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uint) (bool, error)

	GetReview(ctx context.Context, id uint) (*models.Review, error)
	ListReviewsByProduct(ctx context.Context, productID uint) ([]models.Review, error)
	CreateReview(ctx context.Context, review *models.Review) (*models.Review, error)
	DeleteReview(ctx context.Context, id uint) (bool, error)

	GetCartItem(ctx context.Context, id uint) (*models.CartItem, error)
	ListCartItems(ctx context.Context, userID uint) ([]models.CartItem, error)
	// AddToCart increases the quantity of an existing line with the same
	// (user, product, size, color) instead of inserting a duplicate.
	AddToCart(ctx context.Context, item *models.CartItem) (*models.CartItem, error)
	UpdateCartItemQuantity(ctx context.Context, id uint, quantity int) (*models.CartItem, error)
	DeleteCartItem(ctx context.Context, id uint) (bool, error)
	ClearCart(ctx context.Context, userID uint) error

	GetOrder(ctx context.Context, id uint) (*models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	ListOrdersByUser(ctx context.Context, userID uint) ([]models.Order, error)
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error)
	ListOrderItems(ctx context.Context, orderID uint) ([]models.OrderItem, error)
	CreateOrderItem(ctx context.Context, item *models.OrderItem) (*models.OrderItem, error)

	// RunInTx runs fn against a transactional view of the store. Writes made
	// through tx become visible together if fn returns nil and are discarded
	// otherwise.
	RunInTx(ctx context.Context, fn func(tx Store) error) error
}
