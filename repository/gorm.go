package repository

import (
	"context"
	"errors"
	"strings"

	"storefront/models"

	"gorm.io/gorm"
)

// GormStore persists the storefront in a SQL database through gorm. Ids and
// creation timestamps are assigned by the database.
type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Models lists every table the store owns, in dependency order.
func Models() []any {
	return []any{
		&models.User{},
		&models.Product{},
		&models.Review{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	}
}

// AutoMigrate creates or updates the schema.
func (s *GormStore) AutoMigrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(Models()...)
}

func (s *GormStore) RunInTx(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func first[T any](ctx context.Context, db *gorm.DB, query string, args ...any) (*T, error) {
	var out T
	if err := db.WithContext(ctx).Where(query, args...).First(&out).Error; err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

func (s *GormStore) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return first[models.User](ctx, s.db, "id = ?", id)
}

func (s *GormStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return first[models.User](ctx, s.db, "username = ?", username)
}

func (s *GormStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return first[models.User](ctx, s.db, "email = ?", email)
}

func (s *GormStore) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Order("id").Find(&users).Error
	return users, err
}

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	u := *user
	u.ID = 0
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *GormStore) UpdateUser(ctx context.Context, id uint, patch models.UserPatch) (*models.User, error) {
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(u)
	if err := s.db.WithContext(ctx).Save(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

func (s *GormStore) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	return first[models.Product](ctx, s.db, "id = ?", id)
}

func (s *GormStore) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	q := s.db.WithContext(ctx).Model(&models.Product{})
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.SubCategory != "" {
		q = q.Where("sub_category = ?", filter.SubCategory)
	}
	if filter.Featured {
		q = q.Where("is_featured = ?", true)
	}
	if filter.NewItems {
		q = q.Where("is_new = ?", true)
	}
	if filter.Search != "" {
		like := "%" + escapeLike(strings.ToLower(filter.Search)) + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(category) LIKE ? OR LOWER(sub_category) LIKE ?",
			like, like, like, like,
		)
	}

	var products []models.Product
	err := q.Order("id").Find(&products).Error
	return products, err
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (s *GormStore) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	p := *product
	p.ID = 0
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *GormStore) UpdateProduct(ctx context.Context, id uint, patch models.ProductPatch) (*models.Product, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(p)
	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (s *GormStore) DeleteProduct(ctx context.Context, id uint) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&models.Product{}, id)
	return res.RowsAffected > 0, res.Error
}

func (s *GormStore) GetReview(ctx context.Context, id uint) (*models.Review, error) {
	return first[models.Review](ctx, s.db, "id = ?", id)
}

func (s *GormStore) ListReviewsByProduct(ctx context.Context, productID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.WithContext(ctx).Where("product_id = ?", productID).Order("id").Find(&reviews).Error
	return reviews, err
}

func (s *GormStore) CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	r := *review
	r.ID = 0
	if err := s.db.WithContext(ctx).Create(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *GormStore) DeleteReview(ctx context.Context, id uint) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&models.Review{}, id)
	return res.RowsAffected > 0, res.Error
}

func (s *GormStore) GetCartItem(ctx context.Context, id uint) (*models.CartItem, error) {
	return first[models.CartItem](ctx, s.db, "id = ?", id)
}

func (s *GormStore) ListCartItems(ctx context.Context, userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&items).Error
	return items, err
}

// whereVariant matches a nullable size/color column; nil only matches NULL.
func whereVariant(q *gorm.DB, column string, v *string) *gorm.DB {
	if v == nil {
		return q.Where(column + " IS NULL")
	}
	return q.Where(column+" = ?", *v)
}

func (s *GormStore) AddToCart(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	var line models.CartItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID)
		q = whereVariant(q, "size", item.Size)
		q = whereVariant(q, "color", item.Color)

		err := q.Order("id").First(&line).Error
		switch {
		case err == nil:
			line.Quantity += item.Quantity
			return tx.Model(&line).Update("quantity", line.Quantity).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			line = *item
			line.ID = 0
			return tx.Create(&line).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (s *GormStore) UpdateCartItemQuantity(ctx context.Context, id uint, quantity int) (*models.CartItem, error) {
	item, err := s.GetCartItem(ctx, id)
	if err != nil {
		return nil, err
	}
	item.Quantity = quantity
	if err := s.db.WithContext(ctx).Model(item).Update("quantity", quantity).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (s *GormStore) DeleteCartItem(ctx context.Context, id uint) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&models.CartItem{}, id)
	return res.RowsAffected > 0, res.Error
}

func (s *GormStore) ClearCart(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

func (s *GormStore) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	return first[models.Order](ctx, s.db, "id = ?", id)
}

func (s *GormStore) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).Order("id").Find(&orders).Error
	return orders, err
}

func (s *GormStore) ListOrdersByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&orders).Error
	return orders, err
}

func (s *GormStore) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	o := *order
	o.ID = 0
	if err := s.db.WithContext(ctx).Create(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *GormStore) UpdateOrderStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	o, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Status = status
	if err := s.db.WithContext(ctx).Model(o).Update("status", status).Error; err != nil {
		return nil, err
	}
	return o, nil
}

func (s *GormStore) ListOrderItems(ctx context.Context, orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := s.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id").Find(&items).Error
	return items, err
}

func (s *GormStore) CreateOrderItem(ctx context.Context, item *models.OrderItem) (*models.OrderItem, error) {
	i := *item
	i.ID = 0
	if err := s.db.WithContext(ctx).Create(&i).Error; err != nil {
		return nil, err
	}
	return &i, nil
}
