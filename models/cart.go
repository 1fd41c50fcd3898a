package models

// CartItem is one line of a user's cart. At most one row exists per
// (user, product, size, color).
type CartItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	UserID    uint    `gorm:"index;not null" json:"userId"`
	ProductID uint    `gorm:"not null" json:"productId"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Size      *string `gorm:"type:varchar(50)" json:"size"`
	Color     *string `gorm:"type:varchar(50)" json:"color"`
}

// SameLine reports whether o targets the same (user, product, size, color).
func (c *CartItem) SameLine(o *CartItem) bool {
	return c.UserID == o.UserID &&
		c.ProductID == o.ProductID &&
		sameVariant(c.Size, o.Size) &&
		sameVariant(c.Color, o.Color)
}

func sameVariant(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// CartLine is a cart item together with the product it references.
type CartLine struct {
	CartItem
	Product *Product `json:"product"`
}

type AddToCartRequest struct {
	ProductID uint    `json:"productId" binding:"required"`
	Quantity  int     `json:"quantity" binding:"omitempty,min=1"`
	Size      *string `json:"size" binding:"omitempty,max=50"`
	Color     *string `json:"color" binding:"omitempty,max=50"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity"`
}
