package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var orderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	for _, known := range orderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Order is immutable once placed except for Status.
type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          uint            `gorm:"index;not null" json:"userId"`
	Status          OrderStatus     `gorm:"type:varchar(20);not null" json:"status"`
	Total           decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total"`
	ShippingAddress string          `gorm:"not null" json:"shippingAddress"`
	ShippingCity    string          `gorm:"not null" json:"shippingCity"`
	ShippingState   string          `gorm:"not null" json:"shippingState"`
	ShippingZipCode string          `gorm:"not null" json:"shippingZipCode"`
	ShippingCountry string          `gorm:"not null" json:"shippingCountry"`
	PaymentMethod   string          `gorm:"not null" json:"paymentMethod"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// OrderItem snapshots what was bought and at which unit price.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"index;not null" json:"orderId"`
	ProductID uint            `gorm:"not null" json:"productId"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Size      *string         `gorm:"type:varchar(50)" json:"size"`
	Color     *string         `gorm:"type:varchar(50)" json:"color"`
}

// OrderItemLine is an order item with the current product for display.
// The product may be nil if it was deleted after the order was placed.
type OrderItemLine struct {
	OrderItem
	Product *Product `json:"product"`
}

// OrderDetail is an order with its items and, for admin listings, its owner.
type OrderDetail struct {
	Order
	Items []OrderItemLine `json:"items"`
	User  *User           `json:"user,omitempty"`
}

// PlaceOrderRequest is validated inside the placement workflow, after the
// cart has been checked.
type PlaceOrderRequest struct {
	ShippingAddress string `json:"shippingAddress" validate:"required,notblank,max=255"`
	ShippingCity    string `json:"shippingCity" validate:"required,notblank,max=100"`
	ShippingState   string `json:"shippingState" validate:"required,notblank,max=100"`
	ShippingZipCode string `json:"shippingZipCode" validate:"required,notblank,max=20"`
	ShippingCountry string `json:"shippingCountry" validate:"required,notblank,max=100"`
	PaymentMethod   string `json:"paymentMethod" validate:"required,notblank,max=50"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}
