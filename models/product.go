package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint                `gorm:"primaryKey" json:"id"`
	Name        string              `gorm:"not null" json:"name"`
	Description string              `gorm:"type:text;not null" json:"description"`
	Price       decimal.Decimal     `gorm:"type:numeric(10,2);not null" json:"price"`
	SalePrice   decimal.NullDecimal `gorm:"type:numeric(10,2)" json:"salePrice"`
	Category    string              `gorm:"type:varchar(100);index;not null" json:"category"`
	SubCategory string              `gorm:"type:varchar(100);index" json:"subCategory"`
	ImageURLs   []string            `gorm:"serializer:json" json:"imageUrls"`
	Sizes       []string            `gorm:"serializer:json" json:"sizes"`
	Colors      []string            `gorm:"serializer:json" json:"colors"`
	Material    *string             `json:"material"`
	InStock     bool                `gorm:"not null" json:"inStock"`
	IsNew       bool                `gorm:"not null" json:"isNew"`
	IsFeatured  bool                `gorm:"not null" json:"isFeatured"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// EffectivePrice is the sale price when one is set, otherwise the regular price.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.SalePrice.Valid {
		return p.SalePrice.Decimal
	}
	return p.Price
}

// ProductPatch is a partial product update; nil fields are left alone.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	SalePrice   *decimal.NullDecimal
	Category    *string
	SubCategory *string
	ImageURLs   *[]string
	Sizes       *[]string
	Colors      *[]string
	Material    *string
	InStock     *bool
	IsNew       *bool
	IsFeatured  *bool
}

func (p ProductPatch) Apply(dst *Product) {
	setString(&dst.Name, p.Name)
	setString(&dst.Description, p.Description)
	setString(&dst.Category, p.Category)
	setString(&dst.SubCategory, p.SubCategory)
	if p.Price != nil {
		dst.Price = *p.Price
	}
	if p.SalePrice != nil {
		dst.SalePrice = *p.SalePrice
	}
	if p.ImageURLs != nil {
		dst.ImageURLs = append([]string(nil), (*p.ImageURLs)...)
	}
	if p.Sizes != nil {
		dst.Sizes = append([]string(nil), (*p.Sizes)...)
	}
	if p.Colors != nil {
		dst.Colors = append([]string(nil), (*p.Colors)...)
	}
	if p.Material != nil {
		dst.Material = materialValue(*p.Material)
	}
	setBool(&dst.InStock, p.InStock)
	setBool(&dst.IsNew, p.IsNew)
	setBool(&dst.IsFeatured, p.IsFeatured)
}

// Empty reports whether p changes nothing.
func (p ProductPatch) Empty() bool {
	return p == ProductPatch{}
}

// ProductFilter selects products. Every non-empty criterion must match.
type ProductFilter struct {
	Category    string
	SubCategory string
	Featured    bool
	NewItems    bool
	Search      string
}

// ProductQuery is the query string accepted by GET /api/products.
type ProductQuery struct {
	Category    string `form:"category"`
	SubCategory string `form:"subCategory"`
	Featured    string `form:"featured"`
	NewItems    string `form:"newItems"`
	Search      string `form:"search"`
}

type CreateProductRequest struct {
	Name        string              `json:"name" binding:"required,max=200"`
	Description string              `json:"description" binding:"required"`
	Price       decimal.Decimal     `json:"price" binding:"gt=0"`
	SalePrice   decimal.NullDecimal `json:"salePrice" binding:"omitempty,gt=0"`
	Category    string              `json:"category" binding:"required,max=100"`
	SubCategory string              `json:"subCategory" binding:"max=100"`
	ImageURLs   []string            `json:"imageUrls" binding:"required,min=1,dive,required"`
	Sizes       []string            `json:"sizes"`
	Colors      []string            `json:"colors"`
	Material    *string             `json:"material"`
	InStock     *bool               `json:"inStock"`
	IsNew       bool                `json:"isNew"`
	IsFeatured  bool                `json:"isFeatured"`
}

// Product builds the entity; inStock defaults to true.
func (r CreateProductRequest) Product() *Product {
	inStock := true
	if r.InStock != nil {
		inStock = *r.InStock
	}
	var material *string
	if r.Material != nil {
		material = materialValue(*r.Material)
	}
	return &Product{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		SalePrice:   r.SalePrice,
		Category:    r.Category,
		SubCategory: r.SubCategory,
		ImageURLs:   r.ImageURLs,
		Sizes:       r.Sizes,
		Colors:      r.Colors,
		Material:    material,
		InStock:     inStock,
		IsNew:       r.IsNew,
		IsFeatured:  r.IsFeatured,
	}
}

type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description" binding:"omitempty,min=1"`
	Price       *decimal.Decimal `json:"price" binding:"omitempty,gt=0"`
	SalePrice   PriceUpdate      `json:"salePrice" binding:"omitempty,gt=0"`
	Category    *string          `json:"category" binding:"omitempty,min=1,max=100"`
	SubCategory *string          `json:"subCategory" binding:"omitempty,max=100"`
	ImageURLs   *[]string        `json:"imageUrls" binding:"omitempty,min=1,dive,required"`
	Sizes       *[]string        `json:"sizes"`
	Colors      *[]string        `json:"colors"`
	Material    *string          `json:"material"`
	InStock     *bool            `json:"inStock"`
	IsNew       *bool            `json:"isNew"`
	IsFeatured  *bool            `json:"isFeatured"`
}

func (r UpdateProductRequest) Patch() ProductPatch {
	p := ProductPatch{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		SubCategory: r.SubCategory,
		ImageURLs:   r.ImageURLs,
		Sizes:       r.Sizes,
		Colors:      r.Colors,
		Material:    r.Material,
		InStock:     r.InStock,
		IsNew:       r.IsNew,
		IsFeatured:  r.IsFeatured,
	}
	if r.SalePrice.Set {
		sale := r.SalePrice.Value
		p.SalePrice = &sale
	}
	return p
}

type UploadRequest struct {
	FileName    string `json:"fileName" binding:"required,max=200"`
	ContentType string `json:"contentType" binding:"required,oneof=image/jpeg image/png image/webp image/gif"`
}

func materialValue(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
