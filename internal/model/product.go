package model

import "github.com/google/uuid"

type ProductStatus string

const (
	ProductActive   ProductStatus = "active"
	ProductInactive ProductStatus = "inactive"
	ProductDraft    ProductStatus = "draft"
)

// Stock state derived from Stock vs MinStock, never stored.
const (
	StockStateOut = "out_of_stock"
	StockStateLow = "low_stock"
	StockStateIn  = "in_stock"
)

type Product struct {
	BaseModel
	SKU         string        `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Name        string        `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	CategoryID  *uuid.UUID    `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Category    *Category     `json:"category,omitempty" validate:"-"`
	Description string        `gorm:"type:text" json:"description"`
	Price       int64         `gorm:"not null" json:"price" validate:"gte=0"`
	Cost        int64         `gorm:"default:0" json:"cost" validate:"gte=0"`
	Stock       int           `gorm:"default:0" json:"stock" validate:"gte=0"`
	MinStock    int           `gorm:"default:10" json:"min_stock" validate:"gte=0"`
	Status      ProductStatus `gorm:"type:varchar(10);default:'active'" json:"status" validate:"omitempty,oneof=active inactive draft"`

	Reviews []ProductReview `json:"reviews,omitempty"`
}

func (p *Product) IsOutOfStock() bool {
	return p.Stock <= 0
}

func (p *Product) IsLowStock() bool {
	return p.Stock > 0 && p.Stock <= p.MinStock
}

// StockState reports out_of_stock / low_stock / in_stock
func (p *Product) StockState() string {
	switch {
	case p.IsOutOfStock():
		return StockStateOut
	case p.IsLowStock():
		return StockStateLow
	default:
		return StockStateIn
	}
}
