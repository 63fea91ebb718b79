package model

import "github.com/google/uuid"

type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// ProductReview is written by a customer who bought the product; the
// transaction reference is the proof of purchase. At most one review
// per (product, customer).
type ProductReview struct {
	BaseModel
	ProductID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_review_product_customer" json:"product_id" validate:"uuid_required"`
	Product       *Product   `json:"product,omitempty" validate:"-"`
	CustomerID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_review_product_customer" json:"customer_id" validate:"uuid_required"`
	Customer      *Customer  `json:"customer,omitempty" validate:"-"`
	TransactionID *uuid.UUID `gorm:"type:uuid" json:"transaction_id,omitempty"`

	Rating  int    `gorm:"not null" json:"rating" validate:"required,min=1,max=5"`
	Title   string `gorm:"type:varchar(100);not null" json:"title" validate:"required,max=100"`
	Comment string `gorm:"type:text;not null" json:"comment" validate:"required"`

	Status          ReviewStatus `gorm:"type:varchar(10);default:'pending';index" json:"status"`
	HelpfulCount    int          `gorm:"default:0" json:"helpful_count"`
	NotHelpfulCount int          `gorm:"default:0" json:"not_helpful_count"`
}
