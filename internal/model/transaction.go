package model

import "github.com/google/uuid"

type TransactionStatus string

const (
	TxDraft     TransactionStatus = "draft"
	TxCompleted TransactionStatus = "completed"
	TxCanceled  TransactionStatus = "canceled"
)

// Payment methods accepted at the register
const (
	PayCash     = "cash"
	PayCard     = "card"
	PayTransfer = "transfer"
	PayEWallet  = "e-wallet"
)

// Transaction is one sale (or a saved draft of one). Monetary fields
// are int64 rupiah. Items carry denormalized product snapshots so a
// receipt stays accurate after the product is edited or deleted.
type Transaction struct {
	BaseModel
	TransactionNumber string     `gorm:"type:varchar(30);uniqueIndex;not null" json:"transaction_number"`
	CustomerID        *uuid.UUID `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Customer          *Customer  `json:"customer,omitempty" validate:"-"`
	CashierID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"cashier_id" validate:"uuid_required"`
	Cashier           *User      `gorm:"foreignKey:CashierID" json:"cashier,omitempty" validate:"-"`

	Subtotal      int64  `gorm:"not null" json:"subtotal"`
	Tax           int64  `gorm:"default:0" json:"tax"`
	Discount      int64  `gorm:"default:0" json:"discount"`
	Total         int64  `gorm:"not null" json:"total"`
	PaymentMethod string `gorm:"type:varchar(20);default:'cash'" json:"payment_method"`
	PaymentAmount int64  `gorm:"default:0" json:"payment_amount"`
	ChangeAmount  int64  `gorm:"default:0" json:"change_amount"` // payment_amount - total, may be negative

	Status    TransactionStatus `gorm:"type:varchar(10);not null;index" json:"status"`
	Notes     string            `gorm:"type:text" json:"notes,omitempty"`
	DraftData string            `gorm:"type:text" json:"draft_data,omitempty"` // serialized cart, only for drafts

	Items []TransactionItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// TransactionItem is one line of a sale. ProductName/SKU/Price are a
// point-in-time snapshot, intentionally decoupled from the Product row.
type TransactionItem struct {
	BaseModel
	TransactionID uuid.UUID `gorm:"type:uuid;not null;index" json:"transaction_id"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName   string    `gorm:"type:varchar(255);not null" json:"product_name"`
	ProductSKU    string    `gorm:"type:varchar(50);not null" json:"product_sku"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	Price         int64     `gorm:"not null" json:"price"`
	Subtotal      int64     `gorm:"not null" json:"subtotal"` // price * quantity at time of sale
}

// DailySequence backs the TRX-YYYYMMDD-NNNN numbering: one counter row
// per calendar date, bumped atomically inside the checkout transaction.
type DailySequence struct {
	Date    string `gorm:"type:varchar(8);primaryKey"`
	LastSeq int    `gorm:"not null"`
}

func (DailySequence) TableName() string {
	return "daily_sequences"
}
