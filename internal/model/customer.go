package model

type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "active"
	CustomerInactive CustomerStatus = "inactive"
)

// Customer is created standalone from the back office, or on the fly
// during checkout when the kasir only types a name.
type Customer struct {
	BaseModel
	Name    string         `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Email   *string        `gorm:"type:varchar(255);uniqueIndex" json:"email,omitempty" validate:"omitempty,email"`
	Phone   string         `gorm:"type:varchar(20)" json:"phone"`
	Address string         `gorm:"type:text" json:"address"`
	Status  CustomerStatus `gorm:"type:varchar(10);default:'active'" json:"status" validate:"omitempty,oneof=active inactive"`

	Transactions []Transaction   `json:"transactions,omitempty"`
	Reviews      []ProductReview `json:"reviews,omitempty"`
}
