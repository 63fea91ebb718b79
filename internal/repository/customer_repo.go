package repository

import (
	"go-pos-backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerFilter struct {
	Search string // matches name, email, or phone
	Status string
	Limit  int
	Offset int
}

type CustomerRepository interface {
	Create(customer *model.Customer) error
	CreateTx(tx *gorm.DB, customer *model.Customer) error
	FindAll(filter CustomerFilter) ([]model.Customer, int64, error)
	FindByID(id uuid.UUID) (*model.Customer, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Customer, error)
	FindByEmail(email string) (*model.Customer, error)
	FindRecent(limit int) ([]model.Customer, error)
	Update(customer *model.Customer) error
	Delete(id uuid.UUID) error
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepository {
	return &customerRepo{db}
}

func (r *customerRepo) Create(customer *model.Customer) error {
	return r.db.Create(customer).Error
}

// CreateTx joins an outer transaction so walk-in customers created
// during checkout roll back with the checkout itself.
func (r *customerRepo) CreateTx(tx *gorm.DB, customer *model.Customer) error {
	return tx.Create(customer).Error
}

func (r *customerRepo) FindAll(filter CustomerFilter) ([]model.Customer, int64, error) {
	query := r.db.Model(&model.Customer{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR email LIKE ? OR phone LIKE ?", like, like, like)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var customers []model.Customer
	err := query.Order("name ASC").Find(&customers).Error
	return customers, total, err
}

func (r *customerRepo) FindByID(id uuid.UUID) (*model.Customer, error) {
	return r.FindByIDTx(r.db, id)
}

func (r *customerRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	if err := tx.First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepo) FindByEmail(email string) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.First(&customer, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindRecent backs the POS quick-selection list.
func (r *customerRepo) FindRecent(limit int) ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.Where("status = ?", model.CustomerActive).
		Order("created_at DESC").
		Limit(limit).
		Find(&customers).Error
	return customers, err
}

func (r *customerRepo) Update(customer *model.Customer) error {
	return r.db.Save(customer).Error
}

func (r *customerRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Customer{}, "id = ?", id).Error
}
