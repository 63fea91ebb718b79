package service

import (
	"errors"

	"go-pos-backoffice/internal/model"
	"go-pos-backoffice/internal/repository"
	"go-pos-backoffice/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerService interface {
	CreateCustomer(req *model.Customer, actorID string) error
	UpdateCustomer(id uuid.UUID, req *model.Customer, actorID string) (*model.Customer, error)
	DeleteCustomer(id uuid.UUID) error
	ListCustomers(filter repository.CustomerFilter) ([]model.Customer, int64, error)
	GetCustomer(id uuid.UUID) (*model.Customer, error)
	RecentCustomers(limit int) ([]model.Customer, error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerService(cRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: cRepo}
}

func (s *customerService) CreateCustomer(req *model.Customer, actorID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return firstValidationError(errs)
	}

	if req.Email != nil && *req.Email != "" {
		existing, _ := s.customerRepo.FindByEmail(*req.Email)
		if existing != nil {
			return ErrEmailExists
		}
	}

	if req.Status == "" {
		req.Status = model.CustomerActive
	}
	req.CreatedBy = actorID
	req.UpdatedBy = actorID

	return s.customerRepo.Create(req)
}

func (s *customerService) UpdateCustomer(id uuid.UUID, req *model.Customer, actorID string) (*model.Customer, error) {
	existing, err := s.customerRepo.FindByID(id)
	if err != nil {
		return nil, ErrCustomerNotFound
	}

	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, firstValidationError(errs)
	}

	if req.Email != nil && *req.Email != "" {
		if existing.Email == nil || *existing.Email != *req.Email {
			other, _ := s.customerRepo.FindByEmail(*req.Email)
			if other != nil && other.ID != existing.ID {
				return nil, ErrEmailExists
			}
		}
	}

	existing.Name = req.Name
	existing.Email = req.Email
	existing.Phone = req.Phone
	existing.Address = req.Address
	if req.Status != "" {
		existing.Status = req.Status
	}
	existing.UpdatedBy = actorID

	if err := s.customerRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *customerService) DeleteCustomer(id uuid.UUID) error {
	if _, err := s.customerRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCustomerNotFound
		}
		return err
	}
	return s.customerRepo.Delete(id)
}

func (s *customerService) ListCustomers(filter repository.CustomerFilter) ([]model.Customer, int64, error) {
	return s.customerRepo.FindAll(filter)
}

func (s *customerService) GetCustomer(id uuid.UUID) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}

func (s *customerService) RecentCustomers(limit int) ([]model.Customer, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.customerRepo.FindRecent(limit)
}
