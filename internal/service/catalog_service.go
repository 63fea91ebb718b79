package service

import (
	"errors"

	"go-pos-backoffice/internal/model"
	"go-pos-backoffice/internal/repository"
	"go-pos-backoffice/internal/ws"
	"go-pos-backoffice/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockAdjustment mirrors the manual stock screen: add to, subtract
// from, or set the shelf count outright.
type StockAdjustment struct {
	Type     string `json:"type" validate:"required,oneof=add subtract set"`
	Quantity int    `json:"quantity" validate:"required,gte=0"`
	Reason   string `json:"reason"`
}

type CatalogService interface {
	CreateProduct(req *model.Product, actorID string) error
	UpdateProduct(id uuid.UUID, req *model.Product, actorID string) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
	AdjustStock(id uuid.UUID, adj *StockAdjustment, actorID string) (*model.Product, error)
	ListProducts(filter repository.ProductFilter) ([]model.Product, int64, error)
	ListAvailableProducts() ([]model.Product, error)
	GetProduct(id uuid.UUID) (*model.Product, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewCatalogService(pRepo repository.ProductRepository, db *gorm.DB, hub *ws.Hub) CatalogService {
	return &catalogService{
		productRepo: pRepo,
		db:          db,
		wsHub:       hub,
	}
}

func (s *catalogService) CreateProduct(req *model.Product, actorID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return firstValidationError(errs)
	}

	existing, _ := s.productRepo.FindBySKU(req.SKU)
	if existing != nil && existing.ID != uuid.Nil {
		return ErrSKUExists
	}

	if req.Status == "" {
		req.Status = model.ProductActive
	}
	req.CreatedBy = actorID
	req.UpdatedBy = actorID

	if err := s.productRepo.Create(req); err != nil {
		return err
	}

	s.wsHub.Publish("stock_update", map[string]interface{}{
		"action": "product_created",
		"product": map[string]interface{}{
			"id":    req.ID,
			"sku":   req.SKU,
			"name":  req.Name,
			"stock": req.Stock,
			"price": req.Price,
		},
		"user_id": actorID,
	})

	return nil
}

func (s *catalogService) UpdateProduct(id uuid.UUID, req *model.Product, actorID string) (*model.Product, error) {
	var updated *model.Product

	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.productRepo.FindByIDTx(tx, id)
		if err != nil {
			return ErrProductNotFound
		}

		if req.SKU != existing.SKU {
			other, _ := s.productRepo.FindBySKU(req.SKU)
			if other != nil && other.ID != existing.ID {
				return ErrSKUExists
			}
		}

		existing.Name = req.Name
		existing.SKU = req.SKU
		existing.CategoryID = req.CategoryID
		existing.Description = req.Description
		existing.Price = req.Price
		existing.Cost = req.Cost
		existing.MinStock = req.MinStock
		if req.Status != "" {
			existing.Status = req.Status
		}
		existing.UpdatedBy = actorID

		if err := tx.Save(existing).Error; err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *catalogService) DeleteProduct(id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return s.productRepo.Delete(id)
}

// AdjustStock changes the shelf count inside a transaction block so a
// concurrent checkout can't interleave between read and write.
func (s *catalogService) AdjustStock(id uuid.UUID, adj *StockAdjustment, actorID string) (*model.Product, error) {
	if errs := validator.ValidateStruct(adj); len(errs) > 0 {
		return nil, firstValidationError(errs)
	}

	var product *model.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.productRepo.FindByIDTx(tx, id)
		if err != nil {
			return ErrProductNotFound
		}

		oldStock := existing.Stock
		newStock := oldStock
		switch adj.Type {
		case "add":
			newStock = oldStock + adj.Quantity
		case "subtract":
			if oldStock < adj.Quantity {
				return &InsufficientStockError{
					ProductName: existing.Name,
					Available:   oldStock,
					Requested:   adj.Quantity,
				}
			}
			newStock = oldStock - adj.Quantity
		case "set":
			newStock = adj.Quantity
		}

		if err := s.productRepo.SetStock(tx, existing.ID, newStock, actorID); err != nil {
			return err
		}
		existing.Stock = newStock
		product = existing

		s.wsHub.Publish("stock_update", map[string]interface{}{
			"action": "stock_adjusted",
			"product": map[string]interface{}{
				"id":        existing.ID,
				"sku":       existing.SKU,
				"name":      existing.Name,
				"old_stock": oldStock,
				"new_stock": newStock,
			},
			"reason":  adj.Reason,
			"user_id": actorID,
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (s *catalogService) ListProducts(filter repository.ProductFilter) ([]model.Product, int64, error) {
	return s.productRepo.FindAll(filter)
}

// ListAvailableProducts is what the POS screen shows: active, in stock.
func (s *catalogService) ListAvailableProducts() ([]model.Product, error) {
	return s.productRepo.FindAvailable()
}

func (s *catalogService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}
