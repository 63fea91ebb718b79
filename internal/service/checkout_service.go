package service

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"go-pos-backoffice/internal/model"
	"go-pos-backoffice/internal/repository"
	"go-pos-backoffice/internal/ws"
	"go-pos-backoffice/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CheckoutItem is one cart line as submitted by the register.
type CheckoutItem struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
	Price     int64     `json:"price" validate:"gte=0"`
}

// CheckoutRequest is the cart: customer reference or inline name/phone,
// line items, totals as shown on the register, and payment info.
type CheckoutRequest struct {
	CustomerID    *uuid.UUID     `json:"customer_id"`
	CustomerName  string         `json:"customer_name"`
	CustomerPhone string         `json:"customer_phone"`
	Items         []CheckoutItem `json:"items" validate:"required,min=1,dive"`
	Subtotal      int64          `json:"subtotal" validate:"gte=0"`
	Tax           int64          `json:"tax" validate:"gte=0"`
	Discount      int64          `json:"discount" validate:"gte=0"`
	Total         int64          `json:"total" validate:"gte=0"`
	PaymentMethod string         `json:"payment_method" validate:"required,oneof=cash card transfer e-wallet"`
	PaymentAmount int64          `json:"payment_amount" validate:"gte=0"`
	Notes         string         `json:"notes"`
}

// Receipt is the success response of a checkout.
type Receipt struct {
	TransactionID     uuid.UUID `json:"transaction_id"`
	TransactionNumber string    `json:"transaction_number"`
	Total             int64     `json:"total"`
	Change            int64     `json:"change"`
}

// DraftRequest holds an in-progress cart. Items are stored verbatim and
// never touch inventory.
type DraftRequest struct {
	Items      []CheckoutItem `json:"items" validate:"required,min=1"`
	CustomerID *uuid.UUID     `json:"customer_id"`
	Notes      string         `json:"notes"`
}

type CheckoutService interface {
	Checkout(req *CheckoutRequest, cashierID uuid.UUID) (*Receipt, error)
	SaveDraft(req *DraftRequest, cashierID uuid.UUID) (*model.Transaction, error)
	ListTransactions(filter repository.HistoryFilter) ([]model.Transaction, int64, error)
	GetTransaction(id uuid.UUID, viewerID uuid.UUID, canViewAll bool) (*model.Transaction, error)
	ListDrafts(cashierID uuid.UUID) ([]model.Transaction, error)
}

type checkoutService struct {
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	txRepo       repository.TransactionRepository
	seqRepo      repository.SequenceRepository
	db           *gorm.DB
	wsHub        *ws.Hub
	now          func() time.Time
}

func NewCheckoutService(
	pRepo repository.ProductRepository,
	cRepo repository.CustomerRepository,
	tRepo repository.TransactionRepository,
	sRepo repository.SequenceRepository,
	db *gorm.DB,
	hub *ws.Hub,
) CheckoutService {
	return &checkoutService{
		productRepo:  pRepo,
		customerRepo: cRepo,
		txRepo:       tRepo,
		seqRepo:      sRepo,
		db:           db,
		wsHub:        hub,
		now:          time.Now,
	}
}

// Checkout runs the whole sale as one atomic unit of work: resolve the
// customer, draw a transaction number, persist the transaction, then
// per line item snapshot the product and decrement its stock. Any
// failure rolls everything back; there are no partial sales.
func (s *checkoutService) Checkout(req *CheckoutRequest, cashierID uuid.UUID) (*Receipt, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, firstValidationError(errs)
	}
	if cashierID == uuid.Nil {
		return nil, newValidationError("cashier reference is required")
	}

	// Totals are recomputed from the items; the register's figures must
	// agree or the cart is rejected before anything is written.
	var computedSubtotal int64
	for _, item := range req.Items {
		computedSubtotal += item.Price * int64(item.Quantity)
	}
	if req.Subtotal != computedSubtotal {
		return nil, newValidationError("subtotal mismatch: items sum to %d, got %d", computedSubtotal, req.Subtotal)
	}
	expectedTotal := computedSubtotal + req.Tax - req.Discount
	if req.Total != expectedTotal {
		return nil, newValidationError("total mismatch: expected %d, got %d", expectedTotal, req.Total)
	}
	if expectedTotal < 0 {
		return nil, newValidationError("discount exceeds subtotal plus tax")
	}

	var transaction model.Transaction
	var soldItems []map[string]interface{}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// A. Resolve customer: explicit reference, inline name, or walk-in
		customerID, err := s.resolveCustomer(tx, req, cashierID)
		if err != nil {
			return err
		}

		// B. Draw the next sale number for today
		number, err := s.seqRepo.NextNumber(tx, s.now())
		if err != nil {
			return err
		}

		// C. Create the transaction in completed status. Underpayment is
		// not rejected here; change simply goes negative.
		transaction = model.Transaction{
			TransactionNumber: number,
			CustomerID:        customerID,
			CashierID:         cashierID,
			Subtotal:          req.Subtotal,
			Tax:               req.Tax,
			Discount:          req.Discount,
			Total:             req.Total,
			PaymentMethod:     req.PaymentMethod,
			PaymentAmount:     req.PaymentAmount,
			ChangeAmount:      req.PaymentAmount - req.Total,
			Status:            model.TxCompleted,
			Notes:             req.Notes,
		}
		transaction.CreatedBy = cashierID.String()
		transaction.UpdatedBy = cashierID.String()
		if err := tx.Create(&transaction).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrConcurrencyConflict
			}
			return err
		}

		// D. Per line item: snapshot the product and decrement stock
		for _, item := range req.Items {
			product, err := s.productRepo.FindByIDTx(tx, item.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProductNotFound
				}
				return err
			}

			ok, err := s.productRepo.DecrementStock(tx, product.ID, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				// Guard rejected the decrement: either the cart asks for
				// more than the shelf holds, or a concurrent sale got
				// there first. Both abort the whole checkout.
				return &InsufficientStockError{
					ProductName: product.Name,
					Available:   product.Stock,
					Requested:   item.Quantity,
				}
			}

			txItem := model.TransactionItem{
				TransactionID: transaction.ID,
				ProductID:     product.ID,
				ProductName:   product.Name,
				ProductSKU:    product.SKU,
				Quantity:      item.Quantity,
				Price:         item.Price,
				Subtotal:      item.Price * int64(item.Quantity),
			}
			txItem.CreatedBy = cashierID.String()
			if err := tx.Create(&txItem).Error; err != nil {
				return err
			}

			soldItems = append(soldItems, map[string]interface{}{
				"product_id": product.ID,
				"sku":        product.SKU,
				"name":       product.Name,
				"quantity":   item.Quantity,
				"new_stock":  product.Stock - item.Quantity,
			})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.wsHub.Publish("sale_completed", map[string]interface{}{
		"transaction_id":     transaction.ID,
		"transaction_number": transaction.TransactionNumber,
		"cashier_id":         cashierID.String(),
		"total":              transaction.Total,
		"items":              soldItems,
	})

	return &Receipt{
		TransactionID:     transaction.ID,
		TransactionNumber: transaction.TransactionNumber,
		Total:             transaction.Total,
		Change:            transaction.ChangeAmount,
	}, nil
}

// resolveCustomer returns the customer reference for the sale: the given
// id (verified), a customer created on the fly from an inline name, or
// nil for a walk-in sale.
func (s *checkoutService) resolveCustomer(tx *gorm.DB, req *CheckoutRequest, cashierID uuid.UUID) (*uuid.UUID, error) {
	if req.CustomerID != nil {
		customer, err := s.customerRepo.FindByIDTx(tx, *req.CustomerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCustomerNotFound
			}
			return nil, err
		}
		return &customer.ID, nil
	}

	if req.CustomerName != "" {
		customer := &model.Customer{
			Name:   req.CustomerName,
			Phone:  req.CustomerPhone,
			Status: model.CustomerActive,
		}
		customer.CreatedBy = cashierID.String()
		customer.UpdatedBy = cashierID.String()
		if err := s.customerRepo.CreateTx(tx, customer); err != nil {
			return nil, err
		}
		return &customer.ID, nil
	}

	// Walk-in sale, no customer on the receipt
	return nil, nil
}

// SaveDraft parks a cart: a draft transaction with zeroed totals and the
// raw items serialized into draft_data. Inventory and the sale sequence
// are untouched; resuming means re-submitting through Checkout.
func (s *checkoutService) SaveDraft(req *DraftRequest, cashierID uuid.UUID) (*model.Transaction, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, firstValidationError(errs)
	}
	if cashierID == uuid.Nil {
		return nil, newValidationError("cashier reference is required")
	}

	data, err := json.Marshal(req.Items)
	if err != nil {
		return nil, err
	}

	draft := &model.Transaction{
		TransactionNumber: "DRAFT-" + strconv.FormatInt(s.now().UnixNano(), 10),
		CustomerID:        req.CustomerID,
		CashierID:         cashierID,
		Status:            model.TxDraft,
		Notes:             req.Notes,
		DraftData:         string(data),
	}
	draft.CreatedBy = cashierID.String()
	draft.UpdatedBy = cashierID.String()

	if err := s.db.Create(draft).Error; err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *checkoutService) ListTransactions(filter repository.HistoryFilter) ([]model.Transaction, int64, error) {
	return s.txRepo.FindCompleted(filter)
}

// GetTransaction loads one transaction with its items. A viewer without
// the view-all capability only sees their own sales.
func (s *checkoutService) GetTransaction(id uuid.UUID, viewerID uuid.UUID, canViewAll bool) (*model.Transaction, error) {
	transaction, err := s.txRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if !canViewAll && transaction.CashierID != viewerID {
		return nil, errors.New("you can only view your own transactions")
	}
	return transaction, nil
}

func (s *checkoutService) ListDrafts(cashierID uuid.UUID) ([]model.Transaction, error) {
	return s.txRepo.FindDrafts(cashierID)
}
