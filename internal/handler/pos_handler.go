package handler

import (
	"errors"
	"time"

	"go-pos-backoffice/internal/middleware"
	"go-pos-backoffice/internal/repository"
	"go-pos-backoffice/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Helpers to pull the actor's identity from the JWT context (set by the
// auth middleware).
func getUserID(c *fiber.Ctx) string {
	userID := c.Locals("user_id")
	if userID == nil {
		return "system"
	}
	return userID.(string)
}

func getUserUUID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(getUserID(c))
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

// PosHandler serves the register: checkout, drafts, transaction history,
// and the supporting POS lookups.
type PosHandler struct {
	checkoutService service.CheckoutService
	catalogService  service.CatalogService
	customerService service.CustomerService
	reportService   service.ReportService
}

func NewPosHandler(
	checkoutService service.CheckoutService,
	catalogService service.CatalogService,
	customerService service.CustomerService,
	reportService service.ReportService,
) *PosHandler {
	return &PosHandler{
		checkoutService: checkoutService,
		catalogService:  catalogService,
		customerService: customerService,
		reportService:   reportService,
	}
}

// Checkout processes a cart as one atomic sale
// POST /api/v1/pos/checkout
func (h *PosHandler) Checkout(c *fiber.Ctx) error {
	var req service.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	cashierID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid cashier identity"})
	}

	receipt, err := h.checkoutService.Checkout(&req, cashierID)
	if err != nil {
		var stockErr *service.InsufficientStockError
		var valErr *service.ValidationError
		switch {
		case errors.As(err, &stockErr):
			return c.Status(422).JSON(fiber.Map{
				"error":     stockErr.Error(),
				"product":   stockErr.ProductName,
				"requested": stockErr.Requested,
				"available": stockErr.Available,
			})
		case errors.As(err, &valErr),
			errors.Is(err, service.ErrProductNotFound),
			errors.Is(err, service.ErrCustomerNotFound):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrConcurrencyConflict):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Transaction failed: " + err.Error()})
		}
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Transaction completed successfully",
		"data":    receipt,
	})
}

// SaveDraft parks an in-progress cart
// POST /api/v1/pos/drafts
func (h *PosHandler) SaveDraft(c *fiber.Ctx) error {
	var req service.DraftRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	cashierID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid cashier identity"})
	}

	draft, err := h.checkoutService.SaveDraft(&req, cashierID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Draft saved successfully",
		"data": fiber.Map{
			"id":                 draft.ID,
			"transaction_number": draft.TransactionNumber,
		},
	})
}

// GetDrafts lists the cashier's parked carts
// GET /api/v1/pos/drafts
func (h *PosHandler) GetDrafts(c *fiber.Ctx) error {
	cashierID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid cashier identity"})
	}

	drafts, err := h.checkoutService.ListDrafts(cashierID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch drafts"})
	}
	return c.JSON(drafts)
}

// GetTransactions lists completed transactions. A kasir without the
// view-all privilege is scoped to their own sales.
// GET /api/v1/transactions
func (h *PosHandler) GetTransactions(c *fiber.Ctx) error {
	filter := repository.HistoryFilter{
		PaymentMethod: c.Query("payment_method"),
		Search:        c.Query("search"),
		Limit:         c.QueryInt("limit", 20),
		Offset:        c.QueryInt("offset", 0),
	}

	if from := c.Query("date_from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			filter.DateFrom = &t
		}
	}
	if to := c.Query("date_to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			end := t.AddDate(0, 0, 1) // inclusive end date
			filter.DateTo = &end
		}
	}

	if middleware.HasPrivilege(c, "transaction:view_all") {
		if cashier := c.Query("cashier_id"); cashier != "" {
			if id, err := uuid.Parse(cashier); err == nil {
				filter.CashierID = &id
			}
		}
	} else {
		ownID, err := getUserUUID(c)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid cashier identity"})
		}
		filter.CashierID = &ownID
	}

	transactions, total, err := h.checkoutService.ListTransactions(filter)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch transactions"})
	}

	return c.JSON(fiber.Map{
		"data":  transactions,
		"total": total,
	})
}

// GetTransaction shows a single transaction with its items
// GET /api/v1/transactions/:id
func (h *PosHandler) GetTransaction(c *fiber.Ctx) error {
	txID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	viewerID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid user identity"})
	}

	transaction, err := h.checkoutService.GetTransaction(txID, viewerID, middleware.HasPrivilege(c, "transaction:view_all"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Transaction not found"})
	}
	return c.JSON(transaction)
}

// GetAvailableProducts lists what the register can sell
// GET /api/v1/pos/products
func (h *PosHandler) GetAvailableProducts(c *fiber.Ctx) error {
	products, err := h.catalogService.ListAvailableProducts()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch products"})
	}
	return c.JSON(products)
}

// GetRecentCustomers backs the quick-selection list on the POS screen
// GET /api/v1/pos/customers/recent
func (h *PosHandler) GetRecentCustomers(c *fiber.Ctx) error {
	customers, err := h.customerService.RecentCustomers(c.QueryInt("limit", 10))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch customers"})
	}
	return c.JSON(customers)
}

// GetTodayStats shows the cashier's numbers for today
// GET /api/v1/pos/stats/today
func (h *PosHandler) GetTodayStats(c *fiber.Ctx) error {
	cashierID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid cashier identity"})
	}

	stats, err := h.reportService.GetTodayStats(cashierID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch today's stats"})
	}
	return c.JSON(stats)
}
