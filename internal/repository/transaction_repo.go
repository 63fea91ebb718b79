package repository

import (
	"time"

	"go-pos-backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HistoryFilter selects completed transactions. Scope is decided by the
// caller from the actor's privileges: a kasir passes their own CashierID,
// an admin may pass any or none.
type HistoryFilter struct {
	DateFrom      *time.Time
	DateTo        *time.Time
	CashierID     *uuid.UUID
	PaymentMethod string
	Search        string // transaction number substring
	Limit         int
	Offset        int
}

// TodayStats is the per-cashier POS header block.
type TodayStats struct {
	Transactions int64 `json:"transactions"`
	Revenue      int64 `json:"revenue"`
	ItemsSold    int64 `json:"items_sold"`
}

// SalesSummary aggregates completed sales over a date range.
type SalesSummary struct {
	TotalTransactions int64 `json:"total_transactions"`
	TotalRevenue      int64 `json:"total_revenue"`
	TotalTax          int64 `json:"total_tax"`
	TotalDiscount     int64 `json:"total_discount"`
	AvgTransaction    int64 `json:"avg_transaction"`
}

type SalesByDay struct {
	Date         string `json:"date"`
	Transactions int64  `json:"transactions"`
	Revenue      int64  `json:"revenue"`
}

type PaymentMethodBreakdown struct {
	PaymentMethod string `json:"payment_method"`
	Transactions  int64  `json:"transactions"`
	Revenue       int64  `json:"revenue"`
}

type TopProduct struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	ProductSKU  string    `json:"product_sku"`
	TotalSold   int64     `json:"total_sold"`
	Revenue     int64     `json:"revenue"`
}

type TopCustomer struct {
	CustomerID   uuid.UUID `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	TotalOrders  int64     `json:"total_orders"`
	TotalSpent   int64     `json:"total_spent"`
}

// DashboardStats is the back-office overview.
type DashboardStats struct {
	TotalProducts   int64 `json:"total_products"`
	LowStockCount   int64 `json:"low_stock_count"`
	OutOfStockCount int64 `json:"out_of_stock_count"`
	TotalValuation  int64 `json:"total_valuation"`
	TotalCustomers  int64 `json:"total_customers"`
	PendingReviews  int64 `json:"pending_reviews"`
}

type TransactionRepository interface {
	FindCompleted(filter HistoryFilter) ([]model.Transaction, int64, error)
	FindByID(id uuid.UUID) (*model.Transaction, error)
	FindByNumber(number string) (*model.Transaction, error)
	FindDrafts(cashierID uuid.UUID) ([]model.Transaction, error)
	GetTodayStats(cashierID uuid.UUID, now time.Time) (*TodayStats, error)
	GetSalesSummary(startDate, endDate time.Time) (*SalesSummary, error)
	GetSalesByDay(startDate, endDate time.Time) ([]SalesByDay, error)
	GetPaymentMethodBreakdown(startDate, endDate time.Time) ([]PaymentMethodBreakdown, error)
	GetTopProducts(startDate, endDate time.Time, limit int) ([]TopProduct, error)
	GetTopCustomers(startDate, endDate time.Time, limit int) ([]TopCustomer, error)
	GetDashboardStats() (*DashboardStats, error)
	CustomerHasPurchased(customerID, productID uuid.UUID) (bool, *uuid.UUID, error)
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) completedScope(startDate, endDate time.Time) *gorm.DB {
	return r.db.Model(&model.Transaction{}).
		Where("status = ? AND created_at BETWEEN ? AND ?", model.TxCompleted, startDate, endDate)
}

func (r *transactionRepo) FindCompleted(filter HistoryFilter) ([]model.Transaction, int64, error) {
	query := r.db.Model(&model.Transaction{}).Where("status = ?", model.TxCompleted)

	if filter.DateFrom != nil {
		query = query.Where("created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("created_at < ?", *filter.DateTo)
	}
	if filter.CashierID != nil {
		query = query.Where("cashier_id = ?", *filter.CashierID)
	}
	if filter.PaymentMethod != "" {
		query = query.Where("payment_method = ?", filter.PaymentMethod)
	}
	if filter.Search != "" {
		query = query.Where("transaction_number LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var transactions []model.Transaction
	err := query.Preload("Customer").Preload("Cashier").Preload("Items").
		Order("created_at DESC").
		Find(&transactions).Error
	return transactions, total, err
}

func (r *transactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.Preload("Customer").Preload("Cashier").Preload("Items").
		First(&transaction, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *transactionRepo) FindByNumber(number string) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.Preload("Customer").Preload("Cashier").Preload("Items").
		First(&transaction, "transaction_number = ?", number).Error
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *transactionRepo) FindDrafts(cashierID uuid.UUID) ([]model.Transaction, error) {
	var drafts []model.Transaction
	err := r.db.Where("status = ? AND cashier_id = ?", model.TxDraft, cashierID).
		Order("created_at DESC").
		Find(&drafts).Error
	return drafts, err
}

func (r *transactionRepo) GetTodayStats(cashierID uuid.UUID, now time.Time) (*TodayStats, error) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)

	stats := &TodayStats{}

	err := r.db.Model(&model.Transaction{}).
		Where("status = ? AND cashier_id = ? AND created_at >= ? AND created_at < ?",
			model.TxCompleted, cashierID, startOfDay, endOfDay).
		Count(&stats.Transactions).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Model(&model.Transaction{}).
		Where("status = ? AND cashier_id = ? AND created_at >= ? AND created_at < ?",
			model.TxCompleted, cashierID, startOfDay, endOfDay).
		Select("COALESCE(SUM(total), 0)").
		Scan(&stats.Revenue).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Raw(`
		SELECT COALESCE(SUM(ti.quantity), 0)
		FROM transaction_items ti
		JOIN transactions t ON t.id = ti.transaction_id
		WHERE t.status = ? AND t.cashier_id = ?
		  AND t.created_at >= ? AND t.created_at < ?
		  AND t.deleted_at IS NULL AND ti.deleted_at IS NULL
	`, model.TxCompleted, cashierID, startOfDay, endOfDay).Scan(&stats.ItemsSold).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *transactionRepo) GetSalesSummary(startDate, endDate time.Time) (*SalesSummary, error) {
	summary := &SalesSummary{}

	if err := r.completedScope(startDate, endDate).Count(&summary.TotalTransactions).Error; err != nil {
		return nil, err
	}

	row := r.completedScope(startDate, endDate).
		Select("COALESCE(SUM(total), 0) as total_revenue, COALESCE(SUM(tax), 0) as total_tax, COALESCE(SUM(discount), 0) as total_discount").
		Row()
	if err := row.Scan(&summary.TotalRevenue, &summary.TotalTax, &summary.TotalDiscount); err != nil {
		return nil, err
	}

	if summary.TotalTransactions > 0 {
		summary.AvgTransaction = summary.TotalRevenue / summary.TotalTransactions
	}

	return summary, nil
}

func (r *transactionRepo) GetSalesByDay(startDate, endDate time.Time) ([]SalesByDay, error) {
	var results []SalesByDay

	rows, err := r.completedScope(startDate, endDate).
		Select("DATE(created_at) as date, COUNT(*) as transactions, COALESCE(SUM(total), 0) as revenue").
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data SalesByDay
		if err := rows.Scan(&data.Date, &data.Transactions, &data.Revenue); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}

func (r *transactionRepo) GetPaymentMethodBreakdown(startDate, endDate time.Time) ([]PaymentMethodBreakdown, error) {
	var results []PaymentMethodBreakdown

	rows, err := r.completedScope(startDate, endDate).
		Select("payment_method, COUNT(*) as transactions, COALESCE(SUM(total), 0) as revenue").
		Group("payment_method").
		Order("revenue DESC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data PaymentMethodBreakdown
		if err := rows.Scan(&data.PaymentMethod, &data.Transactions, &data.Revenue); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}

func (r *transactionRepo) GetTopProducts(startDate, endDate time.Time, limit int) ([]TopProduct, error) {
	var results []TopProduct

	err := r.db.Raw(`
		SELECT ti.product_id, ti.product_name, ti.product_sku,
		       COALESCE(SUM(ti.quantity), 0) as total_sold,
		       COALESCE(SUM(ti.subtotal), 0) as revenue
		FROM transaction_items ti
		JOIN transactions t ON t.id = ti.transaction_id
		WHERE t.status = ? AND t.created_at BETWEEN ? AND ?
		  AND t.deleted_at IS NULL AND ti.deleted_at IS NULL
		GROUP BY ti.product_id, ti.product_name, ti.product_sku
		ORDER BY total_sold DESC
		LIMIT ?
	`, model.TxCompleted, startDate, endDate, limit).Scan(&results).Error

	return results, err
}

func (r *transactionRepo) GetTopCustomers(startDate, endDate time.Time, limit int) ([]TopCustomer, error) {
	var results []TopCustomer

	err := r.db.Raw(`
		SELECT c.id as customer_id, c.name as customer_name,
		       COUNT(t.id) as total_orders,
		       COALESCE(SUM(t.total), 0) as total_spent
		FROM customers c
		JOIN transactions t ON t.customer_id = c.id
		WHERE t.status = ? AND t.created_at BETWEEN ? AND ?
		  AND t.deleted_at IS NULL AND c.deleted_at IS NULL
		GROUP BY c.id, c.name
		ORDER BY total_spent DESC
		LIMIT ?
	`, model.TxCompleted, startDate, endDate, limit).Scan(&results).Error

	return results, err
}

func (r *transactionRepo) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	r.db.Model(&model.Product{}).Count(&stats.TotalProducts)
	r.db.Model(&model.Product{}).Where("stock > 0 AND stock <= min_stock").Count(&stats.LowStockCount)
	r.db.Model(&model.Product{}).Where("stock = 0").Count(&stats.OutOfStockCount)
	r.db.Model(&model.Product{}).Select("COALESCE(SUM(stock * price), 0)").Scan(&stats.TotalValuation)
	r.db.Model(&model.Customer{}).Count(&stats.TotalCustomers)
	r.db.Model(&model.ProductReview{}).Where("status = ?", model.ReviewPending).Count(&stats.PendingReviews)

	return stats, nil
}

// CustomerHasPurchased reports whether the customer has a completed
// transaction containing the product, and returns one matching
// transaction id to attach to a review as proof of purchase.
func (r *transactionRepo) CustomerHasPurchased(customerID, productID uuid.UUID) (bool, *uuid.UUID, error) {
	var txID uuid.UUID
	err := r.db.Raw(`
		SELECT t.id
		FROM transactions t
		JOIN transaction_items ti ON ti.transaction_id = t.id
		WHERE t.status = ? AND t.customer_id = ? AND ti.product_id = ?
		  AND t.deleted_at IS NULL AND ti.deleted_at IS NULL
		ORDER BY t.created_at DESC
		LIMIT 1
	`, model.TxCompleted, customerID, productID).Scan(&txID).Error
	if err != nil {
		return false, nil, err
	}
	if txID == uuid.Nil {
		return false, nil, nil
	}
	return true, &txID, nil
}
