package service

import (
	"time"

	"go-pos-backoffice/internal/repository"

	"github.com/google/uuid"
)

// SalesReport bundles everything the sales report screen needs.
type SalesReport struct {
	DateFrom       string                              `json:"date_from"`
	DateTo         string                              `json:"date_to"`
	Summary        *repository.SalesSummary            `json:"summary"`
	ByDay          []repository.SalesByDay             `json:"by_day"`
	ByPayment      []repository.PaymentMethodBreakdown `json:"by_payment"`
	TopProducts    []repository.TopProduct             `json:"top_products"`
	TopCustomers   []repository.TopCustomer            `json:"top_customers"`
}

type ReportService interface {
	GetTodayStats(cashierID uuid.UUID) (*repository.TodayStats, error)
	GetSalesReport(dateFrom, dateTo time.Time) (*SalesReport, error)
	GetDashboardStats() (*repository.DashboardStats, error)
	GetSalesChart(days int) ([]repository.SalesByDay, error)
}

type reportService struct {
	txRepo repository.TransactionRepository
	now    func() time.Time
}

func NewReportService(txRepo repository.TransactionRepository) ReportService {
	return &reportService{txRepo: txRepo, now: time.Now}
}

func (s *reportService) GetTodayStats(cashierID uuid.UUID) (*repository.TodayStats, error) {
	return s.txRepo.GetTodayStats(cashierID, s.now())
}

// GetSalesReport aggregates completed transactions only; drafts never
// count toward revenue.
func (s *reportService) GetSalesReport(dateFrom, dateTo time.Time) (*SalesReport, error) {
	summary, err := s.txRepo.GetSalesSummary(dateFrom, dateTo)
	if err != nil {
		return nil, err
	}
	byDay, err := s.txRepo.GetSalesByDay(dateFrom, dateTo)
	if err != nil {
		return nil, err
	}
	byPayment, err := s.txRepo.GetPaymentMethodBreakdown(dateFrom, dateTo)
	if err != nil {
		return nil, err
	}
	topProducts, err := s.txRepo.GetTopProducts(dateFrom, dateTo, 10)
	if err != nil {
		return nil, err
	}
	topCustomers, err := s.txRepo.GetTopCustomers(dateFrom, dateTo, 10)
	if err != nil {
		return nil, err
	}

	return &SalesReport{
		DateFrom:     dateFrom.Format("2006-01-02"),
		DateTo:       dateTo.Format("2006-01-02"),
		Summary:      summary,
		ByDay:        byDay,
		ByPayment:    byPayment,
		TopProducts:  topProducts,
		TopCustomers: topCustomers,
	}, nil
}

func (s *reportService) GetDashboardStats() (*repository.DashboardStats, error) {
	return s.txRepo.GetDashboardStats()
}

func (s *reportService) GetSalesChart(days int) ([]repository.SalesByDay, error) {
	endDate := s.now()
	startDate := endDate.AddDate(0, 0, -days)
	return s.txRepo.GetSalesByDay(startDate, endDate)
}
