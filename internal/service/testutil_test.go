package service

import (
	"fmt"
	"testing"

	"go-pos-backoffice/internal/model"
	"go-pos-backoffice/internal/ws"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB spins up an in-memory sqlite with the full schema. The
// pool is pinned to one connection so every query sees the same
// in-memory database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Category{},
		&model.Product{},
		&model.Customer{},
		&model.Transaction{},
		&model.TransactionItem{},
		&model.DailySequence{},
		&model.ProductReview{},
		&model.User{},
		&model.Privilege{},
		&model.Role{},
	))

	return db
}

func newTestHub() *ws.Hub {
	hub := ws.NewHub()
	go hub.Run()
	return hub
}

func seedCashier(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	user := &model.User{
		Email:    fmt.Sprintf("kasir-%s@example.com", uuid.NewString()[:8]),
		Password: "x",
		FullName: "Kasir Test",
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user.ID
}

func seedProduct(t *testing.T, db *gorm.DB, sku string, price int64, stock int) *model.Product {
	t.Helper()
	product := &model.Product{
		SKU:      sku,
		Name:     "Product " + sku,
		Price:    price,
		Stock:    stock,
		MinStock: 2,
		Status:   model.ProductActive,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedCustomer(t *testing.T, db *gorm.DB, name string) *model.Customer {
	t.Helper()
	customer := &model.Customer{
		Name:   name,
		Status: model.CustomerActive,
	}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

func reloadProduct(t *testing.T, db *gorm.DB, id uuid.UUID) *model.Product {
	t.Helper()
	var product model.Product
	require.NoError(t, db.First(&product, "id = ?", id).Error)
	return &product
}
