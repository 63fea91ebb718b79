package repository

import (
	"testing"

	"go-pos-backoffice/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createProduct(t *testing.T, db *gorm.DB, sku string, stock int) *model.Product {
	t.Helper()
	product := &model.Product{
		SKU:    sku,
		Name:   "Product " + sku,
		Price:  10000,
		Stock:  stock,
		Status: model.ProductActive,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func stockOf(t *testing.T, db *gorm.DB, p *model.Product) int {
	t.Helper()
	var reloaded model.Product
	require.NoError(t, db.First(&reloaded, "id = ?", p.ID).Error)
	return reloaded.Stock
}

func TestDecrementStockGuard(t *testing.T) {
	db := openTestDB(t)
	repo := NewProductRepo(db)
	product := createProduct(t, db, "SKU-G1", 5)

	ok, err := repo.DecrementStock(db, product.ID, 3)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, stockOf(t, db, product))

	// Asking for more than remains is rejected without touching the row
	ok, err = repo.DecrementStock(db, product.ID, 3)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 2, stockOf(t, db, product))

	// Taking exactly what remains drains it to zero
	ok, err = repo.DecrementStock(db, product.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, stockOf(t, db, product))

	// And a zero shelf rejects everything
	ok, err = repo.DecrementStock(db, product.ID, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDecrementStockUnknownProduct(t *testing.T) {
	db := openTestDB(t)
	repo := NewProductRepo(db)
	product := createProduct(t, db, "SKU-G2", 5)

	require.NoError(t, db.Delete(product).Error)

	// Soft-deleted rows are invisible to the guard
	ok, err := repo.DecrementStock(db, product.ID, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFindAvailableExcludesInactiveAndEmpty(t *testing.T) {
	db := openTestDB(t)
	repo := NewProductRepo(db)

	createProduct(t, db, "SKU-A1", 5)
	createProduct(t, db, "SKU-A2", 0)
	inactive := createProduct(t, db, "SKU-A3", 5)
	inactive.Status = model.ProductInactive
	require.NoError(t, db.Save(inactive).Error)

	available, err := repo.FindAvailable()
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "SKU-A1", available[0].SKU)
}

func TestSetStockOverwrites(t *testing.T) {
	db := openTestDB(t)
	repo := NewProductRepo(db)
	product := createProduct(t, db, "SKU-S1", 5)

	require.NoError(t, repo.SetStock(db, product.ID, 42, "admin"))
	assert.Equal(t, 42, stockOf(t, db, product))
}
