package service

import (
	"testing"

	"go-pos-backoffice/internal/model"
	"go-pos-backoffice/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCatalogService(db *gorm.DB) CatalogService {
	return NewCatalogService(repository.NewProductRepo(db), db, newTestHub())
}

func TestCreateProductRejectsDuplicateSKU(t *testing.T) {
	db := openTestDB(t)
	svc := newCatalogService(db)
	seedProduct(t, db, "SKU-DUP", 10000, 5)

	err := svc.CreateProduct(&model.Product{
		SKU:   "SKU-DUP",
		Name:  "Another product",
		Price: 5000,
	}, "admin")
	assert.ErrorIs(t, err, ErrSKUExists)
}

func TestCreateProductDefaultsToActive(t *testing.T) {
	db := openTestDB(t)
	svc := newCatalogService(db)

	product := &model.Product{
		SKU:   "SKU-NEW",
		Name:  "Kopi Arabika 250g",
		Price: 45000,
		Stock: 20,
	}
	require.NoError(t, svc.CreateProduct(product, "admin"))
	assert.Equal(t, model.ProductActive, product.Status)
	assert.Equal(t, "admin", product.CreatedBy)
}

func TestUpdateProductSKUConflict(t *testing.T) {
	db := openTestDB(t)
	svc := newCatalogService(db)
	seedProduct(t, db, "SKU-A", 10000, 5)
	target := seedProduct(t, db, "SKU-B", 10000, 5)

	_, err := svc.UpdateProduct(target.ID, &model.Product{
		SKU:   "SKU-A",
		Name:  target.Name,
		Price: target.Price,
	}, "admin")
	assert.ErrorIs(t, err, ErrSKUExists)
}

func TestUpdateProductDoesNotTouchStock(t *testing.T) {
	db := openTestDB(t)
	svc := newCatalogService(db)
	product := seedProduct(t, db, "SKU-C", 10000, 7)

	updated, err := svc.UpdateProduct(product.ID, &model.Product{
		SKU:   "SKU-C",
		Name:  "Renamed",
		Price: 12000,
		Stock: 999, // stock edits go through AdjustStock, not here
	}, "admin")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, int64(12000), updated.Price)
	assert.Equal(t, 7, reloadProduct(t, db, product.ID).Stock)
}

func TestAdjustStock(t *testing.T) {
	db := openTestDB(t)
	svc := newCatalogService(db)
	product := seedProduct(t, db, "SKU-ADJ", 10000, 10)

	t.Run("add", func(t *testing.T) {
		updated, err := svc.AdjustStock(product.ID, &StockAdjustment{Type: "add", Quantity: 5, Reason: "restock"}, "admin")
		require.NoError(t, err)
		assert.Equal(t, 15, updated.Stock)
	})

	t.Run("subtract", func(t *testing.T) {
		updated, err := svc.AdjustStock(product.ID, &StockAdjustment{Type: "subtract", Quantity: 3, Reason: "damaged"}, "admin")
		require.NoError(t, err)
		assert.Equal(t, 12, updated.Stock)
	})

	t.Run("subtract below zero", func(t *testing.T) {
		_, err := svc.AdjustStock(product.ID, &StockAdjustment{Type: "subtract", Quantity: 100}, "admin")
		var stockErr *InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, 12, reloadProduct(t, db, product.ID).Stock)
	})

	t.Run("set", func(t *testing.T) {
		updated, err := svc.AdjustStock(product.ID, &StockAdjustment{Type: "set", Quantity: 50, Reason: "stock opname"}, "admin")
		require.NoError(t, err)
		assert.Equal(t, 50, updated.Stock)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := svc.AdjustStock(product.ID, &StockAdjustment{Type: "teleport", Quantity: 1}, "admin")
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
	})
}

func TestDeleteProductSoftDeletes(t *testing.T) {
	db := openTestDB(t)
	svc := newCatalogService(db)
	product := seedProduct(t, db, "SKU-DEL", 10000, 5)

	require.NoError(t, svc.DeleteProduct(product.ID))

	_, err := svc.GetProduct(product.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	// The row survives in the table for old receipts and reports
	var count int64
	require.NoError(t, db.Unscoped().Model(&model.Product{}).Where("id = ?", product.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDeleteProductUnknownID(t *testing.T) {
	db := openTestDB(t)
	svc := newCatalogService(db)
	assert.ErrorIs(t, svc.DeleteProduct(uuid.New()), ErrProductNotFound)
}

func TestListAvailableProductsForPOS(t *testing.T) {
	db := openTestDB(t)
	svc := newCatalogService(db)
	seedProduct(t, db, "SKU-AV1", 10000, 5)
	seedProduct(t, db, "SKU-AV2", 10000, 0) // out of stock

	inactive := seedProduct(t, db, "SKU-AV3", 10000, 5)
	inactive.Status = model.ProductInactive
	require.NoError(t, db.Save(inactive).Error)

	available, err := svc.ListAvailableProducts()
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "SKU-AV1", available[0].SKU)
}

func TestListProductsStockStateFilter(t *testing.T) {
	db := openTestDB(t)
	svc := newCatalogService(db)
	seedProduct(t, db, "SKU-F1", 10000, 50) // in stock (min stock 2)
	seedProduct(t, db, "SKU-F2", 10000, 1)  // low
	seedProduct(t, db, "SKU-F3", 10000, 0)  // out

	_, total, err := svc.ListProducts(repository.ProductFilter{StockState: model.StockStateLow})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, total, err = svc.ListProducts(repository.ProductFilter{StockState: model.StockStateOut})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	products, total, err := svc.ListProducts(repository.ProductFilter{Search: "SKU-F"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, products, 3)
}
