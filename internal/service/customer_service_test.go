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

func newCustomerService(db *gorm.DB) CustomerService {
	return NewCustomerService(repository.NewCustomerRepo(db))
}

func strPtr(s string) *string { return &s }

func TestCreateCustomerDuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	svc := newCustomerService(db)

	require.NoError(t, svc.CreateCustomer(&model.Customer{
		Name:  "Andi",
		Email: strPtr("andi@example.com"),
	}, "admin"))

	err := svc.CreateCustomer(&model.Customer{
		Name:  "Andi Kedua",
		Email: strPtr("andi@example.com"),
	}, "admin")
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestCreateCustomerEmailOptional(t *testing.T) {
	db := openTestDB(t)
	svc := newCustomerService(db)

	// Walk-in customers registered at the counter often have no email;
	// two of them must not collide on the unique index.
	require.NoError(t, svc.CreateCustomer(&model.Customer{Name: "Tanpa Email 1"}, "kasir"))
	require.NoError(t, svc.CreateCustomer(&model.Customer{Name: "Tanpa Email 2"}, "kasir"))

	_, total, err := svc.ListCustomers(repository.CustomerFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestUpdateCustomer(t *testing.T) {
	db := openTestDB(t)
	svc := newCustomerService(db)
	customer := seedCustomer(t, db, "Budi")

	updated, err := svc.UpdateCustomer(customer.ID, &model.Customer{
		Name:    "Budi Raharjo",
		Email:   strPtr("budi@example.com"),
		Phone:   "0812345",
		Address: "Jl. Melati 5",
	}, "admin")
	require.NoError(t, err)
	assert.Equal(t, "Budi Raharjo", updated.Name)
	require.NotNil(t, updated.Email)
	assert.Equal(t, "budi@example.com", *updated.Email)
}

func TestUpdateCustomerEmailConflict(t *testing.T) {
	db := openTestDB(t)
	svc := newCustomerService(db)

	require.NoError(t, svc.CreateCustomer(&model.Customer{
		Name:  "Pemilik",
		Email: strPtr("taken@example.com"),
	}, "admin"))
	other := seedCustomer(t, db, "Lain")

	_, err := svc.UpdateCustomer(other.ID, &model.Customer{
		Name:  "Lain",
		Email: strPtr("taken@example.com"),
	}, "admin")
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestDeleteCustomerSoftDeletes(t *testing.T) {
	db := openTestDB(t)
	svc := newCustomerService(db)
	customer := seedCustomer(t, db, "Citra")

	require.NoError(t, svc.DeleteCustomer(customer.ID))

	_, err := svc.GetCustomer(customer.ID)
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	var count int64
	require.NoError(t, db.Unscoped().Model(&model.Customer{}).Where("id = ?", customer.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDeleteCustomerUnknownID(t *testing.T) {
	db := openTestDB(t)
	svc := newCustomerService(db)
	assert.ErrorIs(t, svc.DeleteCustomer(uuid.New()), ErrCustomerNotFound)
}

func TestRecentCustomers(t *testing.T) {
	db := openTestDB(t)
	svc := newCustomerService(db)
	for _, name := range []string{"A", "B", "C"} {
		seedCustomer(t, db, name)
	}

	recent, err := svc.RecentCustomers(2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	// A non-positive limit falls back to the default of 10
	recent, err = svc.RecentCustomers(0)
	require.NoError(t, err)
	assert.Len(t, recent, 3)
}
