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

func newReviewService(db *gorm.DB) ReviewService {
	return NewReviewService(
		repository.NewReviewRepo(db),
		repository.NewProductRepo(db),
		repository.NewTransactionRepo(db),
	)
}

// seedPurchase records a completed sale of the product to the customer,
// which is what entitles them to review it.
func seedPurchase(t *testing.T, db *gorm.DB, customerID, cashierID uuid.UUID, product *model.Product) uuid.UUID {
	t.Helper()
	transaction := &model.Transaction{
		TransactionNumber: "TRX-TEST-" + uuid.NewString()[:8],
		CustomerID:        &customerID,
		CashierID:         cashierID,
		Subtotal:          product.Price,
		Total:             product.Price,
		PaymentMethod:     model.PayCash,
		PaymentAmount:     product.Price,
		Status:            model.TxCompleted,
	}
	require.NoError(t, db.Create(transaction).Error)
	item := &model.TransactionItem{
		TransactionID: transaction.ID,
		ProductID:     product.ID,
		ProductName:   product.Name,
		ProductSKU:    product.SKU,
		Quantity:      1,
		Price:         product.Price,
		Subtotal:      product.Price,
	}
	require.NoError(t, db.Create(item).Error)
	return transaction.ID
}

func reviewRequest(customerID uuid.UUID, rating int) *CreateReviewRequest {
	return &CreateReviewRequest{
		CustomerID: customerID,
		Rating:     rating,
		Title:      "Mantap",
		Comment:    "Barang sesuai deskripsi",
	}
}

func TestCreateReviewRequiresPurchase(t *testing.T) {
	db := openTestDB(t)
	svc := newReviewService(db)
	product := seedProduct(t, db, "SKU-R1", 10000, 5)
	customer := seedCustomer(t, db, "Andi")

	_, err := svc.CreateReview(product.ID, reviewRequest(customer.ID, 5))
	assert.ErrorIs(t, err, ErrNoPurchase)
}

func TestCreateReviewAttachesProofOfPurchase(t *testing.T) {
	db := openTestDB(t)
	svc := newReviewService(db)
	cashierID := seedCashier(t, db)
	product := seedProduct(t, db, "SKU-R2", 10000, 5)
	customer := seedCustomer(t, db, "Andi")
	txID := seedPurchase(t, db, customer.ID, cashierID, product)

	review, err := svc.CreateReview(product.ID, reviewRequest(customer.ID, 4))
	require.NoError(t, err)

	assert.Equal(t, model.ReviewPending, review.Status)
	require.NotNil(t, review.TransactionID)
	assert.Equal(t, txID, *review.TransactionID)
}

func TestCreateReviewOnePerProductAndCustomer(t *testing.T) {
	db := openTestDB(t)
	svc := newReviewService(db)
	cashierID := seedCashier(t, db)
	product := seedProduct(t, db, "SKU-R3", 10000, 5)
	customer := seedCustomer(t, db, "Andi")
	seedPurchase(t, db, customer.ID, cashierID, product)

	_, err := svc.CreateReview(product.ID, reviewRequest(customer.ID, 4))
	require.NoError(t, err)

	_, err = svc.CreateReview(product.ID, reviewRequest(customer.ID, 2))
	assert.ErrorIs(t, err, ErrReviewExists)
}

func TestCreateReviewUnknownProduct(t *testing.T) {
	db := openTestDB(t)
	svc := newReviewService(db)
	customer := seedCustomer(t, db, "Andi")

	_, err := svc.CreateReview(uuid.New(), reviewRequest(customer.ID, 4))
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCreateReviewRatingBounds(t *testing.T) {
	db := openTestDB(t)
	svc := newReviewService(db)
	cashierID := seedCashier(t, db)
	product := seedProduct(t, db, "SKU-R4", 10000, 5)
	customer := seedCustomer(t, db, "Andi")
	seedPurchase(t, db, customer.ID, cashierID, product)

	_, err := svc.CreateReview(product.ID, reviewRequest(customer.ID, 6))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	_, err = svc.CreateReview(product.ID, reviewRequest(customer.ID, 0))
	require.ErrorAs(t, err, &vErr)
}

func TestModerationLifecycle(t *testing.T) {
	db := openTestDB(t)
	svc := newReviewService(db)
	cashierID := seedCashier(t, db)
	product := seedProduct(t, db, "SKU-R5", 10000, 5)
	approver := seedCustomer(t, db, "Andi")
	rejecter := seedCustomer(t, db, "Budi")
	seedPurchase(t, db, approver.ID, cashierID, product)
	seedPurchase(t, db, rejecter.ID, cashierID, product)

	good, err := svc.CreateReview(product.ID, reviewRequest(approver.ID, 5))
	require.NoError(t, err)
	bad, err := svc.CreateReview(product.ID, reviewRequest(rejecter.ID, 1))
	require.NoError(t, err)

	// Pending reviews are invisible to the public listing
	reviews, total, err := svc.ListByProduct(product.ID, repository.ReviewFilter{}, false)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, reviews)

	require.NoError(t, svc.Approve(good.ID, "moderator-1"))
	require.NoError(t, svc.Reject(bad.ID, "moderator-1"))

	reviews, total, err = svc.ListByProduct(product.ID, repository.ReviewFilter{}, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, reviews, 1)
	assert.Equal(t, good.ID, reviews[0].ID)

	// Moderators still see everything
	_, total, err = svc.ListByProduct(product.ID, repository.ReviewFilter{}, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	// Only the approved rating counts toward the average
	avg, count, err := svc.ProductRating(product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.InDelta(t, 5.0, avg, 0.001)
}

func TestUpdateReviewResetsToPending(t *testing.T) {
	db := openTestDB(t)
	svc := newReviewService(db)
	cashierID := seedCashier(t, db)
	product := seedProduct(t, db, "SKU-R6", 10000, 5)
	customer := seedCustomer(t, db, "Andi")
	seedPurchase(t, db, customer.ID, cashierID, product)

	review, err := svc.CreateReview(product.ID, reviewRequest(customer.ID, 5))
	require.NoError(t, err)
	require.NoError(t, svc.Approve(review.ID, "moderator-1"))

	updated, err := svc.UpdateReview(review.ID, customer.ID, &UpdateReviewRequest{
		Rating:  3,
		Title:   "Revisi",
		Comment: "Setelah seminggu mulai bermasalah",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ReviewPending, updated.Status)
	assert.Equal(t, 3, updated.Rating)
}

func TestUpdateReviewAuthorOnly(t *testing.T) {
	db := openTestDB(t)
	svc := newReviewService(db)
	cashierID := seedCashier(t, db)
	product := seedProduct(t, db, "SKU-R7", 10000, 5)
	author := seedCustomer(t, db, "Andi")
	stranger := seedCustomer(t, db, "Budi")
	seedPurchase(t, db, author.ID, cashierID, product)

	review, err := svc.CreateReview(product.ID, reviewRequest(author.ID, 5))
	require.NoError(t, err)

	_, err = svc.UpdateReview(review.ID, stranger.ID, &UpdateReviewRequest{
		Rating:  1,
		Title:   "Jelek",
		Comment: "Bukan review saya",
	})
	assert.Error(t, err)
}

func TestVoteCounters(t *testing.T) {
	db := openTestDB(t)
	svc := newReviewService(db)
	cashierID := seedCashier(t, db)
	product := seedProduct(t, db, "SKU-R8", 10000, 5)
	customer := seedCustomer(t, db, "Andi")
	seedPurchase(t, db, customer.ID, cashierID, product)

	review, err := svc.CreateReview(product.ID, reviewRequest(customer.ID, 4))
	require.NoError(t, err)

	require.NoError(t, svc.Vote(review.ID, true))
	require.NoError(t, svc.Vote(review.ID, true))
	require.NoError(t, svc.Vote(review.ID, false))

	var reloaded model.ProductReview
	require.NoError(t, db.First(&reloaded, "id = ?", review.ID).Error)
	assert.Equal(t, 2, reloaded.HelpfulCount)
	assert.Equal(t, 1, reloaded.NotHelpfulCount)
}

func TestModerationQueueFilter(t *testing.T) {
	db := openTestDB(t)
	svc := newReviewService(db)
	cashierID := seedCashier(t, db)
	product := seedProduct(t, db, "SKU-R9", 10000, 5)
	first := seedCustomer(t, db, "Andi")
	second := seedCustomer(t, db, "Budi")
	seedPurchase(t, db, first.ID, cashierID, product)
	seedPurchase(t, db, second.ID, cashierID, product)

	pending, err := svc.CreateReview(product.ID, reviewRequest(first.ID, 4))
	require.NoError(t, err)
	approved, err := svc.CreateReview(product.ID, reviewRequest(second.ID, 5))
	require.NoError(t, err)
	require.NoError(t, svc.Approve(approved.ID, "moderator-1"))

	queue, total, err := svc.ListForModeration(repository.ReviewFilter{Status: string(model.ReviewPending)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, queue, 1)
	assert.Equal(t, pending.ID, queue[0].ID)
}
