package service

import (
	"errors"

	"go-pos-backoffice/internal/model"
	"go-pos-backoffice/internal/repository"
	"go-pos-backoffice/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateReviewRequest struct {
	CustomerID uuid.UUID `json:"customer_id" validate:"uuid_required"`
	Rating     int       `json:"rating" validate:"required,min=1,max=5"`
	Title      string    `json:"title" validate:"required,max=100"`
	Comment    string    `json:"comment" validate:"required"`
}

type UpdateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Title   string `json:"title" validate:"required,max=100"`
	Comment string `json:"comment" validate:"required"`
}

type ReviewService interface {
	CreateReview(productID uuid.UUID, req *CreateReviewRequest) (*model.ProductReview, error)
	UpdateReview(id uuid.UUID, customerID uuid.UUID, req *UpdateReviewRequest) (*model.ProductReview, error)
	DeleteReview(id uuid.UUID) error
	Approve(id uuid.UUID, moderatorID string) error
	Reject(id uuid.UUID, moderatorID string) error
	Vote(id uuid.UUID, helpful bool) error
	ListByProduct(productID uuid.UUID, filter repository.ReviewFilter, includeUnapproved bool) ([]model.ProductReview, int64, error)
	ListForModeration(filter repository.ReviewFilter) ([]model.ProductReview, int64, error)
	ProductRating(productID uuid.UUID) (float64, int64, error)
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	txRepo      repository.TransactionRepository
}

func NewReviewService(rRepo repository.ReviewRepository, pRepo repository.ProductRepository, tRepo repository.TransactionRepository) ReviewService {
	return &reviewService{
		reviewRepo:  rRepo,
		productRepo: pRepo,
		txRepo:      tRepo,
	}
}

// CreateReview records a pending review. The customer must have a
// completed transaction containing the product; that transaction is
// attached as proof of purchase.
func (s *reviewService) CreateReview(productID uuid.UUID, req *CreateReviewRequest) (*model.ProductReview, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, firstValidationError(errs)
	}

	if _, err := s.productRepo.FindByID(productID); err != nil {
		return nil, ErrProductNotFound
	}

	existing, err := s.reviewRepo.FindByProductAndCustomer(productID, req.CustomerID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrReviewExists
	}

	purchased, txID, err := s.txRepo.CustomerHasPurchased(req.CustomerID, productID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, ErrNoPurchase
	}

	review := &model.ProductReview{
		ProductID:     productID,
		CustomerID:    req.CustomerID,
		TransactionID: txID,
		Rating:        req.Rating,
		Title:         req.Title,
		Comment:       req.Comment,
		Status:        model.ReviewPending,
	}
	review.CreatedBy = req.CustomerID.String()
	review.UpdatedBy = req.CustomerID.String()

	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}
	return review, nil
}

// UpdateReview lets the author edit their review; editing resets the
// status to pending so moderation sees the new text.
func (s *reviewService) UpdateReview(id uuid.UUID, customerID uuid.UUID, req *UpdateReviewRequest) (*model.ProductReview, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, firstValidationError(errs)
	}

	review, err := s.reviewRepo.FindByID(id)
	if err != nil {
		return nil, ErrReviewNotFound
	}
	if review.CustomerID != customerID {
		return nil, errors.New("you can only edit your own review")
	}

	review.Rating = req.Rating
	review.Title = req.Title
	review.Comment = req.Comment
	review.Status = model.ReviewPending
	review.UpdatedBy = customerID.String()

	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) DeleteReview(id uuid.UUID) error {
	if _, err := s.reviewRepo.FindByID(id); err != nil {
		return ErrReviewNotFound
	}
	return s.reviewRepo.Delete(id)
}

func (s *reviewService) Approve(id uuid.UUID, moderatorID string) error {
	if _, err := s.reviewRepo.FindByID(id); err != nil {
		return ErrReviewNotFound
	}
	return s.reviewRepo.SetStatus(id, model.ReviewApproved, moderatorID)
}

func (s *reviewService) Reject(id uuid.UUID, moderatorID string) error {
	if _, err := s.reviewRepo.FindByID(id); err != nil {
		return ErrReviewNotFound
	}
	return s.reviewRepo.SetStatus(id, model.ReviewRejected, moderatorID)
}

func (s *reviewService) Vote(id uuid.UUID, helpful bool) error {
	if _, err := s.reviewRepo.FindByID(id); err != nil {
		return ErrReviewNotFound
	}
	return s.reviewRepo.IncrementVote(id, helpful)
}

// ListByProduct shows approved reviews to the public; moderators may ask
// for any status.
func (s *reviewService) ListByProduct(productID uuid.UUID, filter repository.ReviewFilter, includeUnapproved bool) ([]model.ProductReview, int64, error) {
	if !includeUnapproved {
		filter.Status = string(model.ReviewApproved)
	}
	return s.reviewRepo.FindByProduct(productID, filter)
}

func (s *reviewService) ListForModeration(filter repository.ReviewFilter) ([]model.ProductReview, int64, error) {
	return s.reviewRepo.FindAll(filter)
}

func (s *reviewService) ProductRating(productID uuid.UUID) (float64, int64, error) {
	return s.reviewRepo.AverageRating(productID)
}
