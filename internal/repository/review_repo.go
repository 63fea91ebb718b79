package repository

import (
	"go-pos-backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewFilter struct {
	Status string
	Rating int
	Sort   string // newest, oldest, highest, lowest, helpful
	Limit  int
	Offset int
}

type ReviewRepository interface {
	Create(review *model.ProductReview) error
	FindByID(id uuid.UUID) (*model.ProductReview, error)
	FindByProductAndCustomer(productID, customerID uuid.UUID) (*model.ProductReview, error)
	FindByProduct(productID uuid.UUID, filter ReviewFilter) ([]model.ProductReview, int64, error)
	FindAll(filter ReviewFilter) ([]model.ProductReview, int64, error)
	Update(review *model.ProductReview) error
	Delete(id uuid.UUID) error
	SetStatus(id uuid.UUID, status model.ReviewStatus, updatedBy string) error
	IncrementVote(id uuid.UUID, helpful bool) error
	AverageRating(productID uuid.UUID) (float64, int64, error)
}

type reviewRepo struct {
	db *gorm.DB
}

func NewReviewRepo(db *gorm.DB) ReviewRepository {
	return &reviewRepo{db}
}

func (r *reviewRepo) Create(review *model.ProductReview) error {
	return r.db.Create(review).Error
}

func (r *reviewRepo) FindByID(id uuid.UUID) (*model.ProductReview, error) {
	var review model.ProductReview
	err := r.db.Preload("Product").Preload("Customer").First(&review, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepo) FindByProductAndCustomer(productID, customerID uuid.UUID) (*model.ProductReview, error) {
	var review model.ProductReview
	err := r.db.First(&review, "product_id = ? AND customer_id = ?", productID, customerID).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func applyReviewSort(query *gorm.DB, sort string) *gorm.DB {
	switch sort {
	case "oldest":
		return query.Order("created_at ASC")
	case "highest":
		return query.Order("rating DESC")
	case "lowest":
		return query.Order("rating ASC")
	case "helpful":
		return query.Order("helpful_count DESC")
	default:
		return query.Order("created_at DESC")
	}
}

func (r *reviewRepo) findFiltered(query *gorm.DB, filter ReviewFilter) ([]model.ProductReview, int64, error) {
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Rating > 0 {
		query = query.Where("rating = ?", filter.Rating)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var reviews []model.ProductReview
	err := applyReviewSort(query, filter.Sort).
		Preload("Product").Preload("Customer").
		Find(&reviews).Error
	return reviews, total, err
}

func (r *reviewRepo) FindByProduct(productID uuid.UUID, filter ReviewFilter) ([]model.ProductReview, int64, error) {
	query := r.db.Model(&model.ProductReview{}).Where("product_id = ?", productID)
	return r.findFiltered(query, filter)
}

func (r *reviewRepo) FindAll(filter ReviewFilter) ([]model.ProductReview, int64, error) {
	return r.findFiltered(r.db.Model(&model.ProductReview{}), filter)
}

func (r *reviewRepo) Update(review *model.ProductReview) error {
	return r.db.Save(review).Error
}

func (r *reviewRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.ProductReview{}, "id = ?", id).Error
}

func (r *reviewRepo) SetStatus(id uuid.UUID, status model.ReviewStatus, updatedBy string) error {
	return r.db.Model(&model.ProductReview{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_by": updatedBy,
		}).Error
}

// IncrementVote bumps the helpful or not-helpful counter atomically.
func (r *reviewRepo) IncrementVote(id uuid.UUID, helpful bool) error {
	column := "not_helpful_count"
	if helpful {
		column = "helpful_count"
	}
	return r.db.Model(&model.ProductReview{}).
		Where("id = ?", id).
		Update(column, gorm.Expr(column+" + 1")).Error
}

// AverageRating considers approved reviews only.
func (r *reviewRepo) AverageRating(productID uuid.UUID) (float64, int64, error) {
	var result struct {
		Avg   float64
		Count int64
	}
	err := r.db.Model(&model.ProductReview{}).
		Where("product_id = ? AND status = ?", productID, model.ReviewApproved).
		Select("COALESCE(AVG(rating), 0) as avg, COUNT(*) as count").
		Scan(&result).Error
	return result.Avg, result.Count, err
}
