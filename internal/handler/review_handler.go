package handler

import (
	"errors"

	"go-pos-backoffice/internal/middleware"
	"go-pos-backoffice/internal/repository"
	"go-pos-backoffice/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(s service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: s}
}

func reviewFilterFromQuery(c *fiber.Ctx) repository.ReviewFilter {
	return repository.ReviewFilter{
		Status: c.Query("status"),
		Rating: c.QueryInt("rating", 0),
		Sort:   c.Query("sort"),
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
}

// GetProductReviews lists a product's reviews. Moderators may filter by
// status; everyone else sees approved reviews only.
// GET /api/v1/products/:id/reviews
func (h *ReviewHandler) GetProductReviews(c *fiber.Ctx) error {
	productID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	canModerate := middleware.HasPrivilege(c, "review:moderate")
	reviews, total, err := h.reviewService.ListByProduct(productID, reviewFilterFromQuery(c), canModerate)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch reviews"})
	}

	average, count, err := h.reviewService.ProductRating(productID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch rating"})
	}

	return c.JSON(fiber.Map{
		"data":           reviews,
		"total":          total,
		"average_rating": average,
		"rating_count":   count,
	})
}

// CreateReview submits a pending review with proof of purchase
// POST /api/v1/products/:id/reviews
func (h *ReviewHandler) CreateReview(c *fiber.Ctx) error {
	productID, err := parseUUIDParam(c, "id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req service.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	review, err := h.reviewService.CreateReview(productID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrReviewExists), errors.Is(err, service.ErrNoPurchase):
			return c.Status(422).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.Status(201).JSON(fiber.Map{"message": "Review submitted for moderation", "data": review})
}

// UpdateReview lets the author edit; the review returns to pending
// PUT /api/v1/products/:id/reviews/:reviewId
func (h *ReviewHandler) UpdateReview(c *fiber.Ctx) error {
	reviewID, err := parseUUIDParam(c, "reviewId")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid review ID"})
	}

	var body struct {
		service.UpdateReviewRequest
		CustomerID string `json:"customer_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	customerID, err := parseUUID(body.CustomerID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	review, err := h.reviewService.UpdateReview(reviewID, customerID, &body.UpdateReviewRequest)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Review updated, pending moderation", "data": review})
}

// DeleteReview removes a review
// DELETE /api/v1/products/:id/reviews/:reviewId
func (h *ReviewHandler) DeleteReview(c *fiber.Ctx) error {
	reviewID, err := parseUUIDParam(c, "reviewId")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid review ID"})
	}

	if err := h.reviewService.DeleteReview(reviewID); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Review deleted"})
}

// Approve publishes a pending review
// POST /api/v1/products/:id/reviews/:reviewId/approve
func (h *ReviewHandler) Approve(c *fiber.Ctx) error {
	return h.moderate(c, true)
}

// Reject hides a pending review
// POST /api/v1/products/:id/reviews/:reviewId/reject
func (h *ReviewHandler) Reject(c *fiber.Ctx) error {
	return h.moderate(c, false)
}

func (h *ReviewHandler) moderate(c *fiber.Ctx, approve bool) error {
	reviewID, err := parseUUIDParam(c, "reviewId")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid review ID"})
	}

	moderatorID := getUserID(c)
	if approve {
		err = h.reviewService.Approve(reviewID, moderatorID)
	} else {
		err = h.reviewService.Reject(reviewID, moderatorID)
	}
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	}

	action := "rejected"
	if approve {
		action = "approved"
	}
	return c.JSON(fiber.Map{"message": "Review " + action})
}

// MarkHelpful bumps the helpful counter
// POST /api/v1/products/:id/reviews/:reviewId/helpful
func (h *ReviewHandler) MarkHelpful(c *fiber.Ctx) error {
	return h.vote(c, true)
}

// MarkNotHelpful bumps the not-helpful counter
// POST /api/v1/products/:id/reviews/:reviewId/not-helpful
func (h *ReviewHandler) MarkNotHelpful(c *fiber.Ctx) error {
	return h.vote(c, false)
}

func (h *ReviewHandler) vote(c *fiber.Ctx, helpful bool) error {
	reviewID, err := parseUUIDParam(c, "reviewId")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid review ID"})
	}

	if err := h.reviewService.Vote(reviewID, helpful); err != nil {
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Vote recorded"})
}

// Manage lists reviews across all products for the moderation screen
// GET /api/v1/reviews
func (h *ReviewHandler) Manage(c *fiber.Ctx) error {
	reviews, total, err := h.reviewService.ListForModeration(reviewFilterFromQuery(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch reviews"})
	}

	return c.JSON(fiber.Map{
		"data":  reviews,
		"total": total,
	})
}
