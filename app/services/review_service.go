package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shashiranjanraj/ameya/app/models"
	"github.com/shashiranjanraj/ameya/app/repositories"
	"gorm.io/gorm"
)

// ErrNotReviewOwner is returned when a user edits someone else's review.
var ErrNotReviewOwner = errors.New("reviews: not the review owner")

// ReviewInput is the review form.
type ReviewInput struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"required,max=2000"`
}

// ProductRating is the aggregate block on a product page.
type ProductRating struct {
	Average float64     `json:"average"`
	Total   int         `json:"total"`
	Counts  map[int]int `json:"counts"`
}

// ReviewService enforces the one-review-per-user-per-product rule on top
// of the repository; the unique index catches whatever races past it.
type ReviewService struct {
	reviews *repositories.ReviewRepository
}

func NewReviewService(reviews *repositories.ReviewRepository) *ReviewService {
	return &ReviewService{reviews: reviews}
}

// Submit creates the user's review for a product, or updates it when one
// already exists (rating, comment and name snapshot are replaced).
func (s *ReviewService) Submit(user models.User, productID string, in ReviewInput) (models.Review, error) {
	now := time.Now()

	existing, err := s.reviews.FindByOwner(user.ID, productID)
	switch {
	case err == nil:
		existing.Rating = in.Rating
		existing.Comment = in.Comment
		existing.UserName = user.Name
		existing.UpdatedAt = now
		if err := s.reviews.Update(&existing); err != nil {
			return models.Review{}, fmt.Errorf("reviews: update: %w", err)
		}
		return existing, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		review := models.Review{
			ID:        fmt.Sprintf("review-%d-%s", now.UnixMilli(), randBase36(9)),
			ProductID: productID,
			UserID:    user.ID,
			UserName:  user.Name,
			Rating:    in.Rating,
			Comment:   in.Comment,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.reviews.Add(&review); err != nil {
			return models.Review{}, fmt.Errorf("reviews: add: %w", err)
		}
		return review, nil

	default:
		return models.Review{}, fmt.Errorf("reviews: lookup: %w", err)
	}
}

// Delete removes a review, owners only.
func (s *ReviewService) Delete(userID, reviewID string) error {
	review, err := s.reviews.FindByID(reviewID)
	if err != nil {
		return fmt.Errorf("reviews: delete: %w", err)
	}
	if review.UserID != userID {
		return ErrNotReviewOwner
	}
	return s.reviews.Delete(reviewID)
}

// RatingFor assembles the product page aggregate.
func (s *ReviewService) RatingFor(productID string) (ProductRating, error) {
	avg, err := s.reviews.AverageRating(productID)
	if err != nil {
		return ProductRating{}, err
	}
	counts, err := s.reviews.RatingCounts(productID)
	if err != nil {
		return ProductRating{}, err
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	return ProductRating{Average: avg, Total: total, Counts: counts}, nil
}
