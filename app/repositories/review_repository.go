package repositories

import (
	"math"

	"github.com/shashiranjanraj/ameya/app/models"
	"github.com/shashiranjanraj/ameya/pkg/orm"
)

// ReviewRepository handles object-store operations for Review, plus the
// two derived aggregations the product page needs. The aggregations scan
// the product's reviews on every call; review volume in this shop never
// justifies incremental maintenance.
type ReviewRepository struct{}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{}
}

// All returns every review in insertion order.
func (r *ReviewRepository) All() ([]models.Review, error) {
	var reviews []models.Review
	err := orm.DB().Model(&models.Review{}).Order("created_at").Get(&reviews)
	return reviews, err
}

// FindByID looks up a review by key.
func (r *ReviewRepository) FindByID(id string) (models.Review, error) {
	var review models.Review
	err := orm.DB().Model(&models.Review{}).Where("id = ?", id).First(&review)
	return review, err
}

// FindByProduct returns all reviews for a product, newest first.
func (r *ReviewRepository) FindByProduct(productID string) ([]models.Review, error) {
	var reviews []models.Review
	err := orm.DB().Model(&models.Review{}).
		Where("product_id = ?", productID).
		Order("created_at desc").
		Get(&reviews)
	return reviews, err
}

// FindByUser returns all reviews written by a user.
func (r *ReviewRepository) FindByUser(userID string) ([]models.Review, error) {
	var reviews []models.Review
	err := orm.DB().Model(&models.Review{}).Where("user_id = ?", userID).Get(&reviews)
	return reviews, err
}

// FindByOwner looks up the single review a user wrote for a product.
func (r *ReviewRepository) FindByOwner(userID, productID string) (models.Review, error) {
	var review models.Review
	err := orm.DB().Model(&models.Review{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&review)
	return review, err
}

// Add inserts a new review. The unique (user, product) index rejects a
// second review by the same user for the same product.
func (r *ReviewRepository) Add(review *models.Review) error {
	return orm.DB().Create(review)
}

// Update upserts the full review record.
func (r *ReviewRepository) Update(review *models.Review) error {
	return orm.DB().Save(review)
}

// Delete removes a review by key.
func (r *ReviewRepository) Delete(id string) error {
	return orm.DB().Where("id = ?", id).Delete(&models.Review{})
}

// AverageRating returns the product's mean rating rounded to one decimal
// place, or 0 when the product has no reviews.
func (r *ReviewRepository) AverageRating(productID string) (float64, error) {
	reviews, err := r.FindByProduct(productID)
	if err != nil {
		return 0, err
	}
	if len(reviews) == 0 {
		return 0, nil
	}

	total := 0
	for _, review := range reviews {
		total += review.Rating
	}
	return math.Round(float64(total)/float64(len(reviews))*10) / 10, nil
}

// RatingCounts buckets the product's reviews by integer rating 1..5.
// All five buckets are always present, even when empty.
func (r *ReviewRepository) RatingCounts(productID string) (map[int]int, error) {
	reviews, err := r.FindByProduct(productID)
	if err != nil {
		return nil, err
	}

	counts := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	for _, review := range reviews {
		if review.Rating >= 1 && review.Rating <= 5 {
			counts[review.Rating]++
		}
	}
	return counts, nil
}
