package repositories_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/ameya/app/models"
	"github.com/shashiranjanraj/ameya/app/repositories"
)

func newReview(id, productID, userID string, rating int) *models.Review {
	now := time.Now()
	return &models.Review{
		ID:        id,
		ProductID: productID,
		UserID:    userID,
		UserName:  "花子",
		Rating:    rating,
		Comment:   "とても美味しかったです。",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestReviewUniquePerUserAndProduct(t *testing.T) {
	setupDB(t)
	repo := repositories.NewReviewRepository()

	require.NoError(t, repo.Add(newReview("review-1", "gummy-001", "user-1", 5)))

	err := repo.Add(newReview("review-2", "gummy-001", "user-1", 3))
	assert.Error(t, err)

	// Same user on another product, and another user on the same
	// product, are both fine.
	assert.NoError(t, repo.Add(newReview("review-3", "candy-001", "user-1", 4)))
	assert.NoError(t, repo.Add(newReview("review-4", "gummy-001", "user-2", 2)))
}

func TestReviewAverageRoundsToOneDecimal(t *testing.T) {
	setupDB(t)
	repo := repositories.NewReviewRepository()

	// 5, 4, 4 → 4.333… → 4.3
	for i, rating := range []int{5, 4, 4} {
		r := newReview(fmt.Sprintf("review-%d", i), "gummy-001", fmt.Sprintf("user-%d", i), rating)
		require.NoError(t, repo.Add(r))
	}

	avg, err := repo.AverageRating("gummy-001")
	require.NoError(t, err)
	assert.Equal(t, 4.3, avg)
}

func TestReviewAverageEmptyProductIsZero(t *testing.T) {
	setupDB(t)
	repo := repositories.NewReviewRepository()

	avg, err := repo.AverageRating("gummy-001")
	require.NoError(t, err)
	assert.Zero(t, avg)
}

func TestReviewRatingCountsAlwaysHaveFiveBuckets(t *testing.T) {
	setupDB(t)
	repo := repositories.NewReviewRepository()

	require.NoError(t, repo.Add(newReview("review-1", "gummy-001", "user-1", 5)))
	require.NoError(t, repo.Add(newReview("review-2", "gummy-001", "user-2", 5)))
	require.NoError(t, repo.Add(newReview("review-3", "gummy-001", "user-3", 2)))

	counts, err := repo.RatingCounts("gummy-001")
	require.NoError(t, err)
	assert.Equal(t, map[int]int{1: 0, 2: 1, 3: 0, 4: 0, 5: 2}, counts)
}

func TestReviewFindByProductNewestFirst(t *testing.T) {
	setupDB(t)
	repo := repositories.NewReviewRepository()

	old := newReview("review-old", "gummy-001", "user-1", 4)
	old.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, repo.Add(old))
	require.NoError(t, repo.Add(newReview("review-new", "gummy-001", "user-2", 5)))

	reviews, err := repo.FindByProduct("gummy-001")
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "review-new", reviews[0].ID)
	assert.Equal(t, "review-old", reviews[1].ID)
}

func TestReviewDelete(t *testing.T) {
	setupDB(t)
	repo := repositories.NewReviewRepository()

	require.NoError(t, repo.Add(newReview("review-1", "gummy-001", "user-1", 4)))
	require.NoError(t, repo.Delete("review-1"))

	reviews, err := repo.FindByProduct("gummy-001")
	require.NoError(t, err)
	assert.Empty(t, reviews)
}
