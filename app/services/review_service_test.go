package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/ameya/app/models"
	"github.com/shashiranjanraj/ameya/app/repositories"
	"github.com/shashiranjanraj/ameya/app/services"
)

func reviewFixture(t *testing.T) (*services.ReviewService, *repositories.ReviewRepository) {
	t.Helper()
	repo := repositories.NewReviewRepository()
	return services.NewReviewService(repo), repo
}

var taro = models.User{ID: "user-1", Name: "太郎", Email: "taro@example.com"}

func TestSubmitCreatesReview(t *testing.T) {
	setupDB(t)
	svc, repo := reviewFixture(t)

	review, err := svc.Submit(taro, "gummy-001", services.ReviewInput{Rating: 5, Comment: "最高です。"})
	require.NoError(t, err)
	assert.Equal(t, "太郎", review.UserName)

	reviews, err := repo.FindByProduct("gummy-001")
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
}

func TestSubmitSecondTimeUpdatesInPlace(t *testing.T) {
	setupDB(t)
	svc, repo := reviewFixture(t)

	first, err := svc.Submit(taro, "gummy-001", services.ReviewInput{Rating: 5, Comment: "最高です。"})
	require.NoError(t, err)

	second, err := svc.Submit(taro, "gummy-001", services.ReviewInput{Rating: 2, Comment: "やっぱり普通でした。"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, second.Rating)

	reviews, err := repo.FindByProduct("gummy-001")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "やっぱり普通でした。", reviews[0].Comment)
}

func TestDeleteRequiresOwner(t *testing.T) {
	setupDB(t)
	svc, repo := reviewFixture(t)

	review, err := svc.Submit(taro, "gummy-001", services.ReviewInput{Rating: 4, Comment: "良い。"})
	require.NoError(t, err)

	err = svc.Delete("user-2", review.ID)
	assert.ErrorIs(t, err, services.ErrNotReviewOwner)

	require.NoError(t, svc.Delete(taro.ID, review.ID))
	reviews, err := repo.FindByProduct("gummy-001")
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestRatingForAggregates(t *testing.T) {
	setupDB(t)
	svc, _ := reviewFixture(t)

	_, err := svc.Submit(taro, "gummy-001", services.ReviewInput{Rating: 5, Comment: "a"})
	require.NoError(t, err)
	hanako := models.User{ID: "user-2", Name: "花子"}
	_, err = svc.Submit(hanako, "gummy-001", services.ReviewInput{Rating: 4, Comment: "b"})
	require.NoError(t, err)

	rating, err := svc.RatingFor("gummy-001")
	require.NoError(t, err)
	assert.Equal(t, 4.5, rating.Average)
	assert.Equal(t, 2, rating.Total)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 1, 5: 1}, rating.Counts)
}
