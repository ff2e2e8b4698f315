package repositories_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/ameya/app/models"
	"github.com/shashiranjanraj/ameya/app/repositories"
	"github.com/shashiranjanraj/ameya/pkg/database"
)

func TestProductFindByID(t *testing.T) {
	setupDB(t)
	repo := repositories.NewProductRepository()
	seedProduct(t, "gummy-001", 280, 50)

	p, err := repo.FindByID("gummy-001")
	require.NoError(t, err)
	assert.Equal(t, 280, p.Price)

	_, err = repo.FindByID("nope")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestProductFindByCategory(t *testing.T) {
	setupDB(t)
	repo := repositories.NewProductRepository()
	seedProduct(t, "gummy-001", 280, 50)
	seedProduct(t, "gummy-002", 150, 30)

	candy := models.Product{ID: "candy-001", Name: "のど飴", Price: 250, Category: models.CategoryCandy, Stock: 60}
	require.NoError(t, database.DB.Create(&candy).Error)

	gummies, err := repo.FindByCategory(models.CategoryGummy)
	require.NoError(t, err)
	assert.Len(t, gummies, 2)

	candies, err := repo.FindByCategory(models.CategoryCandy)
	require.NoError(t, err)
	assert.Len(t, candies, 1)
}

func TestProductAddRejectsDuplicateKey(t *testing.T) {
	setupDB(t)
	repo := repositories.NewProductRepository()
	seedProduct(t, "gummy-001", 280, 50)

	err := repo.Add(&models.Product{ID: "gummy-001", Name: "dup", Price: 1, Category: models.CategoryGummy})
	assert.Error(t, err)
}

func TestProductDelete(t *testing.T) {
	setupDB(t)
	repo := repositories.NewProductRepository()
	seedProduct(t, "gummy-001", 280, 50)

	require.NoError(t, repo.Delete("gummy-001"))
	_, err := repo.FindByID("gummy-001")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
