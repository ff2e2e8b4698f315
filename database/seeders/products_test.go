package seeders_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/ameya/app/models"
	"github.com/shashiranjanraj/ameya/database/seeders"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(
		sqlite.Open(filepath.Join(t.TempDir(), "test.db")),
		&gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)},
	)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}))
	return db
}

func TestSeedProductsInsertsCatalog(t *testing.T) {
	db := setupDB(t)

	require.NoError(t, seeders.SeedProducts(db))

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.EqualValues(t, 10, count)

	var p models.Product
	require.NoError(t, db.First(&p, "id = ?", "gummy-001").Error)
	assert.Equal(t, "フルーツグミミックス", p.Name)
	assert.Equal(t, 280, p.Price)
	assert.Equal(t, models.CategoryGummy, p.Category)
	assert.Equal(t, 50, p.Stock)
}

func TestSeedProductsIsIdempotent(t *testing.T) {
	db := setupDB(t)

	require.NoError(t, seeders.SeedProducts(db))
	require.NoError(t, seeders.SeedProducts(db))

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.EqualValues(t, 10, count)
}

func TestSeedProductsSkipsNonEmptyTable(t *testing.T) {
	db := setupDB(t)

	custom := models.Product{ID: "custom-1", Name: "自家製", Price: 500, Category: models.CategoryCandy, Stock: 1}
	require.NoError(t, db.Create(&custom).Error)

	require.NoError(t, seeders.SeedProducts(db))

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
