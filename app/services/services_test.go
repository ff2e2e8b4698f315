package services_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/ameya/app/models"
	"github.com/shashiranjanraj/ameya/pkg/database"
	"github.com/shashiranjanraj/ameya/pkg/kv"
)

func setupDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(
		sqlite.Open(filepath.Join(t.TempDir(), "test.db")),
		&gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)},
	)
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Product{},
		&models.Order{},
		&models.CartEntry{},
		&models.Review{},
		&kv.Record{},
	))

	database.DB = db
}

func seedProduct(t *testing.T, id string, category models.Category, price, stock int) {
	t.Helper()
	require.NoError(t, database.DB.Create(&models.Product{
		ID:       id,
		Name:     "テスト商品 " + id,
		Price:    price,
		Category: category,
		Stock:    stock,
	}).Error)
}
