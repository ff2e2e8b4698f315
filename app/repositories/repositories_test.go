package repositories_test

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

// setupDB points the global handle at a throwaway sqlite file with the
// full schema applied.
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

// databaseRawValue reads a kv record's stored bytes without decoding.
func databaseRawValue(key string, out *[]byte) error {
	var rec kv.Record
	if err := database.DB.Where("key = ?", key).First(&rec).Error; err != nil {
		return err
	}
	*out = rec.Value
	return nil
}

func seedProduct(t *testing.T, id string, price, stock int) models.Product {
	t.Helper()

	p := models.Product{
		ID:       id,
		Name:     "テスト商品 " + id,
		Price:    price,
		Category: models.CategoryGummy,
		Stock:    stock,
	}
	require.NoError(t, database.DB.Create(&p).Error)
	return p
}
