package seeders

import (
	"fmt"
	"time"

	"github.com/shashiranjanraj/ameya/app/models"
	"gorm.io/gorm"
)

func init() {
	Register("products", SeedProducts)
}

// SeedProducts inserts the sample catalog. It is a no-op when the
// products table already has rows, so it is safe to run on every boot.
func SeedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("seeders: count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	products := []models.Product{
		{
			ID:          "gummy-001",
			Name:        "フルーツグミミックス",
			Description: "いちご、ぶどう、オレンジの3種類の味が楽しめるミックスグミです。",
			Price:       280,
			Category:    models.CategoryGummy,
			ImageURL:    "/images/gummy-001.jpg",
			Stock:       50,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "gummy-002",
			Name:        "コーラグミ",
			Description: "懐かしいコーラ味のグミ。しゅわしゅわ食感がくせになります。",
			Price:       150,
			Category:    models.CategoryGummy,
			ImageURL:    "/images/gummy-002.jpg",
			Stock:       30,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "gummy-003",
			Name:        "ハリボー ゴールドベア",
			Description: "ドイツ生まれの定番クマ型グミ。フルーツ5種の味わい。",
			Price:       320,
			Category:    models.CategoryGummy,
			ImageURL:    "/images/gummy-003.jpg",
			Stock:       25,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "gummy-004",
			Name:        "ソーダグミ",
			Description: "ラムネ風味の爽やかなソーダグミ。夏にぴったり。",
			Price:       180,
			Category:    models.CategoryGummy,
			ImageURL:    "/images/gummy-004.jpg",
			Stock:       40,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "candy-001",
			Name:        "いちごミルクキャンディ",
			Description: "いちごとミルクの優しい甘さが広がるキャンディです。",
			Price:       200,
			Category:    models.CategoryCandy,
			ImageURL:    "/images/candy-001.jpg",
			Stock:       35,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "candy-002",
			Name:        "のど飴 ハニーレモン",
			Description: "はちみつとレモンの潤いのど飴。乾燥する季節に。",
			Price:       250,
			Category:    models.CategoryCandy,
			ImageURL:    "/images/candy-002.jpg",
			Stock:       60,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "candy-003",
			Name:        "ミントキャンディ",
			Description: "すっきり爽快なミント味。気分転換におすすめです。",
			Price:       180,
			Category:    models.CategoryCandy,
			ImageURL:    "/images/candy-003.jpg",
			Stock:       45,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "candy-004",
			Name:        "チョコレートキャンディ",
			Description: "外はカリッと中はとろけるチョコレートキャンディ。",
			Price:       220,
			Category:    models.CategoryCandy,
			ImageURL:    "/images/candy-004.jpg",
			Stock:       30,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "gummy-005",
			Name:        "ピーチグミ",
			Description: "ジューシーな白桃果汁を使った贅沢グミです。",
			Price:       190,
			Category:    models.CategoryGummy,
			ImageURL:    "/images/gummy-005.jpg",
			Stock:       20,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		{
			ID:          "candy-005",
			Name:        "キャラメルキャンディ",
			Description: "香ばしいキャラメルの風味たっぷり。昔ながらの味わい。",
			Price:       240,
			Category:    models.CategoryCandy,
			ImageURL:    "/images/candy-005.jpg",
			Stock:       25,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}

	if err := db.Create(&products).Error; err != nil {
		return fmt.Errorf("seeders: insert products: %w", err)
	}
	return nil
}
