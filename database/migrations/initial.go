package migrations

import (
	"github.com/shashiranjanraj/ameya/app/models"
	"github.com/shashiranjanraj/ameya/pkg/kv"
	"github.com/shashiranjanraj/ameya/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260101000000_create_products_table", &CreateProductsTable{})
	migration.Register("20260101000001_create_orders_table", &CreateOrdersTable{})
	migration.Register("20260101000002_create_cart_entries_table", &CreateCartEntriesTable{})
	migration.Register("20260101000003_create_kv_records_table", &CreateKVRecordsTable{})
	migration.Register("20260201000000_create_reviews_table", &CreateReviewsTable{})
}

// -------- 0001: products --------

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products")
}

// -------- 0002: orders --------

type CreateOrdersTable struct{}

func (m *CreateOrdersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{})
}

func (m *CreateOrdersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("orders")
}

// -------- 0003: cart entries --------

type CreateCartEntriesTable struct{}

func (m *CreateCartEntriesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.CartEntry{})
}

func (m *CreateCartEntriesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("cart_entries")
}

// -------- 0004: kv records (session and account storage) --------

type CreateKVRecordsTable struct{}

func (m *CreateKVRecordsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&kv.Record{})
}

func (m *CreateKVRecordsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("kv_records")
}

// -------- 0005: reviews (second schema revision) --------

type CreateReviewsTable struct{}

func (m *CreateReviewsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Review{})
}

func (m *CreateReviewsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("reviews")
}
