package repositories

import (
	"time"

	"github.com/shashiranjanraj/ameya/app/models"
	"github.com/shashiranjanraj/ameya/pkg/cache"
	"github.com/shashiranjanraj/ameya/pkg/orm"
)

// catalogCacheKey caches the full unfiltered catalogue; every product
// write invalidates it.
const catalogCacheKey = "ameya:catalog:all"

// ProductRepository handles object-store operations for Product.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// All returns every product in insertion order.
func (r *ProductRepository) All() ([]models.Product, error) {
	var products []models.Product
	err := orm.DB().Model(&models.Product{}).Order("created_at").Get(&products)
	return products, err
}

// AllCached is All behind the shared read cache. Used by the public
// catalogue listing, where a short staleness window is acceptable.
func (r *ProductRepository) AllCached() ([]models.Product, error) {
	var products []models.Product
	err := orm.DB().Model(&models.Product{}).Order("created_at").
		Cache(catalogCacheKey, 5*time.Minute, &products)
	return products, err
}

// FindByID looks up a single product by key.
func (r *ProductRepository) FindByID(id string) (models.Product, error) {
	var product models.Product
	err := orm.DB().Model(&models.Product{}).Where("id = ?", id).First(&product)
	return product, err
}

// FindByCategory returns all products in a category (secondary index read).
func (r *ProductRepository) FindByCategory(c models.Category) ([]models.Product, error) {
	var products []models.Product
	err := orm.DB().Model(&models.Product{}).Where("category = ?", c).Get(&products)
	return products, err
}

// Add inserts a new product and fails if the key already exists.
func (r *ProductRepository) Add(p *models.Product) error {
	if err := orm.DB().Create(p); err != nil {
		return err
	}
	cache.Del(catalogCacheKey)
	return nil
}

// Update upserts the full product record.
func (r *ProductRepository) Update(p *models.Product) error {
	if err := orm.DB().Save(p); err != nil {
		return err
	}
	cache.Del(catalogCacheKey)
	return nil
}

// Delete removes a product by key. Reviews referencing it are left in
// place; readers treat the missing product explicitly (see app/state).
func (r *ProductRepository) Delete(id string) error {
	if err := orm.DB().Where("id = ?", id).Delete(&models.Product{}); err != nil {
		return err
	}
	cache.Del(catalogCacheKey)
	return nil
}
