// Package kv provides durable key-value records, the storefront's
// stand-in for browser localStorage. Each record is one row addressed by
// a fixed string key holding a JSON-serialised value.
//
// Usage:
//
//	kv.Set("ameya:auth:session", user)
//	var u models.User
//	ok, err := kv.Get("ameya:auth:session", &u)
package kv

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shashiranjanraj/ameya/pkg/database"
	"gorm.io/gorm"
)

// Record is the backing row. It shares the object-store database but is
// its own flat namespace, like localStorage next to IndexedDB.
type Record struct {
	Key   string `gorm:"primaryKey;size:128"`
	Value []byte `gorm:"type:blob"`
}

func (Record) TableName() string { return "kv_records" }

// Get unmarshals the record stored under key into dest.
// Returns false with a nil error when the key does not exist.
func Get(key string, dest interface{}) (bool, error) {
	var rec Record
	err := database.DB.Where("key = ?", key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("kv: get %q: %w", key, err)
	}

	if err := json.Unmarshal(rec.Value, dest); err != nil {
		return false, fmt.Errorf("kv: decode %q: %w", key, err)
	}
	return true, nil
}

// Set stores value under key, overwriting any previous record.
func Set(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv: encode %q: %w", key, err)
	}
	if err := database.DB.Save(&Record{Key: key, Value: data}).Error; err != nil {
		return fmt.Errorf("kv: set %q: %w", key, err)
	}
	return nil
}

// Del removes the record under key. Deleting a missing key is a no-op.
func Del(key string) error {
	if err := database.DB.Where("key = ?", key).Delete(&Record{}).Error; err != nil {
		return fmt.Errorf("kv: del %q: %w", key, err)
	}
	return nil
}
