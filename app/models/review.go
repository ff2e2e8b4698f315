package models

import "time"

// Review is a customer product review. A user may review a product at most
// once; the composite unique index backs up the service-level check.
type Review struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	ProductID string    `gorm:"size:64;not null;index;uniqueIndex:uniq_review_owner" json:"productId"`
	UserID    string    `gorm:"size:64;not null;index;uniqueIndex:uniq_review_owner" json:"userId"`
	UserName  string    `gorm:"size:255" json:"userName"` // display-name snapshot
	Rating    int       `gorm:"not null;index" json:"rating"` // 1..5
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
