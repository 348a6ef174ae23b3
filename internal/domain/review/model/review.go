package model

import (
	"time"

	baseModel "deal_market/pkg/model"
)

// Review 消费者评价，发布前不对外可见
type Review struct {
	baseModel.BaseModel
	ConsumerID  string     `gorm:"type:uuid;not null;index:idx_consumer_store,unique" json:"consumerId"`
	StoreID     string     `gorm:"type:uuid;not null;index:idx_consumer_store,unique;index" json:"storeId"`
	Rating      int        `gorm:"not null" json:"rating"` // 1-5
	Comment     string     `gorm:"type:text" json:"comment"`
	Published   bool       `gorm:"not null;default:false;index" json:"published"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}
