package model

import (
	"time"

	baseModel "deal_market/pkg/model"
)

// 到店状态
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Visit 到店预约
type Visit struct {
	baseModel.BaseModel
	ConsumerID  string     `gorm:"type:uuid;not null;index" json:"consumerId"`
	StoreID     string     `gorm:"type:uuid;not null;index" json:"storeId"`
	DealID      *string    `gorm:"type:uuid;index" json:"dealId,omitempty"`
	ScheduledAt time.Time  `gorm:"not null" json:"scheduledAt"`
	Status      string     `gorm:"type:varchar(16);not null;default:'scheduled';index" json:"status"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}
