package model

import (
	baseModel "deal_market/pkg/model"
)

// 通知类型
const (
	TypeVisit      = "visit"
	TypeReview     = "review"
	TypeReward     = "reward"
	TypeRedemption = "redemption"
	TypeReferral   = "referral"
	TypeSystem     = "system"
)

// Notification 站内通知
type Notification struct {
	baseModel.BaseModel
	UserID      string  `gorm:"type:uuid;index;not null" json:"userId"`
	Type        string  `gorm:"not null" json:"type"`
	Title       string  `gorm:"not null" json:"title"`
	Body        string  `json:"body"`
	ReferenceID *string `gorm:"type:uuid" json:"referenceId,omitempty"`
	Read        bool    `gorm:"default:false;index" json:"read"`
}
