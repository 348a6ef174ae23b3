package model

import (
	"time"

	baseModel "deal_market/pkg/model"
)

// 积分变动原因
const (
	ReasonVisit      = "visit"
	ReasonReview     = "review"
	ReasonReferral   = "referral"
	ReasonRedemption = "redemption"
	ReasonAdmin      = "admin"
)

// Reward 积分流水，带符号的积分变动
// 余额永远是流水求和，不单独存储
type Reward struct {
	baseModel.BaseModel
	UserID      string  `gorm:"type:uuid;index;not null" json:"userId"`
	Points      int64   `gorm:"not null" json:"points"` // 正数为获得，负数为扣减
	Reason      string  `gorm:"not null" json:"reason"`
	ReferenceID *string `gorm:"type:uuid" json:"referenceId,omitempty"` // 关联的到店/评价/兑换记录
}

// 兑换状态
const (
	RedemptionStatusPending   = "pending"
	RedemptionStatusClaimed   = "claimed"
	RedemptionStatusCancelled = "cancelled"
)

// Redemption 积分兑换，生成兑换码后由商家核销
type Redemption struct {
	baseModel.BaseModel
	UserID      string     `gorm:"type:uuid;index;not null" json:"userId"`
	Points      int64      `gorm:"not null" json:"points"`
	AmountCents int64      `gorm:"not null" json:"amountCents"` // 兑换金额（分）
	Code        string     `gorm:"uniqueIndex;not null" json:"code"`
	Status      string     `gorm:"default:'pending'" json:"status"`
	ClaimedAt   *time.Time `json:"claimedAt,omitempty"`
	ClaimedBy   *string    `gorm:"type:uuid" json:"claimedBy,omitempty"` // 核销的商家用户
}

// 邀请状态
const (
	ReferralStatusPending   = "pending"
	ReferralStatusCompleted = "completed"
	ReferralStatusCancelled = "cancelled"
)

// Referral 邀请记录，被邀请人首次完成到店后双方得奖励
type Referral struct {
	baseModel.BaseModel
	ReferrerID   string     `gorm:"type:uuid;index;not null" json:"referrerId"`
	RefereePhone string     `gorm:"index;not null" json:"refereePhone"`
	RefereeID    *string    `gorm:"type:uuid;index" json:"refereeId,omitempty"`
	Code         string     `gorm:"uniqueIndex;not null" json:"code"`
	Status       string     `gorm:"default:'pending'" json:"status"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}
