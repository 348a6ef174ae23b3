package model

import (
	"time"

	baseModel "deal_market/pkg/model"
)

// 同一门店同一分类下最多同时生效的优惠数
const MaxActivePerCategory = 3

// Deal 商家限时优惠
type Deal struct {
	baseModel.BaseModel
	StoreID         string    `gorm:"type:uuid;index;not null" json:"storeId"`
	Title           string    `gorm:"not null" json:"title"`
	Description     string    `json:"description"`
	Category        string    `gorm:"index;not null" json:"category"`
	DiscountPercent int       `gorm:"not null" json:"discountPercent"` // 1-100
	StartDate       time.Time `gorm:"not null" json:"startDate"`
	EndDate         time.Time `gorm:"not null" json:"endDate"`
	Active          bool      `gorm:"default:true;index" json:"active"`
}

// InWindow 是否在有效期内
func (d *Deal) InWindow(now time.Time) bool {
	return !now.Before(d.StartDate) && !now.After(d.EndDate)
}

// Available 是否可用：已激活且在有效期内
func (d *Deal) Available(now time.Time) bool {
	return d.Active && d.InWindow(now)
}
