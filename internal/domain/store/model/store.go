package model

import (
	"encoding/json"
	"time"

	baseModel "deal_market/pkg/model"
)

// PartnerStore 商家门店，和商家用户一对一
type PartnerStore struct {
	baseModel.BaseModel
	OwnerID     string          `gorm:"type:uuid;uniqueIndex;not null" json:"ownerId"`
	Name        string          `gorm:"not null" json:"name"`
	Description string          `json:"description"`
	Categories  json.RawMessage `gorm:"type:jsonb" json:"categories"` // 分类数组
	Address     string          `json:"address"`
	Latitude    float64         `json:"latitude"`
	Longitude   float64         `json:"longitude"`
	PriceRating int             `gorm:"default:1" json:"priceRating"` // 1-4，价格档位
	Photos      json.RawMessage `gorm:"type:jsonb" json:"photos"`     // 图片 URL 数组
}

// PartnerStat 门店每日浏览/到店计数
type PartnerStat struct {
	baseModel.BaseModel
	StoreID string    `gorm:"type:uuid;index:idx_store_date,unique;not null" json:"storeId"`
	Date    time.Time `gorm:"type:date;index:idx_store_date,unique;not null" json:"date"`
	Views   int64     `gorm:"default:0" json:"views"`
	Visits  int64     `gorm:"default:0" json:"visits"`
}

// StatSummary 统计汇总，报表接口返回
type StatSummary struct {
	TotalViews    int64   `db:"total_views" json:"totalViews"`
	TotalVisits   int64   `db:"total_visits" json:"totalVisits"`
	ReviewCount   int64   `db:"review_count" json:"reviewCount"`
	AverageRating float64 `db:"average_rating" json:"averageRating"`
}

// DailyStat 按天统计，报表接口返回
type DailyStat struct {
	Date   time.Time `db:"date" json:"date"`
	Views  int64     `db:"views" json:"views"`
	Visits int64     `db:"visits" json:"visits"`
}
