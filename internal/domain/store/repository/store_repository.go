package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"deal_market/internal/domain/store/model"

	"gorm.io/gorm"
)

// StoreRepository 门店仓库
type StoreRepository interface {
	Create(store *model.PartnerStore) error
	GetByID(id string) (*model.PartnerStore, error)
	GetByOwner(ownerID string) (*model.PartnerStore, error)
	Search(category, keyword string, priceRating int, offset, limit int) ([]model.PartnerStore, int64, error)
	Update(store *model.PartnerStore) error

	IncrementView(storeID string, date time.Time) error
	IncrementVisit(storeID string, date time.Time) error
}

type storeRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) Create(store *model.PartnerStore) error {
	return r.db.Create(store).Error
}

func (r *storeRepository) GetByID(id string) (*model.PartnerStore, error) {
	var store model.PartnerStore
	if err := r.db.Where("id = ?", id).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) GetByOwner(ownerID string) (*model.PartnerStore, error) {
	var store model.PartnerStore
	if err := r.db.Where("owner_id = ?", ownerID).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// categoryJSON 生成 jsonb 包含查询的单元素数组字面量，分类含引号等字符时也合法
func categoryJSON(category string) string {
	b, _ := json.Marshal([]string{category})
	return string(b)
}

// Search 门店筛选：分类包含、名称模糊、价格档位
func (r *storeRepository) Search(category, keyword string, priceRating int, offset, limit int) ([]model.PartnerStore, int64, error) {
	var stores []model.PartnerStore
	var total int64

	q := r.db.Model(&model.PartnerStore{})
	if category != "" {
		// jsonb 数组包含查询
		q = q.Where("categories @> ?", categoryJSON(category))
	}
	if keyword != "" {
		q = q.Where("name ILIKE ?", "%"+keyword+"%")
	}
	if priceRating > 0 {
		q = q.Where("price_rating = ?", priceRating)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&stores).Error; err != nil {
		return nil, 0, err
	}
	return stores, total, nil
}

func (r *storeRepository) Update(store *model.PartnerStore) error {
	return r.db.Save(store).Error
}

// IncrementView 当日浏览计数 +1，按 (store_id, date) upsert
func (r *storeRepository) IncrementView(storeID string, date time.Time) error {
	return r.incrementStat(storeID, date, "views")
}

// IncrementVisit 当日到店计数 +1
func (r *storeRepository) IncrementVisit(storeID string, date time.Time) error {
	return r.incrementStat(storeID, date, "visits")
}

func (r *storeRepository) incrementStat(storeID string, date time.Time, column string) error {
	day := date.Format("2006-01-02")
	sql := fmt.Sprintf(`
		INSERT INTO partner_stats (id, store_id, date, %s, created_at, updated_at)
		VALUES (gen_random_uuid(), ?, ?, 1, now(), now())
		ON CONFLICT (store_id, date)
		DO UPDATE SET %s = partner_stats.%s + 1, updated_at = now()`,
		column, column, column)
	return r.db.Exec(sql, storeID, day).Error
}
