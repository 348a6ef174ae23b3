package repository

import (
	"time"

	"deal_market/internal/domain/deal/model"

	"gorm.io/gorm"
)

// DealRepository 优惠仓库
type DealRepository interface {
	Create(deal *model.Deal) error
	GetByID(id string) (*model.Deal, error)
	GetByStore(storeID string, offset, limit int) ([]model.Deal, int64, error)
	// CountActiveInCategory 统计门店分类下已激活且未过期的优惠数。
	// 有意不要求 start_date <= now：尚未开始的已激活优惠也占用名额，
	// 否则可以囤积未来窗口，到期时同时生效的优惠会超过上限
	CountActiveInCategory(storeID, category string, now time.Time) (int64, error)
	Browse(category string, now time.Time, offset, limit int) ([]model.Deal, int64, error)
	Update(deal *model.Deal) error
}

type dealRepository struct {
	db *gorm.DB
}

func NewDealRepository(db *gorm.DB) DealRepository {
	return &dealRepository{db: db}
}

func (r *dealRepository) Create(deal *model.Deal) error {
	return r.db.Create(deal).Error
}

func (r *dealRepository) GetByID(id string) (*model.Deal, error) {
	var deal model.Deal
	if err := r.db.Where("id = ?", id).First(&deal).Error; err != nil {
		return nil, err
	}
	return &deal, nil
}

func (r *dealRepository) GetByStore(storeID string, offset, limit int) ([]model.Deal, int64, error) {
	var deals []model.Deal
	var total int64

	q := r.db.Model(&model.Deal{}).Where("store_id = ?", storeID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&deals).Error; err != nil {
		return nil, 0, err
	}
	return deals, total, nil
}

// CountActiveInCategory 占用名额的口径比 Browse 宽：不过滤 start_date，
// 未来窗口的已激活优惠同样计入
func (r *dealRepository) CountActiveInCategory(storeID, category string, now time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Deal{}).
		Where("store_id = ? AND category = ? AND active = ? AND end_date >= ?",
			storeID, category, true, now).
		Count(&count).Error
	return count, err
}

// Browse 公开浏览：已激活且在有效期内
func (r *dealRepository) Browse(category string, now time.Time, offset, limit int) ([]model.Deal, int64, error) {
	var deals []model.Deal
	var total int64

	q := r.db.Model(&model.Deal{}).
		Where("active = ? AND start_date <= ? AND end_date >= ?", true, now, now)
	if category != "" {
		q = q.Where("category = ?", category)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&deals).Error; err != nil {
		return nil, 0, err
	}
	return deals, total, nil
}

func (r *dealRepository) Update(deal *model.Deal) error {
	return r.db.Save(deal).Error
}
