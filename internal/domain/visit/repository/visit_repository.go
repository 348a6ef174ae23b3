package repository

import (
	"deal_market/internal/domain/visit/model"

	"gorm.io/gorm"
)

// VisitRepository 到店仓库
type VisitRepository interface {
	Create(visit *model.Visit) error
	GetByID(id string) (*model.Visit, error)
	GetByConsumer(consumerID string, status string, offset, limit int) ([]model.Visit, int64, error)
	GetByStore(storeID string, status string, offset, limit int) ([]model.Visit, int64, error)
	CountCompletedByConsumer(consumerID string) (int64, error)
	Update(visit *model.Visit) error
}

type visitRepository struct {
	db *gorm.DB
}

func NewVisitRepository(db *gorm.DB) VisitRepository {
	return &visitRepository{db: db}
}

func (r *visitRepository) Create(visit *model.Visit) error {
	return r.db.Create(visit).Error
}

func (r *visitRepository) GetByID(id string) (*model.Visit, error) {
	var visit model.Visit
	if err := r.db.Where("id = ?", id).First(&visit).Error; err != nil {
		return nil, err
	}
	return &visit, nil
}

func (r *visitRepository) GetByConsumer(consumerID string, status string, offset, limit int) ([]model.Visit, int64, error) {
	return r.list("consumer_id = ?", consumerID, status, offset, limit)
}

func (r *visitRepository) GetByStore(storeID string, status string, offset, limit int) ([]model.Visit, int64, error) {
	return r.list("store_id = ?", storeID, status, offset, limit)
}

func (r *visitRepository) list(ownerCond, ownerID, status string, offset, limit int) ([]model.Visit, int64, error) {
	var visits []model.Visit
	var total int64

	q := r.db.Model(&model.Visit{}).Where(ownerCond, ownerID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Order("scheduled_at DESC").Offset(offset).Limit(limit).Find(&visits).Error; err != nil {
		return nil, 0, err
	}
	return visits, total, nil
}

// CountCompletedByConsumer 统计消费者已完成到店数，用于判断首次到店
func (r *visitRepository) CountCompletedByConsumer(consumerID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Visit{}).
		Where("consumer_id = ? AND status = ?", consumerID, model.StatusCompleted).
		Count(&count).Error
	return count, err
}

func (r *visitRepository) Update(visit *model.Visit) error {
	return r.db.Save(visit).Error
}
