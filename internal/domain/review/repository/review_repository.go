package repository

import (
	"deal_market/internal/domain/review/model"
	visitModel "deal_market/internal/domain/visit/model"

	"gorm.io/gorm"
)

// ReviewRepository 评价仓库
type ReviewRepository interface {
	Create(review *model.Review) error
	GetByID(id string) (*model.Review, error)
	GetByConsumerAndStore(consumerID, storeID string) (*model.Review, error)
	GetPublishedByStore(storeID string, offset, limit int) ([]model.Review, int64, error)
	GetByConsumer(consumerID string, offset, limit int) ([]model.Review, int64, error)
	GetUnpublished(offset, limit int) ([]model.Review, int64, error)
	Update(review *model.Review) error
	// HasCompletedVisit 消费者在该门店是否有已完成的到店记录
	HasCompletedVisit(consumerID, storeID string) (bool, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *model.Review) error {
	return r.db.Create(review).Error
}

func (r *reviewRepository) GetByID(id string) (*model.Review, error) {
	var review model.Review
	if err := r.db.Where("id = ?", id).First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) GetByConsumerAndStore(consumerID, storeID string) (*model.Review, error) {
	var review model.Review
	if err := r.db.Where("consumer_id = ? AND store_id = ?", consumerID, storeID).First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// GetPublishedByStore 门店公开评价列表
func (r *reviewRepository) GetPublishedByStore(storeID string, offset, limit int) ([]model.Review, int64, error) {
	return r.list(r.db.Model(&model.Review{}).Where("store_id = ? AND published = ?", storeID, true), offset, limit)
}

func (r *reviewRepository) GetByConsumer(consumerID string, offset, limit int) ([]model.Review, int64, error) {
	return r.list(r.db.Model(&model.Review{}).Where("consumer_id = ?", consumerID), offset, limit)
}

// GetUnpublished 待审核评价，管理端用
func (r *reviewRepository) GetUnpublished(offset, limit int) ([]model.Review, int64, error) {
	return r.list(r.db.Model(&model.Review{}).Where("published = ?", false), offset, limit)
}

func (r *reviewRepository) list(q *gorm.DB, offset, limit int) ([]model.Review, int64, error) {
	var reviews []model.Review
	var total int64

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&reviews).Error; err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (r *reviewRepository) Update(review *model.Review) error {
	return r.db.Save(review).Error
}

func (r *reviewRepository) HasCompletedVisit(consumerID, storeID string) (bool, error) {
	var count int64
	err := r.db.Model(&visitModel.Visit{}).
		Where("consumer_id = ? AND store_id = ? AND status = ?", consumerID, storeID, visitModel.StatusCompleted).
		Count(&count).Error
	return count > 0, err
}
