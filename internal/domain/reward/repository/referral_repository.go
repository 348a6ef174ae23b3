package repository

import (
	"deal_market/internal/domain/reward/model"

	"gorm.io/gorm"
)

// ReferralRepository 邀请记录仓库
type ReferralRepository interface {
	Create(referral *model.Referral) error
	GetByCode(code string) (*model.Referral, error)
	GetPendingByPhone(phone string) (*model.Referral, error)
	GetPendingByRefereeID(refereeID string) (*model.Referral, error)
	GetByReferrer(referrerID string, offset, limit int) ([]model.Referral, int64, error)
	Update(referral *model.Referral) error
}

type referralRepository struct {
	db *gorm.DB
}

func NewReferralRepository(db *gorm.DB) ReferralRepository {
	return &referralRepository{db: db}
}

func (r *referralRepository) Create(referral *model.Referral) error {
	return r.db.Create(referral).Error
}

func (r *referralRepository) GetByCode(code string) (*model.Referral, error) {
	var referral model.Referral
	if err := r.db.Where("code = ?", code).First(&referral).Error; err != nil {
		return nil, err
	}
	return &referral, nil
}

func (r *referralRepository) GetPendingByPhone(phone string) (*model.Referral, error) {
	var referral model.Referral
	err := r.db.Where("referee_phone = ? AND status = ?", phone, model.ReferralStatusPending).
		First(&referral).Error
	if err != nil {
		return nil, err
	}
	return &referral, nil
}

func (r *referralRepository) GetPendingByRefereeID(refereeID string) (*model.Referral, error) {
	var referral model.Referral
	err := r.db.Where("referee_id = ? AND status = ?", refereeID, model.ReferralStatusPending).
		First(&referral).Error
	if err != nil {
		return nil, err
	}
	return &referral, nil
}

func (r *referralRepository) GetByReferrer(referrerID string, offset, limit int) ([]model.Referral, int64, error) {
	var referrals []model.Referral
	var total int64

	q := r.db.Model(&model.Referral{}).Where("referrer_id = ?", referrerID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&referrals).Error; err != nil {
		return nil, 0, err
	}
	return referrals, total, nil
}

func (r *referralRepository) Update(referral *model.Referral) error {
	return r.db.Save(referral).Error
}
