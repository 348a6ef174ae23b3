package repository

import (
	"deal_market/internal/domain/reward/model"

	"gorm.io/gorm"
)

// RewardRepository 积分流水与兑换仓库
type RewardRepository interface {
	CreateReward(reward *model.Reward) error
	GetBalance(userID string) (int64, error)
	GetLedger(userID string, offset, limit int) ([]model.Reward, int64, error)

	// CreateRedemptionWithDebit 在同一事务内写入兑换记录和负积分流水
	CreateRedemptionWithDebit(redemption *model.Redemption, debit *model.Reward) error
	GetRedemptionByCode(code string) (*model.Redemption, error)
	GetRedemptions(userID string, offset, limit int) ([]model.Redemption, int64, error)
	UpdateRedemption(redemption *model.Redemption) error
}

type rewardRepository struct {
	db *gorm.DB
}

func NewRewardRepository(db *gorm.DB) RewardRepository {
	return &rewardRepository{db: db}
}

func (r *rewardRepository) CreateReward(reward *model.Reward) error {
	return r.db.Create(reward).Error
}

// GetBalance 余额 = 流水求和
func (r *rewardRepository) GetBalance(userID string) (int64, error) {
	var balance int64
	err := r.db.Model(&model.Reward{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&balance).Error
	return balance, err
}

func (r *rewardRepository) GetLedger(userID string, offset, limit int) ([]model.Reward, int64, error) {
	var rewards []model.Reward
	var total int64

	q := r.db.Model(&model.Reward{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&rewards).Error; err != nil {
		return nil, 0, err
	}
	return rewards, total, nil
}

// CreateRedemptionWithDebit 兑换记录和积分扣减必须同时落库
// 扣减流水的 ReferenceID 指向兑换记录
func (r *rewardRepository) CreateRedemptionWithDebit(redemption *model.Redemption, debit *model.Reward) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(redemption).Error; err != nil {
			return err
		}

		debit.ReferenceID = &redemption.ID
		if err := tx.Create(debit).Error; err != nil {
			return err
		}
		return nil
	})
}

func (r *rewardRepository) GetRedemptionByCode(code string) (*model.Redemption, error) {
	var redemption model.Redemption
	if err := r.db.Where("code = ?", code).First(&redemption).Error; err != nil {
		return nil, err
	}
	return &redemption, nil
}

func (r *rewardRepository) GetRedemptions(userID string, offset, limit int) ([]model.Redemption, int64, error) {
	var redemptions []model.Redemption
	var total int64

	q := r.db.Model(&model.Redemption{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&redemptions).Error; err != nil {
		return nil, 0, err
	}
	return redemptions, total, nil
}

func (r *rewardRepository) UpdateRedemption(redemption *model.Redemption) error {
	return r.db.Save(redemption).Error
}
