package service

import (
	"errors"
	"fmt"
	"time"

	notifModel "deal_market/internal/domain/notification/model"
	notifService "deal_market/internal/domain/notification/service"
	"deal_market/internal/domain/reward/model"
	"deal_market/internal/domain/reward/repository"
	"deal_market/internal/pkg/config"
	"deal_market/pkg/metrics"
	"deal_market/pkg/utils"
)

var (
	ErrRedeemOutOfRange   = errors.New("redeem amount out of allowed range")
	ErrInsufficientPoints = errors.New("insufficient points balance")
	ErrRedemptionState    = errors.New("redemption is not pending")
)

// 兑换码长度
const redemptionCodeLen = 8

// RewardService 积分服务接口
type RewardService interface {
	// Award 记一笔积分流水，amount 可为负
	Award(userID string, points int64, reason string, referenceID *string) error
	GetBalance(userID string) (int64, error)
	GetLedger(userID string, page, limit int) ([]model.Reward, int64, error)

	Redeem(userID string, points int64) (*model.Redemption, error)
	ClaimRedemption(code string, partnerID string) (*model.Redemption, error)
	GetRedemptions(userID string, page, limit int) ([]model.Redemption, int64, error)
}

type rewardService struct {
	repo     repository.RewardRepository
	notifier notifService.NotificationService // 可为 nil
	cfg      config.RewardConfig
}

// NewRewardService 创建积分服务
func NewRewardService(repo repository.RewardRepository, notifier notifService.NotificationService, cfg config.RewardConfig) RewardService {
	return &rewardService{repo: repo, notifier: notifier, cfg: cfg}
}

// Award 记流水，余额永远由流水求和得出
func (s *rewardService) Award(userID string, points int64, reason string, referenceID *string) error {
	reward := &model.Reward{
		UserID:      userID,
		Points:      points,
		Reason:      reason,
		ReferenceID: referenceID,
	}
	if err := s.repo.CreateReward(reward); err != nil {
		return err
	}

	if points > 0 {
		metrics.Default.PointsAwardedTotal.WithLabelValues(reason).Add(float64(points))
	}
	return nil
}

func (s *rewardService) GetBalance(userID string) (int64, error) {
	return s.repo.GetBalance(userID)
}

func (s *rewardService) GetLedger(userID string, page, limit int) ([]model.Reward, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return s.repo.GetLedger(userID, (page-1)*limit, limit)
}

// Redeem 积分兑换
// 规则: redeem_min <= points <= redeem_max 且 points <= 余额
// 兑换记录和扣减流水在同一事务写入
func (s *rewardService) Redeem(userID string, points int64) (*model.Redemption, error) {
	if points < s.cfg.RedeemMin || points > s.cfg.RedeemMax {
		metrics.Default.RedemptionsTotal.WithLabelValues("rejected").Inc()
		return nil, ErrRedeemOutOfRange
	}

	balance, err := s.repo.GetBalance(userID)
	if err != nil {
		return nil, err
	}
	if points > balance {
		metrics.Default.RedemptionsTotal.WithLabelValues("rejected").Inc()
		return nil, ErrInsufficientPoints
	}

	code, err := utils.RandomCode(redemptionCodeLen)
	if err != nil {
		return nil, err
	}

	redemption := &model.Redemption{
		UserID:      userID,
		Points:      points,
		AmountCents: points, // 1 积分 = 1 分钱
		Code:        code,
		Status:      model.RedemptionStatusPending,
	}
	debit := &model.Reward{
		UserID: userID,
		Points: -points,
		Reason: model.ReasonRedemption,
	}

	if err := s.repo.CreateRedemptionWithDebit(redemption, debit); err != nil {
		return nil, err
	}
	metrics.Default.RedemptionsTotal.WithLabelValues("created").Inc()

	if s.notifier != nil {
		body := fmt.Sprintf("You redeemed %d points. Show code %s in store to claim.", points, code)
		_ = s.notifier.Notify(userID, notifModel.TypeRedemption, "Redemption created", body, &redemption.ID)
	}

	return redemption, nil
}

// ClaimRedemption 商家核销兑换码
func (s *rewardService) ClaimRedemption(code string, partnerID string) (*model.Redemption, error) {
	redemption, err := s.repo.GetRedemptionByCode(code)
	if err != nil {
		return nil, err
	}

	if redemption.Status != model.RedemptionStatusPending {
		return nil, ErrRedemptionState
	}

	now := time.Now()
	redemption.Status = model.RedemptionStatusClaimed
	redemption.ClaimedAt = &now
	redemption.ClaimedBy = &partnerID

	if err := s.repo.UpdateRedemption(redemption); err != nil {
		return nil, err
	}
	metrics.Default.RedemptionsTotal.WithLabelValues("claimed").Inc()

	if s.notifier != nil {
		_ = s.notifier.Notify(redemption.UserID, notifModel.TypeRedemption,
			"Redemption claimed", "Your redemption code has been claimed.", &redemption.ID)
	}

	return redemption, nil
}

func (s *rewardService) GetRedemptions(userID string, page, limit int) ([]model.Redemption, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return s.repo.GetRedemptions(userID, (page-1)*limit, limit)
}
