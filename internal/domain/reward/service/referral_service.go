package service

import (
	"errors"
	"time"

	notifModel "deal_market/internal/domain/notification/model"
	notifService "deal_market/internal/domain/notification/service"
	"deal_market/internal/domain/reward/model"
	"deal_market/internal/domain/reward/repository"
	"deal_market/internal/pkg/config"
	"deal_market/pkg/logger"
	"deal_market/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrSelfReferral      = errors.New("cannot refer yourself")
	ErrReferralDuplicate = errors.New("phone already has a pending referral")
)

// 邀请码长度
const referralCodeLen = 8

// PhoneResolver 按用户 ID 查手机号，由 user 仓库适配
type PhoneResolver func(userID string) (string, error)

// ReferralService 邀请服务接口
// BindReferee 同时实现 user 模块的 ReferralBinder
type ReferralService interface {
	Invite(referrerID, refereePhone string) (*model.Referral, error)
	BindReferee(code string, refereeID string, refereePhone string) error
	// CompleteForUser 被邀请人首次完成到店后调用，双方各得固定积分
	CompleteForUser(refereeID string) error
	GetReferrals(referrerID string, page, limit int) ([]model.Referral, int64, error)
}

type referralService struct {
	repo     repository.ReferralRepository
	reward   RewardService
	notifier notifService.NotificationService // 可为 nil
	phoneOf  PhoneResolver
	cfg      config.RewardConfig
}

func NewReferralService(repo repository.ReferralRepository, reward RewardService, notifier notifService.NotificationService, phoneOf PhoneResolver, cfg config.RewardConfig) ReferralService {
	return &referralService{repo: repo, reward: reward, notifier: notifier, phoneOf: phoneOf, cfg: cfg}
}

// Invite 发起邀请，同一手机号只允许一条待完成邀请
func (s *referralService) Invite(referrerID, refereePhone string) (*model.Referral, error) {
	referrerPhone, err := s.phoneOf(referrerID)
	if err != nil {
		return nil, err
	}
	if refereePhone == referrerPhone {
		return nil, ErrSelfReferral
	}

	if _, err := s.repo.GetPendingByPhone(refereePhone); err == nil {
		return nil, ErrReferralDuplicate
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	code, err := utils.RandomCode(referralCodeLen)
	if err != nil {
		return nil, err
	}

	referral := &model.Referral{
		ReferrerID:   referrerID,
		RefereePhone: refereePhone,
		Code:         code,
		Status:       model.ReferralStatusPending,
	}
	if err := s.repo.Create(referral); err != nil {
		return nil, err
	}
	return referral, nil
}

// BindReferee 注册时按邀请码绑定被邀请人
// 手机号必须和邀请时填写的一致，防止邀请码被转发滥用
func (s *referralService) BindReferee(code string, refereeID string, refereePhone string) error {
	referral, err := s.repo.GetByCode(code)
	if err != nil {
		return err
	}

	if referral.Status != model.ReferralStatusPending {
		return errors.New("referral is not pending")
	}
	if referral.RefereePhone != refereePhone {
		return errors.New("referral phone mismatch")
	}
	if referral.ReferrerID == refereeID {
		return ErrSelfReferral
	}

	referral.RefereeID = &refereeID
	return s.repo.Update(referral)
}

// CompleteForUser 完成邀请并发放双方奖励
// 没有待完成邀请时直接返回 nil，调用方无需关心
func (s *referralService) CompleteForUser(refereeID string) error {
	referral, err := s.repo.GetPendingByRefereeID(refereeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	now := time.Now()
	referral.Status = model.ReferralStatusCompleted
	referral.CompletedAt = &now
	if err := s.repo.Update(referral); err != nil {
		return err
	}

	// 双方各得固定积分；单边失败只记日志，不回滚已完成状态
	points := s.cfg.ReferralPoints
	if err := s.reward.Award(referral.ReferrerID, points, model.ReasonReferral, &referral.ID); err != nil {
		logger.Error("Failed to award referrer", zap.String("referralID", referral.ID), zap.Error(err))
	}
	if err := s.reward.Award(refereeID, points, model.ReasonReferral, &referral.ID); err != nil {
		logger.Error("Failed to award referee", zap.String("referralID", referral.ID), zap.Error(err))
	}

	if s.notifier != nil {
		_ = s.notifier.Notify(referral.ReferrerID, notifModel.TypeReferral,
			"Referral completed", "Your invitation was completed. Points have been added.", &referral.ID)
	}

	return nil
}

func (s *referralService) GetReferrals(referrerID string, page, limit int) ([]model.Referral, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return s.repo.GetByReferrer(referrerID, (page-1)*limit, limit)
}
