package service

import (
	"errors"
	"fmt"
	"time"

	dealRepo "deal_market/internal/domain/deal/repository"
	notifModel "deal_market/internal/domain/notification/model"
	notifService "deal_market/internal/domain/notification/service"
	rewardModel "deal_market/internal/domain/reward/model"
	rewardService "deal_market/internal/domain/reward/service"
	storeRepo "deal_market/internal/domain/store/repository"
	storeService "deal_market/internal/domain/store/service"
	"deal_market/internal/domain/visit/model"
	"deal_market/internal/domain/visit/repository"
	"deal_market/internal/pkg/config"
	"deal_market/pkg/logger"

	"go.uber.org/zap"
)

var (
	ErrVisitInPast     = errors.New("scheduled time must be in the future")
	ErrDealUnavailable = errors.New("deal is not available at the scheduled time")
	ErrDealWrongStore  = errors.New("deal does not belong to this store")
	ErrBadTransition   = errors.New("visit is not in a schedulable state")
	ErrNotVisitOwner   = errors.New("visit does not belong to this user")
)

// ScheduleInput 预约入参
type ScheduleInput struct {
	StoreID     string    `json:"storeId"`
	DealID      *string   `json:"dealId"`
	ScheduledAt time.Time `json:"scheduledAt"`
}

// VisitService 到店服务接口
type VisitService interface {
	Schedule(consumerID string, input ScheduleInput) (*model.Visit, error)
	Complete(partnerID, visitID string) (*model.Visit, error)
	Cancel(consumerID, visitID string) (*model.Visit, error)
	GetVisit(userID, visitID string) (*model.Visit, error)
	GetMyVisits(consumerID, status string, page, limit int) ([]model.Visit, int64, error)
	GetStoreVisits(partnerID, status string, page, limit int) ([]model.Visit, int64, error)
}

type visitService struct {
	repo      repository.VisitRepository
	stores    storeRepo.StoreRepository
	deals     dealRepo.DealRepository
	stats     storeService.StoreService
	rewards   rewardService.RewardService
	referrals rewardService.ReferralService
	notifier  notifService.NotificationService
	cfg       config.RewardConfig
}

// NewVisitService 创建到店服务
func NewVisitService(
	repo repository.VisitRepository,
	stores storeRepo.StoreRepository,
	deals dealRepo.DealRepository,
	stats storeService.StoreService,
	rewards rewardService.RewardService,
	referrals rewardService.ReferralService,
	notifier notifService.NotificationService,
	cfg config.RewardConfig,
) VisitService {
	return &visitService{
		repo:      repo,
		stores:    stores,
		deals:     deals,
		stats:     stats,
		rewards:   rewards,
		referrals: referrals,
		notifier:  notifier,
		cfg:       cfg,
	}
}

// Schedule 消费者预约到店，时间必须在未来，带优惠时优惠须在预约时间内生效
func (s *visitService) Schedule(consumerID string, input ScheduleInput) (*model.Visit, error) {
	if !input.ScheduledAt.After(time.Now()) {
		return nil, ErrVisitInPast
	}

	store, err := s.stores.GetByID(input.StoreID)
	if err != nil {
		return nil, err
	}

	if input.DealID != nil && *input.DealID != "" {
		deal, err := s.deals.GetByID(*input.DealID)
		if err != nil {
			return nil, err
		}
		if deal.StoreID != store.ID {
			return nil, ErrDealWrongStore
		}
		if !deal.Available(input.ScheduledAt) {
			return nil, ErrDealUnavailable
		}
	} else {
		input.DealID = nil
	}

	visit := &model.Visit{
		ConsumerID:  consumerID,
		StoreID:     input.StoreID,
		DealID:      input.DealID,
		ScheduledAt: input.ScheduledAt,
		Status:      model.StatusScheduled,
	}
	if err := s.repo.Create(visit); err != nil {
		return nil, err
	}
	return visit, nil
}

// Complete 商家核销到店，发积分、记统计、触发邀请结算
func (s *visitService) Complete(partnerID, visitID string) (*model.Visit, error) {
	visit, err := s.repo.GetByID(visitID)
	if err != nil {
		return nil, err
	}

	store, err := s.stores.GetByOwner(partnerID)
	if err != nil {
		return nil, err
	}
	if visit.StoreID != store.ID {
		return nil, ErrNotVisitOwner
	}
	if visit.Status != model.StatusScheduled {
		return nil, ErrBadTransition
	}

	now := time.Now()
	visit.Status = model.StatusCompleted
	visit.CompletedAt = &now
	if err := s.repo.Update(visit); err != nil {
		return nil, err
	}

	// 完成后的奖励和统计失败不回滚核销
	if err := s.rewards.Award(visit.ConsumerID, s.cfg.VisitPoints, rewardModel.ReasonVisit, &visit.ID); err != nil {
		logger.Error("Failed to award visit points", zap.String("visitID", visit.ID), zap.Error(err))
	}
	s.stats.RecordVisit(visit.StoreID)

	// 仅首次完成到店触发邀请积分结算；计数失败时仍尝试结算，
	// 待结算状态保证积分不会重复发放
	completed, err := s.repo.CountCompletedByConsumer(visit.ConsumerID)
	if err != nil {
		logger.Warn("Failed to count completed visits", zap.String("visitID", visit.ID), zap.Error(err))
	}
	if err != nil || completed == 1 {
		if err := s.referrals.CompleteForUser(visit.ConsumerID); err != nil {
			logger.Error("Failed to settle referral", zap.String("visitID", visit.ID), zap.Error(err))
		}
	}

	body := fmt.Sprintf("Your visit to %s is completed, %d points earned", store.Name, s.cfg.VisitPoints)
	if err := s.notifier.Notify(visit.ConsumerID, notifModel.TypeVisit, "Visit completed", body, &visit.ID); err != nil {
		logger.Warn("Failed to notify visit completion", zap.String("visitID", visit.ID), zap.Error(err))
	}

	return visit, nil
}

// Cancel 消费者取消预约，仅限未核销的预约
func (s *visitService) Cancel(consumerID, visitID string) (*model.Visit, error) {
	visit, err := s.repo.GetByID(visitID)
	if err != nil {
		return nil, err
	}
	if visit.ConsumerID != consumerID {
		return nil, ErrNotVisitOwner
	}
	if visit.Status != model.StatusScheduled {
		return nil, ErrBadTransition
	}

	visit.Status = model.StatusCancelled
	if err := s.repo.Update(visit); err != nil {
		return nil, err
	}
	return visit, nil
}

// GetVisit 预约详情，消费者本人或门店商家可见
func (s *visitService) GetVisit(userID, visitID string) (*model.Visit, error) {
	visit, err := s.repo.GetByID(visitID)
	if err != nil {
		return nil, err
	}
	if visit.ConsumerID == userID {
		return visit, nil
	}
	if store, err := s.stores.GetByOwner(userID); err == nil && store.ID == visit.StoreID {
		return visit, nil
	}
	return nil, ErrNotVisitOwner
}

func (s *visitService) GetMyVisits(consumerID, status string, page, limit int) ([]model.Visit, int64, error) {
	offset, limit := pageOffset(page, limit)
	return s.repo.GetByConsumer(consumerID, status, offset, limit)
}

// GetStoreVisits 商家查看自己门店的预约
func (s *visitService) GetStoreVisits(partnerID, status string, page, limit int) ([]model.Visit, int64, error) {
	store, err := s.stores.GetByOwner(partnerID)
	if err != nil {
		return nil, 0, err
	}
	offset, limit := pageOffset(page, limit)
	return s.repo.GetByStore(store.ID, status, offset, limit)
}

func pageOffset(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return (page - 1) * limit, limit
}
