package service

import (
	"errors"
	"fmt"
	"time"

	notifModel "deal_market/internal/domain/notification/model"
	notifService "deal_market/internal/domain/notification/service"
	"deal_market/internal/domain/review/model"
	"deal_market/internal/domain/review/repository"
	rewardModel "deal_market/internal/domain/reward/model"
	rewardService "deal_market/internal/domain/reward/service"
	"deal_market/internal/pkg/config"
	"deal_market/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrNoVisit        = errors.New("a completed visit is required before reviewing")
	ErrAlreadyExists  = errors.New("store already reviewed by this user")
	ErrNotReviewOwner = errors.New("review does not belong to this user")
)

// ReviewInput 评价入参
type ReviewInput struct {
	StoreID string `json:"storeId"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ReviewService 评价服务接口
type ReviewService interface {
	CreateReview(consumerID string, input ReviewInput) (*model.Review, error)
	UpdateReview(consumerID, reviewID string, input ReviewInput) (*model.Review, error)
	// Publish 审核通过后公开评价，首次发布奖励积分
	Publish(reviewID string) (*model.Review, error)
	GetReview(id string) (*model.Review, error)
	GetStoreReviews(storeID string, page, limit int) ([]model.Review, int64, error)
	GetMyReviews(consumerID string, page, limit int) ([]model.Review, int64, error)
	GetUnpublished(page, limit int) ([]model.Review, int64, error)
}

type reviewService struct {
	repo     repository.ReviewRepository
	rewards  rewardService.RewardService
	notifier notifService.NotificationService
	cfg      config.RewardConfig
}

// NewReviewService 创建评价服务
func NewReviewService(repo repository.ReviewRepository, rewards rewardService.RewardService, notifier notifService.NotificationService, cfg config.RewardConfig) ReviewService {
	return &reviewService{repo: repo, rewards: rewards, notifier: notifier, cfg: cfg}
}

// CreateReview 评价门店，须有已完成到店且同店只能评一次，新评价默认未发布
func (s *reviewService) CreateReview(consumerID string, input ReviewInput) (*model.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}

	ok, err := s.repo.HasCompletedVisit(consumerID, input.StoreID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoVisit
	}

	if _, err := s.repo.GetByConsumerAndStore(consumerID, input.StoreID); err == nil {
		return nil, ErrAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review := &model.Review{
		ConsumerID: consumerID,
		StoreID:    input.StoreID,
		Rating:     input.Rating,
		Comment:    input.Comment,
		Published:  false,
	}
	if err := s.repo.Create(review); err != nil {
		return nil, err
	}
	return review, nil
}

// UpdateReview 修改自己的评价，改动后回到未发布状态重新审核
func (s *reviewService) UpdateReview(consumerID, reviewID string, input ReviewInput) (*model.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}

	review, err := s.repo.GetByID(reviewID)
	if err != nil {
		return nil, err
	}
	if review.ConsumerID != consumerID {
		return nil, ErrNotReviewOwner
	}

	review.Rating = input.Rating
	review.Comment = input.Comment
	review.Published = false

	if err := s.repo.Update(review); err != nil {
		return nil, err
	}
	return review, nil
}

// Publish 发布评价，仅首次发布发积分
func (s *reviewService) Publish(reviewID string) (*model.Review, error) {
	review, err := s.repo.GetByID(reviewID)
	if err != nil {
		return nil, err
	}
	if review.Published {
		return review, nil
	}

	firstPublish := review.PublishedAt == nil

	now := time.Now()
	review.Published = true
	review.PublishedAt = &now
	if err := s.repo.Update(review); err != nil {
		return nil, err
	}

	if firstPublish {
		if err := s.rewards.Award(review.ConsumerID, s.cfg.ReviewPoints, rewardModel.ReasonReview, &review.ID); err != nil {
			logger.Error("Failed to award review points", zap.String("reviewID", review.ID), zap.Error(err))
		}
		body := fmt.Sprintf("Your review is now public, %d points earned", s.cfg.ReviewPoints)
		if err := s.notifier.Notify(review.ConsumerID, notifModel.TypeReview, "Review published", body, &review.ID); err != nil {
			logger.Warn("Failed to notify review publication", zap.String("reviewID", review.ID), zap.Error(err))
		}
	}

	return review, nil
}

func (s *reviewService) GetReview(id string) (*model.Review, error) {
	return s.repo.GetByID(id)
}

func (s *reviewService) GetStoreReviews(storeID string, page, limit int) ([]model.Review, int64, error) {
	offset, limit := pageOffset(page, limit)
	return s.repo.GetPublishedByStore(storeID, offset, limit)
}

func (s *reviewService) GetMyReviews(consumerID string, page, limit int) ([]model.Review, int64, error) {
	offset, limit := pageOffset(page, limit)
	return s.repo.GetByConsumer(consumerID, offset, limit)
}

func (s *reviewService) GetUnpublished(page, limit int) ([]model.Review, int64, error) {
	offset, limit := pageOffset(page, limit)
	return s.repo.GetUnpublished(offset, limit)
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
