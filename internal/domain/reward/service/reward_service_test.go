package service

import (
	"testing"

	notifModel "deal_market/internal/domain/notification/model"
	"deal_market/internal/domain/reward/model"
	"deal_market/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockRewardRepository is a mock of RewardRepository
type MockRewardRepository struct {
	mock.Mock
}

func (m *MockRewardRepository) CreateReward(reward *model.Reward) error {
	args := m.Called(reward)
	return args.Error(0)
}

func (m *MockRewardRepository) GetBalance(userID string) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRewardRepository) GetLedger(userID string, offset, limit int) ([]model.Reward, int64, error) {
	args := m.Called(userID, offset, limit)
	return args.Get(0).([]model.Reward), args.Get(1).(int64), args.Error(2)
}

func (m *MockRewardRepository) CreateRedemptionWithDebit(redemption *model.Redemption, debit *model.Reward) error {
	args := m.Called(redemption, debit)
	return args.Error(0)
}

func (m *MockRewardRepository) GetRedemptionByCode(code string) (*model.Redemption, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Redemption), args.Error(1)
}

func (m *MockRewardRepository) GetRedemptions(userID string, offset, limit int) ([]model.Redemption, int64, error) {
	args := m.Called(userID, offset, limit)
	return args.Get(0).([]model.Redemption), args.Get(1).(int64), args.Error(2)
}

func (m *MockRewardRepository) UpdateRedemption(redemption *model.Redemption) error {
	args := m.Called(redemption)
	return args.Error(0)
}

// MockNotificationService is a mock of NotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Notify(userID, notifType, title, body string, referenceID *string) error {
	args := m.Called(userID, notifType, title, body, referenceID)
	return args.Error(0)
}

func (m *MockNotificationService) GetNotifications(userID string, page, limit int) ([]notifModel.Notification, int64, error) {
	args := m.Called(userID, page, limit)
	return args.Get(0).([]notifModel.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationService) CountUnread(userID string) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationService) MarkRead(userID, id string) error {
	args := m.Called(userID, id)
	return args.Error(0)
}

func (m *MockNotificationService) MarkAllRead(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func testRewardConfig() config.RewardConfig {
	return config.RewardConfig{
		VisitPoints:    50,
		ReviewPoints:   20,
		ReferralPoints: 100,
		RedeemMin:      500,
		RedeemMax:      5000,
	}
}

func TestRedeem(t *testing.T) {
	t.Run("Below minimum rejected", func(t *testing.T) {
		mockRepo := new(MockRewardRepository)
		service := NewRewardService(mockRepo, nil, testRewardConfig())

		_, err := service.Redeem("user-1", 499)

		assert.ErrorIs(t, err, ErrRedeemOutOfRange)
		mockRepo.AssertNotCalled(t, "GetBalance", "user-1")
	})

	t.Run("Above maximum rejected", func(t *testing.T) {
		mockRepo := new(MockRewardRepository)
		service := NewRewardService(mockRepo, nil, testRewardConfig())

		_, err := service.Redeem("user-1", 5001)

		assert.ErrorIs(t, err, ErrRedeemOutOfRange)
	})

	t.Run("More than balance rejected", func(t *testing.T) {
		mockRepo := new(MockRewardRepository)
		service := NewRewardService(mockRepo, nil, testRewardConfig())

		mockRepo.On("GetBalance", "user-1").Return(int64(600), nil)

		_, err := service.Redeem("user-1", 1000)

		assert.ErrorIs(t, err, ErrInsufficientPoints)
		mockRepo.AssertNotCalled(t, "CreateRedemptionWithDebit", mock.Anything, mock.Anything)
	})

	t.Run("Success creates pending redemption with debit", func(t *testing.T) {
		mockRepo := new(MockRewardRepository)
		mockNotifier := new(MockNotificationService)
		service := NewRewardService(mockRepo, mockNotifier, testRewardConfig())

		mockRepo.On("GetBalance", "user-1").Return(int64(2000), nil)
		mockRepo.On("CreateRedemptionWithDebit",
			mock.AnythingOfType("*model.Redemption"), mock.AnythingOfType("*model.Reward")).Return(nil)
		mockNotifier.On("Notify", "user-1", notifModel.TypeRedemption,
			mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.Anything).Return(nil)

		redemption, err := service.Redeem("user-1", 1000)

		assert.NoError(t, err)
		assert.Equal(t, model.RedemptionStatusPending, redemption.Status)
		assert.Equal(t, int64(1000), redemption.Points)
		assert.Equal(t, int64(1000), redemption.AmountCents)
		assert.Len(t, redemption.Code, 8)

		debit := mockRepo.Calls[1].Arguments.Get(1).(*model.Reward)
		assert.Equal(t, int64(-1000), debit.Points)
		assert.Equal(t, model.ReasonRedemption, debit.Reason)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Exact balance can be redeemed", func(t *testing.T) {
		mockRepo := new(MockRewardRepository)
		service := NewRewardService(mockRepo, nil, testRewardConfig())

		mockRepo.On("GetBalance", "user-1").Return(int64(500), nil)
		mockRepo.On("CreateRedemptionWithDebit",
			mock.AnythingOfType("*model.Redemption"), mock.AnythingOfType("*model.Reward")).Return(nil)

		redemption, err := service.Redeem("user-1", 500)

		assert.NoError(t, err)
		assert.Equal(t, int64(500), redemption.Points)
	})
}

func TestClaimRedemption(t *testing.T) {
	t.Run("Pending redemption is claimed", func(t *testing.T) {
		mockRepo := new(MockRewardRepository)
		mockNotifier := new(MockNotificationService)
		service := NewRewardService(mockRepo, mockNotifier, testRewardConfig())

		redemption := &model.Redemption{
			UserID: "user-1",
			Points: 1000,
			Code:   "ABCD2345",
			Status: model.RedemptionStatusPending,
		}

		mockRepo.On("GetRedemptionByCode", "ABCD2345").Return(redemption, nil)
		mockRepo.On("UpdateRedemption", redemption).Return(nil)
		mockNotifier.On("Notify", "user-1", notifModel.TypeRedemption,
			mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.Anything).Return(nil)

		claimed, err := service.ClaimRedemption("ABCD2345", "partner-1")

		assert.NoError(t, err)
		assert.Equal(t, model.RedemptionStatusClaimed, claimed.Status)
		assert.NotNil(t, claimed.ClaimedAt)
		assert.Equal(t, "partner-1", *claimed.ClaimedBy)
	})

	t.Run("Claimed redemption cannot be claimed again", func(t *testing.T) {
		mockRepo := new(MockRewardRepository)
		service := NewRewardService(mockRepo, nil, testRewardConfig())

		redemption := &model.Redemption{
			UserID: "user-1",
			Code:   "ABCD2345",
			Status: model.RedemptionStatusClaimed,
		}

		mockRepo.On("GetRedemptionByCode", "ABCD2345").Return(redemption, nil)

		_, err := service.ClaimRedemption("ABCD2345", "partner-2")

		assert.ErrorIs(t, err, ErrRedemptionState)
		mockRepo.AssertNotCalled(t, "UpdateRedemption", redemption)
	})

	t.Run("Unknown code returns not found", func(t *testing.T) {
		mockRepo := new(MockRewardRepository)
		service := NewRewardService(mockRepo, nil, testRewardConfig())

		mockRepo.On("GetRedemptionByCode", "NOPE").Return(nil, gorm.ErrRecordNotFound)

		_, err := service.ClaimRedemption("NOPE", "partner-1")

		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestAward(t *testing.T) {
	mockRepo := new(MockRewardRepository)
	service := NewRewardService(mockRepo, nil, testRewardConfig())

	refID := "visit-1"
	mockRepo.On("CreateReward", mock.AnythingOfType("*model.Reward")).Return(nil)

	err := service.Award("user-1", 50, model.ReasonVisit, &refID)

	assert.NoError(t, err)
	reward := mockRepo.Calls[0].Arguments.Get(0).(*model.Reward)
	assert.Equal(t, int64(50), reward.Points)
	assert.Equal(t, model.ReasonVisit, reward.Reason)
	assert.Equal(t, &refID, reward.ReferenceID)
}
