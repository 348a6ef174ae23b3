package service

import (
	"testing"
	"time"

	dealModel "deal_market/internal/domain/deal/model"
	notifModel "deal_market/internal/domain/notification/model"
	rewardModel "deal_market/internal/domain/reward/model"
	storeModel "deal_market/internal/domain/store/model"
	storeService "deal_market/internal/domain/store/service"
	"deal_market/internal/domain/visit/model"
	"deal_market/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockVisitRepository is a mock of VisitRepository
type MockVisitRepository struct {
	mock.Mock
}

func (m *MockVisitRepository) Create(visit *model.Visit) error {
	args := m.Called(visit)
	return args.Error(0)
}

func (m *MockVisitRepository) GetByID(id string) (*model.Visit, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Visit), args.Error(1)
}

func (m *MockVisitRepository) GetByConsumer(consumerID string, status string, offset, limit int) ([]model.Visit, int64, error) {
	args := m.Called(consumerID, status, offset, limit)
	return args.Get(0).([]model.Visit), args.Get(1).(int64), args.Error(2)
}

func (m *MockVisitRepository) GetByStore(storeID string, status string, offset, limit int) ([]model.Visit, int64, error) {
	args := m.Called(storeID, status, offset, limit)
	return args.Get(0).([]model.Visit), args.Get(1).(int64), args.Error(2)
}

func (m *MockVisitRepository) CountCompletedByConsumer(consumerID string) (int64, error) {
	args := m.Called(consumerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVisitRepository) Update(visit *model.Visit) error {
	args := m.Called(visit)
	return args.Error(0)
}

// MockStoreRepository is a mock of the store repository
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) Create(store *storeModel.PartnerStore) error {
	args := m.Called(store)
	return args.Error(0)
}

func (m *MockStoreRepository) GetByID(id string) (*storeModel.PartnerStore, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storeModel.PartnerStore), args.Error(1)
}

func (m *MockStoreRepository) GetByOwner(ownerID string) (*storeModel.PartnerStore, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storeModel.PartnerStore), args.Error(1)
}

func (m *MockStoreRepository) Search(category, keyword string, priceRating int, offset, limit int) ([]storeModel.PartnerStore, int64, error) {
	args := m.Called(category, keyword, priceRating, offset, limit)
	return args.Get(0).([]storeModel.PartnerStore), args.Get(1).(int64), args.Error(2)
}

func (m *MockStoreRepository) Update(store *storeModel.PartnerStore) error {
	args := m.Called(store)
	return args.Error(0)
}

func (m *MockStoreRepository) IncrementView(storeID string, date time.Time) error {
	args := m.Called(storeID, date)
	return args.Error(0)
}

func (m *MockStoreRepository) IncrementVisit(storeID string, date time.Time) error {
	args := m.Called(storeID, date)
	return args.Error(0)
}

// MockDealRepository is a mock of the deal repository
type MockDealRepository struct {
	mock.Mock
}

func (m *MockDealRepository) Create(deal *dealModel.Deal) error {
	args := m.Called(deal)
	return args.Error(0)
}

func (m *MockDealRepository) GetByID(id string) (*dealModel.Deal, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dealModel.Deal), args.Error(1)
}

func (m *MockDealRepository) GetByStore(storeID string, offset, limit int) ([]dealModel.Deal, int64, error) {
	args := m.Called(storeID, offset, limit)
	return args.Get(0).([]dealModel.Deal), args.Get(1).(int64), args.Error(2)
}

func (m *MockDealRepository) CountActiveInCategory(storeID, category string, now time.Time) (int64, error) {
	args := m.Called(storeID, category, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDealRepository) Browse(category string, now time.Time, offset, limit int) ([]dealModel.Deal, int64, error) {
	args := m.Called(category, now, offset, limit)
	return args.Get(0).([]dealModel.Deal), args.Get(1).(int64), args.Error(2)
}

func (m *MockDealRepository) Update(deal *dealModel.Deal) error {
	args := m.Called(deal)
	return args.Error(0)
}

// MockStoreService is a mock of the store service
type MockStoreService struct {
	mock.Mock
}

func (m *MockStoreService) CreateStore(ownerID string, input storeService.StoreInput) (*storeModel.PartnerStore, error) {
	args := m.Called(ownerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storeModel.PartnerStore), args.Error(1)
}

func (m *MockStoreService) UpdateStore(ownerID string, input storeService.StoreInput) (*storeModel.PartnerStore, error) {
	args := m.Called(ownerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storeModel.PartnerStore), args.Error(1)
}

func (m *MockStoreService) GetStore(id string) (*storeModel.PartnerStore, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storeModel.PartnerStore), args.Error(1)
}

func (m *MockStoreService) GetMyStore(ownerID string) (*storeModel.PartnerStore, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storeModel.PartnerStore), args.Error(1)
}

func (m *MockStoreService) SearchStores(category, keyword string, priceRating, page, limit int) ([]storeModel.PartnerStore, int64, error) {
	args := m.Called(category, keyword, priceRating, page, limit)
	return args.Get(0).([]storeModel.PartnerStore), args.Get(1).(int64), args.Error(2)
}

func (m *MockStoreService) GetStats(ownerID string, from, to time.Time) (*storeModel.StatSummary, []storeModel.DailyStat, error) {
	args := m.Called(ownerID, from, to)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*storeModel.StatSummary), args.Get(1).([]storeModel.DailyStat), args.Error(2)
}

func (m *MockStoreService) RecordView(storeID string) {
	m.Called(storeID)
}

func (m *MockStoreService) RecordVisit(storeID string) {
	m.Called(storeID)
}

// MockRewardService is a mock of the reward service
type MockRewardService struct {
	mock.Mock
}

func (m *MockRewardService) Award(userID string, points int64, reason string, referenceID *string) error {
	args := m.Called(userID, points, reason, referenceID)
	return args.Error(0)
}

func (m *MockRewardService) GetBalance(userID string) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRewardService) GetLedger(userID string, page, limit int) ([]rewardModel.Reward, int64, error) {
	args := m.Called(userID, page, limit)
	return args.Get(0).([]rewardModel.Reward), args.Get(1).(int64), args.Error(2)
}

func (m *MockRewardService) Redeem(userID string, points int64) (*rewardModel.Redemption, error) {
	args := m.Called(userID, points)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rewardModel.Redemption), args.Error(1)
}

func (m *MockRewardService) ClaimRedemption(code string, partnerID string) (*rewardModel.Redemption, error) {
	args := m.Called(code, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rewardModel.Redemption), args.Error(1)
}

func (m *MockRewardService) GetRedemptions(userID string, page, limit int) ([]rewardModel.Redemption, int64, error) {
	args := m.Called(userID, page, limit)
	return args.Get(0).([]rewardModel.Redemption), args.Get(1).(int64), args.Error(2)
}

// MockReferralService is a mock of the referral service
type MockReferralService struct {
	mock.Mock
}

func (m *MockReferralService) Invite(referrerID, refereePhone string) (*rewardModel.Referral, error) {
	args := m.Called(referrerID, refereePhone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rewardModel.Referral), args.Error(1)
}

func (m *MockReferralService) BindReferee(code string, refereeID string, refereePhone string) error {
	args := m.Called(code, refereeID, refereePhone)
	return args.Error(0)
}

func (m *MockReferralService) CompleteForUser(refereeID string) error {
	args := m.Called(refereeID)
	return args.Error(0)
}

func (m *MockReferralService) GetReferrals(referrerID string, page, limit int) ([]rewardModel.Referral, int64, error) {
	args := m.Called(referrerID, page, limit)
	return args.Get(0).([]rewardModel.Referral), args.Get(1).(int64), args.Error(2)
}

// MockNotificationService is a mock of the notification service
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

type visitMocks struct {
	visits    *MockVisitRepository
	stores    *MockStoreRepository
	deals     *MockDealRepository
	stats     *MockStoreService
	rewards   *MockRewardService
	referrals *MockReferralService
	notifier  *MockNotificationService
}

func newVisitService() (VisitService, *visitMocks) {
	m := &visitMocks{
		visits:    new(MockVisitRepository),
		stores:    new(MockStoreRepository),
		deals:     new(MockDealRepository),
		stats:     new(MockStoreService),
		rewards:   new(MockRewardService),
		referrals: new(MockReferralService),
		notifier:  new(MockNotificationService),
	}
	cfg := config.RewardConfig{VisitPoints: 50, ReviewPoints: 20, ReferralPoints: 100, RedeemMin: 500, RedeemMax: 5000}
	service := NewVisitService(m.visits, m.stores, m.deals, m.stats, m.rewards, m.referrals, m.notifier, cfg)
	return service, m
}

func testStore(id, ownerID string) *storeModel.PartnerStore {
	store := &storeModel.PartnerStore{OwnerID: ownerID, Name: "Test Store"}
	store.ID = id
	return store
}

func TestSchedule(t *testing.T) {
	t.Run("Past time rejected", func(t *testing.T) {
		service, _ := newVisitService()

		_, err := service.Schedule("consumer-1", ScheduleInput{
			StoreID:     "store-1",
			ScheduledAt: time.Now().Add(-time.Hour),
		})

		assert.ErrorIs(t, err, ErrVisitInPast)
	})

	t.Run("Schedule without deal success", func(t *testing.T) {
		service, m := newVisitService()

		m.stores.On("GetByID", "store-1").Return(testStore("store-1", "owner-1"), nil)
		m.visits.On("Create", mock.AnythingOfType("*model.Visit")).Return(nil)

		visit, err := service.Schedule("consumer-1", ScheduleInput{
			StoreID:     "store-1",
			ScheduledAt: time.Now().Add(24 * time.Hour),
		})

		assert.NoError(t, err)
		assert.Equal(t, model.StatusScheduled, visit.Status)
		assert.Nil(t, visit.DealID)
	})

	t.Run("Deal of another store rejected", func(t *testing.T) {
		service, m := newVisitService()

		dealID := "deal-1"
		deal := &dealModel.Deal{
			StoreID:   "store-2",
			Active:    true,
			StartDate: time.Now().Add(-time.Hour),
			EndDate:   time.Now().Add(48 * time.Hour),
		}
		deal.ID = dealID

		m.stores.On("GetByID", "store-1").Return(testStore("store-1", "owner-1"), nil)
		m.deals.On("GetByID", dealID).Return(deal, nil)

		_, err := service.Schedule("consumer-1", ScheduleInput{
			StoreID:     "store-1",
			DealID:      &dealID,
			ScheduledAt: time.Now().Add(24 * time.Hour),
		})

		assert.ErrorIs(t, err, ErrDealWrongStore)
	})

	t.Run("Deal outside window rejected", func(t *testing.T) {
		service, m := newVisitService()

		dealID := "deal-1"
		deal := &dealModel.Deal{
			StoreID:   "store-1",
			Active:    true,
			StartDate: time.Now().Add(-48 * time.Hour),
			EndDate:   time.Now().Add(time.Hour),
		}
		deal.ID = dealID

		m.stores.On("GetByID", "store-1").Return(testStore("store-1", "owner-1"), nil)
		m.deals.On("GetByID", dealID).Return(deal, nil)

		_, err := service.Schedule("consumer-1", ScheduleInput{
			StoreID:     "store-1",
			DealID:      &dealID,
			ScheduledAt: time.Now().Add(24 * time.Hour),
		})

		assert.ErrorIs(t, err, ErrDealUnavailable)
	})

	t.Run("Inactive deal rejected", func(t *testing.T) {
		service, m := newVisitService()

		dealID := "deal-1"
		deal := &dealModel.Deal{
			StoreID:   "store-1",
			Active:    false,
			StartDate: time.Now().Add(-time.Hour),
			EndDate:   time.Now().Add(48 * time.Hour),
		}
		deal.ID = dealID

		m.stores.On("GetByID", "store-1").Return(testStore("store-1", "owner-1"), nil)
		m.deals.On("GetByID", dealID).Return(deal, nil)

		_, err := service.Schedule("consumer-1", ScheduleInput{
			StoreID:     "store-1",
			DealID:      &dealID,
			ScheduledAt: time.Now().Add(24 * time.Hour),
		})

		assert.ErrorIs(t, err, ErrDealUnavailable)
	})
}

func TestComplete(t *testing.T) {
	t.Run("Completion awards points and settles referral", func(t *testing.T) {
		service, m := newVisitService()

		visit := &model.Visit{
			ConsumerID:  "consumer-1",
			StoreID:     "store-1",
			ScheduledAt: time.Now().Add(-time.Hour),
			Status:      model.StatusScheduled,
		}
		visit.ID = "visit-1"

		m.visits.On("GetByID", "visit-1").Return(visit, nil)
		m.stores.On("GetByOwner", "owner-1").Return(testStore("store-1", "owner-1"), nil)
		m.visits.On("Update", visit).Return(nil)
		m.rewards.On("Award", "consumer-1", int64(50), rewardModel.ReasonVisit, mock.Anything).Return(nil)
		m.stats.On("RecordVisit", "store-1").Return()
		m.visits.On("CountCompletedByConsumer", "consumer-1").Return(int64(1), nil)
		m.referrals.On("CompleteForUser", "consumer-1").Return(nil)
		m.notifier.On("Notify", "consumer-1", notifModel.TypeVisit,
			mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.Anything).Return(nil)

		completed, err := service.Complete("owner-1", "visit-1")

		assert.NoError(t, err)
		assert.Equal(t, model.StatusCompleted, completed.Status)
		assert.NotNil(t, completed.CompletedAt)
		m.rewards.AssertExpectations(t)
		m.referrals.AssertExpectations(t)
		m.stats.AssertExpectations(t)
	})

	t.Run("Repeat completion skips referral settlement", func(t *testing.T) {
		service, m := newVisitService()

		visit := &model.Visit{
			ConsumerID:  "consumer-1",
			StoreID:     "store-1",
			ScheduledAt: time.Now().Add(-time.Hour),
			Status:      model.StatusScheduled,
		}
		visit.ID = "visit-2"

		m.visits.On("GetByID", "visit-2").Return(visit, nil)
		m.stores.On("GetByOwner", "owner-1").Return(testStore("store-1", "owner-1"), nil)
		m.visits.On("Update", visit).Return(nil)
		m.rewards.On("Award", "consumer-1", int64(50), rewardModel.ReasonVisit, mock.Anything).Return(nil)
		m.stats.On("RecordVisit", "store-1").Return()
		m.visits.On("CountCompletedByConsumer", "consumer-1").Return(int64(2), nil)
		m.notifier.On("Notify", "consumer-1", notifModel.TypeVisit,
			mock.AnythingOfType("string"), mock.AnythingOfType("string"), mock.Anything).Return(nil)

		_, err := service.Complete("owner-1", "visit-2")

		assert.NoError(t, err)
		m.referrals.AssertNotCalled(t, "CompleteForUser", "consumer-1")
	})

	t.Run("Other partner cannot complete", func(t *testing.T) {
		service, m := newVisitService()

		visit := &model.Visit{
			ConsumerID: "consumer-1",
			StoreID:    "store-1",
			Status:     model.StatusScheduled,
		}
		visit.ID = "visit-1"

		m.visits.On("GetByID", "visit-1").Return(visit, nil)
		m.stores.On("GetByOwner", "owner-2").Return(testStore("store-2", "owner-2"), nil)

		_, err := service.Complete("owner-2", "visit-1")

		assert.ErrorIs(t, err, ErrNotVisitOwner)
		m.visits.AssertNotCalled(t, "Update", visit)
	})

	t.Run("Cancelled visit cannot be completed", func(t *testing.T) {
		service, m := newVisitService()

		visit := &model.Visit{
			ConsumerID: "consumer-1",
			StoreID:    "store-1",
			Status:     model.StatusCancelled,
		}
		visit.ID = "visit-1"

		m.visits.On("GetByID", "visit-1").Return(visit, nil)
		m.stores.On("GetByOwner", "owner-1").Return(testStore("store-1", "owner-1"), nil)

		_, err := service.Complete("owner-1", "visit-1")

		assert.ErrorIs(t, err, ErrBadTransition)
	})
}

func TestCancel(t *testing.T) {
	t.Run("Consumer cancels own scheduled visit", func(t *testing.T) {
		service, m := newVisitService()

		visit := &model.Visit{
			ConsumerID: "consumer-1",
			StoreID:    "store-1",
			Status:     model.StatusScheduled,
		}
		visit.ID = "visit-1"

		m.visits.On("GetByID", "visit-1").Return(visit, nil)
		m.visits.On("Update", visit).Return(nil)

		cancelled, err := service.Cancel("consumer-1", "visit-1")

		assert.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, cancelled.Status)
	})

	t.Run("Other consumer cannot cancel", func(t *testing.T) {
		service, m := newVisitService()

		visit := &model.Visit{
			ConsumerID: "consumer-1",
			StoreID:    "store-1",
			Status:     model.StatusScheduled,
		}
		visit.ID = "visit-1"

		m.visits.On("GetByID", "visit-1").Return(visit, nil)

		_, err := service.Cancel("consumer-2", "visit-1")

		assert.ErrorIs(t, err, ErrNotVisitOwner)
	})

	t.Run("Completed visit cannot be cancelled", func(t *testing.T) {
		service, m := newVisitService()

		visit := &model.Visit{
			ConsumerID: "consumer-1",
			StoreID:    "store-1",
			Status:     model.StatusCompleted,
		}
		visit.ID = "visit-1"

		m.visits.On("GetByID", "visit-1").Return(visit, nil)

		_, err := service.Cancel("consumer-1", "visit-1")

		assert.ErrorIs(t, err, ErrBadTransition)
	})

	t.Run("Unknown visit returns not found", func(t *testing.T) {
		service, m := newVisitService()

		m.visits.On("GetByID", "missing").Return(nil, gorm.ErrRecordNotFound)

		_, err := service.Cancel("consumer-1", "missing")

		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}
