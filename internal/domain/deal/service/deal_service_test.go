package service

import (
	"testing"
	"time"

	"deal_market/internal/domain/deal/model"
	storeModel "deal_market/internal/domain/store/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockDealRepository is a mock of DealRepository
type MockDealRepository struct {
	mock.Mock
}

func (m *MockDealRepository) Create(deal *model.Deal) error {
	args := m.Called(deal)
	return args.Error(0)
}

func (m *MockDealRepository) GetByID(id string) (*model.Deal, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Deal), args.Error(1)
}

func (m *MockDealRepository) GetByStore(storeID string, offset, limit int) ([]model.Deal, int64, error) {
	args := m.Called(storeID, offset, limit)
	return args.Get(0).([]model.Deal), args.Get(1).(int64), args.Error(2)
}

func (m *MockDealRepository) CountActiveInCategory(storeID, category string, now time.Time) (int64, error) {
	args := m.Called(storeID, category, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDealRepository) Browse(category string, now time.Time, offset, limit int) ([]model.Deal, int64, error) {
	args := m.Called(category, now, offset, limit)
	return args.Get(0).([]model.Deal), args.Get(1).(int64), args.Error(2)
}

func (m *MockDealRepository) Update(deal *model.Deal) error {
	args := m.Called(deal)
	return args.Error(0)
}

// MockStoreRepository is a mock of StoreRepository
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

func testStore(id, ownerID string) *storeModel.PartnerStore {
	store := &storeModel.PartnerStore{
		OwnerID:     ownerID,
		Name:        "Test Store",
		PriceRating: 2,
	}
	store.ID = id
	return store
}

func validInput() DealInput {
	return DealInput{
		Title:           "Lunch special",
		Category:        "food",
		DiscountPercent: 20,
		StartDate:       time.Now().Add(-time.Hour),
		EndDate:         time.Now().Add(72 * time.Hour),
	}
}

func TestCreateDeal(t *testing.T) {
	t.Run("Create success under category limit", func(t *testing.T) {
		mockDeals := new(MockDealRepository)
		mockStores := new(MockStoreRepository)
		service := NewDealService(mockDeals, mockStores)

		mockStores.On("GetByOwner", "owner-1").Return(testStore("store-1", "owner-1"), nil)
		mockDeals.On("CountActiveInCategory", "store-1", "food", mock.AnythingOfType("time.Time")).
			Return(int64(2), nil)
		mockDeals.On("Create", mock.AnythingOfType("*model.Deal")).Return(nil)

		deal, err := service.CreateDeal("owner-1", validInput())

		assert.NoError(t, err)
		assert.True(t, deal.Active)
		assert.Equal(t, "store-1", deal.StoreID)
	})

	t.Run("Fourth active deal in category rejected", func(t *testing.T) {
		mockDeals := new(MockDealRepository)
		mockStores := new(MockStoreRepository)
		service := NewDealService(mockDeals, mockStores)

		mockStores.On("GetByOwner", "owner-1").Return(testStore("store-1", "owner-1"), nil)
		mockDeals.On("CountActiveInCategory", "store-1", "food", mock.AnythingOfType("time.Time")).
			Return(int64(3), nil)

		_, err := service.CreateDeal("owner-1", validInput())

		assert.ErrorIs(t, err, ErrDealLimitReached)
		mockDeals.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("End before start rejected", func(t *testing.T) {
		mockDeals := new(MockDealRepository)
		mockStores := new(MockStoreRepository)
		service := NewDealService(mockDeals, mockStores)

		input := validInput()
		input.StartDate = time.Now().Add(48 * time.Hour)
		input.EndDate = time.Now().Add(24 * time.Hour)

		_, err := service.CreateDeal("owner-1", input)

		assert.ErrorIs(t, err, ErrInvalidWindow)
		mockStores.AssertNotCalled(t, "GetByOwner", "owner-1")
	})

	t.Run("Invalid discount rejected", func(t *testing.T) {
		mockDeals := new(MockDealRepository)
		mockStores := new(MockStoreRepository)
		service := NewDealService(mockDeals, mockStores)

		input := validInput()
		input.DiscountPercent = 0

		_, err := service.CreateDeal("owner-1", input)

		assert.ErrorIs(t, err, ErrInvalidDiscount)
	})
}

func TestActivateDeal(t *testing.T) {
	t.Run("Reactivation checks category limit", func(t *testing.T) {
		mockDeals := new(MockDealRepository)
		mockStores := new(MockStoreRepository)
		service := NewDealService(mockDeals, mockStores)

		deal := &model.Deal{
			StoreID:  "store-1",
			Category: "food",
			Active:   false,
			EndDate:  time.Now().Add(24 * time.Hour),
		}
		deal.ID = "deal-1"

		mockStores.On("GetByOwner", "owner-1").Return(testStore("store-1", "owner-1"), nil)
		mockDeals.On("GetByID", "deal-1").Return(deal, nil)
		mockDeals.On("CountActiveInCategory", "store-1", "food", mock.AnythingOfType("time.Time")).
			Return(int64(3), nil)

		err := service.ActivateDeal("owner-1", "deal-1")

		assert.ErrorIs(t, err, ErrDealLimitReached)
		assert.False(t, deal.Active)
	})

	t.Run("Reactivation success", func(t *testing.T) {
		mockDeals := new(MockDealRepository)
		mockStores := new(MockStoreRepository)
		service := NewDealService(mockDeals, mockStores)

		deal := &model.Deal{
			StoreID:  "store-1",
			Category: "food",
			Active:   false,
			EndDate:  time.Now().Add(24 * time.Hour),
		}
		deal.ID = "deal-1"

		mockStores.On("GetByOwner", "owner-1").Return(testStore("store-1", "owner-1"), nil)
		mockDeals.On("GetByID", "deal-1").Return(deal, nil)
		mockDeals.On("CountActiveInCategory", "store-1", "food", mock.AnythingOfType("time.Time")).
			Return(int64(1), nil)
		mockDeals.On("Update", deal).Return(nil)

		err := service.ActivateDeal("owner-1", "deal-1")

		assert.NoError(t, err)
		assert.True(t, deal.Active)
	})
}

func TestDeactivateDeal(t *testing.T) {
	t.Run("Owner can deactivate", func(t *testing.T) {
		mockDeals := new(MockDealRepository)
		mockStores := new(MockStoreRepository)
		service := NewDealService(mockDeals, mockStores)

		deal := &model.Deal{StoreID: "store-1", Category: "food", Active: true}
		deal.ID = "deal-1"

		mockStores.On("GetByOwner", "owner-1").Return(testStore("store-1", "owner-1"), nil)
		mockDeals.On("GetByID", "deal-1").Return(deal, nil)
		mockDeals.On("Update", deal).Return(nil)

		err := service.DeactivateDeal("owner-1", "deal-1")

		assert.NoError(t, err)
		assert.False(t, deal.Active)
	})

	t.Run("Other partner's deal rejected", func(t *testing.T) {
		mockDeals := new(MockDealRepository)
		mockStores := new(MockStoreRepository)
		service := NewDealService(mockDeals, mockStores)

		deal := &model.Deal{StoreID: "store-2", Category: "food", Active: true}
		deal.ID = "deal-1"

		mockStores.On("GetByOwner", "owner-1").Return(testStore("store-1", "owner-1"), nil)
		mockDeals.On("GetByID", "deal-1").Return(deal, nil)

		err := service.DeactivateDeal("owner-1", "deal-1")

		assert.ErrorIs(t, err, ErrNotDealOwner)
		mockDeals.AssertNotCalled(t, "Update", deal)
	})
}

func TestUpdateDeal(t *testing.T) {
	t.Run("Category change checks new category limit", func(t *testing.T) {
		mockDeals := new(MockDealRepository)
		mockStores := new(MockStoreRepository)
		service := NewDealService(mockDeals, mockStores)

		deal := &model.Deal{StoreID: "store-1", Category: "food", Active: true}
		deal.ID = "deal-1"

		input := validInput()
		input.Category = "drinks"

		mockStores.On("GetByOwner", "owner-1").Return(testStore("store-1", "owner-1"), nil)
		mockDeals.On("GetByID", "deal-1").Return(deal, nil)
		mockDeals.On("CountActiveInCategory", "store-1", "drinks", mock.AnythingOfType("time.Time")).
			Return(int64(3), nil)

		_, err := service.UpdateDeal("owner-1", "deal-1", input)

		assert.ErrorIs(t, err, ErrDealLimitReached)
	})
}

func TestDealWindow(t *testing.T) {
	now := time.Now()
	deal := &model.Deal{
		Active:    true,
		StartDate: now.Add(-time.Hour),
		EndDate:   now.Add(time.Hour),
	}

	assert.True(t, deal.Available(now))
	assert.False(t, deal.Available(now.Add(2*time.Hour)))

	deal.Active = false
	assert.False(t, deal.Available(now))
}
