package service

import (
	"errors"
	"time"

	"deal_market/internal/domain/deal/model"
	"deal_market/internal/domain/deal/repository"
	storeRepo "deal_market/internal/domain/store/repository"
)

var (
	ErrDealLimitReached = errors.New("store already has 3 active deals in this category")
	ErrInvalidWindow    = errors.New("deal end date must be after start date")
	ErrInvalidDiscount  = errors.New("discount percent must be between 1 and 100")
	ErrNotDealOwner     = errors.New("deal does not belong to this partner")
)

// DealInput 优惠创建/更新入参
type DealInput struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	DiscountPercent int       `json:"discountPercent"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
}

// DealService 优惠服务接口
type DealService interface {
	CreateDeal(ownerID string, input DealInput) (*model.Deal, error)
	UpdateDeal(ownerID, dealID string, input DealInput) (*model.Deal, error)
	DeactivateDeal(ownerID, dealID string) error
	ActivateDeal(ownerID, dealID string) error
	GetDeal(id string) (*model.Deal, error)
	GetMyDeals(ownerID string, page, limit int) ([]model.Deal, int64, error)
	GetStoreDeals(storeID string, page, limit int) ([]model.Deal, int64, error)
	Browse(category string, page, limit int) ([]model.Deal, int64, error)
}

type dealService struct {
	repo   repository.DealRepository
	stores storeRepo.StoreRepository
}

// NewDealService 创建优惠服务
func NewDealService(repo repository.DealRepository, stores storeRepo.StoreRepository) DealService {
	return &dealService{repo: repo, stores: stores}
}

func validateInput(input DealInput) error {
	if !input.EndDate.After(input.StartDate) {
		return ErrInvalidWindow
	}
	if input.DiscountPercent < 1 || input.DiscountPercent > 100 {
		return ErrInvalidDiscount
	}
	return nil
}

// CreateDeal 建优惠，同分类同时生效的优惠数不能超过上限
func (s *dealService) CreateDeal(ownerID string, input DealInput) (*model.Deal, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	store, err := s.stores.GetByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountActiveInCategory(store.ID, input.Category, time.Now())
	if err != nil {
		return nil, err
	}
	if count >= model.MaxActivePerCategory {
		return nil, ErrDealLimitReached
	}

	deal := &model.Deal{
		StoreID:         store.ID,
		Title:           input.Title,
		Description:     input.Description,
		Category:        input.Category,
		DiscountPercent: input.DiscountPercent,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		Active:          true,
	}
	if err := s.repo.Create(deal); err != nil {
		return nil, err
	}
	return deal, nil
}

// getOwnedDeal 校验优惠归属
func (s *dealService) getOwnedDeal(ownerID, dealID string) (*model.Deal, error) {
	store, err := s.stores.GetByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	deal, err := s.repo.GetByID(dealID)
	if err != nil {
		return nil, err
	}
	if deal.StoreID != store.ID {
		return nil, ErrNotDealOwner
	}
	return deal, nil
}

// UpdateDeal 更新优惠，换分类时重新检查分类上限
func (s *dealService) UpdateDeal(ownerID, dealID string, input DealInput) (*model.Deal, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	deal, err := s.getOwnedDeal(ownerID, dealID)
	if err != nil {
		return nil, err
	}

	if input.Category != deal.Category && deal.Active {
		count, err := s.repo.CountActiveInCategory(deal.StoreID, input.Category, time.Now())
		if err != nil {
			return nil, err
		}
		if count >= model.MaxActivePerCategory {
			return nil, ErrDealLimitReached
		}
	}

	deal.Title = input.Title
	deal.Description = input.Description
	deal.Category = input.Category
	deal.DiscountPercent = input.DiscountPercent
	deal.StartDate = input.StartDate
	deal.EndDate = input.EndDate

	if err := s.repo.Update(deal); err != nil {
		return nil, err
	}
	return deal, nil
}

// DeactivateDeal 下线优惠
func (s *dealService) DeactivateDeal(ownerID, dealID string) error {
	deal, err := s.getOwnedDeal(ownerID, dealID)
	if err != nil {
		return err
	}

	deal.Active = false
	return s.repo.Update(deal)
}

// ActivateDeal 重新上线，同样受分类上限约束
func (s *dealService) ActivateDeal(ownerID, dealID string) error {
	deal, err := s.getOwnedDeal(ownerID, dealID)
	if err != nil {
		return err
	}
	if deal.Active {
		return nil
	}

	count, err := s.repo.CountActiveInCategory(deal.StoreID, deal.Category, time.Now())
	if err != nil {
		return err
	}
	if count >= model.MaxActivePerCategory {
		return ErrDealLimitReached
	}

	deal.Active = true
	return s.repo.Update(deal)
}

func (s *dealService) GetDeal(id string) (*model.Deal, error) {
	return s.repo.GetByID(id)
}

func (s *dealService) GetMyDeals(ownerID string, page, limit int) ([]model.Deal, int64, error) {
	store, err := s.stores.GetByOwner(ownerID)
	if err != nil {
		return nil, 0, err
	}
	return s.GetStoreDeals(store.ID, page, limit)
}

func (s *dealService) GetStoreDeals(storeID string, page, limit int) ([]model.Deal, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return s.repo.GetByStore(storeID, (page-1)*limit, limit)
}

// Browse 公开浏览生效中的优惠
func (s *dealService) Browse(category string, page, limit int) ([]model.Deal, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return s.repo.Browse(category, time.Now(), (page-1)*limit, limit)
}
