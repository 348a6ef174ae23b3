package service

import (
	"encoding/json"
	"errors"
	"time"

	"deal_market/internal/domain/store/model"
	"deal_market/internal/domain/store/repository"
	"deal_market/internal/pkg/worker"

	"gorm.io/gorm"
)

var (
	ErrStoreExists      = errors.New("partner already has a store")
	ErrInvalidPriceBand = errors.New("price rating must be between 1 and 4")
	ErrNotOwner         = errors.New("store does not belong to this partner")
)

// StoreInput 门店创建/更新入参
type StoreInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
	Address     string   `json:"address"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	PriceRating int      `json:"priceRating"`
	Photos      []string `json:"photos"`
}

// StoreService 门店服务接口
type StoreService interface {
	CreateStore(ownerID string, input StoreInput) (*model.PartnerStore, error)
	UpdateStore(ownerID string, input StoreInput) (*model.PartnerStore, error)
	GetStore(id string) (*model.PartnerStore, error)
	GetMyStore(ownerID string) (*model.PartnerStore, error)
	SearchStores(category, keyword string, priceRating, page, limit int) ([]model.PartnerStore, int64, error)

	GetStats(ownerID string, from, to time.Time) (*model.StatSummary, []model.DailyStat, error)
	RecordView(storeID string)
	RecordVisit(storeID string)
}

type storeService struct {
	repo    repository.StoreRepository
	stats   repository.StatRepository
	workers *worker.Pool
}

// NewStoreService 创建门店服务
func NewStoreService(repo repository.StoreRepository, stats repository.StatRepository, workers *worker.Pool) StoreService {
	return &storeService{repo: repo, stats: stats, workers: workers}
}

// CreateStore 商家建店，一个商家只能有一家
func (s *storeService) CreateStore(ownerID string, input StoreInput) (*model.PartnerStore, error) {
	if input.PriceRating < 1 || input.PriceRating > 4 {
		return nil, ErrInvalidPriceBand
	}

	if _, err := s.repo.GetByOwner(ownerID); err == nil {
		return nil, ErrStoreExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	categories, _ := json.Marshal(input.Categories)
	photos, _ := json.Marshal(input.Photos)

	store := &model.PartnerStore{
		OwnerID:     ownerID,
		Name:        input.Name,
		Description: input.Description,
		Categories:  categories,
		Address:     input.Address,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		PriceRating: input.PriceRating,
		Photos:      photos,
	}
	if err := s.repo.Create(store); err != nil {
		return nil, err
	}
	return store, nil
}

// UpdateStore 更新自己的门店
func (s *storeService) UpdateStore(ownerID string, input StoreInput) (*model.PartnerStore, error) {
	store, err := s.repo.GetByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		store.Name = input.Name
	}
	if input.Description != "" {
		store.Description = input.Description
	}
	if input.Categories != nil {
		store.Categories, _ = json.Marshal(input.Categories)
	}
	if input.Address != "" {
		store.Address = input.Address
	}
	if input.Latitude != 0 || input.Longitude != 0 {
		store.Latitude = input.Latitude
		store.Longitude = input.Longitude
	}
	if input.PriceRating != 0 {
		if input.PriceRating < 1 || input.PriceRating > 4 {
			return nil, ErrInvalidPriceBand
		}
		store.PriceRating = input.PriceRating
	}
	if input.Photos != nil {
		store.Photos, _ = json.Marshal(input.Photos)
	}

	if err := s.repo.Update(store); err != nil {
		return nil, err
	}
	return store, nil
}

// GetStore 门店详情，浏览计数异步 +1
func (s *storeService) GetStore(id string) (*model.PartnerStore, error) {
	store, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	s.RecordView(store.ID)
	return store, nil
}

// RecordView 浏览计数异步 +1
func (s *storeService) RecordView(storeID string) {
	if s.workers == nil {
		_ = s.repo.IncrementView(storeID, time.Now())
		return
	}
	s.workers.Submit("stat.view", func() error {
		return s.repo.IncrementView(storeID, time.Now())
	})
}

func (s *storeService) GetMyStore(ownerID string) (*model.PartnerStore, error) {
	return s.repo.GetByOwner(ownerID)
}

func (s *storeService) SearchStores(category, keyword string, priceRating, page, limit int) ([]model.PartnerStore, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return s.repo.Search(category, keyword, priceRating, (page-1)*limit, limit)
}

// GetStats 商家查看自己门店的统计
func (s *storeService) GetStats(ownerID string, from, to time.Time) (*model.StatSummary, []model.DailyStat, error) {
	store, err := s.repo.GetByOwner(ownerID)
	if err != nil {
		return nil, nil, err
	}

	summary, err := s.stats.GetSummary(store.ID)
	if err != nil {
		return nil, nil, err
	}

	series, err := s.stats.GetDailySeries(store.ID, from, to)
	if err != nil {
		return nil, nil, err
	}
	return summary, series, nil
}

// RecordVisit 到店完成后由 visit 模块调用，异步 +1
func (s *storeService) RecordVisit(storeID string) {
	if s.workers == nil {
		_ = s.repo.IncrementVisit(storeID, time.Now())
		return
	}
	s.workers.Submit("stat.visit", func() error {
		return s.repo.IncrementVisit(storeID, time.Now())
	})
}
