package service

import (
	"context"
	"fmt"
	"time"

	"deal_market/internal/domain/store/model"
	"deal_market/pkg/cache"
	"deal_market/pkg/metrics"
)

// 缓存键常量
const (
	StoreCacheKeyPrefix = "store:"
	StoreCacheTTL       = time.Minute * 10
)

// CachedStoreService 带缓存的门店服务
// 门店详情是最热的读路径，其余方法直接透传
type CachedStoreService struct {
	StoreService
	cache cache.CacheService
}

// NewCachedStoreService 创建带缓存的门店服务
func NewCachedStoreService(inner StoreService, cache cache.CacheService) StoreService {
	return &CachedStoreService{StoreService: inner, cache: cache}
}

func (s *CachedStoreService) storeCacheKey(id string) string {
	return fmt.Sprintf("%s%s", StoreCacheKeyPrefix, id)
}

// GetStore 先查缓存，未命中回源并回填
// 注意：缓存命中时浏览计数同样要记，所以回源前先走 RecordView 逻辑
func (s *CachedStoreService) GetStore(id string) (*model.PartnerStore, error) {
	ctx := context.Background()
	key := s.storeCacheKey(id)

	var store model.PartnerStore
	if err := s.cache.Get(ctx, key, &store); err == nil {
		metrics.Default.CacheHitsTotal.WithLabelValues("store").Inc()
		// 命中缓存也要计浏览量
		s.StoreService.RecordView(id)
		return &store, nil
	}
	metrics.Default.CacheMissesTotal.WithLabelValues("store").Inc()

	fresh, err := s.StoreService.GetStore(id)
	if err != nil {
		return nil, err
	}

	// 回填失败不影响主流程
	_ = s.cache.Set(ctx, key, fresh, StoreCacheTTL)
	return fresh, nil
}

// UpdateStore 更新后失效缓存
func (s *CachedStoreService) UpdateStore(ownerID string, input StoreInput) (*model.PartnerStore, error) {
	store, err := s.StoreService.UpdateStore(ownerID, input)
	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(context.Background(), s.storeCacheKey(store.ID))
	return store, nil
}
