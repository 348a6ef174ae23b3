package store

import (
	"deal_market/internal/domain/store/handler"
	"deal_market/internal/domain/store/repository"
	"deal_market/internal/domain/store/service"
	"deal_market/internal/pkg/middleware"
	"deal_market/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// StoreModule 门店模块
type StoreModule struct{}

func init() {
	registry.Register(&StoreModule{})
}

func (m *StoreModule) Name() string {
	return "store"
}

func (m *StoreModule) Priority() int {
	return 10
}

func (m *StoreModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	sRepo := repository.NewStoreRepository(ctx.DB)
	statRepo := repository.NewStatRepository(ctx.Reporting)

	sService := service.NewStoreService(sRepo, statRepo, ctx.Workers)
	if ctx.Cache != nil {
		sService = service.NewCachedStoreService(sService, ctx.Cache)
	}

	sHandler := handler.NewStoreHandler(sService)

	// 2. 路由注册
	setupRoutes(ctx.Router, sHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.StoreHandler) {
	g := r.Group("/stores")

	// 公开浏览
	g.GET("/", h.SearchStores)

	// 商家自有门店，注意要先于 /:id 注册
	partner := g.Group("")
	partner.Use(middleware.AuthMiddleware(), middleware.PartnerMiddleware())
	{
		partner.POST("/", h.CreateStore)
		partner.GET("/me", h.GetMyStore)
		partner.PUT("/me", h.UpdateStore)
		partner.GET("/me/stats", h.GetStats)
	}

	g.GET("/:id", h.GetStore)
}
