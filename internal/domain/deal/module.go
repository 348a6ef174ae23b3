package deal

import (
	"deal_market/internal/domain/deal/handler"
	"deal_market/internal/domain/deal/repository"
	"deal_market/internal/domain/deal/service"
	storeRepo "deal_market/internal/domain/store/repository"
	"deal_market/internal/pkg/middleware"
	"deal_market/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// DealModule 优惠模块
type DealModule struct{}

func init() {
	registry.Register(&DealModule{})
}

func (m *DealModule) Name() string {
	return "deal"
}

func (m *DealModule) Priority() int {
	return 15
}

func (m *DealModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	dRepo := repository.NewDealRepository(ctx.DB)
	sRepo := storeRepo.NewStoreRepository(ctx.DB)

	dService := service.NewDealService(dRepo, sRepo)
	dHandler := handler.NewDealHandler(dService)

	// 2. 路由注册
	setupRoutes(ctx.Router, dHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.DealHandler) {
	g := r.Group("/deals")

	// 公开浏览
	g.GET("/", h.BrowseDeals)

	// 商家管理自己门店的优惠
	partner := g.Group("")
	partner.Use(middleware.AuthMiddleware(), middleware.PartnerMiddleware())
	{
		partner.POST("/", h.CreateDeal)
		partner.GET("/mine", h.GetMyDeals)
		partner.PUT("/:id", h.UpdateDeal)
		partner.PUT("/:id/deactivate", h.DeactivateDeal)
		partner.PUT("/:id/activate", h.ActivateDeal)
	}

	g.GET("/:id", h.GetDeal)

	// 门店维度的优惠列表
	r.GET("/stores/:id/deals", h.GetStoreDeals)
}
