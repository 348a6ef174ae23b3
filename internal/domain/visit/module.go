package visit

import (
	dealRepo "deal_market/internal/domain/deal/repository"
	notifRepo "deal_market/internal/domain/notification/repository"
	notifService "deal_market/internal/domain/notification/service"
	rewardRepo "deal_market/internal/domain/reward/repository"
	rewardService "deal_market/internal/domain/reward/service"
	storeRepo "deal_market/internal/domain/store/repository"
	storeService "deal_market/internal/domain/store/service"
	userRepo "deal_market/internal/domain/user/repository"
	"deal_market/internal/domain/visit/handler"
	"deal_market/internal/domain/visit/repository"
	"deal_market/internal/domain/visit/service"
	"deal_market/internal/pkg/config"
	"deal_market/internal/pkg/middleware"
	"deal_market/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// VisitModule 到店模块
type VisitModule struct{}

func init() {
	registry.Register(&VisitModule{})
}

func (m *VisitModule) Name() string {
	return "visit"
}

func (m *VisitModule) Priority() int {
	// 依赖 store/deal/reward/notification
	return 20
}

func (m *VisitModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	vRepo := repository.NewVisitRepository(ctx.DB)
	sRepo := storeRepo.NewStoreRepository(ctx.DB)
	dRepo := dealRepo.NewDealRepository(ctx.DB)

	nService := notifService.NewNotificationService(notifRepo.NewNotificationRepository(ctx.DB), ctx.Workers)
	sService := storeService.NewStoreService(sRepo, storeRepo.NewStatRepository(ctx.Reporting), ctx.Workers)
	rService := rewardService.NewRewardService(rewardRepo.NewRewardRepository(ctx.DB), nService, config.GlobalConfig.Reward)

	uRepo := userRepo.NewUserRepository(ctx.DB)
	phoneOf := func(userID string) (string, error) {
		u, err := uRepo.GetByID(userID)
		if err != nil {
			return "", err
		}
		return u.Phone, nil
	}
	refService := rewardService.NewReferralService(rewardRepo.NewReferralRepository(ctx.DB), rService, nService, phoneOf, config.GlobalConfig.Reward)

	vService := service.NewVisitService(vRepo, sRepo, dRepo, sService, rService, refService, nService, config.GlobalConfig.Reward)
	vHandler := handler.NewVisitHandler(vService)

	// 2. 路由注册
	setupRoutes(ctx.Router, vHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.VisitHandler) {
	g := r.Group("/visits")
	g.Use(middleware.AuthMiddleware())
	{
		g.POST("/", h.Schedule)
		g.GET("/", h.GetMyVisits)
		g.GET("/:id", h.GetVisit)
		g.PUT("/:id/cancel", h.Cancel)

		// 商家侧
		partner := g.Group("")
		partner.Use(middleware.PartnerMiddleware())
		{
			partner.GET("/store", h.GetStoreVisits)
			partner.PUT("/:id/complete", h.Complete)
		}
	}
}
