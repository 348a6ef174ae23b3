package reward

import (
	notifRepo "deal_market/internal/domain/notification/repository"
	notifService "deal_market/internal/domain/notification/service"
	"deal_market/internal/domain/reward/handler"
	"deal_market/internal/domain/reward/repository"
	"deal_market/internal/domain/reward/service"
	userRepo "deal_market/internal/domain/user/repository"
	"deal_market/internal/pkg/config"
	"deal_market/internal/pkg/middleware"
	"deal_market/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// RewardModule 积分模块
type RewardModule struct{}

func init() {
	registry.Register(&RewardModule{})
}

func (m *RewardModule) Name() string {
	return "reward"
}

func (m *RewardModule) Priority() int {
	// 积分模块被 user/visit/review 依赖，较早初始化
	return 5
}

func (m *RewardModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	rRepo := repository.NewRewardRepository(ctx.DB)
	refRepo := repository.NewReferralRepository(ctx.DB)
	nService := notifService.NewNotificationService(notifRepo.NewNotificationRepository(ctx.DB), ctx.Workers)

	rService := service.NewRewardService(rRepo, nService, config.GlobalConfig.Reward)

	// 邀请服务通过 user 仓库解析手机号
	uRepo := userRepo.NewUserRepository(ctx.DB)
	phoneOf := func(userID string) (string, error) {
		u, err := uRepo.GetByID(userID)
		if err != nil {
			return "", err
		}
		return u.Phone, nil
	}
	refService := service.NewReferralService(refRepo, rService, nService, phoneOf, config.GlobalConfig.Reward)

	rHandler := handler.NewRewardHandler(rService, refService)

	// 2. 路由注册
	setupRoutes(ctx.Router, rHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.RewardHandler) {
	g := r.Group("/rewards")
	g.Use(middleware.AuthMiddleware())
	{
		g.GET("/balance", h.GetBalance)
		g.GET("/", h.GetLedger)
		g.POST("/redeem", h.Redeem)
		g.GET("/redemptions", h.GetRedemptions)

		// 商家核销兑换码
		partner := g.Group("")
		partner.Use(middleware.PartnerMiddleware())
		{
			partner.POST("/redemptions/:code/claim", h.ClaimRedemption)
		}
	}

	ref := r.Group("/referrals")
	ref.Use(middleware.AuthMiddleware())
	{
		ref.POST("/", h.Invite)
		ref.GET("/", h.GetReferrals)
	}
}
