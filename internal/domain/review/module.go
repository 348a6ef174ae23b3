package review

import (
	notifRepo "deal_market/internal/domain/notification/repository"
	notifService "deal_market/internal/domain/notification/service"
	"deal_market/internal/domain/review/handler"
	"deal_market/internal/domain/review/repository"
	"deal_market/internal/domain/review/service"
	rewardRepo "deal_market/internal/domain/reward/repository"
	rewardService "deal_market/internal/domain/reward/service"
	"deal_market/internal/pkg/config"
	"deal_market/internal/pkg/middleware"
	"deal_market/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// ReviewModule 评价模块
type ReviewModule struct{}

func init() {
	registry.Register(&ReviewModule{})
}

func (m *ReviewModule) Name() string {
	return "review"
}

func (m *ReviewModule) Priority() int {
	return 25
}

func (m *ReviewModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	rRepo := repository.NewReviewRepository(ctx.DB)
	nService := notifService.NewNotificationService(notifRepo.NewNotificationRepository(ctx.DB), ctx.Workers)
	rwService := rewardService.NewRewardService(rewardRepo.NewRewardRepository(ctx.DB), nService, config.GlobalConfig.Reward)

	rService := service.NewReviewService(rRepo, rwService, nService, config.GlobalConfig.Reward)
	rHandler := handler.NewReviewHandler(rService)

	// 2. 路由注册
	setupRoutes(ctx.Router, rHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.ReviewHandler) {
	// 门店公开评价
	r.GET("/stores/:id/reviews", h.GetStoreReviews)

	g := r.Group("/reviews")
	g.Use(middleware.AuthMiddleware())
	{
		g.POST("/", h.CreateReview)
		g.GET("/mine", h.GetMyReviews)
		g.PUT("/:id", h.UpdateReview)

		// 管理端审核
		admin := g.Group("")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.GET("/pending", h.GetUnpublished)
			admin.PUT("/:id/publish", h.Publish)
		}
	}
}
