package user

import (
	rewardRepo "deal_market/internal/domain/reward/repository"
	rewardService "deal_market/internal/domain/reward/service"
	"deal_market/internal/domain/user/handler"
	"deal_market/internal/domain/user/repository"
	"deal_market/internal/domain/user/service"
	"deal_market/internal/pkg/config"
	"deal_market/internal/pkg/middleware"
	"deal_market/internal/pkg/otp"
	"deal_market/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// UserModule 用户模块
type UserModule struct{}

func init() {
	// 自动注册模块
	registry.Register(&UserModule{})
}

func (m *UserModule) Name() string {
	return "user"
}

func (m *UserModule) Priority() int {
	// 用户模块优先级最高，因为其他模块可能依赖它
	return 1
}

func (m *UserModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	uRepo := repository.NewUserRepository(ctx.DB)
	otpService := otp.NewOTPService(ctx.Redis)

	// 注册时的邀请码绑定走 referral 服务
	refRepo := rewardRepo.NewReferralRepository(ctx.DB)
	rService := rewardService.NewRewardService(rewardRepo.NewRewardRepository(ctx.DB), nil, config.GlobalConfig.Reward)
	phoneOf := func(userID string) (string, error) {
		u, err := uRepo.GetByID(userID)
		if err != nil {
			return "", err
		}
		return u.Phone, nil
	}
	refService := rewardService.NewReferralService(refRepo, rService, nil, phoneOf, config.GlobalConfig.Reward)

	uService := service.NewUserService(uRepo, otpService, refService)
	uHandler := handler.NewUserHandler(uService)

	// 2. 路由注册
	setupRoutes(ctx.Router, uHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.UserHandler) {
	// 公开路由
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/otp", middleware.OTPRateLimitMiddleware(), h.SendOTP) // 发送验证码
		authGroup.POST("/login", h.LoginOrRegister)                            // 登录/注册
	}

	// 当前用户
	meGroup := r.Group("/me")
	meGroup.Use(middleware.AuthMiddleware())
	{
		meGroup.GET("", h.GetProfile)
		meGroup.PUT("", h.UpdateProfile)
		meGroup.POST("/partner", h.BecomePartner)
		meGroup.DELETE("", h.DeleteAccount)
	}

	// 管理端
	userGroup := r.Group("/users")
	userGroup.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		userGroup.GET("/", h.GetUsers)
		userGroup.GET("/:id", h.GetUser)
		userGroup.PUT("/:id/ban", h.BanUser)
	}
}
