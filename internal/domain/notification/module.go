package notification

import (
	"deal_market/internal/domain/notification/handler"
	"deal_market/internal/domain/notification/repository"
	"deal_market/internal/domain/notification/service"
	"deal_market/internal/pkg/middleware"
	"deal_market/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// NotificationModule 通知模块
type NotificationModule struct{}

func init() {
	registry.Register(&NotificationModule{})
}

func (m *NotificationModule) Name() string {
	return "notification"
}

func (m *NotificationModule) Priority() int {
	return 30
}

func (m *NotificationModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	nRepo := repository.NewNotificationRepository(ctx.DB)
	nService := service.NewNotificationService(nRepo, ctx.Workers)
	nHandler := handler.NewNotificationHandler(nService)

	// 2. 路由注册
	setupRoutes(ctx.Router, nHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.NotificationHandler) {
	g := r.Group("/notifications")
	g.Use(middleware.AuthMiddleware())
	{
		g.GET("/", h.GetNotifications)
		g.GET("/unread", h.GetUnreadCount)
		g.PUT("/:id/read", h.MarkRead)
		g.PUT("/read-all", h.MarkAllRead)
	}
}
