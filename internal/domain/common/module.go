package common

import (
	commonHandler "deal_market/internal/pkg/common"
	"deal_market/internal/pkg/middleware"
	"deal_market/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// CommonModule 通用功能模块
type CommonModule struct{}

func init() {
	registry.Register(&CommonModule{})
}

func (m *CommonModule) Name() string {
	return "common"
}

func (m *CommonModule) Priority() int {
	return 100 // 最后初始化
}

func (m *CommonModule) Init(ctx *registry.ModuleContext) error {
	// 注册通用路由
	setupRoutes(ctx.Router)
	return nil
}

func setupRoutes(r *gin.Engine) {
	// 文件上传接口，商家传门店照片用
	r.POST("/upload", middleware.AuthMiddleware(), commonHandler.UploadFile)
}
