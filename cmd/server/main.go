package main

import (
	"time"

	_ "deal_market/docs"
	_ "deal_market/internal/domain/common"
	_ "deal_market/internal/domain/deal"
	_ "deal_market/internal/domain/notification"
	_ "deal_market/internal/domain/review"
	_ "deal_market/internal/domain/reward"
	_ "deal_market/internal/domain/store"
	_ "deal_market/internal/domain/user"
	_ "deal_market/internal/domain/visit"
	"deal_market/internal/pkg/config"
	"deal_market/internal/pkg/middleware"
	"deal_market/internal/pkg/push"
	"deal_market/internal/pkg/registry"
	"deal_market/internal/pkg/uploader"
	"deal_market/internal/pkg/worker"
	"deal_market/pkg/cache"
	"deal_market/pkg/database"
	"deal_market/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title Deal Market API
// @version 1.0
// @description 本地商家优惠与积分平台
// @BasePath /
func main() {
	// 1. 配置与日志
	config.LoadConfig()
	logger.InitLogger(config.GlobalConfig.App.Debug)
	defer logger.Sync()

	gin.SetMode(config.GlobalConfig.Server.Mode)

	// 2. 基础设施
	db := database.InitDatabase()
	reporting := database.InitReportingDB()
	rdb := database.InitRedis()

	workers := worker.NewPool(10, 1000)
	workers.Start()

	// 推送与 OSS 未配置时降级，不阻塞启动
	if svc, err := push.NewAliyunPushService(); err != nil {
		logger.Warn("Push service disabled", zap.Error(err))
	} else {
		push.GlobalPushService = svc
	}
	if err := uploader.InitUploader(); err != nil {
		logger.Warn("Uploader disabled", zap.Error(err))
	}

	// 3. HTTP 引擎与全局中间件
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.RateLimitMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 4. 业务模块初始化
	ctx := &registry.ModuleContext{
		DB:        db,
		Reporting: reporting,
		Redis:     rdb,
		Cache:     cache.NewRedisCache(rdb),
		Workers:   workers,
		Router:    r,
	}
	if err := registry.InitModules(ctx); err != nil {
		logger.Log.Fatal("Failed to initialize modules", zap.Error(err))
	}

	// 5. 启动
	addr := ":" + config.GlobalConfig.Server.Port
	logger.Info("Server starting", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Log.Fatal("Server exited", zap.Error(err))
	}
}
