package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "xhs_spider/internal/domain/note"
	_ "xhs_spider/internal/domain/system"
	_ "xhs_spider/internal/domain/task"
	_ "xhs_spider/internal/domain/user"
	"xhs_spider/internal/pkg/config"
	"xhs_spider/internal/pkg/middleware"
	"xhs_spider/internal/pkg/registry"
	"xhs_spider/internal/pkg/uploader"
	"xhs_spider/internal/pkg/xhs"
	"xhs_spider/pkg/database"
	"xhs_spider/pkg/logger"
)

// @title XHS Spider API
// @version 1.0
// @description 小红书数据采集服务
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	config.LoadConfig()
	logger.Init(config.GlobalConfig.App.Debug)
	defer logger.Sync()

	gin.SetMode(config.GlobalConfig.Server.Mode)

	db := database.InitDatabase()
	redisClient := database.InitRedis()
	xhsClient := xhs.NewClient(config.GlobalConfig.XHS)

	oss, err := uploader.NewOSSUploader(config.GlobalConfig.OSS)
	if err != nil {
		logger.Log.Fatal("初始化 OSS 失败", zap.Error(err))
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.TraceMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	if err := registry.InitModules(&registry.ModuleContext{
		DB:     db,
		Redis:  redisClient,
		Router: router,
		XHS:    xhsClient,
		OSS:    oss,
	}); err != nil {
		logger.Log.Fatal("初始化模块失败", zap.Error(err))
	}

	srv := &http.Server{
		Addr:    ":" + config.GlobalConfig.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Log.Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("服务异常退出", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("开始优雅关停")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("关停超时", zap.Error(err))
	}
	logger.Log.Info("服务已退出")
}
