package user

import (
	"github.com/gin-gonic/gin"

	"xhs_spider/internal/domain/user/handler"
	"xhs_spider/internal/domain/user/service"
	"xhs_spider/internal/pkg/config"
	"xhs_spider/internal/pkg/export"
	"xhs_spider/internal/pkg/registry"
)

// UserModule 用户搜索与主页模块
type UserModule struct{}

func init() {
	registry.Register(&UserModule{})
}

func (m *UserModule) Name() string {
	return "user"
}

func (m *UserModule) Priority() int {
	return 10
}

func (m *UserModule) Init(ctx *registry.ModuleContext) error {
	storage := config.GlobalConfig.Storage
	uService := service.NewUserService(ctx.XHS, export.NewExporter(storage.ExcelPath), storage.MediaPath)
	uHandler := handler.NewUserHandler(uService)

	setupRoutes(ctx.Router, uHandler)
	return nil
}

func setupRoutes(r *gin.Engine, h *handler.UserHandler) {
	r.POST("/api/search/user", h.SearchUser)
	r.POST("/api/search/user/batch", h.SearchUserBatch)
	r.GET("/api/user/detail/:user_id", h.GetUserDetail)
	r.GET("/api/user/url/:user_id", h.GetUserURL)
}
