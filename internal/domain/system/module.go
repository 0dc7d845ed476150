package system

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "xhs_spider/docs"
	"xhs_spider/internal/pkg/registry"
	"xhs_spider/pkg/metrics"
)

// SystemModule 健康检查、指标与接口文档
type SystemModule struct{}

func init() {
	registry.Register(&SystemModule{})
}

func (m *SystemModule) Name() string {
	return "system"
}

func (m *SystemModule) Priority() int {
	return 1
}

func (m *SystemModule) Init(ctx *registry.ModuleContext) error {
	r := ctx.Router

	r.GET("/health", healthCheck)
	// 指标注册在默认 registry（见 pkg/metrics）
	metrics.GetGlobalCollector()
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return nil
}

// healthCheck 健康检查
// @Summary 健康检查
// @Tags system
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "XHS Spider Service",
		"message": "爬虫服务运行正常",
	})
}
