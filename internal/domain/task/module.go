package task

import (
	"github.com/gin-gonic/gin"

	"xhs_spider/internal/domain/task/handler"
	"xhs_spider/internal/domain/task/repository"
	"xhs_spider/internal/domain/task/service"
	"xhs_spider/internal/pkg/middleware"
	"xhs_spider/internal/pkg/registry"
)

// TaskModule 任务归档模块
type TaskModule struct {
	service service.TaskService
}

var taskModule = &TaskModule{}

func init() {
	registry.Register(taskModule)
}

func (m *TaskModule) Name() string {
	return "task"
}

// Priority 先于 note 模块初始化，note 模块在 Init 里取 Service
func (m *TaskModule) Priority() int {
	return 5
}

func (m *TaskModule) Init(ctx *registry.ModuleContext) error {
	tRepo := repository.NewTaskRepository(ctx.DB)
	m.service = service.NewTaskService(tRepo)
	tHandler := handler.NewTaskHandler(m.service)

	setupRoutes(ctx.Router, tHandler)
	return nil
}

// Service 暴露给依赖任务归档的模块
func Service() service.TaskService {
	return taskModule.service
}

func setupRoutes(r *gin.Engine, h *handler.TaskHandler) {
	g := r.Group("/api/tasks")
	g.Use(middleware.AuthMiddleware())
	{
		g.GET("", h.GetTaskList)
		g.GET("/:id", h.GetTask)
	}
}
