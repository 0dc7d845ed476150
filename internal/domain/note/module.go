package note

import (
	"github.com/gin-gonic/gin"

	"xhs_spider/internal/domain/note/handler"
	"xhs_spider/internal/domain/note/service"
	"xhs_spider/internal/domain/task"
	"xhs_spider/internal/pkg/config"
	"xhs_spider/internal/pkg/download"
	"xhs_spider/internal/pkg/export"
	"xhs_spider/internal/pkg/registry"
	"xhs_spider/pkg/cache"
)

// NoteModule 笔记爬取模块
type NoteModule struct{}

func init() {
	registry.Register(&NoteModule{})
}

func (m *NoteModule) Name() string {
	return "note"
}

// Priority 晚于 task 模块，Init 时要拿它的归档服务
func (m *NoteModule) Priority() int {
	return 10
}

func (m *NoteModule) Init(ctx *registry.ModuleContext) error {
	storage := config.GlobalConfig.Storage

	nService := service.NewNoteService(
		ctx.XHS,
		cache.NewRedisCache(ctx.Redis),
		export.NewExporter(storage.ExcelPath),
		download.NewDownloader(storage.MediaPath),
		ctx.OSS,
		task.Service(),
	)
	nHandler := handler.NewNoteHandler(nService)

	setupRoutes(ctx.Router, nHandler)
	return nil
}

func setupRoutes(r *gin.Engine, h *handler.NoteHandler) {
	r.POST("/api/users/notes", h.GetUsersNotes)
	r.GET("/api/user/notes/:user_id", h.GetUserNotes)
	r.POST("/api/user/notes/spider", h.SpiderUserNotes)
	r.POST("/api/notes/spider", h.SpiderNotes)
	r.POST("/api/search/notes", h.SearchNotes)
	r.GET("/api/note/comments", h.GetNoteComments)
}
