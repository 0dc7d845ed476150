package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"xhs_spider/internal/domain/task/service"
	"xhs_spider/pkg/response"
	"xhs_spider/pkg/utils"
)

type TaskHandler struct {
	service service.TaskService
}

func NewTaskHandler(service service.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// GetTaskList 分页查询任务归档
// @Summary 任务列表
// @Tags task
// @Security ApiKeyAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} response.Response
// @Router /api/tasks [get]
func (h *TaskHandler) GetTaskList(c *gin.Context) {
	var page utils.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}
	offset, limit := page.GetPageOffset()

	tasks, total, err := h.service.GetTaskList(offset, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, utils.PageResult{
		List:  tasks,
		Total: total,
		Page:  page.Page,
		Limit: page.Limit,
	})
}

// GetTask 按 id 查询单条任务
// @Summary 任务详情
// @Tags task
// @Security ApiKeyAuth
// @Param id path string true "任务id"
// @Success 200 {object} response.Response
// @Router /api/tasks/{id} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	id := c.Param("id")

	task, err := h.service.GetTask(id)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrTaskNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, task)
}
