package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	usermodel "xhs_spider/internal/domain/user/model"
	"xhs_spider/internal/domain/user/service"
	"xhs_spider/internal/pkg/xhs"
	"xhs_spider/pkg/response"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type SearchUserInput struct {
	Query string `json:"query" binding:"required"`
	Page  int    `json:"page"`
}

// SearchUser 搜索用户
// @Summary 搜索用户
// @Tags user
// @Param body body SearchUserInput true "搜索参数"
// @Success 200 {object} response.Response
// @Router /api/search/user [post]
func (h *UserHandler) SearchUser(c *gin.Context) {
	var input SearchUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}
	if input.Page <= 0 {
		input.Page = 1
	}

	data, err := h.service.SearchUser(c.Request.Context(), input.Query, input.Page)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrUpstreamFailed, err.Error())
		return
	}

	response.Success(c, data)
}

type SearchUserBatchInput struct {
	Query      string `json:"query" binding:"required"`
	RequireNum int    `json:"require_num"`
}

// SearchUserBatch 批量搜索用户，凑满指定数量
// @Summary 批量搜索用户
// @Tags user
// @Param body body SearchUserBatchInput true "搜索参数"
// @Success 200 {object} response.Response
// @Router /api/search/user/batch [post]
func (h *UserHandler) SearchUserBatch(c *gin.Context) {
	var input SearchUserBatchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}
	if input.RequireNum <= 0 {
		input.RequireNum = 15
	}

	users, err := h.service.SearchSomeUser(c.Request.Context(), input.Query, input.RequireNum)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrUpstreamFailed, err.Error())
		return
	}

	response.Success(c, gin.H{
		"users": users,
		"count": len(users),
	})
}

// GetUserDetail 获取归一化后的用户主页信息
// 带 excel_name 参数时同时落盘（xlsx 追加一行 + detail.txt）
// @Summary 用户详情
// @Tags user
// @Param user_id path string true "用户id"
// @Param excel_name query string false "导出表名，给出时落盘"
// @Success 200 {object} response.Response
// @Router /api/user/detail/{user_id} [get]
func (h *UserHandler) GetUserDetail(c *gin.Context) {
	userID := c.Param("user_id")

	var record *usermodel.UserRecord
	var err error
	if excelName := c.Query("excel_name"); excelName != "" {
		record, err = h.service.ExportUserDetail(c.Request.Context(), userID, excelName)
	} else {
		record, err = h.service.GetUserDetail(c.Request.Context(), userID)
	}
	if err != nil {
		if xhs.IsUpstream(err) {
			response.Error(c, http.StatusInternalServerError, response.ErrUpstreamFailed, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrUserNotFound, err.Error())
		return
	}

	response.Success(c, record)
}

// GetUserURL 拼出带 xsec_token 的用户主页完整链接
// @Summary 用户完整链接
// @Tags user
// @Param user_id path string true "用户id"
// @Param search_keyword query string false "搜索关键词"
// @Success 200 {object} response.Response
// @Router /api/user/url/{user_id} [get]
func (h *UserHandler) GetUserURL(c *gin.Context) {
	userID := c.Param("user_id")
	searchKeyword := c.Query("search_keyword")

	result, err := h.service.ResolveUserURL(c.Request.Context(), userID, searchKeyword)
	if err != nil {
		// 搜不到时仍返回基础链接供调用方兜底
		if errors.Is(err, service.ErrUserNotInSearch) {
			response.FailWithData(c, http.StatusNotFound, response.ErrUserNotFound, err.Error(), result)
			return
		}
		response.FailWithData(c, http.StatusInternalServerError, response.ErrUpstreamFailed, err.Error(), result)
		return
	}

	response.Success(c, result)
}
