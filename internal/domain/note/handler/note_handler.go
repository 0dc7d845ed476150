package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"xhs_spider/internal/domain/note/service"
	"xhs_spider/internal/pkg/xhs"
	"xhs_spider/pkg/response"
)

type NoteHandler struct {
	service service.NoteService
}

func NewNoteHandler(service service.NoteService) *NoteHandler {
	return &NoteHandler{service: service}
}

type UsersNotesInput struct {
	UserIDs      []string `json:"user_ids" binding:"required"`
	MaxUsers     int      `json:"max_users"`
	NotesPerUser int      `json:"notes_per_user"`
}

// GetUsersNotes 批量拉取多个用户的最新笔记
// @Summary 批量拉取用户笔记
// @Tags note
// @Param body body UsersNotesInput true "拉取参数"
// @Success 200 {object} response.Response
// @Router /api/users/notes [post]
func (h *NoteHandler) GetUsersNotes(c *gin.Context) {
	var input UsersNotesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}
	if input.MaxUsers <= 0 {
		input.MaxUsers = 5
	}
	if input.NotesPerUser <= 0 {
		input.NotesPerUser = 5
	}

	records, processedUsers, err := h.service.FetchNotesForUsers(
		c.Request.Context(), input.UserIDs, input.MaxUsers, input.NotesPerUser)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrUpstreamFailed, err.Error())
		return
	}

	response.Success(c, gin.H{
		"notes":           records,
		"count":           len(records),
		"users_processed": processedUsers,
	})
}

// GetUserNotes 拉取单个用户的作品列表
// @Summary 单用户笔记列表
// @Tags note
// @Param user_id path string true "用户id"
// @Param limit query int false "数量上限，默认20"
// @Param search_keyword query string false "用于补 xsec_token 的搜索关键词"
// @Success 200 {object} response.Response
// @Router /api/user/notes/{user_id} [get]
func (h *NoteHandler) GetUserNotes(c *gin.Context) {
	userID := c.Param("user_id")
	limit := 20
	if v, err := parseIntQuery(c, "limit"); err == nil && v > 0 {
		limit = v
	}
	searchKeyword := c.Query("search_keyword")

	records, total, err := h.service.ListUserNotes(c.Request.Context(), userID, limit, searchKeyword)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrUpstreamFailed, err.Error())
		return
	}

	response.Success(c, gin.H{
		"notes": records,
		"count": len(records),
		"total": total,
	})
}

type SpiderNotesInput struct {
	NoteURLs   []string `json:"note_urls" binding:"required"`
	SaveChoice string   `json:"save_choice"`
	ExcelName  string   `json:"excel_name"`
}

// SpiderNotes 按链接批量爬取笔记并落盘
// @Summary 批量爬取笔记
// @Tags note
// @Param body body SpiderNotesInput true "爬取参数"
// @Success 200 {object} response.Response
// @Router /api/notes/spider [post]
func (h *NoteHandler) SpiderNotes(c *gin.Context) {
	var input SpiderNotesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	records, err := h.service.SpiderSomeNote(
		c.Request.Context(), input.NoteURLs, input.SaveChoice, input.ExcelName)
	if err != nil {
		if errors.Is(err, service.ErrExcelNameRequired) {
			response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrUpstreamFailed, err.Error())
		return
	}

	response.Success(c, gin.H{
		"notes": records,
		"count": len(records),
	})
}

type SpiderUserNotesInput struct {
	UserURL    string `json:"user_url" binding:"required"`
	Limit      int    `json:"limit"`
	SaveChoice string `json:"save_choice"`
}

// SpiderUserNotes 爬取用户全部笔记
// @Summary 爬取用户全部笔记
// @Tags note
// @Param body body SpiderUserNotesInput true "爬取参数"
// @Success 200 {object} response.Response
// @Router /api/user/notes/spider [post]
func (h *NoteHandler) SpiderUserNotes(c *gin.Context) {
	var input SpiderUserNotesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	records, err := h.service.SpiderUserAllNote(
		c.Request.Context(), input.UserURL, input.Limit, input.SaveChoice)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrUpstreamFailed, err.Error())
		return
	}

	response.Success(c, gin.H{
		"notes": records,
		"count": len(records),
	})
}

type SearchNotesInput struct {
	Query      string   `json:"query" binding:"required"`
	RequireNum int      `json:"require_num"`
	SortType   int      `json:"sort_type"`
	NoteType   int      `json:"note_type"`
	NoteTime   int      `json:"note_time"`
	NoteRange  int      `json:"note_range"`
	PosDist    int      `json:"pos_distance"`
	Geo        *xhs.Geo `json:"geo"`
	SaveChoice string   `json:"save_choice"`
	ExcelName  string   `json:"excel_name"`
}

// SearchNotes 按关键词搜索并爬取笔记
// @Summary 搜索爬取笔记
// @Tags note
// @Param body body SearchNotesInput true "搜索参数"
// @Success 200 {object} response.Response
// @Router /api/search/notes [post]
func (h *NoteHandler) SearchNotes(c *gin.Context) {
	var input SearchNotesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}
	if input.RequireNum <= 0 {
		input.RequireNum = 10
	}

	opts := xhs.SearchNoteOptions{
		SortType:    input.SortType,
		NoteType:    input.NoteType,
		NoteTime:    input.NoteTime,
		NoteRange:   input.NoteRange,
		PosDistance: input.PosDist,
		Geo:         input.Geo,
	}
	records, err := h.service.SpiderSearchNotes(
		c.Request.Context(), input.Query, input.RequireNum, opts, input.SaveChoice, input.ExcelName)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrUpstreamFailed, err.Error())
		return
	}

	response.Success(c, gin.H{
		"notes": records,
		"count": len(records),
	})
}

// GetNoteComments 拉取笔记评论
// @Summary 笔记评论
// @Tags note
// @Param note_url query string true "笔记链接"
// @Param limit query int false "数量上限"
// @Param excel_name query string false "导出表名"
// @Success 200 {object} response.Response
// @Router /api/note/comments [get]
func (h *NoteHandler) GetNoteComments(c *gin.Context) {
	noteURL := c.Query("note_url")
	if noteURL == "" {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "note_url 参数不能为空")
		return
	}
	limit := 0
	if v, err := parseIntQuery(c, "limit"); err == nil && v > 0 {
		limit = v
	}

	records, err := h.service.FetchNoteComments(
		c.Request.Context(), noteURL, limit, c.Query("excel_name"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrUpstreamFailed, err.Error())
		return
	}

	response.Success(c, gin.H{
		"comments": records,
		"count":    len(records),
	})
}
