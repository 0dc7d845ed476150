package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"xhs_spider/internal/domain/note/model"
	"xhs_spider/internal/domain/note/normalizer"
	taskmodel "xhs_spider/internal/domain/task/model"
	"xhs_spider/internal/pkg/download"
	"xhs_spider/internal/pkg/export"
	"xhs_spider/internal/pkg/uploader"
	"xhs_spider/internal/pkg/xhs"
	"xhs_spider/pkg/cache"
	"xhs_spider/pkg/logger"
	"xhs_spider/pkg/metrics"
)

// ErrExcelNameRequired save_choice 为 excel/all 时必须提供 excel_name
var ErrExcelNameRequired = errors.New("excel_name 不能为空")

// 笔记详情缓存时长，平台数据分钟级变化，不必太久
const noteCacheTTL = 10 * time.Minute

// TaskRecorder 归档任务生命周期，由 task 模块实现，可为 nil
type TaskRecorder interface {
	Begin(kind string, params interface{}) string
	Finish(taskID string, noteCount, processedUsers int, excelPath, ossKey string, runErr error)
}

type NoteService interface {
	// FetchNotesForUsers 逐个用户拉取最新笔记
	// 返回记录列表和实际处理成功的用户数；列表失败的用户跳过
	FetchNotesForUsers(ctx context.Context, userIDs []string, maxUsers, notesPerUser int) ([]model.NoteRecord, int, error)
	// ListUserNotes 拉取单个用户作品列表（列表级字段）
	// searchKeyword 非空时先搜索补 xsec_token；返回记录与原始总数
	ListUserNotes(ctx context.Context, userID string, limit int, searchKeyword string) ([]model.NoteRecord, int, error)
	// SpiderNote 爬取单条笔记并归一化，结果进 Redis 缓存
	SpiderNote(ctx context.Context, noteURL string) (*model.NoteRecord, error)
	SpiderSomeNote(ctx context.Context, noteURLs []string, saveChoice, excelName string) ([]model.NoteRecord, error)
	SpiderUserAllNote(ctx context.Context, userURL string, limit int, saveChoice string) ([]model.NoteRecord, error)
	SpiderSearchNotes(ctx context.Context, query string, requireNum int, opts xhs.SearchNoteOptions, saveChoice, excelName string) ([]model.NoteRecord, error)
	// FetchNoteComments 拉取并归一化笔记评论，excelName 非空时导出
	FetchNoteComments(ctx context.Context, noteURL string, limit int, excelName string) ([]model.CommentRecord, error)
}

type noteService struct {
	client     xhs.Client
	cache      cache.CacheService
	exporter   *export.Exporter
	downloader *download.Downloader
	oss        *uploader.OSSUploader
	recorder   TaskRecorder
}

func NewNoteService(
	client xhs.Client,
	cacheService cache.CacheService,
	exporter *export.Exporter,
	downloader *download.Downloader,
	oss *uploader.OSSUploader,
	recorder TaskRecorder,
) NoteService {
	return &noteService{
		client:     client,
		cache:      cacheService,
		exporter:   exporter,
		downloader: downloader,
		oss:        oss,
		recorder:   recorder,
	}
}

func (s *noteService) FetchNotesForUsers(ctx context.Context, userIDs []string, maxUsers, notesPerUser int) ([]model.NoteRecord, int, error) {
	taskID := s.beginTask(taskmodel.KindUsersBatch, map[string]interface{}{
		"user_ids": userIDs, "max_users": maxUsers, "notes_per_user": notesPerUser,
	})

	records := make([]model.NoteRecord, 0, maxUsers*notesPerUser)
	processedUsers := 0

	for _, userID := range userIDs {
		if processedUsers >= maxUsers {
			break
		}
		userURL := xhs.UserHomeURL(userID)

		items, err := s.client.GetUserAllNotes(ctx, userURL, 0)
		if err != nil {
			// 列表失败跳过该用户，不计入 processed_users
			logger.Log.Warn("获取用户作品列表失败",
				zap.String("user_id", userID), zap.Error(err))
			metrics.GetGlobalCollector().IncUpstreamError("user_posted")
			continue
		}

		if len(items) > notesPerUser {
			items = items[:notesPerUser]
		}
		for _, item := range items {
			if item.NoteID == "" {
				continue
			}
			noteURL := xhs.NoteURL(item.NoteID, item.XsecToken, "pc_user")
			record, err := s.fetchNoteDetail(ctx, noteURL)
			if err != nil {
				// 详情失败退化为列表级记录，不丢笔记
				logger.Log.Warn("获取笔记详情失败，使用列表级字段",
					zap.String("note_id", item.NoteID), zap.Error(err))
				record = normalizer.PartialNoteFromListing(item, userID, noteURL)
			} else {
				record.UserID = userID
				record.HomeURL = xhs.UserHomeURL(userID)
			}
			records = append(records, *record)
		}
		processedUsers++
	}

	metrics.GetGlobalCollector().AddNotesFetched(len(records))
	logger.Log.Info("批量拉取完成",
		zap.Int("notes", len(records)),
		zap.Int("processed_users", processedUsers))
	s.finishTask(taskID, len(records), processedUsers, "", "", nil)
	return records, processedUsers, nil
}

func (s *noteService) ListUserNotes(ctx context.Context, userID string, limit int, searchKeyword string) ([]model.NoteRecord, int, error) {
	userURL := xhs.UserHomeURL(userID)
	if searchKeyword != "" {
		if data, err := s.client.SearchUser(ctx, searchKeyword, 1); err == nil {
			for _, u := range data.Users {
				if u.ID == userID && u.XsecToken != "" {
					userURL = xhs.UserURLWithToken(userID, u.XsecToken, "pc_search")
					break
				}
			}
		} else {
			logger.Log.Warn("搜索用户补 token 失败，使用基础链接",
				zap.String("user_id", userID), zap.Error(err))
		}
	}

	items, err := s.client.GetUserAllNotes(ctx, userURL, 0)
	if err != nil {
		return nil, 0, err
	}
	total := len(items)
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	records := make([]model.NoteRecord, 0, len(items))
	for _, item := range items {
		if item.NoteID == "" {
			continue
		}
		noteURL := xhs.NoteURL(item.NoteID, item.XsecToken, "pc_user")
		records = append(records, *normalizer.PartialNoteFromListing(item, userID, noteURL))
	}
	return records, total, nil
}

func (s *noteService) SpiderNote(ctx context.Context, noteURL string) (*model.NoteRecord, error) {
	noteID, _, err := xhs.ParseNoteURL(noteURL)
	if err != nil {
		return nil, err
	}

	cacheKey := "note:" + noteID
	var cached model.NoteRecord
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Log.Warn("读取笔记缓存失败", zap.String("note_id", noteID), zap.Error(err))
	}

	record, err := s.fetchNoteDetail(ctx, noteURL)
	if err != nil {
		return nil, err
	}
	metrics.GetGlobalCollector().AddNotesFetched(1)

	if err := s.cache.Set(ctx, cacheKey, record, noteCacheTTL); err != nil {
		logger.Log.Warn("写入笔记缓存失败", zap.String("note_id", noteID), zap.Error(err))
	}
	return record, nil
}

func (s *noteService) SpiderSomeNote(ctx context.Context, noteURLs []string, saveChoice, excelName string) ([]model.NoteRecord, error) {
	if download.WantsExcel(saveChoice) && excelName == "" {
		return nil, ErrExcelNameRequired
	}
	taskID := s.beginTask(taskmodel.KindNoteBatch, map[string]interface{}{
		"note_urls": noteURLs, "save_choice": saveChoice, "excel_name": excelName,
	})

	records, ossKey, err := s.spiderBatch(ctx, noteURLs, saveChoice, excelName)
	excelPath := ""
	if download.WantsExcel(saveChoice) {
		excelPath = s.exporter.FilePath(excelName)
	}
	s.finishTask(taskID, len(records), 0, excelPath, ossKey, err)
	return records, err
}

// spiderBatch 逐条爬取并按 save_choice 落盘，单条失败只跳过该条
func (s *noteService) spiderBatch(ctx context.Context, noteURLs []string, saveChoice, excelName string) ([]model.NoteRecord, string, error) {
	records := make([]model.NoteRecord, 0, len(noteURLs))
	for _, noteURL := range noteURLs {
		record, err := s.SpiderNote(ctx, noteURL)
		if err != nil {
			logger.Log.Warn("爬取笔记失败，跳过",
				zap.String("note_url", noteURL), zap.Error(err))
			continue
		}
		records = append(records, *record)
	}

	if download.WantsMedia(saveChoice) {
		for _, record := range records {
			if _, err := s.downloader.DownloadNote(ctx, record, saveChoice); err != nil {
				logger.Log.Warn("下载笔记失败，跳过",
					zap.String("note_id", record.NoteID), zap.Error(err))
			}
		}
	}
	ossKey := ""
	if download.WantsExcel(saveChoice) {
		if err := s.exporter.AppendNotes(excelName, records); err != nil {
			return records, "", fmt.Errorf("导出笔记失败: %w", err)
		}
		ossKey = s.archiveExcel(excelName)
	}
	return records, ossKey, nil
}

func (s *noteService) SpiderUserAllNote(ctx context.Context, userURL string, limit int, saveChoice string) ([]model.NoteRecord, error) {
	userID, _, err := xhs.ParseUserURL(userURL)
	if err != nil {
		return nil, err
	}
	taskID := s.beginTask(taskmodel.KindUserNotes, map[string]interface{}{
		"user_url": userURL, "limit": limit, "save_choice": saveChoice,
	})

	items, err := s.client.GetUserAllNotes(ctx, userURL, limit)
	if err != nil {
		s.finishTask(taskID, 0, 0, "", "", err)
		return nil, err
	}
	logger.Log.Info("用户作品列表拉取完成",
		zap.String("user_id", userID), zap.Int("count", len(items)))

	noteURLs := make([]string, 0, len(items))
	for _, item := range items {
		if item.NoteID == "" {
			continue
		}
		noteURLs = append(noteURLs, xhs.NoteURL(item.NoteID, item.XsecToken, "pc_user"))
	}

	// 整用户爬取固定用 user_id 作为表名
	records, ossKey, err := s.spiderBatch(ctx, noteURLs, saveChoice, userID)
	excelPath := ""
	if download.WantsExcel(saveChoice) {
		excelPath = s.exporter.FilePath(userID)
	}
	s.finishTask(taskID, len(records), 1, excelPath, ossKey, err)
	return records, err
}

func (s *noteService) SpiderSearchNotes(ctx context.Context, query string, requireNum int, opts xhs.SearchNoteOptions, saveChoice, excelName string) ([]model.NoteRecord, error) {
	taskID := s.beginTask(taskmodel.KindSearch, map[string]interface{}{
		"query": query, "require_num": requireNum, "save_choice": saveChoice,
	})

	items, err := s.client.SearchSomeNote(ctx, query, requireNum, opts)
	if err != nil {
		s.finishTask(taskID, 0, 0, "", "", err)
		return nil, err
	}

	noteURLs := make([]string, 0, len(items))
	for _, item := range items {
		// 搜索结果混着用户等其他类型
		if item.ModelType != "note" || item.ID == "" {
			continue
		}
		noteURLs = append(noteURLs, xhs.NoteURL(item.ID, item.XsecToken, "pc_search"))
	}
	logger.Log.Info("笔记搜索完成",
		zap.String("query", query), zap.Int("count", len(noteURLs)))

	// 搜索爬取默认用关键词作为表名
	if download.WantsExcel(saveChoice) && excelName == "" {
		excelName = query
	}
	records, ossKey, err := s.spiderBatch(ctx, noteURLs, saveChoice, excelName)
	excelPath := ""
	if download.WantsExcel(saveChoice) {
		excelPath = s.exporter.FilePath(excelName)
	}
	s.finishTask(taskID, len(records), 0, excelPath, ossKey, err)
	return records, err
}

func (s *noteService) FetchNoteComments(ctx context.Context, noteURL string, limit int, excelName string) ([]model.CommentRecord, error) {
	taskID := s.beginTask(taskmodel.KindComments, map[string]interface{}{
		"note_url": noteURL, "limit": limit, "excel_name": excelName,
	})

	items, err := s.client.GetNoteAllComments(ctx, noteURL, limit)
	if err != nil {
		s.finishTask(taskID, 0, 0, "", "", err)
		return nil, err
	}

	records := make([]model.CommentRecord, 0, len(items))
	for _, item := range items {
		record, err := normalizer.NormalizeComment(&item)
		if err != nil {
			logger.Log.Warn("归一化评论失败，跳过", zap.Error(err))
			continue
		}
		records = append(records, *record)
	}

	excelPath := ""
	ossKey := ""
	if excelName != "" {
		if err := s.exporter.AppendComments(excelName, records); err != nil {
			s.finishTask(taskID, len(records), 0, "", "", err)
			return records, fmt.Errorf("导出评论失败: %w", err)
		}
		excelPath = s.exporter.FilePath(excelName)
		ossKey = s.archiveExcel(excelName)
	}
	s.finishTask(taskID, len(records), 0, excelPath, ossKey, nil)
	return records, nil
}

func (s *noteService) fetchNoteDetail(ctx context.Context, noteURL string) (*model.NoteRecord, error) {
	item, err := s.client.GetNoteInfo(ctx, noteURL)
	if err != nil {
		if xhs.IsUpstream(err) {
			metrics.GetGlobalCollector().IncUpstreamError("feed")
		}
		return nil, err
	}
	record, err := normalizer.NormalizeNote(item)
	if err != nil {
		return nil, fmt.Errorf("归一化笔记失败: %w", err)
	}
	return record, nil
}

func (s *noteService) beginTask(kind string, params interface{}) string {
	if s.recorder == nil {
		return ""
	}
	return s.recorder.Begin(kind, params)
}

func (s *noteService) finishTask(taskID string, noteCount, processedUsers int, excelPath, ossKey string, runErr error) {
	if s.recorder == nil {
		return
	}
	s.recorder.Finish(taskID, noteCount, processedUsers, excelPath, ossKey, runErr)
}

// archiveExcel 配置启用 OSS 时把表格归档，失败只记日志返回空串
func (s *noteService) archiveExcel(excelName string) string {
	if s.oss == nil {
		return ""
	}
	key, err := s.oss.UploadFile(s.exporter.FilePath(excelName))
	if err != nil {
		logger.Log.Warn("归档表格到 OSS 失败", zap.Error(err))
		return ""
	}
	return key
}
