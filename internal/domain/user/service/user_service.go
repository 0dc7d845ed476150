package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"xhs_spider/internal/domain/user/model"
	"xhs_spider/internal/domain/user/normalizer"
	"xhs_spider/internal/pkg/download"
	"xhs_spider/internal/pkg/export"
	"xhs_spider/internal/pkg/xhs"
	"xhs_spider/pkg/logger"
)

// ErrUserNotInSearch 搜索结果里没有目标用户
var ErrUserNotInSearch = errors.New("未在搜索结果中找到该用户")

type UserService interface {
	SearchUser(ctx context.Context, query string, page int) (*xhs.SearchUserData, error)
	SearchSomeUser(ctx context.Context, query string, requireNum int) ([]xhs.SearchedUser, error)
	GetUserDetail(ctx context.Context, userID string) (*model.UserRecord, error)
	// ExportUserDetail 归一化用户信息并落盘：xlsx 追加一行，
	// 媒体目录下写 detail.txt
	ExportUserDetail(ctx context.Context, userID, excelName string) (*model.UserRecord, error)
	// ResolveUserURL 通过搜索拿 xsec_token 拼出完整主页链接
	// searchKeyword 为空时直接返回基础链接
	ResolveUserURL(ctx context.Context, userID, searchKeyword string) (*model.UserURLResult, error)
}

type userService struct {
	client    xhs.Client
	exporter  *export.Exporter
	mediaPath string
}

func NewUserService(client xhs.Client, exporter *export.Exporter, mediaPath string) UserService {
	return &userService{client: client, exporter: exporter, mediaPath: mediaPath}
}

func (s *userService) SearchUser(ctx context.Context, query string, page int) (*xhs.SearchUserData, error) {
	return s.client.SearchUser(ctx, query, page)
}

func (s *userService) SearchSomeUser(ctx context.Context, query string, requireNum int) ([]xhs.SearchedUser, error) {
	return s.client.SearchSomeUser(ctx, query, requireNum)
}

func (s *userService) GetUserDetail(ctx context.Context, userID string) (*model.UserRecord, error) {
	data, err := s.client.GetUserInfo(ctx, userID)
	if err != nil {
		return nil, err
	}
	record, err := normalizer.NormalizeUser(userID, data)
	if err != nil {
		return nil, fmt.Errorf("归一化用户 %s 失败: %w", userID, err)
	}
	return record, nil
}

func (s *userService) ExportUserDetail(ctx context.Context, userID, excelName string) (*model.UserRecord, error) {
	record, err := s.GetUserDetail(ctx, userID)
	if err != nil {
		return nil, err
	}

	if excelName != "" {
		if err := s.exporter.AppendUsers(excelName, []model.UserRecord{*record}); err != nil {
			return record, fmt.Errorf("导出用户失败: %w", err)
		}
	}

	// 用户目录与笔记落盘共用命名规则
	dir := filepath.Join(s.mediaPath,
		fmt.Sprintf("%s_%s", download.NormString(record.Nickname), userID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return record, err
	}
	if err := export.SaveUserDetail(*record, dir); err != nil {
		logger.Log.Warn("写用户 detail.txt 失败",
			zap.String("user_id", userID), zap.Error(err))
	}
	return record, nil
}

func (s *userService) ResolveUserURL(ctx context.Context, userID, searchKeyword string) (*model.UserURLResult, error) {
	result := &model.UserURLResult{
		UserID:  userID,
		BaseURL: xhs.UserHomeURL(userID),
	}
	if searchKeyword == "" {
		result.FullURL = result.BaseURL
		return result, nil
	}

	data, err := s.client.SearchUser(ctx, searchKeyword, 1)
	if err != nil {
		return result, err
	}
	for _, u := range data.Users {
		if u.ID == userID && u.XsecToken != "" {
			result.XsecToken = u.XsecToken
			result.FullURL = xhs.UserURLWithToken(userID, u.XsecToken, "pc_search")
			return result, nil
		}
	}
	return result, ErrUserNotInSearch
}
