// Package normalizer 把平台返回的嵌套载荷拍平成稳定的记录结构。
// 只有结构性字段缺失才报错，可选字段一律用占位值兜底。
package normalizer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"xhs_spider/internal/domain/note/model"
	"xhs_spider/internal/pkg/xhs"
)

// 结构性字段缺失
var (
	ErrMissingNoteID   = errors.New("note payload missing id")
	ErrMissingNoteCard = errors.New("note payload missing note_card")
	ErrMissingNoteType = errors.New("note payload missing type")
	ErrMissingNoteUser = errors.New("note payload missing user")
	ErrMissingInteract = errors.New("note payload missing interact_info")
	ErrMissingComment  = errors.New("comment payload missing id or user_info")
)

// NormalizeNote 把笔记详情载荷归一化为 NoteRecord
// 同一份载荷多次归一化产出完全一致的记录
func NormalizeNote(raw *xhs.NoteItem) (*model.NoteRecord, error) {
	if raw == nil || raw.ID == "" {
		return nil, ErrMissingNoteID
	}
	card := raw.NoteCard
	if card == nil {
		return nil, fmt.Errorf("note %s: %w", raw.ID, ErrMissingNoteCard)
	}
	if card.Type == "" {
		return nil, fmt.Errorf("note %s: %w", raw.ID, ErrMissingNoteType)
	}
	if card.User == nil || card.User.UserID == "" {
		return nil, fmt.Errorf("note %s: %w", raw.ID, ErrMissingNoteUser)
	}
	if card.InteractInfo == nil {
		return nil, fmt.Errorf("note %s: %w", raw.ID, ErrMissingInteract)
	}

	rec := &model.NoteRecord{
		NoteID:         raw.ID,
		NoteURL:        raw.URL,
		NoteType:       noteTypeLabel(card.Type),
		UserID:         card.User.UserID,
		HomeURL:        xhs.UserHomeURL(card.User.UserID),
		Nickname:       card.User.Nickname,
		Avatar:         card.User.Avatar,
		Title:          normalizeTitle(card.Title),
		Desc:           card.Desc,
		Tags:           extractTagNames(card.TagList),
		LikedCount:     xhs.ParseCount(card.InteractInfo.LikedCount),
		CollectedCount: xhs.ParseCount(card.InteractInfo.CollectedCount),
		CommentCount:   xhs.ParseCount(card.InteractInfo.CommentCount),
		ShareCount:     xhs.ParseCount(card.InteractInfo.ShareCount),
		UploadTime:     formatTimestamp(card.Time),
		IPLocation:     normalizeIPLocation(card.IPLocation),
	}

	images := resolveImageList(card.ImageList)
	if rec.NoteType == model.NoteTypeVideo {
		resolveVideo(rec, card, images)
	} else {
		rec.ImageList = images
	}

	return rec, nil
}

// NormalizeComment 把评论载荷归一化为 CommentRecord
func NormalizeComment(raw *xhs.CommentItem) (*model.CommentRecord, error) {
	if raw == nil || raw.ID == "" || raw.UserInfo == nil || raw.UserInfo.UserID == "" {
		return nil, ErrMissingComment
	}

	pictures := resolveImageList(raw.Pictures)

	return &model.CommentRecord{
		NoteID:     raw.NoteID,
		NoteURL:    raw.NoteURL,
		CommentID:  raw.ID,
		UserID:     raw.UserInfo.UserID,
		HomeURL:    xhs.UserHomeURL(raw.UserInfo.UserID),
		Nickname:   raw.UserInfo.Nickname,
		Avatar:     raw.UserInfo.Image,
		Content:    raw.Content,
		ShowTags:   raw.ShowTags,
		LikeCount:  xhs.ParseCount(raw.LikeCount),
		UploadTime: formatTimestamp(raw.CreateTime),
		IPLocation: normalizeIPLocation(raw.IPLocation),
		Pictures:   pictures,
	}, nil
}

// PartialNoteFromListing 详情获取失败时，用列表级字段构造兜底记录
// 输出不能低于列表接口已经给到的信息
func PartialNoteFromListing(item xhs.UserNoteItem, userID, noteURL string) *model.NoteRecord {
	title := item.DisplayTitle
	if title == "" {
		title = item.Title
	}
	return &model.NoteRecord{
		NoteID:    item.NoteID,
		NoteURL:   noteURL,
		NoteType:  noteTypeLabel(item.Type),
		UserID:    userID,
		HomeURL:   xhs.UserHomeURL(userID),
		Title:     normalizeTitle(title),
		Desc:      item.Desc,
		XsecToken: item.XsecToken,
	}
}

// noteTypeLabel normal 为图集，其余都按视频
func noteTypeLabel(rawType string) string {
	if rawType == "normal" {
		return model.NoteTypeImage
	}
	return model.NoteTypeVideo
}

// normalizeTitle 空白标题替换为占位值，展示层约定
func normalizeTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return model.UntitledTitle
	}
	return title
}

func normalizeIPLocation(loc string) string {
	if loc == "" {
		return model.UnknownIPLocation
	}
	return loc
}

// extractTagNames 逐个提取标签名，坏条目跳过不影响整体
func extractTagNames(tags []xhs.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag.Name == "" {
			continue
		}
		names = append(names, tag.Name)
	}
	return names
}

// formatTimestamp 毫秒时间戳转本地时间串，0 值返回空串
func formatTimestamp(ms int64) string {
	if ms <= 0 {
		return ""
	}
	return time.UnixMilli(ms).Format("2006-01-02 15:04:05")
}
