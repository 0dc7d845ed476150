package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	notemodel "xhs_spider/internal/domain/note/model"
	usermodel "xhs_spider/internal/domain/user/model"
	"xhs_spider/pkg/logger"
	"xhs_spider/pkg/metrics"
)

const defaultSheet = "Sheet1"

// 导出列固定为如下顺序，追加写入时按表头对齐
var (
	noteHeaders = []string{
		"笔记id", "笔记url", "笔记类型", "用户id", "用户主页url", "昵称", "头像url",
		"标题", "描述", "点赞数量", "收藏数量", "评论数量", "分享数量",
		"视频封面url", "视频地址url", "图片地址url列表", "标签", "上传时间", "ip归属地",
	}
	userHeaders = []string{
		"用户id", "用户主页url", "用户名", "头像url", "小红书号", "性别",
		"ip地址", "介绍", "关注数量", "粉丝数量", "作品被赞和收藏数量", "标签",
	}
	commentHeaders = []string{
		"笔记id", "笔记url", "评论id", "用户id", "用户主页url", "昵称", "头像url",
		"评论内容", "评论标签", "点赞数量", "上传时间", "ip归属地", "图片地址url列表",
	}
)

// Exporter 将归一化记录追加写入 xlsx 工作簿
type Exporter struct {
	basePath string
}

func NewExporter(basePath string) *Exporter {
	return &Exporter{basePath: basePath}
}

// AppendNotes 追加笔记记录，文件不存在时先写表头
func (e *Exporter) AppendNotes(name string, records []notemodel.NoteRecord) error {
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, noteRow(r))
	}
	if err := e.appendRows(name, noteHeaders, rows); err != nil {
		return err
	}
	metrics.GetGlobalCollector().AddExportRows("note", len(rows))
	return nil
}

// AppendUsers 追加用户记录
func (e *Exporter) AppendUsers(name string, records []usermodel.UserRecord) error {
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, userRow(r))
	}
	if err := e.appendRows(name, userHeaders, rows); err != nil {
		return err
	}
	metrics.GetGlobalCollector().AddExportRows("user", len(rows))
	return nil
}

// AppendComments 追加评论记录
func (e *Exporter) AppendComments(name string, records []notemodel.CommentRecord) error {
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, commentRow(r))
	}
	if err := e.appendRows(name, commentHeaders, rows); err != nil {
		return err
	}
	metrics.GetGlobalCollector().AddExportRows("comment", len(rows))
	return nil
}

// FilePath 返回工作簿落盘路径
func (e *Exporter) FilePath(name string) string {
	if !strings.HasSuffix(name, ".xlsx") {
		name += ".xlsx"
	}
	return filepath.Join(e.basePath, name)
}

func (e *Exporter) appendRows(name string, headers []string, rows [][]interface{}) error {
	if err := os.MkdirAll(e.basePath, 0o755); err != nil {
		return fmt.Errorf("创建导出目录失败: %w", err)
	}
	path := e.FilePath(name)

	var f *excelize.File
	var next int
	if _, err := os.Stat(path); err == nil {
		f, err = excelize.OpenFile(path)
		if err != nil {
			return fmt.Errorf("打开工作簿失败: %w", err)
		}
		existing, err := f.GetRows(defaultSheet)
		if err != nil {
			return fmt.Errorf("读取工作簿失败: %w", err)
		}
		next = len(existing) + 1
	} else {
		f = excelize.NewFile()
		if err := writeRow(f, 1, toCells(headers)); err != nil {
			return err
		}
		next = 2
	}
	defer f.Close()

	for i, row := range rows {
		if err := writeRow(f, next+i, row); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("保存工作簿失败: %w", err)
	}
	logger.Log.Info("导出完成",
		zap.String("path", path),
		zap.Int("rows", len(rows)))
	return nil
}

func writeRow(f *excelize.File, rowNum int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	return f.SetSheetRow(defaultSheet, cell, &cells)
}

func toCells(headers []string) []interface{} {
	cells := make([]interface{}, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	return cells
}

func noteRow(r notemodel.NoteRecord) []interface{} {
	return []interface{}{
		clean(r.NoteID), clean(r.NoteURL), clean(r.NoteType),
		clean(r.UserID), clean(r.HomeURL), clean(r.Nickname), clean(r.Avatar),
		clean(r.Title), clean(r.Desc),
		strconv.Itoa(r.LikedCount), strconv.Itoa(r.CollectedCount),
		strconv.Itoa(r.CommentCount), strconv.Itoa(r.ShareCount),
		clean(r.VideoCover), clean(r.VideoAddr), clean(joinList(r.ImageList)),
		clean(joinList(r.Tags)), clean(r.UploadTime), clean(r.IPLocation),
	}
}

func userRow(r usermodel.UserRecord) []interface{} {
	return []interface{}{
		clean(r.UserID), clean(r.HomeURL), clean(r.Nickname), clean(r.Avatar),
		clean(r.RedID), clean(r.Gender), clean(r.IPLocation), clean(r.Desc),
		strconv.Itoa(r.Follows), strconv.Itoa(r.Fans), strconv.Itoa(r.Interaction),
		clean(joinList(r.Tags)),
	}
}

func commentRow(r notemodel.CommentRecord) []interface{} {
	return []interface{}{
		clean(r.NoteID), clean(r.NoteURL), clean(r.CommentID),
		clean(r.UserID), clean(r.HomeURL), clean(r.Nickname), clean(r.Avatar),
		clean(r.Content), clean(joinList(r.ShowTags)), strconv.Itoa(r.LikeCount),
		clean(r.UploadTime), clean(r.IPLocation), clean(joinList(r.Pictures)),
	}
}

func joinList(items []string) string {
	return strings.Join(items, ",")
}

// clean 去除 xlsx 不允许的控制字符
func clean(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 0x00 && r <= 0x08:
			return -1
		case r == 0x0B || r == 0x0C:
			return -1
		case r >= 0x0E && r <= 0x1F:
			return -1
		}
		return r
	}, s)
}
