package download

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"xhs_spider/internal/domain/note/model"
	"xhs_spider/internal/pkg/export"
	"xhs_spider/pkg/logger"
	"xhs_spider/pkg/metrics"
)

// 落盘范围选项
const (
	SaveAll        = "all"
	SaveExcel      = "excel"
	SaveMedia      = "media"
	SaveMediaImage = "media-image"
	SaveMediaVideo = "media-video"
)

// WantsMedia 判断保存选项是否涉及媒体落盘
func WantsMedia(choice string) bool {
	return choice == SaveAll || strings.HasPrefix(choice, "media")
}

// WantsExcel 判断保存选项是否涉及表格导出
func WantsExcel(choice string) bool {
	return choice == SaveAll || choice == SaveExcel
}

const chunkSize = 1024 * 1024

// Downloader 把笔记媒体与元信息落到本地目录
type Downloader struct {
	basePath string
	client   *http.Client
}

func NewDownloader(basePath string) *Downloader {
	return &Downloader{
		basePath: basePath,
		client:   &http.Client{Timeout: 120 * time.Second},
	}
}

// DownloadNote 下载单条笔记，整体最多尝试 3 次，间隔 1 秒
func (d *Downloader) DownloadNote(ctx context.Context, record model.NoteRecord, saveChoice string) (string, error) {
	var savePath string
	op := func() error {
		var err error
		savePath, err = d.downloadOnce(ctx, record, saveChoice)
		return err
	}
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Second), 2), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		metrics.GetGlobalCollector().IncMediaDownload("note", "failed")
		return "", fmt.Errorf("下载笔记 %s 失败: %w", record.NoteID, err)
	}
	metrics.GetGlobalCollector().IncMediaDownload("note", "success")
	return savePath, nil
}

func (d *Downloader) downloadOnce(ctx context.Context, record model.NoteRecord, saveChoice string) (string, error) {
	savePath := d.NotePath(record)
	if err := os.MkdirAll(savePath, 0o755); err != nil {
		return "", err
	}

	raw, err := json.Marshal(record)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(savePath, "info.json"), append(raw, '\n'), 0o644); err != nil {
		return "", err
	}
	if err := export.SaveNoteDetail(record, savePath); err != nil {
		return "", err
	}

	switch {
	case record.NoteType == model.NoteTypeImage &&
		(saveChoice == SaveAll || saveChoice == SaveMedia || saveChoice == SaveMediaImage):
		for i, imgURL := range record.ImageList {
			if err := d.DownloadMedia(ctx, savePath, fmt.Sprintf("image_%d", i), imgURL, "image"); err != nil {
				return "", err
			}
		}
	case record.NoteType == model.NoteTypeVideo &&
		(saveChoice == SaveAll || saveChoice == SaveMedia || saveChoice == SaveMediaVideo):
		if err := d.DownloadMedia(ctx, savePath, "cover", record.VideoCover, "image"); err != nil {
			return "", err
		}
		if err := d.DownloadMedia(ctx, savePath, "video", record.VideoAddr, "video"); err != nil {
			return "", err
		}
	}

	logger.Log.Info("笔记下载完成",
		zap.String("note_id", record.NoteID),
		zap.String("path", savePath))
	return savePath, nil
}

// DownloadMedia 拉取单个媒体文件，图片整体写入，视频按 1MiB 分块
func (d *Downloader) DownloadMedia(ctx context.Context, dir, name, url, kind string) error {
	if url == "" {
		return fmt.Errorf("媒体 %s 缺少下载地址", name)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		metrics.GetGlobalCollector().IncMediaDownload(kind, "failed")
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		metrics.GetGlobalCollector().IncMediaDownload(kind, "failed")
		return fmt.Errorf("下载 %s 返回状态 %d", url, resp.StatusCode)
	}

	ext := ".jpg"
	if kind == "video" {
		ext = ".mp4"
	}
	f, err := os.Create(filepath.Join(dir, name+ext))
	if err != nil {
		return err
	}
	defer f.Close()

	if kind == "video" {
		_, err = io.CopyBuffer(f, resp.Body, make([]byte, chunkSize))
	} else {
		var body []byte
		body, err = io.ReadAll(resp.Body)
		if err == nil {
			_, err = f.Write(body)
		}
	}
	if err != nil {
		metrics.GetGlobalCollector().IncMediaDownload(kind, "failed")
		return err
	}
	metrics.GetGlobalCollector().IncMediaDownload(kind, "success")
	return nil
}

// NotePath 返回笔记落盘目录 <base>/<昵称20>_<用户id>/<标题40>_<笔记id>
func (d *Downloader) NotePath(record model.NoteRecord) string {
	nickname := truncate(NormString(record.Nickname), 20)
	title := truncate(NormString(record.Title), 40)
	if strings.TrimSpace(title) == "" {
		title = model.UntitledTitle
	}
	return filepath.Join(d.basePath,
		fmt.Sprintf("%s_%s", nickname, record.UserID),
		fmt.Sprintf("%s_%s", title, record.NoteID))
}

// NormString 去掉文件名里的非法字符与空白
func NormString(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\\', '/', ':', '*', '?', '"', '<', '>', '|', ' ', '\r', '\n':
			return -1
		}
		return r
	}, s)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
