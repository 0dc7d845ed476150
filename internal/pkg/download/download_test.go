package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xhs_spider/internal/domain/note/model"
	"xhs_spider/pkg/logger"
)

func init() {
	logger.Init(true)
}

func TestNormString(t *testing.T) {
	assert.Equal(t, "abc", NormString(`a\b/c`))
	assert.Equal(t, "abcd", NormString(`a:b*c?d`))
	assert.Equal(t, "ab", NormString(`a"<>|b`))
	assert.Equal(t, "ab", NormString("a b\r\n"))
	assert.Equal(t, "中文标题", NormString("中文 标题"))
}

func TestNotePath(t *testing.T) {
	d := NewDownloader("/data/media")

	rec := model.NoteRecord{
		NoteID:   "n1",
		UserID:   "u1",
		Nickname: "小王",
		Title:    "周末探店",
	}
	assert.Equal(t, "/data/media/小王_u1/周末探店_n1", d.NotePath(rec))

	t.Run("sanitizes and truncates", func(t *testing.T) {
		rec := model.NoteRecord{
			NoteID:   "n2",
			UserID:   "u2",
			Nickname: strings.Repeat("王", 30),
			Title:    "a/b:c*d" + strings.Repeat("x", 50),
		}
		path := d.NotePath(rec)
		parts := strings.Split(path, string(filepath.Separator))

		userDir := parts[len(parts)-2]
		noteDir := parts[len(parts)-1]
		assert.Equal(t, strings.Repeat("王", 20)+"_u2", userDir)
		// 非法字符去掉后截到 40
		assert.Equal(t, "abcd"+strings.Repeat("x", 36)+"_n2", noteDir)
	})

	t.Run("empty title becomes placeholder", func(t *testing.T) {
		rec := model.NoteRecord{NoteID: "n3", UserID: "u3", Title: "  "}
		assert.Contains(t, d.NotePath(rec), "无标题_n3")
	})
}

func TestWantsHelpers(t *testing.T) {
	assert.True(t, WantsExcel(SaveAll))
	assert.True(t, WantsExcel(SaveExcel))
	assert.False(t, WantsExcel(SaveMedia))

	assert.True(t, WantsMedia(SaveAll))
	assert.True(t, WantsMedia(SaveMedia))
	assert.True(t, WantsMedia(SaveMediaImage))
	assert.True(t, WantsMedia(SaveMediaVideo))
	assert.False(t, WantsMedia(SaveExcel))
}

func TestDownloadNoteImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("jpegdata"))
	}))
	defer srv.Close()

	d := NewDownloader(t.TempDir())
	rec := model.NoteRecord{
		NoteID:    "n1",
		UserID:    "u1",
		Nickname:  "小王",
		Title:     "标题",
		NoteType:  model.NoteTypeImage,
		ImageList: []string{srv.URL + "/1", srv.URL + "/2"},
	}

	savePath, err := d.DownloadNote(context.Background(), rec, SaveMedia)
	require.NoError(t, err)

	for _, name := range []string{"info.json", "detail.txt", "image_0.jpg", "image_1.jpg"} {
		_, err := os.Stat(filepath.Join(savePath, name))
		assert.NoError(t, err, name)
	}

	raw, err := os.ReadFile(filepath.Join(savePath, "info.json"))
	require.NoError(t, err)
	// 单行 JSON 带换行结尾
	assert.True(t, strings.HasSuffix(string(raw), "\n"))
	assert.Equal(t, 1, strings.Count(string(raw), "\n"))
}

func TestDownloadNoteVideo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("mediadata"))
	}))
	defer srv.Close()

	d := NewDownloader(t.TempDir())
	rec := model.NoteRecord{
		NoteID:     "v1",
		UserID:     "u1",
		Nickname:   "小张",
		Title:      "视频",
		NoteType:   model.NoteTypeVideo,
		VideoCover: srv.URL + "/cover",
		VideoAddr:  srv.URL + "/video",
	}

	savePath, err := d.DownloadNote(context.Background(), rec, SaveAll)
	require.NoError(t, err)

	for _, name := range []string{"cover.jpg", "video.mp4"} {
		_, err := os.Stat(filepath.Join(savePath, name))
		assert.NoError(t, err, name)
	}
}

func TestDownloadNoteSkipsMediaForExcelChoice(t *testing.T) {
	d := NewDownloader(t.TempDir())
	rec := model.NoteRecord{
		NoteID:    "n1",
		UserID:    "u1",
		NoteType:  model.NoteTypeImage,
		ImageList: []string{"http://127.0.0.1:1/unreachable.jpg"},
	}

	// excel 选项不碰媒体，坏地址也能成功
	savePath, err := d.DownloadNote(context.Background(), rec, SaveExcel)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(savePath, "image_0.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestDownloadNoteRetriesThreeTimes(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	d := NewDownloader(t.TempDir())
	rec := model.NoteRecord{
		NoteID:    "n1",
		UserID:    "u1",
		NoteType:  model.NoteTypeImage,
		ImageList: []string{srv.URL + "/bad.jpg"},
	}

	_, err := d.DownloadNote(context.Background(), rec, SaveMedia)
	require.Error(t, err)
	assert.Equal(t, 3, attempts)
}

func TestDownloadNoteSucceedsOnThirdAttempt(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("mediadata"))
	}))
	defer srv.Close()

	d := NewDownloader(t.TempDir())
	rec := model.NoteRecord{
		NoteID:    "n1",
		UserID:    "u1",
		NoteType:  model.NoteTypeImage,
		ImageList: []string{srv.URL + "/flaky.jpg"},
	}

	savePath, err := d.DownloadNote(context.Background(), rec, SaveMedia)

	// 前两次失败，第三次成功即结束
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	raw, err := os.ReadFile(filepath.Join(savePath, "image_0.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "mediadata", string(raw))
}
