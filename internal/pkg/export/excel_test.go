package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	notemodel "xhs_spider/internal/domain/note/model"
	usermodel "xhs_spider/internal/domain/user/model"
	"xhs_spider/pkg/logger"
)

func init() {
	logger.Init(true)
}

func TestClean(t *testing.T) {
	assert.Equal(t, "abc", clean("a\x00b\x08c"))
	assert.Equal(t, "ab", clean("a\x0bb\x0c"))
	assert.Equal(t, "ab", clean("a\x0e\x1fb"))
	// 换行和制表符保留
	assert.Equal(t, "a\nb\tc", clean("a\nb\tc"))
	assert.Equal(t, "中文内容", clean("中文内容"))
}

func TestAppendNotesWritesHeaderAndRows(t *testing.T) {
	e := NewExporter(t.TempDir())

	records := []notemodel.NoteRecord{
		{
			NoteID:     "n1",
			NoteURL:    "http://note/1",
			NoteType:   notemodel.NoteTypeImage,
			UserID:     "u1",
			Nickname:   "小王\x00",
			Title:      "标题",
			LikedCount: 10,
			ImageList:  []string{"http://img/1.jpg", "http://img/2.jpg"},
			Tags:       []string{"美食", "探店"},
		},
		{
			NoteID:   "n2",
			NoteType: notemodel.NoteTypeVideo,
			UserID:   "u1",
		},
	}
	require.NoError(t, e.AppendNotes("result", records))

	f, err := excelize.OpenFile(e.FilePath("result"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, noteHeaders, rows[0])
	assert.Equal(t, "n1", rows[1][0])
	assert.Equal(t, "小王", rows[1][5])
	assert.Equal(t, "10", rows[1][9])
	// 计数列按字符串写入，不是数字单元格
	ct, err := f.GetCellType("Sheet1", "J2")
	require.NoError(t, err)
	assert.Equal(t, excelize.CellTypeSharedString, ct)
	assert.Equal(t, "http://img/1.jpg,http://img/2.jpg", rows[1][15])
	assert.Equal(t, "美食,探店", rows[1][16])
	assert.Equal(t, "n2", rows[2][0])
}

func TestAppendNotesAppendsToExisting(t *testing.T) {
	e := NewExporter(t.TempDir())

	require.NoError(t, e.AppendNotes("batch", []notemodel.NoteRecord{{NoteID: "n1"}}))
	require.NoError(t, e.AppendNotes("batch", []notemodel.NoteRecord{{NoteID: "n2"}}))

	f, err := excelize.OpenFile(e.FilePath("batch"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "n1", rows[1][0])
	assert.Equal(t, "n2", rows[2][0])
}

func TestAppendUsers(t *testing.T) {
	e := NewExporter(t.TempDir())

	require.NoError(t, e.AppendUsers("users", []usermodel.UserRecord{
		{
			UserID:   "u1",
			Nickname: "小李",
			Gender:   usermodel.GenderFemale,
			Follows:  12,
			Fans:     34,
			Tags:     []string{"旅行"},
		},
	}))

	f, err := excelize.OpenFile(e.FilePath("users"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, userHeaders, rows[0])
	assert.Equal(t, "女", rows[1][5])
	assert.Equal(t, "12", rows[1][8])
	ct, err := f.GetCellType("Sheet1", "I2")
	require.NoError(t, err)
	assert.Equal(t, excelize.CellTypeSharedString, ct)
}

func TestFilePath(t *testing.T) {
	e := NewExporter("/tmp/excel")
	assert.Equal(t, "/tmp/excel/a.xlsx", e.FilePath("a"))
	assert.Equal(t, "/tmp/excel/a.xlsx", e.FilePath("a.xlsx"))
}
