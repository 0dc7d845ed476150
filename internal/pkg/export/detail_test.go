package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	notemodel "xhs_spider/internal/domain/note/model"
	usermodel "xhs_spider/internal/domain/user/model"
)

func TestSaveNoteDetail(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, SaveNoteDetail(notemodel.NoteRecord{
		NoteID:     "n1",
		NoteURL:    "http://note/1",
		NoteType:   notemodel.NoteTypeImage,
		Title:      "标题",
		LikedCount: 10,
		ImageList:  []string{"http://img/1.jpg"},
		Tags:       []string{"美食"},
	}, dir))

	raw, err := os.ReadFile(filepath.Join(dir, "detail.txt"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")

	require.Len(t, lines, 19)
	assert.Equal(t, "笔记id: n1", lines[0])
	assert.Equal(t, "笔记类型: 图集", lines[2])
	assert.Equal(t, "点赞数量: 10", lines[9])
	assert.Equal(t, "图片地址url列表: http://img/1.jpg", lines[15])
	assert.Equal(t, "标签: 美食", lines[16])
}

func TestSaveUserDetail(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, SaveUserDetail(usermodel.UserRecord{
		UserID:   "u1",
		Nickname: "小王",
		Gender:   usermodel.GenderMale,
		Fans:     100,
	}, dir))

	raw, err := os.ReadFile(filepath.Join(dir, "detail.txt"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")

	require.Len(t, lines, 12)
	assert.Equal(t, "用户id: u1", lines[0])
	assert.Equal(t, "性别: 男", lines[5])
	assert.Equal(t, "粉丝数量: 100", lines[9])
}
