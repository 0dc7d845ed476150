package normalizer

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xhs_spider/internal/domain/note/model"
	"xhs_spider/internal/pkg/xhs"
)

func loadNoteItem(t *testing.T, raw string) *xhs.NoteItem {
	t.Helper()
	var item xhs.NoteItem
	require.NoError(t, json.Unmarshal([]byte(raw), &item))
	return &item
}

const imageNoteJSON = `{
	"id": "note001",
	"model_type": "note",
	"note_card": {
		"type": "normal",
		"title": "周末探店",
		"desc": "很好吃",
		"time": 1718000000000,
		"ip_location": "上海",
		"user": {"user_id": "u001", "nickname": "小王", "avatar": "http://img/a.jpg"},
		"interact_info": {"liked_count": "1.2万", "collected_count": "380", "comment_count": "56", "share_count": "12"},
		"tag_list": [
			{"id": "t1", "name": "美食", "type": "topic"},
			{"id": "t2", "name": "", "type": "topic"},
			{"id": "t3", "name": "探店", "type": "topic"}
		],
		"image_list": [
			{
				"info_list": [
					{"image_scene": "WB_PRV", "url": "http://cdn/prv1.jpg"},
					{"image_scene": "WB_DFT", "url": "http://cdn/dft1.jpg"}
				],
				"url_default": "http://cdn/def1.jpg"
			},
			{
				"info_list": [
					{"image_scene": "WB_PRV", "url": "http://cdn/prv2.jpg"}
				],
				"url_default": "http://cdn/def2.jpg"
			},
			{
				"info_list": [],
				"url_default": "http://cdn/def3.jpg"
			},
			{
				"info_list": [],
				"url_default": ""
			}
		]
	}
}`

func TestNormalizeNoteImage(t *testing.T) {
	item := loadNoteItem(t, imageNoteJSON)
	item.URL = "https://www.xiaohongshu.com/explore/note001"

	rec, err := NormalizeNote(item)
	require.NoError(t, err)

	assert.Equal(t, "note001", rec.NoteID)
	assert.Equal(t, model.NoteTypeImage, rec.NoteType)
	assert.Equal(t, "u001", rec.UserID)
	assert.Equal(t, "https://www.xiaohongshu.com/user/profile/u001", rec.HomeURL)
	assert.Equal(t, "周末探店", rec.Title)
	assert.Equal(t, 12000, rec.LikedCount)
	assert.Equal(t, 380, rec.CollectedCount)
	assert.Equal(t, 56, rec.CommentCount)
	assert.Equal(t, "上海", rec.IPLocation)
	assert.Equal(t, time.UnixMilli(1718000000000).Format("2006-01-02 15:04:05"), rec.UploadTime)

	// 空名标签被跳过
	assert.Equal(t, []string{"美食", "探店"}, rec.Tags)

	// 第一张命中 WB_DFT，第二张退到 info_list 首个，第三张退到 url_default，
	// 第四张选不出地址被丢弃
	assert.Equal(t, []string{"http://cdn/dft1.jpg", "http://cdn/prv2.jpg", "http://cdn/def3.jpg"}, rec.ImageList)

	// 图集不填视频字段
	assert.Empty(t, rec.VideoAddr)
	assert.Empty(t, rec.VideoCover)
	assert.Empty(t, rec.VideoStreams)
}

func TestNormalizeNoteIdempotent(t *testing.T) {
	item := loadNoteItem(t, imageNoteJSON)

	first, err := NormalizeNote(item)
	require.NoError(t, err)
	second, err := NormalizeNote(item)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNormalizeNotePlaceholders(t *testing.T) {
	item := loadNoteItem(t, `{
		"id": "note002",
		"note_card": {
			"type": "normal",
			"title": "   ",
			"user": {"user_id": "u002"},
			"interact_info": {}
		}
	}`)

	rec, err := NormalizeNote(item)
	require.NoError(t, err)

	assert.Equal(t, model.UntitledTitle, rec.Title)
	assert.Equal(t, model.UnknownIPLocation, rec.IPLocation)
	assert.Zero(t, rec.LikedCount)
	assert.Empty(t, rec.UploadTime)
}

func TestNormalizeNoteStructuralErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"missing id", `{"note_card": {"type": "normal"}}`, ErrMissingNoteID},
		{"missing note_card", `{"id": "n1"}`, ErrMissingNoteCard},
		{"missing type", `{"id": "n1", "note_card": {"user": {"user_id": "u1"}}}`, ErrMissingNoteType},
		{"missing user", `{"id": "n1", "note_card": {"type": "normal"}}`, ErrMissingNoteUser},
		{"missing interact_info", `{"id": "n1", "note_card": {"type": "normal", "user": {"user_id": "u1"}}}`, ErrMissingInteract},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeNote(loadNoteItem(t, tt.raw))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNormalizeComment(t *testing.T) {
	var item xhs.CommentItem
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": "c001",
		"note_id": "note001",
		"content": "学到了",
		"like_count": "3",
		"create_time": 1718000000000,
		"ip_location": "广州",
		"show_tags": ["is_author"],
		"user_info": {"user_id": "u003", "nickname": "小李", "image": "http://img/b.jpg"},
		"pictures": [{"info_list": [{"image_scene": "WB_DFT", "url": "http://cdn/c1.jpg"}]}]
	}`), &item))
	item.NoteURL = "https://www.xiaohongshu.com/explore/note001"

	rec, err := NormalizeComment(&item)
	require.NoError(t, err)

	assert.Equal(t, "c001", rec.CommentID)
	assert.Equal(t, "note001", rec.NoteID)
	assert.Equal(t, "u003", rec.UserID)
	assert.Equal(t, "https://www.xiaohongshu.com/user/profile/u003", rec.HomeURL)
	assert.Equal(t, 3, rec.LikeCount)
	assert.Equal(t, "广州", rec.IPLocation)
	assert.Equal(t, []string{"http://cdn/c1.jpg"}, rec.Pictures)
}

func TestNormalizeCommentMissingFields(t *testing.T) {
	_, err := NormalizeComment(nil)
	assert.ErrorIs(t, err, ErrMissingComment)

	_, err = NormalizeComment(&xhs.CommentItem{ID: "c1"})
	assert.ErrorIs(t, err, ErrMissingComment)
}

func TestPartialNoteFromListing(t *testing.T) {
	item := xhs.UserNoteItem{
		NoteID:       "note003",
		XsecToken:    "tok",
		Type:         "video",
		DisplayTitle: "旅行记录",
	}
	noteURL := "https://www.xiaohongshu.com/explore/note003?xsec_token=tok&xsec_source=pc_user"

	rec := PartialNoteFromListing(item, "u004", noteURL)

	assert.Equal(t, "note003", rec.NoteID)
	assert.Equal(t, noteURL, rec.NoteURL)
	assert.Equal(t, model.NoteTypeVideo, rec.NoteType)
	assert.Equal(t, "u004", rec.UserID)
	assert.Equal(t, "旅行记录", rec.Title)
	assert.Equal(t, "tok", rec.XsecToken)

	t.Run("display_title falls back to title", func(t *testing.T) {
		rec := PartialNoteFromListing(xhs.UserNoteItem{NoteID: "n", Title: "备用标题", Type: "normal"}, "u", "url")
		assert.Equal(t, "备用标题", rec.Title)
		assert.Equal(t, model.NoteTypeImage, rec.NoteType)
	})

	t.Run("empty title becomes placeholder", func(t *testing.T) {
		rec := PartialNoteFromListing(xhs.UserNoteItem{NoteID: "n", Type: "normal"}, "u", "url")
		assert.Equal(t, model.UntitledTitle, rec.Title)
	})
}
