package model

// 笔记类型，平台原始 type 为 normal 的是图集，其余按视频处理
const (
	NoteTypeImage = "图集"
	NoteTypeVideo = "视频"
)

// 可选字段缺失时的占位值
const (
	UntitledTitle     = "无标题"
	UnknownIPLocation = "未知"
)

// VideoStream 一路可用的视频流
type VideoStream struct {
	URL        string   `json:"url"`
	BackupURLs []string `json:"backup_urls"`
	Codec      string   `json:"codec"`
	Quality    string   `json:"quality"`
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	Size       int64    `json:"size"`
	Duration   int      `json:"duration"`
	Bitrate    int      `json:"bitrate"`
}

// NoteRecord 归一化后的笔记记录
// 构造后不再修改；note_type 决定媒体字段：图集只有 image_list，
// 视频只有 video_* 字段
type NoteRecord struct {
	NoteID   string `json:"note_id"`
	NoteURL  string `json:"note_url"`
	NoteType string `json:"note_type"`

	UserID   string `json:"user_id"`
	HomeURL  string `json:"home_url"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`

	Title string   `json:"title"`
	Desc  string   `json:"desc"`
	Tags  []string `json:"tags"`

	LikedCount     int `json:"liked_count"`
	CollectedCount int `json:"collected_count"`
	CommentCount   int `json:"comment_count"`
	ShareCount     int `json:"share_count"`

	ImageList     []string      `json:"image_list"`
	VideoCover    string        `json:"video_cover,omitempty"`
	VideoAddr     string        `json:"video_addr,omitempty"`
	VideoDuration int           `json:"video_duration,omitempty"` // 秒
	VideoStreams  []VideoStream `json:"video_streams,omitempty"`

	UploadTime string `json:"upload_time"`
	IPLocation string `json:"ip_location"`

	// XsecToken 只在详情获取失败、退化为列表级记录时保留
	XsecToken string `json:"xsec_token,omitempty"`
}

// CommentRecord 归一化后的评论记录
type CommentRecord struct {
	NoteID    string `json:"note_id"`
	NoteURL   string `json:"note_url"`
	CommentID string `json:"comment_id"`

	UserID   string `json:"user_id"`
	HomeURL  string `json:"home_url"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`

	Content    string   `json:"content"`
	ShowTags   []string `json:"show_tags"`
	LikeCount  int      `json:"like_count"`
	UploadTime string   `json:"upload_time"`
	IPLocation string   `json:"ip_location"`
	Pictures   []string `json:"pictures"`
}
