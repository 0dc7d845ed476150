package xhs

// 平台返回的原始载荷结构。字段名与网页端接口的 JSON 保持一致，
// 可选字段缺失时归一化层负责兜底，这里不做任何清洗。

// envelope 所有接口共用的响应外壳
type envelope struct {
	Code    int    `json:"code"`
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
}

// Tag 话题标签
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// ImageInfo 同一张图的某个规格
type ImageInfo struct {
	ImageScene string `json:"image_scene"` // WB_DFT 为默认展示规格
	URL        string `json:"url"`
}

// ImageItem 一张图片的描述，含多个规格
type ImageItem struct {
	InfoList   []ImageInfo `json:"info_list"`
	URLDefault string      `json:"url_default"`
	Width      int         `json:"width"`
	Height     int         `json:"height"`
}

// StreamItem 一路视频流
type StreamItem struct {
	MasterURL   string   `json:"master_url"`
	BackupURLs  []string `json:"backup_urls"`
	QualityType string   `json:"quality_type"`
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	Size        int64    `json:"size"`
	Duration    int      `json:"duration"`
	AvgBitrate  int      `json:"avg_bitrate"`
}

// Video 视频笔记的视频数据
type Video struct {
	Image *struct {
		ThumbnailFileID string `json:"thumbnail_fileid"`
	} `json:"image"`
	Capa *struct {
		Duration int `json:"duration"` // 秒
	} `json:"capa"`
	Media *struct {
		// 按编码分组的流列表，键为 h265/h264/av1/h266
		Stream map[string][]StreamItem `json:"stream"`
	} `json:"media"`
	Consumer *struct {
		OriginVideoKey string `json:"origin_video_key"`
	} `json:"consumer"`
}

// NoteUser 笔记作者摘要
type NoteUser struct {
	UserID   string `json:"user_id"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
}

// InteractInfo 互动计数，平台返回的是字符串（可能带"万"）
type InteractInfo struct {
	LikedCount     string `json:"liked_count"`
	CollectedCount string `json:"collected_count"`
	CommentCount   string `json:"comment_count"`
	ShareCount     string `json:"share_count"`
}

// NoteCard 笔记卡片（详情接口的主体）
type NoteCard struct {
	Type         string        `json:"type"` // normal / video
	Title        string        `json:"title"`
	Desc         string        `json:"desc"`
	Time         int64         `json:"time"` // 毫秒时间戳
	IPLocation   string        `json:"ip_location"`
	User         *NoteUser     `json:"user"`
	InteractInfo *InteractInfo `json:"interact_info"`
	ImageList    []ImageItem   `json:"image_list"`
	TagList      []Tag         `json:"tag_list"`
	Video        *Video        `json:"video"`
}

// NoteItem feed 接口 items 里的一条
type NoteItem struct {
	ID        string    `json:"id"`
	ModelType string    `json:"model_type"`
	NoteCard  *NoteCard `json:"note_card"`
	// URL 不来自平台，由调用方把请求用的笔记链接注回来
	URL string `json:"url,omitempty"`
}

// feedData feed 接口 data
type feedData struct {
	Items []NoteItem `json:"items"`
}

// UserNoteItem 用户作品列表里的一条（字段远少于详情）
type UserNoteItem struct {
	NoteID       string `json:"note_id"`
	XsecToken    string `json:"xsec_token"`
	Type         string `json:"type"`
	DisplayTitle string `json:"display_title"`
	Title        string `json:"title"`
	Desc         string `json:"desc"`
}

// userPostedData 用户作品列表 data
type userPostedData struct {
	Notes   []UserNoteItem `json:"notes"`
	Cursor  string         `json:"cursor"`
	HasMore bool           `json:"has_more"`
}

// SearchedUser 用户搜索结果里的一条
type SearchedUser struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	RedID     string `json:"red_id"`
	SubTitle  string `json:"sub_title"`
	Fans      string `json:"fans"`
	NoteCount int    `json:"note_count"`
	Followed  bool   `json:"followed"`
	Image     string `json:"image"`
	XsecToken string `json:"xsec_token"`
}

// SearchUserData 用户搜索 data
type SearchUserData struct {
	Users   []SearchedUser `json:"users"`
	HasMore bool           `json:"has_more"`
}

// SearchNoteItem 笔记搜索结果里的一条
type SearchNoteItem struct {
	ID        string `json:"id"`
	ModelType string `json:"model_type"` // 只有 note 才是笔记
	XsecToken string `json:"xsec_token"`
}

// searchNotesData 笔记搜索 data
type searchNotesData struct {
	Items   []SearchNoteItem `json:"items"`
	HasMore bool             `json:"has_more"`
}

// BasicInfo 用户主页基本信息
type BasicInfo struct {
	Nickname   string `json:"nickname"`
	Imageb     string `json:"imageb"` // 大头像
	RedID      string `json:"red_id"`
	Gender     int    `json:"gender"` // 0 男 1 女 其他未知
	IPLocation string `json:"ip_location"`
	Desc       string `json:"desc"`
}

// Interaction 用户互动计数（固定顺序：关注/粉丝/获赞与收藏）
type Interaction struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Count string `json:"count"`
}

// UserInfoData 用户主页 data
type UserInfoData struct {
	BasicInfo    *BasicInfo    `json:"basic_info"`
	Interactions []Interaction `json:"interactions"`
	Tags         []Tag         `json:"tags"`
}

// CommentUser 评论作者
type CommentUser struct {
	UserID   string `json:"user_id"`
	Nickname string `json:"nickname"`
	Image    string `json:"image"`
}

// CommentItem 一条一级评论
type CommentItem struct {
	ID         string       `json:"id"`
	NoteID     string       `json:"note_id"`
	Content    string       `json:"content"`
	LikeCount  string       `json:"like_count"`
	CreateTime int64        `json:"create_time"` // 毫秒时间戳
	IPLocation string       `json:"ip_location"`
	ShowTags   []string     `json:"show_tags"`
	UserInfo   *CommentUser `json:"user_info"`
	Pictures   []ImageItem  `json:"pictures"`
	// NoteURL 由调用方注入，便于导出时带上来源链接
	NoteURL string `json:"note_url,omitempty"`
}

// commentPageData 评论分页 data
type commentPageData struct {
	Comments []CommentItem `json:"comments"`
	Cursor   string        `json:"cursor"`
	HasMore  bool          `json:"has_more"`
}
