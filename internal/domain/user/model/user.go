package model

// 性别占位值，数值编码在归一化时映射
const (
	GenderMale    = "男"
	GenderFemale  = "女"
	GenderUnknown = "未知"
)

// UserRecord 归一化后的用户记录，构造后不再修改
type UserRecord struct {
	UserID  string `json:"user_id"`
	HomeURL string `json:"home_url"`

	Nickname   string   `json:"nickname"`
	Avatar     string   `json:"avatar"`
	RedID      string   `json:"red_id"`
	Gender     string   `json:"gender"`
	IPLocation string   `json:"ip_location"`
	Desc       string   `json:"desc"`
	Tags       []string `json:"tags"`

	Follows     int `json:"follows"`
	Fans        int `json:"fans"`
	Interaction int `json:"interaction"` // 获赞与收藏总数
}

// UserURLResult 用户完整链接查询结果
type UserURLResult struct {
	UserID    string `json:"user_id"`
	BaseURL   string `json:"base_url"`
	FullURL   string `json:"full_url"`
	XsecToken string `json:"xsec_token,omitempty"`
}
