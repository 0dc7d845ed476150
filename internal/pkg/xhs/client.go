package xhs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"
	"xhs_spider/internal/pkg/config"

	"golang.org/x/time/rate"
)

// Client 平台数据客户端
// 所有方法都是阻塞的单次调用；分页在客户端内部完成。
// 平台返回 success=false 时以 *UpstreamError 形式返回
type Client interface {
	SearchUser(ctx context.Context, query string, page int) (*SearchUserData, error)
	SearchSomeUser(ctx context.Context, query string, requireNum int) ([]SearchedUser, error)
	SearchSomeNote(ctx context.Context, query string, requireNum int, opts SearchNoteOptions) ([]SearchNoteItem, error)
	GetUserAllNotes(ctx context.Context, userURL string, limit int) ([]UserNoteItem, error)
	GetNoteInfo(ctx context.Context, noteURL string) (*NoteItem, error)
	GetUserInfo(ctx context.Context, userID string) (*UserInfoData, error)
	GetNoteAllComments(ctx context.Context, noteURL string, limit int) ([]CommentItem, error)
}

// SearchNoteOptions 笔记搜索的排序和过滤参数，取值与平台接口一致
type SearchNoteOptions struct {
	SortType    int  // 0 综合, 1 最新, 2 最多点赞, 3 最多评论, 4 最多收藏
	NoteType    int  // 0 不限, 1 视频笔记, 2 普通笔记
	NoteTime    int  // 0 不限, 1 一天内, 2 一周内, 3 半年内
	NoteRange   int  // 0 不限, 1 已看过, 2 未看过, 3 已关注
	PosDistance int  // 0 不限, 1 同城, 2 附近（需指定 Geo）
	Geo         *Geo // 经纬度
}

// Geo 经纬度
type Geo struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type httpClient struct {
	http      *http.Client
	baseURL   string
	cookie    string
	userAgent string
	limiter   *rate.Limiter
}

// NewClient 按配置创建客户端
// 速率限制在这里统一做，避免调用方各自为政把账号搞挂
func NewClient(cfg config.XHSConfig) Client {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	transport := &http.Transport{
		DialContext:           (&net.Dialer{Timeout: 10 * time.Second}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 15 * time.Second,
		Proxy:                 http.ProxyFromEnvironment,
	}
	rps := cfg.RatePerSec
	if rps <= 0 {
		rps = 2
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &httpClient{
		http:      &http.Client{Transport: transport, Timeout: timeout},
		baseURL:   cfg.BaseURL,
		cookie:    cfg.Cookie,
		userAgent: cfg.UserAgent,
		limiter:   rate.NewLimiter(rate.Limit(rps), burst),
	}
}

type apiResponse struct {
	envelope
	Data json.RawMessage `json:"data"`
}

// do 发送一次请求并解出 data 部分
func (c *httpClient) do(ctx context.Context, op, method, path string, query url.Values, body interface{}, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("xhs %s: marshal body: %w", op, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return fmt.Errorf("xhs %s: new request: %w", op, err)
	}
	req.Header.Set("Cookie", c.cookie)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json;charset=UTF-8")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("xhs %s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("xhs %s: http status %s", op, resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("xhs %s: read body: %w", op, err)
	}

	var ar apiResponse
	if err := json.Unmarshal(raw, &ar); err != nil {
		return fmt.Errorf("xhs %s: decode response: %w", op, err)
	}
	if !ar.Success {
		msg := ar.Msg
		if msg == "" {
			msg = "code " + strconv.Itoa(ar.Code)
		}
		return &UpstreamError{Op: op, Message: msg}
	}
	if out != nil && len(ar.Data) > 0 {
		if err := json.Unmarshal(ar.Data, out); err != nil {
			return fmt.Errorf("xhs %s: decode data: %w", op, err)
		}
	}
	return nil
}

// newSearchID 生成搜索会话 ID（时间戳 36 进制 + 随机尾巴）
func newSearchID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 36) + strconv.FormatInt(rand.Int63n(1<<30), 36)
}

// SearchUser 搜索用户（单页）
func (c *httpClient) SearchUser(ctx context.Context, query string, page int) (*SearchUserData, error) {
	if page <= 0 {
		page = 1
	}
	body := map[string]interface{}{
		"search_user_request": map[string]interface{}{
			"keyword":   query,
			"search_id": newSearchID(),
			"page":      page,
			"page_size": 15,
			"biz_type":  "web_search_user",
		},
	}
	var data SearchUserData
	if err := c.do(ctx, "search_user", http.MethodPost, "/api/sns/web/v1/search/usersearch", nil, body, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// SearchSomeUser 翻页搜索用户直到凑够 requireNum 个
func (c *httpClient) SearchSomeUser(ctx context.Context, query string, requireNum int) ([]SearchedUser, error) {
	var users []SearchedUser
	for page := 1; len(users) < requireNum; page++ {
		data, err := c.SearchUser(ctx, query, page)
		if err != nil {
			// 第一页就失败则整体失败，翻页中途失败返回已有结果
			if page == 1 {
				return nil, err
			}
			break
		}
		if len(data.Users) == 0 {
			break
		}
		users = append(users, data.Users...)
		if !data.HasMore {
			break
		}
	}
	if len(users) > requireNum {
		users = users[:requireNum]
	}
	return users, nil
}

var sortTypeNames = map[int]string{
	0: "general",
	1: "time_descending",
	2: "popularity_descending",
	3: "comment_descending",
	4: "collect_descending",
}

// SearchSomeNote 翻页搜索笔记直到凑够 requireNum 条
func (c *httpClient) SearchSomeNote(ctx context.Context, query string, requireNum int, opts SearchNoteOptions) ([]SearchNoteItem, error) {
	sort := sortTypeNames[opts.SortType]
	if sort == "" {
		sort = "general"
	}
	searchID := newSearchID()

	var items []SearchNoteItem
	for page := 1; len(items) < requireNum; page++ {
		body := map[string]interface{}{
			"keyword":   query,
			"page":      page,
			"page_size": 20,
			"search_id": searchID,
			"sort":      sort,
			"note_type": opts.NoteType,
			"filters":   buildNoteFilters(opts),
		}
		if opts.Geo != nil {
			body["geo"] = opts.Geo
		}
		var data searchNotesData
		if err := c.do(ctx, "search_notes", http.MethodPost, "/api/sns/web/v1/search/notes", nil, body, &data); err != nil {
			if page == 1 {
				return nil, err
			}
			break
		}
		if len(data.Items) == 0 {
			break
		}
		items = append(items, data.Items...)
		if !data.HasMore {
			break
		}
	}
	if len(items) > requireNum {
		items = items[:requireNum]
	}
	return items, nil
}

// buildNoteFilters 组装搜索过滤条件，0 值表示不限
func buildNoteFilters(opts SearchNoteOptions) []map[string]interface{} {
	noteTypes := map[int]string{0: "不限", 1: "视频笔记", 2: "普通笔记"}
	noteTimes := map[int]string{0: "不限", 1: "一天内", 2: "一周内", 3: "半年内"}
	noteRanges := map[int]string{0: "不限", 1: "已看过", 2: "未看过", 3: "已关注"}
	posDistances := map[int]string{0: "不限", 1: "同城", 2: "附近"}
	return []map[string]interface{}{
		{"tags": []string{sortTypeNames[opts.SortType]}, "type": "sort_type"},
		{"tags": []string{noteTypes[opts.NoteType]}, "type": "filter_note_type"},
		{"tags": []string{noteTimes[opts.NoteTime]}, "type": "filter_note_time"},
		{"tags": []string{noteRanges[opts.NoteRange]}, "type": "filter_note_range"},
		{"tags": []string{posDistances[opts.PosDistance]}, "type": "filter_pos_distance"},
	}
}

// GetUserAllNotes 拉取用户作品列表，limit<=0 表示拉全量
// 分页游标在这里消化掉，调用方只拿到平铺的列表
func (c *httpClient) GetUserAllNotes(ctx context.Context, userURL string, limit int) ([]UserNoteItem, error) {
	userID, xsecToken, err := ParseUserURL(userURL)
	if err != nil {
		return nil, err
	}

	var notes []UserNoteItem
	cursor := ""
	for {
		query := url.Values{}
		query.Set("num", "30")
		query.Set("cursor", cursor)
		query.Set("user_id", userID)
		query.Set("image_formats", "jpg,webp,avif")
		if xsecToken != "" {
			query.Set("xsec_token", xsecToken)
			query.Set("xsec_source", "pc_user")
		}
		var data userPostedData
		if err := c.do(ctx, "user_posted", http.MethodGet, "/api/sns/web/v1/user_posted", query, nil, &data); err != nil {
			if len(notes) == 0 {
				return nil, err
			}
			break
		}
		notes = append(notes, data.Notes...)
		if limit > 0 && len(notes) >= limit {
			notes = notes[:limit]
			break
		}
		if !data.HasMore || data.Cursor == "" {
			break
		}
		cursor = data.Cursor
	}
	return notes, nil
}

// GetNoteInfo 拉取单条笔记详情
func (c *httpClient) GetNoteInfo(ctx context.Context, noteURL string) (*NoteItem, error) {
	noteID, xsecToken, err := ParseNoteURL(noteURL)
	if err != nil {
		return nil, err
	}
	body := map[string]interface{}{
		"source_note_id": noteID,
		"image_formats":  []string{"jpg", "webp", "avif"},
		"extra":          map[string]string{"need_body_topic": "1"},
		"xsec_source":    "pc_feed",
		"xsec_token":     xsecToken,
	}
	var data feedData
	if err := c.do(ctx, "feed", http.MethodPost, "/api/sns/web/v1/feed", nil, body, &data); err != nil {
		return nil, err
	}
	if len(data.Items) == 0 {
		return nil, &UpstreamError{Op: "feed", Message: "empty items for note " + noteID}
	}
	item := data.Items[0]
	item.URL = noteURL
	return &item, nil
}

// GetUserInfo 拉取用户主页信息
func (c *httpClient) GetUserInfo(ctx context.Context, userID string) (*UserInfoData, error) {
	query := url.Values{}
	query.Set("target_user_id", userID)
	var data UserInfoData
	if err := c.do(ctx, "user_otherinfo", http.MethodGet, "/api/sns/web/v1/user/otherinfo", query, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// GetNoteAllComments 拉取笔记一级评论，limit<=0 表示拉全量
func (c *httpClient) GetNoteAllComments(ctx context.Context, noteURL string, limit int) ([]CommentItem, error) {
	noteID, xsecToken, err := ParseNoteURL(noteURL)
	if err != nil {
		return nil, err
	}

	var comments []CommentItem
	cursor := ""
	for {
		query := url.Values{}
		query.Set("note_id", noteID)
		query.Set("cursor", cursor)
		query.Set("top_comment_id", "")
		query.Set("image_formats", "jpg,webp,avif")
		if xsecToken != "" {
			query.Set("xsec_token", xsecToken)
		}
		var data commentPageData
		if err := c.do(ctx, "comment_page", http.MethodGet, "/api/sns/web/v2/comment/page", query, nil, &data); err != nil {
			if len(comments) == 0 {
				return nil, err
			}
			break
		}
		for i := range data.Comments {
			data.Comments[i].NoteURL = noteURL
		}
		comments = append(comments, data.Comments...)
		if limit > 0 && len(comments) >= limit {
			comments = comments[:limit]
			break
		}
		if !data.HasMore || data.Cursor == "" {
			break
		}
		cursor = data.Cursor
	}
	return comments, nil
}
