package xhs

import (
	"fmt"
	"net/url"
	"strings"
)

// UserHomeURL 用户主页链接
func UserHomeURL(userID string) string {
	return "https://www.xiaohongshu.com/user/profile/" + userID
}

// UserURLWithToken 带访问令牌的用户主页链接
func UserURLWithToken(userID, xsecToken, source string) string {
	if xsecToken == "" {
		return UserHomeURL(userID)
	}
	return fmt.Sprintf("%s?xsec_token=%s&xsec_source=%s", UserHomeURL(userID), xsecToken, source)
}

// NoteURL 笔记链接，xsecToken 为空时退化为无令牌链接
func NoteURL(noteID, xsecToken, source string) string {
	if xsecToken == "" {
		return "https://www.xiaohongshu.com/explore/" + noteID
	}
	return fmt.Sprintf("https://www.xiaohongshu.com/explore/%s?xsec_token=%s&xsec_source=%s", noteID, xsecToken, source)
}

// ParseUserURL 从用户主页链接解析 user_id 和 xsec_token
func ParseUserURL(userURL string) (userID, xsecToken string, err error) {
	u, err := url.Parse(userURL)
	if err != nil {
		return "", "", fmt.Errorf("parse user url: %w", err)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) == 0 || parts[len(parts)-1] == "" {
		return "", "", fmt.Errorf("user url %q has no user id", userURL)
	}
	return parts[len(parts)-1], u.Query().Get("xsec_token"), nil
}

// ParseNoteURL 从笔记链接解析 note_id 和 xsec_token
func ParseNoteURL(noteURL string) (noteID, xsecToken string, err error) {
	u, err := url.Parse(noteURL)
	if err != nil {
		return "", "", fmt.Errorf("parse note url: %w", err)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) == 0 || parts[len(parts)-1] == "" {
		return "", "", fmt.Errorf("note url %q has no note id", noteURL)
	}
	return parts[len(parts)-1], u.Query().Get("xsec_token"), nil
}
