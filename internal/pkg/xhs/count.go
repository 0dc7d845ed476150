package xhs

import (
	"strconv"
	"strings"
)

// ParseCount 平台计数是字符串，可能带"万"，解析失败按 0 处理
func ParseCount(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if strings.HasSuffix(s, "万") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(s, "万"), 64)
		if err != nil {
			return 0
		}
		return int(f * 10000)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
