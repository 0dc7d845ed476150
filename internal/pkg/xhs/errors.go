package xhs

import (
	"errors"
	"fmt"
)

// UpstreamError 平台接口返回 success=false 时的错误
// 对应原始接口约定里的 (ok, msg, data) 三元组：msg 进入 Message，
// 调用方按"跳过当前单元、继续批次"处理
type UpstreamError struct {
	Op      string // 哪个接口
	Message string // 平台返回的提示信息
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("xhs %s: upstream failed: %s", e.Op, e.Message)
}

// IsUpstream 判断是否为平台侧失败
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}
