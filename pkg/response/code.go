package response

// 业务状态码
const (
	CodeSuccess = 0
	CodeError   = 1

	// 爬虫模块错误 100xx
	ErrUpstreamFailed  = 10001 // 平台接口返回失败
	ErrNoteNotFound    = 10002
	ErrUserNotFound    = 10003
	ErrExportFailed    = 10004
	ErrDownloadFailed  = 10005

	// 任务模块错误 200xx
	ErrTaskNotFound = 20001

	// 认证错误 300xx
	ErrTokenInvalid = 30001
	ErrNoPermission = 30002

	// 系统错误 500xx
	ErrServerInternal  = 50001
	ErrInvalidParam    = 50002
	ErrTooManyRequests = 50003
)
