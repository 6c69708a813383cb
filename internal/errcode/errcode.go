package errcode

// 错误码约定：
// - 0：无错误
// - 4xxx：业务可恢复/告警类错误（例如生成失败但草稿与档案完好）
// - 5xxx：系统错误（需要中断流程）
const (
	OK               = 0
	GenerationFailed = 4001
	ResourceMissing  = 4004
	RenderFallback   = 4100
	SystemError      = 5000
)
