// Package render 收纳两个渲染管线共享的安全检查。
package render

import "strings"

// SafeLinkURL 校验用户提供的链接是否允许成为可点击元素。
// 只放行 http:// https:// mailto: 三种前缀；其余（javascript: 等）
// 一律按普通文本渲染，绝不进入 href 或 PDF 链接区域。
func SafeLinkURL(raw string) (string, bool) {
	u := strings.TrimSpace(raw)
	lower := strings.ToLower(u)
	if strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "mailto:") {
		return u, true
	}
	return "", false
}
