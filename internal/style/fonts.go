package style

import "strings"

// 矢量渲染器只有三种内置字体族可用，所以任何请求的字体都按
// 关键字归并到 {Courier, Times, Helvetica} 之一。标记渲染器
// 不做这种归并，直接使用完整的 CSS 字体栈——两个渲染器在非默认
// 字体下只保证近似一致，这是已知的保真度缺口。

// 矢量字体族常量，与 PDF 内核字体同名。
const (
	VectorCourier   = "Courier"
	VectorTimes     = "Times"
	VectorHelvetica = "Helvetica"
)

// VectorFamily 把请求的字体名归并到三种内置族之一。
func VectorFamily(requested string) string {
	name := strings.ToLower(strings.TrimSpace(requested))
	switch {
	case strings.Contains(name, "mono"), strings.Contains(name, "courier"):
		return VectorCourier
	case strings.Contains(name, "times"), strings.Contains(name, "georgia"), strings.Contains(name, "serif"):
		return VectorTimes
	default:
		return VectorHelvetica
	}
}

// cssStacks 把 UI 提供的字体选项展开为完整 CSS 字体栈。
// 未知选项按原样放进栈里并补 sans-serif 兜底。
var cssStacks = map[string]string{
	"inter":     `'Inter', 'Helvetica Neue', Arial, sans-serif`,
	"helvetica": `'Helvetica Neue', Helvetica, Arial, sans-serif`,
	"georgia":   `Georgia, 'Times New Roman', serif`,
	"times":     `'Times New Roman', Times, serif`,
	"mono":      `'JetBrains Mono', 'Courier New', monospace`,
	"courier":   `'Courier New', Courier, monospace`,
}

// CSSStack 返回标记渲染器使用的字体栈（不做三族归并）。
func CSSStack(requested string) string {
	name := strings.ToLower(strings.TrimSpace(requested))
	if stack, ok := cssStacks[name]; ok {
		return stack
	}
	if name == "" {
		return cssStacks["inter"]
	}
	return "'" + strings.TrimSpace(requested) + "', sans-serif"
}
