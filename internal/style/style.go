// Package style 把用户选择的主题输入解析为与渲染器无关的样式令牌，
// 以及两份渲染器专属投影（CSS 自定义属性、矢量文档的字体/颜色原语）。
package style

import (
	"fmt"
	"strings"
)

// BorderTarget 标识可以独立开关边框的四个结构盒子。
type BorderTarget string

const (
	BorderPage    BorderTarget = "page"
	BorderSummary BorderTarget = "summary"
	BorderSection BorderTarget = "section"
	BorderCard    BorderTarget = "card"
)

// BorderConfig 描述边框宽度、线型、圆角与作用目标。
type BorderConfig struct {
	WidthPx int                   `json:"width_px"`
	Style   string                `json:"style"` // solid / dashed / dotted
	Rounded bool                  `json:"rounded"`
	Targets map[BorderTarget]bool `json:"targets"`
}

// Config 是用户可调的主题输入。AccentColor 可以是十六进制色值，
// 也可以是内置色板名（见 palette）。
type Config struct {
	AccentColor   string       `json:"accent_color"`
	AccentOpacity float64      `json:"accent_opacity"` // 0..1
	TitleFont     string       `json:"title_font"`
	HeadingFont   string       `json:"heading_font"`
	BodyFont      string       `json:"body_font"`
	SectionGapPx  int          `json:"section_gap_px"`
	BulletGapPx   int          `json:"bullet_gap_px"`
	PagePaddingPx int          `json:"page_padding_px"`
	LayoutMode    string       `json:"layout_mode"` // single-column / two-column
	Border        BorderConfig `json:"border"`
}

// DefaultConfig 返回默认主题。
func DefaultConfig() Config {
	return Config{
		AccentColor:   "#2563eb",
		AccentOpacity: 1.0,
		TitleFont:     "inter",
		HeadingFont:   "inter",
		BodyFont:      "inter",
		SectionGapPx:  20,
		BulletGapPx:   6,
		PagePaddingPx: 44,
		LayoutMode:    "single-column",
		Border: BorderConfig{
			WidthPx: 1,
			Style:   "solid",
			Rounded: true,
			Targets: map[BorderTarget]bool{BorderSummary: true},
		},
	}
}

// Normalized 把外部输入修整为可渲染的配置：空字段回落到默认值，
// 不透明度钳制到 [0,1]。输入不可信（来自持久层或请求体）时必须先过这里。
func (c Config) Normalized() Config {
	def := DefaultConfig()
	if strings.TrimSpace(c.AccentColor) == "" {
		c.AccentColor = def.AccentColor
	}
	if c.AccentOpacity < 0 {
		c.AccentOpacity = 0
	}
	if c.AccentOpacity > 1 {
		c.AccentOpacity = 1
	}
	if strings.TrimSpace(c.TitleFont) == "" {
		c.TitleFont = def.TitleFont
	}
	if strings.TrimSpace(c.HeadingFont) == "" {
		c.HeadingFont = def.HeadingFont
	}
	if strings.TrimSpace(c.BodyFont) == "" {
		c.BodyFont = def.BodyFont
	}
	if c.SectionGapPx <= 0 {
		c.SectionGapPx = def.SectionGapPx
	}
	if c.BulletGapPx <= 0 {
		c.BulletGapPx = def.BulletGapPx
	}
	if c.PagePaddingPx <= 0 {
		c.PagePaddingPx = def.PagePaddingPx
	}
	switch c.LayoutMode {
	case "single-column", "two-column":
	default:
		c.LayoutMode = def.LayoutMode
	}
	if c.Border.WidthPx <= 0 {
		c.Border.WidthPx = def.Border.WidthPx
	}
	switch c.Border.Style {
	case "solid", "dashed", "dotted":
	default:
		c.Border.Style = def.Border.Style
	}
	if c.Border.Targets == nil {
		c.Border.Targets = map[BorderTarget]bool{}
	}
	return c
}

// 内置色板。lemon 是文档化的特例：无论亮度如何，其上的文字
// 始终使用深色（浅黄底配白字不可读，但其混合亮度可能低于阈值）。
var palette = map[string]string{
	"ocean":    "#2563eb",
	"forest":   "#15803d",
	"wine":     "#9f1239",
	"graphite": "#374151",
	"lemon":    "#eab308",
}

// lemonAccent 为始终使用深色前景文字的特例色板名。
const lemonAccent = "lemon"

// RGB 是 0..255 的实心颜色，两个渲染器共用。
type RGB struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Hex 输出 #rrggbb 形式。
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// 页面背景固定为白色；不透明度通过向背景混合实现，而不是 alpha，
// 因为矢量渲染器的颜色原语无法可靠表达半透明。
var pageBackground = RGB{R: 255, G: 255, B: 255}

// ParseHex 解析 #rgb 或 #rrggbb。解析失败返回 false。
func ParseHex(s string) (RGB, bool) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return RGB{}, false
	}
	var r, g, b int
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return RGB{}, false
	}
	return RGB{R: r, G: g, B: b}, true
}

// Blend 把强调色按不透明度向页面背景混合，产出任何不透明度下都
// 实心的颜色：opacity=1 返回原色，opacity=0 返回背景色，逐通道单调。
func Blend(accent RGB, opacity float64) RGB {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	mix := func(c, bg int) int {
		v := float64(bg) + (float64(c)-float64(bg))*opacity
		return int(v + 0.5)
	}
	return RGB{
		R: mix(accent.R, pageBackground.R),
		G: mix(accent.G, pageBackground.G),
		B: mix(accent.B, pageBackground.B),
	}
}

// Luminance 返回 0..1 的感知亮度。
func Luminance(c RGB) float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255.0
}

// luminanceCutoff 之上的底色配深色文字，否则配浅色文字。
const luminanceCutoff = 0.7

// resolveAccent 把色板名或十六进制解析为实色，并报告是否命中
// lemon 特例。无法解析时回落到默认色。
func resolveAccent(value string) (RGB, bool) {
	name := strings.ToLower(strings.TrimSpace(value))
	if hex, ok := palette[name]; ok {
		c, _ := ParseHex(hex)
		return c, name == lemonAccent
	}
	if c, ok := ParseHex(value); ok {
		return c, false
	}
	c, _ := ParseHex(DefaultConfig().AccentColor)
	return c, false
}

// ForegroundOnFill 依据混合后底色的亮度选择前景文字色。
// forceDark 用于 lemon 特例。
func ForegroundOnFill(fill RGB, forceDark bool) RGB {
	if forceDark || Luminance(fill) > luminanceCutoff {
		return RGB{R: 31, G: 41, B: 55} // 深灰
	}
	return RGB{R: 255, G: 255, B: 255}
}
