package style

import (
	"fmt"
	"sort"
	"strings"
)

// HTMLTokens 是标记渲染器的样式投影：一组 CSS 自定义属性。
type HTMLTokens struct {
	Vars map[string]string
}

// CSS 输出可直接嵌进 <style> 的 :root 块，键按字典序保证稳定输出。
func (t HTMLTokens) CSS() string {
	keys := make([]string, 0, len(t.Vars))
	for k := range t.Vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "  %s: %s;\n", k, t.Vars[k])
	}
	b.WriteString("}")
	return b.String()
}

// VectorTokens 是矢量渲染器的样式投影：三族字体、实色 RGB 与
// 毫米制间距。px 到 mm 按 96dpi 换算。
type VectorTokens struct {
	Accent        RGB
	SoftFill      RGB // 低不透明度混合出的柔和底色
	FillText      RGB // 柔和底色上的文字颜色
	TitleFamily   string
	HeadingFamily string
	BodyFamily    string
	SectionGapMM  float64
	BulletGapMM   float64
	PagePadMM     float64
	BorderWidthMM float64
	BorderStyle   string
	BorderRounded bool
	BorderTargets map[BorderTarget]bool
}

// Tokens 聚合两个渲染器的投影。
type Tokens struct {
	HTML   HTMLTokens
	Vector VectorTokens
}

// PxToMM 按 96dpi 把设备像素换算为毫米。
func PxToMM(px float64) float64 {
	return px * 25.4 / 96.0
}

// Resolve 把主题输入解析为双渲染器令牌集。
func Resolve(cfg Config) Tokens {
	accent, forceDark := resolveAccent(cfg.AccentColor)
	soft := Blend(accent, cfg.AccentOpacity*0.18)
	fill := Blend(accent, cfg.AccentOpacity)
	fillText := ForegroundOnFill(fill, forceDark)

	borderRadius := "0"
	if cfg.Border.Rounded {
		borderRadius = "8px"
	}
	borderStyle := cfg.Border.Style
	if borderStyle == "" {
		borderStyle = "solid"
	}

	htmlVars := map[string]string{
		"--accent":          fill.Hex(),
		"--accent-raw":      accent.Hex(),
		"--accent-soft":     soft.Hex(),
		"--accent-text":     fillText.Hex(),
		"--font-title":      CSSStack(cfg.TitleFont),
		"--font-heading":    CSSStack(cfg.HeadingFont),
		"--font-body":       CSSStack(cfg.BodyFont),
		"--gap-section":     fmt.Sprintf("%dpx", cfg.SectionGapPx),
		"--gap-bullet":      fmt.Sprintf("%dpx", cfg.BulletGapPx),
		"--page-padding":    fmt.Sprintf("%dpx", cfg.PagePaddingPx),
		"--border-width":    fmt.Sprintf("%dpx", cfg.Border.WidthPx),
		"--border-style":    borderStyle,
		"--border-radius":   borderRadius,
		"--border-page":     cssBorderToggle(cfg.Border, BorderPage),
		"--border-summary":  cssBorderToggle(cfg.Border, BorderSummary),
		"--border-section":  cssBorderToggle(cfg.Border, BorderSection),
		"--border-card":     cssBorderToggle(cfg.Border, BorderCard),
	}

	targets := make(map[BorderTarget]bool, len(cfg.Border.Targets))
	for k, v := range cfg.Border.Targets {
		targets[k] = v
	}

	return Tokens{
		HTML: HTMLTokens{Vars: htmlVars},
		Vector: VectorTokens{
			Accent:        fill,
			SoftFill:      soft,
			FillText:      fillText,
			TitleFamily:   VectorFamily(cfg.TitleFont),
			HeadingFamily: VectorFamily(cfg.HeadingFont),
			BodyFamily:    VectorFamily(cfg.BodyFont),
			SectionGapMM:  PxToMM(float64(cfg.SectionGapPx)),
			BulletGapMM:   PxToMM(float64(cfg.BulletGapPx)),
			PagePadMM:     PxToMM(float64(cfg.PagePaddingPx)),
			BorderWidthMM: PxToMM(float64(cfg.Border.WidthPx)),
			BorderStyle:   borderStyle,
			BorderRounded: cfg.Border.Rounded,
			BorderTargets: targets,
		},
	}
}

// cssBorderToggle 为单个目标盒子输出边框声明值：未启用时为 none。
func cssBorderToggle(b BorderConfig, target BorderTarget) string {
	if !b.Targets[target] {
		return "none"
	}
	style := b.Style
	if style == "" {
		style = "solid"
	}
	return fmt.Sprintf("%dpx %s var(--accent)", b.WidthPx, style)
}
