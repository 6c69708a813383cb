package layout

import (
	"math"

	"resumelab/internal/resume"
	"resumelab/internal/style"
)

// Estimator 用字体度量表把区块内容换算成近似高度，实现与测量
// 来源无关的 HeightFunc 契约：没有浏览器布局可读时（服务端矢量
// 渲染、离线 CLI），用它替代真实的元素测量，使多页内容照常分页。
//
// 度量是近似值：按三族矢量字体的平均字宽因子估算换行行数。
// 对分页而言只需要量级正确，单页内的像素误差无关紧要。
type Estimator struct {
	BodyFontPx    float64
	HeadingFontPx float64
	LineHeight    float64 // 行高相对字号的倍数
	PagePaddingPx float64
	SectionGapPx  float64
	BulletGapPx   float64
	BodyFamily    string // 矢量三族之一，决定平均字宽
}

// NewEstimator 从样式令牌构造估算器。
func NewEstimator(cfg style.Config, tokens style.VectorTokens) *Estimator {
	return &Estimator{
		BodyFontPx:    13,
		HeadingFontPx: 16,
		LineHeight:    1.45,
		PagePaddingPx: float64(cfg.PagePaddingPx),
		SectionGapPx:  float64(cfg.SectionGapPx),
		BulletGapPx:   float64(cfg.BulletGapPx),
		BodyFamily:    tokens.BodyFamily,
	}
}

// 平均字宽相对字号的因子，按矢量字体族取值。
func advanceFactor(family string) float64 {
	switch family {
	case style.VectorCourier:
		return 0.60
	case style.VectorTimes:
		return 0.48
	default: // Helvetica
		return 0.52
	}
}

// HeightOf 为一组内容块返回 HeightFunc。
func (e *Estimator) HeightOf(blocks []Block, mode Mode) HeightFunc {
	heights := make(map[resume.SectionID]float64, len(blocks))
	for _, b := range blocks {
		col := ColumnFor(b.Section, mode)
		width := ContentWidth(mode, col, e.PagePaddingPx)
		heights[b.Section] = e.blockHeight(b, width)
	}
	return func(id resume.SectionID) float64 {
		return heights[id]
	}
}

// blockHeight 估算单个区块在给定换行宽度下的高度。
func (e *Estimator) blockHeight(b Block, wrapWidth float64) float64 {
	if wrapWidth <= 0 {
		return 0
	}
	bodyLine := e.BodyFontPx * e.LineHeight
	headingLine := e.HeadingFontPx * e.LineHeight

	h := headingLine + e.BulletGapPx // 区块标题及其下间距
	for i, entry := range b.Entries {
		if i > 0 {
			h += e.BulletGapPx * 1.5
		}
		if entry.Primary != "" || entry.Meta != "" {
			h += bodyLine
		}
		if entry.Secondary != "" {
			h += bodyLine
		}
		h += e.wrappedLines(entry.Body, wrapWidth) * bodyLine
		for _, bullet := range entry.Bullets {
			h += e.wrappedLines(bullet, wrapWidth-14) * bodyLine
			h += e.BulletGapPx * 0.5
		}
		if len(entry.Tags) > 0 {
			// 标签流式排布，按每行可容纳的标签数估算。
			tagWidth := 0.0
			for _, t := range entry.Tags {
				tagWidth += e.textWidth(t) + 16
			}
			rows := math.Ceil(tagWidth / wrapWidth)
			if rows < 1 {
				rows = 1
			}
			h += rows * (bodyLine + 4)
		}
		if entry.Link != "" {
			h += bodyLine
		}
	}
	return h
}

// wrappedLines 估算文本在给定宽度下折成的行数。
func (e *Estimator) wrappedLines(text string, wrapWidth float64) float64 {
	if text == "" {
		return 0
	}
	if wrapWidth <= 0 {
		return 1
	}
	lines := math.Ceil(e.textWidth(text) / wrapWidth)
	if lines < 1 {
		lines = 1
	}
	return lines
}

func (e *Estimator) textWidth(text string) float64 {
	return float64(len([]rune(text))) * e.BodyFontPx * advanceFactor(e.BodyFamily)
}
