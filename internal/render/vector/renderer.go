// Package vector 产出固定页的打印文档（PDF）。它不依赖任何 DOM
// 测量，从与标记渲染器相同的内容块与分页结果独立排版；
// 超链接以覆盖在可见文字上的可点击区域形式写入。
package vector

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"resumelab/internal/layout"
	"resumelab/internal/render"
	"resumelab/internal/resume"
	"resumelab/internal/style"
)

// A4 毫米几何。
const (
	pageWidthMM  = 210.0
	pageHeightMM = 297.0
	columnGapMM  = 6.4
)

// Renderer 是矢量文档渲染器。
type Renderer struct{}

// New 构造渲染器。
func New() *Renderer { return &Renderer{} }

// doc 聚合一次渲染的全部状态。
type doc struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	tokens style.VectorTokens
	mode   layout.Mode
	innerW float64
	mainW  float64
	sideW  float64
	mainX  float64
	sideX  float64
}

// Render 把有效模型与分页结果渲染为 PDF 字节。
// 栏位与页面归属完全由共享的 layout.Plan 决定。
func (r *Renderer) Render(
	model resume.Model,
	blocks []layout.Block,
	assignment layout.PageAssignment,
	mode layout.Mode,
	tokens style.VectorTokens,
) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(model.Header.FullName, true)
	// 分页由我们自己的引擎负责；超出预算的区块允许溢出而不是
	// 被 fpdf 自动翻页拆开。
	pdf.SetAutoPageBreak(false, 0)

	pad := tokens.PagePadMM
	d := &doc{
		pdf: pdf,
		// 核心字体是 cp1252 单字节编码，所有文本写入前都要过这层
		// 转码，否则 é、•、– 这类字符会以多字节乱码落进内容流。
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		tokens: tokens,
		mode:   mode,
		innerW: pageWidthMM - 2*pad,
	}
	if mode == layout.TwoColumn {
		d.sideW = d.innerW * layout.SideColumnRatio
		d.mainW = d.innerW - d.sideW - columnGapMM
	} else {
		d.mainW = d.innerW
		d.sideW = 0
	}
	d.mainX = pad
	d.sideX = pad + d.mainW + columnGapMM

	plan := layout.Plan(assignment, mode)
	for i, page := range plan {
		pdf.AddPage()
		d.drawPageBorder()

		mainY := pad
		sideY := pad
		if i == 0 {
			bottom := d.drawHeader(model.Header)
			mainY = bottom
			sideY = bottom
			if mode == layout.TwoColumn {
				sideY = d.drawContactBlock(model.Header, sideY)
			}
		}

		for _, id := range page.Main {
			if b, ok := layout.BlockByID(blocks, id); ok {
				mainY = d.drawBlock(b, d.mainX, mainY, d.mainW) + tokens.SectionGapMM
			}
		}
		for _, id := range page.Side {
			if b, ok := layout.BlockByID(blocks, id); ok {
				sideY = d.drawBlock(b, d.sideX, sideY, d.sideW) + tokens.SectionGapMM
			}
		}
	}

	if pdf.Err() {
		return nil, fmt.Errorf("vector render: %w", pdf.Error())
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (d *doc) drawPageBorder() {
	if !d.tokens.BorderTargets[style.BorderPage] {
		return
	}
	d.setDrawAccent()
	m := d.tokens.PagePadMM / 2
	d.boxBorder(m, m, pageWidthMM-2*m, pageHeightMM-2*m)
}

// boxBorder 画一个可选圆角的描边矩形。
func (d *doc) boxBorder(x, y, w, h float64) {
	d.pdf.SetLineWidth(max(d.tokens.BorderWidthMM, 0.2))
	if d.tokens.BorderRounded {
		d.pdf.RoundedRect(x, y, w, h, 2, "1234", "D")
		return
	}
	d.pdf.Rect(x, y, w, h, "D")
}

func (d *doc) setDrawAccent() {
	d.pdf.SetDrawColor(d.tokens.Accent.R, d.tokens.Accent.G, d.tokens.Accent.B)
}

func (d *doc) setTextBody() {
	d.pdf.SetTextColor(31, 41, 55)
	d.pdf.SetFont(d.tokens.BodyFamily, "", 10)
}

func (d *doc) setTextMuted() {
	d.pdf.SetTextColor(107, 114, 128)
	d.pdf.SetFont(d.tokens.BodyFamily, "", 9)
}

func (d *doc) setTextAccent(family string, styleStr string, size float64) {
	d.pdf.SetTextColor(d.tokens.Accent.R, d.tokens.Accent.G, d.tokens.Accent.B)
	d.pdf.SetFont(family, styleStr, size)
}

// drawHeader 渲染第一页独有的姓名/头衔/摘要块，返回其底部 y。
func (d *doc) drawHeader(h resume.Header) float64 {
	pad := d.tokens.PagePadMM
	y := pad

	d.setTextAccent(d.tokens.TitleFamily, "B", 22)
	d.pdf.SetXY(pad, y)
	d.pdf.CellFormat(d.innerW, 9, d.tr(h.FullName), "", 0, "L", false, 0, "")
	y += 10

	if h.Title != "" {
		d.setTextBody()
		d.pdf.SetFont(d.tokens.HeadingFamily, "", 12)
		d.pdf.SetXY(pad, y)
		d.pdf.CellFormat(d.innerW, 6, d.tr(h.Title), "", 0, "L", false, 0, "")
		y += 6
	}
	if h.Headline != "" {
		d.setTextMuted()
		d.pdf.SetXY(pad, y)
		d.pdf.CellFormat(d.innerW, 5, d.tr(h.Headline), "", 0, "L", false, 0, "")
		y += 6
	}

	if h.Summary != "" {
		summary := d.tr(h.Summary)
		d.setTextBody()
		boxTop := y + 1
		d.pdf.SetFillColor(d.tokens.SoftFill.R, d.tokens.SoftFill.G, d.tokens.SoftFill.B)
		lines := d.pdf.SplitText(summary, d.innerW-6)
		boxH := float64(len(lines))*5 + 4
		d.pdf.Rect(pad, boxTop, d.innerW, boxH, "F")
		if d.tokens.BorderTargets[style.BorderSummary] {
			d.setDrawAccent()
			d.boxBorder(pad, boxTop, d.innerW, boxH)
		}
		d.pdf.SetTextColor(d.tokens.FillText.R, d.tokens.FillText.G, d.tokens.FillText.B)
		d.pdf.SetXY(pad+3, boxTop+2)
		d.pdf.MultiCell(d.innerW-6, 5, summary, "", "L", false)
		y = boxTop + boxH + 2
	}

	if d.mode == layout.SingleColumn {
		y = d.drawContactLine(h, y)
	}
	return y + d.tokens.SectionGapMM
}

// drawContactLine 单栏模式下在头部下方渲染一行联系方式。
func (d *doc) drawContactLine(h resume.Header, y float64) float64 {
	parts, links := contactParts(h)
	if len(parts) == 0 {
		return y
	}
	d.setTextMuted()
	x := d.tokens.PagePadMM
	for i, p := range parts {
		text := d.tr(p)
		if i > 0 {
			text = d.tr("  ·  ") + text
		}
		w := d.pdf.GetStringWidth(text)
		if x+w > d.tokens.PagePadMM+d.innerW {
			x = d.tokens.PagePadMM
			y += 5
		}
		d.pdf.SetXY(x, y)
		d.pdf.CellFormat(w, 5, text, "", 0, "L", false, 0, "")
		if href := links[i]; href != "" {
			d.pdf.LinkString(x, y, w, 5, href)
		}
		x += w
	}
	return y + 6
}

// drawContactBlock 双栏模式下在第一页侧栏顶部渲染联系方式块。
func (d *doc) drawContactBlock(h resume.Header, y float64) float64 {
	parts, links := contactParts(h)
	if len(parts) == 0 {
		return y
	}
	d.setTextMuted()
	for i, p := range parts {
		text := d.tr(p)
		lines := d.pdf.SplitText(text, d.sideW)
		d.pdf.SetXY(d.sideX, y)
		d.pdf.MultiCell(d.sideW, 4.5, text, "", "L", false)
		blockH := float64(len(lines)) * 4.5
		if href := links[i]; href != "" {
			d.pdf.LinkString(d.sideX, y, d.sideW, blockH, href)
		}
		y += blockH + 1
	}
	return y + d.tokens.SectionGapMM/2
}

// contactParts 返回联系方式文本及（可选）通过校验的链接目标。
func contactParts(h resume.Header) ([]string, []string) {
	parts := make([]string, 0, 6)
	links := make([]string, 0, 6)
	add := func(text, candidate string) {
		if text == "" {
			return
		}
		href := ""
		if candidate != "" {
			if u, ok := render.SafeLinkURL(candidate); ok {
				href = u
			}
		}
		parts = append(parts, text)
		links = append(links, href)
	}
	add(h.Email, "mailto:"+h.Email)
	add(h.Phone, "")
	add(h.Location, "")
	add(h.Website, h.Website)
	add(h.LinkedIn, h.LinkedIn)
	add(h.GitHub, h.GitHub)
	return parts, links
}
