package vector

import (
	"resumelab/internal/layout"
	"resumelab/internal/render"
	"resumelab/internal/style"
)

// drawBlock 在 (x, y) 起点、宽度 w 内渲染一个内容块，返回底部 y。
func (d *doc) drawBlock(b layout.Block, x, y, w float64) float64 {
	top := y

	d.setTextAccent(d.tokens.HeadingFamily, "B", 11)
	d.pdf.SetXY(x, y)
	d.pdf.CellFormat(w, 6, d.tr(b.Title), "", 0, "L", false, 0, "")
	y += 6
	d.setDrawAccent()
	d.pdf.SetLineWidth(0.4)
	d.pdf.Line(x, y, x+w, y)
	y += 2

	for i, e := range b.Entries {
		if i > 0 {
			y += d.tokens.BulletGapMM * 1.5
		}
		y = d.drawEntry(e, x, y, w)
	}

	if d.tokens.BorderTargets[style.BorderSection] {
		d.setDrawAccent()
		d.boxBorder(x-1.5, top-1.5, w+3, y-top+3)
	}
	return y
}

// drawEntry 渲染一个条目，返回底部 y。
func (d *doc) drawEntry(e layout.Entry, x, y, w float64) float64 {
	top := y
	lineH := 4.8

	if e.Inline {
		// 单栏技能形态：“分类: a, b, c” 一段连续文本。
		text := e.Primary
		if e.Body != "" {
			text += ": " + e.Body
		}
		text = d.tr(text)
		d.setTextBody()
		lines := d.pdf.SplitText(text, w)
		d.pdf.SetXY(x, y)
		d.pdf.MultiCell(w, lineH, text, "", "L", false)
		return y + float64(len(lines))*lineH
	}

	if e.Primary != "" || e.Meta != "" {
		d.setTextBody()
		d.pdf.SetFont(d.tokens.BodyFamily, "B", 10)
		metaW := 0.0
		if e.Meta != "" {
			meta := d.tr(e.Meta)
			d.pdf.SetFont(d.tokens.BodyFamily, "", 9)
			metaW = d.pdf.GetStringWidth(meta) + 2
			d.setTextMuted()
			d.pdf.SetXY(x+w-metaW, y)
			d.pdf.CellFormat(metaW, lineH, meta, "", 0, "R", false, 0, "")
		}
		d.pdf.SetTextColor(31, 41, 55)
		d.pdf.SetFont(d.tokens.BodyFamily, "B", 10)
		d.pdf.SetXY(x, y)
		d.pdf.CellFormat(w-metaW, lineH, d.tr(e.Primary), "", 0, "L", false, 0, "")
		y += lineH
	}

	if e.Secondary != "" {
		d.setTextMuted()
		d.pdf.SetXY(x, y)
		d.pdf.CellFormat(w, lineH, d.tr(e.Secondary), "", 0, "L", false, 0, "")
		y += lineH
	}

	if e.Body != "" {
		body := d.tr(e.Body)
		d.setTextBody()
		lines := d.pdf.SplitText(body, w)
		d.pdf.SetXY(x, y)
		d.pdf.MultiCell(w, lineH, body, "", "L", false)
		y += float64(len(lines)) * lineH
	}

	for _, bullet := range e.Bullets {
		text := d.tr(bullet)
		d.setTextBody()
		d.pdf.SetXY(x+1, y)
		d.pdf.CellFormat(4, lineH, d.tr("•"), "", 0, "L", false, 0, "")
		lines := d.pdf.SplitText(text, w-5)
		d.pdf.SetXY(x+5, y)
		d.pdf.MultiCell(w-5, lineH, text, "", "L", false)
		y += float64(len(lines))*lineH + d.tokens.BulletGapMM*0.5
	}

	if len(e.Tags) > 0 {
		y = d.drawTags(e.Tags, x, y, w)
	}

	if e.Link != "" {
		y = d.drawLinkLine(e.Link, x, y, w)
	}

	if d.tokens.BorderTargets[style.BorderCard] {
		d.setDrawAccent()
		d.boxBorder(x-1, top-1, w+2, y-top+2)
	}
	return y
}

// drawTags 以流式小标签渲染技术栈/技能条目。
func (d *doc) drawTags(tags []string, x, y, w float64) float64 {
	d.pdf.SetFont(d.tokens.BodyFamily, "", 8)
	d.pdf.SetFillColor(d.tokens.SoftFill.R, d.tokens.SoftFill.G, d.tokens.SoftFill.B)
	d.pdf.SetTextColor(d.tokens.FillText.R, d.tokens.FillText.G, d.tokens.FillText.B)

	tagH := 5.0
	cx := x
	y += 1
	for _, t := range tags {
		text := d.tr(t)
		tw := d.pdf.GetStringWidth(text) + 4
		if cx+tw > x+w && cx > x {
			cx = x
			y += tagH + 1.2
		}
		d.pdf.RoundedRect(cx, y, tw, tagH, 1, "1234", "F")
		d.pdf.SetXY(cx, y+0.4)
		d.pdf.CellFormat(tw, tagH-0.8, text, "", 0, "C", false, 0, "")
		cx += tw + 1.6
	}
	return y + tagH + 1
}

// drawLinkLine 渲染链接文字。通过协议校验的链接叠加可点击区域，
// 未通过的仅保留纯文本。
func (d *doc) drawLinkLine(link string, x, y, w float64) float64 {
	lineH := 4.8
	href, ok := render.SafeLinkURL(link)
	if ok {
		d.setTextAccent(d.tokens.BodyFamily, "", 9)
	} else {
		d.setTextMuted()
	}
	text := d.tr(link)
	lines := d.pdf.SplitText(text, w)
	d.pdf.SetXY(x, y)
	d.pdf.MultiCell(w, lineH, text, "", "L", false)
	blockH := float64(len(lines)) * lineH
	if ok {
		d.pdf.LinkString(x, y, w, blockH, href)
	}
	return y + blockH
}
