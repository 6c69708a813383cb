package layout

import "resumelab/internal/resume"

// A4 @ 96dpi 的页面几何，与前端画布保持一致。
const (
	PageWidthPx  = 794.0
	PageHeightPx = 1122.0
	// 双栏模式下侧栏占内容宽度的比例。
	SideColumnRatio = 0.32
)

// PlanPage 是一页的栏位分配结果：主栏与侧栏各自的有序区块。
type PlanPage struct {
	Main []resume.SectionID
	Side []resume.SectionID
}

// Plan 把分页结果按共享的栏位决策拆成主/侧栏序列。
// 放置规则只在这里实现一次，两个渲染器都只负责“怎么画”，
// 不重复实现“放在哪”。
func Plan(assignment PageAssignment, mode Mode) []PlanPage {
	pages := make([]PlanPage, 0, len(assignment))
	for _, ids := range assignment {
		var p PlanPage
		for _, id := range ids {
			if ColumnFor(id, mode) == ColumnSide {
				p.Side = append(p.Side, id)
			} else {
				p.Main = append(p.Main, id)
			}
		}
		pages = append(pages, p)
	}
	return pages
}

// ContentWidth 返回指定栏的内容宽度（像素）。
func ContentWidth(mode Mode, col Column, pagePaddingPx float64) float64 {
	inner := PageWidthPx - 2*pagePaddingPx
	if mode != TwoColumn {
		return inner
	}
	side := inner * SideColumnRatio
	if col == ColumnSide {
		return side
	}
	// 两栏之间留与侧栏比例无关的固定栏距。
	return inner - side - columnGapPx
}

const columnGapPx = 24.0
