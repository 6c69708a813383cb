package layout

import "resumelab/internal/resume"

// HeightFunc 报告一个区块的高度（设备像素）。返回零、负数或 NaN
// 都按零高度处理：区块不占预算，但仍占据它在栏内的顺序位。
type HeightFunc func(resume.SectionID) float64

// PageAssignment 是有序页列表，每页是有序的区块标识列表。
// 不变式：固定顺序里的每个区块恰好出现在一页上，相对顺序不变；
// 除非区块集合为空，否则不存在空页。
type PageAssignment [][]resume.SectionID

// Column 标识区块落入的栏。
type Column int

const (
	ColumnMain Column = iota
	ColumnSide
)

// ColumnFor 是两个渲染器共享的栏位决策：双栏模式下侧栏资格
// 区块进入侧栏，其余进入主栏；单栏模式下一律主栏。
func ColumnFor(id resume.SectionID, mode Mode) Column {
	if mode == TwoColumn && resume.IsSideEligible(id) {
		return ColumnSide
	}
	return ColumnMain
}

// Paginate 在给定页高预算下把区块按固定顺序分配到各页。
//
// 双栏模式维护两个独立的累计高度（主栏、侧栏），各自只在同栏
// 相邻区块之间累加间距；放置一个区块只推进它所在栏的累计值。
// 若放置后 max(主栏, 侧栏) 超出预算且当前页已有至少一个区块，
// 则翻页（两栏累计清零）后再放置。单独超出预算的区块仍被放置，
// 允许溢出而不是被拆分或丢弃。
func Paginate(order []resume.SectionID, heightOf HeightFunc, mode Mode, pageBudget, gap float64) PageAssignment {
	pages := PageAssignment{}
	if len(order) == 0 {
		return pages
	}

	current := make([]resume.SectionID, 0, len(order))
	var mainTotal, sideTotal float64
	// 每栏是否已在当前页放置过区块，决定是否累加区块间距。
	var mainPlaced, sidePlaced bool

	flush := func() {
		if len(current) == 0 {
			return
		}
		pages = append(pages, current)
		current = make([]resume.SectionID, 0, len(order))
		mainTotal, sideTotal = 0, 0
		mainPlaced, sidePlaced = false, false
	}

	for _, id := range order {
		h := 0.0
		if heightOf != nil {
			if v := heightOf(id); v > 0 && v == v { // 过滤负值与 NaN
				h = v
			}
		}

		col := ColumnFor(id, mode)
		newMain, newSide := mainTotal, sideTotal
		if col == ColumnMain {
			newMain += h
			if mainPlaced {
				newMain += gap
			}
		} else {
			newSide += h
			if sidePlaced {
				newSide += gap
			}
		}

		if max(newMain, newSide) > pageBudget && len(current) > 0 {
			flush()
			newMain, newSide = 0, 0
			if col == ColumnMain {
				newMain = h
			} else {
				newSide = h
			}
		}

		current = append(current, id)
		mainTotal, sideTotal = newMain, newSide
		if col == ColumnMain {
			mainPlaced = true
		} else {
			sidePlaced = true
		}
	}
	flush()

	return pages
}

// SinglePage 是旧的未测量策略：全部区块放进一页。仅在显式关闭
// 高度估算时使用；多页内容会在单页上溢出。
func SinglePage(order []resume.SectionID) PageAssignment {
	if len(order) == 0 {
		return PageAssignment{}
	}
	page := make([]resume.SectionID, len(order))
	copy(page, order)
	return PageAssignment{page}
}
