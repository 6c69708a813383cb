package layout

import (
	"math"
	"testing"

	"resumelab/internal/resume"
)

func heightsOf(m map[resume.SectionID]float64) HeightFunc {
	return func(id resume.SectionID) float64 { return m[id] }
}

func flatten(pages PageAssignment) []resume.SectionID {
	var out []resume.SectionID
	for _, p := range pages {
		out = append(out, p...)
	}
	return out
}

func TestPaginate_EveryBlockPlacedOnceInOrder(t *testing.T) {
	order := resume.SectionOrder()
	heights := heightsOf(map[resume.SectionID]float64{
		resume.SectionExperience:     400,
		resume.SectionProjects:       400,
		resume.SectionSkills:         300,
		resume.SectionEducation:      300,
		resume.SectionCertifications: 200,
	})

	pages := Paginate(order, heights, SingleColumn, 1000, 20)

	got := flatten(pages)
	if len(got) != len(order) {
		t.Fatalf("placed %d blocks, want %d: %v", len(got), len(order), pages)
	}
	for i, id := range order {
		if got[i] != id {
			t.Fatalf("order broken at %d: got %v", i, got)
		}
	}
	for i, p := range pages {
		if len(p) == 0 {
			t.Fatalf("empty page %d: %v", i, pages)
		}
	}
}

func TestPaginate_OverflowStartsNewPage(t *testing.T) {
	order := []resume.SectionID{resume.SectionExperience, resume.SectionProjects}
	heights := heightsOf(map[resume.SectionID]float64{
		resume.SectionExperience: 700,
		resume.SectionProjects:   700,
	})

	pages := Paginate(order, heights, SingleColumn, 1000, 20)

	if len(pages) != 2 {
		t.Fatalf("pages = %v", pages)
	}
	if pages[0][0] != resume.SectionExperience || pages[1][0] != resume.SectionProjects {
		t.Fatalf("pages = %v", pages)
	}
}

func TestPaginate_OversizedBlockOverflowsInPlace(t *testing.T) {
	// 单个区块超出预算：仍被放置，不拆分不丢弃。
	order := []resume.SectionID{resume.SectionExperience}
	heights := heightsOf(map[resume.SectionID]float64{resume.SectionExperience: 5000})

	pages := Paginate(order, heights, SingleColumn, 1000, 20)

	if len(pages) != 1 || len(pages[0]) != 1 {
		t.Fatalf("pages = %v", pages)
	}
}

func TestPaginate_GapOnlyBetweenAdjacentBlocks(t *testing.T) {
	// 两个 490 高的区块加一个 20 的间距恰好等于预算，应同页。
	order := []resume.SectionID{resume.SectionExperience, resume.SectionProjects}
	heights := heightsOf(map[resume.SectionID]float64{
		resume.SectionExperience: 490,
		resume.SectionProjects:   490,
	})

	pages := Paginate(order, heights, SingleColumn, 1000, 20)

	if len(pages) != 1 {
		t.Fatalf("pages = %v", pages)
	}
}

func TestPaginate_ColumnsAccumulateIndependently(t *testing.T) {
	// 双栏下 skills 走侧栏，不挤占主栏预算。主栏两块 490+490+20
	// 恰好占满，侧栏 900 独立累计，三块应同页。
	order := []resume.SectionID{resume.SectionExperience, resume.SectionProjects, resume.SectionSkills}
	heights := heightsOf(map[resume.SectionID]float64{
		resume.SectionExperience: 490,
		resume.SectionProjects:   490,
		resume.SectionSkills:     900,
	})

	pages := Paginate(order, heights, TwoColumn, 1000, 20)
	if len(pages) != 1 {
		t.Fatalf("two-column pages = %v", pages)
	}

	// 同样的高度在单栏下必须翻页。
	pages = Paginate(order, heights, SingleColumn, 1000, 20)
	if len(pages) != 2 {
		t.Fatalf("single-column pages = %v", pages)
	}
}

func TestPaginate_BogusHeightsTreatedAsZero(t *testing.T) {
	order := []resume.SectionID{resume.SectionExperience, resume.SectionProjects, resume.SectionSkills}
	heights := heightsOf(map[resume.SectionID]float64{
		resume.SectionExperience: math.NaN(),
		resume.SectionProjects:   -50,
		resume.SectionSkills:     100,
	})

	pages := Paginate(order, heights, SingleColumn, 1000, 20)

	if len(pages) != 1 || len(pages[0]) != 3 {
		t.Fatalf("pages = %v", pages)
	}
}

func TestPaginate_NilHeightFunc(t *testing.T) {
	pages := Paginate(resume.SectionOrder(), nil, SingleColumn, 1000, 20)
	if len(pages) != 1 || len(pages[0]) != 5 {
		t.Fatalf("pages = %v", pages)
	}
}

func TestPaginate_EmptyOrder(t *testing.T) {
	pages := Paginate(nil, nil, SingleColumn, 1000, 20)
	if len(pages) != 0 {
		t.Fatalf("pages = %v", pages)
	}
}

func TestSinglePage(t *testing.T) {
	pages := SinglePage(resume.SectionOrder())
	if len(pages) != 1 || len(pages[0]) != 5 {
		t.Fatalf("pages = %v", pages)
	}
	if len(SinglePage(nil)) != 0 {
		t.Fatal("empty order should yield no pages")
	}
}

func TestParseMode(t *testing.T) {
	if ParseMode("two-column") != TwoColumn {
		t.Fatal("two-column not recognized")
	}
	if ParseMode(" TWO-COLUMN ") != TwoColumn {
		t.Fatal("mode parse should be case-insensitive")
	}
	if ParseMode("") != SingleColumn || ParseMode("bogus") != SingleColumn {
		t.Fatal("unknown mode should fall back to single column")
	}
	if SingleColumn.String() != "single-column" || TwoColumn.String() != "two-column" {
		t.Fatal("mode string roundtrip broken")
	}
}

func TestColumnFor(t *testing.T) {
	if ColumnFor(resume.SectionSkills, TwoColumn) != ColumnSide {
		t.Fatal("skills should go to side column in two-column mode")
	}
	if ColumnFor(resume.SectionCertifications, TwoColumn) != ColumnSide {
		t.Fatal("certifications should go to side column in two-column mode")
	}
	if ColumnFor(resume.SectionExperience, TwoColumn) != ColumnMain {
		t.Fatal("experience must stay in main column")
	}
	if ColumnFor(resume.SectionSkills, SingleColumn) != ColumnMain {
		t.Fatal("single column has no side")
	}
}

func TestPlan_SplitsByColumn(t *testing.T) {
	assignment := PageAssignment{
		{resume.SectionExperience, resume.SectionSkills},
		{resume.SectionEducation, resume.SectionCertifications},
	}

	plan := Plan(assignment, TwoColumn)

	if len(plan) != 2 {
		t.Fatalf("plan = %+v", plan)
	}
	if len(plan[0].Main) != 1 || plan[0].Main[0] != resume.SectionExperience {
		t.Fatalf("page 1 main = %v", plan[0].Main)
	}
	if len(plan[0].Side) != 1 || plan[0].Side[0] != resume.SectionSkills {
		t.Fatalf("page 1 side = %v", plan[0].Side)
	}
	if len(plan[1].Side) != 1 || plan[1].Side[0] != resume.SectionCertifications {
		t.Fatalf("page 2 side = %v", plan[1].Side)
	}

	single := Plan(assignment, SingleColumn)
	if len(single[0].Side) != 0 || len(single[0].Main) != 2 {
		t.Fatalf("single-column plan = %+v", single[0])
	}
}
