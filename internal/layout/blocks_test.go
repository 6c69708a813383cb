package layout

import (
	"testing"

	"resumelab/internal/resume"
	"resumelab/internal/style"
)

func sampleModel() resume.Model {
	return resume.Model{
		Header: resume.Header{FullName: "Alice Zhang"},
		Experiences: []resume.Experience{
			{Role: "Engineer", Company: "Acme", Location: "Shanghai", Period: "2020 - 2023", Bullets: []string{"a", "b"}},
		},
		Skills: []resume.Skill{
			{Name: "Go", Category: "Languages"},
			{Name: "Rust", Category: "Languages"},
			{Name: "Postgres"},
		},
		Educations: []resume.Education{
			{Institution: "Fudan University", Degree: "BSc", Field: "CS", StartYear: 2014, EndYear: 2018},
		},
	}
}

func TestBuildBlocks_SkipsEmptySectionsKeepsOrder(t *testing.T) {
	blocks := BuildBlocks(sampleModel(), SingleColumn)

	want := []resume.SectionID{resume.SectionExperience, resume.SectionSkills, resume.SectionEducation}
	ids := SectionIDs(blocks)
	if len(ids) != len(want) {
		t.Fatalf("ids = %v", ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids = %v, want %v", ids, want)
		}
	}
}

func TestBuildBlocks_ExperienceSecondaryJoinsCompanyAndLocation(t *testing.T) {
	blocks := BuildBlocks(sampleModel(), SingleColumn)
	b, ok := BlockByID(blocks, resume.SectionExperience)
	if !ok {
		t.Fatal("experience block missing")
	}
	if b.Entries[0].Secondary != "Acme · Shanghai" {
		t.Fatalf("secondary = %q", b.Entries[0].Secondary)
	}
}

func TestBuildBlocks_SkillsInlineVsStacked(t *testing.T) {
	single := BuildBlocks(sampleModel(), SingleColumn)
	b, _ := BlockByID(single, resume.SectionSkills)
	if len(b.Entries) != 2 {
		t.Fatalf("skill groups = %+v", b.Entries)
	}
	if !b.Entries[0].Inline || b.Entries[0].Body != "Go, Rust" {
		t.Fatalf("inline form = %+v", b.Entries[0])
	}
	// 无分类技能归入 Other。
	if b.Entries[1].Primary != "Other" {
		t.Fatalf("uncategorized group = %+v", b.Entries[1])
	}

	two := BuildBlocks(sampleModel(), TwoColumn)
	b, _ = BlockByID(two, resume.SectionSkills)
	if b.Entries[0].Inline || len(b.Entries[0].Tags) != 2 {
		t.Fatalf("stacked form = %+v", b.Entries[0])
	}
	if !b.SideEligible {
		t.Fatal("skills must be side-eligible")
	}
}

func TestBuildBlocks_EducationYearRange(t *testing.T) {
	blocks := BuildBlocks(sampleModel(), SingleColumn)
	b, _ := BlockByID(blocks, resume.SectionEducation)
	if b.Entries[0].Meta != "2014 – 2018" {
		t.Fatalf("meta = %q", b.Entries[0].Meta)
	}
	if b.Entries[0].Secondary != "BSc, CS" {
		t.Fatalf("secondary = %q", b.Entries[0].Secondary)
	}
}

func TestEstimator_TallerContentEstimatesTaller(t *testing.T) {
	cfg := style.DefaultConfig()
	tokens := style.Resolve(cfg)
	est := NewEstimator(cfg, tokens.Vector)

	short := sampleModel()
	tall := sampleModel()
	for i := 0; i < 8; i++ {
		tall.Experiences = append(tall.Experiences, resume.Experience{
			Role:    "Engineer",
			Company: "Acme",
			Bullets: []string{"did a considerable amount of cross-team work on the ingestion path"},
		})
	}

	shortH := est.HeightOf(BuildBlocks(short, SingleColumn), SingleColumn)(resume.SectionExperience)
	tallH := est.HeightOf(BuildBlocks(tall, SingleColumn), SingleColumn)(resume.SectionExperience)

	if shortH <= 0 || tallH <= shortH {
		t.Fatalf("short=%f tall=%f", shortH, tallH)
	}
}

func TestEstimator_UnknownSectionIsZero(t *testing.T) {
	cfg := style.DefaultConfig()
	tokens := style.Resolve(cfg)
	est := NewEstimator(cfg, tokens.Vector)

	h := est.HeightOf(BuildBlocks(sampleModel(), SingleColumn), SingleColumn)
	if h(resume.SectionProjects) != 0 {
		t.Fatalf("missing section should estimate zero, got %f", h(resume.SectionProjects))
	}
}

func TestContentWidth(t *testing.T) {
	inner := PageWidthPx - 2*44
	if got := ContentWidth(SingleColumn, ColumnMain, 44); got != inner {
		t.Fatalf("single column width = %f", got)
	}
	side := ContentWidth(TwoColumn, ColumnSide, 44)
	main := ContentWidth(TwoColumn, ColumnMain, 44)
	if side >= main {
		t.Fatalf("side %f should be narrower than main %f", side, main)
	}
	if got := side + main + columnGapPx; got != inner {
		t.Fatalf("columns plus gap = %f, want %f", got, inner)
	}
}
