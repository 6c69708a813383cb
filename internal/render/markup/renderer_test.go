package markup

import (
	"strings"
	"testing"

	"resumelab/internal/layout"
	"resumelab/internal/resume"
	"resumelab/internal/style"
)

func renderModel(t *testing.T, model resume.Model, mode layout.Mode, assignment layout.PageAssignment) string {
	t.Helper()
	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	blocks := layout.BuildBlocks(model, mode)
	if assignment == nil {
		assignment = layout.SinglePage(layout.SectionIDs(blocks))
	}
	tokens := style.Resolve(style.DefaultConfig())
	html, err := r.Render(model, blocks, assignment, mode, tokens.HTML)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return html
}

func TestRender_EscapesUserText(t *testing.T) {
	model := resume.Model{
		Header: resume.Header{FullName: `<script>alert("x")</script>`},
		Experiences: []resume.Experience{
			{Role: "Engineer & <b>Hacker</b>", Company: "Acme"},
		},
	}

	html := renderModel(t, model, layout.SingleColumn, nil)

	if strings.Contains(html, "<script>alert") {
		t.Fatal("script tag leaked unescaped")
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Fatal("full name not escaped")
	}
	if strings.Contains(html, "<b>Hacker</b>") {
		t.Fatal("entry text not escaped")
	}
}

func TestRender_UnsafeLinkRenderedAsPlainText(t *testing.T) {
	model := resume.Model{
		Header: resume.Header{FullName: "Alice"},
		Projects: []resume.Project{
			{Title: "Evil", Link: "javascript:alert(1)"},
			{Title: "Fine", Link: "https://example.com/repo"},
		},
	}

	html := renderModel(t, model, layout.SingleColumn, nil)

	if strings.Contains(html, `href="javascript:`) {
		t.Fatal("javascript link became clickable")
	}
	// 未通过校验的链接仍以纯文本显示。
	if !strings.Contains(html, "javascript:alert(1)") {
		t.Fatal("unsafe link text dropped entirely")
	}
	if !strings.Contains(html, `href="https://example.com/repo"`) {
		t.Fatal("safe link not clickable")
	}
}

func TestRender_HeaderOnlyOnFirstPage(t *testing.T) {
	model := resume.Model{
		Header:      resume.Header{FullName: "Alice Zhang", Summary: "Summary text."},
		Experiences: []resume.Experience{{Role: "Engineer", Company: "Acme"}},
		Projects:    []resume.Project{{Title: "Pipeline"}},
	}
	assignment := layout.PageAssignment{
		{resume.SectionExperience},
		{resume.SectionProjects},
	}

	html := renderModel(t, model, layout.SingleColumn, assignment)

	if got := strings.Count(html, `class="page"`); got != 2 {
		t.Fatalf("page count = %d", got)
	}
	if got := strings.Count(html, `class="name"`); got != 1 {
		t.Fatalf("header rendered %d times, want once", got)
	}
	if got := strings.Count(html, `class="summary"`); got != 1 {
		t.Fatalf("summary rendered %d times, want once", got)
	}
}

func TestRender_ContactPlacementByMode(t *testing.T) {
	model := resume.Model{
		Header: resume.Header{
			FullName: "Alice Zhang",
			Email:    "alice@example.com",
			GitHub:   "https://github.com/alice",
		},
		Experiences: []resume.Experience{{Role: "Engineer", Company: "Acme"}},
		Skills:      []resume.Skill{{Name: "Go", Category: "Languages"}},
	}

	single := renderModel(t, model, layout.SingleColumn, nil)
	if !strings.Contains(single, `class="contact-line"`) {
		t.Fatal("single column should render inline contact line")
	}
	if strings.Contains(single, `class="col-side"`) {
		t.Fatal("single column must not have a side column")
	}

	two := renderModel(t, model, layout.TwoColumn, nil)
	if !strings.Contains(two, `class="contact-block"`) {
		t.Fatal("two-column should render side contact block")
	}
	if strings.Contains(two, `class="contact-line"`) {
		t.Fatal("two-column must not render inline contact line")
	}
	if !strings.Contains(two, `href="mailto:alice@example.com"`) {
		t.Fatal("email should be a mailto link")
	}
}

func TestRender_SideEligibleSectionsInSideColumn(t *testing.T) {
	model := resume.Model{
		Header:      resume.Header{FullName: "Alice"},
		Experiences: []resume.Experience{{Role: "Engineer", Company: "Acme"}},
		Skills:      []resume.Skill{{Name: "Go"}},
	}

	html := renderModel(t, model, layout.TwoColumn, nil)

	sideStart := strings.Index(html, `class="col-side"`)
	if sideStart < 0 {
		t.Fatal("side column missing")
	}
	skillsAt := strings.Index(html, `data-section="skills"`)
	expAt := strings.Index(html, `data-section="experience"`)
	if skillsAt < sideStart {
		t.Fatal("skills should be inside the side column")
	}
	if expAt > sideStart {
		t.Fatal("experience should be in the main column before the side column")
	}
}

func TestRender_TokensEmbedded(t *testing.T) {
	model := resume.Model{Header: resume.Header{FullName: "Alice"}}
	html := renderModel(t, model, layout.SingleColumn, nil)
	if !strings.Contains(html, ":root {") || !strings.Contains(html, "--accent:") {
		t.Fatal("style tokens not embedded")
	}
	if !strings.Contains(html, "@media print") {
		t.Fatal("print rules missing")
	}
}
