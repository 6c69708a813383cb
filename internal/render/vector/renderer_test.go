package vector

import (
	"bytes"
	"compress/zlib"
	"io"
	"testing"

	"resumelab/internal/layout"
	"resumelab/internal/resume"
	"resumelab/internal/style"
)

func renderPDF(t *testing.T, model resume.Model, mode layout.Mode, assignment layout.PageAssignment) []byte {
	t.Helper()
	blocks := layout.BuildBlocks(model, mode)
	if assignment == nil {
		assignment = layout.SinglePage(layout.SectionIDs(blocks))
	}
	tokens := style.Resolve(style.DefaultConfig())
	out, err := New().Render(model, blocks, assignment, mode, tokens.Vector)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out
}

func testModel() resume.Model {
	return resume.Model{
		Header: resume.Header{
			FullName: "Alice Zhang",
			Title:    "Backend Engineer",
			Summary:  "Seven years building data-heavy services in Go.",
			Email:    "alice@example.com",
			GitHub:   "https://github.com/alice",
		},
		Experiences: []resume.Experience{
			{Role: "Engineer", Company: "Acme", Period: "2020 - 2023", Bullets: []string{"shipped the ingestion path", "cut p99 latency in half"}},
		},
		Projects: []resume.Project{
			{Title: "Pipeline", Description: "Streaming ETL.", Link: "https://example.com/p", Technologies: []string{"Go", "Kafka"}},
		},
		Skills: []resume.Skill{
			{Name: "Go", Category: "Languages"},
			{Name: "Postgres", Category: "Storage"},
		},
		Certifications: []resume.Certification{
			{Name: "CKA", Issuer: "CNCF", Year: 2022, CredentialURL: "https://example.com/cka"},
		},
	}
}

func TestRender_ProducesPDF(t *testing.T) {
	out := renderPDF(t, testModel(), layout.SingleColumn, nil)
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("output does not start with pdf magic: %q", out[:min(len(out), 16)])
	}
	if len(out) < 1000 {
		t.Fatalf("suspiciously small pdf: %d bytes", len(out))
	}
}

func TestRender_TwoColumnMode(t *testing.T) {
	out := renderPDF(t, testModel(), layout.TwoColumn, nil)
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatal("two-column render failed to produce pdf")
	}
}

func TestRender_MultiPageAssignment(t *testing.T) {
	model := testModel()
	assignment := layout.PageAssignment{
		{resume.SectionExperience, resume.SectionProjects},
		{resume.SectionSkills, resume.SectionCertifications},
	}

	two := renderPDF(t, model, layout.SingleColumn, assignment)
	one := renderPDF(t, model, layout.SingleColumn, nil)

	if !bytes.HasPrefix(two, []byte("%PDF-")) {
		t.Fatal("multi-page render failed")
	}
	// fpdf 在对象表里按 /Count 记录页数。
	if !bytes.Contains(two, []byte("/Count 2")) {
		t.Fatal("expected a two page document")
	}
	if !bytes.Contains(one, []byte("/Count 1")) {
		t.Fatal("expected a single page document")
	}
}

func TestRender_EmptyModel(t *testing.T) {
	model := resume.Model{Header: resume.Header{FullName: "Alice"}}
	out := renderPDF(t, model, layout.SingleColumn, layout.PageAssignment{{}})
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatal("empty model should still render a header-only page")
	}
}

// inflateStreams 解开 PDF 里的全部 flate 内容流，便于检查文本算子。
func inflateStreams(t *testing.T, pdf []byte) []byte {
	t.Helper()
	var out bytes.Buffer
	rest := pdf
	for {
		i := bytes.Index(rest, []byte("stream\n"))
		if i < 0 {
			break
		}
		rest = rest[i+len("stream\n"):]
		j := bytes.Index(rest, []byte("endstream"))
		if j < 0 {
			break
		}
		data := bytes.TrimSuffix(rest[:j], []byte("\n"))
		rest = rest[j:]
		zr, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			continue
		}
		decoded, err := io.ReadAll(zr)
		zr.Close()
		if err != nil {
			continue
		}
		out.Write(decoded)
	}
	return out.Bytes()
}

func TestRender_NonASCIITextUsesWinAnsiBytes(t *testing.T) {
	model := testModel()
	model.Header.FullName = "José Müller"
	model.Educations = []resume.Education{
		{Institution: "ETH Zürich", Degree: "MSc", StartYear: 2010, EndYear: 2014},
	}

	content := inflateStreams(t, renderPDF(t, model, layout.SingleColumn, nil))
	if len(content) == 0 {
		t.Fatal("no content streams decoded")
	}

	// 核心字体下 é=0xE9、•=0x95、–=0x96。
	for _, want := range [][]byte{{0xe9}, {0x95}, {0x96}} {
		if !bytes.Contains(content, want) {
			t.Fatalf("cp1252 byte % x missing from content stream", want)
		}
	}
	// 原始 UTF-8 序列出现说明文本没有经过转码，会显示为乱码。
	for _, raw := range [][]byte{{0xc3, 0xa9}, {0xe2, 0x80, 0xa2}, {0xe2, 0x80, 0x93}} {
		if bytes.Contains(content, raw) {
			t.Fatalf("raw utf-8 sequence % x leaked into content stream", raw)
		}
	}
}

func TestContactParts_FiltersUnsafeLinks(t *testing.T) {
	h := resume.Header{
		Email:   "alice@example.com",
		Phone:   "123",
		Website: "javascript:alert(1)",
		GitHub:  "https://github.com/alice",
	}

	parts, links := contactParts(h)

	if len(parts) != 4 || len(links) != 4 {
		t.Fatalf("parts=%v links=%v", parts, links)
	}
	if links[0] != "mailto:alice@example.com" {
		t.Fatalf("email link = %q", links[0])
	}
	if links[1] != "" {
		t.Fatalf("phone should not be a link: %q", links[1])
	}
	if links[2] != "" {
		t.Fatalf("javascript website must not become a link target: %q", links[2])
	}
	if links[3] != "https://github.com/alice" {
		t.Fatalf("github link = %q", links[3])
	}
}
