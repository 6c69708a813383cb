package resolver

import (
	"testing"

	"resumelab/internal/resume"
)

func baselineModel() resume.Model {
	return resume.Model{
		Header: resume.Header{
			FullName: "Alice Zhang",
			Title:    "Backend Engineer",
			Summary:  "Stored summary.",
			Email:    "alice@example.com",
		},
		Experiences: []resume.Experience{
			{ID: "11", Role: "Engineer", Company: "Acme", Location: "Shanghai", Period: "2020 - 2023", Bullets: []string{"built things"}},
		},
		Projects: []resume.Project{
			{ID: "21", Title: "Pipeline", Description: "ETL pipeline", Link: "https://example.com/p", Technologies: []string{"Go", "Kafka"}},
		},
		Skills: []resume.Skill{
			{ID: "31", Name: "Go", Category: "Languages"},
		},
		Educations: []resume.Education{
			{ID: "41", Institution: "Fudan University", Degree: "BSc", StartYear: 2014, EndYear: 2018},
		},
		Certifications: []resume.Certification{
			{ID: "51", Name: "CKA", Issuer: "CNCF", Year: 2022},
		},
	}
}

func TestResolve_BaselineOnly(t *testing.T) {
	got := Resolve(baselineModel(), nil, nil)

	if got.Header.FullName != "Alice Zhang" {
		t.Fatalf("full name = %q", got.Header.FullName)
	}
	if len(got.Experiences) != 1 || got.Experiences[0].ID != "11" {
		t.Fatalf("experiences = %+v", got.Experiences)
	}
	if len(got.Educations) != 1 || got.Educations[0].Institution != "Fudan University" {
		t.Fatalf("educations = %+v", got.Educations)
	}
}

func TestResolve_DraftHeaderKeyPresenceWins(t *testing.T) {
	// 键存在但值为空串也是一次覆盖：显式清掉 title。
	draft := &resume.Draft{Header: map[string]string{
		"title":    "",
		"headline": "Open to work",
	}}

	got := Resolve(baselineModel(), nil, draft)

	if got.Header.Title != "" {
		t.Fatalf("draft empty-string override ignored, title = %q", got.Header.Title)
	}
	if got.Header.Headline != "Open to work" {
		t.Fatalf("headline = %q", got.Header.Headline)
	}
	// 未覆盖的键保持基线值。
	if got.Header.FullName != "Alice Zhang" {
		t.Fatalf("full name = %q", got.Header.FullName)
	}
}

func TestResolve_GeneratedSummaryOnlyTouchesSummary(t *testing.T) {
	gen := &resume.Generated{Seq: 1, Summary: "Tailored summary."}

	got := Resolve(baselineModel(), gen, nil)

	if got.Header.Summary != "Tailored summary." {
		t.Fatalf("summary = %q", got.Header.Summary)
	}
	if got.Header.Title != "Backend Engineer" {
		t.Fatalf("title changed by generation: %q", got.Header.Title)
	}
}

func TestResolve_DraftSummaryBeatsGenerated(t *testing.T) {
	gen := &resume.Generated{Seq: 1, Summary: "Tailored summary."}
	draft := &resume.Draft{Header: map[string]string{"summary": "My own words."}}

	got := Resolve(baselineModel(), gen, draft)

	if got.Header.Summary != "My own words." {
		t.Fatalf("summary = %q", got.Header.Summary)
	}
}

func TestResolve_SynthesisBackfillsByNaturalKey(t *testing.T) {
	gen := &resume.Generated{
		Seq: 1,
		Experiences: []resume.GeneratedExperience{
			// 大小写与空白不同，但自然键应命中基线条目。
			{Role: " engineer ", Company: "ACME", Bullets: []string{"rewritten bullet"}},
			{Role: "Intern", Company: "Startup", Period: "2019"},
		},
		Projects: []resume.GeneratedProject{
			{Title: "pipeline", Description: "rewritten"},
		},
		SkillsByCategory: map[string][]string{
			"Languages": {"Go", "Rust"},
		},
	}

	got := Resolve(baselineModel(), gen, nil)

	if len(got.Experiences) != 2 {
		t.Fatalf("experiences = %+v", got.Experiences)
	}
	matched := got.Experiences[0]
	if matched.ID != "11" || matched.Location != "Shanghai" {
		t.Fatalf("natural-key backfill missing: %+v", matched)
	}
	// 生成条目没给时间段时沿用档案里的。
	if matched.Period != "2020 - 2023" {
		t.Fatalf("period = %q", matched.Period)
	}
	if fresh := got.Experiences[1]; fresh.ID != "" {
		t.Fatalf("unmatched entry should have no id: %+v", fresh)
	}

	if got.Projects[0].ID != "21" || got.Projects[0].Link != "https://example.com/p" {
		t.Fatalf("project backfill: %+v", got.Projects[0])
	}
	if got.Projects[0].Description != "rewritten" {
		t.Fatalf("generated description lost: %+v", got.Projects[0])
	}

	if len(got.Skills) != 2 {
		t.Fatalf("skills = %+v", got.Skills)
	}
	if got.Skills[0].ID != "31" {
		t.Fatalf("skill backfill: %+v", got.Skills[0])
	}
	if got.Skills[1].Name != "Rust" || got.Skills[1].ID != "" {
		t.Fatalf("new skill: %+v", got.Skills[1])
	}
}

func TestResolve_DraftSectionBeatsGenerated(t *testing.T) {
	gen := &resume.Generated{
		Seq:         1,
		Experiences: []resume.GeneratedExperience{{Role: "Generated", Company: "X"}},
	}
	draft := &resume.Draft{
		Experiences: &[]resume.Experience{{Role: "Edited", Company: "Y"}},
	}

	got := Resolve(baselineModel(), gen, draft)

	if len(got.Experiences) != 1 || got.Experiences[0].Role != "Edited" {
		t.Fatalf("experiences = %+v", got.Experiences)
	}
}

func TestResolve_DraftEmptyListHidesSection(t *testing.T) {
	empty := []resume.Experience{}
	draft := &resume.Draft{Experiences: &empty}

	got := Resolve(baselineModel(), nil, draft)

	if len(got.Experiences) != 0 {
		t.Fatalf("empty draft list should hide baseline entries: %+v", got.Experiences)
	}
}

func TestResolve_EducationNeverGenerated(t *testing.T) {
	gen := &resume.Generated{Seq: 1, Summary: "s"}

	got := Resolve(baselineModel(), gen, nil)

	if len(got.Educations) != 1 || got.Educations[0].ID != "41" {
		t.Fatalf("educations = %+v", got.Educations)
	}
	if len(got.Certifications) != 1 || got.Certifications[0].ID != "51" {
		t.Fatalf("certifications = %+v", got.Certifications)
	}
}

func TestResolve_EmptyDraftTreatedAsNil(t *testing.T) {
	got := Resolve(baselineModel(), nil, &resume.Draft{})
	if len(got.Experiences) != 1 {
		t.Fatalf("empty draft should not hide anything: %+v", got.Experiences)
	}
}

func TestApplyGeneration(t *testing.T) {
	edu := []resume.Education{{Institution: "Kept"}}
	draft := &resume.Draft{
		Header:      map[string]string{"summary": "old"},
		Experiences: &[]resume.Experience{{Role: "old"}},
		Educations:  &edu,
	}

	got := ApplyGeneration(draft)

	if got == nil {
		t.Fatal("education override should survive")
	}
	if got.Header != nil || got.Experiences != nil || got.Projects != nil || got.Skills != nil {
		t.Fatalf("ai-eligible overrides not cleared: %+v", got)
	}
	if got.Educations == nil || (*got.Educations)[0].Institution != "Kept" {
		t.Fatalf("education override lost: %+v", got)
	}
}

func TestApplyGeneration_AllClearedBecomesNil(t *testing.T) {
	draft := &resume.Draft{Header: map[string]string{"summary": "old"}}
	if got := ApplyGeneration(draft); got != nil {
		t.Fatalf("expected nil draft, got %+v", got)
	}
	if got := ApplyGeneration(nil); got != nil {
		t.Fatalf("nil in, nil out: %+v", got)
	}
}

func TestAcceptCompleted(t *testing.T) {
	current := &resume.Generated{Seq: 3}

	// 迟到的旧响应被丢弃。
	got, ok := AcceptCompleted(current, resume.Generated{Seq: 2}, 4)
	if ok || got != current {
		t.Fatalf("stale response accepted: %+v ok=%v", got, ok)
	}

	// 与最近发起的序号一致则接受。
	got, ok = AcceptCompleted(current, resume.Generated{Seq: 4}, 4)
	if !ok || got == nil || got.Seq != 4 {
		t.Fatalf("fresh response rejected: %+v ok=%v", got, ok)
	}

	// 没有现存建议时首个完成的响应被接受。
	got, ok = AcceptCompleted(nil, resume.Generated{Seq: 1}, 1)
	if !ok || got == nil || got.Seq != 1 {
		t.Fatalf("first response rejected: %+v ok=%v", got, ok)
	}
}
