// Package resolver 将三个相互重叠的内容来源（已保存档案、生成建议、
// 用户草稿）合并为一份有效简历模型。
package resolver

import (
	"sort"
	"strings"

	"resumelab/internal/resume"
)

// Resolve 按以下优先级产出有效模型：
//
// 头部逐字段：草稿键存在（即使是空串）> 生成的 summary（仅该字段）
// > 档案字段 > 空串。
//
// 列表区块：草稿定义了该区块则原样采用（已是用户的最终列表）；
// 否则若存在生成建议且区块允许生成，则由建议合成条目并按自然键
// 回填档案中的 ID/地点/链接/技术栈；否则回落到档案列表。
//
// 任何输入都不会被修改；返回值是全新的不可变快照。
func Resolve(baseline resume.Model, gen *resume.Generated, draft *resume.Draft) resume.Model {
	if draft != nil && draft.IsEmpty() {
		draft = nil
	}

	out := resume.Model{
		Header: resolveHeader(baseline.Header, gen, draft),
	}

	if draft.HasSection(resume.SectionExperience) {
		out.Experiences = resume.NormalizeExperiences(*draft.Experiences)
	} else if gen != nil {
		out.Experiences = synthesizeExperiences(baseline.Experiences, gen.Experiences)
	} else {
		out.Experiences = resume.NormalizeExperiences(baseline.Experiences)
	}

	if draft.HasSection(resume.SectionProjects) {
		out.Projects = resume.NormalizeProjects(*draft.Projects)
	} else if gen != nil {
		out.Projects = synthesizeProjects(baseline.Projects, gen.Projects)
	} else {
		out.Projects = resume.NormalizeProjects(baseline.Projects)
	}

	if draft.HasSection(resume.SectionSkills) {
		out.Skills = resume.NormalizeSkills(*draft.Skills)
	} else if gen != nil {
		out.Skills = synthesizeSkills(baseline.Skills, gen.SkillsByCategory)
	} else {
		out.Skills = resume.NormalizeSkills(baseline.Skills)
	}

	// education 与 certifications 不接受生成内容，只有草稿能覆盖档案。
	if draft.HasSection(resume.SectionEducation) {
		out.Educations = resume.NormalizeEducations(*draft.Educations)
	} else {
		out.Educations = resume.NormalizeEducations(baseline.Educations)
	}

	if draft.HasSection(resume.SectionCertifications) {
		out.Certifications = resume.NormalizeCertifications(*draft.Certifications)
	} else {
		out.Certifications = resume.NormalizeCertifications(baseline.Certifications)
	}

	return out
}

func resolveHeader(base resume.Header, gen *resume.Generated, draft *resume.Draft) resume.Header {
	h := resume.NormalizeHeader(base)
	if gen != nil && strings.TrimSpace(gen.Summary) != "" {
		h.Summary = strings.TrimSpace(gen.Summary)
	}
	if draft == nil || len(draft.Header) == 0 {
		return h
	}

	// 草稿头部以键存在与否为准：存在即覆盖，哪怕值为空串。
	apply := func(key string, dst *string) {
		if v, ok := draft.Header[key]; ok {
			*dst = strings.TrimSpace(v)
		}
	}
	apply("full_name", &h.FullName)
	apply("title", &h.Title)
	apply("headline", &h.Headline)
	apply("summary", &h.Summary)
	apply("email", &h.Email)
	apply("phone", &h.Phone)
	apply("location", &h.Location)
	apply("website", &h.Website)
	apply("linkedin", &h.LinkedIn)
	apply("github", &h.GitHub)
	return h
}

// 自然键一律大小写不敏感、两端修剪。
func naturalKey(parts ...string) string {
	lowered := make([]string, 0, len(parts))
	for _, p := range parts {
		lowered = append(lowered, strings.ToLower(strings.TrimSpace(p)))
	}
	return strings.Join(lowered, "|")
}

func synthesizeExperiences(baseline []resume.Experience, gen []resume.GeneratedExperience) []resume.Experience {
	byKey := make(map[string]resume.Experience, len(baseline))
	for _, b := range baseline {
		byKey[naturalKey(b.Role, b.Company)] = b
	}

	items := make([]resume.Experience, 0, len(gen))
	for _, g := range gen {
		item := resume.Experience{
			Role:    g.Role,
			Company: g.Company,
			Period:  g.Period,
			Bullets: g.Bullets,
		}
		if stored, ok := byKey[naturalKey(g.Role, g.Company)]; ok {
			item.ID = stored.ID
			item.Location = stored.Location
			if strings.TrimSpace(item.Period) == "" {
				item.Period = stored.Period
			}
		}
		items = append(items, item)
	}
	return resume.NormalizeExperiences(items)
}

func synthesizeProjects(baseline []resume.Project, gen []resume.GeneratedProject) []resume.Project {
	byKey := make(map[string]resume.Project, len(baseline))
	for _, b := range baseline {
		byKey[naturalKey(b.Title)] = b
	}

	items := make([]resume.Project, 0, len(gen))
	for _, g := range gen {
		item := resume.Project{
			Title:       g.Title,
			Description: g.Description,
		}
		if stored, ok := byKey[naturalKey(g.Title)]; ok {
			item.ID = stored.ID
			item.Link = stored.Link
			item.Technologies = stored.Technologies
		}
		items = append(items, item)
	}
	return resume.NormalizeProjects(items)
}

func synthesizeSkills(baseline []resume.Skill, byCategory map[string][]string) []resume.Skill {
	byKey := make(map[string]resume.Skill, len(baseline))
	for _, b := range baseline {
		byKey[naturalKey(b.Name, b.Category)] = b
	}

	// 分类按基线出现顺序优先，新分类按字典序补在后面，保证确定性输出。
	categories := make([]string, 0, len(byCategory))
	seen := make(map[string]bool, len(byCategory))
	for _, b := range baseline {
		for cat := range byCategory {
			if strings.EqualFold(strings.TrimSpace(cat), b.Category) && !seen[cat] {
				seen[cat] = true
				categories = append(categories, cat)
			}
		}
	}
	rest := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		if !seen[cat] {
			rest = append(rest, cat)
		}
	}
	sort.Strings(rest)
	categories = append(categories, rest...)

	items := make([]resume.Skill, 0, 16)
	for _, cat := range categories {
		for _, name := range byCategory[cat] {
			item := resume.Skill{Name: name, Category: cat}
			if stored, ok := byKey[naturalKey(name, cat)]; ok {
				item.ID = stored.ID
			}
			items = append(items, item)
		}
	}
	return resume.NormalizeSkills(items)
}
