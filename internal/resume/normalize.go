package resume

import "strings"

// 归一化规则：所有字符串去首尾空白；纯空白条目丢弃；
// bullet/technology 列表剔除纯空白项。归一化总是产出新切片。

func normalizeList(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// NormalizeHeader 返回字段已修剪的头部副本。
func NormalizeHeader(h Header) Header {
	return Header{
		FullName: strings.TrimSpace(h.FullName),
		Title:    strings.TrimSpace(h.Title),
		Headline: strings.TrimSpace(h.Headline),
		Summary:  strings.TrimSpace(h.Summary),
		Email:    strings.TrimSpace(h.Email),
		Phone:    strings.TrimSpace(h.Phone),
		Location: strings.TrimSpace(h.Location),
		Website:  strings.TrimSpace(h.Website),
		LinkedIn: strings.TrimSpace(h.LinkedIn),
		GitHub:   strings.TrimSpace(h.GitHub),
	}
}

// NormalizeExperiences 丢弃 role 与 company 同时为空的条目。
func NormalizeExperiences(items []Experience) []Experience {
	out := make([]Experience, 0, len(items))
	for _, it := range items {
		it.ID = strings.TrimSpace(it.ID)
		it.Role = strings.TrimSpace(it.Role)
		it.Company = strings.TrimSpace(it.Company)
		it.Location = strings.TrimSpace(it.Location)
		it.Period = strings.TrimSpace(it.Period)
		it.Bullets = normalizeList(it.Bullets)
		if it.Role == "" && it.Company == "" {
			continue
		}
		out = append(out, it)
	}
	return out
}

// NormalizeProjects 丢弃标题为空的条目。
func NormalizeProjects(items []Project) []Project {
	out := make([]Project, 0, len(items))
	for _, it := range items {
		it.ID = strings.TrimSpace(it.ID)
		it.Title = strings.TrimSpace(it.Title)
		it.Description = strings.TrimSpace(it.Description)
		it.Link = strings.TrimSpace(it.Link)
		it.Technologies = normalizeList(it.Technologies)
		if it.Title == "" {
			continue
		}
		out = append(out, it)
	}
	return out
}

// NormalizeSkills 丢弃名称为空的条目。
func NormalizeSkills(items []Skill) []Skill {
	out := make([]Skill, 0, len(items))
	for _, it := range items {
		it.ID = strings.TrimSpace(it.ID)
		it.Name = strings.TrimSpace(it.Name)
		it.Category = strings.TrimSpace(it.Category)
		if it.Name == "" {
			continue
		}
		out = append(out, it)
	}
	return out
}

// NormalizeEducations 丢弃学校为空的条目。
func NormalizeEducations(items []Education) []Education {
	out := make([]Education, 0, len(items))
	for _, it := range items {
		it.ID = strings.TrimSpace(it.ID)
		it.Institution = strings.TrimSpace(it.Institution)
		it.Degree = strings.TrimSpace(it.Degree)
		it.Field = strings.TrimSpace(it.Field)
		it.Details = strings.TrimSpace(it.Details)
		if it.Institution == "" {
			continue
		}
		out = append(out, it)
	}
	return out
}

// NormalizeCertifications 丢弃名称为空的条目。
func NormalizeCertifications(items []Certification) []Certification {
	out := make([]Certification, 0, len(items))
	for _, it := range items {
		it.ID = strings.TrimSpace(it.ID)
		it.Name = strings.TrimSpace(it.Name)
		it.Issuer = strings.TrimSpace(it.Issuer)
		it.CredentialURL = strings.TrimSpace(it.CredentialURL)
		if it.Name == "" {
			continue
		}
		out = append(out, it)
	}
	return out
}
