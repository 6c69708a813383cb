package resume

import (
	"fmt"
	"strings"
)

// 保存校验：基线档案落库前检查最小必填字段，缺字段的请求整单
// 拒绝而不是静默丢弃条目。草稿覆盖层不走这里，允许半成品内容。

// ValidateHeader 要求姓名非空。
func ValidateHeader(h Header) error {
	if strings.TrimSpace(h.FullName) == "" {
		return fmt.Errorf("full_name is required")
	}
	return nil
}

// ValidateExperiences 要求每条经历至少有职位或公司。
func ValidateExperiences(items []Experience) error {
	for i, it := range items {
		if strings.TrimSpace(it.Role) == "" && strings.TrimSpace(it.Company) == "" {
			return fmt.Errorf("experience[%d]: role or company is required", i)
		}
	}
	return nil
}

// ValidateProjects 要求每个项目有标题。
func ValidateProjects(items []Project) error {
	for i, it := range items {
		if strings.TrimSpace(it.Title) == "" {
			return fmt.Errorf("project[%d]: title is required", i)
		}
	}
	return nil
}

// ValidateSkills 要求每项技能有名称。
func ValidateSkills(items []Skill) error {
	for i, it := range items {
		if strings.TrimSpace(it.Name) == "" {
			return fmt.Errorf("skill[%d]: name is required", i)
		}
	}
	return nil
}

// ValidateEducations 要求每段教育经历有学校。
func ValidateEducations(items []Education) error {
	for i, it := range items {
		if strings.TrimSpace(it.Institution) == "" {
			return fmt.Errorf("education[%d]: institution is required", i)
		}
	}
	return nil
}

// ValidateCertifications 要求每项认证有名称。
func ValidateCertifications(items []Certification) error {
	for i, it := range items {
		if strings.TrimSpace(it.Name) == "" {
			return fmt.Errorf("certification[%d]: name is required", i)
		}
	}
	return nil
}
