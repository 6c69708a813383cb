// Package layout 把解析后的内容模型转成抽象内容块，并在给定页面
// 高度预算下把内容块分配到各页。所有函数都是纯函数：同一输入
// 永远产出结构相同的结果，不做 I/O，不依赖随机性。
package layout

import (
	"fmt"
	"strings"

	"resumelab/internal/resume"
)

// Mode 是栏位布局模式。
type Mode int

const (
	SingleColumn Mode = iota
	TwoColumn
)

// ParseMode 解析请求参数里的布局模式，未知值回落到单栏。
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), "two-column") {
		return TwoColumn
	}
	return SingleColumn
}

// String 输出请求参数形式的模式名。
func (m Mode) String() string {
	if m == TwoColumn {
		return "two-column"
	}
	return "single-column"
}

// Entry 是区块内一个条目的中性结构，两个渲染器都只消费这一形态。
type Entry struct {
	Primary   string   // 角色 / 项目名 / 学校 / 技能分类标签
	Secondary string   // 公司·地点 / 学位 / 发证方
	Meta      string   // 时间段 / 年份
	Body      string   // 描述 / 细节
	Bullets   []string
	Link      string
	Tags      []string
	Inline    bool // 技能单栏模式下的 “分类: 条目” 行内形态
}

// Block 是一个区块的抽象内容块：区块标识、侧栏资格与条目列表。
type Block struct {
	Section      resume.SectionID
	Title        string
	SideEligible bool
	Entries      []Entry
}

// BuildBlocks 按固定顺序为模型中非空的区块构建内容块。
// layout mode 只影响呈现分组（例如技能的行内/堆叠形态）。
func BuildBlocks(m resume.Model, mode Mode) []Block {
	blocks := make([]Block, 0, 5)
	for _, id := range resume.SectionOrder() {
		var b Block
		switch id {
		case resume.SectionExperience:
			b = buildExperienceBlock(m.Experiences)
		case resume.SectionProjects:
			b = buildProjectsBlock(m.Projects)
		case resume.SectionSkills:
			b = buildSkillsBlock(m.Skills, mode)
		case resume.SectionEducation:
			b = buildEducationBlock(m.Educations)
		case resume.SectionCertifications:
			b = buildCertificationsBlock(m.Certifications)
		}
		if len(b.Entries) == 0 {
			continue
		}
		blocks = append(blocks, b)
	}
	return blocks
}

func buildExperienceBlock(items []resume.Experience) Block {
	b := Block{Section: resume.SectionExperience, Title: "Experience"}
	for _, it := range items {
		secondary := it.Company
		if it.Location != "" {
			if secondary != "" {
				secondary += " · "
			}
			secondary += it.Location
		}
		b.Entries = append(b.Entries, Entry{
			Primary:   it.Role,
			Secondary: secondary,
			Meta:      it.Period,
			Bullets:   it.Bullets,
		})
	}
	return b
}

func buildProjectsBlock(items []resume.Project) Block {
	b := Block{Section: resume.SectionProjects, Title: "Projects"}
	for _, it := range items {
		b.Entries = append(b.Entries, Entry{
			Primary: it.Title,
			Body:    it.Description,
			Link:    it.Link,
			Tags:    it.Technologies,
		})
	}
	return b
}

// buildSkillsBlock 按分类聚合技能：单栏模式输出 “分类: a, b, c”
// 行内行；双栏模式输出分类标签在上、条目在下的堆叠形态。
func buildSkillsBlock(items []resume.Skill, mode Mode) Block {
	b := Block{Section: resume.SectionSkills, Title: "Skills", SideEligible: true}

	order := make([]string, 0, 4)
	grouped := make(map[string][]string)
	for _, it := range items {
		cat := it.Category
		if cat == "" {
			cat = "Other"
		}
		if _, ok := grouped[cat]; !ok {
			order = append(order, cat)
		}
		grouped[cat] = append(grouped[cat], it.Name)
	}

	for _, cat := range order {
		if mode == SingleColumn {
			b.Entries = append(b.Entries, Entry{
				Primary: cat,
				Body:    strings.Join(grouped[cat], ", "),
				Inline:  true,
			})
			continue
		}
		b.Entries = append(b.Entries, Entry{
			Primary: cat,
			Tags:    grouped[cat],
		})
	}
	return b
}

func buildEducationBlock(items []resume.Education) Block {
	b := Block{Section: resume.SectionEducation, Title: "Education"}
	for _, it := range items {
		secondary := it.Degree
		if it.Field != "" {
			if secondary != "" {
				secondary += ", "
			}
			secondary += it.Field
		}
		b.Entries = append(b.Entries, Entry{
			Primary:   it.Institution,
			Secondary: secondary,
			Meta:      yearRange(it.StartYear, it.EndYear),
			Body:      it.Details,
		})
	}
	return b
}

func buildCertificationsBlock(items []resume.Certification) Block {
	b := Block{Section: resume.SectionCertifications, Title: "Certifications", SideEligible: true}
	for _, it := range items {
		meta := ""
		if it.Year > 0 {
			meta = fmt.Sprintf("%d", it.Year)
		}
		b.Entries = append(b.Entries, Entry{
			Primary:   it.Name,
			Secondary: it.Issuer,
			Meta:      meta,
			Link:      it.CredentialURL,
		})
	}
	return b
}

func yearRange(start, end int) string {
	switch {
	case start > 0 && end > 0:
		return fmt.Sprintf("%d – %d", start, end)
	case start > 0:
		return fmt.Sprintf("%d – Present", start)
	case end > 0:
		return fmt.Sprintf("%d", end)
	}
	return ""
}

// SectionIDs 提取一组内容块的区块标识，保持原有顺序。
func SectionIDs(blocks []Block) []resume.SectionID {
	ids := make([]resume.SectionID, 0, len(blocks))
	for _, b := range blocks {
		ids = append(ids, b.Section)
	}
	return ids
}

// BlockByID 在内容块列表中查找指定区块。
func BlockByID(blocks []Block, id resume.SectionID) (Block, bool) {
	for _, b := range blocks {
		if b.Section == id {
			return b, true
		}
	}
	return Block{}, false
}
