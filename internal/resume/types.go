package resume

// SectionID 标识一个固定的简历内容区块。
type SectionID string

const (
	SectionExperience     SectionID = "experience"
	SectionProjects       SectionID = "projects"
	SectionSkills         SectionID = "skills"
	SectionEducation      SectionID = "education"
	SectionCertifications SectionID = "certifications"
)

// SectionOrder 返回固定的区块顺序。分页与渲染都必须按该顺序遍历。
func SectionOrder() []SectionID {
	return []SectionID{
		SectionExperience,
		SectionProjects,
		SectionSkills,
		SectionEducation,
		SectionCertifications,
	}
}

// IsValidSection 判断给定标识是否为已知区块。
func IsValidSection(id SectionID) bool {
	switch id {
	case SectionExperience, SectionProjects, SectionSkills, SectionEducation, SectionCertifications:
		return true
	}
	return false
}

// IsSideEligible 标记可以进入窄侧栏的区块（仅 skills 与 certifications）。
func IsSideEligible(id SectionID) bool {
	return id == SectionSkills || id == SectionCertifications
}

// IsAIEligible 标记生成服务可以覆盖的区块。
// education/certifications 永远不会被生成内容覆盖。
func IsAIEligible(id SectionID) bool {
	switch id {
	case SectionExperience, SectionProjects, SectionSkills:
		return true
	}
	return false
}

// Header 表示简历头部与联系方式。除 FullName 外均可为空，
// 空字符串一律视为“缺失”。
type Header struct {
	FullName string `json:"full_name"`
	Title    string `json:"title"`
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Website  string `json:"website"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
}

// Experience 表示一段工作经历。ID 仅在条目来源于已保存档案时存在，
// 新草拟的条目 ID 为空，持久层据此区分更新与插入。
type Experience struct {
	ID       string   `json:"id,omitempty"`
	Role     string   `json:"role"`
	Company  string   `json:"company"`
	Location string   `json:"location,omitempty"`
	Period   string   `json:"period,omitempty"`
	Bullets  []string `json:"bullets,omitempty"`
}

// Education 表示一段教育经历。
type Education struct {
	ID          string `json:"id,omitempty"`
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	StartYear   int    `json:"start_year,omitempty"`
	EndYear     int    `json:"end_year,omitempty"`
	Details     string `json:"details,omitempty"`
}

// Project 表示一个项目条目。
type Project struct {
	ID           string   `json:"id,omitempty"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Link         string   `json:"link,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// Skill 表示一项技能及其分类。
type Skill struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// Certification 表示一项认证。
type Certification struct {
	ID            string `json:"id,omitempty"`
	Name          string `json:"name"`
	Issuer        string `json:"issuer,omitempty"`
	Year          int    `json:"year,omitempty"`
	CredentialURL string `json:"credential_url,omitempty"`
}

// Model 是解析完成的有效简历内容：单一头部加上每个区块的列表。
// 每次 Resolve 都会产出一个全新的值，任何地方都不得原地修改。
type Model struct {
	Header         Header          `json:"header"`
	Experiences    []Experience    `json:"experiences"`
	Projects       []Project       `json:"projects"`
	Skills         []Skill         `json:"skills"`
	Educations     []Education     `json:"educations"`
	Certifications []Certification `json:"certifications"`
}

// Generated 表示生成服务针对职位描述产出的建议内容。
// Seq 为服务端下发的单调序号，用于丢弃迟到的旧响应。
type Generated struct {
	Seq              int64                 `json:"seq"`
	Summary          string                `json:"summary"`
	Experiences      []GeneratedExperience `json:"experiences"`
	Projects         []GeneratedProject    `json:"projects"`
	SkillsByCategory map[string][]string   `json:"skills_by_category"`
}

// GeneratedExperience 是生成服务产出的经历条目。生成器不提供
// 地点与档案 ID，这些在合并时通过自然键从基线档案回填。
type GeneratedExperience struct {
	Role    string   `json:"role"`
	Company string   `json:"company"`
	Period  string   `json:"period,omitempty"`
	Bullets []string `json:"bullets,omitempty"`
}

// GeneratedProject 是生成服务产出的项目条目。
type GeneratedProject struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}
