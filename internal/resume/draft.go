package resume

// Draft 是按区块键控的部分覆盖层。指针为 nil 表示“该区块无覆盖”，
// 非 nil（即使是空列表）表示用户已经给出该区块的最终列表。
// Header 用 map 表达，以便区分“键不存在”与“键存在但为空字符串”。
type Draft struct {
	Header         map[string]string `json:"header,omitempty"`
	Experiences    *[]Experience     `json:"experiences,omitempty"`
	Projects       *[]Project        `json:"projects,omitempty"`
	Skills         *[]Skill          `json:"skills,omitempty"`
	Educations     *[]Education      `json:"educations,omitempty"`
	Certifications *[]Certification  `json:"certifications,omitempty"`
}

// IsEmpty 判断草稿是否不含任何覆盖。空草稿必须被归一化为
// “无草稿”（nil），绝不持久化空壳。
func (d *Draft) IsEmpty() bool {
	if d == nil {
		return true
	}
	return len(d.Header) == 0 &&
		d.Experiences == nil &&
		d.Projects == nil &&
		d.Skills == nil &&
		d.Educations == nil &&
		d.Certifications == nil
}

// Normalized 返回归一化后的草稿：没有任何覆盖时返回 nil。
func (d *Draft) Normalized() *Draft {
	if d.IsEmpty() {
		return nil
	}
	return d
}

// ClearSection 移除某个区块的覆盖。传入未知区块则不做任何事。
func (d *Draft) ClearSection(id SectionID) {
	if d == nil {
		return
	}
	switch id {
	case SectionExperience:
		d.Experiences = nil
	case SectionProjects:
		d.Projects = nil
	case SectionSkills:
		d.Skills = nil
	case SectionEducation:
		d.Educations = nil
	case SectionCertifications:
		d.Certifications = nil
	}
}

// ClearHeader 移除头部覆盖。
func (d *Draft) ClearHeader() {
	if d == nil {
		return
	}
	d.Header = nil
}

// HasSection 判断草稿是否覆盖了某个区块。
func (d *Draft) HasSection(id SectionID) bool {
	if d == nil {
		return false
	}
	switch id {
	case SectionExperience:
		return d.Experiences != nil
	case SectionProjects:
		return d.Projects != nil
	case SectionSkills:
		return d.Skills != nil
	case SectionEducation:
		return d.Educations != nil
	case SectionCertifications:
		return d.Certifications != nil
	}
	return false
}
