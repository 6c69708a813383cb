package database

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User 表示系统中的账号。身份由外部认证服务签发的 JWT 主体标识，
// 本服务只保存映射关系，不保存任何凭据。
type User struct {
	gorm.Model
	Subject string `gorm:"uniqueIndex;size:128"`
}

// Profile 是用户的简历头部档案，每个用户一行。
type Profile struct {
	gorm.Model
	UserID   uint   `gorm:"uniqueIndex"`
	FullName string `gorm:"size:255"`
	Title    string `gorm:"size:255"`
	Headline string `gorm:"size:255"`
	Summary  string `gorm:"type:text"`
	Email    string `gorm:"size:255"`
	Phone    string `gorm:"size:64"`
	Location string `gorm:"size:255"`
	Website  string `gorm:"size:512"`
	LinkedIn string `gorm:"size:512"`
	GitHub   string `gorm:"size:512"`
}

// ExperienceRow 是一段工作经历。Position 维持用户给定的顺序。
type ExperienceRow struct {
	gorm.Model
	UserID   uint `gorm:"index"`
	Position int
	Role     string         `gorm:"size:255"`
	Company  string         `gorm:"size:255"`
	Location string         `gorm:"size:255"`
	Period   string         `gorm:"size:128"`
	Bullets  datatypes.JSON `gorm:"type:jsonb"`
}

// EducationRow 是一段教育经历。
type EducationRow struct {
	gorm.Model
	UserID      uint `gorm:"index"`
	Position    int
	Institution string `gorm:"size:255"`
	Degree      string `gorm:"size:255"`
	Field       string `gorm:"size:255"`
	StartYear   int
	EndYear     int
	Details     string `gorm:"type:text"`
}

// ProjectRow 是一个项目条目。
type ProjectRow struct {
	gorm.Model
	UserID       uint `gorm:"index"`
	Position     int
	Title        string         `gorm:"size:255"`
	Description  string         `gorm:"type:text"`
	Link         string         `gorm:"size:512"`
	Technologies datatypes.JSON `gorm:"type:jsonb"`
}

// SkillRow 是一项技能。
type SkillRow struct {
	gorm.Model
	UserID   uint `gorm:"index"`
	Position int
	Name     string `gorm:"size:255"`
	Category string `gorm:"size:128"`
}

// CertificationRow 是一项认证。
type CertificationRow struct {
	gorm.Model
	UserID        uint `gorm:"index"`
	Position      int
	Name          string `gorm:"size:255"`
	Issuer        string `gorm:"size:255"`
	Year          int
	CredentialURL string `gorm:"size:512"`
}

// Draft 保存用户的草稿覆盖层，整体以带版本封套的 JSONB 存储。
// 草稿为空时应删除整行，而不是保存空壳。
type Draft struct {
	gorm.Model
	UserID uint           `gorm:"uniqueIndex"`
	Blob   datatypes.JSON `gorm:"type:jsonb"`
}

// StylePref 保存用户的样式配置，同样走带版本封套的 JSONB。
type StylePref struct {
	gorm.Model
	UserID uint           `gorm:"uniqueIndex"`
	Blob   datatypes.JSON `gorm:"type:jsonb"`
}

// Artifact 记录用户最近一次成功导出的 PDF。每个用户只保留一行；
// 新一轮渲染成功前，旧的 PdfKey 始终有效（保留最后可用产物）。
type Artifact struct {
	gorm.Model
	UserID   uint   `gorm:"uniqueIndex"`
	PdfKey   string `gorm:"size:512"`
	FileName string `gorm:"size:255"`
	Status   string `gorm:"size:32"`
	Renderer string `gorm:"size:16"`
	Revision int64
}

// Artifact 状态。
const (
	ArtifactStatusPending    = "pending"
	ArtifactStatusProcessing = "processing"
	ArtifactStatusCompleted  = "completed"
	ArtifactStatusFailed     = "failed"
)
