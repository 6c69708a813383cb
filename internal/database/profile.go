package database

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"resumelab/internal/resume"
)

// ProfileRepo 负责基线档案的读写：头部一行，列表区块逐行带序。
type ProfileRepo struct {
	db *gorm.DB
}

// NewProfileRepo 构造档案仓库。
func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// EnsureUser 按 JWT 主体取回或创建用户，返回内部 ID。
func (r *ProfileRepo) EnsureUser(subject string) (uint, error) {
	var u User
	if err := r.db.Where(&User{Subject: subject}).FirstOrCreate(&u, &User{Subject: subject}).Error; err != nil {
		return 0, fmt.Errorf("ensure user: %w", err)
	}
	return u.ID, nil
}

// LoadBaseline 组装用户的完整基线模型。档案不存在时返回零值模型，
// 解析层会按“空区块”处理。
func (r *ProfileRepo) LoadBaseline(userID uint) (resume.Model, error) {
	var m resume.Model

	var p Profile
	err := r.db.Where("user_id = ?", userID).First(&p).Error
	switch {
	case err == nil:
		m.Header = headerFromProfile(p)
	case errors.Is(err, gorm.ErrRecordNotFound):
		// 用户还没保存过档案，照常返回空模型。
	default:
		return m, fmt.Errorf("load profile: %w", err)
	}

	var exps []ExperienceRow
	if err := r.db.Where("user_id = ?", userID).Order("position asc").Find(&exps).Error; err != nil {
		return m, fmt.Errorf("load experiences: %w", err)
	}
	for _, row := range exps {
		m.Experiences = append(m.Experiences, resume.Experience{
			ID:       rowID(row.ID),
			Role:     row.Role,
			Company:  row.Company,
			Location: row.Location,
			Period:   row.Period,
			Bullets:  decodeStrings(row.Bullets),
		})
	}

	var projs []ProjectRow
	if err := r.db.Where("user_id = ?", userID).Order("position asc").Find(&projs).Error; err != nil {
		return m, fmt.Errorf("load projects: %w", err)
	}
	for _, row := range projs {
		m.Projects = append(m.Projects, resume.Project{
			ID:           rowID(row.ID),
			Title:        row.Title,
			Description:  row.Description,
			Link:         row.Link,
			Technologies: decodeStrings(row.Technologies),
		})
	}

	var skills []SkillRow
	if err := r.db.Where("user_id = ?", userID).Order("position asc").Find(&skills).Error; err != nil {
		return m, fmt.Errorf("load skills: %w", err)
	}
	for _, row := range skills {
		m.Skills = append(m.Skills, resume.Skill{
			ID:       rowID(row.ID),
			Name:     row.Name,
			Category: row.Category,
		})
	}

	var edus []EducationRow
	if err := r.db.Where("user_id = ?", userID).Order("position asc").Find(&edus).Error; err != nil {
		return m, fmt.Errorf("load educations: %w", err)
	}
	for _, row := range edus {
		m.Educations = append(m.Educations, resume.Education{
			ID:          rowID(row.ID),
			Institution: row.Institution,
			Degree:      row.Degree,
			Field:       row.Field,
			StartYear:   row.StartYear,
			EndYear:     row.EndYear,
			Details:     row.Details,
		})
	}

	var certs []CertificationRow
	if err := r.db.Where("user_id = ?", userID).Order("position asc").Find(&certs).Error; err != nil {
		return m, fmt.Errorf("load certifications: %w", err)
	}
	for _, row := range certs {
		m.Certifications = append(m.Certifications, resume.Certification{
			ID:            rowID(row.ID),
			Name:          row.Name,
			Issuer:        row.Issuer,
			Year:          row.Year,
			CredentialURL: row.CredentialURL,
		})
	}

	return m, nil
}

// SaveHeader 以 upsert 语义写入头部档案。
func (r *ProfileRepo) SaveHeader(userID uint, h resume.Header) error {
	var p Profile
	err := r.db.Where("user_id = ?", userID).First(&p).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("load profile: %w", err)
	}
	p.UserID = userID
	p.FullName = h.FullName
	p.Title = h.Title
	p.Headline = h.Headline
	p.Summary = h.Summary
	p.Email = h.Email
	p.Phone = h.Phone
	p.Location = h.Location
	p.Website = h.Website
	p.LinkedIn = h.LinkedIn
	p.GitHub = h.GitHub
	if err := r.db.Save(&p).Error; err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// ReplaceExperiences 整体替换工作经历区块，重建顺序。
func (r *ProfileRepo) ReplaceExperiences(userID uint, list []resume.Experience) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&ExperienceRow{}).Error; err != nil {
			return fmt.Errorf("clear experiences: %w", err)
		}
		for i, e := range list {
			row := ExperienceRow{
				UserID:   userID,
				Position: i,
				Role:     e.Role,
				Company:  e.Company,
				Location: e.Location,
				Period:   e.Period,
				Bullets:  encodeStrings(e.Bullets),
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("insert experience: %w", err)
			}
		}
		return nil
	})
}

// ReplaceProjects 整体替换项目区块。
func (r *ProfileRepo) ReplaceProjects(userID uint, list []resume.Project) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&ProjectRow{}).Error; err != nil {
			return fmt.Errorf("clear projects: %w", err)
		}
		for i, p := range list {
			row := ProjectRow{
				UserID:       userID,
				Position:     i,
				Title:        p.Title,
				Description:  p.Description,
				Link:         p.Link,
				Technologies: encodeStrings(p.Technologies),
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("insert project: %w", err)
			}
		}
		return nil
	})
}

// ReplaceSkills 整体替换技能区块。
func (r *ProfileRepo) ReplaceSkills(userID uint, list []resume.Skill) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&SkillRow{}).Error; err != nil {
			return fmt.Errorf("clear skills: %w", err)
		}
		for i, s := range list {
			row := SkillRow{UserID: userID, Position: i, Name: s.Name, Category: s.Category}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("insert skill: %w", err)
			}
		}
		return nil
	})
}

// ReplaceEducations 整体替换教育区块。
func (r *ProfileRepo) ReplaceEducations(userID uint, list []resume.Education) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&EducationRow{}).Error; err != nil {
			return fmt.Errorf("clear educations: %w", err)
		}
		for i, e := range list {
			row := EducationRow{
				UserID:      userID,
				Position:    i,
				Institution: e.Institution,
				Degree:      e.Degree,
				Field:       e.Field,
				StartYear:   e.StartYear,
				EndYear:     e.EndYear,
				Details:     e.Details,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("insert education: %w", err)
			}
		}
		return nil
	})
}

// ReplaceCertifications 整体替换认证区块。
func (r *ProfileRepo) ReplaceCertifications(userID uint, list []resume.Certification) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&CertificationRow{}).Error; err != nil {
			return fmt.Errorf("clear certifications: %w", err)
		}
		for i, c := range list {
			row := CertificationRow{
				UserID:        userID,
				Position:      i,
				Name:          c.Name,
				Issuer:        c.Issuer,
				Year:          c.Year,
				CredentialURL: c.CredentialURL,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("insert certification: %w", err)
			}
		}
		return nil
	})
}

func headerFromProfile(p Profile) resume.Header {
	return resume.Header{
		FullName: p.FullName,
		Title:    p.Title,
		Headline: p.Headline,
		Summary:  p.Summary,
		Email:    p.Email,
		Phone:    p.Phone,
		Location: p.Location,
		Website:  p.Website,
		LinkedIn: p.LinkedIn,
		GitHub:   p.GitHub,
	}
}

func rowID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func encodeStrings(list []string) datatypes.JSON {
	if len(list) == 0 {
		return nil
	}
	blob, err := json.Marshal(list)
	if err != nil {
		return nil
	}
	return datatypes.JSON(blob)
}

func decodeStrings(blob datatypes.JSON) []string {
	if len(blob) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(blob, &out); err != nil {
		return nil
	}
	return out
}
