package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resumelab/internal/api/middleware"
	"resumelab/internal/database"
	"resumelab/internal/resume"
)

// ProfileHandler 负责基线档案的读写。
type ProfileHandler struct {
	repo      *database.ProfileRepo
	scheduler *ArtifactScheduler
}

// NewProfileHandler 构造 ProfileHandler。
func NewProfileHandler(repo *database.ProfileRepo, scheduler *ArtifactScheduler) *ProfileHandler {
	return &ProfileHandler{repo: repo, scheduler: scheduler}
}

// GetProfile 返回用户的完整基线档案。
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	model, err := h.repo.LoadBaseline(userID)
	if err != nil {
		Internal(c, "failed to load profile")
		return
	}
	c.JSON(http.StatusOK, model)
}

// UpdateHeader 覆盖头部档案。
func (h *ProfileHandler) UpdateHeader(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var header resume.Header
	if err := c.ShouldBindJSON(&header); err != nil {
		BadRequest(c, err.Error())
		return
	}
	header = resume.NormalizeHeader(header)
	if err := resume.ValidateHeader(header); err != nil {
		BadRequest(c, err.Error())
		return
	}

	if err := h.repo.SaveHeader(userID, header); err != nil {
		Internal(c, "failed to save header")
		return
	}

	h.scheduler.Schedule(c.Request.Context(), userID, middleware.GetCorrelationID(c))
	c.JSON(http.StatusOK, header)
}

// ReplaceSection 整体替换一个列表区块。条目缺少最小必填字段时
// 整单拒绝；通过校验的列表归一化后落库，列表顺序即为持久顺序。
func (h *ProfileHandler) ReplaceSection(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	section := resume.SectionID(c.Param("section"))
	if !resume.IsValidSection(section) {
		BadRequest(c, "unknown section")
		return
	}

	var err error
	switch section {
	case resume.SectionExperience:
		var list []resume.Experience
		if bindErr := c.ShouldBindJSON(&list); bindErr != nil {
			BadRequest(c, bindErr.Error())
			return
		}
		if vErr := resume.ValidateExperiences(list); vErr != nil {
			BadRequest(c, vErr.Error())
			return
		}
		err = h.repo.ReplaceExperiences(userID, resume.NormalizeExperiences(list))
	case resume.SectionProjects:
		var list []resume.Project
		if bindErr := c.ShouldBindJSON(&list); bindErr != nil {
			BadRequest(c, bindErr.Error())
			return
		}
		if vErr := resume.ValidateProjects(list); vErr != nil {
			BadRequest(c, vErr.Error())
			return
		}
		err = h.repo.ReplaceProjects(userID, resume.NormalizeProjects(list))
	case resume.SectionSkills:
		var list []resume.Skill
		if bindErr := c.ShouldBindJSON(&list); bindErr != nil {
			BadRequest(c, bindErr.Error())
			return
		}
		if vErr := resume.ValidateSkills(list); vErr != nil {
			BadRequest(c, vErr.Error())
			return
		}
		err = h.repo.ReplaceSkills(userID, resume.NormalizeSkills(list))
	case resume.SectionEducation:
		var list []resume.Education
		if bindErr := c.ShouldBindJSON(&list); bindErr != nil {
			BadRequest(c, bindErr.Error())
			return
		}
		if vErr := resume.ValidateEducations(list); vErr != nil {
			BadRequest(c, vErr.Error())
			return
		}
		err = h.repo.ReplaceEducations(userID, resume.NormalizeEducations(list))
	case resume.SectionCertifications:
		var list []resume.Certification
		if bindErr := c.ShouldBindJSON(&list); bindErr != nil {
			BadRequest(c, bindErr.Error())
			return
		}
		if vErr := resume.ValidateCertifications(list); vErr != nil {
			BadRequest(c, vErr.Error())
			return
		}
		err = h.repo.ReplaceCertifications(userID, resume.NormalizeCertifications(list))
	}
	if err != nil {
		Internal(c, "failed to replace section")
		return
	}

	h.scheduler.Schedule(c.Request.Context(), userID, middleware.GetCorrelationID(c))
	c.Status(http.StatusNoContent)
}
