package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resumelab/internal/api/middleware"
	"resumelab/internal/resume"
	"resumelab/internal/store"
)

// DraftHandler 负责草稿覆盖层的读写。草稿是按区块键控的部分
// 覆盖：指针为 nil 表示该区块无覆盖，非 nil（哪怕空列表）表示
// 用户给出了该区块的最终内容。
type DraftHandler struct {
	drafts    store.DraftStore
	scheduler *ArtifactScheduler
}

// NewDraftHandler 构造 DraftHandler。
func NewDraftHandler(drafts store.DraftStore, scheduler *ArtifactScheduler) *DraftHandler {
	return &DraftHandler{drafts: drafts, scheduler: scheduler}
}

// draftSectionParam 还包括伪区块 "header"。
const headerSection = "header"

// GetDraft 返回当前草稿；无草稿时 draft 为 null。
func (h *DraftHandler) GetDraft(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	draft, err := h.drafts.LoadDraft(userID)
	if err != nil {
		Internal(c, "failed to load draft")
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

// PutDraft 整体覆盖草稿。归一化后为空则等价于删除。
func (h *DraftHandler) PutDraft(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var draft resume.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		BadRequest(c, err.Error())
		return
	}

	if err := h.drafts.SaveDraft(userID, draft.Normalized()); err != nil {
		Internal(c, "failed to save draft")
		return
	}

	h.scheduler.Schedule(c.Request.Context(), userID, middleware.GetCorrelationID(c))
	c.JSON(http.StatusOK, gin.H{"draft": draft.Normalized()})
}

// DeleteDraft 丢弃全部草稿覆盖。
func (h *DraftHandler) DeleteDraft(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	if err := h.drafts.SaveDraft(userID, nil); err != nil {
		Internal(c, "failed to delete draft")
		return
	}

	h.scheduler.Schedule(c.Request.Context(), userID, middleware.GetCorrelationID(c))
	c.Status(http.StatusNoContent)
}

// PutSection 覆盖草稿中的单个区块（或伪区块 header）。
func (h *DraftHandler) PutSection(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	draft, err := h.drafts.LoadDraft(userID)
	if err != nil {
		Internal(c, "failed to load draft")
		return
	}
	if draft == nil {
		draft = &resume.Draft{}
	}

	sectionParam := c.Param("section")
	if sectionParam == headerSection {
		// 头部覆盖是键控 map：键存在但值为空串也是一次有效覆盖
		//（例如显式清掉基线里的 headline）。
		var header map[string]string
		if bindErr := c.ShouldBindJSON(&header); bindErr != nil {
			BadRequest(c, bindErr.Error())
			return
		}
		draft.Header = header
	} else {
		section := resume.SectionID(sectionParam)
		if !resume.IsValidSection(section) {
			BadRequest(c, "unknown section")
			return
		}
		if bindErr := bindDraftSection(c, draft, section); bindErr != nil {
			BadRequest(c, bindErr.Error())
			return
		}
	}

	if err := h.drafts.SaveDraft(userID, draft.Normalized()); err != nil {
		Internal(c, "failed to save draft")
		return
	}

	h.scheduler.Schedule(c.Request.Context(), userID, middleware.GetCorrelationID(c))
	c.JSON(http.StatusOK, gin.H{"draft": draft.Normalized()})
}

// DeleteSection 清除单个区块（或 header）的草稿覆盖。清掉最后一个
// 覆盖后整份草稿被删除，不保留空壳。
func (h *DraftHandler) DeleteSection(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	draft, err := h.drafts.LoadDraft(userID)
	if err != nil {
		Internal(c, "failed to load draft")
		return
	}
	if draft == nil {
		c.Status(http.StatusNoContent)
		return
	}

	sectionParam := c.Param("section")
	if sectionParam == headerSection {
		draft.ClearHeader()
	} else {
		section := resume.SectionID(sectionParam)
		if !resume.IsValidSection(section) {
			BadRequest(c, "unknown section")
			return
		}
		draft.ClearSection(section)
	}

	if err := h.drafts.SaveDraft(userID, draft.Normalized()); err != nil {
		Internal(c, "failed to save draft")
		return
	}

	h.scheduler.Schedule(c.Request.Context(), userID, middleware.GetCorrelationID(c))
	c.Status(http.StatusNoContent)
}

// bindDraftSection 把请求体解析到草稿对应区块的指针槽位。
func bindDraftSection(c *gin.Context, draft *resume.Draft, section resume.SectionID) error {
	switch section {
	case resume.SectionExperience:
		var list []resume.Experience
		if err := c.ShouldBindJSON(&list); err != nil {
			return err
		}
		draft.Experiences = &list
	case resume.SectionProjects:
		var list []resume.Project
		if err := c.ShouldBindJSON(&list); err != nil {
			return err
		}
		draft.Projects = &list
	case resume.SectionSkills:
		var list []resume.Skill
		if err := c.ShouldBindJSON(&list); err != nil {
			return err
		}
		draft.Skills = &list
	case resume.SectionEducation:
		var list []resume.Education
		if err := c.ShouldBindJSON(&list); err != nil {
			return err
		}
		draft.Educations = &list
	case resume.SectionCertifications:
		var list []resume.Certification
		if err := c.ShouldBindJSON(&list); err != nil {
			return err
		}
		draft.Certifications = &list
	}
	return nil
}
