package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resumelab/internal/api/middleware"
	"resumelab/internal/store"
	"resumelab/internal/style"
)

// StyleHandler 负责样式配置的读写。
type StyleHandler struct {
	styles    store.StyleStore
	scheduler *ArtifactScheduler
}

// NewStyleHandler 构造 StyleHandler。
func NewStyleHandler(styles store.StyleStore, scheduler *ArtifactScheduler) *StyleHandler {
	return &StyleHandler{styles: styles, scheduler: scheduler}
}

// GetStyle 返回用户的样式配置，从未保存过时为默认配置。
func (h *StyleHandler) GetStyle(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	cfg, err := h.styles.LoadStyle(userID)
	if err != nil {
		Internal(c, "failed to load style")
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// PutStyle 覆盖样式配置。输入先过归一化：空字段回落到默认值，
// 不透明度钳制到 [0,1]。
func (h *StyleHandler) PutStyle(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var cfg style.Config
	if err := c.ShouldBindJSON(&cfg); err != nil {
		BadRequest(c, err.Error())
		return
	}
	cfg = cfg.Normalized()

	if err := h.styles.SaveStyle(userID, cfg); err != nil {
		Internal(c, "failed to save style")
		return
	}

	h.scheduler.Schedule(c.Request.Context(), userID, middleware.GetCorrelationID(c))
	c.JSON(http.StatusOK, cfg)
}
