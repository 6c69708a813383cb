package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resumelab/internal/layout"
	"resumelab/internal/render/pipeline"
	"resumelab/internal/resume"
	"resumelab/internal/state"
)

// PreviewHandler 负责实时预览文档的产出。
type PreviewHandler struct {
	source          *state.Source
	pipeline        *pipeline.Pipeline
	estimateHeights bool
}

// NewPreviewHandler 构造 PreviewHandler。
func NewPreviewHandler(source *state.Source, pl *pipeline.Pipeline, estimateHeights bool) *PreviewHandler {
	return &PreviewHandler{source: source, pipeline: pl, estimateHeights: estimateHeights}
}

type previewRequest struct {
	Mode string `json:"mode"`
	// Heights 是客户端实测的区块高度（设备像素）。键是区块标识。
	// 缺失的区块按零高度处理；未提供整个字段时服务端自行估算。
	Heights map[string]float64 `json:"heights"`
}

type previewResponse struct {
	HTML  string                `json:"html"`
	Mode  string                `json:"mode"`
	Pages layout.PageAssignment `json:"pages"`
}

// GetPreview 以服务端估算高度产出预览。mode 从查询参数读取。
func (h *PreviewHandler) GetPreview(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	h.respond(c, userID, c.Query("mode"), nil)
}

// PostPreview 接收客户端实测高度产出预览。浏览器端已经完成一次
// 真实布局时，用实测值分页比估算更准。
func (h *PreviewHandler) PostPreview(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	var heights layout.HeightFunc
	if req.Heights != nil {
		measured := req.Heights
		heights = func(id resume.SectionID) float64 {
			return measured[string(id)]
		}
	}

	h.respond(c, userID, req.Mode, heights)
}

// respond 产出预览。modeParam 为空时回落到用户保存的布局模式。
func (h *PreviewHandler) respond(c *gin.Context, userID uint, modeParam string, heights layout.HeightFunc) {
	snap, err := h.source.Load(c.Request.Context(), userID)
	if err != nil {
		Internal(c, "failed to load resume state")
		return
	}

	if strings.TrimSpace(modeParam) == "" {
		modeParam = snap.Style.LayoutMode
	}
	mode := layout.ParseMode(modeParam)

	html, assignment, err := h.pipeline.HTML(snap.Model, snap.Style, mode, heights, h.estimateHeights)
	if err != nil {
		Internal(c, "failed to render preview")
		return
	}

	c.JSON(http.StatusOK, previewResponse{
		HTML:  html,
		Mode:  mode.String(),
		Pages: assignment,
	})
}
