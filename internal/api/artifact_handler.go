package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"resumelab/internal/api/middleware"
	"resumelab/internal/database"
	"resumelab/internal/storage"
)

// ArtifactHandler 负责导出产物的查询、下载与清理。
type ArtifactHandler struct {
	db        *gorm.DB
	storage   *storage.Client
	scheduler *ArtifactScheduler
}

// NewArtifactHandler 构造 ArtifactHandler。
func NewArtifactHandler(db *gorm.DB, storageClient *storage.Client, scheduler *ArtifactScheduler) *ArtifactHandler {
	return &ArtifactHandler{db: db, storage: storageClient, scheduler: scheduler}
}

type artifactResponse struct {
	Status    string    `json:"status"`
	Renderer  string    `json:"renderer,omitempty"`
	FileName  string    `json:"file_name,omitempty"`
	Revision  int64     `json:"revision"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RequestArtifact 显式触发一次导出渲染并立即返回 202。
func (h *ArtifactHandler) RequestArtifact(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	h.scheduler.Schedule(c.Request.Context(), userID, middleware.GetCorrelationID(c))
	c.JSON(http.StatusAccepted, gin.H{"message": "artifact generation scheduled"})
}

// GetArtifact 返回最近一次导出的状态。从未调度过渲染时返回 404。
func (h *ArtifactHandler) GetArtifact(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var artifact database.Artifact
	err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		First(&artifact).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		NotFound(c, "no artifact yet")
		return
	}
	if err != nil {
		Internal(c, "failed to query artifact")
		return
	}

	c.JSON(http.StatusOK, artifactResponse{
		Status:    artifact.Status,
		Renderer:  artifact.Renderer,
		FileName:  artifact.FileName,
		Revision:  artifact.Revision,
		UpdatedAt: artifact.UpdatedAt,
	})
}

// GetDownloadLink 为最近一次成功导出的 PDF 生成预签名下载链接。
// 渲染中或渲染失败时仍返回上一次成功的产物（保留最后可用产物）。
func (h *ArtifactHandler) GetDownloadLink(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var artifact database.Artifact
	err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		First(&artifact).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && artifact.PdfKey == "") {
		Conflict(c, "pdf not ready")
		return
	}
	if err != nil {
		Internal(c, "failed to query artifact")
		return
	}

	fileName := SanitizeFileName(c.Query("filename"), artifact.FileName)
	params := map[string]string{
		"response-content-disposition": fmt.Sprintf(`attachment; filename="%s"`, fileName),
		"response-content-type":        "application/pdf",
	}
	signedURL, err := h.storage.GeneratePresignedURLWithParams(c.Request.Context(), artifact.PdfKey, 5*time.Minute, params)
	if err != nil {
		Internal(c, "failed to generate download link")
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": signedURL, "file_name": fileName})
}

// DeleteArtifact 删除产物记录与对象存储里的全部导出文件。
func (h *ArtifactHandler) DeleteArtifact(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Unscoped().Where("user_id = ?", userID).Delete(&database.Artifact{}).Error; err != nil {
		Internal(c, "failed to delete artifact")
		return
	}
	if err := h.storage.DeletePrefix(ctx, fmt.Sprintf("artifacts/%d/", userID)); err != nil {
		middleware.LoggerFromContext(c).Warn("delete artifact objects failed")
	}

	c.Status(http.StatusNoContent)
}

// RerenderForUser 是内部运维端点：跳过用户鉴权，按 user_id 强制
// 调度一次重渲染。走内部密钥中间件，不对外暴露。
func (h *ArtifactHandler) RerenderForUser(c *gin.Context) {
	raw := c.Query("user_id")
	userID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || userID == 0 {
		BadRequest(c, "invalid user_id")
		return
	}

	h.scheduler.Schedule(c.Request.Context(), uint(userID), middleware.GetCorrelationID(c))
	c.JSON(http.StatusAccepted, gin.H{"message": "artifact generation scheduled", "user_id": userID})
}

// SanitizeFileName 清洗用户提供的下载文件名：剥掉路径分隔与控制
// 字符，强制 .pdf 后缀；清洗后为空则回落到 fallback 或默认名。
func SanitizeFileName(raw, fallback string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		name = strings.TrimSpace(fallback)
	}
	if name == "" {
		name = "resume.pdf"
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r < 0x20, r == 0x7f:
		case r == '/', r == '\\', r == ':', r == '"':
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	name = strings.Trim(b.String(), ". ")
	if name == "" || name == ".pdf" {
		name = "resume.pdf"
	}
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name += ".pdf"
	}
	return name
}
