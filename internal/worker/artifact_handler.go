package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"resumelab/internal/database"
	"resumelab/internal/errcode"
	"resumelab/internal/layout"
	"resumelab/internal/render/pipeline"
	"resumelab/internal/state"
	"resumelab/internal/storage"
	"resumelab/internal/tasks"
)

// ArtifactTaskHandler 负责消费导出渲染任务。
type ArtifactTaskHandler struct {
	db            *gorm.DB
	storage       *storage.Client
	redisClient   *redis.Client
	source        *state.Source
	pipeline      *pipeline.Pipeline
	logger        *slog.Logger
	estimate      bool
	vectorEnabled bool
}

// NewArtifactTaskHandler 创建任务处理器。
func NewArtifactTaskHandler(
	db *gorm.DB,
	storageClient *storage.Client,
	redisClient *redis.Client,
	source *state.Source,
	pl *pipeline.Pipeline,
	logger *slog.Logger,
	estimate bool,
	vectorEnabled bool,
) *ArtifactTaskHandler {
	return &ArtifactTaskHandler{
		db:            db,
		storage:       storageClient,
		redisClient:   redisClient,
		source:        source,
		pipeline:      pl,
		logger:        logger,
		estimate:      estimate,
		vectorEnabled: vectorEnabled,
	}
}

// ProcessTask 实现 asynq.Handler。
//
// 去抖语义：任务带着入队时的修订号，执行时如果修订号已经落后于
// 当前值，说明有更新的任务在排队，本次直接放弃。最后可用产物
// 保证：产物行只在渲染成功后才指向新对象，失败只改状态字段。
func (h *ArtifactTaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) (retErr error) {
	log := h.logger

	var payload tasks.ArtifactGeneratePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error("unmarshal task payload failed", slog.Any("error", err))
		return err
	}

	log = log.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.Uint64("user_id", uint64(payload.UserID)),
		slog.Int64("revision", payload.Revision),
	)

	currentRev, err := h.source.CurrentRevision(ctx, payload.UserID)
	if err != nil {
		log.Error("read current revision failed", slog.Any("error", err))
		return err
	}
	if payload.Revision < currentRev {
		log.Info("artifact task superseded, skipping",
			slog.Int64("current_revision", currentRev),
		)
		return nil
	}

	log.Info("starting artifact generation task")

	defer func() {
		if retErr == nil {
			return
		}
		if !isFinalAsynqAttempt(ctx) {
			return
		}

		h.markFailed(ctx, payload.UserID, log)
		notify := ArtifactNotifyMessage{
			Status:        "error",
			Revision:      payload.Revision,
			CorrelationID: payload.CorrelationID,
			ErrorCode:     errcode.SystemError,
			ErrorMessage:  strings.TrimSpace(retErr.Error()),
		}
		if err := h.publishNotify(ctx, payload.UserID, notify); err != nil {
			log.Error("publish artifact error notification failed", slog.Any("error", err))
		}
	}()

	if err := h.markProcessing(ctx, payload.UserID); err != nil {
		log.Warn("mark artifact processing failed", slog.Any("error", err))
	}

	snap, err := h.source.Load(ctx, payload.UserID)
	if err != nil {
		log.Error("load resume state failed", slog.Any("error", err))
		return err
	}

	mode := layout.ParseMode(snap.Style.LayoutMode)
	pdfBytes, renderer, err := h.pipeline.PDF(ctx, snap.Model, snap.Style, mode, nil, h.estimate, h.vectorEnabled)
	if err != nil {
		log.Error("render artifact pdf failed", slog.Any("error", err))
		return err
	}

	objectName := fmt.Sprintf("artifacts/%d/%s.pdf", payload.UserID, uuid.NewString())
	if _, err := h.storage.UploadFile(ctx, objectName, bytes.NewReader(pdfBytes), int64(len(pdfBytes)), "application/pdf"); err != nil {
		log.Error("upload pdf to minio failed", slog.Any("error", err))
		return err
	}

	previousKey, err := h.commit(ctx, payload, objectName, renderer, snap.Model.Header.FullName)
	if err != nil {
		log.Error("commit artifact row failed", slog.Any("error", err))
		return err
	}

	// 旧对象在新行落库后才删，下载方任何时刻都有可用文件。
	if previousKey != "" && previousKey != objectName {
		if err := h.storage.DeleteObject(ctx, previousKey); err != nil {
			log.Warn("delete previous artifact object failed", slog.Any("error", err))
		}
	}

	notify := ArtifactNotifyMessage{
		Status:        "completed",
		Revision:      payload.Revision,
		Renderer:      renderer,
		CorrelationID: payload.CorrelationID,
		ErrorCode:     errcode.OK,
	}
	if renderer == pipeline.RendererRaster && h.vectorEnabled {
		notify.ErrorCode = errcode.RenderFallback
		notify.ErrorMessage = "矢量渲染不可用，本次导出为栅格版本"
	}
	if err := h.publishNotify(ctx, payload.UserID, notify); err != nil {
		log.Error("publish redis notification failed", slog.Any("error", err))
		return err
	}

	log.Info("artifact generation task completed", slog.String("renderer", renderer))
	return nil
}

// commit 以 upsert 语义写入产物行，返回被替换掉的旧对象键。
func (h *ArtifactTaskHandler) commit(ctx context.Context, payload tasks.ArtifactGeneratePayload, objectName, renderer, fullName string) (string, error) {
	fileName := "resume.pdf"
	if trimmed := strings.TrimSpace(fullName); trimmed != "" {
		fileName = trimmed + ".pdf"
	}

	var previousKey string
	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var artifact database.Artifact
		err := tx.Where("user_id = ?", payload.UserID).First(&artifact).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		previousKey = artifact.PdfKey

		artifact.UserID = payload.UserID
		artifact.PdfKey = objectName
		artifact.FileName = fileName
		artifact.Status = database.ArtifactStatusCompleted
		artifact.Renderer = renderer
		artifact.Revision = payload.Revision
		return tx.Save(&artifact).Error
	})
	if err != nil {
		return "", err
	}
	return previousKey, nil
}

// markProcessing 把已有产物行的状态翻到渲染中。行通常在入队时
// 就以 pending 状态建好；没有行时状态随渲染成功一起写入。
func (h *ArtifactTaskHandler) markProcessing(ctx context.Context, userID uint) error {
	return h.db.WithContext(ctx).Model(&database.Artifact{}).
		Where("user_id = ?", userID).
		Update("status", database.ArtifactStatusProcessing).Error
}

func (h *ArtifactTaskHandler) markFailed(ctx context.Context, userID uint, log *slog.Logger) {
	// 只改状态，不动 pdf_key：上一次成功的产物仍可下载。
	if err := h.db.WithContext(ctx).Model(&database.Artifact{}).
		Where("user_id = ?", userID).
		Update("status", database.ArtifactStatusFailed).Error; err != nil {
		log.Error("mark artifact failed state failed", slog.Any("error", err))
	}
}

func (h *ArtifactTaskHandler) publishNotify(ctx context.Context, userID uint, notify ArtifactNotifyMessage) error {
	data, err := json.Marshal(notify)
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}
	channel := fmt.Sprintf("user_notify:%d", userID)
	if err := h.redisClient.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("publish redis notification to %q: %w", channel, err)
	}
	return nil
}

func isFinalAsynqAttempt(ctx context.Context) bool {
	retryCount, ok1 := asynq.GetRetryCount(ctx)
	maxRetry, ok2 := asynq.GetMaxRetry(ctx)
	if !ok1 || !ok2 {
		return false
	}
	return retryCount >= maxRetry
}
