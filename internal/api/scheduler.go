package api

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"resumelab/internal/database"
	"resumelab/internal/state"
	"resumelab/internal/tasks"
)

// ArtifactScheduler 负责把导出渲染任务去抖后入队。每次状态变更
// 都推高修订号并投递一个延迟任务；Worker 执行时发现修订号已经
// 落后就直接放弃，于是连续编辑只有最后一次真正渲染。
type ArtifactScheduler struct {
	asynqClient *asynq.Client
	db          *gorm.DB
	source      *state.Source
	debounce    time.Duration
	logger      *slog.Logger
}

// NewArtifactScheduler 构造调度器。
func NewArtifactScheduler(asynqClient *asynq.Client, db *gorm.DB, source *state.Source, debounce time.Duration, logger *slog.Logger) *ArtifactScheduler {
	return &ArtifactScheduler{
		asynqClient: asynqClient,
		db:          db,
		source:      source,
		debounce:    debounce,
		logger:      logger,
	}
}

// Schedule 推高修订号并投递延迟任务。调度失败只记日志，
// 不阻断触发它的业务写入。
func (s *ArtifactScheduler) Schedule(ctx context.Context, userID uint, correlationID string) {
	rev, err := s.source.BumpRevision(ctx, userID)
	if err != nil {
		s.logger.Error("bump artifact revision failed",
			slog.Uint64("user_id", uint64(userID)),
			slog.Any("error", err),
		)
		return
	}

	task, err := tasks.NewArtifactGenerateTask(userID, rev, correlationID)
	if err != nil {
		s.logger.Error("build artifact task failed", slog.Any("error", err))
		return
	}

	if _, err := s.asynqClient.Enqueue(task, asynq.ProcessIn(s.debounce), asynq.MaxRetry(3)); err != nil {
		s.logger.Error("enqueue artifact task failed",
			slog.Uint64("user_id", uint64(userID)),
			slog.Int64("revision", rev),
			slog.Any("error", err),
		)
		return
	}

	if err := s.markPending(ctx, userID); err != nil {
		s.logger.Warn("mark artifact pending failed",
			slog.Uint64("user_id", uint64(userID)),
			slog.Any("error", err),
		)
	}
}

// markPending 在任务入队后把产物行标记为排队中。只动状态字段，
// pdf_key 仍指向上一次成功的产物；首次入队时先建一行空产物。
func (s *ArtifactScheduler) markPending(ctx context.Context, userID uint) error {
	var artifact database.Artifact
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&artifact).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	artifact.UserID = userID
	artifact.Status = database.ArtifactStatusPending
	return s.db.WithContext(ctx).Save(&artifact).Error
}
