package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"resumelab/internal/api/middleware"
	"resumelab/internal/database"
	"resumelab/internal/errcode"
	"resumelab/internal/generate"
	"resumelab/internal/resolver"
	"resumelab/internal/state"
	"resumelab/internal/store"
)

// 生成调用的频控：每用户每分钟的上限。
const (
	generateRateLimit  = 5
	generateRateWindow = time.Minute
)

// GenerateHandler 负责发起生成调用并落地被接受的建议。
type GenerateHandler struct {
	client    *generate.Client
	source    *state.Source
	repo      *database.ProfileRepo
	drafts    store.DraftStore
	redis     *redis.Client
	scheduler *ArtifactScheduler
}

// NewGenerateHandler 构造 GenerateHandler。
func NewGenerateHandler(
	client *generate.Client,
	source *state.Source,
	repo *database.ProfileRepo,
	drafts store.DraftStore,
	redisClient *redis.Client,
	scheduler *ArtifactScheduler,
) *GenerateHandler {
	return &GenerateHandler{
		client:    client,
		source:    source,
		repo:      repo,
		drafts:    drafts,
		redis:     redisClient,
		scheduler: scheduler,
	}
}

type generateRequest struct {
	JobDescription string `json:"job_description" binding:"required"`
}

// Generate 针对职位描述发起一次生成。
//
// 排序保证：每次发起都取一个单调递增序号；响应返回后只有序号
// 不早于最近一次发起的响应会被接受，迟到的旧响应被丢弃。被接受
// 的建议会清空草稿中允许生成的区块，让新建议立即可见。
func (h *GenerateHandler) Generate(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if strings.TrimSpace(req.JobDescription) == "" {
		BadRequest(c, "job description is empty")
		return
	}

	ctx := c.Request.Context()
	logger := middleware.LoggerFromContext(c)

	rateKey := fmt.Sprintf("gen_rate:%d", userID)
	count, err := incrWithTTL(ctx, h.redis, rateKey, generateRateWindow)
	if err == nil && count > generateRateLimit {
		Error(c, http.StatusTooManyRequests, "generation rate limit exceeded")
		return
	}

	baseline, err := h.repo.LoadBaseline(userID)
	if err != nil {
		Internal(c, "failed to load profile")
		return
	}

	seq, err := h.source.NextGenerationSeq(ctx, userID)
	if err != nil {
		Internal(c, "failed to issue generation seq")
		return
	}

	gen, err := h.client.Generate(ctx, seq, generate.Request{
		JobDescription: req.JobDescription,
		Baseline:       baseline,
	})
	if err != nil {
		// 生成失败不会动用户的档案或草稿，属于可恢复错误。
		logger.Warn("generation failed", slog.Any("error", err))
		c.JSON(http.StatusBadGateway, gin.H{
			"code":  errcode.GenerationFailed,
			"error": "generation service failed",
		})
		return
	}

	current, err := h.source.LoadGenerated(ctx, userID)
	if err != nil {
		Internal(c, "failed to load current suggestions")
		return
	}
	latestSeq, err := h.source.LatestIssuedSeq(ctx, userID)
	if err != nil {
		Internal(c, "failed to load issued seq")
		return
	}

	effective, accepted := resolver.AcceptCompleted(current, *gen, latestSeq)
	if !accepted {
		c.JSON(http.StatusOK, gin.H{"accepted": false, "seq": gen.Seq})
		return
	}

	if err := h.source.SaveGenerated(ctx, userID, effective); err != nil {
		Internal(c, "failed to save suggestions")
		return
	}

	// 新建议生效前清掉可生成区块的草稿覆盖，否则旧草稿会继续
	// 遮蔽刚生成的内容。
	draft, err := h.drafts.LoadDraft(userID)
	if err != nil {
		Internal(c, "failed to load draft")
		return
	}
	if err := h.drafts.SaveDraft(userID, resolver.ApplyGeneration(draft)); err != nil {
		Internal(c, "failed to update draft")
		return
	}

	h.notify(c, userID, effective.Seq)
	h.scheduler.Schedule(ctx, userID, middleware.GetCorrelationID(c))

	c.JSON(http.StatusOK, gin.H{
		"accepted":  true,
		"seq":       effective.Seq,
		"generated": effective,
	})
}

// notify 通过用户通知通道推送“建议已更新”事件。
func (h *GenerateHandler) notify(c *gin.Context, userID uint, seq int64) {
	payload, err := json.Marshal(gin.H{
		"type":           "generation_completed",
		"seq":            seq,
		"correlation_id": middleware.GetCorrelationID(c),
	})
	if err != nil {
		return
	}
	channel := fmt.Sprintf("user_notify:%d", userID)
	if err := h.redis.Publish(c.Request.Context(), channel, payload).Err(); err != nil {
		middleware.LoggerFromContext(c).Warn("publish generation notify failed", slog.Any("error", err))
	}
}
