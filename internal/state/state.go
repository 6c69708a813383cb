// Package state 汇聚一次渲染所需的全部输入：基线档案、生成建议、
// 草稿覆盖与样式配置，并产出解析后的有效模型。预览接口与导出
// Worker 共用同一条装配路径，保证两端看到完全一致的内容。
package state

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"resumelab/internal/database"
	"resumelab/internal/resolver"
	"resumelab/internal/resume"
	"resumelab/internal/store"
	"resumelab/internal/style"
)

// 生成建议在 Redis 中的保存时长。过期后视为“无建议”，
// 解析结果自然回落到基线加草稿。
const generatedTTL = 24 * time.Hour

func generatedKey(userID uint) string {
	return fmt.Sprintf("gen:%d", userID)
}

func generatedSeqKey(userID uint) string {
	return fmt.Sprintf("gen_seq:%d", userID)
}

func revisionKey(userID uint) string {
	return fmt.Sprintf("artifact_rev:%d", userID)
}

// Source 持有装配状态所需的依赖。
type Source struct {
	Repo   *database.ProfileRepo
	Drafts store.DraftStore
	Styles store.StyleStore
	Redis  *redis.Client
}

// Snapshot 是一次完整的渲染输入。
type Snapshot struct {
	Model resume.Model
	Style style.Config
}

// Load 读取用户的全部状态并解析出有效模型。
// 生成建议或草稿不可用时按缺失处理，档案读取失败才是硬错误。
func (s *Source) Load(ctx context.Context, userID uint) (Snapshot, error) {
	baseline, err := s.Repo.LoadBaseline(userID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load baseline: %w", err)
	}

	gen, err := s.LoadGenerated(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}

	draft, err := s.Drafts.LoadDraft(userID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load draft: %w", err)
	}

	cfg, err := s.Styles.LoadStyle(userID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load style: %w", err)
	}

	return Snapshot{
		Model: resolver.Resolve(baseline, gen, draft),
		Style: cfg,
	}, nil
}

// LoadGenerated 读取当前生效的生成建议，没有或已损坏时返回 nil。
func (s *Source) LoadGenerated(ctx context.Context, userID uint) (*resume.Generated, error) {
	blob, err := s.Redis.Get(ctx, generatedKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load generated: %w", err)
	}
	var gen resume.Generated
	if err := json.Unmarshal(blob, &gen); err != nil {
		// 坏数据按无建议处理，下一次生成会覆盖掉它。
		return nil, nil
	}
	return &gen, nil
}

// SaveGenerated 保存接受后的生成建议。
func (s *Source) SaveGenerated(ctx context.Context, userID uint, gen *resume.Generated) error {
	blob, err := json.Marshal(gen)
	if err != nil {
		return fmt.Errorf("marshal generated: %w", err)
	}
	if err := s.Redis.Set(ctx, generatedKey(userID), blob, generatedTTL).Err(); err != nil {
		return fmt.Errorf("save generated: %w", err)
	}
	return nil
}

// NextGenerationSeq 下发下一个生成序号。序号单调递增，
// 用于丢弃乱序到达的旧响应。
func (s *Source) NextGenerationSeq(ctx context.Context, userID uint) (int64, error) {
	seq, err := s.Redis.Incr(ctx, generatedSeqKey(userID)).Result()
	if err != nil {
		return 0, fmt.Errorf("next generation seq: %w", err)
	}
	return seq, nil
}

// LatestIssuedSeq 返回已下发的最大生成序号。
func (s *Source) LatestIssuedSeq(ctx context.Context, userID uint) (int64, error) {
	seq, err := s.Redis.Get(ctx, generatedSeqKey(userID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("latest issued seq: %w", err)
	}
	return seq, nil
}

// BumpRevision 把导出修订号加一并返回新值。每次内容或样式变更
// 都会推高修订号，Worker 据此丢弃过期任务。
func (s *Source) BumpRevision(ctx context.Context, userID uint) (int64, error) {
	rev, err := s.Redis.Incr(ctx, revisionKey(userID)).Result()
	if err != nil {
		return 0, fmt.Errorf("bump artifact revision: %w", err)
	}
	return rev, nil
}

// CurrentRevision 返回当前导出修订号。
func (s *Source) CurrentRevision(ctx context.Context, userID uint) (int64, error) {
	rev, err := s.Redis.Get(ctx, revisionKey(userID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("current artifact revision: %w", err)
	}
	return rev, nil
}
