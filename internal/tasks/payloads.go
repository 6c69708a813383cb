package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// 任务类型常量，确保队列生产者与消费者一致。
const (
	TypeArtifactGenerate = "artifact:generate"
)

// ArtifactGeneratePayload 描述一次导出渲染所需的最小信息。
// Revision 是入队时的导出修订号，消费者发现已有更新修订时直接放弃。
type ArtifactGeneratePayload struct {
	UserID        uint   `json:"user_id"`
	Revision      int64  `json:"revision"`
	CorrelationID string `json:"correlation_id"`
}

// NewArtifactGenerateTask 构造一个新的导出渲染任务。
func NewArtifactGenerateTask(userID uint, revision int64, correlationID string) (*asynq.Task, error) {
	payload, err := json.Marshal(ArtifactGeneratePayload{
		UserID:        userID,
		Revision:      revision,
		CorrelationID: correlationID,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeArtifactGenerate, payload), nil
}
