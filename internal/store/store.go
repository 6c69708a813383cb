// Package store 负责草稿与样式配置的持久化。两者都以带版本号的
// JSON 封套落盘：{"version":1,"data":{...}}。版本不符或解析失败时
// 一律回退到“无草稿/默认样式”，绝不让坏数据阻塞渲染。
package store

import (
	"encoding/json"
	"fmt"

	"resumelab/internal/resume"
	"resumelab/internal/style"
)

// BlobVersion 是当前封套版本。升版本时旧数据按缺失处理。
const BlobVersion = 1

// envelope 是落盘封套。
type envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// DraftStore 读写用户草稿。Save 传入 nil 表示删除草稿。
type DraftStore interface {
	LoadDraft(userID uint) (*resume.Draft, error)
	SaveDraft(userID uint, d *resume.Draft) error
}

// StyleStore 读写用户样式配置。
type StyleStore interface {
	LoadStyle(userID uint) (style.Config, error)
	SaveStyle(userID uint, cfg style.Config) error
}

// encodeEnvelope 把业务数据包进版本封套。
func encodeEnvelope(data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal blob data: %w", err)
	}
	blob, err := json.Marshal(envelope{Version: BlobVersion, Data: raw})
	if err != nil {
		return nil, fmt.Errorf("marshal blob envelope: %w", err)
	}
	return blob, nil
}

// decodeEnvelope 解开封套并校验版本。返回的 error 表示数据不可用，
// 调用方应回退到默认值。
func decodeEnvelope(blob []byte, out any) error {
	var env envelope
	if err := json.Unmarshal(blob, &env); err != nil {
		return fmt.Errorf("unmarshal blob envelope: %w", err)
	}
	if env.Version != BlobVersion {
		return fmt.Errorf("unsupported blob version %d", env.Version)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("unmarshal blob data: %w", err)
	}
	return nil
}
