// Package generate 封装对生成服务的调用。生成服务是独立部署的
// 内部组件，输入职位描述与基线档案，产出各区块的建议内容。
package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"resumelab/internal/resume"
)

// Client 是生成服务的 HTTP 客户端。
type Client struct {
	baseURL string
	secret  string
	http    *http.Client
}

// NewClient 构造客户端。timeout<=0 时使用 15 秒。
func NewClient(baseURL, secret string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		secret:  strings.TrimSpace(secret),
		http:    &http.Client{Timeout: timeout},
	}
}

// Request 是一次生成调用的输入。
type Request struct {
	JobDescription string       `json:"job_description"`
	Baseline       resume.Model `json:"baseline"`
}

// Generate 调用生成服务并解析建议内容。服务端不回填 Seq，
// 由调用方在发起时已确定的序号写入返回值。
func (c *Client) Generate(ctx context.Context, seq int64, req Request) (*resume.Generated, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("generate base url missing")
	}
	if c.secret == "" {
		return nil, fmt.Errorf("generate secret missing")
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal generate request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build generate request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Internal-Secret", c.secret)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request generation: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 8*1024))
		return nil, fmt.Errorf("generation status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var gen resume.Generated
	if err := json.NewDecoder(resp.Body).Decode(&gen); err != nil {
		return nil, fmt.Errorf("decode generation response: %w", err)
	}
	gen.Seq = seq
	return &gen, nil
}
