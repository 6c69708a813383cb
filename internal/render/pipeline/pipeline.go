// Package pipeline 把内容块构建、分页与两条渲染产线串成一条
// 可复用的流水线。预览接口、导出 Worker 与离线 CLI 都走这里，
// 保证同一份状态在任何入口产出一致的页面结构。
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"resumelab/internal/layout"
	"resumelab/internal/render/markup"
	"resumelab/internal/render/raster"
	"resumelab/internal/render/vector"
	"resumelab/internal/resume"
	"resumelab/internal/style"
)

// 渲染产线标识，写进产物记录便于排查。
const (
	RendererVector = "vector"
	RendererRaster = "raster"
)

// Pipeline 聚合两个渲染器与栅格兜底产线。
type Pipeline struct {
	markup *markup.Renderer
	vector *vector.Renderer
	raster *raster.Producer
	logger *slog.Logger
}

// New 构造流水线。
func New(logger *slog.Logger, rasterScale float64) (*Pipeline, error) {
	mk, err := markup.New()
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		markup: mk,
		vector: vector.New(),
		raster: raster.NewProducer(logger, rasterScale),
		logger: logger,
	}, nil
}

// Layout 构建内容块并分页。heights 为 nil 时：estimate 打开则用
// 解析式估算器，否则退回全部内容放一页的旧策略。
func (p *Pipeline) Layout(
	model resume.Model,
	cfg style.Config,
	mode layout.Mode,
	heights layout.HeightFunc,
	estimate bool,
) ([]layout.Block, layout.PageAssignment, style.Tokens) {
	tokens := style.Resolve(cfg)
	blocks := layout.BuildBlocks(model, mode)
	order := layout.SectionIDs(blocks)

	if heights == nil {
		if !estimate {
			return blocks, layout.SinglePage(order), tokens
		}
		heights = layout.NewEstimator(cfg, tokens.Vector).HeightOf(blocks, mode)
	}

	budget := layout.PageHeightPx - 2*float64(cfg.PagePaddingPx)
	assignment := layout.Paginate(order, heights, mode, budget, float64(cfg.SectionGapPx))
	return blocks, assignment, tokens
}

// HTML 产出预览文档。
func (p *Pipeline) HTML(
	model resume.Model,
	cfg style.Config,
	mode layout.Mode,
	heights layout.HeightFunc,
	estimate bool,
) (string, layout.PageAssignment, error) {
	blocks, assignment, tokens := p.Layout(model, cfg, mode, heights, estimate)
	html, err := p.markup.Render(model, blocks, assignment, mode, tokens.HTML)
	if err != nil {
		return "", nil, err
	}
	return html, assignment, nil
}

// PDF 产出导出文档。优先走矢量产线；矢量失败或被禁用时回退到
// 栅格产线（同一份 HTML 的逐页截图合成）。返回所用产线标识。
func (p *Pipeline) PDF(
	ctx context.Context,
	model resume.Model,
	cfg style.Config,
	mode layout.Mode,
	heights layout.HeightFunc,
	estimate bool,
	vectorEnabled bool,
) ([]byte, string, error) {
	blocks, assignment, tokens := p.Layout(model, cfg, mode, heights, estimate)

	if vectorEnabled {
		pdf, err := p.vector.Render(model, blocks, assignment, mode, tokens.Vector)
		if err == nil {
			return pdf, RendererVector, nil
		}
		p.logger.Warn("vector render failed, falling back to raster", slog.Any("error", err))
	}

	html, err := p.markup.Render(model, blocks, assignment, mode, tokens.HTML)
	if err != nil {
		return nil, "", fmt.Errorf("render markup for raster: %w", err)
	}
	pdf, err := p.raster.Produce(ctx, html)
	if err != nil {
		return nil, "", fmt.Errorf("raster produce: %w", err)
	}
	return pdf, RendererRaster, nil
}
