// 离线渲染工具：从 JSON 快照文件渲染简历，不依赖数据库、Redis
// 或对象存储。用于模板调试与排版回归对比。
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"resumelab/internal/layout"
	"resumelab/internal/render/pipeline"
	"resumelab/internal/resolver"
	"resumelab/internal/resume"
	"resumelab/internal/style"
)

// snapshotFile 是输入快照的文件格式。baseline 必填；generated 与
// draft 可选，给出时按线上同样的优先级合并。
type snapshotFile struct {
	Baseline  resume.Model      `json:"baseline"`
	Generated *resume.Generated `json:"generated,omitempty"`
	Draft     *resume.Draft     `json:"draft,omitempty"`
	Style     *style.Config     `json:"style,omitempty"`
}

func main() {
	var (
		input    = flag.String("input", "", "输入快照 JSON 文件（必填）")
		pdfOut   = flag.String("pdf", "", "输出 PDF 路径（可选）")
		htmlOut  = flag.String("html", "", "输出预览 HTML 路径（可选）")
		mode     = flag.String("mode", "", "布局模式：single-column / two-column（默认取快照样式）")
		noVector = flag.Bool("no-vector", false, "跳过矢量产线，强制栅格渲染")
		scale    = flag.Float64("raster-scale", 2.0, "栅格渲染超采样倍率")
	)
	flag.Parse()

	if strings.TrimSpace(*input) == "" {
		log.Fatal("missing required flag: --input")
	}
	if *pdfOut == "" && *htmlOut == "" {
		log.Fatal("nothing to do: pass --pdf and/or --html")
	}

	blob, err := os.ReadFile(*input)
	if err != nil {
		log.Fatalf("read snapshot: %v", err)
	}
	var snap snapshotFile
	if err := json.Unmarshal(blob, &snap); err != nil {
		log.Fatalf("decode snapshot: %v", err)
	}

	cfg := style.DefaultConfig()
	if snap.Style != nil {
		cfg = snap.Style.Normalized()
	}
	modeParam := *mode
	if strings.TrimSpace(modeParam) == "" {
		modeParam = cfg.LayoutMode
	}
	layoutMode := layout.ParseMode(modeParam)

	model := resolver.Resolve(snap.Baseline, snap.Generated, snap.Draft)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	pl, err := pipeline.New(logger, *scale)
	if err != nil {
		log.Fatalf("init render pipeline: %v", err)
	}

	if *htmlOut != "" {
		html, assignment, err := pl.HTML(model, cfg, layoutMode, nil, true)
		if err != nil {
			log.Fatalf("render html: %v", err)
		}
		if err := os.WriteFile(*htmlOut, []byte(html), 0o644); err != nil {
			log.Fatalf("write html: %v", err)
		}
		fmt.Printf("html written to %s (%d pages)\n", *htmlOut, len(assignment))
	}

	if *pdfOut != "" {
		pdf, renderer, err := pl.PDF(context.Background(), model, cfg, layoutMode, nil, true, !*noVector)
		if err != nil {
			log.Fatalf("render pdf: %v", err)
		}
		if err := os.WriteFile(*pdfOut, pdf, 0o644); err != nil {
			log.Fatalf("write pdf: %v", err)
		}
		fmt.Printf("pdf written to %s (renderer=%s, %d bytes)\n", *pdfOut, renderer, len(pdf))
	}
}
