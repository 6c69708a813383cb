// Package raster 是矢量渲染不可用时的兜底产线：把标记渲染器的
// HTML 装进无头浏览器，待字体与布局稳定后逐页截图，再把图片
// 合成为固定页文档，并根据链接元素的屏幕包围盒重新推导可点击区域。
package raster

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"resumelab/internal/layout"
)

// 超采样倍率的钳制范围：太低文字发虚，太高图片体积失控。
const (
	MinScale = 1.5
	MaxScale = 3.0
)

// Producer 负责栅格化产线。
type Producer struct {
	logger *slog.Logger
	scale  float64
}

// NewProducer 构造产线。scale 会被钳制到 [MinScale, MaxScale]。
func NewProducer(logger *slog.Logger, scale float64) *Producer {
	if scale < MinScale {
		scale = MinScale
	}
	if scale > MaxScale {
		scale = MaxScale
	}
	return &Producer{logger: logger, scale: scale}
}

// linkRect 是页面坐标系下的链接包围盒（像素）。
type linkRect struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	W    float64 `json:"w"`
	H    float64 `json:"h"`
	Href string  `json:"href"`
}

// Produce 把 HTML 快照栅格化为 PDF 字节。
func (p *Producer) Produce(ctx context.Context, html string) (_ []byte, err error) {
	launch := launcher.New().
		Headless(true).
		NoSandbox(true)
	defer func() {
		if err != nil {
			launch.Cleanup()
		}
	}()

	if path, ok := launcher.LookPath(); ok {
		launch = launch.Bin(path)
	}

	browserURL, err := launch.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	browser := rod.New().ControlURL(browserURL).Context(ctx).Timeout(90 * time.Second)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	defer func() {
		_ = browser.Close()
		launch.Cleanup()
	}()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	defer func() {
		_ = page.Close()
	}()
	page = page.Timeout(60 * time.Second)

	if err := (proto.EmulationSetDeviceMetricsOverride{
		Width:             int(layout.PageWidthPx),
		Height:            int(layout.PageHeightPx),
		DeviceScaleFactor: p.scale,
	}).Call(page); err != nil {
		return nil, fmt.Errorf("set device metrics: %w", err)
	}

	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("set document content: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait load: %w", err)
	}

	// 等待 WebFont/系统字体就绪，避免回退字体度量导致排版差异。
	if _, evalErr := page.Timeout(5 * time.Second).Eval(`() => {
	  if (document && document.fonts && document.fonts.ready) {
	    return Promise.race([
	      document.fonts.ready.then(() => true),
	      new Promise((resolve) => setTimeout(() => resolve(true), 3000))
	    ]);
	  }
	  return true;
	}`); evalErr != nil {
		p.logger.Warn("document.fonts.ready wait failed, continue", slog.Any("error", evalErr))
	}

	elements, err := page.Elements(".page")
	if err != nil {
		return nil, fmt.Errorf("query page elements: %w", err)
	}
	if len(elements) == 0 {
		return nil, fmt.Errorf("no renderable page element found")
	}

	links, err := p.extractLinkRects(page)
	if err != nil {
		p.logger.Warn("extract link rects failed, links omitted", slog.Any("error", err))
		links = make([][]linkRect, len(elements))
	}

	images := make([][]byte, 0, len(elements))
	for i, el := range elements {
		shot, shotErr := el.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
		if shotErr != nil {
			return nil, fmt.Errorf("screenshot page %d: %w", i+1, shotErr)
		}
		images = append(images, shot)
	}

	return composePDF(images, links)
}

// extractLinkRects 采集每个 .page 内所有链接元素相对页面左上角的
// 包围盒，供合成阶段换算到输出页坐标。
func (p *Producer) extractLinkRects(page *rod.Page) ([][]linkRect, error) {
	obj, err := page.Eval(`() => {
	  const pages = Array.from(document.querySelectorAll('.page'));
	  return pages.map(pg => {
	    const base = pg.getBoundingClientRect();
	    return Array.from(pg.querySelectorAll('a[href]')).map(a => {
	      const r = a.getBoundingClientRect();
	      return {
	        x: r.left - base.left,
	        y: r.top - base.top,
	        w: r.width,
	        h: r.height,
	        href: a.getAttribute('href')
	      };
	    });
	  });
	}`)
	if err != nil {
		return nil, fmt.Errorf("eval link extraction: %w", err)
	}

	var rects [][]linkRect
	if err := json.Unmarshal([]byte(obj.Value.JSON("", "")), &rects); err != nil {
		return nil, fmt.Errorf("decode link rects: %w", err)
	}
	return rects, nil
}

// composePDF 把每页截图铺满一张 A4，并把链接盒按比例缩放进
// 输出页坐标系。
func composePDF(images [][]byte, links [][]linkRect) ([]byte, error) {
	const (
		pageWidthMM  = 210.0
		pageHeightMM = 297.0
	)
	scaleX := pageWidthMM / layout.PageWidthPx
	scaleY := pageHeightMM / layout.PageHeightPx

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, img := range images {
		name := fmt.Sprintf("page-%d", i+1)
		pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(img))
		pdf.AddPage()
		pdf.ImageOptions(name, 0, 0, pageWidthMM, pageHeightMM, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

		if i < len(links) {
			for _, r := range links[i] {
				if r.Href == "" || r.W <= 0 || r.H <= 0 {
					continue
				}
				pdf.LinkString(r.X*scaleX, r.Y*scaleY, r.W*scaleX, r.H*scaleY, r.Href)
			}
		}
	}

	if pdf.Err() {
		return nil, fmt.Errorf("compose raster pdf: %w", pdf.Error())
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write raster pdf: %w", err)
	}
	return buf.Bytes(), nil
}
