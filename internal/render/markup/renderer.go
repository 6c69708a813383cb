// Package markup 产出带样式的实时预览文档（屏幕 + 打印媒体规则）。
// 它与矢量渲染器共享同一份分页结果与栏位决策，自己只负责“怎么画”。
package markup

import (
	"bytes"
	"fmt"
	"html/template"

	"resumelab/internal/layout"
	"resumelab/internal/render"
	"resumelab/internal/resume"
	"resumelab/internal/style"
)

// Renderer 持有解析好的 HTML 模板。
type Renderer struct {
	tmpl *template.Template
}

// New 解析内置模板。模板本身是常量，解析失败属于编程错误。
func New() (*Renderer, error) {
	tmpl, err := template.New("resume").Parse(documentTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse markup template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// contactItem 是头部联系方式的一项。Href 为空表示该项未通过
// 链接校验，只渲染纯文本。
type contactItem struct {
	Label string
	Text  string
	Href  string
}

type entryView struct {
	layout.Entry
	SafeLink string
}

type blockView struct {
	Section string
	Title   string
	Entries []entryView
}

type pageView struct {
	Number int
	First  bool
	Main   []blockView
	Side   []blockView
}

type documentView struct {
	TokensCSS template.CSS
	TwoColumn bool
	Header    resume.Header
	Contacts  []contactItem
	Pages     []pageView
}

// Render 把有效模型、分页结果与样式令牌渲染为完整 HTML 文档。
// 所有用户文本经模板自动转义；链接仅在通过协议校验后可点击。
func (r *Renderer) Render(
	model resume.Model,
	blocks []layout.Block,
	assignment layout.PageAssignment,
	mode layout.Mode,
	tokens style.HTMLTokens,
) (string, error) {
	plan := layout.Plan(assignment, mode)

	view := documentView{
		TokensCSS: template.CSS(tokens.CSS()),
		TwoColumn: mode == layout.TwoColumn,
		Header:    model.Header,
		Contacts:  buildContacts(model.Header),
	}

	for i, p := range plan {
		pv := pageView{Number: i + 1, First: i == 0}
		for _, id := range p.Main {
			if b, ok := layout.BlockByID(blocks, id); ok {
				pv.Main = append(pv.Main, newBlockView(b))
			}
		}
		for _, id := range p.Side {
			if b, ok := layout.BlockByID(blocks, id); ok {
				pv.Side = append(pv.Side, newBlockView(b))
			}
		}
		view.Pages = append(view.Pages, pv)
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("execute markup template: %w", err)
	}
	return buf.String(), nil
}

func newBlockView(b layout.Block) blockView {
	bv := blockView{Section: string(b.Section), Title: b.Title}
	for _, e := range b.Entries {
		ev := entryView{Entry: e}
		if u, ok := render.SafeLinkURL(e.Link); ok {
			ev.SafeLink = u
		}
		bv.Entries = append(bv.Entries, ev)
	}
	return bv
}

func buildContacts(h resume.Header) []contactItem {
	items := make([]contactItem, 0, 6)
	add := func(label, text, candidate string) {
		if text == "" {
			return
		}
		item := contactItem{Label: label, Text: text}
		if candidate != "" {
			if u, ok := render.SafeLinkURL(candidate); ok {
				item.Href = u
			}
		}
		items = append(items, item)
	}
	add("Email", h.Email, "mailto:"+h.Email)
	add("Phone", h.Phone, "")
	add("Location", h.Location, "")
	add("Website", h.Website, h.Website)
	add("LinkedIn", h.LinkedIn, h.LinkedIn)
	add("GitHub", h.GitHub, h.GitHub)
	return items
}
