package markup

// documentTemplate 是预览文档的 Go HTML 模板。
// 页面几何必须与矢量渲染器的 A4 常量保持一致（794x1122 @ 96dpi）。
const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
{{.TokensCSS}}
* { box-sizing: border-box; }
body {
  margin: 0;
  padding: 0;
  background: #e5e7eb;
  font-family: var(--font-body);
  color: #1f2937;
  font-size: 13px;
  line-height: 1.45;
}
.page {
  width: 794px;  /* A4 @ 96 DPI */
  height: 1122px;
  background: white;
  margin: 16px auto;
  padding: var(--page-padding);
  border: var(--border-page);
  border-radius: var(--border-radius);
  overflow: hidden;
  position: relative;
}
.page-body { display: flex; gap: 24px; height: 100%; }
.col-main { flex: 1 1 auto; min-width: 0; }
.col-side { flex: 0 0 32%; min-width: 0; }
.header .name {
  font-family: var(--font-title);
  font-size: 28px;
  font-weight: 700;
  color: var(--accent);
  margin: 0;
}
.header .title { font-size: 15px; margin: 2px 0 0; }
.header .headline { font-size: 12px; color: #6b7280; margin: 2px 0 0; }
.summary {
  margin: 12px 0 0;
  padding: 10px 12px;
  background: var(--accent-soft);
  border: var(--border-summary);
  border-radius: var(--border-radius);
}
.contact-line { margin: 10px 0 0; font-size: 12px; color: #374151; }
.contact-line span + span::before { content: " · "; color: #9ca3af; }
.contact-block { margin-bottom: var(--gap-section); font-size: 12px; }
.contact-block div { margin-bottom: 4px; overflow-wrap: anywhere; }
.section {
  margin-bottom: var(--gap-section);
  border: var(--border-section);
  border-radius: var(--border-radius);
}
.section-title {
  font-family: var(--font-heading);
  font-size: 15px;
  font-weight: 600;
  color: var(--accent);
  border-bottom: 2px var(--border-style) var(--accent-soft);
  padding-bottom: 2px;
  margin: 0 0 8px;
  text-transform: uppercase;
  letter-spacing: 0.04em;
}
.entry {
  margin-bottom: calc(var(--gap-bullet) * 1.5);
  border: var(--border-card);
  border-radius: var(--border-radius);
}
.entry-head { display: flex; justify-content: space-between; gap: 8px; }
.entry-primary { font-weight: 600; }
.entry-meta { color: #6b7280; font-size: 12px; white-space: nowrap; }
.entry-secondary { color: #374151; font-size: 12px; }
.entry-body { margin: 2px 0 0; }
.bullets { margin: 4px 0 0; padding-left: 18px; }
.bullets li { margin-bottom: var(--gap-bullet); }
.tags { margin-top: 4px; }
.tag {
  display: inline-block;
  background: var(--accent-soft);
  color: var(--accent-text);
  border-radius: 4px;
  padding: 1px 8px;
  margin: 0 4px 4px 0;
  font-size: 11px;
}
.inline-row .entry-primary::after { content: ": "; }
.inline-row .entry-primary, .inline-row .entry-body { display: inline; }
a { color: var(--accent); text-decoration: none; overflow-wrap: anywhere; }
@media print {
  body { background: white; }
  .page {
    margin: 0;
    border-radius: 0;
    page-break-after: always;
  }
  .page:last-child { page-break-after: auto; }
  * {
    -webkit-print-color-adjust: exact !important;
    print-color-adjust: exact !important;
  }
  @page { size: A4; margin: 0; }
}
</style>
</head>
<body>
{{$doc := .}}
{{range .Pages}}
<div class="page" data-page="{{.Number}}">
  {{if .First}}
  <div class="header">
    <h1 class="name">{{$doc.Header.FullName}}</h1>
    {{if $doc.Header.Title}}<p class="title">{{$doc.Header.Title}}</p>{{end}}
    {{if $doc.Header.Headline}}<p class="headline">{{$doc.Header.Headline}}</p>{{end}}
    {{if $doc.Header.Summary}}<div class="summary">{{$doc.Header.Summary}}</div>{{end}}
    {{if not $doc.TwoColumn}}
    <div class="contact-line">
      {{range $doc.Contacts}}<span>{{if .Href}}<a href="{{.Href}}">{{.Text}}</a>{{else}}{{.Text}}{{end}}</span>{{end}}
    </div>
    {{end}}
  </div>
  {{end}}
  <div class="page-body">
    <div class="col-main">
      {{range .Main}}{{template "section" .}}{{end}}
    </div>
    {{if $doc.TwoColumn}}
    <div class="col-side">
      {{if .First}}
      <div class="contact-block">
        {{range $doc.Contacts}}<div>{{if .Href}}<a href="{{.Href}}">{{.Text}}</a>{{else}}{{.Text}}{{end}}</div>{{end}}
      </div>
      {{end}}
      {{range .Side}}{{template "section" .}}{{end}}
    </div>
    {{end}}
  </div>
</div>
{{end}}
</body>
</html>
{{define "section"}}
<div class="section" data-section="{{.Section}}">
  <h2 class="section-title">{{.Title}}</h2>
  {{range .Entries}}
  <div class="entry{{if .Inline}} inline-row{{end}}">
    {{if or .Primary .Meta}}
    <div class="entry-head">
      <span class="entry-primary">{{.Primary}}</span>
      {{if .Meta}}<span class="entry-meta">{{.Meta}}</span>{{end}}
    </div>
    {{end}}
    {{if .Secondary}}<div class="entry-secondary">{{.Secondary}}</div>{{end}}
    {{if .Body}}<div class="entry-body">{{.Body}}</div>{{end}}
    {{if .Bullets}}
    <ul class="bullets">
      {{range .Bullets}}<li>{{.}}</li>{{end}}
    </ul>
    {{end}}
    {{if .Tags}}
    <div class="tags">{{range .Tags}}<span class="tag">{{.}}</span>{{end}}</div>
    {{end}}
    {{if .SafeLink}}<div><a href="{{.SafeLink}}">{{.Link}}</a></div>{{else if .Link}}<div>{{.Link}}</div>{{end}}
  </div>
  {{end}}
</div>
{{end}}
`
