package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
)

// Document is a surface measured in points that renders to a single HTML page
// with absolutely positioned elements, ready to be printed to PDF.
type Document struct {
	Title    string
	metrics  Metrics
	elements []element
}

type element struct {
	Kind  string
	Style template.CSS
	Text  string
	Src   template.URL
}

var documentTmpl = template.Must(template.New("flyer").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
@page { size: {{.Width}}pt {{.Height}}pt; margin: 0; }
html, body { margin: 0; padding: 0; }
.sheet { position: relative; overflow: hidden; background: #FFFFFF; width: {{.Width}}pt; height: {{.Height}}pt; }
.el { position: absolute; }
.text { white-space: nowrap; line-height: 1; font-family: Helvetica, Arial, sans-serif; }
</style>
</head>
<body>
<div class="sheet">
{{- range .Elements}}
{{- if eq .Kind "img"}}
<img class="el" style="{{.Style}}" src="{{.Src}}" alt="">
{{- else if eq .Kind "text"}}
<div class="el text" style="{{.Style}}">{{.Text}}</div>
{{- else}}
<div class="el" style="{{.Style}}"></div>
{{- end}}
{{- end}}
</div>
</body>
</html>
`))

// NewDocument starts an empty page of the metrics size
func NewDocument(title string, m Metrics) *Document {
	return &Document{Title: title, metrics: m}
}

func (d *Document) Metrics() Metrics {
	return d.metrics
}

// DrawImage embeds img as a JPEG data URI stretched over the box
func (d *Document) DrawImage(img image.Image, r Rect) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return
	}
	d.elements = append(d.elements, element{
		Kind:  "img",
		Style: boxStyle(r),
		Src:   template.URL("data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())),
	})
}

func (d *Document) FillRect(r Rect, c color.RGBA) {
	d.elements = append(d.elements, element{
		Kind:  "rect",
		Style: boxStyle(r) + template.CSS(fmt.Sprintf(" background: %s;", hexString(c))),
	})
}

// DrawText places the text box so that its baseline lands close to y
func (d *Document) DrawText(x, y float64, s string, style TextStyle) {
	weight := "normal"
	if style.Bold {
		weight = "bold"
	}
	d.elements = append(d.elements, element{
		Kind: "text",
		Style: template.CSS(fmt.Sprintf("left: %.2fpt; top: %.2fpt; font-size: %.2fpt; font-weight: %s; color: %s;",
			x, y-style.Size*0.8, style.Size, weight, hexString(style.Color))),
		Text: s,
	})
}

// WriteHTML renders the page
func (d *Document) WriteHTML(w io.Writer) error {
	return documentTmpl.Execute(w, map[string]any{
		"Title":    d.Title,
		"Width":    fmt.Sprintf("%.2f", d.metrics.Width),
		"Height":   fmt.Sprintf("%.2f", d.metrics.Height),
		"Elements": d.elements,
	})
}

func boxStyle(r Rect) template.CSS {
	return template.CSS(fmt.Sprintf("left: %.2fpt; top: %.2fpt; width: %.2fpt; height: %.2fpt;", r.X, r.Y, r.W, r.H))
}
