package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Raster is a pixel surface encoded as JPEG
type Raster struct {
	img     *image.RGBA
	metrics Metrics
	regular *opentype.Font
	bold    *opentype.Font
	faces   map[faceKey]font.Face
}

type faceKey struct {
	size float64
	bold bool
}

// NewRaster allocates a white canvas of the metrics size
func NewRaster(m Metrics) (*Raster, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bold font: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, int(m.Width), int(m.Height)))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	return &Raster{
		img:     img,
		metrics: m,
		regular: regular,
		bold:    bold,
		faces:   make(map[faceKey]font.Face),
	}, nil
}

func (r *Raster) Metrics() Metrics {
	return r.metrics
}

// Image exposes the canvas drawn so far
func (r *Raster) Image() image.Image {
	return r.img
}

// DrawImage stretches img over the box
func (r *Raster) DrawImage(img image.Image, box Rect) {
	bounds := box.rectangle()
	if bounds.Empty() {
		return
	}
	resized := imaging.Resize(img, bounds.Dx(), bounds.Dy(), imaging.Lanczos)
	draw.Draw(r.img, bounds, resized, image.Point{}, draw.Over)
}

func (r *Raster) FillRect(box Rect, c color.RGBA) {
	draw.Draw(r.img, box.rectangle(), image.NewUniform(c), image.Point{}, draw.Src)
}

func (r *Raster) DrawText(x, y float64, s string, style TextStyle) {
	face, err := r.face(style)
	if err != nil {
		return
	}
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(style.Color),
		Face: face,
		Dot:  fixed.P(int(x), int(y)),
	}
	d.DrawString(s)
}

func (r *Raster) face(style TextStyle) (font.Face, error) {
	key := faceKey{size: style.Size, bold: style.Bold}
	if face, ok := r.faces[key]; ok {
		return face, nil
	}
	f := r.regular
	if style.Bold {
		f = r.bold
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: style.Size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}
	r.faces[key] = face
	return face, nil
}

// EncodeJPEG writes the canvas with the configured quality
func (r *Raster) EncodeJPEG(w io.Writer) error {
	quality := r.metrics.Quality
	if quality == 0 {
		quality = 90
	}
	return imaging.Encode(w, r.img, imaging.JPEG, imaging.JPEGQuality(quality))
}

// Close releases the cached font faces
func (r *Raster) Close() error {
	for _, face := range r.faces {
		face.Close()
	}
	return nil
}

func (b Rect) rectangle() image.Rectangle {
	return image.Rect(int(b.X), int(b.Y), int(b.X+b.W), int(b.Y+b.H))
}
