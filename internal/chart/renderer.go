package chart

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
)

// ErrNoData is returned when a render is requested with no series at all.
var ErrNoData = errors.New("no data to render")

// Renderer turns parallel label/amount sequences into an image blob.
// The ledger core only depends on this boundary; PNGRenderer below is the
// default implementation.
type Renderer interface {
	Render(labels []string, amounts []float64) ([]byte, error)
}

// PNGRenderer draws a minimal vertical bar chart, one bar per label.
type PNGRenderer struct {
	Width  int
	Height int
}

func NewPNGRenderer() *PNGRenderer {
	return &PNGRenderer{Width: 640, Height: 400}
}

var barPalette = []color.RGBA{
	{R: 66, G: 133, B: 244, A: 255},
	{R: 219, G: 68, B: 55, A: 255},
	{R: 244, G: 180, B: 0, A: 255},
	{R: 15, G: 157, B: 88, A: 255},
	{R: 171, G: 71, B: 188, A: 255},
}

func (r *PNGRenderer) Render(labels []string, amounts []float64) ([]byte, error) {
	if len(labels) == 0 || len(labels) != len(amounts) {
		return nil, ErrNoData
	}

	maxVal := 0.0
	for _, v := range amounts {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			img.SetRGBA(x, y, white)
		}
	}

	const margin = 20
	plotW := r.Width - 2*margin
	plotH := r.Height - 2*margin
	slot := plotW / len(amounts)
	barW := slot * 3 / 4
	if barW < 1 {
		barW = 1
	}

	for i, v := range amounts {
		barH := int(float64(plotH) * v / maxVal)
		x0 := margin + i*slot + (slot-barW)/2
		y0 := r.Height - margin - barH
		c := barPalette[i%len(barPalette)]
		for y := y0; y < r.Height-margin; y++ {
			for x := x0; x < x0+barW && x < r.Width-margin; x++ {
				img.SetRGBA(x, y, c)
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
