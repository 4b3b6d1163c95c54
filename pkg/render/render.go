package render

import (
	"bytes"
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/credplot/credplot/pkg/chart"
	apperrors "github.com/credplot/credplot/pkg/errors"
)

// Default canvas dimensions for the whole facet grid.
const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 5 * vg.Inch
	DefaultDPI    = 150
)

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	width  vg.Length
	height vg.Length
	dpi    int
}

// WithSize sets the canvas size for the whole facet grid.
func WithSize(width, height vg.Length) Option {
	return func(r *renderer) {
		r.width = width
		r.height = height
	}
}

// WithDPI sets the raster resolution for PNG output.
func WithDPI(dpi int) Option {
	return func(r *renderer) { r.dpi = dpi }
}

func newRenderer(opts ...Option) renderer {
	r := renderer{width: DefaultWidth, height: DefaultHeight, dpi: DefaultDPI}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG renders a chart spec as SVG.
func RenderSVG(spec *chart.Spec, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	c := vgsvg.New(r.width, r.height)
	if err := drawGrid(spec, draw.New(c)); err != nil {
		return nil, err
	}
	return writeCanvas(c)
}

// RenderPNG renders a chart spec as PNG.
func RenderPNG(spec *chart.Spec, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	c := vgimg.NewWith(
		vgimg.UseWH(r.width, r.height),
		vgimg.UseDPI(r.dpi),
	)
	if err := drawGrid(spec, draw.New(c)); err != nil {
		return nil, err
	}
	return writeCanvas(vgimg.PngCanvas{Canvas: c})
}

// RenderPDF renders a chart spec as PDF.
func RenderPDF(spec *chart.Spec, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	c := vgpdf.New(r.width, r.height)
	if err := drawGrid(spec, draw.New(c)); err != nil {
		return nil, err
	}
	return writeCanvas(c)
}

// drawGrid lays the panel plots out as aligned tiles on the canvas.
func drawGrid(spec *chart.Spec, dc draw.Canvas) error {
	if spec == nil || len(spec.Panels) == 0 {
		return apperrors.New(apperrors.ErrCodeEmptyInput, "nothing to render")
	}

	plots, err := panelPlots(spec)
	if err != nil {
		return err
	}

	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      len(plots[0]),
		PadX:      vg.Millimeter * 2,
		PadY:      vg.Millimeter * 2,
		PadTop:    vg.Millimeter,
		PadBottom: vg.Millimeter,
		PadLeft:   vg.Millimeter,
		PadRight:  vg.Millimeter,
	}

	canvases := plot.Align(plots, tiles, dc)
	for row := range plots {
		for col := range plots[row] {
			if plots[row][col] != nil {
				plots[row][col].Draw(canvases[row][col])
			}
		}
	}
	return nil
}

func writeCanvas(c io.WriterTo) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write canvas: %w", err)
	}
	return buf.Bytes(), nil
}
