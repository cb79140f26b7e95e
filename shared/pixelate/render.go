// Package pixelate renders the live block preview shown while choosing a grid
// and a sprite region.
package pixelate

import (
	"image"
	"image/color"

	"github.com/automoto/gifsprite/shared/grid"
	"golang.org/x/image/draw"
)

// Style controls the overlay colours.
type Style struct {
	GridColor      color.RGBA
	SelectionColor color.RGBA
	SelectionWidth int
}

// DefaultStyle matches the editor: green one pixel grid, red two pixel selection.
var DefaultStyle = Style{
	GridColor:      color.RGBA{R: 0, G: 255, B: 0, A: 255},
	SelectionColor: color.RGBA{R: 255, G: 0, B: 0, A: 255},
	SelectionWidth: 2,
}

// Render returns a new image: frame with every whole block starting at the
// grid offset replaced by its top-left sample, grid lines drawn from the offset
// to the frame edge, and sel (when non-nil) outlined. frame is only read.
func Render(frame image.Image, c grid.Config, sel *grid.Selection, style Style) (*image.RGBA, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	b := frame.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, frame, b.Min, draw.Src)

	Blocks(out, c)
	drawGrid(out, c, style.GridColor)
	if sel != nil {
		strokeRect(out, sel.Rect(), style.SelectionWidth, style.SelectionColor)
	}
	return out, nil
}

// Blocks pixelates dst in place. Only whole blocks are touched:
// block_w = (width - offset_x) / pixel_size and likewise for height, and the
// strip left of and above the offset plus any partial trailing block keep their
// original pixels.
func Blocks(dst draw.Image, c grid.Config) {
	b := dst.Bounds()
	p := c.PixelSize
	bw := max(0, (b.Dx()-c.OffsetX)/p)
	bh := max(0, (b.Dy()-c.OffsetY)/p)

	for by := 0; by < bh; by++ {
		for bx := 0; bx < bw; bx++ {
			x := b.Min.X + c.OffsetX + bx*p
			y := b.Min.Y + c.OffsetY + by*p
			sample := dst.At(x, y)
			draw.Draw(dst, image.Rect(x, y, x+p, y+p), image.NewUniform(sample), image.Point{}, draw.Src)
		}
	}
}

func drawGrid(dst *image.RGBA, c grid.Config, clr color.RGBA) {
	b := dst.Bounds()
	for x := b.Min.X + c.OffsetX; x < b.Max.X; x += c.PixelSize {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			dst.SetRGBA(x, y, clr)
		}
	}
	for y := b.Min.Y + c.OffsetY; y < b.Max.Y; y += c.PixelSize {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.SetRGBA(x, y, clr)
		}
	}
}

// strokeRect outlines r with a line of the given width centred on its edges,
// clipped to dst.
func strokeRect(dst *image.RGBA, r image.Rectangle, width int, clr color.RGBA) {
	if width < 1 {
		width = 1
	}
	lo := width / 2
	hi := width - lo
	u := image.NewUniform(clr)
	edges := []image.Rectangle{
		image.Rect(r.Min.X-lo, r.Min.Y-lo, r.Max.X+hi, r.Min.Y+hi),
		image.Rect(r.Min.X-lo, r.Max.Y-lo, r.Max.X+hi, r.Max.Y+hi),
		image.Rect(r.Min.X-lo, r.Min.Y-lo, r.Min.X+hi, r.Max.Y+hi),
		image.Rect(r.Max.X-lo, r.Min.Y-lo, r.Max.X+hi, r.Max.Y+hi),
	}
	for _, e := range edges {
		draw.Draw(dst, e.Intersect(dst.Bounds()), u, image.Point{}, draw.Src)
	}
}
