// Package grid maps pointer coordinates onto a pixel-art block grid.
package grid

import (
	"fmt"
	"image"

	"github.com/automoto/gifsprite/shared/toolerr"
)

// Config describes the block grid: square blocks of PixelSize source pixels
// whose origin is shifted by (OffsetX, OffsetY).
type Config struct {
	PixelSize int `json:"pixelSize"`
	OffsetX   int `json:"offsetX"`
	OffsetY   int `json:"offsetY"`
}

// Validate rejects a zero or negative pixel size and negative offsets.
func (c Config) Validate() error {
	if c.PixelSize < 1 {
		return fmt.Errorf("pixel size %d: %w", c.PixelSize, toolerr.ErrInvalidGridConfig)
	}
	if c.OffsetX < 0 || c.OffsetY < 0 {
		return fmt.Errorf("offset (%d,%d): %w", c.OffsetX, c.OffsetY, toolerr.ErrInvalidGridConfig)
	}
	return nil
}

// Clamp forces the config into the given ranges. It is meant for the
// interaction boundary; the algorithms themselves only Validate.
func (c Config) Clamp(minSize, maxSize, maxOffset int) Config {
	return Config{
		PixelSize: clamp(c.PixelSize, minSize, maxSize),
		OffsetX:   clamp(c.OffsetX, 0, maxOffset),
		OffsetY:   clamp(c.OffsetY, 0, maxOffset),
	}
}

// Origin is the effective grid origin. Offsets of a block or more are folded
// back into [0, PixelSize) since they describe the same lattice.
func (c Config) Origin() image.Point {
	return image.Point{X: c.OffsetX % c.PixelSize, Y: c.OffsetY % c.PixelSize}
}

// Selection is a grid-aligned rectangle in source pixel coordinates with
// X1<=X2 and Y1<=Y2.
type Selection struct {
	X1, Y1, X2, Y2 int
}

// Rect returns the selection as an image.Rectangle.
func (s Selection) Rect() image.Rectangle {
	return image.Rect(s.X1, s.Y1, s.X2, s.Y2)
}

// Blocks returns the selection extent in grid blocks.
func (s Selection) Blocks(c Config) (w, h int) {
	return (s.X2 - s.X1) / c.PixelSize, (s.Y2 - s.Y1) / c.PixelSize
}

// Align returns the origin of the grid cell containing p.
func Align(p image.Point, c Config) image.Point {
	o := c.Origin()
	return image.Point{
		X: floorDiv(p.X-o.X, c.PixelSize)*c.PixelSize + o.X,
		Y: floorDiv(p.Y-o.Y, c.PixelSize)*c.PixelSize + o.Y,
	}
}

// Normalize turns two raw pointer positions into a selection. Both points are
// clamped into bounds and ordered, the start is aligned down to its cell and
// the end up to the far edge of its cell, so width and height are always whole
// multiples of the pixel size and start==end yields exactly one cell.
func Normalize(start, end image.Point, c Config, bounds image.Rectangle) (Selection, error) {
	if err := c.Validate(); err != nil {
		return Selection{}, err
	}
	if bounds.Empty() {
		return Selection{}, fmt.Errorf("empty bounds: %w", toolerr.ErrInvalidSelection)
	}

	start = clampPoint(start, bounds)
	end = clampPoint(end, bounds)
	lo := image.Point{X: min(start.X, end.X), Y: min(start.Y, end.Y)}
	hi := image.Point{X: max(start.X, end.X), Y: max(start.Y, end.Y)}

	a := Align(lo, c)
	b := Align(hi, c).Add(image.Point{X: c.PixelSize, Y: c.PixelSize})
	return Selection{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y}, nil
}

// Renormalize re-derives a selection from its own corners. For a selection
// produced by Normalize under the same config this is the identity.
func Renormalize(s Selection, c Config, bounds image.Rectangle) (Selection, error) {
	return Normalize(image.Point{X: s.X1, Y: s.Y1}, image.Point{X: s.X2 - 1, Y: s.Y2 - 1}, c, bounds)
}

func clampPoint(p image.Point, r image.Rectangle) image.Point {
	return image.Point{
		X: clamp(p.X, r.Min.X, r.Max.X-1),
		Y: clamp(p.Y, r.Min.Y, r.Max.Y-1),
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
