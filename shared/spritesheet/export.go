// Package spritesheet packs a grid-aligned region of every animation frame
// into a vertical strip of power-of-two cells with a frame timing descriptor.
package spritesheet

import (
	"fmt"
	"image"
	"image/color"

	"github.com/automoto/gifsprite/shared/grid"
	"github.com/automoto/gifsprite/shared/toolerr"
	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// DefaultFrameTime is the descriptor tick count per frame. One tick is 1/20s,
// so 2 ticks show each frame for 0.1s.
const DefaultFrameTime = 2

// Sheet is the packed output: CellSize wide and CellSize*Frames tall.
type Sheet struct {
	Image    *image.NRGBA
	CellSize int
	Frames   int
	Pad      image.Point
	Blocks   image.Point
}

// Descriptor is the companion animation description written as JSON next to
// the sheet.
type Descriptor struct {
	Animation Animation `json:"animation"`
}

// Animation lists the frame time and play order.
type Animation struct {
	FrameTime int   `json:"frametime"`
	Frames    []int `json:"frames"`
}

// NewDescriptor plays frames 0..n-1 in order at frameTime ticks each.
func NewDescriptor(n, frameTime int) Descriptor {
	frames := make([]int, n)
	for i := range frames {
		frames[i] = i
	}
	return Descriptor{Animation: Animation{FrameTime: frameTime, Frames: frames}}
}

// TargetSize is the smallest power of two that is >= n, with 1 for n<=1.
func TargetSize(n int) int {
	size := 1
	for size < n {
		size *= 2
	}
	return size
}

// Export crops sel out of every frame, collapses each grid block to one pixel
// taken from the block's top-left corner (see collapse for regions that run
// past the frame edge), centres the result in a transparent
// power-of-two square and stacks the squares top to bottom in frame order.
//
// Padding uses truncating division, so when the slack is odd the extra pixel
// ends up on the right or bottom edge. Any output pixel whose RGB is exactly
// black gets alpha 0: black doubles as the transparency key of the target
// texture format, which also erases genuinely black opaque pixels.
func Export(frames []*image.NRGBA, sel *grid.Selection, c grid.Config) (*Sheet, Descriptor, error) {
	if len(frames) == 0 {
		return nil, Descriptor{}, toolerr.ErrNoAnimation
	}
	if err := c.Validate(); err != nil {
		return nil, Descriptor{}, err
	}
	if sel == nil {
		return nil, Descriptor{}, fmt.Errorf("no region selected: %w", toolerr.ErrInvalidSelection)
	}

	bw, bh := sel.Blocks(c)
	if bw < 1 || bh < 1 {
		return nil, Descriptor{}, fmt.Errorf("region %v is smaller than one %dpx block: %w", sel.Rect(), c.PixelSize, toolerr.ErrInvalidSelection)
	}
	bounds := frames[0].Bounds()
	if !sel.Rect().Overlaps(bounds) {
		return nil, Descriptor{}, fmt.Errorf("region %v lies outside frame %v: %w", sel.Rect(), bounds, toolerr.ErrInvalidSelection)
	}

	size := TargetSize(max(bw, bh))
	pad := image.Point{X: (size - bw) / 2, Y: (size - bh) / 2}

	sheet := imaging.New(size, size*len(frames), color.NRGBA{})
	for i, f := range frames {
		if f.Bounds() != bounds {
			return nil, Descriptor{}, fmt.Errorf("frame %d bounds %v differ from %v: %w", i, f.Bounds(), bounds, toolerr.ErrInvalidSelection)
		}
		cell := imaging.New(size, size, color.NRGBA{})
		sprite := collapse(f, sel, bw, bh)
		cell = imaging.Paste(cell, sprite, pad)
		keyBlack(cell)
		draw.Draw(sheet, image.Rect(0, i*size, size, (i+1)*size), cell, image.Point{}, draw.Src)
	}

	return &Sheet{
			Image:    sheet,
			CellSize: size,
			Frames:   len(frames),
			Pad:      pad,
			Blocks:   image.Point{X: bw, Y: bh},
		},
		NewDescriptor(len(frames), DefaultFrameTime),
		nil
}

// collapse is a nearest-neighbour resample of the selection, clipped to the
// frame, down to bw x bh. Output pixel (x, y) reads crop pixel
// (floor(x*cropW/bw), floor(y*cropH/bh)), so a region running past the frame
// edge is stretched over the whole block count rather than padded.
func collapse(f *image.NRGBA, sel *grid.Selection, bw, bh int) *image.NRGBA {
	crop := imaging.Crop(f, sel.Rect())
	cw, ch := crop.Bounds().Dx(), crop.Bounds().Dy()

	out := image.NewNRGBA(image.Rect(0, 0, bw, bh))
	if cw == 0 || ch == 0 {
		return out
	}
	for y := 0; y < bh; y++ {
		sy := min(y*ch/bh, ch-1)
		for x := 0; x < bw; x++ {
			sx := min(x*cw/bw, cw-1)
			out.SetNRGBA(x, y, crop.NRGBAAt(sx, sy))
		}
	}
	return out
}

func keyBlack(img *image.NRGBA) {
	for i := 0; i+3 < len(img.Pix); i += 4 {
		if img.Pix[i] == 0 && img.Pix[i+1] == 0 && img.Pix[i+2] == 0 {
			img.Pix[i+3] = 0
		}
	}
}
