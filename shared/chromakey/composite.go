package chromakey

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Checker describes the background shown behind keyed pixels in the preview.
type Checker struct {
	Tile  int
	Light color.RGBA
	Dark  color.RGBA
}

// DefaultChecker uses 20px tiles of light and dark grey.
var DefaultChecker = Checker{
	Tile:  20,
	Light: color.RGBA{R: 200, G: 200, B: 200, A: 255},
	Dark:  color.RGBA{R: 150, G: 150, B: 150, A: 255},
}

// Draw fills dst with the checkerboard. The tile whose origin is (i, j) is
// light when ((i + j) / tile) is even.
func (c Checker) Draw(dst draw.Image) {
	b := dst.Bounds()
	tile := max(1, c.Tile)
	light := image.NewUniform(c.Light)
	dark := image.NewUniform(c.Dark)
	for j := 0; j < b.Dy(); j += tile {
		for i := 0; i < b.Dx(); i += tile {
			src := light
			if ((i+j)/tile)%2 != 0 {
				src = dark
			}
			r := image.Rect(b.Min.X+i, b.Min.Y+j, b.Min.X+i+tile, b.Min.Y+j+tile).Intersect(b)
			draw.Draw(dst, r, src, image.Point{}, draw.Src)
		}
	}
}

// ApplyPreview composites frame over the checkerboard with keyed pixels made
// fully transparent. frame is not modified.
func ApplyPreview(frame *image.NRGBA, m *Mask, bg Checker) *image.RGBA {
	keyed := imaging.Clone(frame)
	forEachMasked(keyed, m, func(px []uint8) {
		px[3] = 0
	})

	b := frame.Bounds()
	out := image.NewRGBA(b)
	bg.Draw(out)
	draw.Draw(out, b, keyed, image.Point{}, draw.Over)
	return out
}

// ApplyExport returns an opaque copy of frame with keyed pixels set to black.
// The animated output carries no per-pixel alpha, so black stands in for
// transparency there.
func ApplyExport(frame *image.NRGBA, m *Mask) *image.NRGBA {
	out := imaging.Clone(frame)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 0xff
	}
	forEachMasked(out, m, func(px []uint8) {
		px[0], px[1], px[2] = 0, 0, 0
	})
	return out
}

// forEachMasked calls fn with the 4-byte pixel slice of img for every masked
// position. img must be a zero-origin copy of the masked frame.
func forEachMasked(img *image.NRGBA, m *Mask, fn func(px []uint8)) {
	if m == nil {
		return
	}
	w, h := m.Rect.Dx(), m.Rect.Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !m.bits[y*w+x] {
				continue
			}
			o := img.PixOffset(x, y)
			fn(img.Pix[o : o+4])
		}
	}
}
