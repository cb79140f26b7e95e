package chromakey

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"sort"

	"github.com/automoto/gifsprite/shared/fileout"
	"github.com/automoto/gifsprite/shared/toolerr"
)

// DefaultDelay is the per-frame display time of the saved GIF in 1/100s.
const DefaultDelay = 10

var black = color.RGBA{A: 0xff}

// KeyFrames builds the export frames: one opaque copy per input frame with
// every pixel matching any key colour forced to black. The mask of each frame
// is computed from the untouched source pixels.
func KeyFrames(frames []*image.NRGBA, keys []RGB, tolerance int) ([]*image.NRGBA, error) {
	if len(frames) == 0 {
		return nil, toolerr.ErrNoAnimation
	}
	out := make([]*image.NRGBA, len(frames))
	for i, f := range frames {
		out[i] = ApplyExport(f, BuildMask(f, keys, tolerance))
	}
	return out, nil
}

// EncodeGIF writes frames as a looping animated GIF with the same delay on
// every frame. Each frame gets its own palette: the exact colours when there
// are at most 256 of them, otherwise a median-cut reduction. Black is always
// in the palette so keyed pixels stay exactly (0, 0, 0).
func EncodeGIF(w io.Writer, frames []*image.NRGBA, delay int) error {
	if len(frames) == 0 {
		return toolerr.ErrNoAnimation
	}
	g := &gif.GIF{
		Image:     make([]*image.Paletted, len(frames)),
		Delay:     make([]int, len(frames)),
		LoopCount: 0,
	}
	for i, f := range frames {
		g.Image[i] = paletted(f)
		g.Delay[i] = delay
	}
	if err := gif.EncodeAll(w, g); err != nil {
		return fmt.Errorf("encode gif: %w: %w", toolerr.ErrEncode, err)
	}
	return nil
}

// Save keys frames and writes the GIF to path. Nothing is written if any
// frame fails.
func Save(path string, frames []*image.NRGBA, keys []RGB, tolerance int) error {
	keyed, err := KeyFrames(frames, keys, tolerance)
	if err != nil {
		return err
	}
	return fileout.WriteAll(fileout.Artifact{
		Path: path,
		Write: func(w io.Writer) error {
			return EncodeGIF(w, keyed, DefaultDelay)
		},
	})
}

func paletted(f *image.NRGBA) *image.Paletted {
	b := f.Bounds()
	counts := map[RGB]int{}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px := f.NRGBAAt(x, y)
			counts[RGB{R: px.R, G: px.G, B: px.B}]++
		}
	}
	delete(counts, RGB{})

	// Black is taken out of counts and always gets index 0, so an exact
	// palette holds at most 255 other colours.
	var pal color.Palette
	exact := len(counts) < 256
	if exact {
		pal = make(color.Palette, 0, len(counts)+1)
		pal = append(pal, black)
		for _, c := range sortedColors(counts) {
			pal = append(pal, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		}
	} else {
		pal = append(color.Palette{black}, medianCut(counts, 255)...)
	}

	index := make(map[RGB]uint8, len(counts)+1)
	pm := image.NewPaletted(b, pal)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			px := f.NRGBAAt(x, y)
			c := RGB{R: px.R, G: px.G, B: px.B}
			idx, ok := index[c]
			if !ok {
				idx = uint8(pal.Index(color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}))
				index[c] = idx
			}
			pm.SetColorIndex(x, y, idx)
		}
	}
	return pm
}

func sortedColors(counts map[RGB]int) []RGB {
	out := make([]RGB, 0, len(counts))
	for c := range counts {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if counts[out[i]] != counts[out[j]] {
			return counts[out[i]] > counts[out[j]]
		}
		a, b := out[i], out[j]
		if a.R != b.R {
			return a.R < b.R
		}
		if a.G != b.G {
			return a.G < b.G
		}
		return a.B < b.B
	})
	return out
}

type box struct {
	colors []RGB
	counts map[RGB]int
}

func (bx box) span() (channel, width int) {
	lo := [3]int{255, 255, 255}
	hi := [3]int{}
	for _, c := range bx.colors {
		v := [3]int{int(c.R), int(c.G), int(c.B)}
		for i := range v {
			lo[i] = min(lo[i], v[i])
			hi[i] = max(hi[i], v[i])
		}
	}
	for i := range lo {
		if hi[i]-lo[i] > width {
			channel, width = i, hi[i]-lo[i]
		}
	}
	return channel, width
}

func (bx box) mean() color.RGBA {
	var r, g, b, n int
	for _, c := range bx.colors {
		w := bx.counts[c]
		r += int(c.R) * w
		g += int(c.G) * w
		b += int(c.B) * w
		n += w
	}
	if n == 0 {
		return black
	}
	return color.RGBA{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n), A: 0xff}
}

// medianCut splits the colour space along the widest channel of the widest
// box until n boxes exist and returns each box's weighted mean.
func medianCut(counts map[RGB]int, n int) color.Palette {
	boxes := []box{{colors: sortedColors(counts), counts: counts}}
	for len(boxes) < n {
		best, bestWidth, bestChannel := -1, 0, 0
		for i, bx := range boxes {
			if len(bx.colors) < 2 {
				continue
			}
			ch, w := bx.span()
			if w > bestWidth {
				best, bestWidth, bestChannel = i, w, ch
			}
		}
		if best < 0 {
			break
		}

		split := boxes[best]
		sort.Slice(split.colors, func(i, j int) bool {
			a, b := split.colors[i], split.colors[j]
			return [3]uint8{a.R, a.G, a.B}[bestChannel] < [3]uint8{b.R, b.G, b.B}[bestChannel]
		})
		mid := len(split.colors) / 2
		lo := box{colors: split.colors[:mid:mid], counts: counts}
		hi := box{colors: split.colors[mid:], counts: counts}
		boxes = append(boxes[:best], append([]box{lo, hi}, boxes[best+1:]...)...)
	}

	pal := make(color.Palette, 0, len(boxes))
	for _, bx := range boxes {
		pal = append(pal, bx.mean())
	}
	return pal
}
