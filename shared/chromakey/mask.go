package chromakey

import "image"

// Mask marks the pixels of a frame that matched a key colour.
type Mask struct {
	Rect image.Rectangle
	bits []bool
}

// NewMask returns an empty mask covering r.
func NewMask(r image.Rectangle) *Mask {
	return &Mask{Rect: r, bits: make([]bool, r.Dx()*r.Dy())}
}

// At reports whether (x, y) is keyed out.
func (m *Mask) At(x, y int) bool {
	if !(image.Point{X: x, Y: y}).In(m.Rect) {
		return false
	}
	return m.bits[m.offset(x, y)]
}

// Set marks (x, y).
func (m *Mask) Set(x, y int, v bool) {
	if !(image.Point{X: x, Y: y}).In(m.Rect) {
		return
	}
	m.bits[m.offset(x, y)] = v
}

// Count returns the number of keyed pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

func (m *Mask) offset(x, y int) int {
	return (y-m.Rect.Min.Y)*m.Rect.Dx() + (x - m.Rect.Min.X)
}

type channelRange struct {
	lo, hi [3]int
}

func rangeFor(c RGB, tolerance int) channelRange {
	ch := [3]int{int(c.R), int(c.G), int(c.B)}
	var r channelRange
	for i, v := range ch {
		r.lo[i] = max(0, v-tolerance)
		r.hi[i] = min(255, v+tolerance)
	}
	return r
}

func (r channelRange) contains(px []uint8) bool {
	for i := 0; i < 3; i++ {
		v := int(px[i])
		if v < r.lo[i] || v > r.hi[i] {
			return false
		}
	}
	return true
}

// BuildMask marks every pixel whose R, G and B all lie within tolerance of at
// least one key colour. Bounds are inclusive and clamped to [0, 255]; a
// negative tolerance is treated as 0. Alpha is ignored.
func BuildMask(frame *image.NRGBA, keys []RGB, tolerance int) *Mask {
	b := frame.Bounds()
	m := NewMask(b)
	if len(keys) == 0 {
		return m
	}
	tolerance = max(0, tolerance)

	ranges := make([]channelRange, len(keys))
	for i, k := range keys {
		ranges[i] = rangeFor(k, tolerance)
	}

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := frame.Pix[frame.PixOffset(b.Min.X, y):]
		for x := 0; x < b.Dx(); x++ {
			px := row[x*4 : x*4+3]
			for _, r := range ranges {
				if r.contains(px) {
					m.bits[i] = true
					break
				}
			}
			i++
		}
	}
	return m
}
