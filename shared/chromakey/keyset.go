// Package chromakey removes chosen colours from animation frames.
package chromakey

import (
	"fmt"
	"image"
	"strings"
)

// DefaultTolerance is the per-channel distance still counted as a match.
const DefaultTolerance = 5

// RGB is an 8-bit colour triple.
type RGB struct {
	R, G, B uint8
}

func (c RGB) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.R, c.G, c.B)
}

// KeySet is an insertion-ordered set of key colours.
type KeySet struct {
	colors []RGB
}

// NewKeySet returns a set holding the distinct colours of cs in order.
func NewKeySet(cs ...RGB) *KeySet {
	k := &KeySet{}
	for _, c := range cs {
		k.Add(c)
	}
	return k
}

// Add appends c and reports whether it was new. Duplicates are ignored.
func (k *KeySet) Add(c RGB) bool {
	if k.Contains(c) {
		return false
	}
	k.colors = append(k.colors, c)
	return true
}

// Contains reports whether c is already a key colour.
func (k *KeySet) Contains(c RGB) bool {
	for _, have := range k.colors {
		if have == c {
			return true
		}
	}
	return false
}

// Clear removes every key colour.
func (k *KeySet) Clear() {
	k.colors = k.colors[:0]
}

// Len returns the number of key colours.
func (k *KeySet) Len() int {
	if k == nil {
		return 0
	}
	return len(k.colors)
}

// Colors returns a copy of the key colours in insertion order.
func (k *KeySet) Colors() []RGB {
	if k == nil {
		return nil
	}
	out := make([]RGB, len(k.colors))
	copy(out, k.colors)
	return out
}

func (k *KeySet) String() string {
	parts := make([]string, 0, k.Len())
	for _, c := range k.Colors() {
		parts = append(parts, c.String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Pick reads the colour under (x, y). ok is false outside the frame.
func Pick(frame *image.NRGBA, x, y int) (c RGB, ok bool) {
	if !(image.Point{X: x, Y: y}).In(frame.Bounds()) {
		return RGB{}, false
	}
	px := frame.NRGBAAt(x, y)
	return RGB{R: px.R, G: px.G, B: px.B}, true
}
