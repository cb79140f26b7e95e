// Package framestore holds the decoded frames of one loaded animation.
package framestore

import (
	"fmt"
	"image"
	"image/color"

	"github.com/automoto/gifsprite/shared/toolerr"
)

// Store is an ordered sequence of equally sized NRGBA frames.
// Frames are never modified after New returns.
type Store struct {
	frames []*image.NRGBA
	bounds image.Rectangle
	delays []int // per-frame delay in 1/100s as read from the source
}

// New builds a store from frames that all share the bounds of the first one.
func New(frames []*image.NRGBA, delays []int) (*Store, error) {
	if len(frames) == 0 {
		return nil, toolerr.ErrNoAnimation
	}
	b := frames[0].Bounds()
	for i, f := range frames {
		if f.Bounds() != b {
			return nil, fmt.Errorf("frame %d bounds %v differ from %v: %w", i, f.Bounds(), b, toolerr.ErrDecode)
		}
	}
	d := make([]int, len(frames))
	copy(d, delays)
	return &Store{frames: frames, bounds: b, delays: d}, nil
}

// Len returns the number of frames, zero for a nil store.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.frames)
}

// Bounds returns the shared frame bounds.
func (s *Store) Bounds() image.Rectangle {
	if s == nil {
		return image.Rectangle{}
	}
	return s.bounds
}

// Frame returns frame i. Callers must not modify the result.
func (s *Store) Frame(i int) *image.NRGBA {
	return s.frames[i]
}

// Frames returns the frame slice in display order.
func (s *Store) Frames() []*image.NRGBA {
	if s == nil {
		return nil
	}
	return s.frames
}

// Delay returns the source delay of frame i in hundredths of a second.
func (s *Store) Delay(i int) int {
	return s.delays[i]
}

// At reads the pixel at (x, y) of frame i.
func (s *Store) At(i, x, y int) (color.NRGBA, bool) {
	if s.Len() == 0 || i < 0 || i >= len(s.frames) {
		return color.NRGBA{}, false
	}
	if !(image.Point{X: x, Y: y}).In(s.bounds) {
		return color.NRGBA{}, false
	}
	return s.frames[i].NRGBAAt(x, y), true
}
