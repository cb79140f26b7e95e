// Package viewport maps between source pixels and the scaled preview on screen.
package viewport

import (
	"image"
	"math"
)

// Viewport places a source image on screen at a uniform scale.
type Viewport struct {
	Source image.Rectangle
	Screen image.Rectangle
	Scale  float64
}

// Fit shrinks src to fit inside maxW x maxH, keeping its aspect ratio, and
// places it at origin. Images that already fit are shown at 1:1.
func Fit(src image.Rectangle, maxW, maxH int, origin image.Point) Viewport {
	scale := 1.0
	if w, h := src.Dx(), src.Dy(); w > 0 && h > 0 {
		scale = math.Min(1, math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h)))
	}
	w := int(float64(src.Dx()) * scale)
	h := int(float64(src.Dy()) * scale)
	return Viewport{
		Source: src,
		Screen: image.Rect(origin.X, origin.Y, origin.X+w, origin.Y+h),
		Scale:  scale,
	}
}

// ToSource converts a screen point to source pixel coordinates. Points
// outside the preview map outside the source; callers clamp as needed.
func (v Viewport) ToSource(p image.Point) image.Point {
	if v.Scale <= 0 {
		return v.Source.Min
	}
	x := math.Floor(float64(p.X-v.Screen.Min.X) / v.Scale)
	y := math.Floor(float64(p.Y-v.Screen.Min.Y) / v.Scale)
	return image.Pt(v.Source.Min.X+int(x), v.Source.Min.Y+int(y))
}

// ToScreen converts a source rectangle to screen space.
func (v Viewport) ToScreen(r image.Rectangle) image.Rectangle {
	f := func(p image.Point) image.Point {
		return image.Pt(
			v.Screen.Min.X+int(math.Round(float64(p.X-v.Source.Min.X)*v.Scale)),
			v.Screen.Min.Y+int(math.Round(float64(p.Y-v.Source.Min.Y)*v.Scale)),
		)
	}
	return image.Rectangle{Min: f(r.Min), Max: f(r.Max)}
}

// Contains reports whether p lies on the preview.
func (v Viewport) Contains(p image.Point) bool {
	return p.In(v.Screen)
}
