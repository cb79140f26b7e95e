package systems

import (
	"image"

	"github.com/automoto/gifsprite/components"
	"github.com/automoto/gifsprite/tags"
	"github.com/yohamta/donburi/ecs"
)

// UpdateHitZone moves the pointer probe to the cursor and keeps the preview
// object the size of the drawn frame.
func UpdateHitZone(e *ecs.ECS) {
	entry, _, ok := GetEditor(e)
	if !ok {
		return
	}
	hz := components.HitZone.Get(entry)
	preview := components.Preview.Get(entry)
	input := getOrCreateInput(e)

	r := preview.Viewport.Screen
	obj := hz.Preview
	if obj.X != float64(r.Min.X) || obj.Y != float64(r.Min.Y) ||
		obj.W != float64(max(r.Dx(), 1)) || obj.H != float64(max(r.Dy(), 1)) {
		obj.X, obj.Y = float64(r.Min.X), float64(r.Min.Y)
		obj.W, obj.H = float64(max(r.Dx(), 1)), float64(max(r.Dy(), 1))
		obj.Update()
	}

	hz.Pointer.X = float64(input.Cursor.X)
	hz.Pointer.Y = float64(input.Cursor.Y)
	hz.Pointer.Update()
}

// pointerOnPreview reports whether the cursor is over the drawn frame.
func pointerOnPreview(e *ecs.ECS) bool {
	entry, editor, ok := GetEditor(e)
	if !ok || !editor.Session.Loaded() {
		return false
	}
	hz := components.HitZone.Get(entry)
	return hz.Pointer.Check(0, 0, tags.ResolvPreview) != nil
}

// cursorSource maps the cursor into source pixel coordinates.
func cursorSource(e *ecs.ECS) image.Point {
	entry, _, _ := GetEditor(e)
	preview := components.Preview.Get(entry)
	return preview.Viewport.ToSource(getOrCreateInput(e).Cursor)
}
