package systems

import (
	"fmt"

	"github.com/automoto/gifsprite/shared/session"
	"github.com/yohamta/donburi/ecs"
)

// UpdateSelection turns mouse drags on the preview into a region
// (pixelation) or into key colour picks along the drag (transparency).
func UpdateSelection(e *ecs.ECS) {
	_, editor, ok := GetEditor(e)
	if !ok || editor.Busy || !editor.Session.Loaded() {
		return
	}
	s := editor.Session
	input := getOrCreateInput(e)

	switch s.Tool {
	case session.ToolPixelate:
		if input.MousePressed && pointerOnPreview(e) {
			if err := s.BeginSelection(cursorSource(e)); err != nil {
				SetError(e, err)
				return
			}
			editor.Dirty = true
		}
		if !s.Dragging() {
			return
		}
		// Drags may leave the preview; Normalize clamps into the frame.
		s.ExtendSelection(cursorSource(e))
		editor.Dirty = true
		if input.MouseReleased || !input.MouseDown {
			sel, err := s.EndSelection()
			if err != nil {
				SetError(e, err)
				return
			}
			bw, bh := sel.Blocks(s.Grid())
			SetStatus(e, fmt.Sprintf("Selected %dx%d blocks at (%d, %d)", bw, bh, sel.X1, sel.Y1))
		}

	case session.ToolTransparency:
		if !input.MouseDown {
			s.EndPicking()
			return
		}
		if !pointerOnPreview(e) {
			return
		}
		pick := s.ContinuePicking
		if input.MousePressed {
			pick = s.BeginPicking
		}
		c, added, err := pick(cursorSource(e))
		if err != nil {
			SetError(e, err)
			return
		}
		if added {
			editor.Dirty = true
			SetStatus(e, "Added colour "+c.String())
		}
	}
}
