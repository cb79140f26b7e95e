package systems

import (
	"errors"
	"fmt"
	"log"

	"github.com/automoto/gifsprite/components"
	cfg "github.com/automoto/gifsprite/config"
	"github.com/automoto/gifsprite/shared/framestore"
	"github.com/automoto/gifsprite/shared/grid"
	"github.com/automoto/gifsprite/shared/session"
	"github.com/automoto/gifsprite/shared/toolerr"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// GetEditor returns the editor entity and its data.
func GetEditor(e *ecs.ECS) (*donburi.Entry, *components.EditorData, bool) {
	entry, ok := components.Editor.First(e.World)
	if !ok {
		return nil, nil, false
	}
	return entry, components.Editor.Get(entry), true
}

// UpdateEditor handles keyboard shortcuts and advances playback.
func UpdateEditor(e *ecs.ECS) {
	_, editor, ok := GetEditor(e)
	if !ok || editor.Busy {
		return
	}
	input := getOrCreateInput(e)
	if !input.TextFocus {
		handleEditorKeys(e, editor, input)
	}

	dt := session.TickDuration(editor.Ticks, ebiten.TPS())
	editor.Ticks++
	if editor.Session.Update(dt) {
		editor.Dirty = true
	}
}

func handleEditorKeys(e *ecs.ECS, editor *components.EditorData, input *components.InputData) {
	if GetAction(input, cfg.ActionTogglePlay).JustPressed {
		TogglePlay(e)
	}
	if GetAction(input, cfg.ActionPrevFrame).JustPressed {
		StepFrame(e, -1)
	}
	if GetAction(input, cfg.ActionNextFrame).JustPressed {
		StepFrame(e, 1)
	}
	if GetAction(input, cfg.ActionClearColors).JustPressed && editor.Session.Tool == session.ToolTransparency {
		ClearColors(e)
	}
	if GetAction(input, cfg.ActionClearSelection).JustPressed && editor.Session.Tool == session.ToolPixelate {
		editor.Session.ClearSelection()
		editor.Dirty = true
	}
}

// TogglePlay starts or stops playback.
func TogglePlay(e *ecs.ECS) {
	_, editor, ok := GetEditor(e)
	if !ok || editor.Busy {
		return
	}
	playing, err := editor.Session.TogglePlay()
	if err != nil {
		SetError(e, err)
		return
	}
	if playing {
		SetStatus(e, "Playing")
	} else {
		SetStatus(e, "Paused")
	}
}

// StepFrame shows the frame delta steps away, wrapping around.
func StepFrame(e *ecs.ECS, delta int) {
	_, editor, ok := GetEditor(e)
	if !ok || editor.Busy {
		return
	}
	if !editor.Session.Loaded() {
		SetError(e, toolerr.ErrNoAnimation)
		return
	}
	editor.Session.Step(delta)
	editor.Dirty = true
}

// ClearColors empties the key colour set.
func ClearColors(e *ecs.ECS) {
	_, editor, ok := GetEditor(e)
	if !ok || editor.Busy {
		return
	}
	editor.Session.ClearColors()
	editor.Dirty = true
	SetStatus(e, "Colours cleared")
}

// AdjustGrid nudges the pixel size and offsets, clamped to the editor limits.
func AdjustGrid(e *ecs.ECS, dSize, dX, dY int) {
	_, editor, ok := GetEditor(e)
	if !ok || editor.Busy {
		return
	}
	step := cfg.Stepper.Small
	if getOrCreateInput(e).Shift {
		step = cfg.Stepper.Large
	}
	g := editor.Session.Grid()
	g = grid.Config{
		PixelSize: g.PixelSize + dSize*step,
		OffsetX:   g.OffsetX + dX*step,
		OffsetY:   g.OffsetY + dY*step,
	}.Clamp(cfg.Editor.MinPixelSize, cfg.Editor.MaxPixelSize, cfg.Editor.MaxOffset)
	if err := editor.Session.SetGrid(g); err != nil {
		SetError(e, err)
		return
	}
	editor.Dirty = true
	SaveEditorSettings(editor)
}

// ApplyLoaded installs a decoded animation, or reports why it failed. Must be
// called on the update goroutine.
func ApplyLoaded(e *ecs.ECS, path string, store *framestore.Store, err error) {
	_, editor, ok := GetEditor(e)
	if !ok {
		return
	}
	editor.Busy = false
	if err == nil {
		err = editor.Session.Load(store)
	}
	if err != nil {
		log.Printf("[editor] load %s failed: %v", path, err)
		SetError(e, err)
		return
	}
	editor.InputPath = path
	editor.Dirty = true
	log.Printf("[editor] loaded %s: %d frames", path, store.Len())
	SetStatus(e, fmt.Sprintf("Loaded %d frames", store.Len()))
	SaveEditorSettings(editor)
}

// ApplySaved reports the outcome of an export. Must be called on the update
// goroutine.
func ApplySaved(e *ecs.ECS, path string, err error) {
	_, editor, ok := GetEditor(e)
	if !ok {
		return
	}
	editor.Busy = false
	if err != nil {
		log.Printf("[editor] export %s failed: %v", path, err)
		SetError(e, err)
		return
	}
	editor.OutputPath = path
	log.Printf("[editor] wrote %s", path)
	SetStatus(e, "Saved "+path)
	SaveEditorSettings(editor)
}

// errorText turns a failure into a short status line.
func errorText(err error) string {
	switch {
	case errors.Is(err, toolerr.ErrNoAnimation):
		return "Load a GIF first"
	case errors.Is(err, toolerr.ErrInvalidSelection):
		return "Select a region first: " + err.Error()
	case errors.Is(err, toolerr.ErrInvalidGridConfig):
		return "Invalid grid: " + err.Error()
	case errors.Is(err, toolerr.ErrDecode):
		return "Could not read GIF: " + err.Error()
	case errors.Is(err, toolerr.ErrEncode):
		return "Could not write output: " + err.Error()
	}
	return err.Error()
}
