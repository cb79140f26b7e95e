package components

import (
	"image"

	cfg "github.com/automoto/gifsprite/config"
	"github.com/yohamta/donburi"
)

// ActionState represents the temporal state of an action
type ActionState struct {
	Pressed      bool // Currently held down
	JustPressed  bool // Pressed this frame
	JustReleased bool // Released this frame
}

// InputData stores the current and previous frame's pressed state for all actions
// plus the pointer. JustPressed/JustReleased are computed on-demand.
type InputData struct {
	Current  [cfg.ActionCount]bool
	Previous [cfg.ActionCount]bool
	Shift    bool
	// TextFocus is set while a text field owns the keyboard.
	TextFocus bool

	Cursor        image.Point // screen space
	MouseDown     bool
	MousePressed  bool // went down this frame
	MouseReleased bool // went up this frame
}

var Input = donburi.NewComponentType[InputData]()
