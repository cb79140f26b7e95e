package components

import (
	"github.com/automoto/gifsprite/shared/session"
	"github.com/yohamta/donburi"
)

// EditorData wraps the editing session of the open tool.
type EditorData struct {
	Session    *session.Session
	InputPath  string
	OutputPath string

	// Busy is set while a load or export runs in the background. All
	// interaction with the session is ignored until it clears.
	Busy bool
	// Dirty marks the preview texture as stale.
	Dirty bool
	// Ticks counts update ticks for playback timing.
	Ticks uint64
}

var Editor = donburi.NewComponentType[EditorData]()
