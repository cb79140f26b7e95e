package config

import "github.com/hajimehoshi/ebiten/v2"

// ActionID represents a logical editor action
type ActionID int

const (
	ActionNone ActionID = iota
	ActionTogglePlay
	ActionPrevFrame
	ActionNextFrame
	ActionClearColors
	ActionClearSelection
	ActionMenuUp
	ActionMenuDown
	ActionMenuSelect
	ActionMenuBack
	ActionCount // Must be last - used for array sizing
)

// InputBinding represents the keys bound to an action
type InputBinding struct {
	Keys []ebiten.Key
}

// InputConfig holds all input mappings
type InputConfig struct {
	Bindings map[ActionID]InputBinding
}

// Input is the global input configuration
var Input InputConfig

func init() {
	Input = InputConfig{
		Bindings: map[ActionID]InputBinding{
			ActionTogglePlay: {
				Keys: []ebiten.Key{ebiten.KeySpace},
			},
			ActionPrevFrame: {
				Keys: []ebiten.Key{ebiten.KeyLeft},
			},
			ActionNextFrame: {
				Keys: []ebiten.Key{ebiten.KeyRight},
			},
			ActionClearColors: {
				Keys: []ebiten.Key{ebiten.KeyC},
			},
			ActionClearSelection: {
				Keys: []ebiten.Key{ebiten.KeyX},
			},
			ActionMenuUp: {
				Keys: []ebiten.Key{ebiten.KeyUp, ebiten.KeyW},
			},
			ActionMenuDown: {
				Keys: []ebiten.Key{ebiten.KeyDown, ebiten.KeyS},
			},
			ActionMenuSelect: {
				Keys: []ebiten.Key{ebiten.KeyEnter},
			},
			ActionMenuBack: {
				Keys: []ebiten.Key{ebiten.KeyEscape},
			},
		},
	}
}
