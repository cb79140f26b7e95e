package config

import (
	"image/color"
	"time"

	"github.com/yohamta/donburi/ecs"
)

// Default is the single render layer used by every scene.
const Default ecs.LayerID = 0

// Config holds the window configuration
type Config struct {
	Width  int
	Height int
	Title  string
}

// EditorConfig bounds the grid controls of the pixelation tool
type EditorConfig struct {
	DefaultPixelSize int
	MinPixelSize     int
	MaxPixelSize     int
	MaxOffset        int
}

// KeyingConfig contains transparency tool defaults
type KeyingConfig struct {
	Tolerance    int
	CheckerTile  int
	CheckerLight color.RGBA
	CheckerDark  color.RGBA
}

// PlaybackConfig controls the frame timer
type PlaybackConfig struct {
	Interval time.Duration
}

// ExportConfig contains output defaults
type ExportConfig struct {
	FrameTime      int    // ticks per frame written to the .mcmeta descriptor
	SheetSuffix    string // appended to the input name to suggest an output path
	KeyedGIFSuffix string
}

// PreviewConfig contains layout and overlay settings for the frame preview
type PreviewConfig struct {
	MaxWidth       int
	MaxHeight      int
	X, Y           int // top-left of the preview area on screen
	GridColor      color.RGBA
	SelectionColor color.RGBA
	SelectionWidth int
	DragColor      color.RGBA
	Background     color.RGBA
}

// UIConfig contains toolbar and status-line settings
type UIConfig struct {
	ToolbarHeight  int
	Background     color.RGBA
	StatusColor    color.RGBA
	ErrorColor     color.RGBA
	HintColor      color.RGBA
	StatusSeconds  float32 // how long a status message stays fully visible
	StatusFadeTime float32 // fade-out duration after that
}

// MenuConfig contains tool picker visual settings
type MenuConfig struct {
	BackgroundColor   color.RGBA
	TitleColor        color.RGBA
	TextColorNormal   color.RGBA
	TextColorSelected color.RGBA
	TitleY            float64
	MenuStartY        float64
	MenuItemHeight    float64
	MenuItemGap       float64
}

// DebugConfig contains command-line overrides
type DebugConfig struct {
	SkipMenu  bool   // open a tool directly
	Tool      string // "pixelate" or "transparency"
	InputPath string // GIF to load on start
}

var C *Config
var Editor EditorConfig
var Keying KeyingConfig
var Playback PlaybackConfig
var Export ExportConfig
var Preview PreviewConfig
var UI UIConfig
var Menu MenuConfig
var Debug DebugConfig

func init() {
	C = &Config{
		Width:  1024,
		Height: 720,
		Title:  "GIF Sprite Tools",
	}

	Editor = EditorConfig{
		DefaultPixelSize: 10,
		MinPixelSize:     1,
		MaxPixelSize:     100,
		MaxOffset:        100,
	}

	Keying = KeyingConfig{
		Tolerance:    5,
		CheckerTile:  20,
		CheckerLight: color.RGBA{200, 200, 200, 255},
		CheckerDark:  color.RGBA{150, 150, 150, 255},
	}

	Playback = PlaybackConfig{
		Interval: 100 * time.Millisecond,
	}

	Export = ExportConfig{
		FrameTime:      2,
		SheetSuffix:    "_sheet.png",
		KeyedGIFSuffix: "_keyed.gif",
	}

	Preview = PreviewConfig{
		MaxWidth:       800,
		MaxHeight:      600,
		X:              16,
		Y:              96,
		GridColor:      color.RGBA{0, 255, 0, 255},
		SelectionColor: color.RGBA{255, 0, 0, 255},
		SelectionWidth: 2,
		DragColor:      color.RGBA{255, 255, 0, 255},
		Background:     color.RGBA{30, 30, 40, 255},
	}

	UI = UIConfig{
		ToolbarHeight:  80,
		Background:     color.RGBA{20, 20, 30, 255},
		StatusColor:    color.RGBA{220, 220, 220, 255},
		ErrorColor:     color.RGBA{255, 100, 100, 255},
		HintColor:      color.RGBA{140, 140, 160, 255},
		StatusSeconds:  3,
		StatusFadeTime: 1,
	}

	Menu = MenuConfig{
		BackgroundColor:   color.RGBA{20, 20, 30, 255},
		TitleColor:        color.RGBA{255, 255, 255, 255},
		TextColorNormal:   color.RGBA{180, 180, 180, 255},
		TextColorSelected: color.RGBA{255, 220, 100, 255},
		TitleY:            160,
		MenuStartY:        260,
		MenuItemHeight:    24,
		MenuItemGap:       16,
	}
}
