package systems

import (
	"encoding/json"
	"log"

	"github.com/automoto/gifsprite/components"
	cfg "github.com/automoto/gifsprite/config"
	"github.com/automoto/gifsprite/shared/grid"
	"github.com/quasilyte/gdata"
)

// SavedSettings represents the settings data stored on disk
type SavedSettings struct {
	PixelSize  int    `json:"pixelSize"`
	OffsetX    int    `json:"offsetX"`
	OffsetY    int    `json:"offsetY"`
	LastTool   string `json:"lastTool"`
	InputPath  string `json:"inputPath"`
	OutputPath string `json:"outputPath"`
}

var gdataManager *gdata.Manager
var gdataInitialized bool

// current mirrors what is on disk so partial updates keep the other fields.
var current *SavedSettings

// InitPersistence initializes the gdata manager for settings storage
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: "gifsprite",
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return err
	}
	gdataManager = m
	gdataInitialized = true
	return nil
}

// LoadSettings loads settings from disk
func LoadSettings() (*SavedSettings, error) {
	if !gdataInitialized || gdataManager == nil {
		return nil, nil
	}

	data, err := gdataManager.LoadItem("settings")
	if err != nil {
		log.Printf("Warning: Could not load settings: %v", err)
		return nil, nil
	}
	if len(data) == 0 {
		// No saved settings yet, use defaults
		return nil, nil
	}

	var settings SavedSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		log.Printf("Warning: Could not parse saved settings: %v", err)
		return nil, err
	}

	current = &settings
	return &settings, nil
}

// SaveSettings saves settings to disk
func SaveSettings(s *SavedSettings) error {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		log.Printf("Warning: Could not serialize settings: %v", err)
		return err
	}

	if err := gdataManager.SaveItem("settings", data); err != nil {
		log.Printf("Warning: Could not save settings: %v", err)
		return err
	}
	current = s
	return nil
}

// SavedGrid returns the persisted grid, clamped to the editor limits, or the
// default grid.
func SavedGrid() grid.Config {
	g := grid.Config{PixelSize: cfg.Editor.DefaultPixelSize}
	if current != nil && current.PixelSize > 0 {
		g = grid.Config{
			PixelSize: current.PixelSize,
			OffsetX:   current.OffsetX,
			OffsetY:   current.OffsetY,
		}
	}
	return g.Clamp(cfg.Editor.MinPixelSize, cfg.Editor.MaxPixelSize, cfg.Editor.MaxOffset)
}

// SavedPaths returns the last used input and output paths.
func SavedPaths() (in, out string) {
	if current == nil {
		return "", ""
	}
	return current.InputPath, current.OutputPath
}

// SavedTool returns the name of the last opened tool.
func SavedTool() string {
	if current == nil {
		return ""
	}
	return current.LastTool
}

// SaveEditorSettings saves the grid and paths of the open editor
func SaveEditorSettings(editor *components.EditorData) {
	saved := &SavedSettings{}
	if current != nil {
		*saved = *current
	}
	g := editor.Session.Grid()
	saved.PixelSize = g.PixelSize
	saved.OffsetX = g.OffsetX
	saved.OffsetY = g.OffsetY
	saved.LastTool = editor.Session.Tool.String()
	if editor.InputPath != "" {
		saved.InputPath = editor.InputPath
	}
	if editor.OutputPath != "" {
		saved.OutputPath = editor.OutputPath
	}
	_ = SaveSettings(saved)
}
