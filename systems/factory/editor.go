package factory

import (
	"image"

	"github.com/automoto/gifsprite/archetypes"
	"github.com/automoto/gifsprite/components"
	cfg "github.com/automoto/gifsprite/config"
	"github.com/automoto/gifsprite/shared/chromakey"
	"github.com/automoto/gifsprite/shared/grid"
	"github.com/automoto/gifsprite/shared/pixelate"
	"github.com/automoto/gifsprite/shared/session"
	"github.com/automoto/gifsprite/shared/viewport"
	"github.com/automoto/gifsprite/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const hitCellSize = 16

// CreateEditor spawns the single editor entity for tool.
func CreateEditor(ecs *ecs.ECS, tool session.Tool, g grid.Config) *donburi.Entry {
	editor := archetypes.Editor.Spawn(ecs)

	s := session.New(tool, g, cfg.Playback.Interval)
	s.Tolerance = cfg.Keying.Tolerance
	s.Style = pixelate.Style{
		GridColor:      cfg.Preview.GridColor,
		SelectionColor: cfg.Preview.SelectionColor,
		SelectionWidth: cfg.Preview.SelectionWidth,
	}
	s.Checker = chromakey.Checker{
		Tile:  cfg.Keying.CheckerTile,
		Light: cfg.Keying.CheckerLight,
		Dark:  cfg.Keying.CheckerDark,
	}
	components.Editor.SetValue(editor, components.EditorData{Session: s})

	origin := image.Pt(cfg.Preview.X, cfg.Preview.Y)
	components.Preview.SetValue(editor, components.PreviewData{
		Viewport: viewport.Viewport{Screen: image.Rectangle{Min: origin, Max: origin}},
	})

	space := resolv.NewSpace(cfg.C.Width, cfg.C.Height, hitCellSize, hitCellSize)
	previewObj := resolv.NewObject(float64(origin.X), float64(origin.Y), 1, 1, tags.ResolvPreview)
	pointerObj := resolv.NewObject(0, 0, 1, 1, tags.ResolvPointer)
	previewObj.Data = editor
	space.Add(previewObj, pointerObj)
	components.HitZone.SetValue(editor, components.HitZoneData{
		Space:   space,
		Preview: previewObj,
		Pointer: pointerObj,
	})

	components.Status.SetValue(editor, components.StatusData{})

	return editor
}
