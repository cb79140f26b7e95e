package scenes

import (
	"image/color"
	"path/filepath"
	"strings"
	"sync"

	"github.com/automoto/gifsprite/components"
	cfg "github.com/automoto/gifsprite/config"
	"github.com/automoto/gifsprite/shared/chromakey"
	"github.com/automoto/gifsprite/shared/framestore"
	"github.com/automoto/gifsprite/shared/session"
	"github.com/automoto/gifsprite/shared/spritesheet"
	"github.com/automoto/gifsprite/shared/toolerr"
	"github.com/automoto/gifsprite/systems"
	"github.com/automoto/gifsprite/systems/factory"
	"github.com/automoto/gifsprite/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// jobResult is handed from a background load or export back to the update
// goroutine.
type jobResult struct {
	load  bool
	path  string
	store *framestore.Store
	err   error
}

// EditorScene hosts one tool over a single editor entity.
type EditorScene struct {
	ecs          *ecs.ECS
	sceneChanger SceneChanger
	toolbar      *ui.ToolbarUI
	tool         session.Tool
	initialPath  string
	once         sync.Once
	shouldGoBack bool

	mu      sync.Mutex
	pending *jobResult
}

// NewEditorScene creates an editor for tool. A non-empty path is loaded on
// entry.
func NewEditorScene(sc SceneChanger, tool session.Tool, path string) *EditorScene {
	return &EditorScene{sceneChanger: sc, tool: tool, initialPath: path}
}

func (es *EditorScene) Update() {
	es.once.Do(es.configure)

	es.toolbar.Update()

	// Apply job results on the main goroutine
	es.mu.Lock()
	res := es.pending
	es.pending = nil
	es.mu.Unlock()
	if res != nil {
		if res.load {
			systems.ApplyLoaded(es.ecs, res.path, res.store, res.err)
			if res.err == nil {
				es.toolbar.SetOutputPath(suggestOutput(res.path, es.tool))
			}
		} else {
			systems.ApplySaved(es.ecs, res.path, res.err)
		}
	}

	input, ok := components.Input.First(es.ecs.World)
	if ok {
		components.Input.Get(input).TextFocus = es.toolbar.Focused()
	}

	es.ecs.Update()

	_, editor, _ := systems.GetEditor(es.ecs)
	es.toolbar.Refresh(editor.Session.Playback.Playing(), editor.Busy)

	if es.shouldGoBack {
		es.sceneChanger.ChangeScene(NewMenuScene(es.sceneChanger))
		return
	}
	if ok && !es.toolbar.Focused() && systems.GetAction(components.Input.Get(input), cfg.ActionMenuBack).JustPressed {
		es.shouldGoBack = true
	}
}

func (es *EditorScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	if es.ecs == nil {
		return
	}
	es.ecs.Draw(screen)
	es.toolbar.UI.Draw(screen)
}

func (es *EditorScene) configure() {
	es.ecs = ecs.NewECS(donburi.NewWorld())

	factory.CreateEditor(es.ecs, es.tool, systems.SavedGrid())

	es.ecs.AddSystem(systems.UpdateInput)
	es.ecs.AddSystem(systems.UpdateHitZone)
	es.ecs.AddSystem(systems.UpdateEditor)
	es.ecs.AddSystem(systems.UpdateSelection)
	es.ecs.AddSystem(systems.UpdatePreview)
	es.ecs.AddSystem(systems.UpdateStatus)

	es.ecs.AddRenderer(cfg.Default, systems.DrawPreview)
	es.ecs.AddRenderer(cfg.Default, systems.DrawHUD)

	inPath, outPath := systems.SavedPaths()
	if es.initialPath != "" {
		inPath = es.initialPath
	}
	es.toolbar = ui.NewToolbarUI(es.tool, inPath, outPath, ui.ToolbarCallbacks{
		OnLoad:       es.startLoad,
		OnExport:     es.startExport,
		OnTogglePlay: func() { systems.TogglePlay(es.ecs) },
		OnStep:       func(delta int) { systems.StepFrame(es.ecs, delta) },
		OnAdjustGrid: func(dSize, dX, dY int) { systems.AdjustGrid(es.ecs, dSize, dX, dY) },
		OnClearColor: func() { systems.ClearColors(es.ecs) },
		OnBack:       func() { es.shouldGoBack = true },
	})

	if es.initialPath != "" {
		es.startLoad(es.initialPath)
	}
}

// startLoad decodes path on a goroutine. The editor stays busy, and ignores
// all interaction, until the result is applied.
func (es *EditorScene) startLoad(path string) {
	_, editor, ok := systems.GetEditor(es.ecs)
	if !ok || editor.Busy {
		return
	}
	path = strings.TrimSpace(path)
	if path == "" {
		systems.SetStatus(es.ecs, "Enter a GIF path")
		return
	}
	editor.Busy = true
	systems.SetStatus(es.ecs, "Loading "+path+"...")

	go func() {
		store, err := framestore.Load(path)
		es.finish(&jobResult{load: true, path: path, store: store, err: err})
	}()
}

// startExport snapshots what it needs from the session on the update
// goroutine, then encodes and writes on a goroutine.
func (es *EditorScene) startExport(path string) {
	_, editor, ok := systems.GetEditor(es.ecs)
	if !ok || editor.Busy {
		return
	}
	path = strings.TrimSpace(path)
	if path == "" {
		systems.SetStatus(es.ecs, "Enter an output path")
		return
	}
	s := editor.Session

	var write func() error
	switch es.tool {
	case session.ToolPixelate:
		sheet, desc, err := s.Sheet()
		if err != nil {
			systems.SetError(es.ecs, err)
			return
		}
		desc.Animation.FrameTime = cfg.Export.FrameTime
		path = withExt(path, ".png")
		write = func() error { return spritesheet.Write(path, sheet, desc) }
	case session.ToolTransparency:
		if !s.Loaded() {
			systems.SetError(es.ecs, toolerr.ErrNoAnimation)
			return
		}
		frames := s.Store().Frames()
		keys := s.Keys().Colors()
		tol := s.Tolerance
		path = withExt(path, ".gif")
		write = func() error { return chromakey.Save(path, frames, keys, tol) }
	}

	editor.Busy = true
	systems.SetStatus(es.ecs, "Writing "+path+"...")
	go func() {
		err := write()
		es.finish(&jobResult{path: path, err: err})
	}()
}

func (es *EditorScene) finish(res *jobResult) {
	es.mu.Lock()
	es.pending = res
	es.mu.Unlock()
}

// suggestOutput derives a default output name from the input GIF.
func suggestOutput(in string, tool session.Tool) string {
	base := strings.TrimSuffix(in, filepath.Ext(in))
	if tool == session.ToolTransparency {
		return base + cfg.Export.KeyedGIFSuffix
	}
	return base + cfg.Export.SheetSuffix
}

func withExt(path, ext string) string {
	if strings.EqualFold(filepath.Ext(path), ext) {
		return path
	}
	return path + ext
}
