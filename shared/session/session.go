// Package session is the state of one editor window: the loaded frames, the
// frame being shown, grid settings, the region selection, the key colours and
// the playback timer. Every mutation happens through a Session method so load
// and reset transitions are explicit.
package session

import (
	"fmt"
	"image"
	"time"

	"github.com/automoto/gifsprite/shared/chromakey"
	"github.com/automoto/gifsprite/shared/framestore"
	"github.com/automoto/gifsprite/shared/grid"
	"github.com/automoto/gifsprite/shared/pixelate"
	"github.com/automoto/gifsprite/shared/spritesheet"
	"github.com/automoto/gifsprite/shared/toolerr"
)

// Tool selects what the preview shows and what pointer input does.
type Tool int

const (
	ToolPixelate Tool = iota
	ToolTransparency
)

func (t Tool) String() string {
	switch t {
	case ToolPixelate:
		return "pixelate"
	case ToolTransparency:
		return "transparency"
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

// ParseTool is the inverse of Tool.String.
func ParseTool(name string) (Tool, bool) {
	switch name {
	case "pixelate":
		return ToolPixelate, true
	case "transparency":
		return ToolTransparency, true
	}
	return ToolPixelate, false
}

// Session holds the per-window editing state.
type Session struct {
	Tool      Tool
	Tolerance int
	Style     pixelate.Style
	Checker   chromakey.Checker
	Playback  *Playback

	store *framestore.Store
	index int
	grid  grid.Config

	dragging  bool
	dragStart image.Point
	dragEnd   image.Point
	hasRegion bool
	keys      *chromakey.KeySet
	picking   bool
}

// New returns an empty session for tool.
func New(tool Tool, g grid.Config, interval time.Duration) *Session {
	if g.PixelSize < 1 {
		g.PixelSize = 1
	}
	return &Session{
		Tool:      tool,
		Tolerance: chromakey.DefaultTolerance,
		Style:     pixelate.DefaultStyle,
		Checker:   chromakey.DefaultChecker,
		Playback:  NewPlayback(interval),
		grid:      g,
		keys:      chromakey.NewKeySet(),
	}
}

// Load replaces the frames, shows the first one, drops any selection and
// starts playback. Key colours are kept.
func (s *Session) Load(store *framestore.Store) error {
	if store.Len() == 0 {
		return toolerr.ErrNoAnimation
	}
	s.store = store
	s.index = 0
	s.dragging = false
	s.hasRegion = false
	s.picking = false
	s.Playback.Start()
	return nil
}

// Loaded reports whether frames are present.
func (s *Session) Loaded() bool {
	return s.store.Len() > 0
}

// Store returns the loaded frames, nil before the first load.
func (s *Session) Store() *framestore.Store {
	return s.store
}

// Index returns the current frame index.
func (s *Session) Index() int {
	return s.index
}

// Step moves the current frame by delta, wrapping around.
func (s *Session) Step(delta int) {
	n := s.store.Len()
	if n == 0 {
		return
	}
	s.index = ((s.index+delta)%n + n) % n
}

// Update advances playback by dt and reports whether the frame changed.
func (s *Session) Update(dt time.Duration) bool {
	if !s.Loaded() {
		return false
	}
	ticks := s.Playback.Advance(dt)
	if ticks == 0 {
		return false
	}
	s.Step(ticks)
	return true
}

// TogglePlay starts or stops playback.
func (s *Session) TogglePlay() (bool, error) {
	if !s.Loaded() {
		return false, toolerr.ErrNoAnimation
	}
	return s.Playback.Toggle(), nil
}

// Grid returns the grid settings.
func (s *Session) Grid() grid.Config {
	return s.grid
}

// SetGrid replaces the grid settings. The raw drag points are kept, so an
// existing selection snaps to the new grid.
func (s *Session) SetGrid(c grid.Config) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.grid = c
	return nil
}

// BeginSelection starts a region drag at p.
func (s *Session) BeginSelection(p image.Point) error {
	if !s.Loaded() {
		return toolerr.ErrNoAnimation
	}
	s.dragging = true
	s.hasRegion = true
	s.dragStart = p
	s.dragEnd = p
	return nil
}

// ExtendSelection moves the drag end to p.
func (s *Session) ExtendSelection(p image.Point) {
	if !s.dragging || !s.Loaded() {
		return
	}
	s.dragEnd = p
}

// EndSelection finishes the drag and freezes the ordered corners.
func (s *Session) EndSelection() (grid.Selection, error) {
	if !s.Loaded() {
		return grid.Selection{}, toolerr.ErrNoAnimation
	}
	s.dragging = false
	lo := image.Point{X: min(s.dragStart.X, s.dragEnd.X), Y: min(s.dragStart.Y, s.dragEnd.Y)}
	hi := image.Point{X: max(s.dragStart.X, s.dragEnd.X), Y: max(s.dragStart.Y, s.dragEnd.Y)}
	s.dragStart, s.dragEnd = lo, hi
	sel, ok, err := s.Selection()
	if err != nil {
		return grid.Selection{}, err
	}
	if !ok {
		return grid.Selection{}, toolerr.ErrInvalidSelection
	}
	return sel, nil
}

// Dragging reports whether a region drag is in progress.
func (s *Session) Dragging() bool {
	return s.dragging
}

// ClearSelection forgets the region.
func (s *Session) ClearSelection() {
	s.dragging = false
	s.hasRegion = false
}

// Selection returns the current region aligned to the current grid.
func (s *Session) Selection() (grid.Selection, bool, error) {
	if !s.hasRegion || !s.Loaded() {
		return grid.Selection{}, false, nil
	}
	sel, err := grid.Normalize(s.dragStart, s.dragEnd, s.grid, s.store.Bounds())
	if err != nil {
		return grid.Selection{}, false, err
	}
	return sel, true, nil
}

// Keys returns the key colour set.
func (s *Session) Keys() *chromakey.KeySet {
	return s.keys
}

// Pick adds the colour under p in the current frame to the key set. Points
// outside the frame and colours already present are ignored.
func (s *Session) Pick(p image.Point) (chromakey.RGB, bool, error) {
	if !s.Loaded() {
		return chromakey.RGB{}, false, toolerr.ErrNoAnimation
	}
	c, ok := chromakey.Pick(s.store.Frame(s.index), p.X, p.Y)
	if !ok {
		return chromakey.RGB{}, false, nil
	}
	return c, s.keys.Add(c), nil
}

// BeginPicking starts a pick drag at p. Until EndPicking, ContinuePicking
// keeps adding the colours the pointer passes over.
func (s *Session) BeginPicking(p image.Point) (chromakey.RGB, bool, error) {
	c, added, err := s.Pick(p)
	if err != nil {
		return c, added, err
	}
	s.picking = true
	return c, added, nil
}

// ContinuePicking picks the colour under p while a pick drag is active.
func (s *Session) ContinuePicking(p image.Point) (chromakey.RGB, bool, error) {
	if !s.picking {
		return chromakey.RGB{}, false, nil
	}
	return s.Pick(p)
}

// Picking reports whether a pick drag is in progress.
func (s *Session) Picking() bool {
	return s.picking
}

// EndPicking finishes the pick drag.
func (s *Session) EndPicking() {
	s.picking = false
}

// ClearColors empties the key set.
func (s *Session) ClearColors() {
	s.keys.Clear()
}

// Preview renders the current frame for the active tool.
func (s *Session) Preview() (*image.RGBA, error) {
	if !s.Loaded() {
		return nil, toolerr.ErrNoAnimation
	}
	frame := s.store.Frame(s.index)
	switch s.Tool {
	case ToolTransparency:
		m := chromakey.BuildMask(frame, s.keys.Colors(), s.Tolerance)
		return chromakey.ApplyPreview(frame, m, s.Checker), nil
	default:
		sel, ok, err := s.Selection()
		if err != nil {
			return nil, err
		}
		var sp *grid.Selection
		if ok {
			sp = &sel
		}
		return pixelate.Render(frame, s.grid, sp, s.Style)
	}
}

// Sheet builds the sprite sheet of the selected region.
func (s *Session) Sheet() (*spritesheet.Sheet, spritesheet.Descriptor, error) {
	if !s.Loaded() {
		return nil, spritesheet.Descriptor{}, toolerr.ErrNoAnimation
	}
	sel, ok, err := s.Selection()
	if err != nil {
		return nil, spritesheet.Descriptor{}, err
	}
	if !ok {
		return nil, spritesheet.Descriptor{}, fmt.Errorf("no region selected: %w", toolerr.ErrInvalidSelection)
	}
	return spritesheet.Export(s.store.Frames(), &sel, s.grid)
}

// KeyedFrames builds the chroma-keyed export frames.
func (s *Session) KeyedFrames() ([]*image.NRGBA, error) {
	if !s.Loaded() {
		return nil, toolerr.ErrNoAnimation
	}
	return chromakey.KeyFrames(s.store.Frames(), s.keys.Colors(), s.Tolerance)
}
