package session

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/automoto/gifsprite/shared/chromakey"
	"github.com/automoto/gifsprite/shared/framestore"
	"github.com/automoto/gifsprite/shared/grid"
	"github.com/automoto/gifsprite/shared/toolerr"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, n, w, h int) *framestore.Store {
	t.Helper()
	frames := make([]*image.NRGBA, n)
	for i := range frames {
		img := image.NewNRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				img.SetNRGBA(x, y, color.NRGBA{R: uint8(10 * (i + 1)), G: uint8(x), B: uint8(y), A: 255})
			}
		}
		frames[i] = img
	}
	s, err := framestore.New(frames, nil)
	require.NoError(t, err)
	return s
}

func TestPlaybackTicks(t *testing.T) {
	p := NewPlayback(100 * time.Millisecond)
	require.Zero(t, p.Advance(time.Second), "stopped timer ticked")

	p.Start()
	require.Zero(t, p.Advance(60*time.Millisecond))
	require.Equal(t, 1, p.Advance(60*time.Millisecond))
	require.Equal(t, 2, p.Advance(250*time.Millisecond))
}

func TestTickDurationAddsUpExactly(t *testing.T) {
	var total time.Duration
	for n := uint64(0); n < 60; n++ {
		total += TickDuration(n, 60)
	}
	require.Equal(t, time.Second, total)
	require.Zero(t, TickDuration(0, 0))

	// Six 60 TPS ticks are exactly one 100ms frame.
	p := NewPlayback(100 * time.Millisecond)
	p.Start()
	ticks := 0
	for n := uint64(0); n < 6; n++ {
		ticks += p.Advance(TickDuration(n, 60))
	}
	require.Equal(t, 1, ticks)
}

func TestPlaybackStopCancelsPendingTick(t *testing.T) {
	p := NewPlayback(100 * time.Millisecond)
	p.Start()
	gen := p.Generation()
	p.Advance(99 * time.Millisecond)
	p.Stop()

	require.NotEqual(t, gen, p.Generation())
	require.Zero(t, p.Advance(time.Millisecond), "tick delivered after Stop")

	p.Start()
	require.Zero(t, p.Advance(time.Millisecond), "partial period survived restart")
}

func TestSessionRequiresAnimation(t *testing.T) {
	s := New(ToolPixelate, grid.Config{PixelSize: 10}, 0)

	require.ErrorIs(t, s.BeginSelection(image.Pt(1, 1)), toolerr.ErrNoAnimation)
	_, _, err := s.Pick(image.Pt(0, 0))
	require.ErrorIs(t, err, toolerr.ErrNoAnimation)
	_, _, err = s.Sheet()
	require.ErrorIs(t, err, toolerr.ErrNoAnimation)
	_, err = s.Preview()
	require.ErrorIs(t, err, toolerr.ErrNoAnimation)
	_, err = s.KeyedFrames()
	require.ErrorIs(t, err, toolerr.ErrNoAnimation)
	_, err = s.TogglePlay()
	require.ErrorIs(t, err, toolerr.ErrNoAnimation)
}

func TestSessionSelectionLifecycle(t *testing.T) {
	s := New(ToolPixelate, grid.Config{PixelSize: 4}, 0)
	require.NoError(t, s.Load(testStore(t, 2, 16, 16)))
	require.True(t, s.Playback.Playing(), "playback not started on load")

	require.NoError(t, s.BeginSelection(image.Pt(9, 9)))
	s.ExtendSelection(image.Pt(2, 3))
	sel, err := s.EndSelection()
	require.NoError(t, err)
	require.Equal(t, grid.Selection{X1: 0, Y1: 0, X2: 12, Y2: 12}, sel)
	require.False(t, s.Dragging())

	sheet, desc, err := s.Sheet()
	require.NoError(t, err)
	require.Equal(t, 4, sheet.CellSize)
	require.Equal(t, 2, sheet.Frames)
	require.Equal(t, []int{0, 1}, desc.Animation.Frames)

	// A new load drops the selection.
	require.NoError(t, s.Load(testStore(t, 1, 8, 8)))
	_, ok, _ := s.Selection()
	require.False(t, ok, "selection survived a new load")
	_, _, err = s.Sheet()
	require.ErrorIs(t, err, toolerr.ErrInvalidSelection)
}

func TestSessionPreviewFollowsTool(t *testing.T) {
	store := testStore(t, 1, 8, 8)

	px := New(ToolPixelate, grid.Config{PixelSize: 4}, 0)
	require.NoError(t, px.Load(store))
	img, err := px.Preview()
	require.NoError(t, err)
	require.Equal(t, store.Bounds(), img.Bounds())

	tr := New(ToolTransparency, grid.Config{PixelSize: 1}, 0)
	require.NoError(t, tr.Load(store))
	_, added, err := tr.Pick(image.Pt(3, 3))
	require.NoError(t, err)
	require.True(t, added)
	img, err = tr.Preview()
	require.NoError(t, err)
	// The keyed pixel shows the checkerboard instead of the frame.
	require.Equal(t, color.RGBA{200, 200, 200, 255}, img.RGBAAt(3, 3))
}

func TestSessionKeyColorsSurviveNavigation(t *testing.T) {
	s := New(ToolTransparency, grid.Config{PixelSize: 1}, 0)
	require.NoError(t, s.Load(testStore(t, 3, 4, 4)))

	c, added, err := s.Pick(image.Pt(1, 2))
	require.NoError(t, err)
	require.True(t, added)
	require.Equal(t, chromakey.RGB{R: 10, G: 1, B: 2}, c)

	_, added, _ = s.Pick(image.Pt(1, 2))
	require.False(t, added, "duplicate pick added")
	_, added, _ = s.Pick(image.Pt(40, 2))
	require.False(t, added, "out of bounds pick added")

	s.Step(1)
	s.Update(time.Second)
	require.Equal(t, 1, s.Keys().Len(), "key colours changed on navigation")

	frames, err := s.KeyedFrames()
	require.NoError(t, err)
	require.Equal(t, color.NRGBA{A: 255}, frames[0].NRGBAAt(1, 2))

	s.ClearColors()
	require.Zero(t, s.Keys().Len())
}

func TestSessionPickDragAddsEveryColour(t *testing.T) {
	s := New(ToolTransparency, grid.Config{PixelSize: 1}, 0)
	require.NoError(t, s.Load(testStore(t, 1, 30, 30)))

	_, added, err := s.ContinuePicking(image.Pt(0, 0))
	require.NoError(t, err)
	require.False(t, added, "picked without an active drag")

	_, added, err = s.BeginPicking(image.Pt(0, 0))
	require.NoError(t, err)
	require.True(t, added)
	require.True(t, s.Picking())

	for _, p := range []image.Point{{10, 0}, {20, 0}, {20, 0}, {20, 10}} {
		_, _, err := s.ContinuePicking(p)
		require.NoError(t, err)
	}
	require.Equal(t, 4, s.Keys().Len())

	s.EndPicking()
	_, added, _ = s.ContinuePicking(image.Pt(29, 29))
	require.False(t, added, "picked after the drag ended")
	require.Equal(t, 4, s.Keys().Len())
}

func TestSessionStepWraps(t *testing.T) {
	s := New(ToolPixelate, grid.Config{PixelSize: 1}, 100*time.Millisecond)
	require.NoError(t, s.Load(testStore(t, 3, 2, 2)))

	s.Step(-1)
	require.Equal(t, 2, s.Index())
	require.True(t, s.Update(100*time.Millisecond), "playback tick did not advance")
	require.Equal(t, 0, s.Index())

	playing, err := s.TogglePlay()
	require.NoError(t, err)
	require.False(t, playing)
	require.False(t, s.Update(time.Second), "stopped session advanced")
}

func TestSetGridResnapsSelection(t *testing.T) {
	s := New(ToolPixelate, grid.Config{PixelSize: 4}, 0)
	require.NoError(t, s.Load(testStore(t, 1, 16, 16)))
	require.NoError(t, s.BeginSelection(image.Pt(5, 5)))
	_, err := s.EndSelection()
	require.NoError(t, err)

	require.ErrorIs(t, s.SetGrid(grid.Config{PixelSize: 0}), toolerr.ErrInvalidGridConfig)
	require.NoError(t, s.SetGrid(grid.Config{PixelSize: 8}))

	sel, ok, err := s.Selection()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, grid.Selection{X1: 0, Y1: 0, X2: 8, Y2: 8}, sel)
}

func TestParseTool(t *testing.T) {
	for _, tool := range []Tool{ToolPixelate, ToolTransparency} {
		got, ok := ParseTool(tool.String())
		require.True(t, ok)
		require.Equal(t, tool, got)
	}
	_, ok := ParseTool("sharpen")
	require.False(t, ok)
}
