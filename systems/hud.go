package systems

import (
	"fmt"
	"image/color"

	"github.com/automoto/gifsprite/components"
	cfg "github.com/automoto/gifsprite/config"
	"github.com/automoto/gifsprite/fonts"
	"github.com/automoto/gifsprite/shared/session"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi/ecs"
)

const (
	hudMargin    = 16
	hudLine      = 20
	swatchSize   = 14
	swatchGap    = 4
	maxSwatches  = 16
	statusBottom = 12
)

// SetStatus shows msg on the status line and restarts its fade.
func SetStatus(e *ecs.ECS, msg string) {
	setStatus(e, msg, false)
}

// SetError shows err on the status line in the error colour.
func SetError(e *ecs.ECS, err error) {
	setStatus(e, errorText(err), true)
}

func setStatus(e *ecs.ECS, msg string, isError bool) {
	entry, _, ok := GetEditor(e)
	if !ok {
		return
	}
	status := components.Status.Get(entry)
	status.Message = msg
	status.IsError = isError
	status.Alpha = 1
	// Hold fully visible, then fade out.
	status.Fade = gween.NewSequence(
		gween.New(1, 1, cfg.UI.StatusSeconds, ease.Linear),
		gween.New(1, 0, cfg.UI.StatusFadeTime, ease.OutQuad),
	)
}

// UpdateStatus advances the status fade.
func UpdateStatus(e *ecs.ECS) {
	entry, _, ok := GetEditor(e)
	if !ok {
		return
	}
	status := components.Status.Get(entry)
	if status.Fade == nil {
		return
	}
	alpha, _, done := status.Fade.Update(1 / float32(ebiten.TPS()))
	status.Alpha = alpha
	if done {
		status.Fade = nil
		status.Message = ""
	}
}

// DrawHUD renders the session summary beside the preview and the status line.
func DrawHUD(e *ecs.ECS, screen *ebiten.Image) {
	entry, editor, ok := GetEditor(e)
	if !ok {
		return
	}
	s := editor.Session
	face := fonts.Regular.Get()
	x := cfg.Preview.X + cfg.Preview.MaxWidth + hudMargin
	y := cfg.Preview.Y + hudLine

	line := func(str string, clr color.Color) {
		text.Draw(screen, str, face, x, y, clr)
		y += hudLine
	}

	line(cfg.ToolTitles[s.Tool.String()], cfg.Menu.TitleColor)
	if !s.Loaded() {
		line("No GIF loaded", cfg.UI.HintColor)
	} else {
		playing := "paused"
		if s.Playback.Playing() {
			playing = "playing"
		}
		line(fmt.Sprintf("Frame %d/%d (%s)", s.Index()+1, s.Store().Len(), playing), cfg.UI.StatusColor)
		b := s.Store().Bounds()
		line(fmt.Sprintf("%dx%d px, source delay %dms", b.Dx(), b.Dy(), s.Store().Delay(s.Index())*10), cfg.UI.StatusColor)
	}

	switch s.Tool {
	case session.ToolPixelate:
		g := s.Grid()
		line(fmt.Sprintf("Pixel size %d", g.PixelSize), cfg.UI.StatusColor)
		line(fmt.Sprintf("Offset %d, %d", g.OffsetX, g.OffsetY), cfg.UI.StatusColor)
		if sel, ok, err := s.Selection(); err == nil && ok {
			bw, bh := sel.Blocks(g)
			line(fmt.Sprintf("Region %dx%d blocks", bw, bh), cfg.UI.StatusColor)
		}
		y += hudLine
		line("Drag: select region", cfg.UI.HintColor)
		line("X: clear region", cfg.UI.HintColor)
	case session.ToolTransparency:
		line(fmt.Sprintf("Tolerance %d", s.Tolerance), cfg.UI.StatusColor)
		line(fmt.Sprintf("%d key colours", s.Keys().Len()), cfg.UI.StatusColor)
		y = drawSwatches(screen, s, x, y)
		y += hudLine
		line("Click: add colour", cfg.UI.HintColor)
		line("C: clear colours", cfg.UI.HintColor)
	}
	line("Space: play/pause", cfg.UI.HintColor)
	line("Left/Right: step", cfg.UI.HintColor)
	line("Esc: back", cfg.UI.HintColor)

	drawStatus(screen, components.Status.Get(entry))
}

func drawSwatches(screen *ebiten.Image, s *session.Session, x, y int) int {
	colors := s.Keys().Colors()
	perRow := 8
	for i, c := range colors {
		if i == maxSwatches {
			break
		}
		sx := x + (i%perRow)*(swatchSize+swatchGap)
		sy := y - hudLine/2 + (i/perRow)*(swatchSize+swatchGap)
		vector.FillRect(screen, float32(sx), float32(sy), swatchSize, swatchSize,
			color.RGBA{c.R, c.G, c.B, 255}, false)
		vector.StrokeRect(screen, float32(sx), float32(sy), swatchSize, swatchSize,
			1, cfg.UI.HintColor, false)
	}
	if len(colors) == 0 {
		return y
	}
	rows := (min(len(colors), maxSwatches) + perRow - 1) / perRow
	return y + rows*(swatchSize+swatchGap)
}

func drawStatus(screen *ebiten.Image, status *components.StatusData) {
	if status.Message == "" || status.Alpha <= 0 {
		return
	}
	clr := cfg.UI.StatusColor
	if status.IsError {
		clr = cfg.UI.ErrorColor
	}
	// color.RGBA is premultiplied, so every channel fades
	clr.A = uint8(float32(clr.A) * status.Alpha)
	clr.R = uint8(float32(clr.R) * status.Alpha)
	clr.G = uint8(float32(clr.G) * status.Alpha)
	clr.B = uint8(float32(clr.B) * status.Alpha)
	text.Draw(screen, status.Message, fonts.Small.Get(), hudMargin, cfg.C.Height-statusBottom, clr)
}
