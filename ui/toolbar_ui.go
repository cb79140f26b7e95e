package ui

import (
	"bytes"
	"image/color"
	"log"

	cfg "github.com/automoto/gifsprite/config"
	"github.com/automoto/gifsprite/shared/session"
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// ToolbarCallbacks are invoked from ebitenui click handlers on the update
// goroutine.
type ToolbarCallbacks struct {
	OnLoad       func(path string)
	OnExport     func(path string)
	OnTogglePlay func()
	OnStep       func(delta int)
	OnAdjustGrid func(dSize, dX, dY int)
	OnClearColor func()
	OnBack       func()
}

// ToolbarUI is the editor's control strip above the preview.
type ToolbarUI struct {
	UI *ebitenui.UI

	tool session.Tool
	cb   ToolbarCallbacks

	inputPath  *widget.TextInput
	outputPath *widget.TextInput
	playBtn    *widget.Button
	busyBtns   []*widget.Button

	normalFace text.Face
	smallFace  text.Face
}

func NewToolbarUI(tool session.Tool, inPath, outPath string, cb ToolbarCallbacks) *ToolbarUI {
	tb := &ToolbarUI{tool: tool, cb: cb}
	tb.loadFonts()
	tb.buildUI()
	tb.inputPath.SetText(inPath)
	tb.outputPath.SetText(outPath)
	return tb
}

func (tb *ToolbarUI) loadFonts() {
	fontSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Fatalf("failed to load UI font: %v", err)
	}

	tb.normalFace = &text.GoTextFace{Source: fontSource, Size: 13}
	tb.smallFace = &text.GoTextFace{Source: fontSource, Size: 11}
}

func (tb *ToolbarUI) buildUI() {
	// No background on the root so the preview drawn underneath stays visible
	rootContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	bar := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(cfg.UI.Background)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(8)),
			widget.RowLayoutOpts.Spacing(6),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(cfg.C.Width, cfg.UI.ToolbarHeight),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)

	bar.AddChild(tb.buildFileRow())
	bar.AddChild(tb.buildControlRow())

	rootContainer.AddChild(bar)

	tb.UI = &ebitenui.UI{Container: rootContainer}
}

func (tb *ToolbarUI) buildFileRow() *widget.Container {
	row := newRow()

	row.AddChild(tb.label("GIF:"))
	tb.inputPath = tb.pathInput("input.gif")
	row.AddChild(tb.inputPath)
	row.AddChild(tb.button("Load", 60, func() {
		if tb.cb.OnLoad != nil {
			tb.cb.OnLoad(tb.inputPath.GetText())
		}
	}))

	outLabel := "Sheet:"
	exportLabel := "Export"
	if tb.tool == session.ToolTransparency {
		outLabel = "Save as:"
		exportLabel = "Save GIF"
	}
	row.AddChild(tb.label(outLabel))
	tb.outputPath = tb.pathInput("output")
	row.AddChild(tb.outputPath)
	row.AddChild(tb.button(exportLabel, 80, func() {
		if tb.cb.OnExport != nil {
			tb.cb.OnExport(tb.outputPath.GetText())
		}
	}))

	back := tb.button("Back", 60, func() {
		if tb.cb.OnBack != nil {
			tb.cb.OnBack()
		}
	})
	row.AddChild(back)
	return row
}

func (tb *ToolbarUI) buildControlRow() *widget.Container {
	row := newRow()

	row.AddChild(tb.button("<", 28, func() { tb.step(-1) }))
	tb.playBtn = tb.button("Pause", 60, func() {
		if tb.cb.OnTogglePlay != nil {
			tb.cb.OnTogglePlay()
		}
	})
	row.AddChild(tb.playBtn)
	row.AddChild(tb.button(">", 28, func() { tb.step(1) }))

	switch tb.tool {
	case session.ToolPixelate:
		tb.addStepper(row, "Pixel size", 1, 0, 0)
		tb.addStepper(row, "Offset X", 0, 1, 0)
		tb.addStepper(row, "Offset Y", 0, 0, 1)
		row.AddChild(tb.hint("(Shift: x10)"))
	case session.ToolTransparency:
		row.AddChild(tb.button("Clear Colors", 100, func() {
			if tb.cb.OnClearColor != nil {
				tb.cb.OnClearColor()
			}
		}))
	}
	return row
}

func (tb *ToolbarUI) addStepper(row *widget.Container, name string, dSize, dX, dY int) {
	row.AddChild(tb.label(name))
	row.AddChild(tb.button("-", 24, func() { tb.adjust(-dSize, -dX, -dY) }))
	row.AddChild(tb.button("+", 24, func() { tb.adjust(dSize, dX, dY) }))
}

func (tb *ToolbarUI) step(delta int) {
	if tb.cb.OnStep != nil {
		tb.cb.OnStep(delta)
	}
}

func (tb *ToolbarUI) adjust(dSize, dX, dY int) {
	if tb.cb.OnAdjustGrid != nil {
		tb.cb.OnAdjustGrid(dSize, dX, dY)
	}
}

func newRow() *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(6),
		)),
	)
}

func (tb *ToolbarUI) label(s string) *widget.Label {
	return widget.NewLabel(
		widget.LabelOpts.Text(s, &tb.normalFace, &widget.LabelColor{
			Idle: color.RGBA{200, 200, 200, 255},
		}),
	)
}

func (tb *ToolbarUI) hint(s string) *widget.Label {
	return widget.NewLabel(
		widget.LabelOpts.Text(s, &tb.smallFace, &widget.LabelColor{
			Idle: cfg.UI.HintColor,
		}),
	)
}

func (tb *ToolbarUI) pathInput(placeholder string) *widget.TextInput {
	return widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(widget.WidgetOpts.MinSize(220, 22)),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     image.NewNineSliceColor(color.RGBA{50, 50, 70, 255}),
			Disabled: image.NewNineSliceColor(color.RGBA{40, 40, 50, 255}),
		}),
		widget.TextInputOpts.Face(&tb.normalFace),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:          color.RGBA{255, 255, 255, 255},
			Disabled:      color.RGBA{128, 128, 128, 255},
			Caret:         color.RGBA{255, 255, 255, 255},
			DisabledCaret: color.RGBA{128, 128, 128, 255},
		}),
		widget.TextInputOpts.Placeholder(placeholder),
		widget.TextInputOpts.Padding(widget.NewInsetsSimple(4)),
	)
}

func (tb *ToolbarUI) button(label string, width int, onClick func()) *widget.Button {
	btn := widget.NewButton(
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(width, 22)),
		widget.ButtonOpts.Image(&widget.ButtonImage{
			Idle:     image.NewNineSliceColor(color.RGBA{60, 60, 80, 255}),
			Hover:    image.NewNineSliceColor(color.RGBA{80, 80, 100, 255}),
			Pressed:  image.NewNineSliceColor(color.RGBA{40, 40, 60, 255}),
			Disabled: image.NewNineSliceColor(color.RGBA{40, 40, 40, 255}),
		}),
		widget.ButtonOpts.Text(label, &tb.normalFace, &widget.ButtonTextColor{
			Idle:     color.RGBA{255, 255, 255, 255},
			Hover:    color.RGBA{255, 255, 200, 255},
			Pressed:  color.RGBA{200, 200, 200, 255},
			Disabled: color.RGBA{100, 100, 100, 255},
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
	tb.busyBtns = append(tb.busyBtns, btn)
	return btn
}

// Refresh mirrors the session state into the widgets.
func (tb *ToolbarUI) Refresh(playing, busy bool) {
	if playing {
		tb.playBtn.Text().Label = "Pause"
	} else {
		tb.playBtn.Text().Label = "Play"
	}
	for _, btn := range tb.busyBtns {
		btn.GetWidget().Disabled = busy
	}
	tb.inputPath.GetWidget().Disabled = busy
	tb.outputPath.GetWidget().Disabled = busy
}

// SetOutputPath replaces the output path if the user has not typed one.
func (tb *ToolbarUI) SetOutputPath(path string) {
	if tb.outputPath.GetText() == "" {
		tb.outputPath.SetText(path)
	}
}

// Focused reports whether a text input has keyboard focus, so editor
// shortcuts should be ignored.
func (tb *ToolbarUI) Focused() bool {
	return tb.inputPath.IsFocused() || tb.outputPath.IsFocused()
}

func (tb *ToolbarUI) Update() {
	tb.UI.Update()
}
