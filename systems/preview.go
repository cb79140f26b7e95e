package systems

import (
	"image"
	"log"

	"github.com/automoto/gifsprite/components"
	cfg "github.com/automoto/gifsprite/config"
	"github.com/automoto/gifsprite/shared/viewport"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// UpdatePreview re-renders the current frame into the preview texture when
// the editor state changed.
func UpdatePreview(e *ecs.ECS) {
	entry, editor, ok := GetEditor(e)
	if !ok || !editor.Dirty || !editor.Session.Loaded() {
		return
	}
	editor.Dirty = false

	rgba, err := editor.Session.Preview()
	if err != nil {
		SetError(e, err)
		return
	}
	preview := components.Preview.Get(entry)
	uploadPreview(preview, rgba)
}

func uploadPreview(preview *components.PreviewData, rgba *image.RGBA) {
	b := rgba.Bounds()
	w, h := b.Dx(), b.Dy()

	if preview.Image != nil {
		if sz := preview.Image.Bounds().Size(); sz.X != w || sz.Y != h {
			preview.Image.Deallocate()
			preview.Image = nil
		}
	}
	if preview.Image == nil {
		preview.Image = ebiten.NewImage(w, h)
		preview.Viewport = viewport.Fit(b, cfg.Preview.MaxWidth, cfg.Preview.MaxHeight,
			image.Pt(cfg.Preview.X, cfg.Preview.Y))
		log.Printf("[preview] allocated %dx%d texture, scale %.3f", w, h, preview.Viewport.Scale)
	}

	pix := rgba.Pix
	if rgba.Stride != 4*w {
		pix = make([]byte, 0, 4*w*h)
		for y := 0; y < h; y++ {
			off := y * rgba.Stride
			pix = append(pix, rgba.Pix[off:off+4*w]...)
		}
	}
	preview.Image.WritePixels(pix)
}

// DrawPreview draws the preview area and the current frame scaled to fit.
func DrawPreview(e *ecs.ECS, screen *ebiten.Image) {
	entry, editor, ok := GetEditor(e)
	if !ok {
		return
	}
	vector.FillRect(
		screen,
		float32(cfg.Preview.X), float32(cfg.Preview.Y),
		float32(cfg.Preview.MaxWidth), float32(cfg.Preview.MaxHeight),
		cfg.Preview.Background,
		false,
	)

	preview := components.Preview.Get(entry)
	if preview.Image == nil || !editor.Session.Loaded() {
		return
	}
	v := preview.Viewport
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(v.Scale, v.Scale)
	op.GeoM.Translate(float64(v.Screen.Min.X), float64(v.Screen.Min.Y))
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(preview.Image, op)

	// Live drag outline in screen space, since the scaled overlay can be
	// thinner than a screen pixel.
	if editor.Session.Dragging() {
		if sel, ok, err := editor.Session.Selection(); err == nil && ok {
			r := v.ToScreen(sel.Rect())
			vector.StrokeRect(screen,
				float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()),
				1, cfg.Preview.DragColor, false)
		}
	}
}
