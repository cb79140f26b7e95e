package components

import (
	"github.com/automoto/gifsprite/shared/viewport"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
)

// PreviewData is the on-screen texture of the current frame. Image is
// reused between frames and only reallocated when the frame size changes.
type PreviewData struct {
	Image    *ebiten.Image
	Viewport viewport.Viewport
}

var Preview = donburi.NewComponentType[PreviewData]()
