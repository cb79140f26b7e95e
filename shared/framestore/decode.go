package framestore

import (
	"fmt"
	"image"
	"image/gif"
	"io"
	"os"

	"github.com/automoto/gifsprite/shared/toolerr"
	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Load decodes the animated GIF at path.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", path, toolerr.ErrDecode, err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads an animated GIF and composes every frame onto the logical
// screen, honouring disposal methods, so each stored frame is the full picture
// a viewer would show at that point.
func Decode(r io.Reader) (*Store, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, fmt.Errorf("read gif: %w: %w", toolerr.ErrDecode, err)
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("gif has no frames: %w", toolerr.ErrDecode)
	}

	screen := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if screen.Empty() {
		for _, pm := range g.Image {
			screen = screen.Union(pm.Bounds())
		}
		screen.Min = image.Point{}
	}

	canvas := image.NewNRGBA(screen)
	frames := make([]*image.NRGBA, 0, len(g.Image))
	for i, pm := range g.Image {
		disposal := byte(gif.DisposalNone)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}

		var restore *image.NRGBA
		if disposal == gif.DisposalPrevious {
			restore = imaging.Clone(canvas)
		}

		draw.Draw(canvas, pm.Bounds(), pm, pm.Bounds().Min, draw.Over)
		frames = append(frames, imaging.Clone(canvas))

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, pm.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = restore
		}
	}

	return New(frames, g.Delay)
}
