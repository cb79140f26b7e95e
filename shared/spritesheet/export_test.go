package spritesheet

import (
	"bytes"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/automoto/gifsprite/shared/grid"
	"github.com/automoto/gifsprite/shared/toolerr"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestTargetSize(t *testing.T) {
	for n, want := range map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 4: 4, 5: 8, 16: 16, 17: 32, 100: 128} {
		got := TargetSize(n)
		if got != want {
			t.Errorf("TargetSize(%d) = %d, want %d", n, got, want)
		}
		if got&(got-1) != 0 {
			t.Errorf("TargetSize(%d) = %d is not a power of two", n, got)
		}
		if n > 1 && !(got >= n && got/2 < n) {
			t.Errorf("TargetSize(%d) = %d is not the smallest power of two", n, got)
		}
	}
}

func TestExportSolidTwoByTwo(t *testing.T) {
	grey := color.NRGBA{R: 10, G: 10, B: 10, A: 255}
	frames := []*image.NRGBA{solid(2, 2, grey)}
	sel := grid.Selection{X1: 0, Y1: 0, X2: 2, Y2: 2}

	sheet, desc, err := Export(frames, &sel, grid.Config{PixelSize: 1})
	if err != nil {
		t.Fatal(err)
	}
	if sheet.CellSize != 2 || sheet.Pad != (image.Point{}) {
		t.Errorf("cell %d pad %v, want 2 and (0,0)", sheet.CellSize, sheet.Pad)
	}
	if b := sheet.Image.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Fatalf("sheet is %v, want 2x2", b)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := sheet.Image.NRGBAAt(x, y); got != grey {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, grey)
			}
		}
	}
	if desc.Animation.FrameTime != 2 || len(desc.Animation.Frames) != 1 || desc.Animation.Frames[0] != 0 {
		t.Errorf("descriptor = %+v", desc)
	}
}

func TestExportBlackCornerBecomesTransparent(t *testing.T) {
	img := solid(2, 2, color.NRGBA{R: 10, G: 10, B: 10, A: 255})
	img.SetNRGBA(1, 1, color.NRGBA{A: 255})
	sel := grid.Selection{X1: 0, Y1: 0, X2: 2, Y2: 2}

	sheet, _, err := Export([]*image.NRGBA{img}, &sel, grid.Config{PixelSize: 1})
	if err != nil {
		t.Fatal(err)
	}
	if a := sheet.Image.NRGBAAt(1, 1).A; a != 0 {
		t.Errorf("black corner alpha = %d, want 0", a)
	}
	if a := sheet.Image.NRGBAAt(0, 0).A; a != 255 {
		t.Errorf("grey pixel alpha = %d, want 255", a)
	}
}

func TestExportCentersAndPads(t *testing.T) {
	red := color.NRGBA{R: 200, G: 30, B: 30, A: 255}
	frames := []*image.NRGBA{solid(8, 8, red), solid(8, 8, red), solid(8, 8, red)}
	// 3x1 blocks -> 4x4 cell, pad (0, 1): odd slack on x goes to the right.
	sel := grid.Selection{X1: 1, Y1: 2, X2: 4, Y2: 3}

	sheet, desc, err := Export(frames, &sel, grid.Config{PixelSize: 1})
	if err != nil {
		t.Fatal(err)
	}
	if sheet.CellSize != 4 || sheet.Pad != image.Pt(0, 1) {
		t.Fatalf("cell %d pad %v, want 4 and (0,1)", sheet.CellSize, sheet.Pad)
	}
	if b := sheet.Image.Bounds(); b.Dx() != 4 || b.Dy() != 12 {
		t.Fatalf("sheet is %v, want 4x12", b)
	}
	for f := 0; f < 3; f++ {
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				got := sheet.Image.NRGBAAt(x, f*4+y)
				inside := x < 3 && y == 1
				if inside && got != red {
					t.Errorf("frame %d (%d,%d) = %v, want %v", f, x, y, got, red)
				}
				if !inside && got.A != 0 {
					t.Errorf("frame %d padding (%d,%d) alpha = %d, want 0", f, x, y, got.A)
				}
			}
		}
	}
	if want := []int{0, 1, 2}; len(desc.Animation.Frames) != 3 || desc.Animation.Frames[2] != want[2] {
		t.Errorf("frames = %v, want %v", desc.Animation.Frames, want)
	}
}

func TestExportCollapsesBlocks(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(1 + x), G: uint8(1 + y), B: 1, A: 255})
		}
	}
	sel := grid.Selection{X1: 0, Y1: 0, X2: 8, Y2: 4}
	sheet, _, err := Export([]*image.NRGBA{img}, &sel, grid.Config{PixelSize: 4})
	if err != nil {
		t.Fatal(err)
	}
	// 2x1 blocks -> 2x2 cell with the row at y=0.
	if sheet.CellSize != 2 {
		t.Fatalf("cell = %d, want 2", sheet.CellSize)
	}
	if got := sheet.Image.NRGBAAt(0, 0); got.R != 1 || got.G != 1 {
		t.Errorf("block 0 = %v, want top-left sample (1,1)", got)
	}
	if got := sheet.Image.NRGBAAt(1, 0); got.R != 5 || got.G != 1 {
		t.Errorf("block 1 = %v, want top-left sample (5,1)", got)
	}
	if got := sheet.Image.NRGBAAt(0, 1); got.A != 0 {
		t.Errorf("padding row alpha = %d, want 0", got.A)
	}
}

func TestExportStretchesClippedRegion(t *testing.T) {
	// 25px wide frame, P=10: the aligned region ends at x=30, so the crop is
	// clipped to 25px and stretched over 3 blocks, sampling x = 0, 8, 16.
	img := image.NewNRGBA(image.Rect(0, 0, 25, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 25; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(10 + 10*x), G: 1, B: 1, A: 255})
		}
	}
	sel := grid.Selection{X1: 0, Y1: 0, X2: 30, Y2: 10}

	sheet, _, err := Export([]*image.NRGBA{img}, &sel, grid.Config{PixelSize: 10})
	if err != nil {
		t.Fatal(err)
	}
	if sheet.CellSize != 4 || sheet.Pad != image.Pt(0, 1) {
		t.Fatalf("cell %d pad %v, want 4 and (0,1)", sheet.CellSize, sheet.Pad)
	}
	for x, want := range []uint8{10, 90, 170} {
		if got := sheet.Image.NRGBAAt(x, 1); got.R != want || got.A != 255 {
			t.Errorf("block %d = %v, want R=%d opaque", x, got, want)
		}
	}
}

func TestExportErrors(t *testing.T) {
	frames := []*image.NRGBA{solid(4, 4, color.NRGBA{R: 1, A: 255})}
	tests := []struct {
		name   string
		frames []*image.NRGBA
		sel    *grid.Selection
		cfg    grid.Config
		want   error
	}{
		{"no frames", nil, &grid.Selection{X2: 1, Y2: 1}, grid.Config{PixelSize: 1}, toolerr.ErrNoAnimation},
		{"no selection", frames, nil, grid.Config{PixelSize: 1}, toolerr.ErrInvalidSelection},
		{"zero area", frames, &grid.Selection{X1: 1, Y1: 1, X2: 1, Y2: 3}, grid.Config{PixelSize: 1}, toolerr.ErrInvalidSelection},
		{"smaller than a block", frames, &grid.Selection{X2: 2, Y2: 2}, grid.Config{PixelSize: 4}, toolerr.ErrInvalidSelection},
		{"outside frame", frames, &grid.Selection{X1: 10, Y1: 10, X2: 12, Y2: 12}, grid.Config{PixelSize: 1}, toolerr.ErrInvalidSelection},
		{"zero pixel size", frames, &grid.Selection{X2: 2, Y2: 2}, grid.Config{}, toolerr.ErrInvalidGridConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Export(tt.frames, tt.sel, tt.cfg)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestWriteProducesSheetAndDescriptor(t *testing.T) {
	frames := []*image.NRGBA{solid(2, 2, color.NRGBA{R: 9, A: 255}), solid(2, 2, color.NRGBA{G: 9, A: 255})}
	sel := grid.Selection{X2: 2, Y2: 2}
	sheet, desc, err := Export(frames, &sel, grid.Config{PixelSize: 1})
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "walk.png")
	if err := Write(path, sheet, desc); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("sheet missing: %v", err)
	}
	raw, err := os.ReadFile(path + MetaSuffix)
	if err != nil {
		t.Fatalf("descriptor missing: %v", err)
	}

	var got map[string]map[string]any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatal(err)
	}
	anim := got["animation"]
	if anim["frametime"] != float64(2) {
		t.Errorf("frametime = %v, want 2", anim["frametime"])
	}
	if fr, ok := anim["frames"].([]any); !ok || len(fr) != 2 {
		t.Errorf("frames = %v", anim["frames"])
	}
}

func TestDescriptorEncode(t *testing.T) {
	var buf bytes.Buffer
	if err := NewDescriptor(3, DefaultFrameTime).Encode(&buf); err != nil {
		t.Fatal(err)
	}
	var d Descriptor
	if err := json.Unmarshal(buf.Bytes(), &d); err != nil {
		t.Fatal(err)
	}
	if d.Animation.FrameTime != 2 || len(d.Animation.Frames) != 3 || d.Animation.Frames[1] != 1 {
		t.Errorf("decoded %+v", d)
	}
}
