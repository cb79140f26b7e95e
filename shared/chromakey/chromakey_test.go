package chromakey

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"github.com/automoto/gifsprite/shared/toolerr"
)

func frameOf(px ...color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, len(px), 1))
	for x, c := range px {
		img.SetNRGBA(x, 0, c)
	}
	return img
}

func opaque(r, g, b uint8) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

func TestKeySetOrderAndDuplicates(t *testing.T) {
	k := NewKeySet()
	if !k.Add(RGB{255, 0, 0}) || !k.Add(RGB{0, 255, 0}) {
		t.Fatal("new colours rejected")
	}
	if k.Add(RGB{255, 0, 0}) {
		t.Error("duplicate accepted")
	}
	got := k.Colors()
	if len(got) != 2 || got[0] != (RGB{255, 0, 0}) || got[1] != (RGB{0, 255, 0}) {
		t.Errorf("colors = %v", got)
	}
	if s := k.String(); s != "[(255, 0, 0), (0, 255, 0)]" {
		t.Errorf("String = %q", s)
	}
	k.Clear()
	if k.Len() != 0 {
		t.Errorf("Len after Clear = %d", k.Len())
	}
}

func TestMaskTolerance(t *testing.T) {
	frame := frameOf(opaque(252, 2, 3), opaque(250, 0, 0), opaque(249, 0, 0), opaque(255, 6, 0), opaque(0, 0, 255))
	m := BuildMask(frame, []RGB{{255, 0, 0}}, DefaultTolerance)

	want := []bool{true, true, false, false, false}
	for x, w := range want {
		if m.At(x, 0) != w {
			t.Errorf("pixel %d (%v) masked = %v, want %v", x, frame.NRGBAAt(x, 0), m.At(x, 0), w)
		}
	}
}

func TestMaskUnionIsMonotonic(t *testing.T) {
	frame := frameOf(opaque(10, 10, 10), opaque(100, 100, 100), opaque(200, 50, 50), opaque(12, 8, 14))
	keys := []RGB{{10, 10, 10}, {200, 50, 50}, {99, 101, 100}}

	prev := BuildMask(frame, nil, DefaultTolerance)
	if prev.Count() != 0 {
		t.Fatalf("empty key set masked %d pixels", prev.Count())
	}
	for i := range keys {
		m := BuildMask(frame, keys[:i+1], DefaultTolerance)
		for x := 0; x < 4; x++ {
			if prev.At(x, 0) && !m.At(x, 0) {
				t.Errorf("adding %v unmasked pixel %d", keys[i], x)
			}
		}
		prev = m
	}
	if prev.Count() != 4 {
		t.Errorf("all keys masked %d pixels, want 4", prev.Count())
	}
}

func TestApplyExportForcesBlack(t *testing.T) {
	frame := frameOf(opaque(255, 0, 0), opaque(1, 2, 3), color.NRGBA{R: 7, G: 8, B: 9, A: 0})
	m := BuildMask(frame, []RGB{{255, 0, 0}}, DefaultTolerance)
	out := ApplyExport(frame, m)

	if got := out.NRGBAAt(0, 0); got != (color.NRGBA{A: 255}) {
		t.Errorf("keyed pixel = %v, want opaque black", got)
	}
	if got := out.NRGBAAt(1, 0); got != opaque(1, 2, 3) {
		t.Errorf("kept pixel = %v", got)
	}
	if got := out.NRGBAAt(2, 0); got.A != 255 {
		t.Errorf("export frame not opaque: %v", got)
	}
	if frame.NRGBAAt(0, 0) != opaque(255, 0, 0) {
		t.Error("source frame modified")
	}
}

func TestApplyPreviewShowsChecker(t *testing.T) {
	frame := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			frame.SetNRGBA(x, y, opaque(0, 0, 255))
		}
	}
	frame.SetNRGBA(5, 5, opaque(9, 9, 9))

	m := BuildMask(frame, []RGB{{0, 0, 255}}, 0)
	out := ApplyPreview(frame, m, DefaultChecker)

	if got := out.RGBAAt(0, 0); got != DefaultChecker.Light {
		t.Errorf("tile (0,0) = %v, want light", got)
	}
	if got := out.RGBAAt(25, 0); got != DefaultChecker.Dark {
		t.Errorf("tile (20,0) = %v, want dark", got)
	}
	if got := out.RGBAAt(25, 25); got != DefaultChecker.Light {
		t.Errorf("tile (20,20) = %v, want light", got)
	}
	if got := out.RGBAAt(5, 5); got != (color.RGBA{R: 9, G: 9, B: 9, A: 255}) {
		t.Errorf("unkeyed pixel = %v", got)
	}
}

func TestPick(t *testing.T) {
	frame := frameOf(opaque(1, 2, 3))
	if c, ok := Pick(frame, 0, 0); !ok || c != (RGB{1, 2, 3}) {
		t.Errorf("Pick = %v %v", c, ok)
	}
	if _, ok := Pick(frame, 1, 0); ok {
		t.Error("Pick outside frame succeeded")
	}
}

func TestEncodeGIFKeyedPixelsAreBlack(t *testing.T) {
	frames := []*image.NRGBA{
		frameOf(opaque(255, 0, 0), opaque(40, 80, 120)),
		frameOf(opaque(40, 80, 120), opaque(253, 3, 1)),
	}
	keyed, err := KeyFrames(frames, []RGB{{255, 0, 0}}, DefaultTolerance)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := EncodeGIF(&buf, keyed, DefaultDelay); err != nil {
		t.Fatal(err)
	}
	g, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Image) != 2 {
		t.Fatalf("frames = %d, want 2", len(g.Image))
	}
	for i, d := range g.Delay {
		if d != DefaultDelay {
			t.Errorf("frame %d delay = %d", i, d)
		}
	}
	check := func(f, x int, want color.RGBA) {
		r, gr, b, a := g.Image[f].At(x, 0).RGBA()
		got := color.RGBA{R: uint8(r >> 8), G: uint8(gr >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
		if got != want {
			t.Errorf("frame %d pixel %d = %v, want %v", f, x, got, want)
		}
	}
	check(0, 0, color.RGBA{A: 255})
	check(0, 1, color.RGBA{R: 40, G: 80, B: 120, A: 255})
	check(1, 1, color.RGBA{A: 255})
}

func TestEncodeGIFManyColours(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.SetNRGBA(x, y, opaque(uint8(x*4), uint8(y*4), 128))
		}
	}
	img.SetNRGBA(0, 0, opaque(0, 0, 0))

	var buf bytes.Buffer
	if err := EncodeGIF(&buf, []*image.NRGBA{img}, DefaultDelay); err != nil {
		t.Fatal(err)
	}
	g, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(g.Image[0].Palette); n > 256 {
		t.Errorf("palette has %d entries", n)
	}
	if r, gr, b, _ := g.Image[0].At(0, 0).RGBA(); r|gr|b != 0 {
		t.Errorf("black pixel not preserved")
	}
}

func TestSaveAllOrNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.gif")
	if err := Save(path, nil, nil, DefaultTolerance); !errors.Is(err, toolerr.ErrNoAnimation) {
		t.Errorf("err = %v, want ErrNoAnimation", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("output written on failure")
	}

	if err := Save(path, []*image.NRGBA{frameOf(opaque(1, 1, 1))}, []RGB{{1, 1, 1}}, 0); err != nil {
		t.Fatal(err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("directory holds %d entries, want only the gif", len(entries))
	}
}

func TestPalettedKeepsBlackPlus255Exact(t *testing.T) {
	f := image.NewNRGBA(image.Rect(0, 0, 256, 1))
	for x := 0; x < 255; x++ {
		f.SetNRGBA(x, 0, color.NRGBA{R: uint8(x + 1), G: 7, B: 3, A: 255})
	}
	f.SetNRGBA(255, 0, color.NRGBA{A: 255})

	pm := paletted(f)
	if n := len(pm.Palette); n != 256 {
		t.Fatalf("palette has %d entries, want 256", n)
	}
	for x := 0; x < 256; x++ {
		want := f.NRGBAAt(x, 0)
		r, g, b, _ := pm.At(x, 0).RGBA()
		if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
			t.Errorf("pixel %d = (%d,%d,%d), want %v", x, r>>8, g>>8, b>>8, want)
		}
	}
}
