package main

import (
	"flag"
	"image"
	"log"

	"github.com/automoto/gifsprite/config"
	"github.com/automoto/gifsprite/fonts"
	"github.com/automoto/gifsprite/scenes"
	"github.com/automoto/gifsprite/shared/session"
	"github.com/automoto/gifsprite/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

// ChangeScene switches to a new scene
func (g *Game) ChangeScene(scene interface{}) {
	g.scene = scene.(Scene)
}

func NewGame() *Game {
	if err := fonts.LoadDefaults(); err != nil {
		log.Fatalf("Failed to load fonts: %v", err)
	}

	g := &Game{
		bounds: image.Rectangle{},
	}

	if config.Debug.SkipMenu {
		tool, _ := session.ParseTool(config.Debug.Tool)
		g.scene = scenes.NewEditorScene(g, tool, config.Debug.InputPath)
	} else {
		g.scene = scenes.NewMenuScene(g)
	}

	return g
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Width, config.C.Height)
	return config.C.Width, config.C.Height
}

func main() {
	tool := flag.String("tool", "", "open a tool directly: pixelate or transparency")
	in := flag.String("in", "", "GIF to load on start (requires -tool)")
	flag.Parse()

	if *tool != "" {
		if _, ok := session.ParseTool(*tool); !ok {
			log.Fatalf("Unknown tool %q", *tool)
		}
		config.Debug.SkipMenu = true
		config.Debug.Tool = *tool
		config.Debug.InputPath = *in
	}

	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowTitle(config.C.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeOnlyFullscreenEnabled)

	// Initialize persistence and load saved settings
	if err := systems.InitPersistence(); err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	}
	if _, err := systems.LoadSettings(); err != nil {
		log.Printf("Warning: Ignoring saved settings: %v", err)
	}

	if err := ebiten.RunGame(NewGame()); err != nil {
		log.Fatal(err)
	}
}
