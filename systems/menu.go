package systems

import (
	"os"

	"github.com/automoto/gifsprite/archetypes"
	"github.com/automoto/gifsprite/components"
	cfg "github.com/automoto/gifsprite/config"
	"github.com/automoto/gifsprite/fonts"
	"github.com/automoto/gifsprite/shared/session"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
	"golang.org/x/image/font"
)

// SceneChanger allows systems to trigger scene transitions
type SceneChanger interface {
	ChangeScene(scene interface{})
}

// NewUpdateMenu creates an UpdateMenu system that opens an editor for the
// chosen tool.
func NewUpdateMenu(sceneChanger SceneChanger, createEditorScene func(session.Tool) interface{}) ecs.System {
	return func(e *ecs.ECS) {
		menu := GetOrCreateMenu(e)
		input := getOrCreateInput(e)

		// Navigate menu with wrap-around
		numOptions := len(menu.VisibleOptions)
		if numOptions == 0 {
			return
		}

		if GetAction(input, cfg.ActionMenuUp).JustPressed {
			menu.SelectedIndex = (menu.SelectedIndex - 1 + numOptions) % numOptions
		}
		if GetAction(input, cfg.ActionMenuDown).JustPressed {
			menu.SelectedIndex = (menu.SelectedIndex + 1) % numOptions
		}

		// Mouse hover and click select too
		if i, ok := menuOptionAt(menu, input.Cursor.Y); ok {
			if input.MousePressed {
				menu.SelectedIndex = i
				selectOption(menu.VisibleOptions[i], sceneChanger, createEditorScene)
				return
			}
		}

		if GetAction(input, cfg.ActionMenuSelect).JustPressed {
			selectOption(menu.VisibleOptions[menu.SelectedIndex], sceneChanger, createEditorScene)
			return
		}

		// Allow back/escape to exit
		if GetAction(input, cfg.ActionMenuBack).JustPressed {
			os.Exit(0)
		}
	}
}

func selectOption(option components.MainMenuOption, sc SceneChanger, createEditorScene func(session.Tool) interface{}) {
	switch option {
	case components.MainMenuPixelate:
		sc.ChangeScene(createEditorScene(session.ToolPixelate))
	case components.MainMenuTransparency:
		sc.ChangeScene(createEditorScene(session.ToolTransparency))
	case components.MainMenuExit:
		os.Exit(0)
	}
}

func menuItemY(i int) float64 {
	return cfg.Menu.MenuStartY + float64(i)*(cfg.Menu.MenuItemHeight+cfg.Menu.MenuItemGap)
}

func menuOptionAt(menu *components.MenuData, y int) (int, bool) {
	for i := range menu.VisibleOptions {
		top := menuItemY(i)
		if float64(y) >= top && float64(y) < top+cfg.Menu.MenuItemHeight+cfg.Menu.MenuItemGap/2 {
			return i, true
		}
	}
	return 0, false
}

// DrawMenu renders the tool picker
func DrawMenu(e *ecs.ECS, screen *ebiten.Image) {
	menu := GetOrCreateMenu(e)

	width := float64(screen.Bounds().Dx())
	height := float64(screen.Bounds().Dy())

	// Draw background
	vector.FillRect(
		screen,
		0, 0,
		float32(width), float32(height),
		cfg.Menu.BackgroundColor,
		false,
	)

	// Draw title
	titleFont := fonts.Title.Get()
	title := "GIF SPRITE TOOLS"
	text.Draw(screen, title, titleFont, centeredX(title, titleFont, width), int(cfg.Menu.TitleY), cfg.Menu.TitleColor)

	// Draw menu options
	menuFont := fonts.Bold.Get()

	for i, option := range menu.VisibleOptions {
		y := menuItemY(i)

		// Determine color based on selection
		textColor := cfg.Menu.TextColorNormal
		if i == menu.SelectedIndex {
			textColor = cfg.Menu.TextColorSelected
		}

		label := getOptionLabel(option)
		text.Draw(screen, label, menuFont, centeredX(label, menuFont, width), int(y)+int(cfg.Menu.MenuItemHeight), textColor)
	}

	hint := "Arrows: Navigate   Enter: Select   Esc: Quit"
	hintFont := fonts.Small.Get()
	text.Draw(screen, hint, hintFont, centeredX(hint, hintFont, width), int(height)-12, cfg.Menu.TextColorNormal)
}

func centeredX(s string, face font.Face, width float64) int {
	w := font.MeasureString(face, s).Ceil()
	return int((width - float64(w)) / 2)
}

// getOptionLabel returns the display text for a menu option
func getOptionLabel(option components.MainMenuOption) string {
	switch option {
	case components.MainMenuPixelate:
		return cfg.ToolTitles[session.ToolPixelate.String()]
	case components.MainMenuTransparency:
		return cfg.ToolTitles[session.ToolTransparency.String()]
	case components.MainMenuExit:
		return "Exit"
	default:
		return ""
	}
}

// GetOrCreateMenu returns the singleton Menu component, creating if needed
func GetOrCreateMenu(e *ecs.ECS) *components.MenuData {
	if _, ok := components.Menu.First(e.World); !ok {
		// Start on the tool used last time
		selected := 0
		if SavedTool() == session.ToolTransparency.String() {
			selected = 1
		}
		ent := archetypes.Menu.Spawn(e)
		components.Menu.SetValue(ent, components.MenuData{
			SelectedIndex: selected,
			VisibleOptions: []components.MainMenuOption{
				components.MainMenuPixelate,
				components.MainMenuTransparency,
				components.MainMenuExit,
			},
		})
	}

	ent, _ := components.Menu.First(e.World)
	return components.Menu.Get(ent)
}
