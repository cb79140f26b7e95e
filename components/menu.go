package components

import "github.com/yohamta/donburi"

// MainMenuOption represents the available main menu selections
type MainMenuOption int

const (
	MainMenuPixelate MainMenuOption = iota
	MainMenuTransparency
	MainMenuExit
)

// MenuData stores the current state of the tool picker
type MenuData struct {
	SelectedIndex  int
	VisibleOptions []MainMenuOption
}

// Menu is the component type for main menu state
var Menu = donburi.NewComponentType[MenuData]()
