package tags

import "github.com/yohamta/donburi"

var (
	Editor = donburi.NewTag().SetName("Editor")
	Menu   = donburi.NewTag().SetName("Menu")
)

// Resolv tags for pointer hit-testing
const (
	ResolvPreview = "preview"
	ResolvPointer = "pointer"
)
