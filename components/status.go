package components

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// StatusData is the message line under the toolbar.
type StatusData struct {
	Message string
	IsError bool
	Alpha   float32
	Fade    *gween.Sequence
}

var Status = donburi.NewComponentType[StatusData]()
