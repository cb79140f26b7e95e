package config

// StepperConfig contains increments for the grid steppers in the toolbar
type StepperConfig struct {
	Small int
	Large int // used while Shift is held
}

// Stepper is the global stepper configuration
var Stepper StepperConfig

// ToolTitles are shown in the menu and the window title, keyed by tool name
var ToolTitles = map[string]string{
	"pixelate":     "Pixelation Tool",
	"transparency": "Transparency Tool",
}

func init() {
	Stepper = StepperConfig{
		Small: 1,
		Large: 10,
	}
}
