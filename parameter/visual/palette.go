package visual

import "github.com/gdamore/tcell/v2"

// Drift sandbox colors
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)
	RgbGrid       = tcell.NewRGBColor(40, 42, 58)
	RgbBody       = tcell.NewRGBColor(122, 162, 247)
	RgbWheel      = tcell.NewRGBColor(192, 202, 245)
	RgbWheelSlide = tcell.NewRGBColor(247, 118, 142)
	RgbWheelAir   = tcell.NewRGBColor(86, 95, 137)
	RgbStatus     = tcell.NewRGBColor(158, 206, 106)
)

// SkidShades is the skid trail ramp from faded to fresh
var SkidShades = [4]rune{'·', '░', '▒', '▓'}

// SkidColor returns the trail color for opacity in [0,1]
func SkidColor(alpha float64) tcell.Color {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	base := 40.0
	v := int32(base + alpha*(150-base))
	return tcell.NewRGBColor(v, v, v+8)
}
