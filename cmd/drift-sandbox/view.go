package main

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/raycar/curve"
	"github.com/lixenwraith/raycar/parameter/visual"
	"github.com/lixenwraith/raycar/skidmark"
	"github.com/lixenwraith/raycar/vehicle"
)

// cellAspect compensates for terminal cells being about twice as tall as wide
const cellAspect = 2.0

const gridSpacing = 5.0

// camera maps world X/Z onto screen columns/rows, forward -Z is up
type camera struct {
	center mgl64.Vec3
	scale  float64 // rows per meter
	width  int
	height int
}

func (c camera) project(p mgl64.Vec3) (int, int, bool) {
	col := c.width/2 + int(math.Round((p.X()-c.center.X())*c.scale*cellAspect))
	row := c.height/2 + int(math.Round((p.Z()-c.center.Z())*c.scale))
	return col, row, col >= 0 && col < c.width && row >= 0 && row < c.height
}

func (c camera) plot(screen tcell.Screen, p mgl64.Vec3, r rune, style tcell.Style) {
	if col, row, ok := c.project(p); ok {
		screen.SetContent(col, row, r, nil, style)
	}
}

func background() tcell.Style {
	return tcell.StyleDefault.Background(visual.RgbBackground)
}

func drawGrid(screen tcell.Screen, cam camera) {
	style := background().Foreground(visual.RgbGrid)
	halfX := float64(cam.width) / (2 * cam.scale * cellAspect)
	halfZ := float64(cam.height) / (2 * cam.scale)

	x0 := math.Floor((cam.center.X()-halfX)/gridSpacing) * gridSpacing
	z0 := math.Floor((cam.center.Z()-halfZ)/gridSpacing) * gridSpacing
	for x := x0; x <= cam.center.X()+halfX; x += gridSpacing {
		for z := z0; z <= cam.center.Z()+halfZ; z += gridSpacing {
			cam.plot(screen, mgl64.Vec3{x, 0, z}, '+', style)
		}
	}
}

// skidCache holds one wheel's strip, rebuilt only when its ring changes
type skidCache struct {
	strip   skidmark.Strip
	version uint64
	builds  int
}

func (c *skidCache) refresh(ring *skidmark.Ring, opacity curve.Curve) *skidmark.Strip {
	if c.builds == 0 || ring.Version() != c.version {
		skidmark.BuildStrip(ring, opacity, &c.strip)
		c.version = ring.Version()
		c.builds++
	}
	return &c.strip
}

// drawSkids plots each segment's trailing edge midpoint shaded by age
func drawSkids(screen tcell.Screen, cam camera, ring *skidmark.Ring, opacity curve.Curve, cache *skidCache) *skidmark.Strip {
	strip := cache.refresh(ring, opacity)
	last := len(visual.SkidShades) - 1
	for i := 0; i+3 < len(strip.Vertices); i += 4 {
		l, r := strip.Vertices[i+2], strip.Vertices[i+3]
		alpha := l.Alpha
		mid := l.Position.Add(r.Position).Mul(0.5)

		shade := int(alpha * float64(last+1))
		if shade > last {
			shade = last
		}
		if shade < 0 {
			shade = 0
		}
		cam.plot(screen, mid, visual.SkidShades[shade], background().Foreground(visual.SkidColor(alpha)))
	}
	return strip
}

// drawBody fills the chassis footprint then marks each wheel by contact state
func drawBody(screen tcell.Screen, cam camera, v *vehicle.Vehicle, size mgl64.Vec3) {
	state := v.Body().State()
	bodyStyle := background().Foreground(visual.RgbBody)

	hw, hl := size.X()/2, size.Z()/2
	stepX := 1 / (cam.scale * cellAspect)
	stepZ := 1 / cam.scale
	for x := -hw; x <= hw+1e-9; x += stepX {
		for z := -hl; z <= hl+1e-9; z += stepZ {
			cam.plot(screen, state.TransformPoint(mgl64.Vec3{x, 0, z}), '█', bodyStyle)
		}
	}

	for i := 0; i < v.WheelCount(); i++ {
		w := v.Wheel(i)
		color := visual.RgbWheel
		switch {
		case !w.InContact:
			color = visual.RgbWheelAir
		case w.Sliding:
			color = visual.RgbWheelSlide
		}
		cam.plot(screen, state.TransformPoint(v.Slot(i).Mount), 'O', background().Foreground(color).Bold(true))
	}
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
