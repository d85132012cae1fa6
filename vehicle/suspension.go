package vehicle

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/raycar/physics"
	"github.com/lixenwraith/raycar/vmath"
)

type suspension struct {
	SpringLength float64
	Compression  float64
	Force        mgl64.Vec3
}

// suspensionForce is the spring-damper push along the contact normal
// Never pulls: a negative magnitude clamps to zero
func suspensionForce(cfg *WheelConfig, c physics.Contact, up, pointVel mgl64.Vec3) suspension {
	spring := math.Max(0, c.Distance-cfg.Radius)
	compression := cfg.RestLength - spring

	mag := cfg.SpringStiffness*compression - cfg.SpringDamping*up.Dot(pointVel)
	if mag < 0 {
		mag = 0
	}
	return suspension{
		SpringLength: spring,
		Compression:  compression,
		Force:        c.Normal.Mul(mag),
	}
}

// easeVisual moves the cosmetic wheel offset toward -springLength
func easeVisual(current, springLength, speed, dt float64) float64 {
	return vmath.MoveTowards(current, -springLength, speed*dt)
}
