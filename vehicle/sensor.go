package vehicle

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/raycar/physics"
)

// sense casts from the world-space mount straight down the body's up axis
func sense(caster physics.Caster, mount, up mgl64.Vec3, cfg *WheelConfig) physics.Contact {
	return caster.CastContact(mount, up.Mul(-1), cfg.CastLength())
}
