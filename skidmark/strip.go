package skidmark

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/raycar/curve"
)

// Vertex is one strip corner with its fade alpha
type Vertex struct {
	Position mgl64.Vec3
	Alpha    float64
}

// Strip is indexed triangle data, 4 vertices and 6 indices per segment
type Strip struct {
	Vertices []Vertex
	Indices  []uint32
}

// Age returns the normalized buffer position of logical index i among n
// segments: oldest 0, newest 1, a lone segment 1
func Age(i, n int) float64 {
	if n <= 1 {
		return 1
	}
	return float64(i) / float64(n-1)
}

// BuildStrip rebuilds dst from r, oldest to newest, sampling opacity by age
// dst storage is reused; nil opacity means fully opaque
func BuildStrip(r *Ring, opacity curve.Curve, dst *Strip) *Strip {
	if dst == nil {
		dst = &Strip{}
	}
	dst.Vertices = dst.Vertices[:0]
	dst.Indices = dst.Indices[:0]

	n := r.Len()
	r.Each(func(i int, s Segment) bool {
		alpha := 1.0
		if opacity != nil {
			alpha = opacity.Sample(Age(i, n))
		}

		base := uint32(len(dst.Vertices))
		dst.Vertices = append(dst.Vertices,
			Vertex{s.StartLeft, alpha},
			Vertex{s.StartRight, alpha},
			Vertex{s.EndLeft, alpha},
			Vertex{s.EndRight, alpha},
		)
		dst.Indices = append(dst.Indices,
			base, base+1, base+2,
			base+2, base+1, base+3,
		)
		return true
	})
	return dst
}
