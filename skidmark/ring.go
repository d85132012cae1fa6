// Package skidmark generates fading tire trails from per-wheel sliding state
//
// Each wheel owns a Trail which feeds a fixed-capacity Ring of quad segments.
// The ring never grows: once full, every push overwrites the oldest segment.
// BuildStrip turns a ring into triangle data for an external renderer.
package skidmark

import "github.com/go-gl/mathgl/mgl64"

// Segment is one quad of trail geometry, immutable once pushed
type Segment struct {
	StartLeft  mgl64.Vec3
	StartRight mgl64.Vec3
	EndLeft    mgl64.Vec3
	EndRight   mgl64.Vec3
}

// Ring is a fixed-capacity circular store of segments
// head is the next write slot; count saturates at capacity
type Ring struct {
	segs    []Segment
	head    int
	count   int
	version uint64
}

// NewRing allocates a ring holding capacity segments, minimum 1
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{segs: make([]Segment, capacity)}
}

// Push appends s, evicting the oldest segment when full
func (r *Ring) Push(s Segment) {
	r.segs[r.head] = s
	r.head++
	if r.head == len(r.segs) {
		r.head = 0
	}
	if r.count < len(r.segs) {
		r.count++
	}
	r.version++
}

// Len returns the number of stored segments, 0..Cap
func (r *Ring) Len() int { return r.count }

// Cap returns the fixed capacity
func (r *Ring) Cap() int { return len(r.segs) }

// Version increments on every mutation; renderers rebuild when it changes
func (r *Ring) Version() uint64 { return r.version }

// oldest returns the physical index of logical position 0
func (r *Ring) oldest() int {
	return (r.head - r.count + len(r.segs)) % len(r.segs)
}

// At returns the segment at logical position i, 0 = oldest
func (r *Ring) At(i int) Segment {
	if i < 0 || i >= r.count {
		panic("skidmark: ring index out of range")
	}
	return r.segs[(r.oldest()+i)%len(r.segs)]
}

// Each visits segments oldest to newest until fn returns false
func (r *Ring) Each(fn func(i int, s Segment) bool) {
	start := r.oldest()
	n := len(r.segs)
	for i := 0; i < r.count; i++ {
		if !fn(i, r.segs[(start+i)%n]) {
			return
		}
	}
}

// Segments appends all segments oldest to newest to dst
func (r *Ring) Segments(dst []Segment) []Segment {
	r.Each(func(_ int, s Segment) bool {
		dst = append(dst, s)
		return true
	})
	return dst
}

// Newest returns the most recently pushed segment
func (r *Ring) Newest() (Segment, bool) {
	if r.count == 0 {
		return Segment{}, false
	}
	return r.At(r.count - 1), true
}

// Reset empties the ring without releasing storage
func (r *Ring) Reset() {
	r.head = 0
	r.count = 0
	r.version++
}
