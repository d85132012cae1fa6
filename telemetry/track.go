package telemetry

import (
	geom "github.com/peterstace/simplefeatures/geom"
)

// Track is the ground path of samples projected on the X/Z plane
// Fewer than two distinct positions give an empty line string
func Track(samples []Sample) geom.LineString {
	if len(samples) < 2 {
		return geom.LineString{}
	}
	coords := make([]float64, 0, len(samples)*2)
	for _, s := range samples {
		coords = append(coords, s.PosX, s.PosZ)
	}
	seq := geom.NewSequence(coords, geom.DimXY)
	// OmitInvalid turns a stationary run into an empty line instead of an error
	ls, err := geom.NewLineString(seq, geom.OmitInvalid)
	if err != nil {
		return geom.LineString{}
	}
	return ls
}
