// Package perception implements the vision cone: range and field-of-view
// filtering over a per-tick snapshot of observable entities, with stealth
// and night modulation.
package perception

import (
	"math"
	"sort"

	"github.com/paddocklabs/paddock/vecmath"
)

// Target is one entry of the perception snapshot: the plain-data view of a
// live entity rebuilt each tick.
type Target struct {
	ID         uint32
	Position   vecmath.Vec3
	Radius     float32
	IsPredator bool
	Stealth    float32 // 0..1; above 0.5 shortens the detection range
}

// Sighting is one visible entity, as returned by ProcessVision.
type Sighting struct {
	ID         uint32
	Distance   float32
	Angle      float32 // radians off the observer's forward vector
	IsPredator bool
}

// VisionSystem holds one observer's vision parameters.
type VisionSystem struct {
	FOVDegrees   float32
	MaxRange     float32
	NightPenalty float32 // 0..1; scales effective range down by up to 60%
}

// ProcessVision filters targets through the observer's cone and returns the
// visible ones sorted by ascending distance. The observer's own snapshot
// entry is skipped by ID.
func (v *VisionSystem) ProcessVision(observerPos, forward vecmath.Vec3, targets []Target, observerID uint32) []Sighting {
	fwd := forward.Normalize()
	if fwd == (vecmath.Vec3{}) {
		return nil
	}
	cosHalfFOV := float32(math.Cos(float64(v.FOVDegrees) * math.Pi / 360))
	effectiveRange := v.MaxRange * (1 - 0.6*v.NightPenalty)

	var out []Sighting
	for i := range targets {
		t := &targets[i]
		if t.ID == observerID {
			continue
		}

		adjustedRange := effectiveRange + t.Radius
		delta := t.Position.Sub(observerPos)
		distSq := delta.LengthSq()
		if distSq > adjustedRange*adjustedRange {
			continue
		}

		// Stealthy targets are only seen up close.
		if t.Stealth > 0.5 {
			r := adjustedRange * (1 - 0.8*t.Stealth)
			if distSq > r*r {
				continue
			}
		}

		dir := delta.Normalize()
		if dir == (vecmath.Vec3{}) {
			continue
		}
		d := fwd.Dot(dir)
		if d < cosHalfFOV {
			continue
		}
		if d > 1 {
			d = 1
		}
		out = append(out, Sighting{
			ID:         t.ID,
			Distance:   float32(math.Sqrt(float64(distSq))),
			Angle:      float32(math.Acos(float64(d))),
			IsPredator: t.IsPredator,
		})
	}

	sort.Slice(out, func(a, b int) bool {
		return out[a].Distance < out[b].Distance
	})
	return out
}

// DetectThreat returns the nearest visible predator from a sorted sighting
// list, or false if none is visible.
func DetectThreat(sightings []Sighting) (Sighting, bool) {
	for _, s := range sightings {
		if s.IsPredator {
			return s, true
		}
	}
	return Sighting{}, false
}
