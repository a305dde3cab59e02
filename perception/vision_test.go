package perception

import (
	"math"
	"testing"

	"github.com/paddocklabs/paddock/vecmath"
)

func observer() *VisionSystem {
	return &VisionSystem{FOVDegrees: 90, MaxRange: 100}
}

func TestProcessVisionConeExclusion(t *testing.T) {
	v := observer()
	fwd := vecmath.Vec3{X: 0, Y: 0, Z: 1}

	tests := []struct {
		name    string
		pos     vecmath.Vec3
		visible bool
	}{
		{"dead ahead", vecmath.Vec3{X: 0, Y: 0, Z: 10}, true},
		{"within half-fov", vecmath.Vec3{X: 5, Y: 0, Z: 10}, true},
		{"exactly behind", vecmath.Vec3{X: 0, Y: 0, Z: -10}, false},
		{"perpendicular", vecmath.Vec3{X: 10, Y: 0, Z: 0}, false},
		{"outside cone but close", vecmath.Vec3{X: 1, Y: 0, Z: -1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			targets := []Target{{ID: 2, Position: tt.pos}}
			got := v.ProcessVision(vecmath.Vec3{}, fwd, targets, 1)
			if (len(got) == 1) != tt.visible {
				t.Errorf("visible = %v, want %v", len(got) == 1, tt.visible)
			}
		})
	}
}

func TestProcessVisionRange(t *testing.T) {
	v := observer()
	fwd := vecmath.Vec3{X: 0, Y: 0, Z: 1}

	// Out of range even inside the cone.
	far := []Target{{ID: 2, Position: vecmath.Vec3{X: 0, Y: 0, Z: 150}}}
	if got := v.ProcessVision(vecmath.Vec3{}, fwd, far, 1); len(got) != 0 {
		t.Error("target beyond range was visible")
	}

	// The target's radius extends the detection range.
	big := []Target{{ID: 2, Position: vecmath.Vec3{X: 0, Y: 0, Z: 104}, Radius: 8}}
	if got := v.ProcessVision(vecmath.Vec3{}, fwd, big, 1); len(got) != 1 {
		t.Error("large target just past range was not visible")
	}
}

func TestProcessVisionNightPenalty(t *testing.T) {
	v := &VisionSystem{FOVDegrees: 90, MaxRange: 100, NightPenalty: 0.4}
	fwd := vecmath.Vec3{X: 0, Y: 0, Z: 1}
	// Effective range = 100 * (1 - 0.6*0.4) = 76.
	targets := []Target{{ID: 2, Position: vecmath.Vec3{X: 0, Y: 0, Z: 80}}}
	if got := v.ProcessVision(vecmath.Vec3{}, fwd, targets, 1); len(got) != 0 {
		t.Error("night vision saw beyond the penalized range")
	}
	targets[0].Position = vecmath.Vec3{X: 0, Y: 0, Z: 70}
	if got := v.ProcessVision(vecmath.Vec3{}, fwd, targets, 1); len(got) != 1 {
		t.Error("target inside penalized range was not visible")
	}
}

func TestProcessVisionStealth(t *testing.T) {
	v := observer()
	fwd := vecmath.Vec3{X: 0, Y: 0, Z: 1}

	// Stealth 0.9 shrinks detection to 100*(1-0.72) = 28.
	sneaky := []Target{{ID: 2, Position: vecmath.Vec3{X: 0, Y: 0, Z: 50}, Stealth: 0.9}}
	if got := v.ProcessVision(vecmath.Vec3{}, fwd, sneaky, 1); len(got) != 0 {
		t.Error("stealthy target seen outside its reduced range")
	}
	sneaky[0].Position = vecmath.Vec3{X: 0, Y: 0, Z: 20}
	if got := v.ProcessVision(vecmath.Vec3{}, fwd, sneaky, 1); len(got) != 1 {
		t.Error("stealthy target not seen up close")
	}

	// Stealth at or below 0.5 has no effect.
	mild := []Target{{ID: 2, Position: vecmath.Vec3{X: 0, Y: 0, Z: 90}, Stealth: 0.5}}
	if got := v.ProcessVision(vecmath.Vec3{}, fwd, mild, 1); len(got) != 1 {
		t.Error("stealth 0.5 should not reduce range")
	}
}

func TestProcessVisionSortedByDistance(t *testing.T) {
	v := observer()
	fwd := vecmath.Vec3{X: 0, Y: 0, Z: 1}
	targets := []Target{
		{ID: 2, Position: vecmath.Vec3{X: 0, Y: 0, Z: 60}},
		{ID: 3, Position: vecmath.Vec3{X: 0, Y: 0, Z: 10}},
		{ID: 4, Position: vecmath.Vec3{X: 0, Y: 0, Z: 35}},
	}
	got := v.ProcessVision(vecmath.Vec3{}, fwd, targets, 1)
	if len(got) != 3 {
		t.Fatalf("visible = %d, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Distance < got[i-1].Distance {
			t.Fatalf("sightings not sorted: %v", got)
		}
	}
	if got[0].ID != 3 || got[1].ID != 4 || got[2].ID != 2 {
		t.Errorf("order = %d,%d,%d", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestProcessVisionSkipsSelfAndReportsAngle(t *testing.T) {
	v := observer()
	fwd := vecmath.Vec3{X: 0, Y: 0, Z: 1}
	targets := []Target{
		{ID: 1, Position: vecmath.Vec3{X: 0, Y: 0, Z: 0}},
		{ID: 2, Position: vecmath.Vec3{X: 10, Y: 0, Z: 10}},
	}
	got := v.ProcessVision(vecmath.Vec3{}, fwd, targets, 1)
	if len(got) != 1 {
		t.Fatalf("visible = %d, want 1 (self skipped)", len(got))
	}
	if math.Abs(float64(got[0].Angle)-math.Pi/4) > 1e-3 {
		t.Errorf("angle = %v, want pi/4", got[0].Angle)
	}
}

func TestDetectThreat(t *testing.T) {
	s := []Sighting{
		{ID: 5, Distance: 3, IsPredator: false},
		{ID: 7, Distance: 9, IsPredator: true},
		{ID: 8, Distance: 20, IsPredator: true},
	}
	threat, ok := DetectThreat(s)
	if !ok || threat.ID != 7 {
		t.Errorf("threat = %+v ok=%v, want ID 7", threat, ok)
	}

	if _, ok := DetectThreat(s[:1]); ok {
		t.Error("threat detected with no predators visible")
	}
}
