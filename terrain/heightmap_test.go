package terrain

import "testing"

func TestGetHeightDeterministic(t *testing.T) {
	a := New(Params{Seed: 42})
	b := New(Params{Seed: 42})
	for _, p := range [][2]float32{{0, 0}, {100, -250}, {-768, 768}, {3.5, 9.1}} {
		if ha, hb := a.GetHeight(p[0], p[1]), b.GetHeight(p[0], p[1]); ha != hb {
			t.Errorf("height at %v differs across equal seeds: %v vs %v", p, ha, hb)
		}
	}
}

func TestGetHeightSeedVariation(t *testing.T) {
	a := New(Params{Seed: 1})
	b := New(Params{Seed: 2})
	same := 0
	for x := float32(-500); x <= 500; x += 100 {
		if a.GetHeight(x, x) == b.GetHeight(x, x) {
			same++
		}
	}
	if same > 2 {
		t.Errorf("%d of 11 samples identical across different seeds", same)
	}
}

func TestGetHeightBounds(t *testing.T) {
	h := New(Params{Seed: 7, Amplitude: 24})
	for x := float32(-768); x <= 768; x += 64 {
		for z := float32(-768); z <= 768; z += 64 {
			y := h.GetHeight(x, z)
			if y < 0 || y > 24 {
				t.Fatalf("height at (%v,%v) = %v, outside [0,24]", x, z, y)
			}
		}
	}
}

func TestNewZeroParamsUsesDefaults(t *testing.T) {
	h := New(Params{})
	if h.octaves != 5 || h.amplitude != 24 {
		t.Errorf("defaults not applied: octaves=%d amplitude=%v", h.octaves, h.amplitude)
	}
}
