package species

import "testing"

func TestCatalogue(t *testing.T) {
	tests := []struct {
		id       ID
		name     string
		hp, spd  float32
		size     float32
		predator bool
		hrate    float32
		trate    float32
	}{
		{TRex, "TRex", 500, 8, 4.0, true, 0.5, 0.3},
		{Velociraptor, "Velociraptor", 150, 15, 1.0, true, 0.8, 0.5},
		{Triceratops, "Triceratops", 400, 6, 3.0, false, 0.3, 0.2},
		{Brachiosaurus, "Brachiosaurus", 800, 4, 8.0, false, 0.2, 0.15},
		{Stegosaurus, "Stegosaurus", 350, 5, 3.5, false, 0.35, 0.25},
		{Pteranodon, "Pteranodon", 100, 20, 1.5, true, 0.7, 0.4},
		{Ankylosaurus, "Ankylosaurus", 600, 3, 3.0, false, 0.25, 0.2},
		{Parasaurolophus, "Parasaurolophus", 250, 9, 3.0, false, 0.4, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Get(tt.id)
			if d.Name != tt.name {
				t.Errorf("name = %q", d.Name)
			}
			if d.BaseHealth != tt.hp || d.BaseSpeed != tt.spd || d.BaseSize != tt.size {
				t.Errorf("stats = %v/%v/%v, want %v/%v/%v",
					d.BaseHealth, d.BaseSpeed, d.BaseSize, tt.hp, tt.spd, tt.size)
			}
			if d.IsPredator != tt.predator {
				t.Errorf("predator = %v", d.IsPredator)
			}
			if d.HungerRate != tt.hrate || d.ThirstRate != tt.trate {
				t.Errorf("rates = %v/%v, want %v/%v", d.HungerRate, d.ThirstRate, tt.hrate, tt.trate)
			}
			if d.Name != tt.id.String() {
				t.Errorf("String() = %q, want %q", tt.id.String(), d.Name)
			}
		})
	}
}

func TestFromName(t *testing.T) {
	for i := ID(0); i < Count; i++ {
		got, ok := FromName(i.String())
		if !ok || got != i {
			t.Errorf("FromName(%q) = %v, %v", i.String(), got, ok)
		}
	}
	if _, ok := FromName("Dodo"); ok {
		t.Error("unknown name resolved")
	}
}

func TestGetOutOfRange(t *testing.T) {
	if got := Get(Count + 3); got.Name != "TRex" {
		t.Errorf("out-of-range Get = %q", got.Name)
	}
}
