// Package species holds the static catalogue of dinosaur species.
package species

// ID identifies one of the eight species.
type ID uint8

const (
	TRex ID = iota
	Velociraptor
	Triceratops
	Brachiosaurus
	Stegosaurus
	Pteranodon
	Ankylosaurus
	Parasaurolophus
	Count
)

func (id ID) String() string {
	if int(id) < len(names) {
		return names[id]
	}
	return "Unknown"
}

var names = [Count]string{
	"TRex",
	"Velociraptor",
	"Triceratops",
	"Brachiosaurus",
	"Stegosaurus",
	"Pteranodon",
	"Ankylosaurus",
	"Parasaurolophus",
}

// Data is the static profile of a species. Per-individual variation is
// layered on top by genetics.
type Data struct {
	Name       string
	BaseHealth float32
	BaseSpeed  float32
	BaseSize   float32
	IsPredator bool
	HungerRate float32
	ThirstRate float32
}

var defaults = [Count]Data{
	TRex:            {"TRex", 500, 8, 4.0, true, 0.5, 0.3},
	Velociraptor:    {"Velociraptor", 150, 15, 1.0, true, 0.8, 0.5},
	Triceratops:     {"Triceratops", 400, 6, 3.0, false, 0.3, 0.2},
	Brachiosaurus:   {"Brachiosaurus", 800, 4, 8.0, false, 0.2, 0.15},
	Stegosaurus:     {"Stegosaurus", 350, 5, 3.5, false, 0.35, 0.25},
	Pteranodon:      {"Pteranodon", 100, 20, 1.5, true, 0.7, 0.4},
	Ankylosaurus:    {"Ankylosaurus", 600, 3, 3.0, false, 0.25, 0.2},
	Parasaurolophus: {"Parasaurolophus", 250, 9, 3.0, false, 0.4, 0.3},
}

// Get returns the catalogue entry for a species. Out-of-range IDs return
// the TRex profile; callers validate IDs at their boundary.
func Get(id ID) Data {
	if id >= Count {
		return defaults[TRex]
	}
	return defaults[id]
}

// All returns a copy of the full catalogue in enum order.
func All() [Count]Data {
	return defaults
}

// FromName resolves a catalogue name back to its ID.
func FromName(name string) (ID, bool) {
	for i, n := range names {
		if n == name {
			return ID(i), true
		}
	}
	return 0, false
}
