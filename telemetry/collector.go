package telemetry

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	windowStartTick int32

	// Event counters for current window
	births        int
	deaths        int
	predatorKills int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		windowStartTick:     0,
	}
}

// RecordBirth records a birth event.
func (c *Collector) RecordBirth() {
	c.births++
}

// RecordDeath records a death event.
func (c *Collector) RecordDeath() {
	c.deaths++
}

// RecordPredatorKill records a kill by a predator.
func (c *Collector) RecordPredatorKill() {
	c.predatorKills++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Sample holds world state observed at window end, provided by the caller.
type Sample struct {
	TimeOfDay      float64
	HerbivoreCount int
	PredatorCount  int

	Healths  []float64
	Hungers  []float64
	Thirsts  []float64
	Energies []float64

	ScentTotalMass float64
	ScentPeak      float64
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, sample Sample) WindowStats {
	healthMean, healthStd, healthP10, healthP50, healthP90 := ComputeDistribution(sample.Healths)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),
		TimeOfDay:       sample.TimeOfDay,

		HerbivoreCount: sample.HerbivoreCount,
		PredatorCount:  sample.PredatorCount,

		Births:        c.births,
		Deaths:        c.deaths,
		PredatorKills: c.predatorKills,

		HealthMean: healthMean,
		HealthStd:  healthStd,
		HealthP10:  healthP10,
		HealthP50:  healthP50,
		HealthP90:  healthP90,

		HungerMean: Mean(sample.Hungers),
		ThirstMean: Mean(sample.Thirsts),
		EnergyMean: Mean(sample.Energies),

		ScentTotalMass: sample.ScentTotalMass,
		ScentPeak:      sample.ScentPeak,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.births = 0
	c.deaths = 0
	c.predatorKills = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
