// Package telemetry aggregates simulation events into windowed statistics
// and writes them to CSV for offline analysis.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`
	TimeOfDay       float64 `csv:"time_of_day"`

	// Population counts at window end
	HerbivoreCount int `csv:"herbivores"`
	PredatorCount  int `csv:"predators"`

	// Events during window
	Births        int `csv:"births"`
	Deaths        int `csv:"deaths"`
	PredatorKills int `csv:"predator_kills"`

	// Vitals distribution (sampled at window end)
	HealthMean float64 `csv:"health_mean"`
	HealthStd  float64 `csv:"health_std"`
	HealthP10  float64 `csv:"health_p10"`
	HealthP50  float64 `csv:"health_p50"`
	HealthP90  float64 `csv:"health_p90"`

	HungerMean float64 `csv:"hunger_mean"`
	ThirstMean float64 `csv:"thirst_mean"`
	EnergyMean float64 `csv:"energy_mean"`

	// Scent field
	ScentTotalMass float64 `csv:"scent_total_mass"`
	ScentPeak      float64 `csv:"scent_peak"`
}

// Percentile calculates the p-th percentile of a sorted slice via linear
// interpolation. p should be in [0, 1]. Returns 0 if the slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeDistribution calculates mean, population standard deviation, and
// percentiles over a sample.
func ComputeDistribution(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)
	if n > 1 {
		std = stat.PopStdDev(values, nil)
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, std, p10, p50, p90
}

// Mean returns the arithmetic mean of values, or 0 for an empty sample.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Float64("time_of_day", s.TimeOfDay),
		slog.Int("herbivores", s.HerbivoreCount),
		slog.Int("predators", s.PredatorCount),
		slog.Int("births", s.Births),
		slog.Int("deaths", s.Deaths),
		slog.Int("predator_kills", s.PredatorKills),
		slog.Float64("health_mean", s.HealthMean),
		slog.Float64("health_std", s.HealthStd),
		slog.Float64("health_p10", s.HealthP10),
		slog.Float64("health_p50", s.HealthP50),
		slog.Float64("health_p90", s.HealthP90),
		slog.Float64("hunger_mean", s.HungerMean),
		slog.Float64("thirst_mean", s.ThirstMean),
		slog.Float64("energy_mean", s.EnergyMean),
		slog.Float64("scent_total_mass", s.ScentTotalMass),
		slog.Float64("scent_peak", s.ScentPeak),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
