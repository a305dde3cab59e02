package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeDistribution(t *testing.T) {
	values := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}
	mean, std, p10, p50, p90 := ComputeDistribution(values)

	if math.Abs(mean-0.55) > 0.001 {
		t.Errorf("mean = %v, want 0.55", mean)
	}
	// Population std of 0.1..1.0 is ~0.2872
	if math.Abs(std-0.2872) > 0.001 {
		t.Errorf("std = %v, want ~0.2872", std)
	}
	if math.Abs(p10-0.19) > 0.01 {
		t.Errorf("p10 = %v, want ~0.19", p10)
	}
	if math.Abs(p50-0.55) > 0.01 {
		t.Errorf("p50 = %v, want ~0.55", p50)
	}
	if math.Abs(p90-0.91) > 0.01 {
		t.Errorf("p90 = %v, want ~0.91", p90)
	}
}

func TestComputeDistributionEmpty(t *testing.T) {
	mean, std, p10, p50, p90 := ComputeDistribution([]float64{})
	if mean != 0 || std != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty sample should return all zeros")
	}
}

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(10.0, 0.5)
	if got := c.WindowDurationTicks(); got != 20 {
		t.Fatalf("window ticks = %d, want 20", got)
	}

	if c.ShouldFlush(19) {
		t.Error("flushed before window end")
	}
	if !c.ShouldFlush(20) {
		t.Error("did not flush at window end")
	}

	c.RecordBirth()
	c.RecordBirth()
	c.RecordDeath()
	c.RecordPredatorKill()

	stats := c.Flush(20, Sample{
		TimeOfDay:      13.5,
		HerbivoreCount: 7,
		PredatorCount:  2,
		Healths:        []float64{100, 200, 300},
	})
	if stats.Births != 2 || stats.Deaths != 1 || stats.PredatorKills != 1 {
		t.Errorf("events = %d/%d/%d", stats.Births, stats.Deaths, stats.PredatorKills)
	}
	if stats.SimTimeSec != 10.0 {
		t.Errorf("sim time = %v, want 10.0", stats.SimTimeSec)
	}
	if stats.HealthMean != 200 {
		t.Errorf("health mean = %v, want 200", stats.HealthMean)
	}
	if stats.HerbivoreCount != 7 || stats.PredatorCount != 2 {
		t.Errorf("counts = %d/%d", stats.HerbivoreCount, stats.PredatorCount)
	}

	// Counters reset after flush.
	next := c.Flush(40, Sample{})
	if next.Births != 0 || next.Deaths != 0 || next.PredatorKills != 0 {
		t.Error("counters not reset after flush")
	}
	if next.WindowStartTick != 20 {
		t.Errorf("window start = %d, want 20", next.WindowStartTick)
	}
}
