package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/paddocklabs/paddock/config"
)

// OutputManager handles structured experiment output with CSV logging.
type OutputManager struct {
	dir           string
	telemetryFile *os.File
	lifetimeFile  *os.File

	// Track if headers have been written
	telemetryHeaderWritten bool
	lifetimeHeaderWritten  bool
}

// LifetimeCSV is the flat CSV record for one creature's completed lifetime.
type LifetimeCSV struct {
	EntityID        uint32  `csv:"entity_id"`
	Species         string  `csv:"species"`
	BirthTick       int32   `csv:"birth_tick"`
	SurvivalTimeSec float32 `csv:"survival_sec"`
	Kills           int     `csv:"kills"`
	Children        int     `csv:"children"`
	PeakHealth      float32 `csv:"peak_health"`
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	telemetryPath := filepath.Join(dir, "telemetry.csv")
	f, err := os.Create(telemetryPath)
	if err != nil {
		return nil, fmt.Errorf("creating telemetry.csv: %w", err)
	}
	om.telemetryFile = f

	lifetimePath := filepath.Join(dir, "lifetimes.csv")
	f, err = os.Create(lifetimePath)
	if err != nil {
		om.telemetryFile.Close()
		return nil, fmt.Errorf("creating lifetimes.csv: %w", err)
	}
	om.lifetimeFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	configPath := filepath.Join(om.dir, "config.yaml")
	return cfg.WriteYAML(configPath)
}

// WriteTelemetry writes a window stats record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}

	records := []WindowStats{stats}

	if !om.telemetryHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.telemetryFile); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		om.telemetryHeaderWritten = true
	} else {
		// Subsequent writes skip headers
		if err := gocsv.MarshalWithoutHeaders(records, om.telemetryFile); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
	}

	return nil
}

// WriteLifetime writes a completed lifetime record to lifetimes.csv.
func (om *OutputManager) WriteLifetime(rec LifetimeCSV) error {
	if om == nil {
		return nil
	}

	records := []LifetimeCSV{rec}

	if !om.lifetimeHeaderWritten {
		if err := gocsv.Marshal(records, om.lifetimeFile); err != nil {
			return fmt.Errorf("writing lifetime: %w", err)
		}
		om.lifetimeHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.lifetimeFile); err != nil {
			return fmt.Errorf("writing lifetime: %w", err)
		}
	}

	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error

	if om.telemetryFile != nil {
		if err := om.telemetryFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if om.lifetimeFile != nil {
		if err := om.lifetimeFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
