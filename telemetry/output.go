package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/turbstir/config"
)

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir string
}

// NewOutputManager creates a new output manager and initializes the output
// directory. Returns nil if dir is empty (output disabled); all methods are
// no-ops on a nil receiver.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &OutputManager{dir: dir}, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteModes writes the full mode table to modes.csv.
func (om *OutputManager) WriteModes(records []ModeRecord) error {
	if om == nil {
		return nil
	}
	f, err := os.Create(filepath.Join(om.dir, "modes.csv"))
	if err != nil {
		return fmt.Errorf("creating modes.csv: %w", err)
	}
	defer f.Close()

	if err := gocsv.Marshal(records, f); err != nil {
		return fmt.Errorf("writing modes: %w", err)
	}
	return nil
}

// WriteSummary writes the run summary to summary.csv.
func (om *OutputManager) WriteSummary(stats SpectrumStats) error {
	if om == nil {
		return nil
	}
	f, err := os.Create(filepath.Join(om.dir, "summary.csv"))
	if err != nil {
		return fmt.Errorf("creating summary.csv: %w", err)
	}
	defer f.Close()

	if err := gocsv.Marshal([]SpectrumStats{stats}, f); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

// ReadModes loads a modes.csv previously written by WriteModes.
func ReadModes(path string) ([]ModeRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []ModeRecord
	if err := gocsv.Unmarshal(f, &records); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return records, nil
}
