package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/flare/config"
)

// csvLog appends records to one CSV file, writing the header once.
type csvLog struct {
	f      *os.File
	header bool
}

func openCSV(dir, name string) (*csvLog, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvLog{f: f}, nil
}

func appendCSV[T any](l *csvLog, rec T) error {
	records := []T{rec}
	var err error
	if l.header {
		err = gocsv.MarshalWithoutHeaders(records, l.f)
	} else {
		err = gocsv.Marshal(records, l.f)
	}
	if err != nil {
		return err
	}
	l.header = true
	return nil
}

// OutputManager writes run output into a directory: telemetry.csv,
// perf.csv, a config.yaml snapshot and PNG frames under frames/.
type OutputManager struct {
	dir       string
	telemetry *csvLog
	perf      *csvLog
}

// NewOutputManager creates dir and opens the CSV logs.
// Returns nil if dir is empty (output disabled); every method accepts a nil
// receiver.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	tl, err := openCSV(dir, "telemetry.csv")
	if err != nil {
		return nil, err
	}
	pl, err := openCSV(dir, "perf.csv")
	if err != nil {
		tl.f.Close()
		return nil, err
	}
	return &OutputManager{dir: dir, telemetry: tl, perf: pl}, nil
}

// WriteConfig saves the configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry appends a window to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	if err := appendCSV(om.telemetry, stats); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// WritePerf appends a perf record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, simTime float64) error {
	if om == nil {
		return nil
	}
	if err := appendCSV(om.perf, stats.ToCSV(simTime)); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// FramePath returns the path for the nth PNG frame.
func (om *OutputManager) FramePath(n int) string {
	if om == nil {
		return ""
	}
	return filepath.Join(om.dir, "frames", fmt.Sprintf("frame_%06d.png", n))
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes all output files, returning the first error.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	for _, c := range []io.Closer{om.telemetry.f, om.perf.f} {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
