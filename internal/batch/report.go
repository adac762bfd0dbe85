package batch

import (
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/greatlakes-gis/licensemap/pkg/geocode"
)

// Report describes one completed (or interrupted) geocoding run.
type Report struct {
	RunID       string        `yaml:"run_id"`
	StartedAt   time.Time     `yaml:"started_at"`
	FinishedAt  time.Time     `yaml:"finished_at"`
	Rows        int           `yaml:"rows"`
	Interrupted bool          `yaml:"interrupted"`
	Stats       geocode.Stats `yaml:"statistics"`
}

// WriteYAML writes the report document, creating missing parent directories.
func (r *Report) WriteYAML(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrap(err, "batch: create report dir")
	}

	data, err := yaml.Marshal(r)
	if err != nil {
		return eris.Wrap(err, "batch: marshal report")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrap(err, "batch: write report")
	}
	return nil
}
