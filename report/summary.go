package report

import (
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/daedaleanai/runsyn/util"
)

// Step records one external command of a run.
type Step struct {
	Command  string        `yaml:"command"`
	ExitCode int           `yaml:"exit_code"`
	Duration time.Duration `yaml:"duration"`
	Log      string        `yaml:"log,omitempty"`
}

// Summary is the machine-readable record of a synthesis run.
type Summary struct {
	Tool     string    `yaml:"tool"`
	Source   string    `yaml:"source"`
	Revision string    `yaml:"revision,omitempty"`
	Entity   string    `yaml:"entity"`
	Target   string    `yaml:"target"`
	Part     string    `yaml:"part"`
	Run      string    `yaml:"run,omitempty"`
	Started  time.Time `yaml:"started"`
	Steps    []Step    `yaml:"steps"`
	Reports  []Extract `yaml:"reports"`
}

// Marshal renders the summary as YAML.
func (s *Summary) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode summary")
	}
	return data, nil
}

// Write stores the summary as YAML at `filePath`.
func (s *Summary) Write(filePath string) error {
	data, err := s.Marshal()
	if err != nil {
		return err
	}
	return util.WriteFile(filePath, data)
}
