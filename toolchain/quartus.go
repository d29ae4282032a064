package toolchain

import (
	"context"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/daedaleanai/runsyn/log"
	"github.com/daedaleanai/runsyn/report"
	"github.com/daedaleanai/runsyn/util"
)

const (
	QuartusTool          = "quartus"
	QuartusDefaultTarget = "StratixV"

	quartusFitStart     = "; Device"
	quartusFitEnd       = "; Total HSSI"
	quartusTimingEnd    = "This panel"
	quartusFitSuffix    = ".fit.rpt"
	quartusTimingSuffix = ".sta.rpt"
)

// Outcome is what a flow produced.
type Outcome struct {
	Steps   []Result
	Reports []report.Extract
}

// QuartusJob is one design to synthesize with Quartus.
type QuartusJob struct {
	Source string
	Entity string
	Target Target
}

// QuartusFlow maps, fits and analyses the timing of a design with the Quartus command line tools.
type QuartusFlow struct {
	Runner Runner
	// WorkDir receives the Quartus project and its reports.
	WorkDir string
	// BinDir holds the Quartus executables. Empty means they are looked up in PATH.
	BinDir string
}

func (f *QuartusFlow) tool(name string) string {
	if f.BinDir == "" {
		return name
	}
	return filepath.Join(f.BinDir, name)
}

// Commands returns the tool invocations for `job`, in execution order.
func (f *QuartusFlow) Commands(job QuartusJob) []Command {
	return []Command{
		{Name: f.tool("quartus_map"), Args: []string{"--source=" + job.Source, "--part=" + job.Target.Part, job.Entity}, Dir: f.WorkDir},
		{Name: f.tool("quartus_fit"), Args: []string{job.Entity}, Dir: f.WorkDir},
		{Name: f.tool("quartus_sta"), Args: []string{"--do_report_timing", job.Entity}, Dir: f.WorkDir},
	}
}

// FitReportPath is the fitter report of `job`.
func (f *QuartusFlow) FitReportPath(job QuartusJob) string {
	return filepath.Join(f.WorkDir, job.Entity+quartusFitSuffix)
}

// TimingReportPath is the timing analysis report of `job`.
func (f *QuartusFlow) TimingReportPath(job QuartusJob) string {
	return filepath.Join(f.WorkDir, job.Entity+quartusTimingSuffix)
}

// Run executes the three steps, stopping at the first failure, then extracts the resource
// summary of the fitter report and the fmax summary of the timing report.
func (f *QuartusFlow) Run(ctx context.Context, job QuartusJob) (*Outcome, error) {
	if job.Target.FmaxMarker == "" {
		return nil, errors.Errorf("target %s has no timing report marker", job.Target.Name)
	}
	if !util.DirExists(f.WorkDir) {
		return nil, errors.Errorf("work directory '%s' does not exist", f.WorkDir)
	}

	outcome := &Outcome{}
	log.Log("Synthesizing '%s' for %s with Quartus:\n", job.Entity, job.Target.Name)
	log.IndentationLevel++
	for _, cmd := range f.Commands(job) {
		log.Log("%s\n", cmd)
		result, err := f.Runner.Run(ctx, cmd)
		outcome.Steps = append(outcome.Steps, result)
		if err != nil {
			log.IndentationLevel--
			return outcome, err
		}
	}
	log.IndentationLevel--

	fit, err := report.ReadSection(f.FitReportPath(job), "fit", quartusFitStart, quartusFitEnd)
	if err != nil {
		return outcome, err
	}
	outcome.Reports = append(outcome.Reports, fit)

	timing, err := report.ReadSection(f.TimingReportPath(job), "timing", job.Target.FmaxMarker, quartusTimingEnd)
	if err != nil {
		return outcome, err
	}
	outcome.Reports = append(outcome.Reports, timing)
	return outcome, nil
}
