package toolchain

import (
	"bytes"
	"context"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"

	"github.com/daedaleanai/runsyn/assets"
	"github.com/daedaleanai/runsyn/log"
	"github.com/daedaleanai/runsyn/report"
	"github.com/daedaleanai/runsyn/util"
)

const (
	VivadoTool = "vivado"

	vivadoSynthesisRun      = "synth_1"
	vivadoImplementationRun = "impl_1"
	vivadoClockPort         = "clk"
	generatedClockFile      = "clock.xdc"
)

// VivadoJob is one design to synthesize with Vivado.
type VivadoJob struct {
	// Source is the absolute path of the VHDL file.
	Source string
	Entity string
	Target Target
	// Implement goes through placement and routing instead of stopping after synthesis.
	Implement bool
	// FrequencyMHz, when known, is used to constrain the clock if no constraints file exists.
	FrequencyMHz float64
}

// RunName is the Vivado run that is launched for the job.
func (j VivadoJob) RunName() string {
	if j.Implement {
		return vivadoImplementationRun
	}
	return vivadoSynthesisRun
}

func (j VivadoJob) reportSuffix() string {
	if j.Implement {
		return "placed.rpt"
	}
	return "synth.rpt"
}

// VivadoFlow runs Vivado in batch mode on a generated project script.
type VivadoFlow struct {
	Runner Runner
	// WorkDir is wiped and recreated at every run. It is left behind afterwards.
	WorkDir string
	// Executable is the Vivado binary.
	Executable string
	// ClockConstraints is an .xdc file read into the project.
	ClockConstraints string
}

// Project is the Vivado project name of `job`.
func (f *VivadoFlow) Project(job VivadoJob) string {
	return "test_" + job.Entity
}

// ScriptPath is where the batch script of `job` is written.
func (f *VivadoFlow) ScriptPath(job VivadoJob) string {
	return filepath.Join(f.WorkDir, f.Project(job)+".tcl")
}

func (f *VivadoFlow) runDir(job VivadoJob) string {
	return filepath.Join(f.WorkDir, f.Project(job)+".runs", job.RunName())
}

// TimingReportPath is the timing report requested by the script.
func (f *VivadoFlow) TimingReportPath(job VivadoJob) string {
	return filepath.Join(f.runDir(job), job.Entity+"_timing_"+job.reportSuffix())
}

// UtilizationReportPath is the utilization report Vivado writes for the run.
func (f *VivadoFlow) UtilizationReportPath(job VivadoJob) string {
	return filepath.Join(f.runDir(job), job.Entity+"_utilization_"+job.reportSuffix())
}

// clockConstraints decides which constraints file the project reads. Must be called on a fresh
// work directory since it may generate one there.
func (f *VivadoFlow) clockConstraints(job VivadoJob) (string, error) {
	if f.ClockConstraints != "" && util.FileExists(f.ClockConstraints) {
		return f.ClockConstraints, nil
	}
	if job.FrequencyMHz > 0 {
		generated := filepath.Join(f.WorkDir, generatedClockFile)
		params := assets.ClockTemplateParams{
			Port:     vivadoClockPort,
			PeriodNs: strconv.FormatFloat(1000/job.FrequencyMHz, 'f', 3, 64),
		}
		var buf bytes.Buffer
		if err := assets.Templates.ExecuteTemplate(&buf, assets.ClockTemplate, params); err != nil {
			return "", errors.Wrap(err, "failed to render clock constraints")
		}
		if err := util.WriteFile(generated, buf.Bytes()); err != nil {
			return "", err
		}
		log.Debug("Constraining '%s' to %v MHz in '%s'.\n", vivadoClockPort, job.FrequencyMHz, generated)
		return generated, nil
	}
	if f.ClockConstraints != "" {
		return "", errors.Errorf("clock constraints file '%s' does not exist", f.ClockConstraints)
	}
	log.Warning("No clock constraints, the timing report will be unconstrained.\n")
	return "", nil
}

// Prepare recreates the work directory and writes the batch script into it.
func (f *VivadoFlow) Prepare(job VivadoJob) (string, error) {
	if !filepath.IsAbs(job.Source) {
		return "", errors.Errorf("source '%s' must be an absolute path", job.Source)
	}
	if err := util.RecreateDir(f.WorkDir); err != nil {
		return "", err
	}
	xdc, err := f.clockConstraints(job)
	if err != nil {
		return "", err
	}

	params := assets.VivadoScriptTemplateParams{
		Entity:           job.Entity,
		Project:          f.Project(job),
		Part:             job.Target.Part,
		Source:           job.Source,
		ClockConstraints: xdc,
		Run:              job.RunName(),
		TimingReport:     f.TimingReportPath(job),
	}
	var buf bytes.Buffer
	if err := assets.Templates.ExecuteTemplate(&buf, assets.VivadoScriptTemplate, params); err != nil {
		return "", errors.Wrap(err, "failed to render Vivado script")
	}
	script := f.ScriptPath(job)
	if err := util.WriteFile(script, buf.Bytes()); err != nil {
		return "", err
	}
	return script, nil
}

// Command is the batch mode invocation for `job`.
func (f *VivadoFlow) Command(job VivadoJob) Command {
	return Command{
		Name: f.Executable,
		Args: []string{"-mode", "batch", "-source", f.ScriptPath(job)},
		Dir:  f.WorkDir,
	}
}

// Run prepares the project, runs Vivado and reads the utilization and timing reports.
func (f *VivadoFlow) Run(ctx context.Context, job VivadoJob) (*Outcome, error) {
	if _, err := f.Prepare(job); err != nil {
		return nil, err
	}

	outcome := &Outcome{}
	cmd := f.Command(job)
	log.Log("Running %s of '%s' for %s with Vivado:\n", job.RunName(), job.Entity, job.Target.Name)
	log.IndentationLevel++
	log.Log("%s\n", cmd)
	result, err := f.Runner.Run(ctx, cmd)
	log.IndentationLevel--
	outcome.Steps = append(outcome.Steps, result)
	if err != nil {
		return outcome, err
	}

	utilization, err := report.ReadWhole(f.UtilizationReportPath(job), "utilization")
	if err != nil {
		return outcome, err
	}
	outcome.Reports = append(outcome.Reports, utilization)

	timing, err := report.ReadWhole(f.TimingReportPath(job), "timing")
	if err != nil {
		return outcome, err
	}
	outcome.Reports = append(outcome.Reports, timing)
	return outcome, nil
}
