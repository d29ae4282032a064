package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/daedaleanai/runsyn/log"
	"github.com/daedaleanai/runsyn/module"
	"github.com/daedaleanai/runsyn/report"
	"github.com/daedaleanai/runsyn/toolchain"
	"github.com/daedaleanai/runsyn/util"
)

const defaultSourceFile = "flopoco.vhdl"

// Flags shared by the synthesis commands.
type synthFlags struct {
	file    string
	entity  string
	target  string
	workDir string
	summary string
}

func resolveSource(file string) string {
	source, err := filepath.Abs(file)
	if err != nil {
		log.Fatal("Invalid source file '%s': %s.\n", file, err)
	}
	if !util.FileExists(source) {
		log.Fatal("Source file '%s' does not exist.\n", source)
	}
	log.Debug("Source file: %s.\n", source)
	return source
}

func newRunner() toolchain.Runner {
	return &toolchain.ExecRunner{Stream: log.Verbose}
}

// interruptContext is cancelled on SIGINT/SIGTERM so that the vendor tool is killed with us.
func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func newSummary(tool, source, entity string, target toolchain.Target, started time.Time) report.Summary {
	summary := report.Summary{
		Tool:    tool,
		Source:  source,
		Entity:  entity,
		Target:  target.Name,
		Part:    target.Part,
		Started: started,
	}
	revision, err := module.SourceRevision(source)
	if err != nil {
		log.Debug("No revision for '%s': %s.\n", source, err)
	} else {
		summary.Revision = revision.String()
	}
	return summary
}

// finishSynthesis records the outcome, writes the summary if requested, and prints the reports.
// Any error is fatal, but only after the summary of the partial run has been written. A summary
// that could not be written still fails the command once the reports are printed.
func finishSynthesis(flags synthFlags, summary report.Summary, outcome *toolchain.Outcome, runErr error) {
	if outcome != nil {
		for _, step := range outcome.Steps {
			summary.Steps = append(summary.Steps, report.Step{
				Command:  step.Command.String(),
				ExitCode: step.ExitCode,
				Duration: step.Duration,
				Log:      step.LogFile,
			})
		}
		summary.Reports = outcome.Reports
	}

	if flags.summary != "" {
		if err := summary.Write(flags.summary); err != nil {
			log.Error("%s.\n", err)
		} else {
			log.Debug("Summary written to '%s'.\n", flags.summary)
		}
	}

	if runErr != nil {
		log.Fatal("%s.\n", runErr)
	}

	for _, extract := range summary.Reports {
		log.Log("%s report '%s':\n", extract.Name, extract.Path)
		fmt.Println(extract.Text)
	}
	if log.ErrorOccured() {
		log.Fatal("Synthesis of '%s' completed, but errors occured.\n", summary.Entity)
	}
	log.Success("Synthesis of '%s' for %s (%s) completed.\n", summary.Entity, summary.Target, summary.Part)
}
