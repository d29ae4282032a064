package toolchain

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/daedaleanai/runsyn/log"
	"github.com/daedaleanai/runsyn/report"
)

const (
	fitRpt = `+--------------------------------------------------------------------------------+
; Fitter Summary                                                                 ;
; Device                          ; 5SGXEA3K1F35C1                               ;
; Logic utilization (in ALMs)     ; 312 / 128,300 ( < 1 % )                      ;
; Total HSSI RX PCSs              ; 0 / 24 ( 0 % )                               ;
`
	staRpt = `; Slow 900mV 85C Model Fmax Summary ;
+-----------+-----------------+------------+------+
; Fmax      ; Restricted Fmax ; Clock Name ; Note ;
; 512.3 MHz ; 512.3 MHz       ; clk        ;      ;
This panel reports FMAX for every clock in the design.
`
)

func quartusJob(t *testing.T) QuartusJob {
	target, err := QuartusTargets().Lookup(QuartusDefaultTarget)
	if err != nil {
		t.Fatal(err)
	}
	return QuartusJob{Source: "/designs/flopoco.vhdl", Entity: "FPAdd", Target: target}
}

func TestQuartusCommands(t *testing.T) {
	flow := &QuartusFlow{WorkDir: "/work", BinDir: "/opt/quartus/bin"}
	cmds := flow.Commands(quartusJob(t))

	expected := []string{
		"/opt/quartus/bin/quartus_map --source=/designs/flopoco.vhdl --part=5SGXEA3K1F35C1 FPAdd",
		"/opt/quartus/bin/quartus_fit FPAdd",
		"/opt/quartus/bin/quartus_sta --do_report_timing FPAdd",
	}
	if len(cmds) != len(expected) {
		t.Fatalf("unexpected command count %d", len(cmds))
	}
	for i := range cmds {
		if cmds[i].String() != expected[i] {
			t.Fatalf("command %d is %q, want %q", i, cmds[i], expected[i])
		}
		if cmds[i].Dir != "/work" {
			t.Fatalf("command %d runs in %q", i, cmds[i].Dir)
		}
	}
}

func TestQuartusRun(t *testing.T) {
	dir := t.TempDir()
	runner := &fakeRunner{
		effect: func(cmd Command) {
			switch filepath.Base(cmd.Name) {
			case "quartus_fit":
				writeFile(t, filepath.Join(dir, "FPAdd.fit.rpt"), fitRpt)
			case "quartus_sta":
				writeFile(t, filepath.Join(dir, "FPAdd.sta.rpt"), staRpt)
			}
		},
	}
	flow := &QuartusFlow{Runner: runner, WorkDir: dir}

	outcome, err := flow.Run(context.Background(), quartusJob(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outcome.Steps) != 3 || len(outcome.Reports) != 2 {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	fit := outcome.Reports[0].Text
	if !strings.HasPrefix(fit, "; Device") || strings.Contains(fit, "HSSI") {
		t.Fatalf("unexpected fit section %q", fit)
	}
	timing := outcome.Reports[1].Text
	if !strings.HasPrefix(timing, "; Slow 900mV 85C Model Fmax Summary") || !strings.Contains(timing, "512.3 MHz") {
		t.Fatalf("unexpected timing section %q", timing)
	}
	if strings.Contains(timing, "This panel") {
		t.Fatalf("end marker must be excluded: %q", timing)
	}
}

func TestQuartusStopsAtFailingStep(t *testing.T) {
	runner := &fakeRunner{failAt: 2}
	flow := &QuartusFlow{Runner: runner, WorkDir: t.TempDir()}

	outcome, err := flow.Run(context.Background(), quartusJob(t))
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got %v", err)
	}
	if len(runner.commands) != 2 {
		t.Fatalf("the timing analysis must not run after a failed fit, ran %d commands", len(runner.commands))
	}
	if len(outcome.Steps) != 2 || outcome.Steps[1].ExitCode != 2 {
		t.Fatalf("unexpected steps %+v", outcome.Steps)
	}
}

func TestQuartusMissingReport(t *testing.T) {
	flow := &QuartusFlow{Runner: &fakeRunner{}, WorkDir: t.TempDir()}
	if _, err := flow.Run(context.Background(), quartusJob(t)); err == nil {
		t.Fatal("missing reports should fail")
	}
}

func TestQuartusMissingMarker(t *testing.T) {
	dir := t.TempDir()
	runner := &fakeRunner{
		effect: func(cmd Command) {
			writeFile(t, filepath.Join(dir, "FPAdd.fit.rpt"), fitRpt)
			writeFile(t, filepath.Join(dir, "FPAdd.sta.rpt"), "no timing here")
		},
	}
	flow := &QuartusFlow{Runner: runner, WorkDir: dir}
	_, err := flow.Run(context.Background(), quartusJob(t))
	var markerErr *report.MarkerError
	if !errors.As(err, &markerErr) {
		t.Fatalf("expected MarkerError, got %v", err)
	}
}

func TestQuartusStepsAreIndented(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	flow := &QuartusFlow{Runner: &fakeRunner{failAt: 3}, WorkDir: t.TempDir()}
	if _, err := flow.Run(context.Background(), quartusJob(t)); err == nil {
		t.Fatal("failing timing analysis should fail")
	}
	if log.IndentationLevel != 0 {
		t.Fatalf("indentation leaked: %d", log.IndentationLevel)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("unexpected log %q", buf.String())
	}
	if !strings.HasPrefix(lines[0], "Synthesizing 'FPAdd' for StratixV") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	for _, line := range lines[1:] {
		if !strings.HasPrefix(line, "  quartus_") {
			t.Fatalf("step not indented: %q", line)
		}
	}
}

func TestQuartusMissingWorkDir(t *testing.T) {
	runner := &fakeRunner{}
	flow := &QuartusFlow{Runner: runner, WorkDir: filepath.Join(t.TempDir(), "missing")}
	if _, err := flow.Run(context.Background(), quartusJob(t)); err == nil {
		t.Fatal("a missing work directory should fail")
	}
	if len(runner.commands) != 0 {
		t.Fatalf("nothing should run without a work directory, ran %d commands", len(runner.commands))
	}
}
