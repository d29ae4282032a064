package cmd

import (
	"time"

	"github.com/daedaleanai/runsyn/config"
	"github.com/daedaleanai/runsyn/hdl"
	"github.com/daedaleanai/runsyn/log"
	"github.com/daedaleanai/runsyn/toolchain"

	"github.com/spf13/cobra"
)

var vivadoCmd = &cobra.Command{
	Use:   "vivado",
	Args:  cobra.NoArgs,
	Short: "Synthesizes a VHDL file with Xilinx Vivado",
	Long: `Generates a Vivado batch script for a VHDL file, runs it in a scratch
directory and prints the utilization and timing reports. The scratch directory
is wiped at the beginning of every run.`,
	Run: runVivado,
}

var (
	vivadoFlags     synthFlags
	vivadoImplement bool
	vivadoClockXdc  string
)

func init() {
	rootCmd.AddCommand(vivadoCmd)
	vivadoCmd.Flags().StringVarP(&vivadoFlags.file, "file", "f", defaultSourceFile, "VHDL file")
	vivadoCmd.Flags().StringVarP(&vivadoFlags.entity, "entity", "e", "", "Entity name (default is the last entity of the VHDL file)")
	vivadoCmd.Flags().StringVarP(&vivadoFlags.target, "target", "t", "", "Target name (default is read from the VHDL file)")
	vivadoCmd.Flags().BoolVarP(&vivadoImplement, "implement", "i", false, "Go all the way to implementation (default stops after synthesis)")
	vivadoCmd.Flags().StringVar(&vivadoFlags.workDir, "workdir", "", "Scratch directory, recreated at every run (default from configuration)")
	vivadoCmd.Flags().StringVar(&vivadoClockXdc, "clock-xdc", "", "Clock constraints file (default from configuration)")
	vivadoCmd.Flags().StringVar(&vivadoFlags.summary, "summary", "", "Write a YAML summary of the run to this file")
}

func runVivado(cmd *cobra.Command, args []string) {
	cfg := config.GetConfig()
	source := resolveSource(vivadoFlags.file)

	entity := vivadoFlags.entity
	targetName := vivadoFlags.target
	var frequency float64

	design, err := hdl.ReadDesign(source)
	if err != nil {
		if entity == "" || targetName == "" {
			log.Fatal("%s.\n", err)
		}
		log.Warning("%s.\n", err)
	} else {
		frequency = design.FrequencyMHz
		if entity == "" {
			entity = design.Top().Name
		}
		if targetName == "" {
			targetName, err = design.TargetName()
			if err != nil {
				log.Fatal("%s. Use --target.\n", err)
			}
		}
	}

	target, err := toolchain.VivadoTargets().WithParts(cfg.Vivado.Targets).Lookup(targetName)
	if err != nil {
		log.Fatal("%s.\n", err)
	}

	workDir := vivadoFlags.workDir
	if workDir == "" {
		workDir = cfg.Vivado.WorkDir
	}
	clockXdc := vivadoClockXdc
	if clockXdc == "" {
		clockXdc = cfg.Vivado.ClockConstraints
	}

	flow := &toolchain.VivadoFlow{
		Runner:           newRunner(),
		WorkDir:          workDir,
		Executable:       cfg.Vivado.Executable,
		ClockConstraints: clockXdc,
	}
	job := toolchain.VivadoJob{
		Source:       source,
		Entity:       entity,
		Target:       target,
		Implement:    vivadoImplement,
		FrequencyMHz: frequency,
	}
	log.Debug("Entity: %s, target: %s (%s), run: %s, work dir: %s.\n", entity, target.Name, target.Part, job.RunName(), workDir)

	ctx, stop := interruptContext()
	defer stop()
	summary := newSummary(toolchain.VivadoTool, source, entity, target, time.Now())
	summary.Run = job.RunName()
	outcome, err := flow.Run(ctx, job)
	finishSynthesis(vivadoFlags, summary, outcome, err)
}
