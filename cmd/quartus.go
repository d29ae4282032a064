package cmd

import (
	"time"

	"github.com/daedaleanai/runsyn/config"
	"github.com/daedaleanai/runsyn/hdl"
	"github.com/daedaleanai/runsyn/log"
	"github.com/daedaleanai/runsyn/toolchain"

	"github.com/spf13/cobra"
)

var quartusCmd = &cobra.Command{
	Use:   "quartus",
	Args:  cobra.NoArgs,
	Short: "Synthesizes a VHDL file with Intel Quartus",
	Long: `Maps, fits and analyses the timing of a VHDL file with the Intel Quartus
command line tools, then prints the resource summary of the fitter report and
the Fmax summary of the timing report.`,
	Run: runQuartus,
}

var quartusFlags synthFlags

func init() {
	rootCmd.AddCommand(quartusCmd)
	quartusCmd.Flags().StringVarP(&quartusFlags.file, "file", "f", defaultSourceFile, "VHDL file")
	quartusCmd.Flags().StringVarP(&quartusFlags.entity, "entity", "e", "", "Entity name (default is the last entity of the VHDL file)")
	quartusCmd.Flags().StringVarP(&quartusFlags.target, "target", "t", toolchain.QuartusDefaultTarget, "Target name")
	quartusCmd.Flags().StringVar(&quartusFlags.workDir, "workdir", "", "Directory receiving the Quartus project (default from configuration)")
	quartusCmd.Flags().StringVar(&quartusFlags.summary, "summary", "", "Write a YAML summary of the run to this file")
}

func runQuartus(cmd *cobra.Command, args []string) {
	cfg := config.GetConfig()
	source := resolveSource(quartusFlags.file)

	entity := quartusFlags.entity
	if entity == "" {
		design, err := hdl.ReadDesign(source)
		if err != nil {
			log.Fatal("%s.\n", err)
		}
		entity = design.Top().Name
	}

	target, err := toolchain.QuartusTargets().Lookup(quartusFlags.target)
	if err != nil {
		log.Fatal("%s.\n", err)
	}

	workDir := quartusFlags.workDir
	if workDir == "" {
		workDir = cfg.Quartus.WorkDir
	}
	log.Debug("Entity: %s, target: %s (%s), work dir: %s.\n", entity, target.Name, target.Part, workDir)

	flow := &toolchain.QuartusFlow{
		Runner:  newRunner(),
		WorkDir: workDir,
		BinDir:  cfg.Quartus.BinDir,
	}
	job := toolchain.QuartusJob{Source: source, Entity: entity, Target: target}

	ctx, stop := interruptContext()
	defer stop()
	summary := newSummary(toolchain.QuartusTool, source, entity, target, time.Now())
	outcome, err := flow.Run(ctx, job)
	finishSynthesis(quartusFlags, summary, outcome, err)
}
