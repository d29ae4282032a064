package cmd

import (
	"fmt"

	"github.com/daedaleanai/runsyn/config"
	"github.com/daedaleanai/runsyn/toolchain"
	"github.com/daedaleanai/runsyn/util"

	"github.com/spf13/cobra"
)

var targetsCmd = &cobra.Command{
	Use:       "targets [quartus|vivado]",
	Args:      cobra.OnlyValidArgs,
	ValidArgs: []string{toolchain.QuartusTool, toolchain.VivadoTool},
	Short:     "Lists the supported synthesis targets",
	Long:      `Lists the supported synthesis targets and their device parts, for one or all tools.`,
	Run:       runTargets,
}

func init() {
	rootCmd.AddCommand(targetsCmd)
}

func runTargets(cmd *cobra.Command, args []string) {
	tables := []*toolchain.TargetTable{
		toolchain.QuartusTargets(),
		toolchain.VivadoTargets().WithParts(config.GetConfig().Vivado.Targets),
	}
	for _, table := range tables {
		if len(args) > 0 && !util.Contains(args, table.Tool) {
			continue
		}
		for _, target := range table.Targets() {
			fmt.Printf("%-8s %-12s %s\n", table.Tool, target.Name, target.Part)
		}
	}
}

