package cmd

import (
	"os"

	"github.com/daedaleanai/runsyn/log"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "runsyn",
	Short: "FloPoCo companion tools for filter generation and FPGA synthesis",
	Long: `runsyn prints FloPoCo command lines for Butterworth IIR filters and runs
vendor FPGA toolchains (Intel Quartus, Xilinx Vivado) on generated VHDL files,
printing the resource utilization and timing sections of their reports.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.PersistentFlags().BoolVarP(&log.Verbose, "verbose", "v", false, "Print debug output and stream tool output")
	if rootCmd.Execute() != nil {
		os.Exit(1)
	}
}
