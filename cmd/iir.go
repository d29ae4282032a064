package cmd

import (
	"fmt"

	"github.com/daedaleanai/runsyn/config"
	"github.com/daedaleanai/runsyn/iir"
	"github.com/daedaleanai/runsyn/log"

	"github.com/spf13/cobra"
)

var iirCmd = &cobra.Command{
	Use:   "iir",
	Args:  cobra.NoArgs,
	Short: "Prints a FloPoCo FixIIR command line for a Butterworth low-pass filter",
	Long: `Designs a Butterworth low-pass filter and prints the FloPoCo FixIIR command
line implementing it. Coefficients are passed as exact hexadecimal floating-point
literals so that no precision is lost on the way.`,
	Run: runIir,
}

var iirParams = iir.DefaultParams()

func init() {
	rootCmd.AddCommand(iirCmd)
	iirCmd.Flags().IntVar(&iirParams.Order, "order", iir.DefaultOrder, "Filter order")
	iirCmd.Flags().Float64Var(&iirParams.Cutoff, "cutoff", iir.DefaultCutoff, "Cutoff frequency as a fraction of Nyquist")
	iirCmd.Flags().IntVar(&iirParams.LsbIn, "lsb-in", iir.DefaultLsbIn, "Weight of the input least significant bit")
	iirCmd.Flags().IntVar(&iirParams.MsbOut, "msb-out", iir.DefaultMsbOut, "Weight of the output most significant bit")
	iirCmd.Flags().IntVar(&iirParams.LsbOut, "lsb-out", iir.DefaultLsbOut, "Weight of the output least significant bit")
	iirCmd.Flags().Float64Var(&iirParams.PeakGain, "peak-gain", 0, "Worst-case peak gain (only needed without WCPG)")
	iirCmd.Flags().IntVarP(&iirParams.TestVectors, "test-vectors", "n", iir.DefaultTestVectors, "Number of test bench vectors")
	iirCmd.Flags().BoolVar(&iirParams.Figures, "figures", true, "Ask FloPoCo to generate its SVG figures")
	iirCmd.Flags().StringVar(&iirParams.Flopoco, "flopoco", "", "FloPoCo executable (default from configuration)")
}

func runIir(cmd *cobra.Command, args []string) {
	params := iirParams
	if params.Flopoco == "" {
		params.Flopoco = config.GetConfig().Flopoco
	}

	command, err := iir.Command(params)
	if err != nil {
		log.Fatal("%s.\n", err)
	}
	fmt.Println(command)
}
