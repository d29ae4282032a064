package cmd

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/daedaleanai/runsyn/config"
	"github.com/daedaleanai/runsyn/log"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Args:  cobra.NoArgs,
	Short: "Prints the effective configuration",
	Long:  `Prints the effective configuration (defaults, configuration file and RUNSYN_* environment variables) as YAML.`,
	Run:   runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) {
	if err := printConfig(os.Stdout); err != nil {
		log.Fatal("%s.\n", err)
	}
}

func printConfig(w io.Writer) error {
	data, err := config.GetConfig().Marshal()
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "failed to print the configuration")
	}
	return nil
}
