package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mosaicnetworks/hepmc/src/config"
)

var (
	_config = config.NewDefaultConfig()
)

// NewRootCmd returns the root command of the hepmc tool with all its
// subcommands. Each call starts from the default configuration.
func NewRootCmd() *cobra.Command {
	_config = config.NewDefaultConfig()
	viper.Reset()

	rootCmd := &cobra.Command{
		Use:               "hepmc",
		Short:             "Read, convert and archive HepMC event listings",
		TraverseChildren:  true,
		PersistentPreRunE: loadConfig,
	}
	AddConfigFlags(rootCmd)

	rootCmd.AddCommand(
		NewConvertCmd(),
		NewStatsCmd(),
		NewPrintCmd(),
		NewDumpCmd(),
		NewArchiveCmd(),
		NewListCmd(),
		NewExportCmd(),
		NewVersionCmd(),
	)

	return rootCmd
}
