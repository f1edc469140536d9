package commands

import (
	"github.com/spf13/cobra"

	"github.com/mosaicnetworks/hepmc/src/hepmc"
)

var dumpJSON bool

// NewDumpCmd returns the command that dumps events as flat records
func NewDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump [input]",
		Short: "Dump the events of a listing as JSON records, one per line",
		Args:  cobra.ExactArgs(1),
		RunE:  dump,
	}
	AddDumpFlags(cmd)
	return cmd
}

// AddDumpFlags adds flags to the dump command
func AddDumpFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&dumpJSON, "json", true, "Dump JSON records, otherwise the human readable listing")
}

func dump(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	_, err := eachEvent(args[0], func(evt *hepmc.Event) error {
		if !dumpJSON {
			return evt.Print(out)
		}
		data, err := evt.ToRecord().Marshal()
		if err != nil {
			return err
		}
		if _, err := out.Write(append(data, '\n')); err != nil {
			return err
		}
		return nil
	})
	return err
}
