package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mosaicnetworks/hepmc/src/hepmc"
)

var printEvent int

// NewPrintCmd returns the command that prints events in human readable form
func NewPrintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "print [input]",
		Short: "Print the events of a listing in human readable form",
		Args:  cobra.ExactArgs(1),
		RunE:  printEvents,
	}
	AddPrintFlags(cmd)
	return cmd
}

// AddPrintFlags adds flags to the print command
func AddPrintFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&printEvent, "event", "e", 0, "Only print the event with this number")
}

func printEvents(cmd *cobra.Command, args []string) error {
	printAll := !cmd.Flags().Changed("event")

	found := false
	_, err := eachEvent(args[0], func(evt *hepmc.Event) error {
		if !printAll && evt.EventNumber != printEvent {
			return nil
		}
		found = true
		return evt.Print(cmd.OutOrStdout())
	})
	if err != nil {
		return err
	}

	if !printAll && !found {
		return fmt.Errorf("no event %d in %s", printEvent, args[0])
	}
	return nil
}
