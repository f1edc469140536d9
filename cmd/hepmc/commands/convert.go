package commands

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mosaicnetworks/hepmc/src/ascii"
	"github.com/mosaicnetworks/hepmc/src/hepmc"
)

// NewConvertCmd returns the command that rewrites a listing in another format
func NewConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [input] [output]",
		Short: "Rewrite an event listing, possibly in another format",
		Args:  cobra.ExactArgs(2),
		RunE:  convert,
	}
	return cmd
}

func convert(cmd *cobra.Command, args []string) error {
	in, out := args[0], args[1]
	if in == out {
		return fmt.Errorf("input and output are the same file: %s", in)
	}

	opts, err := _config.WriterOptions()
	if err != nil {
		return err
	}
	writer, err := ascii.Open(out, ascii.ModeWrite, opts)
	if err != nil {
		return err
	}

	summary, err := eachEvent(in, func(evt *hepmc.Event) error {
		return writer.WriteEvent(evt)
	})
	if err != nil {
		writer.Close()
		return err
	}

	if t := summary.reader.ParticleDataTable(); t != nil {
		if err := writer.WriteParticleDataTable(t); err != nil {
			writer.Close()
			return err
		}
	}
	for _, c := range summary.Comments {
		if err := writer.WriteComment(c); err != nil {
			writer.Close()
			return err
		}
	}

	if err := writer.Close(); err != nil {
		return err
	}

	_config.Logger().WithFields(logrus.Fields{
		"input":   in,
		"output":  out,
		"format":  opts.Format,
		"events":  summary.Events,
		"skipped": summary.Skipped,
	}).Info("Listing converted")

	fmt.Fprintf(cmd.OutOrStdout(), "%d events written to %s (%d skipped)\n",
		summary.Events, out, summary.Skipped)

	return nil
}
