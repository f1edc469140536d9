package commands

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mosaicnetworks/hepmc/src/ascii"
	cm "github.com/mosaicnetworks/hepmc/src/common"
	"github.com/mosaicnetworks/hepmc/src/hepmc"
	"github.com/mosaicnetworks/hepmc/src/store"
)

var exportEvents []int

// NewArchiveCmd returns the command that stores the events of a listing
func NewArchiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive [input]",
		Short: "Store the events of a listing in the event archive",
		Args:  cobra.ExactArgs(1),
		RunE:  archive,
	}
	return cmd
}

// NewListCmd returns the command that lists the archived events
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the events of the archive",
		Args:  cobra.NoArgs,
		RunE:  list,
	}
	return cmd
}

// NewExportCmd returns the command that writes archived events to a listing
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [output]",
		Short: "Write archived events to a listing",
		Args:  cobra.ExactArgs(1),
		RunE:  export,
	}
	AddExportFlags(cmd)
	return cmd
}

// AddExportFlags adds flags to the export command
func AddExportFlags(cmd *cobra.Command) {
	cmd.Flags().IntSliceVarP(&exportEvents, "event", "e", nil, "Only export these event numbers")
}

/*******************************************************************************
* STORE
*******************************************************************************/

// openStore returns the badger archive when --store is set, creating it if
// create is true, and an in-memory archive otherwise.
func openStore(create bool) (store.Store, error) {
	if !_config.Store {
		return store.NewInmemStore(_config.CacheSize), nil
	}

	logger := _config.Logger().WithField("prefix", "store")
	if create {
		return store.LoadOrCreateBadgerStore(_config.CacheSize, _config.DatabaseDir, logger)
	}
	return store.LoadBadgerStore(_config.CacheSize, _config.DatabaseDir, logger)
}

func requireStore(name string) error {
	if !_config.Store {
		return fmt.Errorf("%s reads the persistent archive and needs --store", name)
	}
	return nil
}

/*******************************************************************************
* RUN
*******************************************************************************/

func archive(cmd *cobra.Command, args []string) error {
	s, err := openStore(true)
	if err != nil {
		return err
	}
	defer s.Close()

	logger := _config.Logger()
	stored, duplicates := 0, 0

	summary, err := eachEvent(args[0], func(evt *hepmc.Event) error {
		err := s.SetEvent(evt)
		if cm.IsStore(err, cm.KeyAlreadyExists) {
			logger.WithField("event", evt.EventNumber).Warn("Event already archived")
			duplicates++
			return nil
		}
		if err != nil {
			return err
		}
		stored++
		return nil
	})
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"input":      args[0],
		"stored":     stored,
		"duplicates": duplicates,
		"skipped":    summary.Skipped,
		"path":       s.StorePath(),
	}).Info("Listing archived")

	fmt.Fprintf(cmd.OutOrStdout(), "%d events archived (%d duplicates, %d skipped)\n",
		stored, duplicates, summary.Skipped)

	return nil
}

func list(cmd *cobra.Command, args []string) error {
	if err := requireStore("list"); err != nil {
		return err
	}

	s, err := openStore(false)
	if err != nil {
		return err
	}
	defer s.Close()

	numbers, err := s.EventNumbers()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%10s %9s %9s\n", "event", "vertices", "particles")
	for _, n := range numbers {
		evt, err := s.GetEvent(n)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%10d %9d %9d\n", n, evt.VerticesSize(), evt.ParticlesSize())
	}

	return nil
}

func export(cmd *cobra.Command, args []string) error {
	if err := requireStore("export"); err != nil {
		return err
	}

	s, err := openStore(false)
	if err != nil {
		return err
	}
	defer s.Close()

	numbers := exportEvents
	if len(numbers) == 0 {
		if numbers, err = s.EventNumbers(); err != nil {
			return err
		}
	}

	opts, err := _config.WriterOptions()
	if err != nil {
		return err
	}
	writer, err := ascii.Open(args[0], ascii.ModeWrite, opts)
	if err != nil {
		return err
	}

	for _, n := range numbers {
		evt, err := s.GetEvent(n)
		if err == nil {
			err = writer.WriteEvent(evt)
		}
		if err != nil {
			writer.Close()
			return err
		}
	}

	if err := writer.Close(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d events written to %s\n", len(numbers), args[0])

	return nil
}
