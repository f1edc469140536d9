package commands

import (
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"

	"github.com/mosaicnetworks/hepmc/src/hepmc"
)

// NewStatsCmd returns the command that summarizes a listing
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [input]",
		Short: "Summarize the events of a listing",
		Args:  cobra.ExactArgs(1),
		RunE:  stats,
	}
	return cmd
}

// listingStats accumulates event level quantities over a listing.
type listingStats struct {
	vertices     int
	particles    int
	finalState   int
	units        string
	crossSection *hepmc.CrossSection
	imbalance    float64
}

func (s *listingStats) add(evt *hepmc.Event) {
	s.vertices += evt.VerticesSize()
	s.particles += evt.ParticlesSize()
	for _, p := range evt.Particles() {
		if p.IsUndecayed() {
			s.finalState++
		}
	}
	if s.units == "" {
		s.units = fmt.Sprintf("%s %s", evt.MomentumUnit(), evt.LengthUnit())
	}
	if evt.CrossSection.IsSet() {
		s.crossSection = evt.CrossSection.Copy()
	}
	for _, v := range evt.Vertices() {
		s.imbalance = math.Max(s.imbalance, v.CheckMomentumConservation())
	}
}

func stats(cmd *cobra.Command, args []string) error {
	s := &listingStats{}

	summary, err := eachEvent(args[0], func(evt *hepmc.Event) error {
		s.add(evt)
		return nil
	})
	if err != nil {
		return err
	}

	printStats(cmd.OutOrStdout(), args[0], summary, s)
	return nil
}

func printStats(w io.Writer, path string, summary *readSummary, s *listingStats) {
	mean := func(n int) float64 {
		if summary.Events == 0 {
			return 0
		}
		return float64(n) / float64(summary.Events)
	}

	fmt.Fprintf(w, "file:             %s\n", path)
	fmt.Fprintf(w, "format:           %s\n", summary.Format)
	fmt.Fprintf(w, "events:           %d\n", summary.Events)
	fmt.Fprintf(w, "skipped:          %d\n", summary.Skipped)
	fmt.Fprintf(w, "unresolved links: %d\n", summary.Unresolved)
	fmt.Fprintf(w, "vertices:         %d (%.1f per event)\n", s.vertices, mean(s.vertices))
	fmt.Fprintf(w, "particles:        %d (%.1f per event)\n", s.particles, mean(s.particles))
	fmt.Fprintf(w, "final state:      %d (%.1f per event)\n", s.finalState, mean(s.finalState))
	if s.units != "" {
		fmt.Fprintf(w, "units:            %s\n", s.units)
	}
	if s.crossSection.IsSet() {
		fmt.Fprintf(w, "cross section:    %g +/- %g pb\n", s.crossSection.Value(), s.crossSection.Error())
	}
	fmt.Fprintf(w, "max imbalance:    %g\n", s.imbalance)
}
