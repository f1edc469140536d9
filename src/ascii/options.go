package ascii

import (
	"github.com/sirupsen/logrus"

	"github.com/mosaicnetworks/hepmc/src/units"
)

// Options configure Readers, Writers and Files.
type Options struct {
	Logger *logrus.Entry

	// Format written by a Writer. Readers detect the format from the
	// listing keys and only use it for streams without keys.
	Format Format

	// Units given to events read from records without a U line.
	MomentumUnit units.MomentumUnit
	LengthUnit   units.LengthUnit

	// Precision is the number of significant digits written for floating
	// point values. 0 writes the shortest representation that reads back
	// to the same value.
	Precision int

	// StrictReferences discards events with a particle whose end vertex
	// cannot be found, instead of keeping the particle undecayed.
	StrictReferences bool
}

// DefaultOptions returns Options for the current format in GeV and mm.
func DefaultOptions() Options {
	return Options{
		Format:       GenEvent,
		MomentumUnit: units.DefaultMomentum,
		LengthUnit:   units.DefaultLength,
	}
}

func (o Options) logger() *logrus.Entry {
	if o.Logger != nil {
		return o.Logger
	}
	return logrus.NewEntry(logrus.StandardLogger()).WithField("prefix", "ascii")
}

func (o Options) defaultUnits() (units.MomentumUnit, units.LengthUnit) {
	mom, length := o.MomentumUnit, o.LengthUnit
	if mom == units.UnknownMomentum {
		mom = units.DefaultMomentum
	}
	if length == units.UnknownLength {
		length = units.DefaultLength
	}
	return mom, length
}
