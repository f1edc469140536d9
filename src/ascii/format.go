package ascii

import (
	"fmt"
	"strings"
)

// Version is the version banner written before the first event listing.
const Version = "HepMC::Version 2.06.09"

const (
	keyPrefix = "HepMC::"

	commentKey = "HepMC::IO_GenEvent-COMMENT"

	particleDataStartKey = "HepMC::IO_Ascii-START_PARTICLE_DATA"
	particleDataEndKey   = "HepMC::IO_Ascii-END_PARTICLE_DATA"
)

// Format identifies a generation of the text format. Each generation has its
// own pair of listing keys and its own set of fields.
type Format int

const (
	// GenEvent is the current format. It carries units, named weights,
	// cross sections, multi-parton interaction counts and generated masses.
	GenEvent Format = iota
	// ExtendedAscii is the legacy format with beams, heavy-ion and PDF
	// blocks and generated masses, but no units or weight names.
	ExtendedAscii
	// Ascii is the legacy minimal format.
	Ascii
)

var formatNames = map[Format]string{
	GenEvent:      "genevent",
	ExtendedAscii: "extended",
	Ascii:         "ascii",
}

var listingKeys = map[Format][2]string{
	GenEvent:      {"HepMC::IO_GenEvent-START_EVENT_LISTING", "HepMC::IO_GenEvent-END_EVENT_LISTING"},
	ExtendedAscii: {"HepMC::IO_ExtendedAscii-START_EVENT_LISTING", "HepMC::IO_ExtendedAscii-END_EVENT_LISTING"},
	Ascii:         {"HepMC::IO_Ascii-START_EVENT_LISTING", "HepMC::IO_Ascii-END_EVENT_LISTING"},
}

func (f Format) String() string {
	if n, ok := formatNames[f]; ok {
		return n
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat parses a format name as returned by String.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for f, n := range formatNames {
		if n == name {
			return f, nil
		}
	}
	return GenEvent, fmt.Errorf("unknown format %q", s)
}

// StartKey returns the line that opens an event listing.
func (f Format) StartKey() string {
	return listingKeys[f][0]
}

// EndKey returns the line that closes an event listing.
func (f Format) EndKey() string {
	return listingKeys[f][1]
}

func (f Format) hasMPI() bool           { return f == GenEvent }
func (f Format) hasUnits() bool         { return f == GenEvent }
func (f Format) hasWeightNames() bool   { return f == GenEvent }
func (f Format) hasCrossSection() bool  { return f == GenEvent }
func (f Format) hasPdfIDs() bool        { return f == GenEvent }
func (f Format) hasBeams() bool         { return f != Ascii }
func (f Format) hasHeavyIon() bool      { return f != Ascii }
func (f Format) hasGeneratedMass() bool { return f != Ascii }

// formatOfStartKey returns the format a start key belongs to.
func formatOfStartKey(line string) (Format, bool) {
	for f, k := range listingKeys {
		if k[0] == line {
			return f, true
		}
	}
	return GenEvent, false
}

// isEndKey reports whether line closes a listing of any format.
func isEndKey(line string) bool {
	for _, k := range listingKeys {
		if k[1] == line {
			return true
		}
	}
	return false
}
