package hepmc

// HeavyIon describes the geometry of a nucleus-nucleus collision.
type HeavyIon struct {
	NcollHard                  int
	NpartProj                  int
	NpartTarg                  int
	Ncoll                      int
	SpectatorNeutrons          int
	SpectatorProtons           int
	NNwoundedCollisions        int
	NwoundedNCollisions        int
	NwoundedNwoundedCollisions int
	ImpactParameter            float64
	EventPlaneAngle            float64
	Eccentricity               float64
	SigmaInelNN                float64
}

// IsValid reports whether any field is set. An all-zero block is the
// encoding of "no heavy-ion information".
func (h *HeavyIon) IsValid() bool {
	return h != nil && *h != HeavyIon{}
}

// Copy returns a copy of h, or nil.
func (h *HeavyIon) Copy() *HeavyIon {
	if h == nil {
		return nil
	}
	c := *h
	return &c
}

// PdfInfo describes the parton distribution function sampling of the hard
// process.
type PdfInfo struct {
	ID1      int
	ID2      int
	X1       float64
	X2       float64
	ScalePDF float64
	PDF1     float64
	PDF2     float64
	PDFID1   int
	PDFID2   int
}

// Copy returns a copy of p, or nil.
func (p *PdfInfo) Copy() *PdfInfo {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// CrossSection is the generator's cross section estimate in pb.
type CrossSection struct {
	value float64
	error float64
	isSet bool
}

// NewCrossSection creates a set CrossSection.
func NewCrossSection(value, err float64) *CrossSection {
	return &CrossSection{value: value, error: err, isSet: true}
}

// Value returns the cross section in pb.
func (c *CrossSection) Value() float64 { return c.value }

// Error returns the cross section uncertainty in pb.
func (c *CrossSection) Error() float64 { return c.error }

// IsSet reports whether the cross section was ever set.
func (c *CrossSection) IsSet() bool { return c != nil && c.isSet }

// Set sets the value and error.
func (c *CrossSection) Set(value, err float64) {
	c.value = value
	c.error = err
	c.isSet = true
}

// Copy returns a copy of c, or nil.
func (c *CrossSection) Copy() *CrossSection {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

func equalHeavyIon(a, b *HeavyIon) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalPdfInfo(a, b *PdfInfo) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalCrossSection(a, b *CrossSection) bool {
	if !a.IsSet() || !b.IsSet() {
		return a.IsSet() == b.IsSet()
	}
	return a.value == b.value && a.error == b.error
}
