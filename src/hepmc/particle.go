package hepmc

import (
	"fmt"

	"github.com/mosaicnetworks/hepmc/src/vector"
)

// Standard status codes.
const (
	StatusUndecayed = 1
	StatusDecayed   = 2
	StatusBeam      = 4
)

// Particle is an edge of the event graph. It links at most one production
// vertex to at most one end (decay) vertex. The vertices hold the forward
// links; the Particle only keeps back references.
//
// A Particle is created free standing with barcode 0. It gets a barcode from
// an Event once it is attached to a vertex that belongs to that Event.
type Particle struct {
	momentum      vector.FourVector
	pdgID         int
	status        int
	flow          Flow
	polarization  Polarization
	generatedMass float64

	productionVertex *Vertex
	endVertex        *Vertex

	//the barcode, or the suggested barcode while not registered
	barcode int
}

// NewParticle creates a free standing Particle. The generated mass is
// initialised from the momentum.
func NewParticle(momentum vector.FourVector, pdgID, status int) *Particle {
	p := &Particle{
		momentum:      momentum,
		pdgID:         pdgID,
		status:        status,
		generatedMass: momentum.M(),
	}
	p.flow = NewFlow(p)
	return p
}

// Clone returns a free standing copy of p. Vertex links are not copied; the
// barcode is kept as a suggestion for the copy.
func (p *Particle) Clone() *Particle {
	c := &Particle{
		momentum:      p.momentum,
		pdgID:         p.pdgID,
		status:        p.status,
		polarization:  p.polarization,
		generatedMass: p.generatedMass,
		barcode:       p.barcode,
	}
	c.flow = NewFlow(c)
	c.flow.copyFrom(&p.flow)
	return c
}

// Momentum returns the 4-momentum.
func (p *Particle) Momentum() vector.FourVector {
	return p.momentum
}

// SetMomentum sets the 4-momentum. The generated mass is left untouched.
func (p *Particle) SetMomentum(m vector.FourVector) {
	p.momentum = m
}

// PdgID returns the particle type code.
func (p *Particle) PdgID() int {
	return p.pdgID
}

// SetPdgID sets the particle type code.
func (p *Particle) SetPdgID(id int) {
	p.pdgID = id
}

// Status returns the status code.
func (p *Particle) Status() int {
	return p.status
}

// SetStatus sets the status code.
func (p *Particle) SetStatus(s int) {
	p.status = s
}

// Flow returns the particle's Flow, which may be modified in place.
func (p *Particle) Flow() *Flow {
	return &p.flow
}

// FlowCode is a shortcut for Flow().Code(index).
func (p *Particle) FlowCode(index int) int {
	return p.flow.Code(index)
}

// SetFlowCode is a shortcut for Flow().SetCode(index, code).
func (p *Particle) SetFlowCode(index, code int) {
	p.flow.SetCode(index, code)
}

// SetFlow replaces the codes of the particle's Flow with those of f.
func (p *Particle) SetFlow(f *Flow) {
	p.flow.copyFrom(f)
}

// Polarization returns the polarization.
func (p *Particle) Polarization() Polarization {
	return p.polarization
}

// SetPolarization sets the polarization.
func (p *Particle) SetPolarization(pol Polarization) {
	p.polarization = pol
}

// GeneratedMass returns the mass assigned by the generator, which may differ
// from the mass implied by the momentum.
func (p *Particle) GeneratedMass() float64 {
	return p.generatedMass
}

// SetGeneratedMass sets the generated mass.
func (p *Particle) SetGeneratedMass(m float64) {
	p.generatedMass = m
}

// ProductionVertex returns the vertex the particle comes out of, or nil.
func (p *Particle) ProductionVertex() *Vertex {
	return p.productionVertex
}

// EndVertex returns the vertex the particle goes into, or nil.
func (p *Particle) EndVertex() *Vertex {
	return p.endVertex
}

// ParentEvent returns the event of the production vertex or, if there is no
// production vertex, that of the end vertex.
func (p *Particle) ParentEvent() *Event {
	if p.productionVertex != nil {
		return p.productionVertex.event
	}
	if p.endVertex != nil {
		return p.endVertex.event
	}
	return nil
}

// Barcode returns the barcode. It is 0 for particles that were never
// registered and carry no suggestion.
func (p *Particle) Barcode() int {
	return p.barcode
}

// SuggestBarcode asks for a specific barcode. Free standing particles store
// it until they join an event. It returns false if the suggestion could not
// be honoured. Negative suggestions are rejected without any change.
func (p *Particle) SuggestBarcode(b int) bool {
	evt := p.ParentEvent()
	if b < 0 {
		logger := defaultLogger
		if evt != nil {
			logger = evt.logger
		}
		logger.WithField("barcode", b).Warn("Particle barcodes must be positive, suggestion rejected")
		return false
	}
	if evt == nil {
		p.barcode = b
		return true
	}
	return evt.SetParticleBarcode(p, b) == nil
}

// IsUndecayed reports whether the status is 1.
func (p *Particle) IsUndecayed() bool {
	return p.status == StatusUndecayed
}

// HasDecayed reports whether the status is 2.
func (p *Particle) HasDecayed() bool {
	return p.status == StatusDecayed
}

// IsBeam reports whether the status is 4.
func (p *Particle) IsBeam() bool {
	return p.status == StatusBeam
}

// Equal compares momentum, type, status, flow and polarization. Vertex links
// and barcodes are not compared.
func (p *Particle) Equal(o *Particle) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.momentum.Equal(o.momentum) &&
		p.pdgID == o.pdgID &&
		p.status == o.status &&
		p.flow.Equal(&o.flow) &&
		p.polarization.Equal(o.polarization)
}

// setProductionVertex updates the back reference and keeps the barcode
// registries of the old and new parent events consistent.
func (p *Particle) setProductionVertex(v *Vertex) {
	orig := p.ParentEvent()
	p.productionVertex = v
	p.moveEvent(orig)
}

// setEndVertex updates the back reference and keeps the barcode registries
// of the old and new parent events consistent.
func (p *Particle) setEndVertex(v *Vertex) {
	orig := p.ParentEvent()
	p.endVertex = v
	p.moveEvent(orig)
}

func (p *Particle) moveEvent(orig *Event) {
	next := p.ParentEvent()
	if orig == next {
		return
	}
	if orig != nil {
		orig.removeParticleBarcode(p)
	}
	if next != nil {
		next.SetParticleBarcode(p, p.barcode)
	}
}

func (p *Particle) String() string {
	return fmt.Sprintf("Particle{barcode: %d, pdg: %d, status: %d, p: %v}",
		p.barcode, p.pdgID, p.status, p.momentum)
}
