package hepmc

import (
	"github.com/sirupsen/logrus"

	"github.com/mosaicnetworks/hepmc/src/units"
)

// Unset is the value of the event scale and couplings until they are set.
const Unset = -1

var defaultLogger = logrus.NewEntry(logrus.StandardLogger()).WithField("prefix", "hepmc")

// SetDefaultLogger replaces the logger used by entities that are not attached
// to an event and by events created afterwards.
func SetDefaultLogger(l *logrus.Entry) {
	defaultLogger = l
}

// Event is the root of the event graph. It owns every vertex added to it and,
// through them, every attached particle. It assigns the barcodes of its
// members and keeps the barcode registry a bijection at all times.
//
// The scalar metadata are plain fields. The signal-process vertex and the
// beam particles are references to members and are set through methods.
type Event struct {
	SignalProcessID int
	EventNumber     int
	MPI             int
	EventScale      float64
	AlphaQCD        float64
	AlphaQED        float64
	RandomStates    []int64

	HeavyIon     *HeavyIon
	PdfInfo      *PdfInfo
	CrossSection *CrossSection

	weights WeightContainer

	signalProcessVertex *Vertex
	beam1               *Particle
	beam2               *Particle

	momentumUnit units.MomentumUnit
	lengthUnit   units.LengthUnit

	reg registry

	logger *logrus.Entry
}

// NewEvent creates an empty Event in the default units.
func NewEvent() *Event {
	return NewEventWithUnits(units.DefaultMomentum, units.DefaultLength)
}

// NewEventWithUnits creates an empty Event in the given units.
func NewEventWithUnits(mom units.MomentumUnit, length units.LengthUnit) *Event {
	return &Event{
		MPI:          Unset,
		EventScale:   Unset,
		AlphaQCD:     Unset,
		AlphaQED:     Unset,
		momentumUnit: mom,
		lengthUnit:   length,
		reg:          newRegistry(),
		logger:       defaultLogger,
	}
}

// SetLogger sets the logger used to report programming errors and barcode
// conflicts.
func (e *Event) SetLogger(l *logrus.Entry) {
	e.logger = l
}

// Weights returns the event weights, which may be modified in place.
func (e *Event) Weights() *WeightContainer {
	return &e.weights
}

// MomentumUnit returns the unit of momenta and masses.
func (e *Event) MomentumUnit() units.MomentumUnit {
	return e.momentumUnit
}

// LengthUnit returns the unit of vertex positions.
func (e *Event) LengthUnit() units.LengthUnit {
	return e.lengthUnit
}

// SetUnits changes the unit tags without converting any value. Use UseUnits
// to convert.
func (e *Event) SetUnits(mom units.MomentumUnit, length units.LengthUnit) {
	e.momentumUnit = mom
	e.lengthUnit = length
}

// UseUnits converts every momentum, generated mass and position to the
// given units. A unit left Unknown, either current or requested, is not
// converted.
func (e *Event) UseUnits(mom units.MomentumUnit, length units.LengthUnit) {
	if f := units.MomentumConversionFactor(e.momentumUnit, mom); f != 0 && f != 1 {
		e.reg.particles.Each(func(_ interface{}, value interface{}) {
			p := value.(*Particle)
			p.momentum = p.momentum.Scale(f)
			p.generatedMass *= f
		})
	}
	if mom != units.UnknownMomentum {
		e.momentumUnit = mom
	}
	if f := units.LengthConversionFactor(e.lengthUnit, length); f != 0 && f != 1 {
		e.reg.vertices.Each(func(_ interface{}, value interface{}) {
			v := value.(*Vertex)
			v.position = v.position.Scale(f)
		})
	}
	if length != units.UnknownLength {
		e.lengthUnit = length
	}
}

// SignalProcessVertex returns the vertex of the hard process, or nil.
func (e *Event) SignalProcessVertex() *Vertex {
	return e.signalProcessVertex
}

// SetSignalProcessVertex marks v as the hard-process vertex. v is added to
// the event if it is not a member yet. nil clears the reference.
func (e *Event) SetSignalProcessVertex(v *Vertex) {
	e.signalProcessVertex = v
	if v != nil && v.event != e {
		e.AddVertex(v)
	}
}

// BeamParticles returns the two beam particles; either may be nil.
func (e *Event) BeamParticles() (*Particle, *Particle) {
	return e.beam1, e.beam2
}

// SetBeamParticles sets the beam particles. They are references, and should
// be members of the event (see ValidBeamParticles).
func (e *Event) SetBeamParticles(b1, b2 *Particle) {
	e.beam1 = b1
	e.beam2 = b2
}

// ValidBeamParticles reports whether both beam particles are set and are
// members of the event.
func (e *Event) ValidBeamParticles() bool {
	return e.beam1 != nil && e.beam2 != nil &&
		e.beam1.ParentEvent() == e && e.beam2.ParentEvent() == e
}

// AddVertex adds v to the event. If v belonged to another event it is
// removed from it first. v is registered under its suggested barcode when
// that one is free, otherwise under an automatic one. Its outgoing particles
// and its incoming particles without production vertex are registered along
// with it. It returns true unless v is nil or already belongs to the event.
func (e *Event) AddVertex(v *Vertex) bool {
	if v == nil {
		e.logger.Warn("AddVertex: nil vertex")
		return false
	}
	if v.event == e {
		return false
	}
	if v.event != nil {
		v.event.RemoveVertex(v)
	}
	v.event = e
	e.SetVertexBarcode(v, v.barcode)
	for _, p := range v.orphans() {
		e.SetParticleBarcode(p, p.barcode)
	}
	for _, p := range v.particlesOut {
		e.SetParticleBarcode(p, p.barcode)
	}
	return e.reg.vertex(v.barcode) == v
}

// RemoveVertex detaches v from the event without deleting it or its
// particles. The particles it carried are deregistered along with it. The
// caller owns v afterwards. It returns false if v was not a member.
func (e *Event) RemoveVertex(v *Vertex) bool {
	if v == nil || v.event != e {
		return false
	}
	if e.signalProcessVertex == v {
		e.signalProcessVertex = nil
	}
	e.removeVertexBarcode(v)
	v.event = nil
	for _, p := range v.orphans() {
		e.removeParticleBarcode(p)
	}
	for _, p := range v.particlesOut {
		e.removeParticleBarcode(p)
	}
	return e.reg.vertex(v.barcode) != v
}

// DeleteVertex removes v from the event and deletes the particles it owns:
// outgoing particles without an end vertex and incoming particles without a
// production vertex. Particles also attached to another vertex are only
// unlinked from v and stay with that vertex.
func (e *Event) DeleteVertex(v *Vertex) bool {
	if v == nil || v.event != e {
		return false
	}
	if e.signalProcessVertex == v {
		e.signalProcessVertex = nil
	}
	v.deleteAdoptedParticles()
	e.removeVertexBarcode(v)
	v.event = nil
	return true
}

// Clear deletes every vertex (and the particles they own) and resets the
// metadata. Units are kept.
func (e *Event) Clear() {
	for _, v := range e.Vertices() {
		e.DeleteVertex(v)
	}
	mom, length, logger := e.momentumUnit, e.lengthUnit, e.logger
	*e = *NewEventWithUnits(mom, length)
	e.logger = logger
}

// Vertices returns the member vertices in barcode order -1, -2, ...
func (e *Event) Vertices() []*Vertex {
	res := make([]*Vertex, 0, e.reg.vertices.Size())
	it := e.reg.vertices.Iterator()
	for it.Next() {
		res = append(res, it.Value().(*Vertex))
	}
	return res
}

// Particles returns the member particles in ascending barcode order.
func (e *Event) Particles() []*Particle {
	res := make([]*Particle, 0, e.reg.particles.Size())
	it := e.reg.particles.Iterator()
	for it.Next() {
		res = append(res, it.Value().(*Particle))
	}
	return res
}

// VerticesSize returns the number of member vertices.
func (e *Event) VerticesSize() int {
	return e.reg.vertices.Size()
}

// ParticlesSize returns the number of member particles.
func (e *Event) ParticlesSize() int {
	return e.reg.particles.Size()
}

// BarcodeToVertex returns the member vertex with barcode b, or nil.
func (e *Event) BarcodeToVertex(b int) *Vertex {
	return e.reg.vertex(b)
}

// BarcodeToParticle returns the member particle with barcode b, or nil.
func (e *Event) BarcodeToParticle(b int) *Particle {
	return e.reg.particle(b)
}

// Copy returns a deep copy of the event. Vertices and particles are new
// objects with the same barcodes, and every reference (signal vertex, beam
// particles, vertex links) points into the copy.
func (e *Event) Copy() *Event {
	c := NewEventWithUnits(e.momentumUnit, e.lengthUnit)
	c.logger = e.logger

	vmap := make(map[*Vertex]*Vertex, e.VerticesSize())
	vertices := e.Vertices()
	for _, v := range vertices {
		cv := v.clone()
		c.AddVertex(cv)
		vmap[v] = cv
	}

	if e.signalProcessVertex != nil {
		c.signalProcessVertex = vmap[e.signalProcessVertex]
	}

	pmap := make(map[*Particle]*Particle, e.ParticlesSize())
	for _, v := range vertices {
		cv := vmap[v]
		for _, p := range v.particlesIn {
			if p.productionVertex == nil {
				cp := p.Clone()
				cv.AddParticleIn(cp)
				pmap[p] = cp
			}
		}
		for _, p := range v.particlesOut {
			cp := p.Clone()
			cv.AddParticleOut(cp)
			if p.endVertex != nil {
				if ce, ok := vmap[p.endVertex]; ok {
					ce.AddParticleIn(cp)
				}
			}
			pmap[p] = cp
		}
	}

	//incoming lists follow the original order, not the linking order above
	for _, v := range vertices {
		cv := vmap[v]
		in := make([]*Particle, 0, len(v.particlesIn))
		for _, p := range v.particlesIn {
			if cp, ok := pmap[p]; ok {
				in = append(in, cp)
			}
		}
		if len(in) == len(cv.particlesIn) {
			cv.particlesIn = in
		}
	}

	c.beam1 = pmap[e.beam1]
	c.beam2 = pmap[e.beam2]

	c.SignalProcessID = e.SignalProcessID
	c.EventNumber = e.EventNumber
	c.MPI = e.MPI
	c.EventScale = e.EventScale
	c.AlphaQCD = e.AlphaQCD
	c.AlphaQED = e.AlphaQED
	c.RandomStates = append([]int64(nil), e.RandomStates...)
	c.weights = e.weights.Copy()
	c.HeavyIon = e.HeavyIon.Copy()
	c.PdfInfo = e.PdfInfo.Copy()
	c.CrossSection = e.CrossSection.Copy()

	return c
}

// Equal compares two events structurally: scalar metadata, units, the
// signal-process vertex and beam particles (by barcode), weights, random
// states, heavy-ion, PDF and cross-section blocks, and the particle and
// vertex collections in barcode order.
func (e *Event) Equal(o *Event) bool {
	if e == nil || o == nil {
		return e == o
	}
	if e.EventNumber != o.EventNumber ||
		e.SignalProcessID != o.SignalProcessID ||
		e.EventScale != o.EventScale ||
		e.AlphaQCD != o.AlphaQCD ||
		e.AlphaQED != o.AlphaQED ||
		e.MPI != o.MPI ||
		e.momentumUnit != o.momentumUnit ||
		e.lengthUnit != o.lengthUnit {
		return false
	}
	if vertexBarcode(e.signalProcessVertex) != vertexBarcode(o.signalProcessVertex) ||
		particleBarcode(e.beam1) != particleBarcode(o.beam1) ||
		particleBarcode(e.beam2) != particleBarcode(o.beam2) {
		return false
	}
	if !e.weights.Equal(&o.weights) || !equalInt64s(e.RandomStates, o.RandomStates) {
		return false
	}
	if !equalHeavyIon(e.HeavyIon, o.HeavyIon) ||
		!equalPdfInfo(e.PdfInfo, o.PdfInfo) ||
		!equalCrossSection(e.CrossSection, o.CrossSection) {
		return false
	}

	ep, op := e.Particles(), o.Particles()
	if len(ep) != len(op) {
		return false
	}
	for i := range ep {
		if ep[i].barcode != op[i].barcode || !ep[i].Equal(op[i]) {
			return false
		}
	}

	ev, ov := e.Vertices(), o.Vertices()
	if len(ev) != len(ov) {
		return false
	}
	for i := range ev {
		if ev[i].barcode != ov[i].barcode || !ev[i].Equal(ov[i]) {
			return false
		}
	}
	return true
}

func vertexBarcode(v *Vertex) int {
	if v == nil {
		return 0
	}
	return v.barcode
}

func particleBarcode(p *Particle) int {
	if p == nil {
		return 0
	}
	return p.barcode
}

func equalInt64s(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
