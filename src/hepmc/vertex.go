package hepmc

import (
	"fmt"
	"math"
	"sort"

	"github.com/mosaicnetworks/hepmc/src/vector"
)

// Range selects a set of particles relative to a vertex.
type Range int

const (
	// Parents are the incoming particles.
	Parents Range = iota
	// Children are the outgoing particles.
	Children
	// Family is Parents followed by Children.
	Family
	// Ancestors are the incoming particles and, recursively, the incoming
	// particles of their production vertices.
	Ancestors
	// Descendants are the outgoing particles and, recursively, the
	// outgoing particles of their end vertices.
	Descendants
	// Relatives is Ancestors followed by Descendants.
	Relatives
)

// Vertex is a node of the event graph. It owns the forward links to its
// incoming and outgoing particles.
type Vertex struct {
	position     vector.FourVector
	particlesIn  []*Particle
	particlesOut []*Particle
	id           int
	weights      WeightContainer

	event *Event

	//the barcode, or the suggested barcode while not registered
	barcode int
}

// NewVertex creates a free standing Vertex.
func NewVertex(position vector.FourVector, id int) *Vertex {
	return &Vertex{
		position: position,
		id:       id,
	}
}

// clone returns a free standing copy of v without particles. The barcode is
// kept as a suggestion.
func (v *Vertex) clone() *Vertex {
	return &Vertex{
		position: v.position,
		id:       v.id,
		weights:  v.weights.Copy(),
		barcode:  v.barcode,
	}
}

// Position returns the 4-position.
func (v *Vertex) Position() vector.FourVector {
	return v.position
}

// SetPosition sets the 4-position.
func (v *Vertex) SetPosition(p vector.FourVector) {
	v.position = p
}

// ID returns the vertex id, a free tag whose meaning is up to the generator.
func (v *Vertex) ID() int {
	return v.id
}

// SetID sets the vertex id.
func (v *Vertex) SetID(id int) {
	v.id = id
}

// Weights returns the vertex weights, which may be modified in place.
func (v *Vertex) Weights() *WeightContainer {
	return &v.weights
}

// ParentEvent returns the event the vertex belongs to, or nil.
func (v *Vertex) ParentEvent() *Event {
	return v.event
}

// Barcode returns the barcode. Registered vertices have negative barcodes.
func (v *Vertex) Barcode() int {
	return v.barcode
}

// SuggestBarcode asks for a specific barcode. Free standing vertices store
// it until they join an event. It returns false if the suggestion could not
// be honoured.
func (v *Vertex) SuggestBarcode(b int) bool {
	if b > 0 {
		logger := defaultLogger
		if v.event != nil {
			logger = v.event.logger
		}
		logger.WithField("barcode", b).Warn("Vertex barcodes must be negative, suggestion rejected")
		return false
	}
	if v.event == nil {
		v.barcode = b
		return true
	}
	return v.event.SetVertexBarcode(v, b) == nil
}

// ParticlesIn returns the incoming particles in insertion order.
func (v *Vertex) ParticlesIn() []*Particle {
	return append([]*Particle(nil), v.particlesIn...)
}

// ParticlesOut returns the outgoing particles in insertion order.
func (v *Vertex) ParticlesOut() []*Particle {
	return append([]*Particle(nil), v.particlesOut...)
}

// ParticlesInSize returns the number of incoming particles.
func (v *Vertex) ParticlesInSize() int {
	return len(v.particlesIn)
}

// ParticlesOutSize returns the number of outgoing particles.
func (v *Vertex) ParticlesOutSize() int {
	return len(v.particlesOut)
}

// AddParticleIn makes v the end vertex of p. If p already had an end vertex
// it is detached from it first.
func (v *Vertex) AddParticleIn(p *Particle) {
	if p == nil {
		return
	}
	if p.endVertex != nil {
		p.endVertex.removeParticleIn(p)
	}
	v.particlesIn = append(v.particlesIn, p)
	p.setEndVertex(v)
}

// AddParticleOut makes v the production vertex of p. If p already had a
// production vertex it is detached from it first.
func (v *Vertex) AddParticleOut(p *Particle) {
	if p == nil {
		return
	}
	if p.productionVertex != nil {
		p.productionVertex.removeParticleOut(p)
	}
	v.particlesOut = append(v.particlesOut, p)
	p.setProductionVertex(v)
}

// RemoveParticle unlinks p from v on whichever side it is attached. The
// particle is returned and is not deleted.
func (v *Vertex) RemoveParticle(p *Particle) *Particle {
	if p == nil {
		return nil
	}
	if p.endVertex == v {
		v.removeParticleIn(p)
	}
	if p.productionVertex == v {
		v.removeParticleOut(p)
	}
	return p
}

func (v *Vertex) removeParticleIn(p *Particle) {
	v.particlesIn = removeFrom(v.particlesIn, p)
	p.setEndVertex(nil)
}

func (v *Vertex) removeParticleOut(p *Particle) {
	v.particlesOut = removeFrom(v.particlesOut, p)
	p.setProductionVertex(nil)
}

func removeFrom(ps []*Particle, p *Particle) []*Particle {
	for i, q := range ps {
		if q == p {
			return append(ps[:i], ps[i+1:]...)
		}
	}
	return ps
}

// orphans returns the incoming particles that have no production vertex.
func (v *Vertex) orphans() []*Particle {
	res := []*Particle{}
	for _, p := range v.particlesIn {
		if p.productionVertex == nil {
			res = append(res, p)
		}
	}
	return res
}

// family returns the incoming then outgoing particles without copying
// into a new backing array when one side is empty.
func (v *Vertex) family() []*Particle {
	if len(v.particlesIn) == 0 {
		return v.particlesOut
	}
	if len(v.particlesOut) == 0 {
		return v.particlesIn
	}
	res := make([]*Particle, 0, len(v.particlesIn)+len(v.particlesOut))
	res = append(res, v.particlesIn...)
	return append(res, v.particlesOut...)
}

// Particles returns the particles in the requested range. Recursive ranges
// visit each vertex once, so they terminate on malformed (cyclic) graphs.
func (v *Vertex) Particles(r Range) []*Particle {
	switch r {
	case Parents:
		return v.ParticlesIn()
	case Children:
		return v.ParticlesOut()
	case Family:
		return append(v.ParticlesIn(), v.particlesOut...)
	case Ancestors:
		return v.walk(func(x *Vertex) ([]*Particle, func(*Particle) *Vertex) {
			return x.particlesIn, (*Particle).ProductionVertex
		})
	case Descendants:
		return v.walk(func(x *Vertex) ([]*Particle, func(*Particle) *Vertex) {
			return x.particlesOut, (*Particle).EndVertex
		})
	case Relatives:
		return append(v.Particles(Ancestors), v.Particles(Descendants)...)
	}
	return nil
}

// walk does a breadth-first traversal starting at v. step returns the
// particles to collect at a vertex and how to reach the next vertex from
// each of them.
func (v *Vertex) walk(step func(*Vertex) ([]*Particle, func(*Particle) *Vertex)) []*Particle {
	res := []*Particle{}
	seen := map[*Vertex]bool{v: true}
	queue := []*Vertex{v}
	for len(queue) > 0 {
		x := queue[0]
		queue = queue[1:]
		ps, next := step(x)
		for _, p := range ps {
			res = append(res, p)
			if n := next(p); n != nil && !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return res
}

// CheckMomentumConservation returns the magnitude of the difference between
// the summed incoming and outgoing 3-momenta.
func (v *Vertex) CheckMomentumConservation() float64 {
	var sx, sy, sz float64
	for _, p := range v.particlesIn {
		sx += p.momentum.Px()
		sy += p.momentum.Py()
		sz += p.momentum.Pz()
	}
	for _, p := range v.particlesOut {
		sx -= p.momentum.Px()
		sy -= p.momentum.Py()
		sz -= p.momentum.Pz()
	}
	return math.Sqrt(sx*sx + sy*sy + sz*sz)
}

// Equal compares positions, outgoing particles in insertion order and
// incoming particles in canonical order: the ones without production vertex
// first, in insertion order, then the others by production vertex barcode
// (-1, -2, ...) and by position among that vertex's outgoing particles. This
// is the order in which a reader reconnects a vertex, so an event and its
// read-back copy compare equal whatever order the links were made in.
func (v *Vertex) Equal(o *Vertex) bool {
	if v == nil || o == nil {
		return v == o
	}
	if !v.position.Equal(o.position) ||
		len(v.particlesIn) != len(o.particlesIn) ||
		len(v.particlesOut) != len(o.particlesOut) {
		return false
	}
	vin, oin := v.canonicalIn(), o.canonicalIn()
	for i := range vin {
		if !vin[i].Equal(oin[i]) {
			return false
		}
	}
	for i := range v.particlesOut {
		if !v.particlesOut[i].Equal(o.particlesOut[i]) {
			return false
		}
	}
	return true
}

func (v *Vertex) canonicalIn() []*Particle {
	res := make([]*Particle, 0, len(v.particlesIn))
	var linked []*Particle
	for _, p := range v.particlesIn {
		if p.productionVertex == nil {
			res = append(res, p)
		} else {
			linked = append(linked, p)
		}
	}
	sort.SliceStable(linked, func(i, j int) bool {
		a, b := linked[i].productionVertex, linked[j].productionVertex
		if a.barcode != b.barcode {
			return a.barcode > b.barcode
		}
		return a.outIndex(linked[i]) < b.outIndex(linked[j])
	})
	return append(res, linked...)
}

func (v *Vertex) outIndex(p *Particle) int {
	for i, q := range v.particlesOut {
		if q == p {
			return i
		}
	}
	return -1
}

// deleteAdoptedParticles unlinks every particle from v and deregisters the
// ones that v owned: outgoing particles without an end vertex and incoming
// particles without a production vertex. Particles still attached to another
// vertex stay with it.
func (v *Vertex) deleteAdoptedParticles() {
	for _, p := range v.ParticlesOut() {
		v.removeParticleOut(p)
		if p.endVertex == nil && v.event != nil {
			v.event.removeParticleBarcode(p)
		}
	}
	for _, p := range v.ParticlesIn() {
		v.removeParticleIn(p)
		if p.productionVertex == nil && v.event != nil {
			v.event.removeParticleBarcode(p)
		}
	}
}

func (v *Vertex) String() string {
	return fmt.Sprintf("Vertex{barcode: %d, id: %d, x: %v, in: %d, out: %d}",
		v.barcode, v.id, v.position, len(v.particlesIn), len(v.particlesOut))
}
