package hepmc

import (
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
	"github.com/sirupsen/logrus"
)

// AutoBarcodeStart is the first barcode handed out automatically to a
// particle. Lower positive values are kept for barcodes derived from the
// index of a particle in a fixed-size generator table.
const AutoBarcodeStart = 10001

// descendingIntComparator orders vertex barcodes -1, -2, -3... so that the
// first vertices to be registered come first.
func descendingIntComparator(a, b interface{}) int {
	return -utils.IntComparator(a, b)
}

// registry is the bijection between live entities of an Event and their
// barcodes.
type registry struct {
	vertices  *treemap.Map //barcode => *Vertex, descending
	particles *treemap.Map //barcode => *Particle, ascending
}

func newRegistry() registry {
	return registry{
		vertices:  treemap.NewWith(descendingIntComparator),
		particles: treemap.NewWithIntComparator(),
	}
}

func (r registry) vertex(b int) *Vertex {
	v, ok := r.vertices.Get(b)
	if !ok {
		return nil
	}
	return v.(*Vertex)
}

func (r registry) particle(b int) *Particle {
	p, ok := r.particles.Get(b)
	if !ok {
		return nil
	}
	return p.(*Particle)
}

// SetParticleBarcode registers p under the suggested barcode. If the
// suggestion is 0, negative or used by another particle, the next free
// barcode above the current maximum (and at least AutoBarcodeStart) is
// assigned instead, and an Err describing why is returned. Particles that do
// not belong to e are rejected with a ForeignEntity error.
func (e *Event) SetParticleBarcode(p *Particle, suggested int) error {
	if p == nil {
		return NewErr("Particle", NilEntity, suggested)
	}
	if p.ParentEvent() != e {
		e.logger.WithFields(logrus.Fields{
			"barcode":   p.barcode,
			"suggested": suggested,
		}).Error("SetParticleBarcode: particle does not belong to this event, request rejected")
		return NewErr("Particle", ForeignEntity, suggested)
	}

	// drop the current registration if it is about to change
	if p.barcode != 0 && p.barcode != suggested {
		if e.reg.particle(p.barcode) == p {
			e.reg.particles.Remove(p.barcode)
		}
	}

	var err error
	if suggested > 0 {
		switch e.reg.particle(suggested) {
		case p:
			p.barcode = suggested
			return nil
		case nil:
			e.reg.particles.Put(suggested, p)
			p.barcode = suggested
			return nil
		}
		err = NewErr("Particle", BarcodeCollision, suggested)
	} else if suggested < 0 {
		err = NewErr("Particle", WrongSign, suggested)
	}

	b := AutoBarcodeStart
	if max, _ := e.reg.particles.Max(); max != nil && max.(int)+1 > b {
		b = max.(int) + 1
	}
	e.reg.particles.Put(b, p)
	p.barcode = b

	if err != nil {
		e.logger.WithFields(logrus.Fields{
			"suggested": suggested,
			"assigned":  b,
		}).Debug("Particle barcode suggestion refused")
	}
	return err
}

// SetVertexBarcode registers v under the suggested barcode. If the
// suggestion is 0, positive or used by another vertex, the next free barcode
// below the current minimum (starting at -1) is assigned instead, and an Err
// describing why is returned. Vertices that do not belong to e are rejected
// with a ForeignEntity error.
func (e *Event) SetVertexBarcode(v *Vertex, suggested int) error {
	if v == nil {
		return NewErr("Vertex", NilEntity, suggested)
	}
	if v.event != e {
		e.logger.WithFields(logrus.Fields{
			"barcode":   v.barcode,
			"suggested": suggested,
		}).Error("SetVertexBarcode: vertex does not belong to this event, request rejected")
		return NewErr("Vertex", ForeignEntity, suggested)
	}

	if v.barcode != 0 && v.barcode != suggested {
		if e.reg.vertex(v.barcode) == v {
			e.reg.vertices.Remove(v.barcode)
		}
	}

	var err error
	if suggested < 0 {
		switch e.reg.vertex(suggested) {
		case v:
			v.barcode = suggested
			return nil
		case nil:
			e.reg.vertices.Put(suggested, v)
			v.barcode = suggested
			return nil
		}
		err = NewErr("Vertex", BarcodeCollision, suggested)
	} else if suggested > 0 {
		err = NewErr("Vertex", WrongSign, suggested)
	}

	// Max under the descending comparator is the most negative barcode
	b := -1
	if min, _ := e.reg.vertices.Max(); min != nil && min.(int)-1 < b {
		b = min.(int) - 1
	}
	e.reg.vertices.Put(b, v)
	v.barcode = b

	if err != nil {
		e.logger.WithFields(logrus.Fields{
			"suggested": suggested,
			"assigned":  b,
		}).Debug("Vertex barcode suggestion refused")
	}
	return err
}

// removeParticleBarcode deregisters p if it is the entity registered under
// its barcode. The barcode value stays on p as a suggestion.
func (e *Event) removeParticleBarcode(p *Particle) {
	if e.reg.particle(p.barcode) == p {
		e.reg.particles.Remove(p.barcode)
	}
}

// removeVertexBarcode deregisters v if it is the entity registered under its
// barcode. The barcode value stays on v as a suggestion.
func (e *Event) removeVertexBarcode(v *Vertex) {
	if e.reg.vertex(v.barcode) == v {
		e.reg.vertices.Remove(v.barcode)
	}
}
