package hepmc

import (
	"bytes"
	"fmt"

	"github.com/ugorji/go/codec"

	"github.com/mosaicnetworks/hepmc/src/units"
	"github.com/mosaicnetworks/hepmc/src/vector"
)

/*******************************************************************************
Record

A Record is a flat representation of an Event where every link is expressed
with barcodes. It is what the stores persist, and it can be marshalled with
any codec. Vertex records keep the insertion order of their particle lists so
that FromRecord rebuilds an Event equal to the original.
*******************************************************************************/

// FlowRecord is one (index, code) pair of a Flow.
type FlowRecord struct {
	Index int
	Code  int
}

// ParticleRecord is the flat form of a Particle.
type ParticleRecord struct {
	Barcode       int
	PdgID         int
	Status        int
	Momentum      [4]float64
	GeneratedMass float64
	Theta         float64
	Phi           float64
	Polarized     bool
	Flow          []FlowRecord
}

// VertexRecord is the flat form of a Vertex. In and Out hold particle
// barcodes in insertion order.
type VertexRecord struct {
	Barcode  int
	ID       int
	Position [4]float64
	Weights  []float64
	In       []int
	Out      []int
}

// Record is the flat form of an Event.
type Record struct {
	EventNumber         int
	SignalProcessID     int
	MPI                 int
	EventScale          float64
	AlphaQCD            float64
	AlphaQED            float64
	SignalProcessVertex int
	Beam1               int
	Beam2               int
	RandomStates        []int64
	Weights             []float64
	WeightNames         []string
	MomentumUnit        string
	LengthUnit          string
	HeavyIon            *HeavyIon
	PdfInfo             *PdfInfo
	CrossSection        []float64 //[value, error] when set
	Vertices            []VertexRecord
	Particles           []ParticleRecord
}

// ToRecord flattens the event.
func (e *Event) ToRecord() *Record {
	rec := &Record{
		EventNumber:         e.EventNumber,
		SignalProcessID:     e.SignalProcessID,
		MPI:                 e.MPI,
		EventScale:          e.EventScale,
		AlphaQCD:            e.AlphaQCD,
		AlphaQED:            e.AlphaQED,
		SignalProcessVertex: vertexBarcode(e.signalProcessVertex),
		Beam1:               particleBarcode(e.beam1),
		Beam2:               particleBarcode(e.beam2),
		RandomStates:        append([]int64(nil), e.RandomStates...),
		Weights:             e.weights.Values(),
		WeightNames:         e.weights.Names(),
		MomentumUnit:        e.momentumUnit.String(),
		LengthUnit:          e.lengthUnit.String(),
		HeavyIon:            e.HeavyIon.Copy(),
		PdfInfo:             e.PdfInfo.Copy(),
	}
	if e.CrossSection.IsSet() {
		rec.CrossSection = []float64{e.CrossSection.Value(), e.CrossSection.Error()}
	}

	for _, v := range e.Vertices() {
		vr := VertexRecord{
			Barcode:  v.barcode,
			ID:       v.id,
			Position: [4]float64{v.position.X, v.position.Y, v.position.Z, v.position.T},
			Weights:  v.weights.Values(),
		}
		for _, p := range v.particlesIn {
			vr.In = append(vr.In, p.barcode)
		}
		for _, p := range v.particlesOut {
			vr.Out = append(vr.Out, p.barcode)
		}
		rec.Vertices = append(rec.Vertices, vr)
	}

	for _, p := range e.Particles() {
		pr := ParticleRecord{
			Barcode:       p.barcode,
			PdgID:         p.pdgID,
			Status:        p.status,
			Momentum:      [4]float64{p.momentum.X, p.momentum.Y, p.momentum.Z, p.momentum.T},
			GeneratedMass: p.generatedMass,
			Theta:         p.polarization.theta,
			Phi:           p.polarization.phi,
			Polarized:     p.polarization.defined,
		}
		for _, i := range p.flow.Indices() {
			pr.Flow = append(pr.Flow, FlowRecord{Index: i, Code: p.flow.Code(i)})
		}
		rec.Particles = append(rec.Particles, pr)
	}

	return rec
}

// FromRecord rebuilds an Event from its flat form. Every barcode referenced
// by a vertex must belong to a particle record.
func FromRecord(rec *Record) (*Event, error) {
	mom, err := units.ParseMomentumUnit(rec.MomentumUnit)
	if err != nil && rec.MomentumUnit != units.UnknownMomentum.String() {
		return nil, err
	}
	length, err := units.ParseLengthUnit(rec.LengthUnit)
	if err != nil && rec.LengthUnit != units.UnknownLength.String() {
		return nil, err
	}

	evt := NewEventWithUnits(mom, length)

	particles := make(map[int]*Particle, len(rec.Particles))
	for _, pr := range rec.Particles {
		if pr.Barcode <= 0 {
			return nil, fmt.Errorf("particle record with non-positive barcode %d", pr.Barcode)
		}
		if _, ok := particles[pr.Barcode]; ok {
			return nil, fmt.Errorf("duplicate particle barcode %d", pr.Barcode)
		}
		p := NewParticle(vector.NewFourVector(pr.Momentum[0], pr.Momentum[1], pr.Momentum[2], pr.Momentum[3]),
			pr.PdgID, pr.Status)
		p.generatedMass = pr.GeneratedMass
		p.polarization = Polarization{theta: pr.Theta, phi: pr.Phi, defined: pr.Polarized}
		for _, f := range pr.Flow {
			p.flow.SetCode(f.Index, f.Code)
		}
		p.barcode = pr.Barcode
		particles[pr.Barcode] = p
	}

	lookup := func(b int) (*Particle, error) {
		p, ok := particles[b]
		if !ok {
			return nil, fmt.Errorf("vertex record references unknown particle %d", b)
		}
		return p, nil
	}

	vertices := make([]*Vertex, 0, len(rec.Vertices))
	seen := make(map[int]bool, len(rec.Vertices))
	for _, vr := range rec.Vertices {
		if vr.Barcode >= 0 {
			return nil, fmt.Errorf("vertex record with non-negative barcode %d", vr.Barcode)
		}
		if seen[vr.Barcode] {
			return nil, fmt.Errorf("duplicate vertex barcode %d", vr.Barcode)
		}
		seen[vr.Barcode] = true

		v := NewVertex(vector.NewFourVector(vr.Position[0], vr.Position[1], vr.Position[2], vr.Position[3]), vr.ID)
		v.weights = NewWeightContainer(vr.Weights...)
		v.barcode = vr.Barcode
		for _, b := range vr.In {
			p, err := lookup(b)
			if err != nil {
				return nil, err
			}
			v.AddParticleIn(p)
		}
		for _, b := range vr.Out {
			p, err := lookup(b)
			if err != nil {
				return nil, err
			}
			v.AddParticleOut(p)
		}
		vertices = append(vertices, v)
	}

	for _, v := range vertices {
		evt.AddVertex(v)
	}

	evt.EventNumber = rec.EventNumber
	evt.SignalProcessID = rec.SignalProcessID
	evt.MPI = rec.MPI
	evt.EventScale = rec.EventScale
	evt.AlphaQCD = rec.AlphaQCD
	evt.AlphaQED = rec.AlphaQED
	evt.RandomStates = append([]int64(nil), rec.RandomStates...)
	evt.HeavyIon = rec.HeavyIon.Copy()
	evt.PdfInfo = rec.PdfInfo.Copy()
	if len(rec.CrossSection) == 2 {
		evt.CrossSection = NewCrossSection(rec.CrossSection[0], rec.CrossSection[1])
	}

	for i, w := range rec.Weights {
		if i < len(rec.WeightNames) {
			evt.weights.Set(rec.WeightNames[i], w)
		} else {
			evt.weights.Push(w)
		}
	}

	if rec.SignalProcessVertex != 0 {
		evt.signalProcessVertex = evt.BarcodeToVertex(rec.SignalProcessVertex)
	}
	evt.beam1 = evt.BarcodeToParticle(rec.Beam1)
	evt.beam2 = evt.BarcodeToParticle(rec.Beam2)

	return evt, nil
}

// Marshal returns the canonical JSON encoding of the Record.
func (r *Record) Marshal() ([]byte, error) {
	b := new(bytes.Buffer)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	enc := codec.NewEncoder(b, jh)

	if err := enc.Encode(r); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// Unmarshal decodes a JSON encoded Record.
func (r *Record) Unmarshal(data []byte) error {
	b := bytes.NewBuffer(data)
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	dec := codec.NewDecoder(b, jh)

	return dec.Decode(r)
}
