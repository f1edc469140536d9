package hepmc

import (
	"fmt"
	"io"
	"strings"
)

var rule = strings.Repeat("_", 80)

// Print writes a human-readable listing of the event to w.
func (e *Event) Print(w io.Writer) error {
	b := &strings.Builder{}

	fmt.Fprintln(b, rule)
	fmt.Fprintf(b, "GenEvent: #%d ID=%5d SignalProcessGenVertex Barcode: %d\n",
		e.EventNumber, e.SignalProcessID, vertexBarcode(e.signalProcessVertex))
	fmt.Fprintf(b, " Momentum units:%9s     Position units:%9s\n",
		e.momentumUnit, e.lengthUnit)
	if e.CrossSection.IsSet() {
		fmt.Fprintf(b, " Cross Section: %g +/- %g\n",
			e.CrossSection.Value(), e.CrossSection.Error())
	}
	fmt.Fprintf(b, " Entries this event: %d vertices, %d particles.\n",
		e.VerticesSize(), e.ParticlesSize())
	if e.beam1 != nil && e.beam2 != nil {
		fmt.Fprintf(b, " Beam Particle barcodes: %d %d \n", e.beam1.barcode, e.beam2.barcode)
	} else {
		fmt.Fprintln(b, " Beam Particles are not defined.")
	}
	fmt.Fprintf(b, " RndmState(%d)=%s\n", len(e.RandomStates), joinInt64s(e.RandomStates))
	fmt.Fprintf(b, " Wgts(%d)=%s\n", e.weights.Len(), joinFloats(e.weights.values))
	fmt.Fprintf(b, " EventScale %g [energy] \t alphaQCD=%g\t alphaQED=%g\n",
		e.EventScale, e.AlphaQCD, e.AlphaQED)
	fmt.Fprintln(b, "                                    GenParticle Legend")
	fmt.Fprintln(b, "        Barcode   PDG ID      ( Px,       Py,       Pz,     E ) Stat  DecayVtx")
	fmt.Fprintln(b, rule)

	for _, v := range e.Vertices() {
		printVertex(b, v)
	}
	fmt.Fprintln(b, rule)

	_, err := io.WriteString(w, b.String())
	return err
}

func printVertex(b *strings.Builder, v *Vertex) {
	pos := v.position
	if pos.X != 0 || pos.Y != 0 || pos.Z != 0 || pos.T != 0 {
		fmt.Fprintf(b, "GenVertex:%9d ID:%5d (X,cT)=%+.2e,%+.2e,%+.2e,%+.2e\n",
			v.barcode, v.id, pos.X, pos.Y, pos.Z, pos.T)
	} else {
		fmt.Fprintf(b, "GenVertex:%9d ID:%5d (X,cT):0\n", v.barcode, v.id)
	}
	if !v.weights.Empty() {
		fmt.Fprintf(b, " Wgts(%d)=%s\n", v.weights.Len(), joinFloats(v.weights.values))
	}
	for i, p := range v.particlesIn {
		tag := "  "
		if i == 0 {
			tag = " I:"
		}
		printParticle(b, tag, len(v.particlesIn), i == 0, p)
	}
	for i, p := range v.particlesOut {
		tag := "  "
		if i == 0 {
			tag = " O:"
		}
		printParticle(b, tag, len(v.particlesOut), i == 0, p)
	}
}

func printParticle(b *strings.Builder, tag string, n int, first bool, p *Particle) {
	if first {
		fmt.Fprintf(b, "%s%2d", tag, n)
	} else {
		fmt.Fprintf(b, "%5s", "")
	}
	m := p.momentum
	fmt.Fprintf(b, "%9d%9d %+.2e,%+.2e,%+.2e,%+.2e%4d", p.barcode, p.pdgID,
		m.Px(), m.Py(), m.Pz(), m.E(), p.status)
	if p.endVertex != nil {
		fmt.Fprintf(b, "%9d", p.endVertex.barcode)
	}
	if p.flow.Len() > 0 {
		fmt.Fprintf(b, " %s", p.flow.String())
	}
	b.WriteString("\n")
}

func joinInt64s(xs []int64) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprint(x)
	}
	return strings.Join(parts, " ")
}

func joinFloats(xs []float64) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprint(x)
	}
	return strings.Join(parts, " ")
}
