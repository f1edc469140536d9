package ascii

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mosaicnetworks/hepmc/src/hepmc"
	"github.com/mosaicnetworks/hepmc/src/pdt"
)

// Writer writes events as an event listing. The banner and start key are
// written before the first event, comment or table; the end key by Close.
type Writer struct {
	out    *bufio.Writer
	format Format
	prec   int

	started bool
	closed  bool
	err     error

	logger *logrus.Entry
}

// NewWriter returns a Writer for w. Close must be called to terminate the
// listing; it does not close w.
func NewWriter(w io.Writer, opts Options) *Writer {
	return &Writer{
		out:    bufio.NewWriter(w),
		format: opts.Format,
		prec:   opts.Precision,
		logger: opts.logger(),
	}
}

// Format returns the format being written.
func (w *Writer) Format() Format {
	return w.format
}

// WriteEvent appends evt to the listing. A nil event writes nothing.
func (w *Writer) WriteEvent(evt *hepmc.Event) error {
	if evt == nil {
		return nil
	}
	if err := w.begin(); err != nil {
		return err
	}

	w.writeEventLine(evt)

	if w.format.hasWeightNames() && !evt.Weights().Empty() {
		l := w.line('N')
		l.addInt(evt.Weights().Len())
		for _, n := range evt.Weights().Names() {
			l.add(strconv.Quote(n))
		}
		w.flushLine(l)
	}

	if w.format.hasUnits() {
		l := w.line('U')
		l.add(evt.MomentumUnit().String())
		l.add(evt.LengthUnit().String())
		w.flushLine(l)
	}

	if w.format.hasCrossSection() && evt.CrossSection.IsSet() {
		l := w.line('C')
		l.addFloat(evt.CrossSection.Value())
		l.addFloat(evt.CrossSection.Error())
		w.flushLine(l)
	}

	if w.format.hasHeavyIon() {
		w.writeHeavyIon(evt.HeavyIon)
		w.writePdfInfo(evt.PdfInfo)
	}

	for _, v := range evt.Vertices() {
		w.writeVertex(v)
	}

	return w.err
}

// WriteComment writes a comment block. Readers skip comments and keep them
// in Reader.Comments. Line breaks in c are replaced by spaces.
func (w *Writer) WriteComment(c string) error {
	c = strings.TrimSpace(strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(c))
	if c == "" {
		return nil
	}
	if err := w.begin(); err != nil {
		return err
	}
	w.writeString(commentKey + "\n" + c + "\n")
	return w.err
}

// WriteParticleDataTable writes t as a particle data block.
func (w *Writer) WriteParticleDataTable(t *pdt.Table) error {
	if t == nil {
		return nil
	}
	if err := w.begin(); err != nil {
		return err
	}
	w.writeString(particleDataStartKey + "\n")
	for _, d := range t.Entries() {
		l := w.line('D')
		l.addInt(d.ID)
		l.addFloat(d.Charge)
		l.addFloat(d.Mass)
		l.addFloat(d.CLifetime)
		l.addInt(int(d.Spin*2 + 0.1))
		l.add(d.Name)
		w.flushLine(l)
	}
	w.writeString(particleDataEndKey + "\n")
	return w.err
}

// Flush writes buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.out.Flush(); err != nil {
		w.err = errors.Wrap(err, "flushing event listing")
	}
	return w.err
}

// Close terminates the listing, writing the banner first if nothing was
// written yet. Closing twice is a no-op.
func (w *Writer) Close() error {
	if w.closed {
		return w.err
	}
	if err := w.begin(); err != nil {
		return err
	}
	w.writeString(w.format.EndKey() + "\n")
	w.closed = true
	return w.Flush()
}

func (w *Writer) begin() error {
	if w.closed {
		return &StreamError{Description: "write after close"}
	}
	if w.err != nil {
		return w.err
	}
	if !w.started {
		w.started = true
		w.writeString("\n" + Version + "\n" + w.format.StartKey() + "\n")
	}
	return w.err
}

func (w *Writer) writeString(s string) {
	if w.err != nil {
		return
	}
	if _, err := w.out.WriteString(s); err != nil {
		w.err = errors.Wrap(err, "writing event listing")
	}
}

func (w *Writer) writeEventLine(evt *hepmc.Event) {
	l := w.line('E')
	l.addInt(evt.EventNumber)
	if w.format.hasMPI() {
		l.addInt(evt.MPI)
	}
	l.addFloat(evt.EventScale)
	l.addFloat(evt.AlphaQCD)
	l.addFloat(evt.AlphaQED)
	l.addInt(evt.SignalProcessID)
	l.addInt(barcodeOfVertex(evt.SignalProcessVertex()))
	l.addInt(evt.VerticesSize())
	if w.format.hasBeams() {
		b1, b2 := evt.BeamParticles()
		l.addInt(barcodeOfParticle(b1))
		l.addInt(barcodeOfParticle(b2))
	}
	l.addInt(len(evt.RandomStates))
	for _, s := range evt.RandomStates {
		l.add(strconv.FormatInt(s, 10))
	}
	l.addFloats(evt.Weights().Values())
	w.flushLine(l)
}

func (w *Writer) writeHeavyIon(hi *hepmc.HeavyIon) {
	l := w.line('H')
	if hi == nil {
		hi = &hepmc.HeavyIon{}
	}
	l.addInt(hi.NcollHard)
	l.addInt(hi.NpartProj)
	l.addInt(hi.NpartTarg)
	l.addInt(hi.Ncoll)
	l.addInt(hi.SpectatorNeutrons)
	l.addInt(hi.SpectatorProtons)
	l.addInt(hi.NNwoundedCollisions)
	l.addInt(hi.NwoundedNCollisions)
	l.addInt(hi.NwoundedNwoundedCollisions)
	l.addFloat(hi.ImpactParameter)
	l.addFloat(hi.EventPlaneAngle)
	l.addFloat(hi.Eccentricity)
	l.addFloat(hi.SigmaInelNN)
	w.flushLine(l)
}

func (w *Writer) writePdfInfo(pi *hepmc.PdfInfo) {
	l := w.line('F')
	if pi == nil {
		pi = &hepmc.PdfInfo{}
	}
	l.addInt(pi.ID1)
	l.addInt(pi.ID2)
	l.addFloat(pi.X1)
	l.addFloat(pi.X2)
	l.addFloat(pi.ScalePDF)
	l.addFloat(pi.PDF1)
	l.addFloat(pi.PDF2)
	if w.format.hasPdfIDs() {
		l.addInt(pi.PDFID1)
		l.addInt(pi.PDFID2)
	}
	w.flushLine(l)
}

func (w *Writer) writeVertex(v *hepmc.Vertex) {
	orphans := []*hepmc.Particle{}
	for _, p := range v.ParticlesIn() {
		if p.ProductionVertex() == nil {
			orphans = append(orphans, p)
		}
	}
	outs := v.ParticlesOut()

	pos := v.Position()
	l := w.line('V')
	l.addInt(v.Barcode())
	l.addInt(v.ID())
	l.addFloat(pos.X)
	l.addFloat(pos.Y)
	l.addFloat(pos.Z)
	l.addFloat(pos.T)
	l.addInt(len(orphans))
	l.addInt(len(outs))
	l.addFloats(v.Weights().Values())
	w.flushLine(l)

	for _, p := range orphans {
		w.writeParticle(p)
	}
	for _, p := range outs {
		w.writeParticle(p)
	}
}

func (w *Writer) writeParticle(p *hepmc.Particle) {
	m := p.Momentum()
	l := w.line('P')
	l.addInt(p.Barcode())
	l.addInt(p.PdgID())
	l.addFloat(m.Px())
	l.addFloat(m.Py())
	l.addFloat(m.Pz())
	l.addFloat(m.E())
	if w.format.hasGeneratedMass() {
		l.addFloat(p.GeneratedMass())
	}
	l.addInt(p.Status())
	l.addFloat(p.Polarization().Theta())
	l.addFloat(p.Polarization().Phi())
	l.addInt(barcodeOfVertex(p.EndVertex()))
	flow := p.Flow()
	idx := flow.Indices()
	l.addInt(len(idx))
	for _, i := range idx {
		l.addInt(i)
		l.addInt(flow.Code(i))
	}
	w.flushLine(l)
}

func (w *Writer) line(tag byte) *lineBuilder {
	l := &lineBuilder{prec: w.prec}
	l.b.WriteByte(tag)
	return l
}

func (w *Writer) flushLine(l *lineBuilder) {
	l.b.WriteByte('\n')
	w.writeString(l.b.String())
}

// lineBuilder accumulates the space separated fields of one record.
type lineBuilder struct {
	b    strings.Builder
	prec int
}

func (l *lineBuilder) add(s string) {
	l.b.WriteByte(' ')
	l.b.WriteString(s)
}

func (l *lineBuilder) addInt(i int) {
	l.add(strconv.Itoa(i))
}

// addFloat writes d with full precision, or 0 exactly as the token "0".
func (l *lineBuilder) addFloat(d float64) {
	l.add(formatFloat(d, l.prec))
}

// addFloats writes a count followed by the values.
func (l *lineBuilder) addFloats(ds []float64) {
	l.addInt(len(ds))
	for _, d := range ds {
		l.addFloat(d)
	}
}

func formatFloat(d float64, prec int) string {
	if d == 0 {
		return "0"
	}
	if prec > 0 {
		return strconv.FormatFloat(d, 'e', prec-1, 64)
	}
	return strconv.FormatFloat(d, 'g', -1, 64)
}

func barcodeOfVertex(v *hepmc.Vertex) int {
	if v == nil {
		return 0
	}
	return v.Barcode()
}

func barcodeOfParticle(p *hepmc.Particle) int {
	if p == nil {
		return 0
	}
	return p.Barcode()
}
