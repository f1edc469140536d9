package ascii

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mosaicnetworks/hepmc/src/hepmc"
	"github.com/mosaicnetworks/hepmc/src/pdt"
	"github.com/mosaicnetworks/hepmc/src/units"
	"github.com/mosaicnetworks/hepmc/src/vector"
)

type readerState int

const (
	seekStart readerState = iota
	readEvent
	atEOF
)

// Reader reads events from an event listing. It detects the format from the
// listing key; a stream without keys that starts with an E record is read in
// the format given in the Options.
//
// A malformed event is skipped: the Reader moves on to the next E record or
// listing key and returns a ParseError, after which reading can go on. A
// StreamError is final and is returned by every later call.
type Reader struct {
	lines *lineReader

	format Format
	framed bool
	blocks int
	state  readerState
	err    error

	strict       bool
	momentumUnit units.MomentumUnit
	lengthUnit   units.LengthUnit

	warnings []error
	comments []string
	table    *pdt.Table

	logger *logrus.Entry
}

// NewReader returns a Reader for r.
func NewReader(r io.Reader, opts Options) *Reader {
	mom, length := opts.defaultUnits()
	return &Reader{
		lines:        newLineReader(r),
		format:       opts.Format,
		strict:       opts.StrictReferences,
		momentumUnit: mom,
		lengthUnit:   length,
		logger:       opts.logger(),
	}
}

// Format returns the format of the current listing.
func (r *Reader) Format() Format {
	return r.format
}

// Err returns the error that stopped the Reader, if any.
func (r *Reader) Err() error {
	return r.err
}

// Warnings returns the unresolved end vertex references of the last event
// read.
func (r *Reader) Warnings() []error {
	return r.warnings
}

// Comments returns the comments met so far.
func (r *Reader) Comments() []string {
	return r.comments
}

// ParticleDataTable returns the last particle data block met so far, or nil.
func (r *Reader) ParticleDataTable() *pdt.Table {
	return r.table
}

// ReadEvent reads the next event. It returns io.EOF when there are no more
// events.
func (r *Reader) ReadEvent() (*hepmc.Event, error) {
	evt := hepmc.NewEventWithUnits(r.momentumUnit, r.lengthUnit)
	evt.SetLogger(r.logger)
	if err := r.FillNextEvent(evt); err != nil {
		return nil, err
	}
	return evt, nil
}

// FillNextEvent clears evt and fills it with the next event. It returns
// io.EOF when there are no more events, in which case evt is left untouched.
func (r *Reader) FillNextEvent(evt *hepmc.Event) error {
	if evt == nil {
		return errors.New("FillNextEvent: nil event")
	}
	if r.err != nil {
		return r.err
	}
	r.warnings = nil

	for {
		switch r.state {
		case seekStart:
			if r.seekStart() {
				r.state = readEvent
			} else {
				r.state = atEOF
			}

		case readEvent:
			line, ok := r.lines.peek()
			if !ok {
				if r.framed {
					return r.fatal("event listing ends without %s", r.format.EndKey())
				}
				r.state = atEOF
				continue
			}
			if isEventLine(line) {
				return r.readEvent(evt)
			}
			if line == r.format.EndKey() {
				r.lines.next()
				r.state = seekStart
				continue
			}
			if f, ok := formatOfStartKey(line); ok {
				r.lines.next()
				r.logger.WithField("format", f).Warn("Event listing restarted without end key")
				r.openListing(f)
				continue
			}
			if r.skipBlock(line) {
				continue
			}
			_, n, _ := r.lines.next()
			r.resync()
			err := &ParseError{Line: n, Description: fmt.Sprintf("unexpected line %q", truncate(line))}
			r.logger.WithError(err).Warn("Skipping unexpected input")
			return err

		case atEOF:
			if err := r.lines.err(); err != nil {
				return r.fatal("reading stream: %v", err)
			}
			return io.EOF
		}
	}
}

// ReadParticleDataTable skips forward to the next particle data block and
// returns it. Events passed over are lost. It returns io.EOF if there is no
// further block.
func (r *Reader) ReadParticleDataTable() (*pdt.Table, error) {
	if r.err != nil {
		return nil, r.err
	}
	for {
		line, _, ok := r.lines.next()
		if !ok {
			if err := r.lines.err(); err != nil {
				return nil, r.fatal("reading stream: %v", err)
			}
			r.state = atEOF
			return nil, io.EOF
		}
		switch {
		case line == particleDataStartKey:
			t, err := r.readParticleData()
			if err != nil {
				return nil, err
			}
			r.table = t
			return t, nil
		case isEndKey(line):
			r.state = seekStart
		default:
			if f, ok := formatOfStartKey(line); ok {
				r.openListing(f)
			}
		}
	}
}

func (r *Reader) openListing(f Format) {
	r.format = f
	r.framed = true
	r.blocks++
	r.state = readEvent
}

// seekStart skips to the next start key. The first listing may also start
// directly with an E record. It returns false at the end of the stream.
func (r *Reader) seekStart() bool {
	for {
		line, ok := r.lines.peek()
		if !ok {
			return false
		}
		if f, ok := formatOfStartKey(line); ok {
			r.lines.next()
			r.openListing(f)
			return true
		}
		if isEventLine(line) && r.blocks == 0 {
			r.logger.WithField("format", r.format).Debug("No listing key, reading unframed events")
			r.framed = false
			r.blocks++
			return true
		}
		if r.skipBlock(line) {
			continue
		}
		r.lines.next()
	}
}

// skipBlock consumes the banner, comments and particle data blocks. It
// returns false if line starts none of them.
func (r *Reader) skipBlock(line string) bool {
	switch {
	case strings.HasPrefix(line, "HepMC::Version"):
		r.lines.next()
	case line == commentKey:
		r.lines.next()
		if c, _, ok := r.lines.next(); ok {
			r.comments = append(r.comments, c)
		}
	case line == particleDataStartKey:
		r.lines.next()
		t, err := r.readParticleData()
		if err != nil {
			r.logger.WithError(err).Warn("Skipping particle data block")
			return true
		}
		r.table = t
	default:
		return false
	}
	return true
}

func (r *Reader) readParticleData() (*pdt.Table, error) {
	t := pdt.NewTable("")
	for {
		line, ok := r.lines.peek()
		if !ok {
			return nil, &ParseError{
				Line:        r.lines.line(),
				Description: "particle data block ends without " + particleDataEndKey,
			}
		}
		if line == particleDataEndKey {
			r.lines.next()
			return t, nil
		}
		if line[0] != 'D' {
			return nil, &ParseError{
				Line:        r.lines.line(),
				Description: fmt.Sprintf("unexpected line %q in particle data block", truncate(line)),
			}
		}

		_, n, _ := r.lines.next()
		f := newFields(line, n)
		d := &pdt.ParticleData{}
		d.ID = f.readInt("id")
		d.Charge = f.readFloat("charge")
		d.Mass = f.readFloat("mass")
		d.CLifetime = f.readFloat("clifetime")
		d.Spin = float64(f.readInt("spin")) / 2
		d.Name = f.rest()
		if f.err != nil {
			return nil, f.err
		}
		t.Insert(d)
	}
}

type eventHeader struct {
	signalVertex int
	vertices     int
	beam1, beam2 int
}

type pendingLink struct {
	particle *hepmc.Particle
	vertex   int
}

// readEvent reads one event starting at its E record.
func (r *Reader) readEvent(evt *hepmc.Event) error {
	evt.Clear()
	evt.SetUnits(r.momentumUnit, r.lengthUnit)

	text, n, _ := r.lines.next()
	f := newFields(text, n)
	hdr := r.parseEventLine(f, evt)
	if f.err != nil {
		return r.abort(evt, f.err)
	}

	// optional records before the first vertex
	for {
		line, ok := r.lines.peek()
		if !ok || isEventLine(line) || strings.HasPrefix(line, keyPrefix) ||
			line[0] == 'V' || line[0] == 'P' {
			break
		}
		text, n, _ := r.lines.next()
		var err *ParseError
		switch line[0] {
		case 'N':
			err = r.parseWeightNames(text, n, evt)
		case 'U':
			err = r.parseUnits(newFields(text, n), evt)
		case 'C':
			err = r.parseCrossSection(newFields(text, n), evt)
		case 'H':
			err = r.parseHeavyIon(newFields(text, n), evt)
		case 'F':
			err = r.parsePdfInfo(newFields(text, n), evt)
		default:
			r.logger.WithFields(logrus.Fields{
				"line":   n,
				"record": string(line[0]),
			}).Debug("Skipping unknown record")
		}
		if err != nil {
			return r.abort(evt, err)
		}
	}

	pending := []pendingLink{}
	for i := 0; i < hdr.vertices; i++ {
		text, n, err := r.expect('V')
		if err != nil {
			return r.abort(evt, err)
		}
		f := newFields(text, n)
		v, orphans, outs := r.parseVertex(f)
		if f.err != nil {
			return r.abort(evt, f.err)
		}
		evt.AddVertex(v)

		for j := 0; j < orphans+outs; j++ {
			text, n, err := r.expect('P')
			if err != nil {
				return r.abort(evt, err)
			}
			f := newFields(text, n)
			p, end := r.parseParticle(f)
			if f.err != nil {
				return r.abort(evt, f.err)
			}
			if j < orphans {
				v.AddParticleIn(p)
				continue
			}
			v.AddParticleOut(p)
			if end != 0 {
				pending = append(pending, pendingLink{particle: p, vertex: end})
			}
		}
	}

	var refErr error
	for _, l := range pending {
		v := evt.BarcodeToVertex(l.vertex)
		if v == nil {
			e := &ReferenceError{Particle: l.particle.Barcode(), Vertex: l.vertex}
			r.logger.WithFields(logrus.Fields{
				"event":    evt.EventNumber,
				"particle": e.Particle,
				"vertex":   e.Vertex,
			}).Warn("Unresolved end vertex")
			r.warnings = append(r.warnings, e)
			if refErr == nil {
				refErr = e
			}
			continue
		}
		v.AddParticleIn(l.particle)
	}
	if refErr != nil && r.strict {
		evt.Clear()
		return refErr
	}

	if hdr.signalVertex != 0 {
		v := evt.BarcodeToVertex(hdr.signalVertex)
		if v == nil {
			r.logger.WithFields(logrus.Fields{
				"event":  evt.EventNumber,
				"vertex": hdr.signalVertex,
			}).Warn("Unresolved signal process vertex")
		}
		evt.SetSignalProcessVertex(v)
	}
	evt.SetBeamParticles(evt.BarcodeToParticle(hdr.beam1), evt.BarcodeToParticle(hdr.beam2))

	return nil
}

// expect consumes the next line if it is a record of the given type.
func (r *Reader) expect(tag byte) (string, int, *ParseError) {
	line, ok := r.lines.peek()
	if !ok {
		return "", 0, &ParseError{
			Line:        r.lines.line(),
			Record:      string(tag),
			Description: "unexpected end of stream",
		}
	}
	if line[0] != tag || strings.HasPrefix(line, keyPrefix) {
		return "", 0, &ParseError{
			Line:        r.lines.line(),
			Record:      string(tag),
			Description: fmt.Sprintf("expected %c record, found %q", tag, truncate(line)),
		}
	}
	text, n, _ := r.lines.next()
	return text, n, nil
}

// abort clears the event and skips to the next event or listing key.
func (r *Reader) abort(evt *hepmc.Event, err *ParseError) error {
	evt.Clear()
	r.resync()
	r.logger.WithError(err).Warn("Skipping malformed event")
	return err
}

func (r *Reader) resync() {
	for {
		line, ok := r.lines.peek()
		if !ok || isEventLine(line) || strings.HasPrefix(line, keyPrefix) {
			return
		}
		r.lines.next()
	}
}

func (r *Reader) fatal(format string, args ...interface{}) error {
	r.err = &StreamError{
		Line:        r.lines.line(),
		Description: fmt.Sprintf(format, args...),
	}
	r.state = atEOF
	r.logger.WithError(r.err).Error("Stream is unreadable")
	return r.err
}

func (r *Reader) parseEventLine(f *fields, evt *hepmc.Event) eventHeader {
	h := eventHeader{}
	evt.EventNumber = f.readInt("event number")
	if r.format.hasMPI() {
		evt.MPI = f.readInt("mpi")
	}
	evt.EventScale = f.readFloat("event scale")
	evt.AlphaQCD = f.readFloat("alpha QCD")
	evt.AlphaQED = f.readFloat("alpha QED")
	evt.SignalProcessID = f.readInt("signal process id")
	h.signalVertex = f.readInt("signal process vertex")
	h.vertices = f.readCount("number of vertices")
	if r.format.hasBeams() {
		h.beam1 = f.readInt("beam particle")
		h.beam2 = f.readInt("beam particle")
	}

	nrs := f.readCount("number of random states")
	var rs []int64
	for i := 0; i < nrs && f.err == nil; i++ {
		rs = append(rs, f.readInt64("random state"))
	}
	evt.RandomStates = rs

	nw := f.readCount("number of weights")
	for i := 0; i < nw && f.err == nil; i++ {
		evt.Weights().Push(f.readFloat("weight"))
	}
	return h
}

func (r *Reader) parseWeightNames(text string, line int, evt *hepmc.Event) *ParseError {
	fail := func(format string, args ...interface{}) *ParseError {
		return &ParseError{Line: line, Record: "N", Description: fmt.Sprintf(format, args...)}
	}

	body := strings.TrimSpace(text[1:])
	count, list := body, ""
	if i := strings.IndexAny(body, " \t"); i >= 0 {
		count, list = body[:i], body[i:]
	}
	f := newFields("N "+count, line)
	n := f.readCount("number of weight names")
	if f.err != nil {
		return f.err
	}
	names, err := quoted(list)
	if err != nil {
		return fail("invalid weight names: %v", err)
	}
	if len(names) != n {
		return fail("%d weight names announced, %d found", n, len(names))
	}

	w := evt.Weights()
	if n != w.Len() {
		return fail("%d weight names for %d weights", n, w.Len())
	}
	values := w.Values()
	w.Clear()
	for i, name := range names {
		if w.HasKey(name) {
			return fail("duplicate weight name %q", name)
		}
		w.Set(name, values[i])
	}
	return nil
}

func (r *Reader) parseUnits(f *fields, evt *hepmc.Event) *ParseError {
	momName := f.readString("momentum unit")
	lengthName := f.readString("length unit")
	if f.err != nil {
		return f.err
	}
	mom, err := units.ParseMomentumUnit(momName)
	if err != nil && momName != units.UnknownMomentum.String() {
		f.fail("%v", err)
		return f.err
	}
	length, err := units.ParseLengthUnit(lengthName)
	if err != nil && lengthName != units.UnknownLength.String() {
		f.fail("%v", err)
		return f.err
	}
	evt.SetUnits(mom, length)
	return nil
}

func (r *Reader) parseCrossSection(f *fields, evt *hepmc.Event) *ParseError {
	value := f.readFloat("cross section")
	e := f.readFloat("cross section error")
	if f.err != nil {
		return f.err
	}
	evt.CrossSection = hepmc.NewCrossSection(value, e)
	return nil
}

func (r *Reader) parseHeavyIon(f *fields, evt *hepmc.Event) *ParseError {
	hi := &hepmc.HeavyIon{}
	hi.NcollHard = f.readInt("Ncoll_hard")
	hi.NpartProj = f.readInt("Npart_proj")
	hi.NpartTarg = f.readInt("Npart_targ")
	hi.Ncoll = f.readInt("Ncoll")
	hi.SpectatorNeutrons = f.readInt("spectator neutrons")
	hi.SpectatorProtons = f.readInt("spectator protons")
	hi.NNwoundedCollisions = f.readInt("N-Nwounded collisions")
	hi.NwoundedNCollisions = f.readInt("Nwounded-N collisions")
	hi.NwoundedNwoundedCollisions = f.readInt("Nwounded-Nwounded collisions")
	hi.ImpactParameter = f.readFloat("impact parameter")
	hi.EventPlaneAngle = f.readFloat("event plane angle")
	hi.Eccentricity = f.readFloat("eccentricity")
	hi.SigmaInelNN = f.readFloat("sigma inel NN")
	if f.err != nil {
		return f.err
	}
	if hi.NcollHard == 0 {
		evt.HeavyIon = nil
		return nil
	}
	evt.HeavyIon = hi
	return nil
}

func (r *Reader) parsePdfInfo(f *fields, evt *hepmc.Event) *ParseError {
	pi := &hepmc.PdfInfo{}
	pi.ID1 = f.readInt("id1")
	pi.ID2 = f.readInt("id2")
	pi.X1 = f.readFloat("x1")
	pi.X2 = f.readFloat("x2")
	pi.ScalePDF = f.readFloat("scale")
	pi.PDF1 = f.readFloat("pdf1")
	pi.PDF2 = f.readFloat("pdf2")
	if f.remaining() >= 2 {
		pi.PDFID1 = f.readInt("pdf id1")
		pi.PDFID2 = f.readInt("pdf id2")
	}
	if f.err != nil {
		return f.err
	}
	if pi.ID1 == 0 {
		evt.PdfInfo = nil
		return nil
	}
	evt.PdfInfo = pi
	return nil
}

func (r *Reader) parseVertex(f *fields) (*hepmc.Vertex, int, int) {
	bc := f.readInt("barcode")
	id := f.readInt("id")
	x := f.readFloat("x")
	y := f.readFloat("y")
	z := f.readFloat("z")
	t := f.readFloat("t")
	orphans := f.readCount("number of orphan particles")
	outs := f.readCount("number of outgoing particles")

	v := hepmc.NewVertex(vector.NewFourVector(x, y, z, t), id)
	nw := f.readCount("number of weights")
	for i := 0; i < nw && f.err == nil; i++ {
		v.Weights().Push(f.readFloat("weight"))
	}

	if bc > 0 {
		f.fail("positive vertex barcode %d", bc)
	}
	if f.err != nil {
		return nil, 0, 0
	}
	if bc != 0 {
		v.SuggestBarcode(bc)
	}
	return v, orphans, outs
}

func (r *Reader) parseParticle(f *fields) (*hepmc.Particle, int) {
	bc := f.readInt("barcode")
	pdg := f.readInt("pdg id")
	px := f.readFloat("px")
	py := f.readFloat("py")
	pz := f.readFloat("pz")
	e := f.readFloat("energy")
	var mass float64
	if r.format.hasGeneratedMass() {
		mass = f.readFloat("generated mass")
	}
	status := f.readInt("status")
	theta := f.readFloat("theta")
	phi := f.readFloat("phi")
	end := f.readInt("end vertex")

	p := hepmc.NewParticle(vector.NewFourVector(px, py, pz, e), pdg, status)
	nflow := f.readCount("number of flow codes")
	for i := 0; i < nflow && f.err == nil; i++ {
		idx := f.readInt("flow index")
		code := f.readInt("flow code")
		p.SetFlowCode(idx, code)
	}

	if bc < 0 {
		f.fail("negative particle barcode %d", bc)
	}
	if f.err != nil {
		return nil, 0
	}

	if r.format.hasGeneratedMass() {
		p.SetGeneratedMass(mass)
	}
	if theta != 0 || phi != 0 {
		p.SetPolarization(hepmc.NewPolarization(theta, phi))
	}
	if bc != 0 {
		p.SuggestBarcode(bc)
	}
	return p, end
}

func isEventLine(line string) bool {
	return line[0] == 'E' && (len(line) == 1 || line[1] == ' ' || line[1] == '\t')
}

func truncate(s string) string {
	if len(s) > 40 {
		return s[:40] + "..."
	}
	return s
}
