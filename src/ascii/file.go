package ascii

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mosaicnetworks/hepmc/src/hepmc"
	"github.com/mosaicnetworks/hepmc/src/pdt"
)

// Mode is the direction a File is opened in.
type Mode int

const (
	// ModeRead opens an existing file for reading.
	ModeRead Mode = 1 << iota
	// ModeWrite creates or truncates a file for writing.
	ModeWrite
)

func (m Mode) String() string {
	switch m {
	case ModeRead:
		return "read"
	case ModeWrite:
		return "write"
	}
	return "invalid"
}

// File is an event listing on disk, open either for reading or for writing.
type File struct {
	path string
	mode Mode
	f    *os.File

	reader *Reader
	writer *Writer

	logger *logrus.Entry
}

// Open opens path in the given mode. Opening for reading and writing at the
// same time is not supported and returns ErrInvalidStreamMode.
func Open(path string, mode Mode, opts Options) (*File, error) {
	logger := opts.logger().WithField("file", path)
	opts.Logger = logger

	file := &File{
		path:   path,
		mode:   mode,
		logger: logger,
	}

	var err error
	switch mode {
	case ModeRead:
		if file.f, err = os.Open(path); err != nil {
			return nil, errors.Wrapf(err, "opening %s", path)
		}
		file.reader = NewReader(file.f, opts)
	case ModeWrite:
		if file.f, err = os.Create(path); err != nil {
			return nil, errors.Wrapf(err, "creating %s", path)
		}
		file.writer = NewWriter(file.f, opts)
	default:
		logger.WithField("mode", int(mode)).Error("Files open either for reading or for writing")
		return nil, ErrInvalidStreamMode
	}

	return file, nil
}

// Path returns the file path.
func (f *File) Path() string {
	return f.path
}

// Mode returns the mode the file was opened in.
func (f *File) Mode() Mode {
	return f.mode
}

// Reader returns the underlying Reader, or nil for a write file.
func (f *File) Reader() *Reader {
	return f.reader
}

// ReadEvent reads the next event. See Reader.ReadEvent.
func (f *File) ReadEvent() (*hepmc.Event, error) {
	if err := f.check(ModeRead, "ReadEvent"); err != nil {
		return nil, err
	}
	return f.reader.ReadEvent()
}

// FillNextEvent fills evt with the next event. See Reader.FillNextEvent.
func (f *File) FillNextEvent(evt *hepmc.Event) error {
	if err := f.check(ModeRead, "FillNextEvent"); err != nil {
		return err
	}
	return f.reader.FillNextEvent(evt)
}

// ReadParticleDataTable reads the next particle data block.
func (f *File) ReadParticleDataTable() (*pdt.Table, error) {
	if err := f.check(ModeRead, "ReadParticleDataTable"); err != nil {
		return nil, err
	}
	return f.reader.ReadParticleDataTable()
}

// WriteEvent appends evt to the listing.
func (f *File) WriteEvent(evt *hepmc.Event) error {
	if err := f.check(ModeWrite, "WriteEvent"); err != nil {
		return err
	}
	return f.writer.WriteEvent(evt)
}

// WriteComment writes a comment block.
func (f *File) WriteComment(c string) error {
	if err := f.check(ModeWrite, "WriteComment"); err != nil {
		return err
	}
	return f.writer.WriteComment(c)
}

// WriteParticleDataTable writes a particle data block.
func (f *File) WriteParticleDataTable(t *pdt.Table) error {
	if err := f.check(ModeWrite, "WriteParticleDataTable"); err != nil {
		return err
	}
	return f.writer.WriteParticleDataTable(t)
}

// Close terminates the listing of a write file and closes the file.
func (f *File) Close() error {
	var err error
	if f.writer != nil {
		err = f.writer.Close()
	}
	if cerr := f.f.Close(); cerr != nil && err == nil {
		err = errors.Wrapf(cerr, "closing %s", f.path)
	}
	return err
}

func (f *File) check(want Mode, op string) error {
	if f.mode != want {
		f.logger.WithFields(logrus.Fields{
			"op":   op,
			"mode": f.mode,
		}).Error("Operation does not match file mode, ignored")
		return ErrInvalidStreamMode
	}
	return nil
}
