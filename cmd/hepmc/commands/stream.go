package commands

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/mosaicnetworks/hepmc/src/ascii"
	"github.com/mosaicnetworks/hepmc/src/hepmc"
)

// readSummary counts what happened while reading a listing.
type readSummary struct {
	Events     int
	Skipped    int
	Unresolved int
	Format     ascii.Format
	Comments   []string
	reader     *ascii.Reader
}

// eachEvent reads every event of the listing at path and hands it to fn.
// Malformed events are logged and counted, while an unreadable stream or an
// error returned by fn stops the loop.
func eachEvent(path string, fn func(*hepmc.Event) error) (*readSummary, error) {
	opts, err := _config.ReaderOptions()
	if err != nil {
		return nil, err
	}

	file, err := ascii.Open(path, ascii.ModeRead, opts)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	summary := &readSummary{reader: file.Reader()}
	logger := _config.Logger().WithField("file", path)

	for {
		evt, err := file.ReadEvent()
		if err == io.EOF {
			break
		}
		if ascii.IsParseError(err) || ascii.IsReferenceError(err) {
			summary.Skipped++
			continue
		}
		if err != nil {
			return summary, err
		}

		summary.Events++
		if w := file.Reader().Warnings(); len(w) > 0 {
			summary.Unresolved += len(w)
			logger.WithFields(logrus.Fields{
				"event":      evt.EventNumber,
				"unresolved": len(w),
			}).Debug("Event read with unresolved end vertices")
		}

		if err := fn(evt); err != nil {
			return summary, err
		}
	}

	summary.Format = file.Reader().Format()
	summary.Comments = file.Reader().Comments()

	logger.WithFields(logrus.Fields{
		"events":     summary.Events,
		"skipped":    summary.Skipped,
		"unresolved": summary.Unresolved,
	}).Debug("Listing read")

	return summary, nil
}
