package ascii

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const maxLineSize = 16 * 1024 * 1024

// lineReader yields the non-blank lines of a stream, trimmed, with one line
// of lookahead.
type lineReader struct {
	sc      *bufio.Scanner
	scanned int

	buf      string
	buffered bool
}

func newLineReader(r io.Reader) *lineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	return &lineReader{sc: sc}
}

// peek returns the next line without consuming it.
func (l *lineReader) peek() (string, bool) {
	if l.buffered {
		return l.buf, true
	}
	for l.sc.Scan() {
		l.scanned++
		text := strings.TrimSpace(l.sc.Text())
		if text == "" {
			continue
		}
		l.buf, l.buffered = text, true
		return text, true
	}
	return "", false
}

// next consumes the next line and returns it with its line number.
func (l *lineReader) next() (string, int, bool) {
	text, ok := l.peek()
	if !ok {
		return "", l.scanned, false
	}
	l.buffered = false
	return text, l.scanned, true
}

// line returns the number of the last line read from the stream.
func (l *lineReader) line() int {
	return l.scanned
}

func (l *lineReader) err() error {
	return l.sc.Err()
}

// fields parses the tokens of one record. The first failure is kept in err
// and turns every later call into a no-op returning zero.
type fields struct {
	toks   []string
	pos    int
	line   int
	record string
	err    *ParseError
}

func newFields(text string, line int) *fields {
	toks := strings.Fields(text)
	return &fields{
		toks:   toks[1:],
		line:   line,
		record: toks[0],
	}
}

func (f *fields) fail(format string, args ...interface{}) {
	if f.err == nil {
		f.err = &ParseError{
			Line:        f.line,
			Record:      f.record,
			Description: fmt.Sprintf(format, args...),
		}
	}
}

func (f *fields) token(what string) (string, bool) {
	if f.err != nil {
		return "", false
	}
	if f.pos >= len(f.toks) {
		f.fail("missing %s", what)
		return "", false
	}
	t := f.toks[f.pos]
	f.pos++
	return t, true
}

func (f *fields) readInt(what string) int {
	t, ok := f.token(what)
	if !ok {
		return 0
	}
	i, err := strconv.Atoi(t)
	if err != nil {
		f.fail("invalid %s %q", what, t)
	}
	return i
}

// readCount reads a non-negative integer.
func (f *fields) readCount(what string) int {
	n := f.readInt(what)
	if n < 0 {
		f.fail("negative %s %d", what, n)
		return 0
	}
	return n
}

func (f *fields) readInt64(what string) int64 {
	t, ok := f.token(what)
	if !ok {
		return 0
	}
	i, err := strconv.ParseInt(t, 10, 64)
	if err != nil {
		f.fail("invalid %s %q", what, t)
	}
	return i
}

func (f *fields) readFloat(what string) float64 {
	t, ok := f.token(what)
	if !ok {
		return 0
	}
	d, err := strconv.ParseFloat(t, 64)
	if err != nil {
		f.fail("invalid %s %q", what, t)
	}
	return d
}

func (f *fields) readString(what string) string {
	t, _ := f.token(what)
	return t
}

// rest returns the remaining tokens joined by single spaces.
func (f *fields) rest() string {
	if f.err != nil || f.pos >= len(f.toks) {
		return ""
	}
	s := strings.Join(f.toks[f.pos:], " ")
	f.pos = len(f.toks)
	return s
}

func (f *fields) remaining() int {
	return len(f.toks) - f.pos
}

// quoted splits a list of Go-quoted strings, as written in N records.
func quoted(s string) ([]string, error) {
	res := []string{}
	s = strings.TrimSpace(s)
	for s != "" {
		q, err := strconv.QuotedPrefix(s)
		if err != nil {
			return nil, err
		}
		u, err := strconv.Unquote(q)
		if err != nil {
			return nil, err
		}
		res = append(res, u)
		s = strings.TrimSpace(s[len(q):])
	}
	return res, nil
}
