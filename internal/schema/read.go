package schema

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"github.com/simonhull/dfdoc/internal/logger"
)

const (
	// EncodingAuto sniffs the cpstream= trailer of a dump file and falls back
	// to UTF-8.
	EncodingAuto = "auto"
	// EncodingUTF8 is strict UTF-8; invalid lines are a decode error.
	EncodingUTF8 = "utf-8"

	trailerWindow  = 4 * 1024
	maxLineLength  = 4 * 1024 * 1024
	initialLineBuf = 64 * 1024
)

var (
	// ErrUnknownEncoding is returned for an encoding name that cannot be resolved.
	ErrUnknownEncoding = errors.New("unknown encoding")
	// ErrDecode is wrapped by every DecodeError.
	ErrDecode = errors.New("cannot decode input")

	cpstreamTrailer = regexp.MustCompile(`(?m)^cpstream=(\S+)`)
)

// DecodeError reports input that is not valid in the selected encoding.
type DecodeError struct {
	Line     int
	Encoding string
	Err      error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: %s as %s: %v", e.Line, ErrDecode, e.Encoding, e.Err)
	}
	return fmt.Sprintf("line %d: %s as %s", e.Line, ErrDecode, e.Encoding)
}

func (e *DecodeError) Unwrap() error { return ErrDecode }

type options struct {
	log      logger.Logger
	encoding string
}

// Option configures Parse and ParseFile.
type Option func(*options)

// WithLogger sets the logger that receives skipped-line diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithEncoding selects the input encoding: "auto", "utf-8", or any IANA or
// Progress code page name (ISO8859-1, 1252, IBM850, ...).
func WithEncoding(name string) Option {
	return func(o *options) { o.encoding = name }
}

func buildOptions(opts []Option) options {
	o := options{log: logger.NewSilent(), encoding: EncodingAuto}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.NewSilent()
	}
	return o
}

// ParseFile parses the dump at path. The file is closed before returning.
func ParseFile(path string, opts ...Option) (*Schema, error) {
	o := buildOptions(opts)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening schema file: %w", err)
	}
	defer f.Close()

	name := o.encoding
	if strings.EqualFold(name, EncodingAuto) {
		name = sniffEncoding(f)
		o.log.Debug("detected encoding", logger.F("file", path), logger.F("encoding", name))
	}

	s, err := parse(f, name, o.log.With(logger.F("file", path)))
	if err != nil {
		return nil, fmt.Errorf("reading schema file %s: %w", path, err)
	}
	return s, nil
}

// Parse parses a dump from r. With the default "auto" encoding r is read as
// UTF-8, since a plain reader cannot be sniffed without consuming it.
func Parse(r io.Reader, opts ...Option) (*Schema, error) {
	o := buildOptions(opts)
	name := o.encoding
	if strings.EqualFold(name, EncodingAuto) {
		name = EncodingUTF8
	}
	return parse(r, name, o.log)
}

func parse(r io.Reader, encName string, log logger.Logger) (*Schema, error) {
	enc, canonical, err := LookupEncoding(encName)
	if err != nil {
		return nil, err
	}
	strictUTF8 := enc == nil
	if !strictUTF8 {
		r = transform.NewReader(r, enc.NewDecoder())
	}

	p := NewParser(log)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, initialLineBuf), maxLineLength)

	n := 0
	for sc.Scan() {
		n++
		line := sc.Text()
		if n == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if strictUTF8 && !utf8.ValidString(line) {
			return nil, &DecodeError{Line: n, Encoding: canonical}
		}
		p.Feed(line)
	}
	if err := sc.Err(); err != nil {
		if !strictUTF8 && !errors.Is(err, bufio.ErrTooLong) {
			return nil, &DecodeError{Line: n + 1, Encoding: canonical, Err: err}
		}
		return nil, err
	}

	s := p.Finish()
	st := s.Stats()
	log.Debug("parsed schema",
		logger.F("lines", n),
		logger.F("sequences", st.Sequences),
		logger.F("tables", st.Tables),
		logger.F("fields", st.Fields))
	return s, nil
}

// sniffEncoding reads the tail of f looking for the cpstream= trailer. The
// file offset is left unchanged because only ReadAt is used.
func sniffEncoding(f *os.File) string {
	info, err := f.Stat()
	if err != nil || info.Size() == 0 {
		return EncodingUTF8
	}
	size := info.Size()
	off := size - trailerWindow
	if off < 0 {
		off = 0
	}
	buf := make([]byte, size-off)
	n, err := f.ReadAt(buf, off)
	if err != nil && !errors.Is(err, io.EOF) {
		return EncodingUTF8
	}
	m := cpstreamTrailer.FindSubmatch(buf[:n])
	if m == nil {
		return EncodingUTF8
	}
	name := string(m[1])
	if _, _, err := LookupEncoding(name); err != nil {
		return EncodingUTF8
	}
	return name
}

// progressAliases maps code page names used in dump trailers to IANA names.
var progressAliases = map[string]string{
	"utf8":  "utf-8",
	"big-5": "big5",
	"1250":  "windows-1250",
	"1251":  "windows-1251",
	"1252":  "windows-1252",
	"1253":  "windows-1253",
	"1254":  "windows-1254",
	"1255":  "windows-1255",
	"1256":  "windows-1256",
	"1257":  "windows-1257",
	"1258":  "windows-1258",
}

// LookupEncoding resolves an encoding name. A nil encoding means strict UTF-8.
// The second result is the canonical name used in messages.
func LookupEncoding(name string) (encoding.Encoding, string, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = EncodingUTF8
	}
	if alias, ok := progressAliases[key]; ok {
		key = alias
	}
	// ISO8859-1 → iso-8859-1
	if strings.HasPrefix(key, "iso8859-") {
		key = "iso-8859-" + strings.TrimPrefix(key, "iso8859-")
	}
	if key == EncodingUTF8 {
		return nil, EncodingUTF8, nil
	}

	enc, err := ianaindex.IANA.Encoding(key)
	if err != nil || enc == nil {
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	canonical, err := ianaindex.IANA.Name(enc)
	if err != nil {
		canonical = key
	}
	if strings.EqualFold(canonical, "utf-8") {
		return nil, EncodingUTF8, nil
	}
	return enc, canonical, nil
}
