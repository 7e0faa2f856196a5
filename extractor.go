package lha5

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cosnicolaou/lha5/internal/lhaheader"
	"github.com/cosnicolaou/lha5/internal/lzhuff5"
)

// Progress describes a single window-flush update emitted during
// extraction: the sliding window flushes to the sink whenever its cursor
// wraps to 0. Written and Total are both counts of decompressed bytes.
type Progress struct {
	Written int64
	Total   int64
}

type options struct {
	verbose    bool
	logger     *log.Logger
	progressCh chan<- Progress
}

// Option configures Extract.
type Option func(*options)

// Verbose enables trace logging of block boundaries.
func Verbose(v bool) Option {
	return func(o *options) { o.verbose = v }
}

// WithLogger overrides the destination for verbose/diagnostic output.
// The default logs to os.Stderr with no prefix.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// SendProgress requests a Progress update on ch for every sliding-window
// flush. The send does not block: an update that finds ch full is
// dropped. ch is never closed by Extract; the caller owns it.
func SendProgress(ch chan<- Progress) Option {
	return func(o *options) { o.progressCh = ch }
}

// Result reports what was extracted.
type Result struct {
	Name          string
	Written       int64
	CRC16         uint16
	ExpectedCRC16 uint16
}

// CRCMismatchError is returned when the decoded bytes do not match the
// header's stored CRC-16. It is a non-fatal diagnostic: the output
// produced so far is still meaningful and the caller should keep it.
type CRCMismatchError struct {
	Name string
}

func (e *CRCMismatchError) Error() string {
	return fmt.Sprintf("CRC error: %q", e.Name)
}

// Extract parses a single LHA level-1 header from src, decodes its
// LZHUFF5 payload into dst, and checks the result against the header's
// stored CRC. A *CRCMismatchError is returned alongside a populated
// Result when the CRC disagrees; every other error means no usable
// output was produced.
//
// Callers that need the stored member name before they can open their
// destination (cmd/lha5 does, to name the output file) should call
// lhaheader.Parse themselves and use ExtractBody instead.
func Extract(src io.Reader, dst io.Writer, opts ...Option) (Result, error) {
	hdr, err := lhaheader.Parse(src)
	if err != nil {
		return Result{}, err
	}
	return ExtractBody(hdr, src, dst, opts...)
}

// ExtractBody decodes the LZHUFF5 payload that immediately follows an
// already-parsed header, writing to dst and checking the result against
// hdr.CRC16. hdr.PackedSize and hdr.OriginalSize must describe the bytes
// that follow src's current position.
func ExtractBody(hdr *lhaheader.Header, src io.Reader, dst io.Writer, opts ...Option) (Result, error) {
	o := &options{logger: log.New(os.Stderr, "", 0)}
	for _, fn := range opts {
		fn(o)
	}

	if o.verbose {
		o.logger.Printf("extracting %q: %d bytes packed, %d bytes original", hdr.Name, hdr.PackedSize, hdr.OriginalSize)
	}

	out := io.Writer(dst)
	if o.progressCh != nil {
		out = &progressWriter{w: dst, total: int64(hdr.OriginalSize), ch: o.progressCh}
	}

	dec := lzhuff5.New(src, int64(hdr.PackedSize), int64(hdr.OriginalSize), out)
	if o.verbose {
		dec.Logger = o.logger
	}
	crc, err := dec.Decode()
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Name:          hdr.Name,
		Written:       int64(hdr.OriginalSize),
		CRC16:         crc,
		ExpectedCRC16: hdr.CRC16,
	}
	if crc != hdr.CRC16 {
		return result, &CRCMismatchError{Name: hdr.Name}
	}
	return result, nil
}

// progressWriter forwards writes to w and reports cumulative progress on
// ch.
type progressWriter struct {
	w       io.Writer
	total   int64
	written int64
	ch      chan<- Progress
}

func (p *progressWriter) Write(buf []byte) (int, error) {
	n, err := p.w.Write(buf)
	p.written += int64(n)
	select {
	case p.ch <- Progress{Written: p.written, Total: p.total}:
	default:
	}
	return n, err
}
