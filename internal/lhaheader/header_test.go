package lhaheader_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/cosnicolaou/lha5/internal/lhaheader"
)

// goodHeader is a level-1 header for a member named "A", packed size 13,
// original size 8, stored CRC 0xae13, no extended headers beyond the
// zero-length terminator.
var goodHeader = []byte{
	24, 241, 45, 108, 104, 53, 45, 13, 0, 0, 0, 8, 0, 0, 0, 0, 0, 0, 0, 32, 1,
	1, 65, 19, 174, 85, 0, 0,
}

func TestParseGoodHeader(t *testing.T) {
	hdr, err := lhaheader.Parse(bytes.NewReader(goodHeader))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if hdr.Name != "A" {
		t.Errorf("Name = %q, want %q", hdr.Name, "A")
	}
	if hdr.Method != lhaheader.LZHUFF5 {
		t.Errorf("Method = %v, want %v", hdr.Method, lhaheader.LZHUFF5)
	}
	if hdr.PackedSize != 13 {
		t.Errorf("PackedSize = %d, want 13", hdr.PackedSize)
	}
	if hdr.OriginalSize != 8 {
		t.Errorf("OriginalSize = %d, want 8", hdr.OriginalSize)
	}
	if hdr.CRC16 != 0xae13 {
		t.Errorf("CRC16 = %04x, want ae13", hdr.CRC16)
	}
}

// mutate returns a copy of goodHeader with byte i set to v.
func mutate(i int, v byte) []byte {
	cp := append([]byte(nil), goodHeader...)
	cp[i] = v
	return cp
}

func TestParseBadAttribute(t *testing.T) {
	_, err := lhaheader.Parse(bytes.NewReader(mutate(19, 0x00)))
	if !errors.Is(err, lhaheader.ErrBadAttribute) {
		t.Fatalf("got %v, want ErrBadAttribute", err)
	}
}

func TestParseUnsupportedLevel(t *testing.T) {
	_, err := lhaheader.Parse(bytes.NewReader(mutate(20, 0x02)))
	var levelErr lhaheader.ErrUnsupportedLevel
	if !errors.As(err, &levelErr) || levelErr.Level != 2 {
		t.Fatalf("got %v, want ErrUnsupportedLevel{Level:2}", err)
	}
}

func TestParseBadMethod(t *testing.T) {
	_, err := lhaheader.Parse(bytes.NewReader(mutate(2, 'x')))
	if !errors.Is(err, lhaheader.ErrBadMethod) {
		t.Fatalf("got %v, want ErrBadMethod", err)
	}
}

func TestParseBadChecksum(t *testing.T) {
	_, err := lhaheader.Parse(bytes.NewReader(mutate(1, 0x00)))
	if !errors.Is(err, lhaheader.ErrBadChecksum) {
		t.Fatalf("got %v, want ErrBadChecksum", err)
	}
}

func TestParseShortCommonHeader(t *testing.T) {
	_, err := lhaheader.Parse(bytes.NewReader(goodHeader[:10]))
	var shortErr lhaheader.ErrShortHeader
	if !errors.As(err, &shortErr) {
		t.Fatalf("got %v, want ErrShortHeader", err)
	}
	if !errors.Is(shortErr.Reason, io.ErrUnexpectedEOF) {
		t.Fatalf("Reason = %v, want io.ErrUnexpectedEOF", shortErr.Reason)
	}
}

func TestParseShortExtendedHeader(t *testing.T) {
	// Truncate right after the common prefix, before name/CRC/OS-id.
	_, err := lhaheader.Parse(bytes.NewReader(goodHeader[:21]))
	var shortErr lhaheader.ErrShortExtendedHeader
	if !errors.As(err, &shortErr) {
		t.Fatalf("got %v, want ErrShortExtendedHeader", err)
	}
}

// extHeader is goodHeader with one 4-byte extended-header record (2-byte
// size field, 2 bytes of discarded content) spliced in before the
// zero-length terminator.
var extHeader = append(append(append([]byte(nil), goodHeader[:26]...), 4, 0, 0xAA, 0xBB), 0, 0)

func TestParseExtendedHeaderArithmetic(t *testing.T) {
	hdr, err := lhaheader.Parse(bytes.NewReader(extHeader))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if hdr.PackedSize != 13-4 {
		t.Errorf("PackedSize = %d, want %d (13 raw minus the 4-byte extended record)", hdr.PackedSize, 13-4)
	}
	if hdr.Name != "A" {
		t.Errorf("Name = %q, want %q", hdr.Name, "A")
	}
}

func TestParseTruncatedExtendedHeaderChain(t *testing.T) {
	// Drop the final byte of the 2-byte zero terminator that ends the
	// extended-header chain: an unexpected EOF reading the next record's
	// size field is treated as a structural error, not an I/O one.
	_, err := lhaheader.Parse(bytes.NewReader(goodHeader[:len(goodHeader)-1]))
	if !errors.Is(err, lhaheader.ErrBadExtendedHeader) {
		t.Fatalf("got %v, want ErrBadExtendedHeader", err)
	}
}
