// Package lhaheader parses an LHA level-1 archive header: the fixed
// 21-byte common prefix, the file name, the expected CRC-16 and the
// chain of extended headers that precede the compressed payload.
package lhaheader

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Method is the 5-byte compression method identifier.
type Method [5]byte

// LZHUFF5 is the only method this decoder understands.
var LZHUFF5 = Method{'-', 'l', 'h', '5', '-'}

func (m Method) String() string { return string(m[:]) }

// Errors returned by Parse. cmd/lha5 renders these into stable,
// user-facing messages.
var (
	ErrBadAttribute      = errors.New("invalid lha header attribute byte")
	ErrBadMethod         = errors.New("compression method is not LZHUFF5")
	ErrBadChecksum       = errors.New("invalid lha header checksum")
	ErrBadExtendedHeader = errors.New("invalid extended lha header")
)

// ErrUnsupportedLevel is returned for any header level other than 1.
type ErrUnsupportedLevel struct{ Level byte }

func (e ErrUnsupportedLevel) Error() string {
	return fmt.Sprintf("header level %d is not supported", e.Level)
}

// ErrShortHeader wraps a read failure on the fixed common prefix.
type ErrShortHeader struct{ Reason error }

func (e ErrShortHeader) Error() string { return fmt.Sprintf("unable to read lha header: %v", e.Reason) }
func (e ErrShortHeader) Unwrap() error { return e.Reason }

// ErrShortExtendedHeader wraps a read failure on the variable-length
// remainder of the header (name, CRC, OS id, extended-header chain).
type ErrShortExtendedHeader struct{ Reason error }

func (e ErrShortExtendedHeader) Error() string {
	return fmt.Sprintf("unable to read full lha header: %v", e.Reason)
}
func (e ErrShortExtendedHeader) Unwrap() error { return e.Reason }

const commonHeaderSize = 21

// Header is everything the decoder core needs from the archive
// container: the sizes, the stored name and the CRC to verify against.
type Header struct {
	Method       Method
	PackedSize   uint32 // compressed payload size, after extended-header arithmetic
	OriginalSize uint32
	Name         string
	CRC16        uint16
}

// Parse reads one level-1 header from r and leaves r positioned at the
// first byte of the compressed payload.
func Parse(r io.Reader) (*Header, error) {
	var common [commonHeaderSize]byte
	if _, err := io.ReadFull(r, common[:]); err != nil {
		return nil, ErrShortHeader{Reason: err}
	}

	headerSize := int(common[0])
	checksum := common[1]
	var method Method
	copy(method[:], common[2:7])
	packedSize := binary.LittleEndian.Uint32(common[7:11])
	originalSize := binary.LittleEndian.Uint32(common[11:15])
	attribute := common[19]
	level := common[20]

	if attribute != 0x20 {
		return nil, ErrBadAttribute
	}
	if level != 0x01 {
		return nil, ErrUnsupportedLevel{Level: level}
	}
	if method != LZHUFF5 {
		return nil, ErrBadMethod
	}

	// headerSize does not count the leading 2 bytes (size, checksum) or
	// the trailing 2-byte next-header-size field; read the remainder.
	restLen := headerSize + 2 - commonHeaderSize
	if restLen < 1 {
		return nil, ErrBadExtendedHeader
	}
	rest := make([]byte, restLen)
	if _, err := io.ReadFull(r, rest); err != nil {
		return nil, ErrShortExtendedHeader{Reason: err}
	}

	sum := byte(0)
	for _, b := range common[2:] {
		sum += b
	}
	for _, b := range rest {
		sum += b
	}
	if sum != checksum {
		return nil, ErrBadChecksum
	}

	nameLen := int(rest[0])
	if len(rest) < 1+nameLen+2+1 {
		return nil, ErrBadExtendedHeader
	}
	name := string(rest[1 : 1+nameLen])
	crc := binary.LittleEndian.Uint16(rest[1+nameLen : 1+nameLen+2])
	// One byte of OS id follows the CRC inside rest; it and any further
	// bytes of rest are not interpreted. The extended-header chain starts
	// right after rest and is read by consumeExtendedHeaders.

	packedSize, err := consumeExtendedHeaders(r, packedSize)
	if err != nil {
		return nil, err
	}

	return &Header{
		Method:       method,
		PackedSize:   packedSize,
		OriginalSize: originalSize,
		Name:         name,
		CRC16:        crc,
	}, nil
}

// consumeExtendedHeaders reads the chain of extended-header records that
// follows the OS id byte. Each record starts with its own 2-byte
// little-endian size; a size of 0 terminates the chain. packedSize is
// decremented by each record's declared size and is not otherwise
// re-validated.
//
// The original lha source compares the return value of the size read
// against the byte count rather than checking for a short read; that
// comparison is a latent bug and is not reproduced here. Instead a
// short read of the 2-byte size is treated as a structural error.
func consumeExtendedHeaders(r io.Reader, packedSize uint32) (uint32, error) {
	for {
		var sizeBuf [2]byte
		n, err := io.ReadFull(r, sizeBuf[:])
		if n != 2 {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return 0, ErrBadExtendedHeader
			}
			return 0, ErrShortExtendedHeader{Reason: err}
		}
		size := binary.LittleEndian.Uint16(sizeBuf[:])
		if size == 0 {
			return packedSize, nil
		}
		if uint32(size) > packedSize {
			return 0, ErrBadExtendedHeader
		}
		if _, err := io.CopyN(io.Discard, r, int64(size)-2); err != nil {
			return 0, ErrShortExtendedHeader{Reason: err}
		}
		packedSize -= uint32(size)
	}
}
