package lzhuff5

import (
	"io"
	"log"
)

// Decoder holds all state for decoding one LZHUFF5 member: the bit
// window, the two per-block Huffman tables and their length vectors,
// the sliding dictionary and the running CRC. It is created once per
// archive member, driven synchronously by Decode, and discarded
// afterwards — nothing here is safe to share between concurrent
// decodes.
type Decoder struct {
	bs *bitSource

	ptLen [npt]uint8
	cLen  [nc]uint8

	ptTable *huffTable
	cTable  *huffTable

	window *slidingWindow
	crc    crc16

	blockSize    int
	blockNum     int
	originalSize int64
	decodeCount  int64

	// Logger, when non-nil, receives one trace line per block boundary
	// and per table rebuild. Left nil by New; callers that want tracing
	// set it themselves before calling Decode.
	Logger *log.Logger
}

// New returns a Decoder ready to produce originalSize bytes of output
// from src, treating compressedSize as the budget of bytes the bit
// source may still pull from src before it starts zero-padding.
func New(src io.Reader, compressedSize, originalSize int64, dst io.Writer) *Decoder {
	d := &Decoder{
		originalSize: originalSize,
	}
	d.window = newSlidingWindow(func(buf []byte) {
		d.crc.update(buf)
		_, _ = dst.Write(buf)
	})
	d.bs = newBitSource(src, compressedSize)
	return d
}

// Decode runs the decoder to completion and returns the CRC-16/ARC of
// the emitted bytes.
func (d *Decoder) Decode() (uint16, error) {
	for d.decodeCount < d.originalSize {
		if d.blockSize == 0 {
			if err := d.readBlockHeader(); err != nil {
				return 0, err
			}
		}
		d.blockSize--

		c := d.cTable.decode(d.bs)
		if c < 256 {
			d.window.put(byte(c))
			d.decodeCount++
			continue
		}
		length := int(c) - 256 + threshold
		p := d.decodePosition()
		distance := p
		d.window.copy(distance, length)
		d.decodeCount += int64(length)
	}
	d.window.flush()
	return d.crc.val, nil
}

func (d *Decoder) readBlockHeader() error {
	d.blockNum++
	d.blockSize = int(d.bs.getBits(16))
	if d.Logger != nil {
		d.Logger.Printf("block %d: size=%d", d.blockNum, d.blockSize)
	}
	if err := d.readPtLen(nt, tBit, 3); err != nil {
		return err
	}
	if d.Logger != nil {
		d.Logger.Printf("block %d: rebuilt meta table", d.blockNum)
	}
	if err := d.readCLen(); err != nil {
		return err
	}
	if d.Logger != nil {
		d.Logger.Printf("block %d: rebuilt literal/length table", d.blockNum)
	}
	if err := d.readPtLen(np, pBit, -1); err != nil {
		return err
	}
	if d.Logger != nil {
		d.Logger.Printf("block %d: rebuilt position table", d.blockNum)
	}
	return nil
}

// decodePosition decodes a raw position code from pt_table (which, for
// this third use in a block, holds the position tree) and expands it
// into a back-reference distance.
func (d *Decoder) decodePosition() int {
	j := int(d.ptTable.decode(d.bs))
	if j >= np {
		j = np - 1
	}
	if j == 0 {
		return 0
	}
	return (1 << uint(j-1)) + int(d.bs.getBits(uint(j-1)))
}
