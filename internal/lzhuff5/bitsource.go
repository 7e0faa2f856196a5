package lzhuff5

import "io"

// byteBudget wraps an io.Reader with a fixed count of bytes it may still
// be asked for. Once exhausted it silently yields zero bytes instead of
// an error, letting the decoder terminate by decoded-byte count rather
// than by input exhaustion (spec: "Compressed stream budget").
type byteBudget struct {
	r         io.Reader
	remaining int64
}

func (b *byteBudget) next() byte {
	if b.remaining <= 0 {
		return 0
	}
	b.remaining--
	var buf [1]byte
	n, _ := io.ReadFull(b.r, buf[:])
	if n != 1 {
		return 0
	}
	return buf[0]
}

// bitSource is a 16-bit MSB-first bit window over a byte stream. peek
// returns the next n bits without consuming them; consume advances past
// them, pulling fresh bytes from the underlying budget as needed.
type bitSource struct {
	src       *byteBudget
	bitbuf    uint16
	subbitbuf uint8
	bitcount  uint // unused bits of subbitbuf, 0..8
}

// newBitSource primes the accumulator by consuming the first two bytes,
// per spec's bit-source init().
func newBitSource(r io.Reader, compressedSize int64) *bitSource {
	bs := &bitSource{src: &byteBudget{r: r, remaining: compressedSize}}
	bs.consume(16)
	return bs
}

// peek returns the next n bits (1 <= n <= 16), MSB-first, without
// consuming them.
func (bs *bitSource) peek(n uint) uint16 {
	return bs.bitbuf >> (16 - n)
}

// consume advances the window by n bits (0 <= n <= 16), refilling from
// the byte budget whenever the held byte runs dry.
func (bs *bitSource) consume(n uint) {
	for n > bs.bitcount {
		bs.bitbuf = (bs.bitbuf << bs.bitcount) | uint16(bs.subbitbuf>>(8-bs.bitcount))
		n -= bs.bitcount
		bs.subbitbuf = bs.src.next()
		bs.bitcount = 8
	}
	bs.bitcount -= n
	bs.bitbuf = (bs.bitbuf << n) | uint16(bs.subbitbuf>>(8-n))
	bs.subbitbuf <<= n
}

// getBits reads and consumes n bits in one step.
func (bs *bitSource) getBits(n uint) uint16 {
	v := bs.peek(n)
	bs.consume(n)
	return v
}
