package lzhuff5

// slidingWindow is the LZSS dictionary: an 8KiB ring buffer pre-filled
// with ASCII space, from which back-references may copy. It flushes
// itself to a sink every time the write cursor wraps, and feeds the
// running CRC over exactly the bytes it flushes.
type slidingWindow struct {
	dtext []byte
	loc   int
	sink  func([]byte)
}

func newSlidingWindow(sink func([]byte)) *slidingWindow {
	w := &slidingWindow{
		dtext: make([]byte, dicSize),
		sink:  sink,
	}
	for i := range w.dtext {
		w.dtext[i] = ' '
	}
	return w
}

// put writes a single byte at the cursor, flushing and wrapping the
// buffer when it fills.
func (w *slidingWindow) put(b byte) {
	w.dtext[w.loc] = b
	w.loc++
	if w.loc == dicSize {
		w.sink(w.dtext)
		w.loc = 0
	}
}

// copy replays length bytes starting distance behind the cursor. The
// source index is computed fresh before each byte so a self-overlapping
// copy (length > distance+1) naturally repeats the bytes it has just
// written, implementing run-length expansion.
func (w *slidingWindow) copy(distance, length int) {
	for k := 0; k < length; k++ {
		src := (w.loc - 1 - distance) % dicSize
		if src < 0 {
			src += dicSize
		}
		w.put(w.dtext[src])
	}
}

// flush pushes out any residual bytes that have not yet wrapped the
// buffer. Called once after the decode loop completes.
func (w *slidingWindow) flush() {
	if w.loc != 0 {
		w.sink(w.dtext[:w.loc])
		w.loc = 0
	}
}
