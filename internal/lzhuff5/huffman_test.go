package lzhuff5

import (
	"bytes"
	"testing"
)

func TestBuildHuffmanTableRejectsOverlongCode(t *testing.T) {
	_, err := buildHuffmanTable(1, []uint8{17}, 8)
	if err != errBadTableOverlongCode {
		t.Fatalf("got %v, want %v", err, errBadTableOverlongCode)
	}
}

func TestBuildHuffmanTableRejectsIncompleteCode(t *testing.T) {
	// A single symbol of length 1 leaves half the code space unused: the
	// canonical code is not complete.
	_, err := buildHuffmanTable(1, []uint8{1}, 8)
	if err != errBadTableIncompleteCodes {
		t.Fatalf("got %v, want %v", err, errBadTableIncompleteCodes)
	}
}

func TestHuffTableDecode(t *testing.T) {
	// A complete 4-symbol canonical code: lengths 1,2,3,3 assign codes
	// 0, 10, 110, 111.
	table, err := buildHuffmanTable(4, []uint8{1, 2, 3, 3}, 8)
	if err != nil {
		t.Fatalf("buildHuffmanTable: %v", err)
	}

	for _, tc := range []struct {
		name    string
		data    []byte
		wantSym uint16
		// wantNext is the next bit after the decoded code, used to
		// verify the correct number of bits were consumed.
		wantNext uint16
	}{
		{"code 0", []byte{0x00, 0xFF}, 0, 0},
		{"code 10", []byte{0x80, 0xFF}, 1, 0},
		{"code 110", []byte{0xC0, 0xFF}, 2, 0},
		{"code 111", []byte{0xE0, 0xFF}, 3, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			bs := newBitSource(bytes.NewReader(tc.data), int64(len(tc.data)))
			got := table.decode(bs)
			if got != tc.wantSym {
				t.Errorf("decode() = %d, want %d", got, tc.wantSym)
			}
			if next := bs.peek(1); next != tc.wantNext {
				t.Errorf("bits consumed wrong: next bit = %d, want %d", next, tc.wantNext)
			}
		})
	}
}

func TestHuffTableDecodeTreeWalk(t *testing.T) {
	// A 10-symbol canonical code with lengths 1..8 then 9,9: the classic
	// "unary with a split leaf" complete code. tablebits=8 means the two
	// length-9 symbols fall through the table into a one-node tree, so
	// this exercises both the tree-construction branch of
	// buildHuffmanTable and the left/right walk in decode.
	table, err := buildHuffmanTable(10, []uint8{1, 2, 3, 4, 5, 6, 7, 8, 9, 9}, 8)
	if err != nil {
		t.Fatalf("buildHuffmanTable: %v", err)
	}

	for _, tc := range []struct {
		name     string
		data     []byte
		wantSym  uint16
		wantNext uint16
	}{
		// Symbol 7, code 11111110, resolves directly from the table: the
		// last entry before the table falls through to the tree.
		{"table boundary symbol", []byte{0xFE, 0x00}, 7, 0},
		// Symbol 8, code 111111110: table lookup lands on the shared tree
		// node, then one more bit (0) walks left.
		{"tree left branch", []byte{0xFF, 0x00}, 8, 0},
		// Symbol 9, code 111111111: same tree node, walks right.
		{"tree right branch", []byte{0xFF, 0x80}, 9, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			bs := newBitSource(bytes.NewReader(tc.data), int64(len(tc.data)))
			got := table.decode(bs)
			if got != tc.wantSym {
				t.Errorf("decode() = %d, want %d", got, tc.wantSym)
			}
			if next := bs.peek(1); next != tc.wantNext {
				t.Errorf("bits consumed wrong: next bit = %d, want %d", next, tc.wantNext)
			}
		})
	}
}

func TestHuffTableDecodeMalformedSelfLoopingTree(t *testing.T) {
	// Hand-build a table whose only tree node points to itself, the
	// shape the CVE-2006-4338 guard in decode exists to survive. Every
	// table entry sends the walk straight into the self-loop.
	table := &huffTable{
		n:         2,
		tablebits: 8,
		bitlen:    []uint8{0, 0},
		table:     make([]uint16, 256),
		left:      []uint16{0, 0, 2},
		right:     []uint16{0, 0, 2},
	}
	for i := range table.table {
		table.table[i] = 2
	}

	bs := newBitSource(bytes.NewReader([]byte{0x00, 0x00}), 2)
	got := table.decode(bs)
	if got != 2 {
		t.Fatalf("decode() = %d, want 2 (self-loop guard must return the current node id, not hang)", got)
	}
}

func TestTrivialTable(t *testing.T) {
	table := trivialTable(19, 8, 7)
	bs := newBitSource(bytes.NewReader([]byte{0x00, 0x00}), 2)
	for i := 0; i < 3; i++ {
		if got := table.decode(bs); got != 7 {
			t.Fatalf("decode() = %d, want 7 (trivial table never consumes bits)", got)
		}
	}
}
