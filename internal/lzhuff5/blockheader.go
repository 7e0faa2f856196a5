package lzhuff5

// trivialTable builds a degenerate one-symbol huffTable: every table
// entry decodes directly to sym with zero consumed bits. Used when a
// block declares n==0 code-length entries, meaning a single symbol
// covers the whole alphabet.
func trivialTable(alphabet int, tablebits uint, sym uint16) *huffTable {
	bitlen := make([]uint8, alphabet)
	table := make([]uint16, uint32(1)<<tablebits)
	for i := range table {
		table[i] = sym
	}
	return &huffTable{
		n:         alphabet,
		tablebits: tablebits,
		bitlen:    bitlen,
		table:     table,
	}
}

// readPtLen reads pt_len[0..nn) and rebuilds pt_table (tablebits=8).
// iSpecial, when >= 0, is the index at which a 2-bit run-of-zeros escape
// may appear (used only for the meta-tree, which passes 3; the position tree
// passes -1 to disable it).
func (d *Decoder) readPtLen(nn int, nbit uint, iSpecial int) error {
	n := int(d.bs.getBits(nbit))
	for i := range d.ptLen {
		d.ptLen[i] = 0
	}
	if n == 0 {
		c := d.bs.getBits(nbit)
		d.ptTable = trivialTable(nn, 8, c)
		return nil
	}

	if n > npt {
		n = npt
	}
	i := 0
	for i < n {
		c := d.bs.peek(3)
		if c < 7 {
			d.bs.consume(3)
		} else {
			mask := uint16(1) << 12
			for d.bs.bitbuf&mask != 0 {
				mask >>= 1
				c++
			}
			d.bs.consume(uint(c) - 3)
		}
		d.ptLen[i] = uint8(c)
		i++
		if i == iSpecial {
			rep := int(d.bs.getBits(2))
			for rep > 0 && i < npt {
				d.ptLen[i] = 0
				i++
				rep--
			}
		}
	}
	for ; i < nn; i++ {
		d.ptLen[i] = 0
	}
	table, err := buildHuffmanTable(nn, d.ptLen[:nn], 8)
	if err != nil {
		return err
	}
	d.ptTable = table
	return nil
}

// readCLen reads c_len[0..NC) and rebuilds c_table (tablebits=12), using
// pt_table as the meta-decoder.
func (d *Decoder) readCLen() error {
	n := int(d.bs.getBits(cBit))
	if n == 0 {
		c := d.bs.getBits(cBit)
		for i := range d.cLen {
			d.cLen[i] = 0
		}
		d.cTable = trivialTable(nc, 12, c)
		return nil
	}

	if n > nc {
		n = nc
	}
	i := 0
	for i < n {
		c := d.ptTable.decode(d.bs)
		switch c {
		case 0:
			d.cLen[i] = 0
			i++
		case 1:
			rep := int(d.bs.getBits(4)) + 3
			for rep > 0 && i < nc {
				d.cLen[i] = 0
				i++
				rep--
			}
		case 2:
			rep := int(d.bs.getBits(cBit)) + 20
			for rep > 0 && i < nc {
				d.cLen[i] = 0
				i++
				rep--
			}
		default:
			if int(c) >= 2 && int(c)-2 <= 255 {
				d.cLen[i] = uint8(int(c) - 2)
			} else {
				d.cLen[i] = 0
			}
			i++
		}
	}
	for ; i < nc; i++ {
		d.cLen[i] = 0
	}
	table, err := buildHuffmanTable(nc, d.cLen[:], 12)
	if err != nil {
		return err
	}
	d.cTable = table
	return nil
}
