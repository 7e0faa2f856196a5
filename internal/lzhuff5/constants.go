package lzhuff5

// Names match the historical lha encoder/decoder so the decode loop
// below reads the same way the format's own documentation does.
const (
	dicBits   = 13               // dictionary = 2^13 = 8192 bytes
	dicSize   = 1 << dicBits     // 8192
	maxMatch  = 256              // maximum match length
	threshold = 3                // minimum match length
	np        = dicBits + 1      // 14, number of position codes
	nt        = 19               // number of meta-tree codes
	nc        = 510              // 256 literals + (maxMatch-threshold+1) length codes
	pBit      = 4                // bit width of pt_len count when pt_len is the position tree
	tBit      = 5                // bit width of pt_len count when pt_len is the meta-tree
	cBit      = 9                // bit width of c_len count
	npt       = 256               // physical capacity for pt_len
)
