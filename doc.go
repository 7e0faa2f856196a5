// Package lha5 extracts the single LZHUFF5-compressed member of an LHA
// level-1 archive: it parses the header, runs the adaptive Huffman/LZSS
// decoder in internal/lzhuff5, and verifies the result against the
// header's stored CRC-16.
//
// It is read-only and single-threaded: creating archives, other header
// levels, other compression methods, and multi-member archives are out
// of scope.
package lha5
