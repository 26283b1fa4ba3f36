// Package lzs decompresses the LZSS variant used by Final Fantasy VII
// field archives. Compressed files carry a 4-byte little-endian payload
// size followed by the LZSS stream itself.
package lzs

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	windowSize = 4096
	windowMask = windowSize - 1

	// Match offsets are stored relative to a window position 18 bytes
	// behind the conventional start, so reads bias by this much.
	offsetBias = 18

	minMatch = 3
)

// ErrTruncated reports a stream that ends in the middle of a control
// unit or before the declared payload size.
var ErrTruncated = errors.New("lzs: truncated stream")

// Compressed reports whether data looks like an LZS file: a 4-byte
// size header matching the remaining length.
func Compressed(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	return binary.LittleEndian.Uint32(data[:4]) == uint32(len(data)-4)
}

// Decompress expands an LZS file, header included, and returns the
// decoded payload.
func Decompress(data []byte) ([]byte, error) {
	if len(data) < 4 {
		return nil, ErrTruncated
	}
	size := int(binary.LittleEndian.Uint32(data[:4]))
	if size > len(data)-4 {
		return nil, fmt.Errorf("declared payload %d exceeds available %d: %w", size, len(data)-4, ErrTruncated)
	}

	src := data[4 : 4+size]
	var out []byte

	// The window persists across the whole stream. Matches may point at
	// positions not yet written, which read as zeros.
	window := make([]byte, windowSize)
	wpos := windowSize - offsetBias // 0xFEE

	pos := 0
	for pos < len(src) {
		control := src[pos]
		pos++

		for bit := 0; bit < 8 && pos < len(src); bit++ {
			if control&(1<<bit) != 0 {
				b := src[pos]
				pos++
				out = append(out, b)
				window[wpos] = b
				wpos = (wpos + 1) & windowMask
				continue
			}

			if pos+1 >= len(src) {
				return nil, fmt.Errorf("reference at byte %d: %w", pos, ErrTruncated)
			}
			o := int(src[pos])
			h := int(src[pos+1])
			pos += 2

			offset := ((h & 0xF0) << 4) | o
			length := (h & 0x0F) + minMatch
			rpos := (offset + offsetBias) & windowMask

			// Byte-by-byte so a match can overlap the bytes it is
			// producing, which is how runs are encoded.
			for i := 0; i < length; i++ {
				b := window[(rpos+i)&windowMask]
				out = append(out, b)
				window[wpos] = b
				wpos = (wpos + 1) & windowMask
			}
		}
	}

	return out, nil
}
