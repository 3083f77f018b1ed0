// ABOUTME: Bit-width fast-path reducers bypassing the float round-trip
package convert

import (
	"encoding/binary"
	"fmt"
)

// reduceKind names one of the four fast narrowing paths this pipeline
// recognizes. See stages.go for the (fromWidth, toWidth) table that selects
// one.
type reduceKind int

const (
	reduce32to16 reduceKind = iota
	reduce32to24
	reduce32to24Packed
	reduce24to16
)

// applyFastReducer runs the narrowing path named by kind over a
// native-endian buf, returning a freshly allocated, narrower buffer.
func applyFastReducer(buf []byte, kind reduceKind) ([]byte, error) {
	switch kind {
	case reduce32to16:
		n := len(buf) / 4
		out := make([]byte, n*2)
		for i := 0; i < n; i++ {
			v := int32(binary.LittleEndian.Uint32(buf[i*4:]))
			binary.LittleEndian.PutUint16(out[i*2:], uint16(v>>16))
		}
		return out, nil
	case reduce32to24:
		n := len(buf) / 4
		out := make([]byte, n*4)
		for i := 0; i < n; i++ {
			v := int32(binary.LittleEndian.Uint32(buf[i*4:]))
			binary.LittleEndian.PutUint32(out[i*4:], uint32(v>>8))
		}
		return out, nil
	case reduce32to24Packed:
		// Takes bytes 1, 2, 3 of the 32-bit little-endian word, discarding
		// the lowest byte, rather than sign-extending a low-3-bytes
		// reinterpretation: this keeps the most significant 24 bits of
		// precision instead of the least significant ones.
		n := len(buf) / 4
		out := make([]byte, n*3)
		for i := 0; i < n; i++ {
			word := buf[i*4 : i*4+4]
			out[i*3] = word[1]
			out[i*3+1] = word[2]
			out[i*3+2] = word[3]
		}
		return out, nil
	case reduce24to16:
		n := len(buf) / 4
		out := make([]byte, n*2)
		for i := 0; i < n; i++ {
			u := binary.LittleEndian.Uint32(buf[i*4:])
			v := int32(u<<8) >> 8 // sign-extend the low 24 bits
			binary.LittleEndian.PutUint16(out[i*2:], uint16(v>>8))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("convert: reduce: unknown fast-path kind %d: %w", kind, ErrUnsupportedFormat)
	}
}
