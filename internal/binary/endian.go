package binary

import "encoding/binary"

// BigEndianUint decodes up to 8 bytes as an unsigned big-endian integer.
//
// The crate sort descriptor stores its reverse flag in 5 bytes, which no
// fixed-width decoder covers.
//
// Example:
//
//	rev := binary.BigEndianUint([]byte{0x00, 0x00, 0x00, 0x01, 0x00}) // 256
func BigEndianUint(b []byte) uint64 {
	if len(b) > 8 {
		b = b[len(b)-8:]
	}
	var buf [8]byte
	copy(buf[8-len(b):], b)
	return binary.BigEndian.Uint64(buf[:])
}

// AppendUint32 appends v in big-endian byte order.
func AppendUint32(b []byte, v uint32) []byte {
	return binary.BigEndian.AppendUint32(b, v)
}
