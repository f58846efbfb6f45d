package mmr

// BitStream is a forward-only cursor over a borrowed byte buffer. Fields are
// assembled most significant first, while the bits taken from any one byte
// start at the current bit offset within that byte.
type BitStream struct {
	buf    []byte
	byteIx int
	bitIx  uint32
}

// NewBitStream constructs a cursor over data. The stream never copies or
// modifies data and must not outlive it.
func NewBitStream(data []byte) *BitStream {
	return &BitStream{buf: data}
}

// ReadNBits reads count bits, 1 through 32, and returns them as an unsigned
// integer. Any other count returns 0 without consuming input. When the buffer
// runs out the read stops early and the partial accumulation is returned
// without an error; callers detect truncation through FullOffset.
func (bs *BitStream) ReadNBits(count uint32) uint32 {
	if count == 0 || count > 32 {
		return 0
	}

	var result uint32
	for count > 0 {
		if !bs.InBounds() {
			break
		}

		take := 8 - bs.bitIx
		if take > count {
			take = count
		}

		bits := (uint32(bs.buf[bs.byteIx]) >> bs.bitIx) & (1<<take - 1)
		result = result<<take | bits

		bs.bitIx += take
		if bs.bitIx > 7 {
			bs.bitIx = 0
			bs.byteIx++
		}
		count -= take
	}
	return result
}

// ReadUint8 returns the next 8 bits through ReadNBits.
func (bs *BitStream) ReadUint8() uint8 { return uint8(bs.ReadNBits(8)) }

// ReadUint16 returns the next 16 bits. At a byte boundary this is a big-endian value.
func (bs *BitStream) ReadUint16() uint16 { return uint16(bs.ReadNBits(16)) }

// FullOffset returns the number of bytes consumed, counting a partially
// consumed trailing byte as consumed.
func (bs *BitStream) FullOffset() int {
	if bs.bitIx != 0 {
		return bs.byteIx + 1
	}
	return bs.byteIx
}

// Offset returns the current byte index.
func (bs *BitStream) Offset() int { return bs.byteIx }

// BitPos returns the absolute bit position from the start of the stream.
func (bs *BitStream) BitPos() int { return bs.byteIx<<3 + int(bs.bitIx) }

// BytesLeft returns the number of bytes not yet touched.
func (bs *BitStream) BytesLeft() int {
	if bs.byteIx >= len(bs.buf) {
		return 0
	}
	return len(bs.buf) - bs.byteIx
}

// InBounds reports whether the current byte index is within the buffer.
func (bs *BitStream) InBounds() bool {
	return bs.byteIx < len(bs.buf)
}
