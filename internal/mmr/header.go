package mmr

import "fmt"

// DecodeHeader parses the 8-byte container header at the start of data. It
// returns the header and the number of bytes consumed, which is always
// HeaderSize on success. On failure the returned Header is zero and the error
// wraps ErrMalformedHeader. Width and height are not checked against the
// length of the remaining body.
func DecodeHeader(data []byte) (Header, int, error) {
	if len(data) < HeaderSize {
		return Header{}, 0, fmt.Errorf("%w: need %d bytes, have %d", ErrMalformedHeader, HeaderSize, len(data))
	}

	stream := NewBitStream(data)

	var sign uint32
	for i := 0; i < 3; i++ {
		sign = sign<<8 | uint32(stream.ReadUint8())
	}
	if sign != headerSignature {
		return Header{}, 0, fmt.Errorf("%w: bad signature 0x%06x", ErrMalformedHeader, sign)
	}

	h := Header{
		Flags:  stream.ReadUint8(),
		Width:  stream.ReadUint16(),
		Height: stream.ReadUint16(),
	}

	if off := stream.FullOffset(); off != HeaderSize {
		return Header{}, 0, fmt.Errorf("%w: consumed %d bytes", ErrMalformedHeader, off)
	}
	return h, HeaderSize, nil
}

// AppendHeader appends the encoded form of h to dst and returns the extended slice.
func AppendHeader(dst []byte, h Header) []byte {
	return append(dst,
		byte(headerSignature>>16&0xff), byte(headerSignature>>8&0xff), byte(headerSignature&0xff),
		h.Flags,
		byte(h.Width>>8), byte(h.Width),
		byte(h.Height>>8), byte(h.Height),
	)
}
