package mmr

import "math"

// DecodedSize returns width*height, the size of the one-byte-per-pixel raster.
// ok is false when the product does not fit in an int. Zero dimensions are not
// rejected here.
func DecodedSize(width, height uint16) (size int, ok bool) {
	return decodedSize(width, height, math.MaxInt)
}

// EncodedSize returns DecodedSize plus the container header. ok is false when
// either the product or the header addition overflows.
func EncodedSize(width, height uint16) (size int, ok bool) {
	return encodedSize(width, height, math.MaxInt)
}

func decodedSize(width, height uint16, limit int) (int, bool) {
	if width == 0 || height == 0 {
		return 0, true
	}
	if limit/int(width) < int(height) {
		return 0, false
	}
	return int(width) * int(height), true
}

func encodedSize(width, height uint16, limit int) (int, bool) {
	body, ok := decodedSize(width, height, limit)
	if !ok {
		return 0, false
	}
	if limit-HeaderSize < body {
		return 0, false
	}
	return body + HeaderSize, true
}
