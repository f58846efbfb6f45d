package mmr

import (
	"fmt"

	"github.com/jdeng/gommr/internal/fax"
)

// BodyDecoder materializes the raster body that follows a container header.
// dst receives width*height bytes, one per pixel, each 0 or 255. On failure
// dst is left untouched. The returned count is the number of src bytes the
// decoder reports as consumed.
type BodyDecoder interface {
	DecodeBody(src []byte, h Header, dst []byte) (int, error)
}

// PlaceholderDecoder fills the raster from the flags alone and never
// interprets src.
type PlaceholderDecoder struct{}

// DecodeBody implements BodyDecoder.
func (PlaceholderDecoder) DecodeBody(src []byte, h Header, dst []byte) (int, error) {
	return DecodeBody(src, h.Width, h.Height, h.Flags, dst)
}

// DecodeBody zero-fills dst[:width*height] and, when FlagMinIsBlack is set,
// complements each byte against 255. The content of src is not decoded and
// len(src) is reported as consumed.
func DecodeBody(src []byte, width, height uint16, flags uint8, dst []byte) (int, error) {
	size, err := checkBody(width, height, flags, dst)
	if err != nil {
		return 0, err
	}

	raster := dst[:size]
	for i := range raster {
		raster[i] = 0
	}
	if flags&FlagMinIsBlack != 0 {
		for i := range raster {
			raster[i] = 255 - raster[i]
		}
	}
	return len(src), nil
}

// G4Decoder decodes the body as CCITT Group 4 data with the native decoder.
type G4Decoder struct{}

// DecodeBody implements BodyDecoder.
func (G4Decoder) DecodeBody(src []byte, h Header, dst []byte) (int, error) {
	size, err := checkBody(h.Width, h.Height, h.Flags, dst)
	if err != nil || size == 0 {
		return 0, err
	}

	width, height := int(h.Width), int(h.Height)
	pitch := (width + 7) / 8
	packed := make([]byte, pitch*height)
	endBit, err := fax.G4Decode(src, 0, width, height, pitch, packed)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCorruptBody, err)
	}

	fax.Expand(packed, width, height, pitch, h.MinIsBlack(), dst[:size])
	return min((endBit+7)/8, len(src)), nil
}

// CCITTDecoder decodes the body as CCITT Group 4 data with golang.org/x/image/ccitt.
type CCITTDecoder struct{}

// DecodeBody implements BodyDecoder.
func (CCITTDecoder) DecodeBody(src []byte, h Header, dst []byte) (int, error) {
	size, err := checkBody(h.Width, h.Height, h.Flags, dst)
	if err != nil || size == 0 {
		return 0, err
	}

	width, height := int(h.Width), int(h.Height)
	pitch := (width + 7) / 8
	packed := make([]byte, pitch*height)
	consumed, err := fax.CCITTDecode(src, width, height, packed)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCorruptBody, err)
	}

	fax.Expand(packed, width, height, pitch, h.MinIsBlack(), dst[:size])
	return consumed, nil
}

func checkBody(width, height uint16, flags uint8, dst []byte) (int, error) {
	size, ok := DecodedSize(width, height)
	if !ok {
		return 0, fmt.Errorf("%w: %dx%d", ErrOverflow, width, height)
	}
	if flags&^supportedBodyFlags != 0 {
		return 0, fmt.Errorf("%w: 0x%02x", ErrUnsupportedFlags, flags)
	}
	if len(dst) < size {
		return 0, fmt.Errorf("%w: need %d bytes, have %d", ErrShortRaster, size, len(dst))
	}
	return size, nil
}
