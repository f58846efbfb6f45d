package mmr

import "errors"

// HeaderSize is the fixed length of the MMR container header in bytes.
const HeaderSize = 8

// headerSignature is "MMR" read as three 8-bit fields, most significant first.
const headerSignature uint32 = 0x4d4d52

const (
	// FlagMinIsBlack selects the min-is-black polarity for the decoded raster.
	FlagMinIsBlack uint8 = 0x1
	// FlagStripped marks a stripped body. It parses but no body engine supports it.
	FlagStripped uint8 = 0x2

	supportedBodyFlags = FlagMinIsBlack
)

// Header captures the parsed MMR container header fields.
type Header struct {
	Flags  uint8
	Width  uint16
	Height uint16
}

// MinIsBlack reports whether FlagMinIsBlack is set.
func (h Header) MinIsBlack() bool { return h.Flags&FlagMinIsBlack != 0 }

var (
	// ErrOverflow reports a raster size that cannot be represented.
	ErrOverflow = errors.New("mmr: image size overflows")
	// ErrMalformedHeader reports a buffer that does not start with a valid header.
	ErrMalformedHeader = errors.New("mmr: malformed header")
	// ErrUnsupportedFlags reports body flags outside the supported set.
	ErrUnsupportedFlags = errors.New("mmr: unsupported flags")
	// ErrShortRaster reports a destination raster smaller than width*height.
	ErrShortRaster = errors.New("mmr: destination raster too small")
	// ErrCorruptBody reports a body that a decoding engine could not decode.
	ErrCorruptBody = errors.New("mmr: corrupt body")
)
