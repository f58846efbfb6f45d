// Package mmr decodes MMR containers: an 8-byte header ("MMR", flags,
// big-endian width and height) followed by a monochrome raster body.
package mmr

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/jdeng/gommr/internal/mmr"
)

// HeaderSize is the length of the container header in bytes.
const HeaderSize = mmr.HeaderSize

const (
	// FlagMinIsBlack inverts the raster so that white pixels are 255.
	FlagMinIsBlack = mmr.FlagMinIsBlack
	// FlagStripped is accepted in headers but not supported by any engine.
	FlagStripped = mmr.FlagStripped
)

// Header is the parsed container header.
type Header = mmr.Header

// Errors returned by the codec; compare with errors.Is.
var (
	ErrOverflow         = mmr.ErrOverflow
	ErrMalformedHeader  = mmr.ErrMalformedHeader
	ErrUnsupportedFlags = mmr.ErrUnsupportedFlags
	ErrShortRaster      = mmr.ErrShortRaster
	ErrCorruptBody      = mmr.ErrCorruptBody
)

// DecodedSize returns the raster size for the given dimensions, or ok=false
// if it cannot be represented.
func DecodedSize(width, height uint16) (size int, ok bool) {
	return mmr.DecodedSize(width, height)
}

// EncodedSize returns the container size (header plus raster) for the given
// dimensions, or ok=false if it cannot be represented.
func EncodedSize(width, height uint16) (size int, ok bool) {
	return mmr.EncodedSize(width, height)
}

// DecodeHeader parses the header at the start of data and returns it with the
// number of bytes consumed.
func DecodeHeader(data []byte) (Header, int, error) {
	return mmr.DecodeHeader(data)
}

// AppendHeader appends the encoded header to dst.
func AppendHeader(dst []byte, h Header) []byte {
	return mmr.AppendHeader(dst, h)
}

// DecodeBody fills raster from the header fields using the placeholder engine.
func DecodeBody(body []byte, width, height uint16, flags uint8, raster []byte) (int, error) {
	return mmr.DecodeBody(body, width, height, flags, raster)
}

// Engine selects the body decoder.
type Engine int

const (
	// EnginePlaceholder fills the raster from the flags without reading the body.
	EnginePlaceholder Engine = iota
	// EngineG4 decodes the body as CCITT Group 4 with the built-in decoder.
	EngineG4
	// EngineCCITT decodes the body as CCITT Group 4 with golang.org/x/image/ccitt.
	EngineCCITT
)

func (e Engine) String() string {
	switch e {
	case EnginePlaceholder:
		return "placeholder"
	case EngineG4:
		return "g4"
	case EngineCCITT:
		return "ccitt"
	default:
		return fmt.Sprintf("Engine(%d)", int(e))
	}
}

// ParseEngine maps an engine name, as returned by Engine.String, to an Engine.
func ParseEngine(name string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "placeholder":
		return EnginePlaceholder, nil
	case "g4":
		return EngineG4, nil
	case "ccitt":
		return EngineCCITT, nil
	default:
		return 0, fmt.Errorf("mmr: unknown engine %q", name)
	}
}

func (e Engine) bodyDecoder() (mmr.BodyDecoder, error) {
	switch e {
	case EnginePlaceholder:
		return mmr.PlaceholderDecoder{}, nil
	case EngineG4:
		return mmr.G4Decoder{}, nil
	case EngineCCITT:
		return mmr.CCITTDecoder{}, nil
	default:
		return nil, fmt.Errorf("mmr: unknown engine %v", e)
	}
}

// Options configures decoding.
type Options struct {
	// Data holds the complete container, header included.
	Data []byte
	// Engine selects the body decoder. The zero value is EnginePlaceholder.
	Engine Engine
	// MaxPixels rejects images with more pixels before any allocation. Zero
	// means no limit beyond size overflow.
	MaxPixels int
}

// Decoder decodes a single container.
type Decoder struct {
	data     []byte
	header   Header
	body     mmr.BodyDecoder
	consumed int
}

// New parses the container header and prepares the selected engine.
func New(opts Options) (*Decoder, error) {
	if len(opts.Data) == 0 {
		return nil, errors.New("mmr: empty source data")
	}
	body, err := opts.Engine.bodyDecoder()
	if err != nil {
		return nil, err
	}

	header, n, err := mmr.DecodeHeader(opts.Data)
	if err != nil {
		return nil, err
	}
	if header.Width == 0 || header.Height == 0 {
		return nil, fmt.Errorf("mmr: invalid image dimensions %dx%d", header.Width, header.Height)
	}
	size, ok := mmr.DecodedSize(header.Width, header.Height)
	if !ok {
		return nil, fmt.Errorf("%w: %dx%d", ErrOverflow, header.Width, header.Height)
	}
	if opts.MaxPixels > 0 && size > opts.MaxPixels {
		return nil, fmt.Errorf("mmr: image %dx%d exceeds %d pixels", header.Width, header.Height, opts.MaxPixels)
	}

	return &Decoder{data: opts.Data[n:], header: header, body: body}, nil
}

// Header returns the parsed container header.
func (d *Decoder) Header() Header { return d.header }

// Consumed returns the number of body bytes reported by the last Decode.
func (d *Decoder) Consumed() int { return d.consumed }

// Decode materializes the raster.
func (d *Decoder) Decode() (*Image, error) {
	size, _ := mmr.DecodedSize(d.header.Width, d.header.Height)
	pix := make([]byte, size)
	n, err := d.body.DecodeBody(d.data, d.header, pix)
	if err != nil {
		return nil, err
	}
	d.consumed = n
	return &Image{Width: int(d.header.Width), Height: int(d.header.Height), Pix: pix}, nil
}

// Image is a decoded raster with one byte per pixel, each 0 or 255.
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

// Gray wraps the raster as an *image.Gray without copying. Pixel values are
// kept as decoded, so a min-is-white raster renders with white as 0.
func (img *Image) Gray() *image.Gray {
	if img == nil {
		return nil
	}
	return &image.Gray{
		Pix:    img.Pix,
		Stride: img.Width,
		Rect:   image.Rect(0, 0, img.Width, img.Height),
	}
}
