package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jdeng/gommr/internal/storage"
	mmr "github.com/jdeng/gommr/pkg/mmr"
)

// createBlankMMR builds a container whose body is a blank Group 4 page: one
// V0 code per row, then EOFB. With raw set the body is instead the
// width*height raster bytes, all zero.
func createBlankMMR(width, height uint16, flags uint8, raw bool) ([]byte, error) {
	size, ok := mmr.EncodedSize(width, height)
	if !ok {
		return nil, fmt.Errorf("image %dx%d is too large", width, height)
	}

	header := mmr.Header{Flags: flags, Width: width, Height: height}
	if raw {
		out := make([]byte, mmr.HeaderSize, size)
		copy(out, mmr.AppendHeader(nil, header))
		return out[:size], nil
	}

	var body bitPacker
	for y := 0; y < int(height); y++ {
		body.put(1, 1) // V(0)
	}
	body.put(0x001, 12) // EOFB is two EOL codes
	body.put(0x001, 12)

	return append(mmr.AppendHeader(nil, header), body.bytes()...), nil
}

// bitPacker accumulates codes MSB first.
type bitPacker struct {
	buf  []byte
	nbit uint
}

func (p *bitPacker) put(code uint32, length uint) {
	for i := int(length) - 1; i >= 0; i-- {
		if p.nbit%8 == 0 {
			p.buf = append(p.buf, 0)
		}
		if code&(1<<uint(i)) != 0 {
			p.buf[len(p.buf)-1] |= 0x80 >> (p.nbit % 8)
		}
		p.nbit++
	}
}

func (p *bitPacker) bytes() []byte { return p.buf }

func main() {
	width := flag.Uint("width", 64, "Image width in pixels")
	height := flag.Uint("height", 32, "Image height in pixels")
	minIsBlack := flag.Bool("min-is-black", false, "Set the MIN_IS_BLACK flag")
	raw := flag.Bool("raw", false, "Write an uncompressed zero raster instead of a Group 4 body")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Println("Usage: create-test-mmr [-width N] [-height N] [-min-is-black] [-raw] <output-file[.zst]>")
		os.Exit(1)
	}
	if *width == 0 || *height == 0 || *width > 0xffff || *height > 0xffff {
		fmt.Printf("Error: dimensions must be between 1 and 65535, got %dx%d\n", *width, *height)
		os.Exit(1)
	}

	var flags uint8
	if *minIsBlack {
		flags |= mmr.FlagMinIsBlack
	}

	data, err := createBlankMMR(uint16(*width), uint16(*height), flags, *raw)
	if err != nil {
		fmt.Printf("Error creating test MMR file: %v\n", err)
		os.Exit(1)
	}

	filename := flag.Arg(0)
	if err := storage.Save(filename, data); err != nil {
		fmt.Printf("Error writing test MMR file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Created test MMR file: %s\n", filename)
}
