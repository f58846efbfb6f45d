package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"github.com/jdeng/gommr/internal/config"
	"github.com/jdeng/gommr/internal/export"
	"github.com/jdeng/gommr/internal/storage"
	mmr "github.com/jdeng/gommr/pkg/mmr"
)

func main() {
	var inputFile = flag.String("input", "", "Input MMR file (.zst inputs are decompressed)")
	var outputFile = flag.String("output", "", "Output image file (optional, defaults to input filename with the format's extension)")
	var configFile = flag.String("config", "", "Optional YAML options file")
	var engineName = flag.String("engine", "", "Body decoder: placeholder, g4 or ccitt (overrides config)")
	var formatName = flag.String("format", "", "Output format: png or qoi (overrides config and output extension)")
	var verbose = flag.Bool("v", false, "Log header and decoding details")
	flag.Parse()

	if *inputFile == "" {
		log.Fatal("Input file is required. Use -input flag.")
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *engineName != "" {
		cfg.Engine = *engineName
	}
	if *verbose {
		cfg.Verbose = true
	}

	engine, err := mmr.ParseEngine(cfg.Engine)
	if err != nil {
		log.Fatalf("Invalid engine: %v", err)
	}

	format, err := export.ParseFormat(cfg.Format)
	if err != nil {
		log.Fatalf("Invalid format: %v", err)
	}
	if *outputFile != "" {
		format = export.FormatFromPath(*outputFile, format)
	}
	if *formatName != "" {
		if format, err = export.ParseFormat(*formatName); err != nil {
			log.Fatalf("Invalid format: %v", err)
		}
	}

	// Read input file
	data, err := storage.Load(*inputFile)
	if err != nil {
		log.Fatalf("Failed to read input file: %v", err)
	}

	decoder, err := mmr.New(mmr.Options{
		Data:      data,
		Engine:    engine,
		MaxPixels: cfg.MaxPixels,
	})
	if err != nil {
		log.Fatalf("Failed to create MMR decoder: %v", err)
	}

	header := decoder.Header()
	if cfg.Verbose {
		log.Printf("Header: %dx%d, flags=0x%02x, body=%d bytes", header.Width, header.Height, header.Flags, len(data)-mmr.HeaderSize)
		if size, ok := mmr.EncodedSize(header.Width, header.Height); ok && size != len(data) {
			log.Printf("Input is %d bytes, a raw %dx%d container would be %d", len(data), header.Width, header.Height, size)
		}
	}

	img, err := decoder.Decode()
	if err != nil {
		log.Fatalf("Failed to decode MMR body: %v", err)
	}
	if cfg.Verbose {
		log.Printf("Decoded with %s engine, consumed %d body bytes", engine, decoder.Consumed())
	}

	output := outputPath(*inputFile, *outputFile, format)
	if err := export.WriteFile(output, img.Gray(), format); err != nil {
		log.Fatalf("Failed to write %s: %v", output, err)
	}

	fmt.Printf("Successfully converted %s to %s\n", *inputFile, output)
	fmt.Printf("Image size: %dx%d pixels\n", img.Width, img.Height)
}

// outputPath derives the output filename from the input when none is given,
// and keeps an explicit name's extension in line with the chosen format.
func outputPath(input, output string, format export.Format) string {
	if output != "" {
		return export.PathFor(output, format)
	}
	base := storage.TrimCompressedExt(input)
	return base[:len(base)-len(filepath.Ext(base))] + format.Ext()
}
