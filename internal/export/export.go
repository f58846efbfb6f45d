// Package export writes decoded rasters in common image formats.
package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xfmoulet/qoi"
)

// Format identifies an output image format.
type Format string

const (
	// FormatPNG writes lossless 8-bit grayscale PNG.
	FormatPNG Format = "png"
	// FormatQOI writes the "Quite OK Image" format.
	FormatQOI Format = "qoi"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatPNG, FormatQOI:
		return f, nil
	default:
		return "", fmt.Errorf("export: unknown format %q", name)
	}
}

// FormatFromPath picks the format from the file extension, falling back to def.
func FormatFromPath(path string, def Format) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG
	case ".qoi":
		return FormatQOI
	default:
		return def
	}
}

// Ext returns the file extension, including the dot, for f.
func (f Format) Ext() string { return "." + string(f) }

// PathFor returns path with its extension replaced by f's when the existing
// extension names a different known format. Other paths are returned as is.
func PathFor(path string, f Format) string {
	if known := FormatFromPath(path, ""); known == "" || known == f {
		return path
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + f.Ext()
}

// Write encodes img to w in the given format.
func Write(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatQOI:
		return qoi.Encode(w, img)
	default:
		return fmt.Errorf("export: unknown format %q", string(f))
	}
}

// WriteFile encodes img into a new file at path. The file is removed if
// encoding or closing fails.
func WriteFile(path string, img image.Image, f Format) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()
	return Write(file, img, f)
}
