package fax

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"golang.org/x/image/ccitt"
)

// CCITTDecode decodes height rows of Group 4 data from src into dst using
// golang.org/x/image/ccitt. Rows are written with a pitch of (width+7)/8 bytes
// and the same polarity as G4Decode. It returns the number of source bytes
// the reader consumed.
func CCITTDecode(src []byte, width, height int, dst []byte) (int, error) {
	if width <= 0 || height <= 0 || width > maxDimension || height > maxDimension {
		return 0, fmt.Errorf("fax: invalid dimensions %dx%d", width, height)
	}
	pitch := (width + 7) / 8
	if len(dst) < pitch*height {
		return 0, errors.New("fax: destination buffer too small")
	}
	if len(src) == 0 {
		return 0, errors.New("fax: empty source data")
	}

	reader := bytes.NewReader(src)
	decoder := ccitt.NewReader(reader, ccitt.MSB, ccitt.Group4, width, height, &ccitt.Options{})
	if _, err := io.ReadFull(decoder, dst[:pitch*height]); err != nil {
		return 0, fmt.Errorf("fax: g4 decode: %w", err)
	}
	return len(src) - reader.Len(), nil
}
