// Package storage loads and saves container files, transparently handling
// zstd-compressed ".zst" files.
package storage

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/jdeng/gommr/internal/mmr"
)

// CompressedExt marks files stored zstd-compressed.
const CompressedExt = ".zst"

func mustNewZstdEncoder() *zstd.Encoder {
	enc, err := zstd.NewWriter(
		nil,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		zstd.WithLowerEncoderMem(true),
	)
	if err != nil {
		panic(err)
	}
	return enc
}

// MaxDecompressedSize bounds zstd output to the largest container a header
// can describe.
var MaxDecompressedSize = maxContainerSize()

func maxContainerSize() uint64 {
	size, ok := mmr.EncodedSize(math.MaxUint16, math.MaxUint16)
	if !ok {
		return math.MaxInt
	}
	return uint64(size)
}

func newZstdDecoder(maxSize uint64) (*zstd.Decoder, error) {
	return zstd.NewReader(
		nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true),
		zstd.WithDecoderMaxMemory(maxSize),
	)
}

func mustNewZstdDecoder() *zstd.Decoder {
	dec, err := newZstdDecoder(MaxDecompressedSize)
	if err != nil {
		panic(err)
	}
	return dec
}

var zstdEncPool = sync.Pool{
	New: func() any {
		return mustNewZstdEncoder()
	},
}

var zstdDecPool = sync.Pool{
	New: func() any {
		return mustNewZstdDecoder()
	},
}

// Compress returns data as a single zstd frame.
func Compress(data []byte) []byte {
	enc := zstdEncPool.Get().(*zstd.Encoder)
	defer zstdEncPool.Put(enc)
	return enc.EncodeAll(data, nil)
}

// Decompress decodes zstd frames.
func Decompress(data []byte) ([]byte, error) {
	dec := zstdDecPool.Get().(*zstd.Decoder)
	defer zstdDecPool.Put(dec)
	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decode: %w", err)
	}
	return out, nil
}

// IsCompressed reports whether path names a zstd-compressed file.
func IsCompressed(path string) bool {
	return strings.EqualFold(filepath.Ext(path), CompressedExt)
}

// TrimCompressedExt removes a trailing ".zst" from path.
func TrimCompressedExt(path string) string {
	if IsCompressed(path) {
		return path[:len(path)-len(CompressedExt)]
	}
	return path
}

// Load reads the file at path, decompressing ".zst" files.
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !IsCompressed(path) {
		return data, nil
	}
	out, err := Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// Save writes data to path, compressing it first for ".zst" paths.
func Save(path string, data []byte) error {
	if IsCompressed(path) {
		data = Compress(data)
	}
	return os.WriteFile(path, data, 0o644)
}
