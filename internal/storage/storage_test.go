package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestCompressRoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("MMR\x01\x00\x04\x00\x03"), 64)

	comp := Compress(data)
	if len(comp) == 0 || len(comp) >= len(data) {
		t.Fatalf("unexpected compressed size %d for %d bytes", len(comp), len(data))
	}
	got, err := Decompress(comp)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatal("round trip mismatch")
	}
}

func TestDecompressBounded(t *testing.T) {
	if MaxDecompressedSize < 0xffff*0xffff {
		t.Fatalf("MaxDecompressedSize %d is below the largest raster", MaxDecompressedSize)
	}

	dec, err := newZstdDecoder(4096)
	if err != nil {
		t.Fatalf("newZstdDecoder: %v", err)
	}
	defer dec.Close()

	if _, err := dec.DecodeAll(Compress(make([]byte, 16384)), nil); err == nil {
		t.Fatal("expected error when output exceeds the limit")
	}
	out, err := dec.DecodeAll(Compress(make([]byte, 512)), nil)
	if err != nil {
		t.Fatalf("DecodeAll within limit: %v", err)
	}
	if len(out) != 512 {
		t.Fatalf("unexpected output length %d", len(out))
	}
}

func TestDecompressGarbage(t *testing.T) {
	if _, err := Decompress([]byte("not zstd")); err == nil {
		t.Fatal("expected error for invalid input")
	}
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	data := []byte{0x4d, 0x4d, 0x52, 0x00, 0x00, 0x02, 0x00, 0x02, 0x00}

	for _, name := range []string{"plain.mmr", "packed.mmr.zst", "upper.MMR.ZST"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Save(path, data); err != nil {
				t.Fatalf("Save: %v", err)
			}

			raw, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			if IsCompressed(path) == bytes.Equal(raw, data) {
				t.Fatalf("unexpected on-disk form for %s", name)
			}

			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if !bytes.Equal(got, data) {
				t.Fatalf("Load returned % x, want % x", got, data)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.mmr")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestTrimCompressedExt(t *testing.T) {
	tests := map[string]string{
		"a.mmr.zst": "a.mmr",
		"a.mmr":     "a.mmr",
		"b.ZST":     "b",
	}
	for in, want := range tests {
		if got := TrimCompressedExt(in); got != want {
			t.Errorf("TrimCompressedExt(%q) = %q, want %q", in, got, want)
		}
	}
}
