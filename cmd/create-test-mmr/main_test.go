package main

import (
	"bytes"
	"testing"

	mmr "github.com/jdeng/gommr/pkg/mmr"
)

func TestCreateBlankMMRDecodes(t *testing.T) {
	for _, engine := range []mmr.Engine{mmr.EnginePlaceholder, mmr.EngineG4, mmr.EngineCCITT} {
		for _, flags := range []uint8{0, mmr.FlagMinIsBlack} {
			data, err := createBlankMMR(37, 11, flags, false)
			if err != nil {
				t.Fatalf("createBlankMMR: %v", err)
			}

			decoder, err := mmr.New(mmr.Options{Data: data, Engine: engine})
			if err != nil {
				t.Fatalf("%s: New: %v", engine, err)
			}
			img, err := decoder.Decode()
			if err != nil {
				t.Fatalf("%s: Decode: %v", engine, err)
			}

			want := byte(0)
			if flags&mmr.FlagMinIsBlack != 0 {
				want = 255
			}
			if !bytes.Equal(img.Pix, bytes.Repeat([]byte{want}, 37*11)) {
				t.Fatalf("%s flags=%d: blank page did not decode uniformly", engine, flags)
			}
		}
	}
}

func TestCreateBlankMMRRaw(t *testing.T) {
	data, err := createBlankMMR(4, 3, mmr.FlagMinIsBlack, true)
	if err != nil {
		t.Fatalf("createBlankMMR: %v", err)
	}
	if size, _ := mmr.EncodedSize(4, 3); len(data) != size {
		t.Fatalf("unexpected size: got %d, want %d", len(data), size)
	}
	want := []byte{0x4d, 0x4d, 0x52, 0x01, 0x00, 0x04, 0x00, 0x03}
	if !bytes.Equal(data[:mmr.HeaderSize], want) {
		t.Fatalf("unexpected header: % x", data[:mmr.HeaderSize])
	}
}

func TestBitPacker(t *testing.T) {
	var p bitPacker
	p.put(1, 1)
	p.put(1, 1)
	p.put(0x001, 12)
	p.put(0x001, 12)
	if want := []byte{0xc0, 0x04, 0x00, 0x40}; !bytes.Equal(p.bytes(), want) {
		t.Fatalf("bitPacker = % x, want % x", p.bytes(), want)
	}
}
