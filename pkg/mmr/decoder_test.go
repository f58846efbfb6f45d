package mmr

import (
	"errors"
	"image/color"
	"testing"
)

func TestDecoderCreation(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Error("Expected error for empty source data, got nil")
	}

	data := []byte{0x4d, 0x4d, 0x52, 0x01, 0x00, 0x04, 0x00, 0x03}
	decoder, err := New(Options{Data: data})
	if err != nil {
		t.Fatalf("Failed to create decoder: %v", err)
	}
	if decoder == nil {
		t.Fatal("Expected decoder to be non-nil")
	}
	if h := decoder.Header(); h.Width != 4 || h.Height != 3 || h.Flags != FlagMinIsBlack {
		t.Fatalf("unexpected header: %+v", h)
	}
}

func TestDecoderRejects(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want error
	}{
		{"bad signature", Options{Data: []byte("XMR\x00\x00\x01\x00\x01")}, ErrMalformedHeader},
		{"short", Options{Data: []byte("MMR\x00")}, ErrMalformedHeader},
		{"zero width", Options{Data: AppendHeader(nil, Header{Height: 3})}, nil},
		{"too many pixels", Options{Data: AppendHeader(nil, Header{Width: 100, Height: 100}), MaxPixels: 9999}, nil},
		{"unknown engine", Options{Data: AppendHeader(nil, Header{Width: 1, Height: 1}), Engine: Engine(9)}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.opts)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestDecodePlaceholder(t *testing.T) {
	data := []byte{0x4d, 0x4d, 0x52, 0x01, 0x00, 0x04, 0x00, 0x03, 0xaa, 0xbb}
	decoder, err := New(Options{Data: data})
	if err != nil {
		t.Fatalf("Failed to create decoder: %v", err)
	}
	img, err := decoder.Decode()
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if img.Width != 4 || img.Height != 3 || len(img.Pix) != 12 {
		t.Fatalf("unexpected image: %dx%d, %d bytes", img.Width, img.Height, len(img.Pix))
	}
	for i, v := range img.Pix {
		if v != 255 {
			t.Fatalf("pixel %d = %d, want 255", i, v)
		}
	}
	if decoder.Consumed() != 2 {
		t.Fatalf("unexpected consumed length: got %d, want 2", decoder.Consumed())
	}
}

func TestDecodeStrippedFails(t *testing.T) {
	data := AppendHeader(nil, Header{Flags: FlagStripped, Width: 2, Height: 2})
	decoder, err := New(Options{Data: data})
	if err != nil {
		t.Fatalf("Failed to create decoder: %v", err)
	}
	if _, err := decoder.Decode(); !errors.Is(err, ErrUnsupportedFlags) {
		t.Fatalf("expected ErrUnsupportedFlags, got %v", err)
	}
}

func TestDecodeEngines(t *testing.T) {
	// 8x2, WWWWBBBB on both rows.
	data := AppendHeader(nil, Header{Width: 8, Height: 2})
	data = append(data, 0x36, 0xf0, 0x01, 0x00, 0x10)

	for _, engine := range []Engine{EngineG4, EngineCCITT} {
		t.Run(engine.String(), func(t *testing.T) {
			decoder, err := New(Options{Data: data, Engine: engine})
			if err != nil {
				t.Fatalf("Failed to create decoder: %v", err)
			}
			img, err := decoder.Decode()
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			gray := img.Gray()
			for y := 0; y < 2; y++ {
				for x := 0; x < 8; x++ {
					want := color.Gray{Y: 0}
					if x >= 4 {
						want = color.Gray{Y: 255}
					}
					if got := gray.GrayAt(x, y); got != want {
						t.Fatalf("pixel (%d, %d) = %v, want %v", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestParseEngine(t *testing.T) {
	for _, engine := range []Engine{EnginePlaceholder, EngineG4, EngineCCITT} {
		got, err := ParseEngine(engine.String())
		if err != nil {
			t.Fatalf("ParseEngine(%q) returned error: %v", engine.String(), err)
		}
		if got != engine {
			t.Fatalf("ParseEngine(%q) = %v, want %v", engine.String(), got, engine)
		}
	}
	if got, err := ParseEngine(""); err != nil || got != EnginePlaceholder {
		t.Fatalf("ParseEngine(\"\") = %v, %v", got, err)
	}
	if _, err := ParseEngine("jbig2"); err == nil {
		t.Fatal("expected error for unknown engine")
	}
	if s := Engine(7).String(); s != "Engine(7)" {
		t.Fatalf("unexpected String: %s", s)
	}
}

func TestSizes(t *testing.T) {
	if got, ok := DecodedSize(4, 3); !ok || got != 12 {
		t.Fatalf("DecodedSize(4, 3) = %d, %v", got, ok)
	}
	if got, ok := EncodedSize(4, 3); !ok || got != 12+HeaderSize {
		t.Fatalf("EncodedSize(4, 3) = %d, %v", got, ok)
	}

	raster := make([]byte, 12)
	if n, err := DecodeBody([]byte{1, 2, 3}, 4, 3, 0, raster); err != nil || n != 3 {
		t.Fatalf("DecodeBody = %d, %v", n, err)
	}
}

func TestDecodeCorruptBody(t *testing.T) {
	// 8x2 header with a body that ends after the first row's V0.
	data := append(AppendHeader(nil, Header{Width: 8, Height: 2}), 0x80)

	for _, engine := range []Engine{EngineG4, EngineCCITT} {
		t.Run(engine.String(), func(t *testing.T) {
			decoder, err := New(Options{Data: data, Engine: engine})
			if err != nil {
				t.Fatalf("Failed to create decoder: %v", err)
			}
			if _, err := decoder.Decode(); !errors.Is(err, ErrCorruptBody) {
				t.Fatalf("expected ErrCorruptBody, got %v", err)
			}
			if decoder.Consumed() != 0 {
				t.Fatalf("unexpected consumed length after failure: %d", decoder.Consumed())
			}
		})
	}
}
