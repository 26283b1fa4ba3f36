package lzs

import (
	"bytes"
	"errors"
	"testing"
)

func TestDecompress_Literals(t *testing.T) {
	// Control 0x07: three literal bits, stream ends before the rest.
	data := []byte{0x04, 0x00, 0x00, 0x00, 0x07, 'a', 'b', 'c'}

	out, err := Decompress(data)
	if err != nil {
		t.Fatalf("failed to decompress: %v", err)
	}
	if string(out) != "abc" {
		t.Errorf("expected %q, got %q", "abc", out)
	}
}

func TestDecompress_Run(t *testing.T) {
	// One literal 'A', then a length-8 match that overlaps its own
	// output, producing a run of nine.
	data := []byte{0x04, 0x00, 0x00, 0x00, 0x01, 'A', 0xDC, 0xF5}

	out, err := Decompress(data)
	if err != nil {
		t.Fatalf("failed to decompress: %v", err)
	}
	if string(out) != "AAAAAAAAA" {
		t.Errorf("expected %q, got %q", "AAAAAAAAA", out)
	}
}

func TestDecompress_BackReference(t *testing.T) {
	// Literals "XY", then a match of length 4 starting at the 'X',
	// which doubles the pair twice.
	data := []byte{0x05, 0x00, 0x00, 0x00, 0x03, 'X', 'Y', 0xDC, 0xF1}

	out, err := Decompress(data)
	if err != nil {
		t.Fatalf("failed to decompress: %v", err)
	}
	if string(out) != "XYXYXY" {
		t.Errorf("expected %q, got %q", "XYXYXY", out)
	}
}

func TestDecompress_UnwrittenWindow(t *testing.T) {
	// A match into window space nothing has written yet reads zeros.
	data := []byte{0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}

	out, err := Decompress(data)
	if err != nil {
		t.Fatalf("failed to decompress: %v", err)
	}
	if !bytes.Equal(out, []byte{0, 0, 0}) {
		t.Errorf("expected three zero bytes, got % X", out)
	}
}

func TestDecompress_IgnoresTrailingBytes(t *testing.T) {
	data := []byte{0x04, 0x00, 0x00, 0x00, 0x07, 'a', 'b', 'c', 0xFF, 0xFF}

	out, err := Decompress(data)
	if err != nil {
		t.Fatalf("failed to decompress: %v", err)
	}
	if string(out) != "abc" {
		t.Errorf("expected %q, got %q", "abc", out)
	}
}

func TestDecompress_TruncatedReference(t *testing.T) {
	// Control byte promises a match but only one byte follows.
	data := []byte{0x02, 0x00, 0x00, 0x00, 0x00, 0x55}

	if _, err := Decompress(data); !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
}

func TestDecompress_HeaderExceedsData(t *testing.T) {
	data := []byte{0xFF, 0x00, 0x00, 0x00, 0x01}

	if _, err := Decompress(data); !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
}

func TestDecompress_ShortInput(t *testing.T) {
	for _, data := range [][]byte{nil, {}, {0x01}, {0x01, 0x00, 0x00}} {
		if _, err := Decompress(data); !errors.Is(err, ErrTruncated) {
			t.Errorf("expected ErrTruncated for % X, got %v", data, err)
		}
	}
}

func TestCompressed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"matching header", []byte{0x04, 0x00, 0x00, 0x00, 1, 2, 3, 4}, true},
		{"mismatched header", []byte{0x05, 0x00, 0x00, 0x00, 1, 2, 3, 4}, false},
		{"too short", []byte{0x01, 0x02}, false},
		{"empty payload", []byte{0x00, 0x00, 0x00, 0x00}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compressed(tt.data); got != tt.want {
				t.Errorf("Compressed(% X) = %v, want %v", tt.data, got, tt.want)
			}
		})
	}
}
