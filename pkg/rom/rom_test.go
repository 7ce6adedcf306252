package rom

import (
	"bytes"
	"image"
	"image/png"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func TestBitmapPixels(t *testing.T) {
	words := []uint16{0x8001, 0x0000, 0xFFFF}
	img := Bitmap(words, Options{})

	if got := img.Bounds(); got != image.Rect(0, 0, 16, 3) {
		t.Fatalf("Bounds() = %v, want 16x3", got)
	}
	for y, w := range words {
		for x := 0; x < 16; x++ {
			set := w&(1<<(15-x)) != 0
			got := img.RGBAAt(x, y)
			want := Background
			if set {
				want = Foreground
			}
			if got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestBitmapWordsPerRow(t *testing.T) {
	img := Bitmap([]uint16{0x8000, 0x0001, 0x8000}, Options{WordsPerRow: 2})
	if got := img.Bounds(); got != image.Rect(0, 0, 32, 2) {
		t.Fatalf("Bounds() = %v, want 32x2", got)
	}
	if img.RGBAAt(0, 0) != Foreground {
		t.Error("word 0 MSB should be set at (0,0)")
	}
	if img.RGBAAt(31, 0) != Foreground {
		t.Error("word 1 LSB should be set at (31,0)")
	}
	if img.RGBAAt(0, 1) != Foreground {
		t.Error("word 2 MSB should be set at (0,1)")
	}
	if img.RGBAAt(16, 1) != Background {
		t.Error("unused cell should stay background")
	}
}

func TestBitmapEmpty(t *testing.T) {
	if got := Bitmap(nil, Options{}).Bounds(); got != image.Rect(0, 0, 16, 1) {
		t.Errorf("Bounds() = %v, want 16x1", got)
	}
}

func TestScale(t *testing.T) {
	img := Bitmap([]uint16{0x8000}, Options{})
	scaled := Scale(img, 4)
	if got := scaled.Bounds(); got != image.Rect(0, 0, 64, 4) {
		t.Fatalf("Bounds() = %v, want 64x4", got)
	}
	r, g, b, _ := scaled.At(3, 3).RGBA()
	fr, fg, fb, _ := Foreground.RGBA()
	if r != fr || g != fg || b != fb {
		t.Error("scaled MSB block should be foreground")
	}
	if Scale(img, 1) != image.Image(img) {
		t.Error("factor 1 should return the input")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	img := Bitmap([]uint16{0xAAAA, 0x5555}, Options{})

	for _, format := range []string{"png", "bmp"} {
		var buf bytes.Buffer
		if err := Encode(&buf, img, format); err != nil {
			t.Fatalf("Encode(%s): %v", format, err)
		}
		var decoded image.Image
		var err error
		if format == "png" {
			decoded, err = png.Decode(&buf)
		} else {
			decoded, err = bmp.Decode(&buf)
		}
		if err != nil {
			t.Fatalf("decode %s: %v", format, err)
		}
		if decoded.Bounds() != img.Bounds() {
			t.Errorf("%s bounds = %v, want %v", format, decoded.Bounds(), img.Bounds())
		}
	}

	if err := Encode(&bytes.Buffer{}, img, "gif"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rom.bmp")
	if err := Save(path, Bitmap([]uint16{1}, Options{})); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := Save(filepath.Join(t.TempDir(), "rom.txt"), Bitmap(nil, Options{})); err == nil {
		t.Error("expected error for .txt")
	}
}
