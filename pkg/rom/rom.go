// Package rom renders assembled programs as bitmaps: every word becomes a
// 16-pixel strip, most significant bit on the left.
package rom

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"

	"hackasm/pkg/grid"
)

// WordBits is the pixel width of one word.
const WordBits = 16

var (
	Foreground = color.RGBA{R: 0x20, G: 0xE0, B: 0x60, A: 0xFF}
	Background = color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xFF}
)

// Options controls bitmap layout.
type Options struct {
	// WordsPerRow lays words side by side; 0 means one word per row.
	WordsPerRow int
	Fg, Bg      color.RGBA
}

// Bitmap draws words into an RGBA image. With WordsPerRow = n the image is
// 16*n pixels wide and ceil(len/n) pixels tall (at least 1).
func Bitmap(words []uint16, opts Options) *image.RGBA {
	perRow := opts.WordsPerRow
	if perRow <= 0 {
		perRow = 1
	}
	fg, bg := opts.Fg, opts.Bg
	if fg == (color.RGBA{}) {
		fg = Foreground
	}
	if bg == (color.RGBA{}) {
		bg = Background
	}

	rows := grid.Rows(len(words), perRow)
	if rows == 0 {
		rows = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, perRow*WordBits, rows))
	pix := img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i+0], pix[i+1], pix[i+2], pix[i+3] = bg.R, bg.G, bg.B, bg.A
	}

	for i, w := range words {
		cx, y := grid.GetGridCoords(i, perRow)
		for bit := 0; bit < WordBits; bit++ {
			if w&(1<<(WordBits-1-bit)) == 0 {
				continue
			}
			img.SetRGBA(cx*WordBits+bit, y, fg)
		}
	}
	return img
}

// Scale enlarges img by an integer factor with nearest-neighbour sampling so
// bits stay crisp.
func Scale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// Encode writes img as "png" or "bmp".
func Encode(w io.Writer, img image.Image, format string) error {
	switch strings.ToLower(format) {
	case "png":
		return png.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
}

// Save encodes img into filename, picking the format from its extension.
func Save(filename string, img image.Image) error {
	format := strings.TrimPrefix(filepath.Ext(filename), ".")
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := Encode(f, img, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
