package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"hackasm/pkg/asm"
	"hackasm/pkg/hackfile"
	"hackasm/pkg/listing"
	"hackasm/pkg/rom"
)

const (
	screenW    = 1024
	screenH    = 640
	rowHeight  = 16
	margin     = 8
	romScale   = 8
	romPanelX  = 640
	headerRows = 2
)

// Viewer shows a program listing next to its ROM bitmap. It never runs the
// program.
type Viewer struct {
	title  string
	rows   []listing.Row
	view   listing.Viewport
	romImg *ebiten.Image // whole ROM at 1 px per bit, drawn scaled
}

func (v *Viewer) Update() error {
	page := v.view.Height - 1
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) || inpututil.IsKeyJustPressed(ebiten.KeyJ):
		v.view.Scroll(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyK):
		v.view.Scroll(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown) || inpututil.IsKeyJustPressed(ebiten.KeySpace):
		v.view.Scroll(page)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		v.view.Scroll(-page)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		v.view.Home()
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		v.view.End()
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		v.view.Scroll(-int(dy * 3))
	}
	return nil
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(rom.Background)

	from, to := v.view.Visible()
	header := fmt.Sprintf("%s  %d words  [%d-%d]", v.title, len(v.rows), from, to)
	ebitenutil.DebugPrintAt(screen, header, margin, margin)

	for i := from; i < to; i++ {
		y := margin + (headerRows+i-from)*rowHeight
		ebitenutil.DebugPrintAt(screen, v.rows[i].String(), margin, y)
	}

	v.drawROM(screen, from, to)
}

// drawROM draws the visible slice of the ROM bitmap, one word per scaled
// row, aligned with the listing.
func (v *Viewer) drawROM(screen *ebiten.Image, from, to int) {
	if v.romImg == nil || from == to {
		return
	}
	sub := v.romImg.SubImage(image.Rect(0, from, rom.WordBits, to)).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(romScale, rowHeight)
	op.GeoM.Translate(romPanelX, float64(margin+headerRows*rowHeight))
	screen.DrawImage(sub, op)
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}

// load assembles a .asm file, or reads a .hack file as bare words.
func load(path string) ([]listing.Row, error) {
	if strings.EqualFold(filepath.Ext(path), hackfile.DefaultExt) {
		words, err := hackfile.ReadHack(path)
		if err != nil {
			return nil, err
		}
		return listing.FromWords(words), nil
	}

	src, err := hackfile.ReadSource(path)
	if err != nil {
		return nil, err
	}
	prog, err := asm.Assemble(src)
	if err != nil {
		return nil, err
	}
	return listing.Build(prog, src), nil
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatalf("usage: desktop FILE.asm|FILE.hack")
	}

	fullPath, _, err := hackfile.GetPathInfo(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to resolve path: %v", err)
	}
	rows, err := load(fullPath)
	if err != nil {
		log.Fatalf("Failed to load program: %v", err)
	}

	words := make([]uint16, len(rows))
	for i, r := range rows {
		words[i] = r.Word
	}

	viewer := &Viewer{
		title: filepath.Base(fullPath),
		rows:  rows,
		view: listing.Viewport{
			Height: (screenH-2*margin)/rowHeight - headerRows,
			Total:  len(rows),
		},
	}
	if len(words) > 0 {
		viewer.romImg = ebiten.NewImageFromImage(rom.Bitmap(words, rom.Options{}))
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("Hack ROM Viewer - " + viewer.title)

	if err := ebiten.RunGame(viewer); err != nil {
		log.Fatal(err)
	}
}
