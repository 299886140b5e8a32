package main

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/cellux/infiniboard/internal/board"
)

const (
	hudFontSize = 11
	// the atlas holds runes 0..127, enough for the status line
	hudAtlasCols = 16
	hudAtlasRows = 8
)

// HUD prints a status line over the board.
type HUD struct {
	tm *TileMap
	dl *TileDrawList
}

func CreateHUD() (*HUD, error) {
	mono, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("hud font: %w", err)
	}
	face, err := opentype.NewFace(mono, &opentype.FaceOptions{
		Size:    hudFontSize,
		DPI:     96,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("hud face: %w", err)
	}
	defer face.Close()
	atlas, err := asciiAtlas(face, hudAtlasCols, hudAtlasRows)
	if err != nil {
		return nil, err
	}
	tm, err := CreateTileMap(atlas, hudAtlasCols, hudAtlasRows)
	if err != nil {
		return nil, err
	}
	return &HUD{
		tm: tm,
		dl: tm.CreateDrawList(),
	}, nil
}

// asciiAtlas renders runes 0..cols*rows-1 of a monospaced face into an
// alpha image, one glyph per cell, row-major.
func asciiAtlas(face font.Face, cols, rows int) (*image.Alpha, error) {
	adv, ok := face.GlyphAdvance('m')
	if !ok {
		return nil, fmt.Errorf("hud face has no glyph for 'm'")
	}
	m := face.Metrics()
	cellW, cellH := adv.Ceil(), m.Height.Ceil()
	atlas := image.NewAlpha(image.Rect(0, 0, cellW*cols, cellH*rows))
	for i := 0; i < cols*rows; i++ {
		dot := fixed.P(i%cols*cellW, i/cols*cellH+m.Ascent.Ceil())
		dr, mask, mp, _, ok := face.Glyph(dot, rune(i))
		if ok {
			draw.Draw(atlas, dr, mask, mp, draw.Src)
		}
	}
	return atlas, nil
}

func (h *HUD) Render(text string, fb Size) {
	h.dl.Clear()
	h.dl.DrawString(0, 0, text)
	tileSize := h.tm.GetTileSize()
	h.dl.Render(Point{X: tileSize.X / 2, Y: tileSize.Y / 2}, fb)
}

func (h *HUD) Close() error {
	return h.tm.Close()
}

// StatusLine summarises the session for the HUD and the clipboard.
func StatusLine(s *board.Session, frameTime float64) string {
	pan := s.Pan()
	strokes := s.Strokes()
	return fmt.Sprintf("%-4s %d/%d pts  pan %+.4f%+.4fi  %5.2fms",
		s.Tool(), strokes.Len(), strokes.Cap(), real(pan), imag(pan), frameTime*1000)
}
