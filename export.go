package main

import (
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// keepsakeText is the celebration message followed by every unwrapped gift.
func (m *model) keepsakeText() string {
	var b strings.Builder
	b.WriteString(m.config.Celebration)
	b.WriteString("\n")
	for _, gift := range m.openedGifts() {
		fmt.Fprintf(&b, "\n%s %s\n  %s\n", gift.Glyph, gift.Title, gift.Caption)
	}
	return b.String()
}

func (m *model) exportVisualTXT(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create %s: %w", filename, err)
	}
	defer file.Close()

	// Render the screen exactly as it appears, minus colors
	canvas := m.renderScene(m.layout.compute())
	for _, line := range canvas.PlainLines() {
		if _, err := fmt.Fprintln(file, line); err != nil {
			return fmt.Errorf("write %s: %w", filename, err)
		}
	}
	return nil
}

// exportKeepsakePNG draws a card with the message and the unwrapped gifts.
func (m *model) exportKeepsakePNG(filename string) error {
	gifts := m.openedGifts()
	if len(gifts) == 0 {
		return fmt.Errorf("nothing to export yet, open a gift first")
	}

	const (
		charWidth  = 8.0
		charHeight = 16.0
		margin     = 40.0
		cardWidth  = 640
		lineChars  = int((cardWidth - 2*margin) / charWidth)
	)

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %w", err)
	}
	// Go Mono has no emoji; drop whatever it cannot draw
	printable := func(s string) string {
		return strings.Map(func(r rune) rune {
			if ttfFont.Index(r) == 0 && r != ' ' {
				return -1
			}
			return r
		}, s)
	}

	type cardLine struct {
		text  string
		size  float64
		color color.Color
	}
	pink := color.RGBA{R: 0xff, G: 0x6b, B: 0x9d, A: 0xff}
	ink := color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}

	lines := []cardLine{{text: printable(m.config.Celebration), size: 20, color: pink}, {}}
	for _, gift := range gifts {
		lines = append(lines, cardLine{text: printable(gift.Title), size: 16, color: pink})
		for _, l := range wrapText(printable(gift.Caption), lineChars) {
			lines = append(lines, cardLine{text: l, size: 12, color: ink})
		}
		lines = append(lines, cardLine{})
	}

	cardHeight := int(2*margin + float64(len(lines))*charHeight*1.5)
	dc := gg.NewContext(cardWidth, cardHeight)
	dc.SetColor(color.RGBA{R: 0xff, G: 0xf0, B: 0xf5, A: 0xff})
	dc.Clear()

	dc.SetColor(pink)
	dc.SetLineWidth(3)
	dc.DrawRoundedRectangle(margin/2, margin/2, cardWidth-margin, float64(cardHeight)-margin, 16)
	dc.Stroke()

	faces := map[float64]font.Face{}
	y := margin + charHeight
	for _, line := range lines {
		if line.text != "" {
			face, ok := faces[line.size]
			if !ok {
				face = truetype.NewFace(ttfFont, &truetype.Options{
					Size:    line.size,
					DPI:     72,
					Hinting: font.HintingFull,
				})
				faces[line.size] = face
			}
			dc.SetFontFace(face)
			dc.SetColor(line.color)
			dc.DrawStringAnchored(line.text, cardWidth/2, y, 0.5, 0)
		}
		y += charHeight * 1.5
	}

	return dc.SavePNG(filename)
}
