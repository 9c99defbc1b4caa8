package main

import (
	"strings"
	"testing"
)

func TestDrawText(t *testing.T) {
	tests := []struct {
		name  string
		width int
		x     int
		text  string
		want  string
		cells int
	}{
		{"Ascii", 10, 1, "hi", " hi", 2},
		{"Wide rune", 10, 0, "a💌b", "a💌b", 4},
		{"Zero width dropped", 10, 0, "e\u0301x", "ex", 2},
		{"Clipped at edge", 4, 2, "abcd", "  ab", 4},
		{"Wide rune does not split at edge", 4, 2, "a💌", "  a", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(tt.width, 1)
			got := c.DrawText(tt.x, 0, tt.text, 0)
			if line := c.PlainLines()[0]; line != tt.want {
				t.Errorf("line = %q, expected %q", line, tt.want)
			}
			if got != tt.cells {
				t.Errorf("DrawText() = %d, expected %d", got, tt.cells)
			}
		})
	}
}

func TestOverwriteWideRune(t *testing.T) {
	c := NewCanvas(6, 1)
	c.DrawText(0, 0, "💌💌", 0)

	// Writing over the right half of the first heart blanks its left half
	c.DrawText(1, 0, "x", 0)
	if got := c.PlainLines()[0]; got != " x💌" {
		t.Errorf("line = %q, expected %q", got, " x💌")
	}

	// Writing a wide rune over the left half of the second heart
	c.DrawText(3, 0, "🎁", 0)
	if got := c.PlainLines()[0]; got != " x 🎁" {
		t.Errorf("line = %q, expected %q", got, " x 🎁")
	}
}

func TestDrawBox(t *testing.T) {
	c := NewCanvas(6, 4)
	c.DrawText(0, 1, "xxxxxx", 0)
	c.DrawBox(cellRect{X: 1, Y: 0, W: 4, H: 3}, borderNormal, 0)

	want := []string{
		" ╭──╮",
		"x│  │x",
		" ╰──╯",
		"",
	}
	got := c.PlainLines()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %q, expected %q", i, got[i], want[i])
		}
	}

	// Too small to draw
	c2 := NewCanvas(3, 3)
	c2.DrawBox(cellRect{X: 0, Y: 0, W: 1, H: 3}, borderHeavy, 0)
	if got := strings.Join(c2.PlainLines(), ""); got != "" {
		t.Errorf("degenerate box drew %q", got)
	}
}

func TestDrawCentered(t *testing.T) {
	c := NewCanvas(10, 1)
	c.DrawCentered(cellRect{W: 10, H: 1}, 0, "abcd", 0)
	if got := c.PlainLines()[0]; got != "   abcd" {
		t.Errorf("line = %q, expected %q", got, "   abcd")
	}

	// Wider than the rect starts at its left edge
	c = NewCanvas(10, 1)
	c.DrawCentered(cellRect{X: 2, W: 3, H: 1}, 0, "abcdef", 0)
	if got := c.PlainLines()[0]; got != "  abcdef" {
		t.Errorf("line = %q, expected %q", got, "  abcdef")
	}
}

func TestRenderPlainStyle(t *testing.T) {
	c := NewCanvas(5, 2)
	c.DrawText(0, 0, "hey", 0)
	got := c.Render()
	if len(got) != 2 || got[0] != "hey  " || got[1] != "     " {
		t.Errorf("Render() = %q", got)
	}
}

func TestNewCanvasMinimumSize(t *testing.T) {
	c := NewCanvas(0, -3)
	if len(c.PlainLines()) != 1 {
		t.Errorf("canvas rows = %d, expected 1", len(c.PlainLines()))
	}
	// Out of bounds writes are ignored
	c.DrawText(5, 5, "x", 0)
	c.Fill(cellRect{X: -2, Y: -2, W: 10, H: 10}, '#', 0)
	if got := c.PlainLines()[0]; got != "#" {
		t.Errorf("line = %q, expected %q", got, "#")
	}
}
