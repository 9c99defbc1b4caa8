package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type cell struct {
	r     rune
	style int
	// cont marks the right half of a double-width rune.
	cont bool
}

// cellRect is a rectangle in terminal cells.
type cellRect struct {
	X, Y, W, H int
}

func (r cellRect) contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (r cellRect) pixels() Rect {
	return Rect{
		X: float64(r.X) * cellWidth,
		Y: float64(r.Y) * cellHeight,
		W: float64(r.W) * cellWidth,
		H: float64(r.H) * cellHeight,
	}
}

type border struct {
	topLeft, topRight, bottomLeft, bottomRight rune
	horizontal, vertical                       rune
}

var (
	borderNormal = border{'╭', '╮', '╰', '╯', '─', '│'}
	borderHeavy  = border{'┏', '┓', '┗', '┛', '━', '┃'}
	borderDouble = border{'╔', '╗', '╚', '╝', '═', '║'}
)

// Canvas is a fixed grid of styled cells. Style 0 is always the plain style.
type Canvas struct {
	width  int
	height int
	cells  [][]cell
	styles []lipgloss.Style
}

func NewCanvas(width, height int) *Canvas {
	// Ensure minimum dimensions
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c := &Canvas{
		width:  width,
		height: height,
		cells:  make([][]cell, height),
		styles: []lipgloss.Style{lipgloss.NewStyle()},
	}
	for y := range c.cells {
		c.cells[y] = make([]cell, width)
		for x := range c.cells[y] {
			c.cells[y][x] = cell{r: ' '}
		}
	}
	return c
}

// Style registers s and returns its index for drawing calls.
func (c *Canvas) Style(s lipgloss.Style) int {
	c.styles = append(c.styles, s)
	return len(c.styles) - 1
}

func (c *Canvas) inBounds(x, y int) bool {
	return y >= 0 && y < c.height && x >= 0 && x < c.width
}

func (c *Canvas) set(x, y int, r rune, style int) {
	if !c.inBounds(x, y) {
		return
	}
	// Overwriting half of a wide rune blanks the other half
	if c.cells[y][x].cont && x > 0 {
		c.cells[y][x-1] = cell{r: ' ', style: c.cells[y][x-1].style}
	}
	if x+1 < c.width && c.cells[y][x+1].cont {
		c.cells[y][x+1] = cell{r: ' ', style: c.cells[y][x+1].style}
	}
	c.cells[y][x] = cell{r: r, style: style}
}

// DrawText writes a single line starting at (x, y) and returns the number
// of cells it covers. Zero-width runes are dropped.
func (c *Canvas) DrawText(x, y int, text string, style int) int {
	col := x
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if w == 2 && col+1 >= c.width {
			break
		}
		c.set(col, y, r, style)
		if w == 2 && c.inBounds(col+1, y) {
			if col+2 < c.width && c.cells[y][col+2].cont {
				c.cells[y][col+2] = cell{r: ' ', style: c.cells[y][col+2].style}
			}
			c.cells[y][col+1] = cell{r: ' ', style: style, cont: true}
		}
		col += w
	}
	return col - x
}

// DrawCentered writes text centred horizontally inside r on row y.
func (c *Canvas) DrawCentered(r cellRect, y int, text string, style int) {
	w := displayWidth(text)
	x := r.X + (r.W-w)/2
	if x < r.X {
		x = r.X
	}
	c.DrawText(x, y, text, style)
}

func (c *Canvas) Fill(r cellRect, ch rune, style int) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			c.set(x, y, ch, style)
		}
	}
}

// DrawBox draws the border of r and blanks its interior.
func (c *Canvas) DrawBox(r cellRect, b border, style int) {
	if r.W < 2 || r.H < 2 {
		return
	}
	c.Fill(cellRect{X: r.X + 1, Y: r.Y + 1, W: r.W - 2, H: r.H - 2}, ' ', style)

	right := r.X + r.W - 1
	bottom := r.Y + r.H - 1
	for x := r.X + 1; x < right; x++ {
		c.set(x, r.Y, b.horizontal, style)
		c.set(x, bottom, b.horizontal, style)
	}
	for y := r.Y + 1; y < bottom; y++ {
		c.set(r.X, y, b.vertical, style)
		c.set(right, y, b.vertical, style)
	}
	c.set(r.X, r.Y, b.topLeft, style)
	c.set(right, r.Y, b.topRight, style)
	c.set(r.X, bottom, b.bottomLeft, style)
	c.set(right, bottom, b.bottomRight, style)
}

// Restyle changes the style of every cell in r without touching the runes.
func (c *Canvas) Restyle(r cellRect, style int) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			if c.inBounds(x, y) {
				c.cells[y][x].style = style
			}
		}
	}
}

// Render flattens the grid into styled lines, one style run at a time.
func (c *Canvas) Render() []string {
	result := make([]string, c.height)
	for y, row := range c.cells {
		var line strings.Builder
		var run strings.Builder
		current := -1
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if current <= 0 {
				line.WriteString(run.String())
			} else {
				line.WriteString(c.styles[current].Render(run.String()))
			}
			run.Reset()
		}
		for _, cl := range row {
			if cl.cont {
				continue
			}
			if cl.style != current {
				flush()
				current = cl.style
			}
			run.WriteRune(cl.r)
		}
		flush()
		result[y] = line.String()
	}
	return result
}

// PlainLines renders the grid without any styling, trailing spaces trimmed.
func (c *Canvas) PlainLines() []string {
	result := make([]string, c.height)
	for y, row := range c.cells {
		var line strings.Builder
		for _, cl := range row {
			if cl.cont {
				continue
			}
			line.WriteRune(cl.r)
		}
		result[y] = strings.TrimRight(line.String(), " ")
	}
	return result
}
