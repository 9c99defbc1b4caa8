package main

import (
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/mattn/go-runewidth"
)

func displayWidth(s string) int {
	return runewidth.StringWidth(s)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// wrapText breaks text into lines of at most width cells, splitting on
// spaces. Words longer than width are truncated.
func wrapText(text string, width int) []string {
	if width < 1 {
		return nil
	}
	var lines []string
	var line strings.Builder
	lineW := 0
	for _, word := range strings.Fields(text) {
		ww := displayWidth(word)
		if ww > width {
			word = runewidth.Truncate(word, width, "…")
			ww = displayWidth(word)
		}
		if lineW > 0 && lineW+1+ww > width {
			lines = append(lines, line.String())
			line.Reset()
			lineW = 0
		}
		if lineW > 0 {
			line.WriteByte(' ')
			lineW++
		}
		line.WriteString(word)
		lineW += ww
	}
	if lineW > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

func writeClipboardText(text string) error {
	if runtime.GOOS == "darwin" {
		cmd := exec.Command("pbcopy")
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			return nil
		}
	}
	return clipboard.WriteAll(text)
}

func timestampedName(prefix, ext string, now time.Time) string {
	return prefix + "-" + now.Format("20060102-150405") + ext
}
