package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// placeModal draws modal centred over page. page is expected to be height
// lines tall (see fitHeight); modal rows below the page are dropped.
func placeModal(page, modal string, width, height int) string {
	rows := strings.Split(page, "\n")
	box := strings.Split(modal, "\n")
	boxWidth := 0
	for _, line := range box {
		boxWidth = max(boxWidth, ansi.StringWidth(line))
	}
	left := max((width-boxWidth)/2, 0)
	top := max((height-len(box))/2, 0)
	for i, line := range box {
		r := top + i
		if r >= len(rows) {
			break
		}
		rows[r] = spliceRow(rows[r], fill(line, boxWidth), left, width)
	}
	return strings.Join(rows, "\n")
}

// spliceRow puts cell over row starting at column col, keeping the styled
// cells on both sides. row is widened to width first.
func spliceRow(row, cell string, col, width int) string {
	row = fill(row, width)
	before := fill(ansi.Truncate(row, col, ""), col)
	after := ansi.TruncateLeft(row, col+ansi.StringWidth(cell), "")
	return before + cell + after
}

// fitHeight pads or cuts s to exactly h lines.
func fitHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// window returns the visible [start, end) range of n rows keeping cursor in view.
func window(cursor, n, rows int) (int, int) {
	if rows <= 0 || n <= rows {
		return 0, n
	}
	start := min(max(cursor-rows/2, 0), n-rows)
	return start, start + rows
}

func row(line string, selected bool) string {
	if selected {
		return cursorStyle.Render("›") + " " + line
	}
	return "  " + line
}

// column clips s to w cells and pads it so table columns line up.
func column(s string, w int) string {
	return fill(clip(s, w), w)
}

// fill pads s with spaces to w cells.
func fill(s string, w int) string {
	if gap := w - ansi.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// clip cuts s to w cells with an ellipsis.
func clip(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return ansi.Truncate(s, w, "…")
}
