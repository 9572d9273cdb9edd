package component

import (
	"github.com/mattn/go-runewidth"
	"github.com/odvcencio/stax/pkg/ui/backend"
)

// drawString writes s starting at (x, y), clipping at the target's right
// edge. Wide runes advance the cursor by their display width. Returns the
// x position after the last rune drawn.
func drawString(t backend.RenderTarget, x, y int, s string, style backend.Style) int {
	w, h := t.Size()
	if y < 0 || y >= h {
		return x
	}
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x+rw > w {
			break
		}
		t.SetContent(x, y, r, nil, style)
		x += rw
	}
	return x
}

// drawStringCentered writes s horizontally centered on row y.
func drawStringCentered(t backend.RenderTarget, y int, s string, style backend.Style) {
	w, _ := t.Size()
	x := (w - runewidth.StringWidth(s)) / 2
	if x < 0 {
		x = 0
	}
	drawString(t, x, y, s, style)
}

// fill paints the whole target with one rune.
func fill(t backend.RenderTarget, r rune, style backend.Style) {
	w, h := t.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t.SetContent(x, y, r, nil, style)
		}
	}
}

// drawBox draws a single-line border around the target's edge and returns
// the usable interior size.
func drawBox(t backend.RenderTarget, style backend.Style) (innerW, innerH int) {
	w, h := t.Size()
	if w < 2 || h < 2 {
		return 0, 0
	}
	t.SetContent(0, 0, '┌', nil, style)
	t.SetContent(w-1, 0, '┐', nil, style)
	t.SetContent(0, h-1, '└', nil, style)
	t.SetContent(w-1, h-1, '┘', nil, style)
	for x := 1; x < w-1; x++ {
		t.SetContent(x, 0, '─', nil, style)
		t.SetContent(x, h-1, '─', nil, style)
	}
	for y := 1; y < h-1; y++ {
		t.SetContent(0, y, '│', nil, style)
		t.SetContent(w-1, y, '│', nil, style)
	}
	return w - 2, h - 2
}

// truncate shortens s to fit width cells, appending "…" when clipped.
func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}
