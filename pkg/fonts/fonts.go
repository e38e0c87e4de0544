// Package fonts centralizes the typography used by SVG previews.
//
// KiCad draws board text with its internal newstroke vector font,
// which browsers cannot load. Previews substitute a monospace stack
// whose glyph advance is close enough to newstroke for centering and
// bounding boxes to come out right.
package fonts

import "unicode/utf8"

// Stack is the font-family value written into preview text elements.
const Stack = `'Osifont', 'DejaVu Sans Mono', 'Menlo', 'Consolas', monospace`

// advance is the mean glyph advance of the stack relative to the font
// size. Monospace glyphs advance about 0.6 em; newstroke runs a touch
// wider.
const advance = 0.65

// Width returns the approximate rendered width of a single line of
// text at the given size.
func Width(content string, size float64) float64 {
	return advance * size * float64(utf8.RuneCountInString(content))
}

// Height returns the approximate line height at the given size.
func Height(size float64) float64 {
	return 1.2 * size
}
