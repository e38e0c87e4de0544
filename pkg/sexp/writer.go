package sexp

import (
	"math"
	"strconv"
	"strings"
)

// =============================================================================
// Atom Formatting
// =============================================================================

var stringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
	"\r", `\r`,
)

// Str formats s as a quoted string atom.
func Str(s string) string {
	return `"` + stringEscaper.Replace(s) + `"`
}

// F formats a coordinate or size value. Values are rounded to six
// decimal places and written in the shortest form that reads back
// exactly, with negative zero normalized to "0".
func F(v float64) string {
	r := math.Round(v*1e6) / 1e6
	if r == 0 {
		return "0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// I formats an integer atom.
func I(n int) string {
	return strconv.Itoa(n)
}

// B formats a boolean as the yes/no token pair.
func B(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// L joins atoms into an inline list expression.
func L(parts ...string) string {
	return "(" + strings.Join(parts, " ") + ")"
}

// =============================================================================
// Writer
// =============================================================================

// Writer builds indented s-expression text line by line. Nested
// expressions opened with Open are indented by one tab per level,
// matching the layout the KiCad file format uses.
type Writer struct {
	buf   strings.Builder
	depth int
}

// NewWriterAt returns a Writer whose first line starts at the given
// indentation depth. Used to render fragments that are later spliced
// into a larger document with Raw.
func NewWriterAt(depth int) *Writer {
	return &Writer{depth: depth}
}

// Line writes a complete expression on a single line at the current
// indentation.
func (w *Writer) Line(parts ...string) {
	w.indent()
	w.buf.WriteString(L(parts...))
	w.buf.WriteByte('\n')
}

// Items writes already-wrapped expressions on one line at the current
// indentation, separated by spaces. Used for coordinate runs inside a
// pts block.
func (w *Writer) Items(parts ...string) {
	w.indent()
	w.buf.WriteString(strings.Join(parts, " "))
	w.buf.WriteByte('\n')
}

// Open starts a multi-line expression. The head atoms are written on
// their own line and subsequent writes are indented one level deeper
// until the matching Close.
func (w *Writer) Open(parts ...string) {
	w.indent()
	w.buf.WriteByte('(')
	w.buf.WriteString(strings.Join(parts, " "))
	w.buf.WriteByte('\n')
	w.depth++
}

// Close ends the innermost open expression.
func (w *Writer) Close() {
	if w.depth > 0 {
		w.depth--
	}
	w.indent()
	w.buf.WriteString(")\n")
}

// Raw appends pre-rendered text verbatim. The fragment must already
// carry its own indentation and trailing newline.
func (w *Writer) Raw(s string) {
	w.buf.WriteString(s)
}

// String returns the accumulated text.
func (w *Writer) String() string {
	return w.buf.String()
}

func (w *Writer) indent() {
	for i := 0; i < w.depth; i++ {
		w.buf.WriteByte('\t')
	}
}
