package handler

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/svelte-go/compiler/internal/loc"
)

// A Handler owns the source text of one compilation and resolves byte spans
// to human positions. It is created once per compilation and never shared.
type Handler struct {
	sourcetext  string
	filename    string
	lineOffsets []int
}

func NewHandler(sourcetext string, filename string) *Handler {
	if filename == "" {
		filename = "<stdin>"
	}
	offsets := []int{0}
	for i := 0; i < len(sourcetext); i++ {
		if sourcetext[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return &Handler{
		sourcetext:  sourcetext,
		filename:    filename,
		lineOffsets: offsets,
	}
}

func (h *Handler) Filename() string {
	return h.filename
}

// Position resolves a byte offset to a 1-based line and column.
func (h *Handler) Position(offset int) (line int, column int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(h.sourcetext) {
		offset = len(h.sourcetext)
	}
	i := sort.Search(len(h.lineOffsets), func(i int) bool {
		return h.lineOffsets[i] > offset
	}) - 1
	return i + 1, offset - h.lineOffsets[i] + 1
}

func (h *Handler) line(n int) string {
	if n < 1 || n > len(h.lineOffsets) {
		return ""
	}
	start := h.lineOffsets[n-1]
	end := len(h.sourcetext)
	if n < len(h.lineOffsets) {
		end = h.lineOffsets[n] - 1
	}
	return strings.TrimSuffix(h.sourcetext[start:end], "\r")
}

// Format renders a diagnostic as file:line:column: Kind.
func (h *Handler) Format(d *loc.Diagnostic) string {
	line, column := h.Position(d.Span.Start)
	return fmt.Sprintf("%s:%d:%d: %s", h.filename, line, column, d.Code)
}

// Print renders the diagnostic with the offending source line and a caret
// underline, colored for terminal output.
func (h *Handler) Print(w io.Writer, d *loc.Diagnostic) {
	line, column := h.Position(d.Span.Start)

	red := color.New(color.FgRed, color.Bold)
	dim := color.New(color.FgHiBlack)

	red.Fprintf(w, "error[%s]", d.Code)
	fmt.Fprintf(w, " %s:%d:%d\n", h.filename, line, column)

	text := h.line(line)
	if text == "" {
		return
	}

	dim.Fprintf(w, "%5d | ", line)
	fmt.Fprintln(w, text)
	dim.Fprint(w, "      | ")

	width := d.Span.Size()
	endLine, _ := h.Position(d.Span.End)
	if endLine != line || width < 1 {
		width = 1
	}
	if column-1+width > len(text) {
		width = len(text) - column + 1
		if width < 1 {
			width = 1
		}
	}
	red.Fprintln(w, strings.Repeat(" ", column-1)+strings.Repeat("^", width))
}
