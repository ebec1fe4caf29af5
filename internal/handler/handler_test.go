package handler

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/svelte-go/compiler/internal/loc"
)

func TestPosition(t *testing.T) {
	h := NewHandler("one\ntwo\nthree", "file.svelte")

	line, col := h.Position(0)
	assert.Equal(t, line, 1)
	assert.Equal(t, col, 1)

	line, col = h.Position(4)
	assert.Equal(t, line, 2)
	assert.Equal(t, col, 1)

	line, col = h.Position(10)
	assert.Equal(t, line, 3)
	assert.Equal(t, col, 3)
}

func TestFormat(t *testing.T) {
	h := NewHandler("<div\n", "a.svelte")
	d := loc.UnterminatedStartTag(loc.NewSpan(1, 4))

	assert.Equal(t, h.Format(d), "a.svelte:1:2: UnterminatedStartTag")
}

func TestDefaultFilename(t *testing.T) {
	h := NewHandler("x", "")
	assert.Equal(t, h.Filename(), "<stdin>")
}
