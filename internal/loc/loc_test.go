package loc

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestSpanMerge(t *testing.T) {
	a := NewSpan(4, 10)
	b := NewSpan(8, 20)

	merged := a.Merge(b)
	assert.Equal(t, merged, NewSpan(4, 20))
	assert.Equal(t, b.Merge(a), merged)
}

func TestSpanText(t *testing.T) {
	source := "hello world"
	assert.Equal(t, NewSpan(6, 11).Text(source), "world")
	assert.Equal(t, NewSpan(6, 99).Text(source), "")
}

func TestDiagnosticCodes(t *testing.T) {
	d := UnterminatedStartTag(NewSpan(1, 4))
	assert.Equal(t, d.Code.String(), "UnterminatedStartTag")
	assert.Equal(t, d.Error(), "UnterminatedStartTag at 1..4")

	assert.Equal(t, ERROR_UNKNOWN_DIRECTIVE.String(), "UnknownDirective")
	assert.Equal(t, ERROR_ONLY_ONE_TOP_LEVEL_SCRIPT.String(), "OnlyOneTopLevelScript")
}
