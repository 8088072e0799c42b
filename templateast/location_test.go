package templateast

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestNewLocation(t *testing.T) {
	file := NewParseSourceFile("<div>\n  <span>{{ name }}</span>\n</div>", "user.html")

	tests := []struct {
		name     string
		offset   int
		wantLine int
		wantCol  int
	}{
		{"start of file", 0, 0, 0},
		{"inside first line", 3, 0, 3},
		{"start of second line", 6, 1, 0},
		{"span tag", 8, 1, 2},
		{"negative offset clamps", -4, 0, 0},
		{"past the end clamps", 1000, 2, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := NewLocation(file, tt.offset)
			assert.Equal(t, tt.wantLine, loc.Line)
			assert.Equal(t, tt.wantCol, loc.Col)
		})
	}
}

func TestParseLocationString(t *testing.T) {
	file := NewParseSourceFile("<p>\n<b>", "a.html")
	assert.Equal(t, "a.html@1:1", NewLocation(file, 5).String())
	assert.Equal(t, "@0:0", ParseLocation{}.String())
}

func TestSpanText(t *testing.T) {
	file := NewParseSourceFile("<div>{{ name }}</div>", "a.html")
	span := NewSpan(file, 5, 15)
	assert.Equal(t, "{{ name }}", span.Text())

	var nilSpan *ParseSourceSpan
	assert.Equal(t, "", nilSpan.Text())
	assert.Equal(t, "<no span>", nilSpan.String())
}

func TestStartOf(t *testing.T) {
	file := NewParseSourceFile("<div>\n  text</div>", "a.html")

	t.Run("node with span", func(t *testing.T) {
		node := &TextAst{Value: "text", Span: NewSpan(file, 8, 12)}
		loc, ok := StartOf(node)
		assert.True(t, ok)
		assert.Equal(t, 1, loc.Line)
		assert.Equal(t, 2, loc.Col)
	})

	t.Run("node without span", func(t *testing.T) {
		_, ok := StartOf(&ElementAst{Name: "div"})
		assert.False(t, ok)
	})

	t.Run("nil node", func(t *testing.T) {
		_, ok := StartOf(nil)
		assert.False(t, ok)
	})

	t.Run("typed nil node", func(t *testing.T) {
		var node *BoundTextAst
		_, ok := StartOf(node)
		assert.False(t, ok)
	})
}
