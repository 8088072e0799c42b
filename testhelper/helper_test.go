package testhelper

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestTrimIndent(t *testing.T) {
	got := TrimIndent(t, `
		func (v *View) Render() {
			v.Debug(0, nil, nil)
		}
	`)

	assert.Equal(t, "func (v *View) Render() {\n    v.Debug(0, nil, nil)\n}\n", got)
}

func TestExpandTabs(t *testing.T) {
	assert.Equal(t, "a\n    b\n        c\td", ExpandTabs("a\n\tb\n\t\tc\td"))
}
