package templateast

import (
	"fmt"
	"strings"
)

// ParseSourceFile is a template source with the URL it was loaded from.
type ParseSourceFile struct {
	Content string
	URL     string
}

// NewParseSourceFile creates a source file
func NewParseSourceFile(content, url string) *ParseSourceFile {
	return &ParseSourceFile{Content: content, URL: url}
}

// ParseLocation is a position inside a template source file.
// Line and Col are 0-based.
type ParseLocation struct {
	File   *ParseSourceFile
	Offset int
	Line   int
	Col    int
}

// NewLocation computes the line and column of offset in file.
// Offsets outside the content are clamped.
func NewLocation(file *ParseSourceFile, offset int) ParseLocation {
	loc := ParseLocation{File: file}
	if file == nil {
		return loc
	}

	if offset < 0 {
		offset = 0
	}

	if offset > len(file.Content) {
		offset = len(file.Content)
	}

	head := file.Content[:offset]
	loc.Offset = offset
	loc.Line = strings.Count(head, "\n")

	if i := strings.LastIndexByte(head, '\n'); i >= 0 {
		loc.Col = offset - i - 1
	} else {
		loc.Col = offset
	}

	return loc
}

// String returns "url@line:col"
func (l ParseLocation) String() string {
	url := ""
	if l.File != nil {
		url = l.File.URL
	}

	return fmt.Sprintf("%s@%d:%d", url, l.Line, l.Col)
}

// ParseSourceSpan is the source range covered by a template node.
type ParseSourceSpan struct {
	Start ParseLocation
	End   ParseLocation
}

// NewSpan creates a span between two offsets of the same file
func NewSpan(file *ParseSourceFile, start, end int) *ParseSourceSpan {
	return &ParseSourceSpan{
		Start: NewLocation(file, start),
		End:   NewLocation(file, end),
	}
}

// Text returns the source text covered by the span
func (s *ParseSourceSpan) Text() string {
	if s == nil || s.Start.File == nil {
		return ""
	}

	return s.Start.File.Content[s.Start.Offset:s.End.Offset]
}

func (s *ParseSourceSpan) String() string {
	if s == nil {
		return "<no span>"
	}

	return s.Start.String()
}
