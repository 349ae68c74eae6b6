// Package mml parses the tilde markup language: free-form text mixed
// with EOL, BRACE and BLOCK tags.
package mml

import (
	"errors"
)

// Parse failures. The parser is lossless on success and value-returns
// one of these on failure.
var (
	ErrNullInput           = errors.New("null input")
	ErrUnexpectedCharacter = errors.New("unexpected character")
)

// TagType discriminates the three tag forms.
type TagType uint8

const (
	TagEOL   TagType = iota // ~name~ or ~name[props]~
	TagBrace                // ~name{...}
	TagBlock                // ~name ... \n~delim~
)

var tagTypeNames = map[TagType]string{
	TagEOL:   "eol",
	TagBrace: "brace",
	TagBlock: "block",
}

func (tt TagType) String() string {
	return tagTypeNames[tt]
}

// Element is a node of a parsed document: either *Content or *Tag.
type Element interface {
	// OrigText returns the exact source slice the element was parsed
	// from.
	OrigText() string
}

// Content is a contiguous span of source text with no tag start.
type Content struct {
	Text string
}

// OrigText returns the content span.
func (c *Content) OrigText() string {
	return c.Text
}

// Props maps a property name to its values in source order. Repeated
// keys accumulate.
type Props map[string][]string

// First returns the first value for key, or "".
func (p Props) First(key string) string {
	if vs := p[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// Tag is a parsed tag of any of the three forms.
type Tag struct {
	Type  TagType
	Name  string
	Props Props

	// Content holds the nested elements of BRACE and BLOCK tags. A
	// BRACE interior that fails to re-parse leaves Content nil while
	// the tag itself still parses.
	Content []Element

	// RawContent is the exact content slice: the BRACE interior, or
	// the BLOCK body up to (and excluding) the terminator line's tag.
	RawContent string

	orig string
}

// OrigText returns the exact source slice for the whole tag.
func (t *Tag) OrigText() string {
	return t.orig
}

// Document owns its source text; every element view is a substring of
// Source.
type Document struct {
	Source   string
	Elements []Element
}
