package mml

import (
	"strings"

	"github.com/tildegen/tildegen/strutil"
)

type allowedTags uint8

const (
	allowAll allowedTags = iota
	allowBraceOnly
)

// Parse parses text into a Document. All element views share text's
// backing, so concatenating the OrigText of the top-level elements
// reproduces text byte-exactly.
func Parse(text string) (*Document, error) {
	doc := &Document{Source: text}
	if text == "" {
		return doc, nil
	}

	p := &parser{src: text}
	pos, end := 0, len(text)
	allowed := allowAll

	for {
		elem, next, ok := p.parseElement(pos, end, allowed)
		if !ok {
			break
		}
		allowed = nextAllowed(elem)
		doc.Elements = append(doc.Elements, elem)
		pos = next
	}

	if pos != end {
		return nil, ErrUnexpectedCharacter
	}
	return doc, nil
}

// ParseBytes parses a raw file buffer. A nil buffer is rejected with
// ErrNullInput.
func ParseBytes(text []byte) (*Document, error) {
	if text == nil {
		return nil, ErrNullInput
	}
	return Parse(string(text))
}

// A block tag may only open at the start of a line: after an element
// that does not end in a newline, only EOL and BRACE forms are allowed.
func nextAllowed(elem Element) allowedTags {
	switch e := elem.(type) {
	case *Content:
		if strutil.EndsWithNewlineWS(e.Text) {
			return allowAll
		}
	case *Tag:
		if e.Type == TagBlock || strutil.EndsWithNewlineWS(e.orig) {
			return allowAll
		}
	}
	return allowBraceOnly
}

type parser struct {
	src string
}

func isTagNameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isPropNameChar(c byte) bool {
	return isTagNameChar(c) || (c >= '0' && c <= '9')
}

func (p *parser) parseElement(start, end int, allowed allowedTags) (Element, int, bool) {
	if c, next, ok := p.parseContent(start, end); ok {
		return c, next, true
	}
	return p.parseTag(start, end, allowed)
}

func (p *parser) parseElements(start, end int, allowed allowedTags) ([]Element, bool) {
	elems := []Element{}
	pos := start
	for {
		elem, next, ok := p.parseElement(pos, end, allowed)
		if !ok {
			break
		}
		elems = append(elems, elem)
		pos = next
	}
	if pos != end {
		return nil, false
	}
	return elems, true
}

func (p *parser) parseContent(start, end int) (*Content, int, bool) {
	if start >= end {
		return nil, start, false
	}
	contentEnd := strutil.FindNotEscaped(p.src, start, end, '~', strutil.DefaultEscape)
	if contentEnd == start {
		return nil, start, false
	}
	return &Content{Text: p.src[start:contentEnd]}, contentEnd, true
}

func (p *parser) grabTagName(start, end int) (int, bool) {
	nameEnd := start
	for nameEnd < end && isTagNameChar(p.src[nameEnd]) {
		nameEnd++
	}
	if nameEnd == start || nameEnd == end {
		return 0, false
	}
	return nameEnd, true
}

func (p *parser) parseProps(start, end int) (Props, bool) {
	props := Props{}
	pos := start
	for pos < end {
		nameEnd := pos
		for nameEnd < end && isPropNameChar(p.src[nameEnd]) {
			nameEnd++
		}
		if nameEnd == pos || nameEnd == end || p.src[nameEnd] != '=' {
			return nil, false
		}
		name := p.src[pos:nameEnd]

		valueStart := nameEnd + 1
		var value string
		var valueEnd int

		if valueStart < end && p.src[valueStart] == '"' {
			valueEnd = strutil.FindNotEscaped(p.src, valueStart+1, end, '"', strutil.DefaultEscape)
			if valueEnd == end {
				return nil, false
			}
			value = p.src[valueStart+1 : valueEnd]
			if valueEnd+1 != end {
				if p.src[valueEnd+1] != ';' {
					return nil, false
				}
				valueEnd++
			}
		} else {
			valueEnd = strutil.FindNotEscaped(p.src, valueStart, end, ';', strutil.DefaultEscape)
			if valueEnd == valueStart {
				return nil, false
			}
			value = p.src[valueStart:valueEnd]
		}

		pos = valueEnd
		if pos != end {
			pos++
		}
		props[name] = append(props[name], value)
	}
	return props, true
}

func (p *parser) parseTag(start, end int, allowed allowedTags) (*Tag, int, bool) {
	if start >= end || p.src[start] != '~' {
		return nil, start, false
	}

	textStart := start
	nameEnd, ok := p.grabTagName(start+1, end)
	if !ok {
		return nil, start, false
	}

	tag := &Tag{
		Type:  TagEOL,
		Name:  p.src[start+1 : nameEnd],
		Props: Props{},
	}

	seg := nameEnd
	if p.src[seg] == '~' {
		tag.orig = p.src[textStart : seg+1]
		return tag, seg + 1, true
	}

	if p.src[seg] == '[' {
		propEnd := strutil.FindNotQuoted(p.src, seg, end, ']')
		if propEnd == end {
			return nil, start, false
		}
		props, ok := p.parseProps(seg+1, propEnd)
		if !ok {
			return nil, start, false
		}
		tag.Props = props
		seg = propEnd + 1
		if seg == end {
			return nil, start, false
		}
	}

	switch p.src[seg] {
	case '~':
		tag.orig = p.src[textStart : seg+1]
		return tag, seg + 1, true

	case '{':
		contentEnd := strutil.FindNotEscapedStack(p.src, seg, end, '}', '{', strutil.DefaultEscape)
		if contentEnd == end {
			return nil, start, false
		}
		tag.Type = TagBrace
		tag.orig = p.src[textStart : contentEnd+1]
		tag.RawContent = p.src[seg+1 : contentEnd]
		// A brace interior that does not re-parse keeps Content nil;
		// the raw slice stays available through RawContent.
		if elems, ok := p.parseElements(seg+1, contentEnd, allowBraceOnly); ok {
			tag.Content = elems
		}
		return tag, contentEnd + 1, true

	default:
		if allowed != allowAll {
			return nil, start, false
		}
		return p.parseBlockTail(tag, textStart, seg, end)
	}
}

// parseBlockTail consumes a block tag's body starting at seg (the first
// byte after the name/props). The body begins after the next newline
// and ends at the first line holding only the ~delim~ terminator.
func (p *parser) parseBlockTail(tag *Tag, textStart, seg, end int) (*Tag, int, bool) {
	nl := strings.IndexByte(p.src[seg:end], '\n')
	if nl < 0 || seg+nl+1 == end {
		return nil, textStart, false
	}
	contentStart := seg + nl + 1

	tag.Type = TagBlock
	tag.Content = []Element{}

	delim := tag.Name
	if v := tag.Props.First("delim"); v != "" {
		delim = v
	}
	needle := "~" + delim + "~"

	last := contentStart
	spot := strutil.FindAfterNewlineWS(p.src, contentStart, end, '~')
	for spot != end {
		segEnd := spot - 1
		if segEnd < last {
			segEnd = last
		}
		elems, ok := p.parseElements(last, segEnd, allowAll)
		if !ok {
			return nil, textStart, false
		}
		tag.Content = append(tag.Content, elems...)

		if strutil.StartsWithTrailsNewlineWS(p.src, spot, end, needle) {
			next := spot + len(needle)
			tag.orig = p.src[textStart:next]
			tag.RawContent = p.src[contentStart:spot]
			return tag, next, true
		}

		nested, tagEnd, ok := p.parseTag(spot, end, allowAll)
		if !ok || tagEnd == end {
			return nil, textStart, false
		}
		tag.Content = append(tag.Content, nested)
		last = tagEnd
		spot = strutil.FindAfterNewlineWS(p.src, tagEnd, end, '~')
	}
	return nil, textStart, false
}
