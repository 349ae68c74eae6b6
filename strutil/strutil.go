// Package strutil provides the escape-aware scanning primitives used by
// the MML parser and the bytewise compare used by the expression value
// order. The scanners operate on byte indices into a backing string and
// return indices into that string.
package strutil

// DefaultEscape is the escape byte honored by the scanners.
const DefaultEscape = '\\'

func isLineWS(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r'
}

// FindNotEscaped returns the index of the first occurrence of look in
// s[start:end] that is not immediately preceded by esc, or end if there
// is none.
func FindNotEscaped(s string, start, end int, look, esc byte) int {
	for i := start; i < end; i++ {
		if s[i] != look {
			continue
		}
		if i > start && s[i-1] == esc {
			continue
		}
		return i
	}
	return end
}

// FindNotQuoted returns the index of the first occurrence of look in
// s[start:end] that lies outside double-quoted spans, or end. A '"'
// toggles the quoted state unless escaped.
func FindNotQuoted(s string, start, end int, look byte) int {
	quoted := false
	for i := start; i < end; i++ {
		c := s[i]
		if c == '"' && (i == start || s[i-1] != DefaultEscape) {
			quoted = !quoted
			continue
		}
		if c == look && !quoted {
			return i
		}
	}
	return end
}

// FindNotEscapedStack locates the close delimiter matching the open
// delimiter the scan starts on. The depth starts at zero so the first
// byte of s[start:end] is expected to be open (or an immediate close,
// which matches at once). Both delimiters honor esc; an escape consumes
// the following byte. Returns end if no match is found.
func FindNotEscapedStack(s string, start, end int, close, open, esc byte) int {
	depth := 0
	for i := start; i < end; i++ {
		switch s[i] {
		case esc:
			i++
		case open:
			depth++
		case close:
			depth--
			if depth <= 0 {
				return i
			}
		}
	}
	return end
}

// FindAfterNewlineWS returns the index of the first look in s[start:end]
// preceded on its own line by only whitespace. The scan start counts as
// a line start. Returns end if there is none.
func FindAfterNewlineWS(s string, start, end int, look byte) int {
	lineStart := true
	for i := start; i < end; i++ {
		c := s[i]
		if c == look && lineStart {
			return i
		}
		switch {
		case c == '\n':
			lineStart = true
		case isLineWS(c):
			// keeps the line-start state
		default:
			lineStart = false
		}
	}
	return end
}

// StartsWithTrailsNewlineWS reports whether needle matches at s[start:]
// and every byte after it up to the next newline (or end) is whitespace.
func StartsWithTrailsNewlineWS(s string, start, end int, needle string) bool {
	if start+len(needle) > end || s[start:start+len(needle)] != needle {
		return false
	}
	for i := start + len(needle); i < end; i++ {
		c := s[i]
		if c == '\n' {
			return true
		}
		if !isLineWS(c) {
			return false
		}
	}
	return true
}

// EndsWithNewlineWS reports whether view ends with a newline possibly
// followed by spaces, tabs or carriage returns.
func EndsWithNewlineWS(view string) bool {
	i := len(view) - 1
	for i >= 0 && isLineWS(view[i]) {
		i--
	}
	return i >= 0 && view[i] == '\n'
}

// BinCompare is a strict bytewise three-way compare: -1, 0 or 1.
func BinCompare(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
