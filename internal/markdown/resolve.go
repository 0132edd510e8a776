package markdown

import (
	"net/url"
	"strings"
)

// ResolveURLs rewrites relative destinations in Markdown link and image
// syntax `[text](url)` to absolute URLs, using baseURL as the base.
//
// If baseURL does not parse as an absolute URL the document is returned
// unchanged. Malformed link syntax never fails: anything that cannot be
// parsed confidently is passed through as-is.
func ResolveURLs(md, baseURL string) string {
	base, err := url.Parse(baseURL)
	if err != nil || !base.IsAbs() {
		return md
	}

	var b strings.Builder
	b.Grow(len(md))
	cursor := 0

	for {
		rel := strings.Index(md[cursor:], "](")
		if rel == -1 {
			break
		}
		insideStart := cursor + rel + 2
		b.WriteString(md[cursor:insideStart])

		rest := md[insideStart:]
		closing := findLinkCloseParen(rest)
		if closing == -1 {
			// Unterminated link: copy the remainder untouched and stop.
			b.WriteString(rest)
			return b.String()
		}

		dest, trailing, angle := splitDestination(rest[:closing])

		if dest != "" {
			resolved := dest
			if u, err := base.Parse(dest); err == nil {
				resolved = u.String()
			}
			if angle {
				b.WriteByte('<')
				b.WriteString(resolved)
				b.WriteByte('>')
			} else {
				b.WriteString(resolved)
			}
		} else if angle {
			b.WriteString("<>")
		}
		b.WriteString(trailing)
		b.WriteByte(')')
		cursor = insideStart + closing + 1
	}

	b.WriteString(md[cursor:])
	return b.String()
}

// splitDestination splits the text between `](` and the matching `)` into
// destination and trailing title text.
//
// Supports:
//   - standard form: `./path "title"`
//   - angle bracket form: `<./path with space> "title"`
func splitDestination(inside string) (dest, trailing string, angle bool) {
	if strings.HasPrefix(inside, "<") {
		backslashRun := 0
		for i, c := range inside[1:] {
			if c == '\\' {
				backslashRun++
				continue
			}
			if c == '>' && backslashRun%2 == 0 {
				end := 1 + i
				return inside[1:end], inside[end+1:], true
			}
			backslashRun = 0
		}
		// No closing bracket; treat the whole thing as a bare destination.
	}

	// In the standard form, the title (if any) starts after the first
	// unescaped whitespace.
	backslashRun := 0
	for i, c := range inside {
		if c == '\\' {
			backslashRun++
			continue
		}
		if isASCIIWhitespace(c) && backslashRun%2 == 0 {
			return inside[:i], inside[i:], false
		}
		backslashRun = 0
	}
	return inside, "", false
}

// findLinkCloseParen returns the byte index of the `)` that matches the
// implicit opening `(` of `](`, or -1 if the span is unterminated.
//
// Parentheses may nest inside the destination (e.g. /wiki/Rust_(language)),
// backslash-escaped parentheses are inert, and a quoted title is opaque:
// parentheses inside it never affect nesting.
func findLinkCloseParen(s string) int {
	depth := 1
	backslashRun := 0
	var titleQuote rune
	sawDest := false
	sawSepWS := false

	for i, c := range s {
		escaped := c != '\\' && backslashRun%2 == 1

		if c == '\\' {
			backslashRun++
			continue
		}

		if titleQuote != 0 {
			if c == titleQuote && !escaped {
				titleQuote = 0
			}
			backslashRun = 0
			continue
		}

		if depth == 1 {
			if isASCIIWhitespace(c) {
				if sawDest {
					sawSepWS = true
				}
			} else if sawSepWS && (c == '"' || c == '\'') {
				titleQuote = c
				backslashRun = 0
				continue
			} else {
				sawDest = true
				sawSepWS = false
			}
		}

		switch {
		case c == '(' && !escaped:
			depth++
		case c == ')' && !escaped:
			depth--
			if depth == 0 {
				return i
			}
		}

		backslashRun = 0
	}

	return -1
}

func isASCIIWhitespace(c rune) bool {
	switch c {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}
