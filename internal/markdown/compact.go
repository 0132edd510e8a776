package markdown

import "strings"

// fenceState tracks whether we are inside a fenced code block
type fenceState struct {
	active bool
	char   rune
	length int
}

// Compact normalizes whitespace in Markdown table rows.
//
// Cell padding is trimmed to a single space and separator dashes are
// reduced to the minimum that preserves alignment markers. Lines inside
// fenced code blocks are never touched, even if they look like tables.
func Compact(md string) string {
	var fence fenceState

	lines := splitLines(md)
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		if char, length, ok := fenceMarker(strings.TrimLeft(line, " \t")); ok {
			if !fence.active {
				fence = fenceState{active: true, char: char, length: length}
				out = append(out, line)
				continue
			}
			if char == fence.char && length >= fence.length {
				fence = fenceState{}
				out = append(out, line)
				continue
			}
		}
		if fence.active {
			out = append(out, line)
			continue
		}

		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "|") && strings.HasSuffix(trimmed, "|") && len(trimmed) > 1 {
			out = append(out, compactTableRow(trimmed))
		} else {
			out = append(out, line)
		}
	}

	return strings.Join(out, "\n")
}

// splitLines splits on newlines without inventing a trailing empty line:
// "a\n" is one line, "a\n\n" is two.
func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

// fenceMarker reports the fence character and run length if the line opens
// or closes a fenced code block (a run of at least 3 backticks or tildes).
func fenceMarker(line string) (rune, int, bool) {
	runes := []rune(line)
	if len(runes) == 0 {
		return 0, 0, false
	}
	marker := runes[0]
	if marker != '`' && marker != '~' {
		return 0, 0, false
	}

	length := 0
	for _, r := range runes {
		if r != marker {
			break
		}
		length++
	}
	if length < 3 {
		return 0, 0, false
	}
	return marker, length, true
}

func compactTableRow(row string) string {
	inner := row[1 : len(row)-1]
	cells := strings.Split(inner, "|")
	for i, cell := range cells {
		cells[i] = compactCell(cell)
	}
	return "| " + strings.Join(cells, " | ") + " |"
}

func compactCell(cell string) string {
	t := strings.TrimSpace(cell)
	if t == "" || !isSeparatorCell(t) {
		return t
	}

	// Separator cell: keep only alignment markers
	start := ""
	if strings.HasPrefix(t, ":") {
		start = ":"
	}
	end := ""
	if strings.HasSuffix(t, ":") {
		end = ":"
	}
	return start + "-" + end
}

func isSeparatorCell(t string) bool {
	for _, r := range t {
		if r != '-' && r != ':' {
			return false
		}
	}
	return true
}
