package markdown

import "testing"

const base = "https://example.com/docs/en/page.md"

func TestResolveURLs(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "relative link",
			input:    "[link](./other.md)",
			expected: "[link](https://example.com/docs/en/other.md)",
		},
		{
			name:     "root relative link",
			input:    "[link](/root/path)",
			expected: "[link](https://example.com/root/path)",
		},
		{
			name:     "parent relative link",
			input:    "[link](../sibling.md)",
			expected: "[link](https://example.com/docs/sibling.md)",
		},
		{
			name:     "absolute url unchanged",
			input:    "[link](https://other.com/page)",
			expected: "[link](https://other.com/page)",
		},
		{
			name:     "fragment only",
			input:    "[link](#section)",
			expected: "[link](https://example.com/docs/en/page.md#section)",
		},
		{
			name:     "image url",
			input:    "![alt](./img.png)",
			expected: "![alt](https://example.com/docs/en/img.png)",
		},
		{
			name:     "link with title",
			input:    `[link](./page "Title")`,
			expected: `[link](https://example.com/docs/en/page "Title")`,
		},
		{
			name:     "tab before title",
			input:    "[link](./page\t\"Title\")",
			expected: "[link](https://example.com/docs/en/page\t\"Title\")",
		},
		{
			name:     "apostrophe in path",
			input:    "[link](./it's.md)",
			expected: "[link](https://example.com/docs/en/it's.md)",
		},
		{
			name:     "multiple links",
			input:    "[a](./one) and [b](../two) and [c](https://abs.com/page)",
			expected: "[a](https://example.com/docs/en/one) and [b](https://example.com/docs/two) and [c](https://abs.com/page)",
		},
		{
			name:     "no links unchanged",
			input:    "plain text",
			expected: "plain text",
		},
		{
			name:     "empty destination unchanged",
			input:    "[link]()",
			expected: "[link]()",
		},
		{
			name:     "nested parens in destination",
			input:    "[wiki](/wiki/Rust_(language))",
			expected: "[wiki](https://example.com/wiki/Rust_(language))",
		},
		{
			name:     "query string",
			input:    "[link](./page?q=test&a=1)",
			expected: "[link](https://example.com/docs/en/page?q=test&a=1)",
		},
		{
			name:     "fragment and query",
			input:    "[link](./page?q=1#sec)",
			expected: "[link](https://example.com/docs/en/page?q=1#sec)",
		},
		{
			name:     "protocol relative url",
			input:    "[link](//cdn.example.com/img.png)",
			expected: "[link](https://cdn.example.com/img.png)",
		},
		{
			name:     "data url unchanged",
			input:    "[img](data:image/png;base64,ABC)",
			expected: "[img](data:image/png;base64,ABC)",
		},
		{
			name:     "mailto link unchanged",
			input:    "[email](mailto:test@example.com)",
			expected: "[email](mailto:test@example.com)",
		},
		{
			name:     "angle bracket url with space",
			input:    "[doc](<./my file.md>)",
			expected: "[doc](<https://example.com/docs/en/my%20file.md>)",
		},
		{
			name:     "angle bracket url with title",
			input:    `[doc](<./my file.md> "Title")`,
			expected: `[doc](<https://example.com/docs/en/my%20file.md> "Title")`,
		},
		{
			name:     "angle bracket absolute url keeps wrapper",
			input:    "[doc](<https://other.com/path with space>)",
			expected: "[doc](<https://other.com/path%20with%20space>)",
		},
		{
			name:     "empty angle bracket destination",
			input:    "[doc](<>)",
			expected: "[doc](<>)",
		},
		{
			name:     "adjacent links",
			input:    "[a](./x)[b](./y)",
			expected: "[a](https://example.com/docs/en/x)[b](https://example.com/docs/en/y)",
		},
		{
			name:     "title containing link marker",
			input:    `[a](./one "literal ]( marker")[b](./two)`,
			expected: `[a](https://example.com/docs/en/one "literal ]( marker")[b](https://example.com/docs/en/two)`,
		},
		{
			name:     "unterminated link copies remainder",
			input:    "[a](./one and nothing closes",
			expected: "[a](./one and nothing closes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveURLs(tt.input, base); got != tt.expected {
				t.Errorf("ResolveURLs(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestResolveURLsInvalidBase(t *testing.T) {
	tests := []string{
		"not a url",
		"./relative/base",
		"",
	}

	input := "[link](./path)"
	for _, baseURL := range tests {
		if got := ResolveURLs(input, baseURL); got != input {
			t.Errorf("ResolveURLs(%q, %q) = %q, want input unchanged", input, baseURL, got)
		}
	}
}

func TestFindLinkCloseParen(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "simple", input: "url)", expected: 3},
		{name: "nested", input: "wiki/Rust_(lang))", expected: 16},
		{name: "no close", input: "no close paren", expected: -1},
		{name: "empty destination", input: ")", expected: 0},
		{name: "deeply nested", input: "a(b(c))d)", expected: 8},
		{name: "escaped close ignored", input: `foo\)bar)`, expected: 8},
		{name: "escaped open ignored", input: `foo\(bar)`, expected: 8},
		{name: "paren in quoted title ignored", input: `./one "title ) marker")`, expected: 22},
		{name: "bracket lookalike in quoted title ignored", input: `./one "a ]( b")`, expected: 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findLinkCloseParen(tt.input); got != tt.expected {
				t.Errorf("findLinkCloseParen(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSplitDestination(t *testing.T) {
	tests := []struct {
		name     string
		inside   string
		dest     string
		trailing string
		angle    bool
	}{
		{
			name:     "standard with title",
			inside:   `./page "Title"`,
			dest:     "./page",
			trailing: ` "Title"`,
		},
		{
			name:     "standard with escaped space",
			inside:   `./my\ file.md "Title"`,
			dest:     `./my\ file.md`,
			trailing: ` "Title"`,
		},
		{
			name:   "standard with escaped space no title",
			inside: `./my\ file.md`,
			dest:   `./my\ file.md`,
		},
		{
			name:     "even backslash run before space terminates",
			inside:   `./path\\ "Title"`,
			dest:     `./path\\`,
			trailing: ` "Title"`,
		},
		{
			name:     "angle bracket with title",
			inside:   `<./my file.md> "Title"`,
			dest:     "./my file.md",
			trailing: ` "Title"`,
			angle:    true,
		},
		{
			name:   "angle bracket with escaped close",
			inside: `<./a\>b.md>`,
			dest:   `./a\>b.md`,
			angle:  true,
		},
		{
			name:   "unclosed angle bracket falls back to bare form",
			inside: "<./no-close",
			dest:   "<./no-close",
		},
		{
			name:   "bare destination only",
			inside: "./page",
			dest:   "./page",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dest, trailing, angle := splitDestination(tt.inside)
			if dest != tt.dest || trailing != tt.trailing || angle != tt.angle {
				t.Errorf("splitDestination(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.inside, dest, trailing, angle, tt.dest, tt.trailing, tt.angle)
			}
		})
	}
}
