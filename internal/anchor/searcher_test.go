package anchor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matchedStrings(t *testing.T, source, snippet string) []string {
	t.Helper()
	ranges, err := Find(source, snippet)
	if err != nil {
		return nil
	}
	out := make([]string, len(ranges))
	for i, r := range ranges {
		out[i] = source[r.Start:r.End]
	}
	return out
}

func TestFind(t *testing.T) {
	cases := []struct {
		name     string
		source   string
		snippet  string
		expected []string
	}{
		{
			name:     "exact match single line",
			source:   "hello world\nfoo bar\nbaz",
			snippet:  "foo bar",
			expected: []string{"foo bar"},
		},
		{
			name:     "exact match multiline",
			source:   "line1\nline2\nline3\nline4",
			snippet:  "line2\nline3",
			expected: []string{"line2\nline3"},
		},
		{
			name:     "whitespace differences",
			source:   "  hello   world  \n\t\tfoo\tbar\t\n   baz   ",
			snippet:  "hello world\nfoo bar",
			expected: []string{"hello   world  \n\t\tfoo\tbar"},
		},
		{
			name:     "multiple matches",
			source:   "foo\nbar\nbaz\nfoo\nbar\nqux",
			snippet:  "foo\nbar",
			expected: []string{"foo\nbar", "foo\nbar"},
		},
		{
			name:     "overlapping first lines",
			source:   "abc1abc   1abc\nghi\nabc\njkl",
			snippet:  "abc 1 abc",
			expected: []string{"abc1abc", "abc   1abc"},
		},
		{
			name:     "first line appears multiple times but only one full match",
			source:   "start\nmiddle\nstart\nend\nother",
			snippet:  "start\nend",
			expected: []string{"start\nend"},
		},
		{
			name:     "single line snippet",
			source:   "one\ntwo\nthree 3\nfour",
			snippet:  "three      3",
			expected: []string{"three 3"},
		},
		{
			name:     "entire source matches",
			source:   "line1\nline2\nline3",
			snippet:  "line1\nline2\nline3",
			expected: []string{"line1\nline2\nline3"},
		},
		{
			name:     "whitespace only differences",
			source:   "func(a,  b  )\n{\n    return a + b;\n}",
			snippet:  "func(a, b)\n{\nreturn a + b;\n}",
			expected: []string{"func(a,  b  )\n{\n    return a + b;\n}"},
		},
		{
			name:     "mixed whitespace types",
			source:   "hello\tworld\r\n  foo   bar  ",
			snippet:  "hello world\nfoo bar",
			expected: []string{"hello\tworld\r\n  foo   bar"},
		},
		{
			name:     "trailing whitespace in source",
			source:   "line1   \nline2\t\t\nline3",
			snippet:  "line1\nline2",
			expected: []string{"line1   \nline2"},
		},
		{
			name:     "unicode characters",
			source:   "héllo\nwörld\n测试",
			snippet:  "héllo\nwörld",
			expected: []string{"héllo\nwörld"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, matchedStrings(t, tc.source, tc.snippet))
		})
	}
}

func TestFindNoMatches(t *testing.T) {
	cases := []struct {
		name    string
		source  string
		snippet string
	}{
		{"first line not found", "hello\nworld\nfoo", "missing\nline"},
		{"partial match", "hello\nworld\nfoo", "hello\nmissing"},
		{"snippet longer than remaining source", "short\nfile", "short\nfile\nextra\nlines"},
		{"first line at end of source", "beginning\nmiddle\nend", "end\nextra"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Find(tc.source, tc.snippet)
			require.Error(t, err)
		})
	}
}

func TestFindErrorMessageNamesAnchor(t *testing.T) {
	_, err := Find("hello world", "goodbye")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "goodbye")
}
