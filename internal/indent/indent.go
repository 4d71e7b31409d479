// Package indent detects a source file's predominant indentation style and
// reindents snippets to a target depth while preserving relative structure,
// so content spliced in by the edit pipeline matches its destination.
package indent

import (
	"strings"
)

// Style is an indentation unit: either tabs or a fixed run of N spaces.
type Style struct {
	Tabs   bool
	Spaces int // meaningful only when Tabs is false
}

func spaces(n int) Style { return Style{Spaces: n} }

var tabs = Style{Tabs: true}

// String renders one unit of this style.
func (s Style) String() string {
	if s.Tabs {
		return "\t"
	}
	return strings.Repeat(" ", s.Spaces)
}

// Determine inspects up to the first 100 lines of source and returns the
// most common indentation style, or false if source has no indented lines.
func Determine(source string) (Style, bool) {
	counts := styleCounts(source)
	return pickMode(counts)
}

// UnitCount returns how many units of this style the line's leading
// whitespace represents, rounding a partial span of spaces up.
func (s Style) UnitCount(line string) int {
	if s.Tabs {
		count := 0
		for _, r := range line {
			if r != '\t' {
				break
			}
			count++
		}
		return count
	}

	n := 0
	for _, r := range line {
		if r != ' ' {
			break
		}
		n++
	}
	if s.Spaces <= 0 {
		return n
	}
	return (n + s.Spaces - 1) / s.Spaces
}

// Reindent renormalizes content to targetLevels units of style, preserving
// the relative indentation among content's own lines. A no-op when content
// is empty, or when content is already uniformly indented in this exact
// style at the target depth.
func Reindent(style Style, targetLevels int, content string) string {
	if content == "" {
		return content
	}

	contentCounts := styleCounts(content)
	contentStyle, ok := pickMode(contentCounts)
	if !ok {
		contentStyle = spaces(4)
	}

	lines := splitLines(content)

	type indentedLine struct {
		units int
		text  string
	}
	var indented []indentedLine
	minUnits := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		units := contentStyle.UnitCount(line)
		indented = append(indented, indentedLine{units: units, text: line})
		if minUnits == -1 || units < minUnits {
			minUnits = units
		}
	}
	if minUnits == -1 {
		minUnits = 0
	}

	if style == contentStyle && minUnits == targetLevels && len(contentCounts) == 1 {
		return content
	}

	lineIndex := 0
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			out = append(out, "")
			continue
		}
		units := indented[lineIndex].units
		lineIndex++

		relative := units - minUnits
		if relative < 0 {
			relative = 0
		}
		newUnits := targetLevels + relative
		trimmed := strings.TrimLeft(line, " \t")
		out = append(out, strings.Repeat(style.String(), newUnits)+trimmed)
	}

	return strings.Join(out, "\n")
}

func splitLines(s string) []string {
	return strings.Split(s, "\n")
}

// styleCounts scores the first 100 lines of source: a line starting with a
// tab scores Tabs; a line starting with spaces scores Spaces(n), where n is
// the most recent non-zero step between consecutive indent levels (mirroring
// how editors infer a file's configured indent width from the deltas between
// nesting levels, not from any single line in isolation).
func styleCounts(source string) map[Style]int {
	counts := make(map[Style]int)
	lastIndentation := 0
	lastChange := 0

	lines := strings.Split(source, "\n")
	if len(lines) > 100 {
		lines = lines[:100]
	}

	for _, line := range lines {
		if strings.HasPrefix(line, "\t") {
			counts[tabs]++
			continue
		}

		count := 0
		for _, r := range line {
			if r != ' ' {
				break
			}
			count++
		}
		diff := count - lastIndentation
		if diff < 0 {
			diff = -diff
		}
		lastIndentation = count
		if diff > 0 {
			lastChange = diff
		}
		if lastChange > 0 {
			counts[spaces(lastChange)]++
		}
	}

	return counts
}

func pickMode(counts map[Style]int) (Style, bool) {
	best := Style{}
	bestCount := -1
	found := false
	for style, count := range counts {
		if count > bestCount || (count == bestCount && winsTie(style, best)) {
			best = style
			bestCount = count
			found = true
		}
	}
	return best, found
}

// winsTie gives map iteration a deterministic tiebreak matching
// indentation.rs's `BTreeMap::into_iter().max_by_key(...)`: BTreeMap
// iterates keys ascending (Spaces(0..255) then Tabs, per the enum's
// declared variant order), and max_by_key keeps the LAST maximum on a tie
// — so Tabs beats any Spaces count, and among Spaces widths the larger
// one wins.
func winsTie(style, best Style) bool {
	if style.Tabs != best.Tabs {
		return style.Tabs
	}
	return style.Spaces > best.Spaces
}
