package tui

import "strings"

const glyphHeight = 5

var glyphs = map[rune][glyphHeight]string{
	'0': {"█████", "█   █", "█   █", "█   █", "█████"},
	'1': {"   █ ", "  ██ ", "   █ ", "   █ ", "  ███"},
	'2': {"█████", "    █", "█████", "█    ", "█████"},
	'3': {"█████", "    █", "█████", "    █", "█████"},
	'4': {"█   █", "█   █", "█████", "    █", "    █"},
	'5': {"█████", "█    ", "█████", "    █", "█████"},
	'6': {"█████", "█    ", "█████", "█   █", "█████"},
	'7': {"█████", "    █", "    █", "    █", "    █"},
	'8': {"█████", "█   █", "█████", "█   █", "█████"},
	'9': {"█████", "█   █", "█████", "    █", "█████"},
	':': {"   ", " █ ", "   ", " █ ", "   "},
}

// bigDigits renders an MM:SS string in block glyphs. Runes without a glyph
// are skipped.
func bigDigits(s string) string {
	var lines [glyphHeight][]string
	for _, r := range s {
		g, ok := glyphs[r]
		if !ok {
			continue
		}
		for i := range lines {
			lines[i] = append(lines[i], g[i])
		}
	}
	out := make([]string, glyphHeight)
	for i := range lines {
		out[i] = strings.Join(lines[i], " ")
	}
	return strings.Join(out, "\n")
}
