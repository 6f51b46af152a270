package implementation

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// positionToIndex converts an LSP position (UTF-16 columns) to a byte offset
// in content, clamping to the end of the line or content.
func positionToIndex(content string, position protocol.Position) int {
	index := 0
	for line := protocol.UInteger(0); line < position.Line; line++ {
		next := strings.IndexByte(content[index:], '\n')
		if next < 0 {
			return len(content)
		}
		index += next + 1
	}

	units := 0
	for index < len(content) && units < int(position.Character) {
		r, size := utf8.DecodeRuneInString(content[index:])
		if r == '\n' {
			break
		}
		units += utf16.RuneLen(r)
		index += size
	}
	return index
}

func rangeToIndex(content string, range_ *protocol.Range) (int, int) {
	start := positionToIndex(content, range_.Start)
	end := positionToIndex(content, range_.End)
	if end < start {
		end = start
	}
	return start, end
}

// lineAt returns the text of line number line without its line terminator.
func lineAt(content string, line int) (string, bool) {
	for i := 0; i < line; i++ {
		next := strings.IndexByte(content, '\n')
		if next < 0 {
			return "", false
		}
		content = content[next+1:]
	}
	if next := strings.IndexByte(content, '\n'); next >= 0 {
		content = content[:next]
	}
	return strings.TrimSuffix(content, "\r"), true
}

// runeOffset converts a UTF-16 column within line to a rune offset.
func runeOffset(line string, character protocol.UInteger) int {
	units, runes := 0, 0
	for _, r := range line {
		if units >= int(character) {
			break
		}
		units += utf16.RuneLen(r)
		runes++
	}
	if units < int(character) {
		runes += int(character) - units
	}
	return runes
}
