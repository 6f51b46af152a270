package makedb

import (
	"unicode"
	"unicode/utf8"
)

func isWordStart(r rune) bool {
	return unicode.IsSpace(r) || r == '=' || r == ':' || r == '('
}

func isWordEnd(r rune) bool {
	return unicode.IsSpace(r) || r == '=' || r == ':' || r == ')'
}

// Word returns the token of line touching the rune offset position. The left
// edge stops at whitespace, '=', ':' or '('; the right edge at whitespace,
// '=', ':' or ')'. Out of range positions are clamped to the line. The result
// is empty when position sits on a delimiter, and is always a substring of
// line, even when line is not valid UTF-8.
func Word(line string, position int) string {
	offset := byteOffset(line, position)

	start := offset
	if r, size := utf8.DecodeRuneInString(line[offset:]); size > 0 && isWordStart(r) {
		start = offset + size
	} else {
		for start > 0 {
			r, size := utf8.DecodeLastRuneInString(line[:start])
			if isWordStart(r) {
				break
			}
			start -= size
		}
	}

	end := offset
	for end < len(line) {
		r, size := utf8.DecodeRuneInString(line[end:])
		if isWordEnd(r) {
			break
		}
		end += size
	}

	if start >= end {
		return ""
	}
	return line[start:end]
}

// byteOffset converts a rune offset into a byte offset of line, clamped to
// [0, len(line)]. An invalid byte counts as one rune.
func byteOffset(line string, position int) int {
	offset := 0
	for ; position > 0 && offset < len(line); position-- {
		_, size := utf8.DecodeRuneInString(line[offset:])
		offset += size
	}
	return offset
}
