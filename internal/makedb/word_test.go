package makedb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWord(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		position int
		want     string
	}{
		{"start of assignment", "SRC = $(OBJ)", 0, "SRC"},
		{"middle of name", "SRC = $(OBJ)", 1, "SRC"},
		{"end of name", "SRC = $(OBJ)", 2, "SRC"},
		{"inside reference", "SRC = $(OBJ)", 10, "OBJ"},
		{"first letter of reference", "SRC = $(OBJ)", 8, "OBJ"},
		{"on open paren", "SRC = $(OBJ)", 7, "OBJ"},
		{"on equals", "SRC = $(OBJ)", 4, ""},
		{"on close paren", "SRC = $(OBJ)", 11, "OBJ"},
		{"simple expanded", "CFLAGS:=-O2", 1, "CFLAGS"},
		{"value after colon equals", "CFLAGS:=-O2", 9, "-O2"},
		{"rule target", "all: main.o", 1, "all"},
		{"prerequisite", "all: main.o", 7, "main.o"},
		{"recipe reference", "\t$(CC) -o out main.c", 3, "CC"},
		{"end of line", "FOO = bar", 9, "bar"},
		{"past end of line", "FOO = bar", 42, "bar"},
		{"negative position", "FOO = bar", -3, "FOO"},
		{"trailing delimiter at end", "FOO =", 5, ""},
		{"empty line", "", 0, ""},
		{"whitespace only", "   ", 1, ""},
		{"unicode", "NAMÉ = café", 8, "café"},
		{"invalid utf-8 kept verbatim", "A\xffB = x", 1, "A\xffB"},
		{"after invalid utf-8", "A\xffB = x", 6, "x"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, Word(test.line, test.position))
		})
	}
}

func TestWordIsAlwaysSubstring(t *testing.T) {
	lines := []string{
		"SRC = $(OBJ)",
		"a:b=c(d)e f",
		"((()))",
		"x",
		"\t$(CC) $(CFLAGS) -c $< -o $@",
		"",
		"N\xff\xfeX = $(\xc3Y)",
		"caf\xc3 = é\x80",
	}
	for _, line := range lines {
		for position := -2; position <= len(line)+2; position++ {
			word := Word(line, position)
			assert.True(t, strings.Contains(line, word), "%q at %d gave %q", line, position, word)
			assert.NotContains(t, word, " ")
		}
	}
}
