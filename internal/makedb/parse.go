package makedb

import (
	"regexp"
	"strings"
)

// Table maps variable names to their definition text. A Table is never
// modified after Parse returns it.
type Table map[string]string

// assignmentRegex matches "NAME = value" and "NAME := value" records in the
// data base printed by make -p. Comment lines never match.
var assignmentRegex = regexp.MustCompile(`(?m)^([^#\n][^\n]*?|)(:=|=)([^\n]*)$`)

// Parse extracts every variable assignment from a make data base dump. When a
// name is reported more than once the last occurrence wins. Text that is not
// an assignment is skipped.
func Parse(dump string) Table {
	table := make(Table)
	for _, match := range assignmentRegex.FindAllStringSubmatch(dump, -1) {
		name := strings.TrimSpace(match[1])
		if name == "" {
			continue
		}
		table[name] = strings.TrimSpace(match[3])
	}
	return table
}
