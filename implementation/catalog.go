package implementation

import (
	"strings"
)

const sigil = "$"

// catalogEntry is a built-in variable offered by completion. Key is stable
// and travels in CompletionItem.Data so resolve can find Documentation.
type catalogEntry struct {
	Key           string
	Label         string
	Documentation string
}

// automatic reports whether the entry is an automatic variable such as $@.
func (e *catalogEntry) automatic() bool {
	return strings.HasPrefix(e.Label, sigil)
}

// insertText returns the text to insert, depending on whether the cursor
// follows a '$'.
func (e *catalogEntry) insertText(afterSigil bool) string {
	switch {
	case e.automatic() && afterSigil:
		return strings.TrimPrefix(e.Label, sigil)
	case afterSigil:
		return "(" + e.Label + ")"
	default:
		return e.Label
	}
}

var catalog = []catalogEntry{
	{"at", "$@", "The file name of the target of the rule.\n\nIf the target is an archive member, then ‘$@’ is the name of the archive file. For example, if the target is foo.a(bar.o) then ‘$%’ is bar.o and ‘$@’ is foo.a."},
	{"percent", "$%", "The target member name, when the target is an archive member. For example, if the target is foo.a(bar.o) then ‘$%’ is bar.o and ‘$@’ is foo.a. ‘$%’ is empty when the target is not an archive member."},
	{"less", "$<", "The name of the first prerequisite.\n\nIf the target got its recipe from an implicit rule, this will be the first prerequisite added by the implicit rule."},
	{"question", "$?", "The names of all the prerequisites that are newer than the target, with spaces between them.\n\nFor prerequisites which are archive members, only the named member is used."},
	{"caret", "$^", "The names of all the prerequisites, with spaces between them.\n\nFor prerequisites which are archive members, only the named member is used.\n\nA target has only one prerequisite on each other file it depends on, no matter how many times each file is listed as a prerequisite. So if you list a prerequisite more than once for a target, the value of $^ contains just one copy of the name.\n\nThis list does not contain any of the order-only prerequisites; for those see the ‘$|’ variable."},
	{"plus", "$+", "The names of all the prerequisites, with spaces between them, but prerequisites listed more than once are duplicated in the order they were listed in the makefile.\n\nThis is primarily useful for use in linking commands where it is meaningful to repeat library file names in a particular order."},
	{"pipe", "$|", "The names of all the order-only prerequisites, with spaces between them."},
	{"star", "$*", "The stem of the target of the rule. Behaves differently depending on the context.\n\nIn an implicit rule, if the target is dir/a.foo.b and the target pattern is a.%.b then the stem is dir/foo. The stem is useful for constructing names of related files.\n\nIn a static pattern rule, the stem is part of the file name that matched the ‘%’ in the target pattern.\n\nIf the target name ends with a recognized suffix, ‘$*’ is set to the target name minus the suffix. GNU make does this only for compatibility with other implementations of make. You should generally avoid using ‘$*’ in explicit rules."},
	{"at-dir", "$(@D)", "The directory part of the file name of the target, with the trailing slash removed.\n\nIf the value of ‘$@’ is dir/foo.o then ‘$(@D)’ is dir.\n\nThis value is . if ‘$@’ does not contain a slash."},
	{"at-file", "$(@F)", "The file-within-directory part of the file name of the target.\n\nIf the value of ‘$@’ is dir/foo.o then ‘$(@F)’ is foo.o.\n\n‘$(@F)’ is equivalent to ‘$(notdir $@)’."},
	{"star-dir", "$(*D)", "The directory part of the stem of the target, with the trailing slash removed.\n\nIf the value of ‘$@’ is dir/foo.o then ‘$(*D)’ is dir.\n\nThis value is . if the stem does not contain a slash."},
	{"star-file", "$(*F)", "The file-within-directory part of the stem of the target. If the value of ‘$@’ is dir/foo.o then ‘$(*F)’ is foo."},
	{"percent-dir", "$(%D)", "The directory part of the target archive member name.\n\nThis makes sense only for archive member targets of the form archive(member) and is useful only when member may contain a directory name."},
	{"percent-file", "$(%F)", "The file-within-directory part of the target archive member name.\n\nThis makes sense only for archive member targets of the form archive(member) and is useful only when member may contain a directory name."},
	{"less-dir", "$(<D)", "The directory part of the first prerequisite."},
	{"less-file", "$(<F)", "The file-within-directory part of the first prerequisite."},
	{"caret-dir", "$(^D)", "List of the directory parts of all prerequisites."},
	{"caret-file", "$(^F)", "List of the file-within-directory parts of all prerequisites."},
	{"plus-dir", "$(+D)", "List of the directory parts of all prerequisites, including multiple instances of duplicated prerequisites."},
	{"plus-file", "$(+F)", "List of the file-within-directory parts of all prerequisites, including multiple instances of duplicated prerequisites."},
	{"question-dir", "$(?D)", "List of the directory parts of all prerequisites that are newer than the target."},
	{"question-file", "$(?F)", "List of the file-within-directory parts of all prerequisites that are newer than the target."},
	{"AR", "AR", "Archive-maintaining program; default ‘ar’."},
	{"AS", "AS", "Program for compiling assembly files; default ‘as’."},
	{"CC", "CC", "Program for compiling C programs; default ‘cc’."},
	{"CXX", "CXX", "Program for compiling C++ programs; default ‘g++’."},
	{"CPP", "CPP", "Program for running the C preprocessor, with results to standard output; default ‘$(CC) -E’."},
	{"FC", "FC", "Program for compiling or preprocessing Fortran and Ratfor programs; default ‘f77’."},
	{"M2C", "M2C", "Program to use to compile Modula-2 source code; default ‘m2c’."},
	{"PC", "PC", "Program for compiling Pascal programs; default ‘pc’."},
	{"CO", "CO", "Program for extracting a file from RCS; default ‘co’."},
	{"GET", "GET", "Program for extracting a file from SCCS; default ‘get’."},
	{"LEX", "LEX", "Program to use to turn Lex grammars into source code; default ‘lex’."},
	{"YACC", "YACC", "Program to use to turn Yacc grammars into source code; default ‘yacc’."},
	{"LINT", "LINT", "Program to use to run lint on source code; default ‘lint’."},
	{"MAKEINFO", "MAKEINFO", "Program to convert a Texinfo source file into an Info file; default ‘makeinfo’."},
	{"TEX", "TEX", "Program to make TeX DVI files from TeX source; default ‘tex’."},
	{"TEXI2DVI", "TEXI2DVI", "Program to make TeX DVI files from Texinfo source; default ‘texi2dvi’."},
	{"WEAVE", "WEAVE", "Program to translate Web into TeX; default ‘weave’."},
	{"CWEAVE", "CWEAVE", "Program to translate C Web into TeX; default ‘cweave’."},
	{"TANGLE", "TANGLE", "Program to translate Web into Pascal; default ‘tangle’."},
	{"CTANGLE", "CTANGLE", "Program to translate C Web into C; default ‘ctangle’."},
	{"RM", "RM", "Command to remove a file; default ‘rm -f’."},
	{"ARFLAGS", "ARFLAGS", "Flags to give the archive-maintaining program; default ‘rv’."},
	{"ASFLAGS", "ASFLAGS", "Extra flags to give to the assembler (when explicitly invoked on a ‘.s’ or ‘.S’ file)."},
	{"CFLAGS", "CFLAGS", "Extra flags to give to the C compiler."},
	{"CXXFLAGS", "CXXFLAGS", "Extra flags to give to the C++ compiler."},
	{"COFLAGS", "COFLAGS", "Extra flags to give to the RCS co program."},
	{"CPPFLAGS", "CPPFLAGS", "Extra flags to give to the C preprocessor and programs that use it (the C and Fortran compilers)."},
	{"FFLAGS", "FFLAGS", "Extra flags to give to the Fortran compiler."},
	{"GFLAGS", "GFLAGS", "Extra flags to give to the SCCS get program."},
	{"LDFLAGS", "LDFLAGS", "Extra flags to give to compilers when they are supposed to invoke the linker, ‘ld’, such as -L. Libraries (-lfoo) should be added to the LDLIBS variable instead."},
	{"LDLIBS", "LDLIBS", "Library flags or names given to compilers when they are supposed to invoke the linker, ‘ld’. LOADLIBES is a deprecated (but still supported) alternative to LDLIBS. Non-library linker flags, such as -L, should go in the LDFLAGS variable."},
	{"LFLAGS", "LFLAGS", "Extra flags to give to Lex."},
	{"YFLAGS", "YFLAGS", "Extra flags to give to Yacc."},
	{"PFLAGS", "PFLAGS", "Extra flags to give to the Pascal compiler."},
	{"RFLAGS", "RFLAGS", "Extra flags to give to the Fortran compiler for Ratfor programs."},
	{"LINTFLAGS", "LINTFLAGS", "Extra flags to give to lint."},
}

var catalogByKey = make(map[string]*catalogEntry)

// catalogNames are the make variable names the catalog already covers, so
// live symbols do not duplicate them.
var catalogNames = make(map[string]struct{})

func init() {
	for index := range catalog {
		entry := &catalog[index]
		catalogByKey[entry.Key] = entry

		name := strings.TrimPrefix(entry.Label, sigil)
		name = strings.TrimSuffix(strings.TrimPrefix(name, "("), ")")
		catalogNames[name] = struct{}{}
	}
}
