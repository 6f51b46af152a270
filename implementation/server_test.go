package implementation

import (
	contextpkg "context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const testURI = protocol.DocumentUri("file:///project/Makefile")

const testMakefile = "CC = gcc\nall:\n\t$(CC) -o out main.c\n"

type fakeDumper struct {
	lock   sync.Mutex
	output string
	dirs   []string
}

func (d *fakeDumper) Dump(ctx contextpkg.Context, dir string) (string, error) {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.dirs = append(d.dirs, dir)
	return d.output, nil
}

func (d *fakeDumper) calls() []string {
	d.lock.Lock()
	defer d.lock.Unlock()
	return append([]string{}, d.dirs...)
}

func newTestServer(t *testing.T, output string) (*Server, *fakeDumper) {
	t.Helper()
	dumper := &fakeDumper{output: output}
	server := newServer(dumper, Config{
		Debounce:  20 * time.Millisecond,
		HoverWait: 2 * time.Second,
	})
	t.Cleanup(server.Close)
	return server, dumper
}

func openDocument(t *testing.T, server *Server, text string) {
	t.Helper()
	require.NoError(t, server.TextDocumentDidOpen(nil, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        testURI,
			LanguageID: "makefile",
			Version:    1,
			Text:       text,
		},
	}))
}

func hover(t *testing.T, server *Server, line protocol.UInteger, character protocol.UInteger) *protocol.Hover {
	t.Helper()
	result, err := server.TextDocumentHover(nil, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
			Position:     protocol.Position{Line: line, Character: character},
		},
	})
	require.NoError(t, err)
	return result
}

func TestHoverEndToEnd(t *testing.T) {
	server, dumper := newTestServer(t, "# makefile (from 'Makefile', line 1)\nCC = gcc\n")
	openDocument(t, server, testMakefile)

	result := hover(t, server, 2, 3)
	require.NotNil(t, result)
	content, ok := result.Contents.(protocol.MarkupContent)
	require.True(t, ok)
	assert.Equal(t, protocol.MarkupKindMarkdown, content.Kind)
	assert.Equal(t, "```makefile\ngcc\n```", content.Value)
	assert.Equal(t, []string{"/project"}, dumper.calls())
}

func TestHoverUnknownWord(t *testing.T) {
	server, _ := newTestServer(t, "CC = gcc\n")
	openDocument(t, server, testMakefile)
	require.NotNil(t, hover(t, server, 0, 0))

	assert.Nil(t, hover(t, server, 1, 1), "all is a target, not a variable")
	assert.Nil(t, hover(t, server, 0, 3), "cursor on a delimiter")
	assert.Nil(t, hover(t, server, 10, 0), "line past the end")
}

func TestHoverUnknownDocument(t *testing.T) {
	server, _ := newTestServer(t, "CC = gcc\n")
	assert.Nil(t, hover(t, server, 0, 0))
}

func TestDidChangeInvalidatesAndRefreshes(t *testing.T) {
	server, dumper := newTestServer(t, "CC = gcc\n")
	openDocument(t, server, testMakefile)
	require.NotNil(t, hover(t, server, 0, 0))

	dumper.lock.Lock()
	dumper.output = "CC = clang\n"
	dumper.lock.Unlock()

	require.NoError(t, server.TextDocumentDidChange(nil, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
			Version:                2,
		},
		ContentChanges: []interface{}{
			protocol.TextDocumentContentChangeEventWhole{Text: "CC = clang\n"},
		},
	}))

	_, ok := server.cache.Lookup(string(testURI))
	assert.False(t, ok, "a change must hide the old table immediately")

	result := hover(t, server, 0, 0)
	require.NotNil(t, result)
	assert.Contains(t, result.Contents.(protocol.MarkupContent).Value, "clang")
}

func TestDidChangeAppliesRangedEdit(t *testing.T) {
	server, _ := newTestServer(t, "")
	openDocument(t, server, "CC = gcc\n")

	require.NoError(t, server.TextDocumentDidChange(nil, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
			Version:                2,
		},
		ContentChanges: []interface{}{
			protocol.TextDocumentContentChangeEvent{
				Range: protocol.Range{
					Start: protocol.Position{Line: 0, Character: 5},
					End:   protocol.Position{Line: 0, Character: 8},
				},
				Text: "clang",
			},
		},
	}))

	doc, ok := server.documents.get(testURI)
	require.True(t, ok)
	assert.Equal(t, "CC = clang\n", doc.Content)
}

func TestDidCloseForgetsDocument(t *testing.T) {
	server, _ := newTestServer(t, "CC = gcc\n")
	openDocument(t, server, testMakefile)
	require.NotNil(t, hover(t, server, 0, 0))

	require.NoError(t, server.TextDocumentDidClose(nil, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	}))

	_, ok := server.documents.get(testURI)
	assert.False(t, ok)
	_, ok = server.cache.Lookup(string(testURI))
	assert.False(t, ok)
	assert.Nil(t, hover(t, server, 0, 0))
}

func TestInitializeCapabilities(t *testing.T) {
	server, _ := newTestServer(t, "")
	result, err := server.Initialize(nil, &protocol.InitializeParams{})
	require.NoError(t, err)

	initialized, ok := result.(*protocol.InitializeResult)
	require.True(t, ok)
	assert.Equal(t, protocol.TextDocumentSyncKindFull, initialized.Capabilities.TextDocumentSync)
	assert.Equal(t, true, initialized.Capabilities.HoverProvider)
	require.NotNil(t, initialized.Capabilities.CompletionProvider)
	assert.Equal(t, []string{"$"}, initialized.Capabilities.CompletionProvider.TriggerCharacters)
	assert.Equal(t, ServerName, initialized.ServerInfo.Name)
}

func TestDidChangeIgnoresUnopenedDocument(t *testing.T) {
	server, dumper := newTestServer(t, "CC = gcc\n")

	require.NoError(t, server.TextDocumentDidChange(nil, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
			Version:                2,
		},
		ContentChanges: []interface{}{
			protocol.TextDocumentContentChangeEventWhole{Text: "CC = clang\n"},
		},
	}))

	_, ok := server.documents.get(testURI)
	assert.False(t, ok, "a change never opens a document")
	assert.Never(t, func() bool { return len(dumper.calls()) > 0 }, 100*time.Millisecond, 10*time.Millisecond)
}
