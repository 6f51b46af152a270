package implementation

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// TextDocumentDidOpen implements protocol.TextDocumentDidOpenFunc
func (self *Server) TextDocumentDidOpen(context *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := self.documents.set(params.TextDocument.URI, params.TextDocument.Text)
	self.refreshDocumentState(doc)
	return nil
}

// TextDocumentDidChange implements protocol.TextDocumentDidChangeFunc
func (self *Server) TextDocumentDidChange(context *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	doc, ok := self.documents.get(params.TextDocument.URI)
	if !ok {
		return nil
	}

	content := doc.Content
	for _, change := range params.ContentChanges {
		if change_, ok := change.(protocol.TextDocumentContentChangeEvent); ok {
			startIndex, endIndex := rangeToIndex(content, &change_.Range)
			content = content[:startIndex] + change_.Text + content[endIndex:]
		} else if change_, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			content = change_.Text
		}
	}

	doc = self.documents.set(params.TextDocument.URI, content)
	self.refreshDocumentState(doc)
	return nil
}

// TextDocumentDidSave implements protocol.TextDocumentDidSaveFunc
func (self *Server) TextDocumentDidSave(context *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	// make reads the file from disk, so a save is when the dump changes
	if doc, ok := self.documents.get(params.TextDocument.URI); ok {
		self.refreshDocumentState(doc)
	}
	return nil
}

// TextDocumentDidClose implements protocol.TextDocumentDidCloseFunc
func (self *Server) TextDocumentDidClose(context *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	self.deleteDocumentState(params.TextDocument.URI)
	self.documents.delete(params.TextDocument.URI)
	return nil
}
