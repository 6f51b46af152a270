package implementation

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// refreshDocumentState is called whenever new content for a document is
// observed. The old symbol table is dropped right away so hovers never see
// stale definitions; a new one is built once edits settle.
func (self *Server) refreshDocumentState(doc *document) {
	self.cache.Invalidate(string(doc.URI))
	self.cache.Refresh(string(doc.URI), doc.Dir())
}

func (self *Server) deleteDocumentState(uri protocol.DocumentUri) {
	self.cache.Forget(string(uri))
}
