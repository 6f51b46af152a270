package implementation

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// protocol.InitializeFunc signature
func (self *Server) Initialize(context *glsp.Context, params *protocol.InitializeParams) (interface{}, error) {
	capabilities := self.Handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = protocol.TextDocumentSyncKindFull
	capabilities.HoverProvider = true

	resolveProvider := true
	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{sigil},
		ResolveProvider:   &resolveProvider,
	}

	return &protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    ServerName,
			Version: &Version,
		},
	}, nil
}

// protocol.InitializedFunc signature
func (self *Server) Initialized(context *glsp.Context, params *protocol.InitializedParams) error {
	log.Infof("%s %s initialized", ServerName, Version)
	return nil
}

// protocol.ShutdownFunc signature
func (self *Server) Shutdown(context *glsp.Context) error {
	self.Close()
	return nil
}
