package implementation

import (
	"time"

	"github.com/op/go-logging"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/tminor/makels/internal/makedb"
)

const ServerName = "makels"

var Version = "0.1.0"

var log = logging.MustGetLogger(ServerName)

// Config tunes the build tool invocation and the symbol cache.
type Config struct {
	MakePath      string
	MakeArgs      []string
	Debounce      time.Duration
	HoverWait     time.Duration
	InvokeTimeout time.Duration
	CacheSize     int
}

// Server owns the open documents and their live symbol tables.
type Server struct {
	Handler protocol.Handler

	documents documentStore
	cache     *makedb.Cache
	resolver  *makedb.Resolver
}

func NewServer(config Config) *Server {
	invoker := makedb.NewInvoker(config.MakePath, config.MakeArgs...)
	invoker.Timeout = config.InvokeTimeout
	return newServer(invoker, config)
}

func newServer(dumper makedb.Dumper, config Config) *Server {
	cache := makedb.NewCache(dumper, config.Debounce, config.CacheSize)
	hoverWait := config.HoverWait
	if hoverWait <= 0 {
		hoverWait = config.Debounce
	}

	self := &Server{
		cache:    cache,
		resolver: makedb.NewResolver(cache, hoverWait),
	}

	self.Handler = protocol.Handler{
		Initialize:             self.Initialize,
		Initialized:            self.Initialized,
		Shutdown:               self.Shutdown,
		TextDocumentDidOpen:    self.TextDocumentDidOpen,
		TextDocumentDidChange:  self.TextDocumentDidChange,
		TextDocumentDidSave:    self.TextDocumentDidSave,
		TextDocumentDidClose:   self.TextDocumentDidClose,
		TextDocumentHover:      self.TextDocumentHover,
		TextDocumentCompletion: self.TextDocumentCompletion,
		CompletionItemResolve:  self.CompletionItemResolve,
	}

	return self
}

// Close stops pending refreshes.
func (self *Server) Close() {
	self.cache.Close()
}
