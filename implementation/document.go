package implementation

import (
	"path/filepath"
	"strings"
	"sync"

	protocol "github.com/tliron/glsp/protocol_3_16"
	urlpkg "github.com/tliron/kutil/url"
)

// documentStore holds opened documents.
type documentStore struct {
	documents sync.Map // protocol.DocumentUri to *document
}

// document represents an opened Makefile.
type document struct {
	URI     protocol.DocumentUri
	Path    string
	Content string
}

// Dir is the directory make runs in for this document.
func (d *document) Dir() string {
	return filepath.Dir(d.Path)
}

func (s *documentStore) set(uri protocol.DocumentUri, content string) *document {
	doc := &document{
		URI:     uri,
		Path:    uriToPath(uri),
		Content: content,
	}
	s.documents.Store(uri, doc)
	return doc
}

func (s *documentStore) get(uri protocol.DocumentUri) (*document, bool) {
	if doc, ok := s.documents.Load(uri); ok {
		return doc.(*document), true
	}
	return nil, false
}

func (s *documentStore) delete(uri protocol.DocumentUri) {
	s.documents.Delete(uri)
}

func uriToPath(uri protocol.DocumentUri) string {
	urlContext := urlpkg.NewContext()
	defer urlContext.Release()

	url, err := urlpkg.NewURL(string(uri), urlContext)
	if err != nil {
		return filepath.FromSlash(string(uri))
	}
	fileUrl, ok := url.(*urlpkg.FileURL)
	if !ok {
		return filepath.FromSlash(string(uri))
	}

	path := fileUrl.Path
	// file:///C:/x on Windows
	if len(path) > 2 && path[0] == '/' && path[2] == ':' {
		path = path[1:]
	}
	// file://server/share/x is a UNC path
	if host := uriHost(uri); host != "" && host != "localhost" {
		path = "//" + host + path
	}
	return filepath.FromSlash(path)
}

func uriHost(uri protocol.DocumentUri) string {
	rest, ok := strings.CutPrefix(string(uri), "file://")
	if !ok {
		return ""
	}
	host, _, _ := strings.Cut(rest, "/")
	return host
}
