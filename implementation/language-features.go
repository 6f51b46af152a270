package implementation

import (
	contextpkg "context"
	"fmt"
	"sort"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const markdownLanguage = "makefile"

func definitionBlock(definition string) string {
	return fmt.Sprintf("```%s\n%s\n```", markdownLanguage, definition)
}

// TextDocumentHover implements protocol.TextDocumentHoverFunc
func (self *Server) TextDocumentHover(context *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc, ok := self.documents.get(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	line, ok := lineAt(doc.Content, int(params.Position.Line))
	if !ok {
		return nil, nil
	}

	position := runeOffset(line, params.Position.Character)
	definition, ok := self.resolver.Resolve(contextpkg.Background(), string(doc.URI), line, position)
	if !ok {
		return nil, nil
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: definitionBlock(definition),
		},
	}, nil
}

// TextDocumentCompletion implements protocol.TextDocumentCompletionFunc
func (self *Server) TextDocumentCompletion(context *glsp.Context, params *protocol.CompletionParams) (interface{}, error) {
	afterSigil := self.afterSigil(params)
	kind := protocol.CompletionItemKindVariable

	items := make([]protocol.CompletionItem, 0, len(catalog))
	for index := range catalog {
		entry := &catalog[index]
		insertText := entry.insertText(afterSigil)
		sortText := fmt.Sprintf("%03d", index+1)
		items = append(items, protocol.CompletionItem{
			Label:      entry.Label,
			Kind:       &kind,
			InsertText: &insertText,
			SortText:   &sortText,
			Data:       entry.Key,
		})
	}

	// Variables make actually sees for this directory.
	if table, ok := self.cache.Lookup(string(params.TextDocument.URI)); ok {
		names := make([]string, 0, len(table))
		for name := range table {
			if _, ok := catalogNames[name]; ok || strings.ContainsAny(name, " \t") {
				continue
			}
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			insertText := name
			if afterSigil {
				insertText = "(" + name + ")"
			}
			sortText := "live:" + name
			detail := table[name]
			items = append(items, protocol.CompletionItem{
				Label:      name,
				Kind:       &kind,
				Detail:     &detail,
				InsertText: &insertText,
				SortText:   &sortText,
				Documentation: protocol.MarkupContent{
					Kind:  protocol.MarkupKindMarkdown,
					Value: definitionBlock(detail),
				},
			})
		}
	}

	return items, nil
}

// CompletionItemResolve implements protocol.CompletionItemResolveFunc
func (self *Server) CompletionItemResolve(context *glsp.Context, params *protocol.CompletionItem) (*protocol.CompletionItem, error) {
	if key, ok := params.Data.(string); ok {
		if entry, ok := catalogByKey[key]; ok {
			params.Documentation = entry.Documentation
		}
	}
	return params, nil
}

// afterSigil reports whether completion was triggered by '$' or the cursor
// directly follows one.
func (self *Server) afterSigil(params *protocol.CompletionParams) bool {
	if params.Context != nil && params.Context.TriggerCharacter != nil {
		return *params.Context.TriggerCharacter == sigil
	}

	doc, ok := self.documents.get(params.TextDocument.URI)
	if !ok {
		return false
	}
	index := positionToIndex(doc.Content, params.Position)
	return index > 0 && doc.Content[index-1] == '$'
}
