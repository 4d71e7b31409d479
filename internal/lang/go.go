package lang

import (
	"github.com/smacker/go-tree-sitter/golang"
)

func goLanguage() *Language {
	return &Language{
		Name:       Go,
		Extensions: []string{"go"},
		Sitter:     golang.GetLanguage(),
		Formatter:  GoFormatter{},
		ValidationQuery: `
(function_declaration
  body: (block
    [(type_declaration) (import_declaration)] @invalid.decl.in.function.body))
`,
		ValidationMessages: map[string]string{
			"invalid.decl.in.function.body": "type and import declarations cannot be nested inside a function body",
		},
	}
}
