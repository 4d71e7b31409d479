package lang

import (
	"github.com/smacker/go-tree-sitter/rust"
)

func rustLanguage() *Language {
	return &Language{
		Name:       Rust,
		Extensions: []string{"rs"},
		Sitter:     rust.GetLanguage(),
		Formatter:  ShellFormatter{Command: "rustfmt", Args: []string{"--emit", "stdout", "--edition", "2021"}},
		ValidationQuery: `
(function_item
  body: (block
    [(struct_item) (enum_item) (union_item)] @invalid.type.in.function.body))

(function_item
  body: (block
    (impl_item) @invalid.impl.in.function.body))

(function_item
  body: (block
    (trait_item) @invalid.trait.in.function.body))
`,
		ValidationMessages: map[string]string{
			"invalid.type.in.function.body": "struct, enum, and union definitions cannot be nested inside a function body",
			"invalid.impl.in.function.body": "impl blocks can only be defined at module level",
			"invalid.trait.in.function.body": "trait definitions can only be defined at module level",
		},
	}
}
