package lang

import (
	"github.com/smacker/go-tree-sitter/toml"
)

func tomlLanguage() *Language {
	return &Language{
		Name:       TOML,
		Extensions: []string{"toml"},
		Sitter:     toml.GetLanguage(),
		Formatter:  ShellFormatter{Command: "taplo", Args: []string{"fmt", "-"}},
	}
}
