package lang

import (
	"github.com/smacker/go-tree-sitter/python"
)

func pythonLanguage() *Language {
	return &Language{
		Name:       Python,
		Extensions: []string{"py"},
		Sitter:     python.GetLanguage(),
		Formatter:  ShellFormatter{Command: "black", Args: []string{"-q", "-"}},
		ValidationQuery: `
(class_definition
  body: (block
    (function_definition
      body: (block
        (class_definition) @invalid.class.in.method.body))))
`,
		ValidationMessages: map[string]string{
			"invalid.class.in.method.body": "class definitions nested this deep usually indicate a misplaced edit; double-check the target method",
		},
	}
}
