package lang

import (
	"github.com/smacker/go-tree-sitter/json"
)

func jsonLanguage() *Language {
	return &Language{
		Name:       JSON,
		Extensions: []string{"json"},
		Sitter:     json.GetLanguage(),
		// encoding/json has no re-serializer that preserves key order and
		// formatting the way jq or prettier would; edits are reindented by
		// the pipeline's own indent package and left otherwise as-is.
		Formatter: IdentityFormatter{},
	}
}
