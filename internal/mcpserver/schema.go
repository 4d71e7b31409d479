package mcpserver

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

var schemaReflector = &jsonschema.Reflector{
	DoNotReference: true,
	ExpandedStruct: true,
}

// schemaDoc renders T's JSON schema as an indented string, used by
// ToolSchemas for the schemas CLI command so a human (or a
// confused LLM) can see exactly what each tool's arguments look like
// without guessing from the Go struct tags.
func schemaDoc[T any]() string {
	schema := schemaReflector.Reflect(new(T))
	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return ""
	}
	return string(out)
}

// ToolSchemas returns every tool's JSON argument schema keyed by tool
// name. The result is a map and carries no order; callers that print it
// sort the names themselves.
func ToolSchemas() map[string]string {
	return map[string]string{
		"set_working_directory": schemaDoc[SetWorkingDirectoryParams](),
		"open_files":            schemaDoc[OpenFilesParams](),
		"preview_edit":          schemaDoc[PreviewEditParams](),
		"retarget_edit":         schemaDoc[RetargetEditParams](),
		"persist_edit":          schemaDoc[PersistEditParams](),
	}
}
