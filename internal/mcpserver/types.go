package mcpserver

import "github.com/jbr/semantic-edit-mcp-sub000/internal/selector"

// SessionData is the persisted, per-session state: everything that must
// survive a process restart. The staged edit itself is intentionally NOT
// here — it is large, ephemeral, and rebuilt from a fresh parse on every
// access, so it lives in the in-memory stage.Store instead.
type SessionData struct {
	WorkingDirectory string `json:"working_directory,omitempty"`
}

// SetWorkingDirectoryParams is the argument struct for set_working_directory.
type SetWorkingDirectoryParams struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"Session identifier; omit to use the default session"`
	Path      string `json:"path" jsonschema:"Absolute or relative path to use as the base for subsequent relative paths in this session"`
}

// OpenFilesParams is the argument struct for open_files.
type OpenFilesParams struct {
	SessionID string   `json:"session_id,omitempty" jsonschema:"Session identifier; omit to use the default session"`
	Paths     []string `json:"file_paths" jsonschema:"Files to load and cache"`
	Language  string   `json:"language,omitempty" jsonschema:"Explicit language hint applied to every path; overrides extension-based detection"`
	DiffSince string   `json:"diff_since,omitempty" jsonschema:"A previously returned version identifier; if still cached and exactly one path was given, returns a diff instead of full contents"`
}

// SelectorParams mirrors selector.Selector for wire purposes, giving each
// field its own JSON-schema description.
type SelectorParams struct {
	Operation string  `json:"operation" jsonschema:"enum=insert_before,enum=insert_after,enum=insert_after_node,enum=replace_range,enum=replace_exact,enum=replace_node"`
	Anchor    string  `json:"anchor" jsonschema:"Text used to locate the edit position; whitespace differences are tolerated"`
	End       *string `json:"end,omitempty" jsonschema:"Second anchor marking the end of a replace_range span"`
}

func (p SelectorParams) toSelector() selector.Selector {
	return selector.Selector{
		Operation: selector.Operation(p.Operation),
		Anchor:    p.Anchor,
		End:       p.End,
	}
}

// PreviewEditParams is the argument struct for preview_edit.
type PreviewEditParams struct {
	SessionID string         `json:"session_id,omitempty" jsonschema:"Session identifier; omit to use the default session"`
	Path      string         `json:"file_path" jsonschema:"File to edit, relative to the session's working directory unless absolute"`
	Language  string         `json:"language,omitempty" jsonschema:"Explicit language hint; overrides extension-based detection"`
	Selector  SelectorParams `json:"selector" jsonschema:"Where and how the edit applies"`
	Content   string         `json:"content" jsonschema:"Replacement or inserted text"`
}

// RetargetEditParams is the argument struct for retarget_edit.
type RetargetEditParams struct {
	SessionID string         `json:"session_id,omitempty" jsonschema:"Session identifier; omit to use the default session"`
	Selector  SelectorParams `json:"selector" jsonschema:"New selector to replan the currently staged edit against"`
}

// PersistEditParams is the argument struct for persist_edit.
type PersistEditParams struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"Session identifier; omit to use the default session"`
}
