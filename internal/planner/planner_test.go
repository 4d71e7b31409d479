package planner

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbr/semantic-edit-mcp-sub000/internal/selector"
)

func parseGo(t *testing.T, source string) *sitter.Tree {
	t.Helper()
	p := sitter.NewParser()
	p.SetLanguage(golang.GetLanguage())
	tree, err := p.ParseCtx(context.Background(), nil, []byte(source))
	require.NoError(t, err)
	return tree
}

func strPtr(s string) *string { return &s }

func TestPlanInsertBefore(t *testing.T) {
	source := "package main\n\nfunc main() {}\n"
	pos, err := Plan(selector.Selector{Operation: selector.InsertBefore, Anchor: "func main"}, source, parseGo(t, source))
	require.NoError(t, err)
	assert.True(t, pos.IsInsert())
	assert.Equal(t, 14, pos.StartByte)
}

func TestPlanInsertAfter(t *testing.T) {
	source := "package main\n\nfunc main() {}\n"
	pos, err := Plan(selector.Selector{Operation: selector.InsertAfter, Anchor: "package main"}, source, parseGo(t, source))
	require.NoError(t, err)
	assert.True(t, pos.IsInsert())
	assert.Equal(t, len("package main"), pos.StartByte)
}

func TestPlanReplaceExact(t *testing.T) {
	source := "package main\n\nfunc main() {}\n"
	pos, err := Plan(selector.Selector{Operation: selector.ReplaceExact, Anchor: "func main() {}"}, source, parseGo(t, source))
	require.NoError(t, err)
	require.False(t, pos.IsInsert())
	assert.Equal(t, "func main() {}", source[pos.StartByte:*pos.EndByte])
}

func TestPlanReplaceRange(t *testing.T) {
	source := "start\nmiddle\nend"
	pos, err := Plan(selector.Selector{Operation: selector.ReplaceRange, Anchor: "start", End: strPtr("end")}, source, nil)
	require.NoError(t, err)
	require.False(t, pos.IsInsert())
	assert.Equal(t, source, source[pos.StartByte:*pos.EndByte])
}

func TestPlanReplaceNode(t *testing.T) {
	source := "package main\n\nfunc main() {}\n"
	pos, err := Plan(selector.Selector{Operation: selector.ReplaceNode, Anchor: "main()"}, source, parseGo(t, source))
	require.NoError(t, err)
	require.False(t, pos.IsInsert())
	assert.Contains(t, source[pos.StartByte:*pos.EndByte], "func main() {}")
}

func TestPlanNoMatchError(t *testing.T) {
	source := "package main\n"
	_, err := Plan(selector.Selector{Operation: selector.InsertBefore, Anchor: "nonexistent"}, source, nil)
	assert.Error(t, err)
}

func TestPlanAmbiguousMatchListsCandidates(t *testing.T) {
	source := "a();\na();\n"
	_, err := Plan(selector.Selector{Operation: selector.ReplaceExact, Anchor: "a();"}, source, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Found 2 possible matches")
}

func TestPlanInvalidSelectorRejected(t *testing.T) {
	_, err := Plan(selector.Selector{Operation: selector.ReplaceRange, Anchor: "x"}, "x", nil)
	assert.Error(t, err)
}
