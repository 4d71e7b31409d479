package lang

import (
	"bytes"
	"context"
	"fmt"
	"go/format"
	"os/exec"
)

// Formatter normalizes source after an edit is spliced in. Per spec §9, a
// formatter that rejects its input blocks the edit entirely: unformattable
// output is taken as evidence the edit itself was unsafe, so the file is
// left untouched rather than written unformatted.
type Formatter interface {
	Format(ctx context.Context, source []byte) ([]byte, error)
}

// IdentityFormatter performs no formatting. Used for languages with no
// canonical formatter wired in, and as editor.rs's fallback path.
type IdentityFormatter struct{}

// Format returns source unchanged.
func (IdentityFormatter) Format(_ context.Context, source []byte) ([]byte, error) {
	return source, nil
}

// GoFormatter runs go/format in process, the same gofmt algorithm the Go
// toolchain uses, rather than an external process.
type GoFormatter struct{}

// Format runs go/format.Source over source.
func (GoFormatter) Format(_ context.Context, source []byte) ([]byte, error) {
	out, err := format.Source(source)
	if err != nil {
		return nil, fmt.Errorf("gofmt: %w", err)
	}
	return out, nil
}

// ShellFormatter runs an external formatter binary that reads source on
// stdin and writes formatted output on stdout, the same shape as rustfmt,
// black --stdin-filename, or taplo fmt used by the original implementation.
type ShellFormatter struct {
	Command string
	Args    []string
}

// FormatterOverride lets a caller replace a registered language's default
// formatter command, e.g. a project-local rustfmt via rustup or a
// non-default taplo install path. Mirrors config.FormatterOverride without
// the lang package depending on the config package.
type FormatterOverride struct {
	Command string
	Args    []string
}

// Format invokes the configured command, piping source in and capturing
// stdout. The command's stderr is surfaced in the returned error.
func (f ShellFormatter) Format(ctx context.Context, source []byte) ([]byte, error) {
	cmd := exec.CommandContext(ctx, f.Command, f.Args...)
	cmd.Stdin = bytes.NewReader(source)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", f.Command, err, stderr.String())
	}
	return stdout.Bytes(), nil
}
