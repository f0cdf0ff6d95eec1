package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/meshlint/internal/cli/config"
	"github.com/leapstack-labs/meshlint/internal/testutil"
)

const modelScript = "MODEL (name \"demo\", kind VIEW);\nSELECT @key(a) AS k, b FROM t;\nVACUUM @this_model;\n"

func writeModel(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.sql")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// execute runs a command with captured output and a test logger.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	config.ResetConfig()

	var out, errOut bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	ctx := config.WithLogger(context.Background(), testutil.NewTestLogger(t))
	err = cmd.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}

func TestRenderCommand_Text(t *testing.T) {
	t.Setenv("MESHLINT_OUTPUT", "text")
	path := writeModel(t, modelScript)

	stdout, _, err := execute(t, NewRenderCommand(), path)
	require.NoError(t, err)
	assert.Equal(t, "SELECT key(a) AS k, b FROM t\n", stdout)
}

func TestRenderCommand_JSON(t *testing.T) {
	t.Setenv("MESHLINT_OUTPUT", "json")
	path := writeModel(t, modelScript)

	stdout, _, err := execute(t, NewRenderCommand(), path)
	require.NoError(t, err)

	var out RenderOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, path, out.File)
	assert.Equal(t, "SELECT key(a) AS k, b FROM t", out.SQL)
}

func TestRenderCommand_Markdown(t *testing.T) {
	t.Setenv("MESHLINT_OUTPUT", "markdown")
	path := writeModel(t, modelScript)

	stdout, _, err := execute(t, NewRenderCommand(), path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "# Extracted SQL: ")
	assert.Contains(t, stdout, "```sql\nSELECT key(a) AS k, b FROM t\n```")
}

func TestRenderCommand_NoSelectSkips(t *testing.T) {
	t.Setenv("MESHLINT_OUTPUT", "text")
	path := writeModel(t, "MODEL (name only);\n")

	stdout, stderr, err := execute(t, NewRenderCommand(), path)
	require.NoError(t, err, "a model without a SELECT is skipped, not an error")
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Skipping")
	assert.Contains(t, stderr, "no SELECT statement found")
}

func TestRenderCommand_MissingFile(t *testing.T) {
	t.Setenv("MESHLINT_OUTPUT", "text")

	_, _, err := execute(t, NewRenderCommand(), filepath.Join(t.TempDir(), "missing.sql"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestSlicesCommand_JSON(t *testing.T) {
	t.Setenv("MESHLINT_OUTPUT", "text")
	path := writeModel(t, modelScript)

	stdout, _, err := execute(t, NewSlicesCommand(), path, "--format", "json")
	require.NoError(t, err)

	var out SlicesOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, "SELECT key(a) AS k, b FROM t", out.Templated)
	require.NotEmpty(t, out.Segments)
	require.NotEmpty(t, out.RawSlices)

	// Segments partition the templated text.
	pos := 0
	for _, seg := range out.Segments {
		if seg.OutStart != seg.OutEnd {
			assert.Equal(t, pos, seg.OutStart)
			pos = seg.OutEnd
		}
	}
	assert.Equal(t, len(out.Templated), pos)
}

func TestSlicesCommand_Table(t *testing.T) {
	t.Setenv("MESHLINT_OUTPUT", "text")
	path := writeModel(t, modelScript)

	stdout, _, err := execute(t, NewSlicesCommand(), path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "OUT")
	assert.Contains(t, stdout, "SRC")
	assert.Contains(t, stdout, "sigil removed")
}

func TestTokensCommand(t *testing.T) {
	t.Setenv("MESHLINT_OUTPUT", "text")
	path := writeModel(t, "SELECT 1; -- done\n")

	stdout, _, err := execute(t, NewTokensCommand(), path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "WORD")
	assert.Contains(t, stdout, "LINE_COMMENT")
	assert.Contains(t, stdout, "tokens over")
}

func TestVersionCommand(t *testing.T) {
	t.Setenv("MESHLINT_OUTPUT", "text")

	stdout, _, err := execute(t, NewVersionCommand("1.2.3", "today", "abc"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "meshlint 1.2.3")
}
