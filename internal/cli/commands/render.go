package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/leapstack-labs/meshlint/internal/cli/output"
	"github.com/leapstack-labs/meshlint/pkg/templater"
	"github.com/spf13/cobra"
)

// RenderOutput is the JSON shape of a rendered model.
type RenderOutput struct {
	File string `json:"file"`
	SQL  string `json:"sql"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Extract the lintable SELECT statement from a model script",
		Long: `Extract the SELECT statement from a SQLMesh-style model script with
macro sigils removed.

The MODEL(...) declaration, pre/post statements, and every @ sigil outside
comments and string literals are stripped. What remains is exactly what a
SQL linter should see.

Output adapts to environment:
  - Terminal: Plain SQL (suitable for syntax highlighting)
  - Piped/Scripted: Markdown with code block`,
		Example: `  # Extract the SELECT from a model
  meshlint render models/active_developers.sql

  # Read from stdin
  cat model.sql | meshlint render -

  # Extract as JSON
  meshlint render model.sql --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0])
		},
	}

	return cmd
}

func runRender(cmd *cobra.Command, path string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	tf, err := processFile(cmd, cmdCtx, path)
	if err != nil {
		if errors.Is(err, templater.ErrNoSelect) || errors.Is(err, templater.ErrEmptyInput) {
			r.Notice(fmt.Sprintf("Skipping %s: %v", path, err))
			return nil
		}
		return err
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(RenderOutput{File: path, SQL: tf.Templated})
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, fmt.Sprintf("Extracted SQL: %s", path)))
		r.Println("")
		r.Println(output.FormatCodeBlock("sql", tf.Templated))
	default:
		// Text mode: just output the SQL directly
		r.Println(tf.Templated)
	}

	return nil
}

// processFile reads a model script ("-" means stdin) and templates it.
func processFile(cmd *cobra.Command, cmdCtx *CommandContext, path string) (*templater.TemplatedFile, error) {
	opts, err := cmdCtx.Cfg.TemplaterOptions()
	if err != nil {
		return nil, err
	}

	var src []byte
	if path == "-" {
		src, err = io.ReadAll(cmd.InOrStdin())
	} else {
		src, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cmdCtx.Logger.Debug("templating model script", "file", path, "bytes", len(src))

	tf, err := templater.Process(string(src), opts)
	if err != nil {
		return nil, err
	}
	return tf, nil
}
