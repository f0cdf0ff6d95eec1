package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/meshlint/pkg/templater"
	"github.com/spf13/cobra"
)

// TokenInfo is the JSON shape of one scanned token.
type TokenInfo struct {
	Kind  string `json:"kind"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Dump the tokenizer's classification of a model script",
		Long: `Scan a model script and print every token with its kind and byte span.

Useful for debugging why a SELECT keyword or semicolon was (or was not)
recognized: anything classified as a comment or quoted token is invisible
to statement extraction.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, args[0])
		},
	}

	return cmd
}

func runTokens(cmd *cobra.Command, path string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	opts, err := cmdCtx.Cfg.TemplaterOptions()
	if err != nil {
		return err
	}

	var src []byte
	if path == "-" {
		src, err = io.ReadAll(cmd.InOrStdin())
	} else {
		src, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	input := string(src)
	tokens := templater.Tokenize(input, opts)

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.AppendHeader(table.Row{"#", "KIND", "SPAN", "TEXT"})
	for i, tok := range tokens {
		t.AppendRow(table.Row{
			i,
			tok.Kind.String(),
			fmt.Sprintf("%d..%d", tok.Start, tok.End),
			excerpt(tok.Text(input)),
		})
	}
	t.Render()

	r.Printf("%d tokens over %d bytes\n", len(tokens), len(input))
	return nil
}
