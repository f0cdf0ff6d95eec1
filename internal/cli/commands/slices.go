package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/meshlint/internal/cli/output"
	"github.com/leapstack-labs/meshlint/pkg/templater"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// SlicesOptions holds options for the slices command.
type SlicesOptions struct {
	Format string // Output format override: table, json, yaml
	Raw    bool   // Show raw slices instead of output segments
}

// SlicesOutput is the JSON/YAML shape of the slices command.
type SlicesOutput struct {
	File      string               `json:"file" yaml:"file"`
	Templated string               `json:"templated" yaml:"templated"`
	Segments  []templater.Segment  `json:"segments" yaml:"segments"`
	RawSlices []templater.RawSlice `json:"raw_slices" yaml:"raw_slices"`
}

// NewSlicesCommand creates the slices command.
func NewSlicesCommand() *cobra.Command {
	opts := &SlicesOptions{}
	cmd := &cobra.Command{
		Use:   "slices <file>",
		Short: "Show the position map between extracted SQL and the source",
		Long: `Show how offsets in the extracted SQL map back to the original model
script.

Each segment links a range of the extracted output to the source range it
was copied from. Zero-width segments mark removed @ sigils. This is the
same mapping a host linter uses to translate diagnostic positions.`,
		Example: `  # Show the segment table
  meshlint slices model.sql

  # Show how the whole source file is classified
  meshlint slices model.sql --raw

  # Machine-readable output
  meshlint slices model.sql --format json
  meshlint slices model.sql --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSlices(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: table, json, yaml")
	cmd.Flags().BoolVar(&opts.Raw, "raw", false, "Show raw source slices instead of output segments")

	return cmd
}

func runSlices(cmd *cobra.Command, path string, opts *SlicesOptions) error {
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

	out := SlicesOutput{
		File:      path,
		Templated: tf.Templated,
		Segments:  tf.Segments,
		RawSlices: tf.RawSlices,
	}

	format := opts.Format
	if format == "" && r.EffectiveMode() == output.ModeJSON {
		format = "json"
	}

	switch format {
	case "json":
		return r.JSON(out)
	case "yaml":
		data, err := yaml.Marshal(out)
		if err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		r.Printf("%s", data)
		return nil
	default:
		if opts.Raw {
			renderRawSliceTable(r, tf)
		} else {
			renderSegmentTable(r, tf)
		}
		return nil
	}
}

func renderSegmentTable(r *output.Renderer, tf *templater.TemplatedFile) {
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.AppendHeader(table.Row{"#", "OUT", "SRC", "TEXT"})

	for i, seg := range tf.Segments {
		text := "(sigil removed)"
		if !seg.IsZero() {
			text = excerpt(tf.Templated[seg.OutStart:seg.OutEnd])
		}
		t.AppendRow(table.Row{
			i,
			fmt.Sprintf("%d..%d", seg.OutStart, seg.OutEnd),
			fmt.Sprintf("%d..%d", seg.SrcStart, seg.SrcEnd),
			text,
		})
	}
	t.Render()

	r.Printf("%d segments, %d bytes extracted from %d bytes of source\n",
		len(tf.Segments), len(tf.Templated), len(tf.Source))
}

func renderRawSliceTable(r *output.Renderer, tf *templater.TemplatedFile) {
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.AppendHeader(table.Row{"#", "KIND", "SRC", "TEXT"})

	for i, rs := range tf.RawSlices {
		t.AppendRow(table.Row{
			i,
			rs.Kind.String(),
			fmt.Sprintf("%d..%d", rs.Start, rs.End),
			excerpt(rs.Text(tf.Source)),
		})
	}
	t.Render()
}

// excerpt flattens and truncates text for table display.
func excerpt(s string) string {
	s = strings.ReplaceAll(s, "\n", "\\n")
	const max = 40
	if len(s) > max {
		return s[:max-3] + "..."
	}
	return s
}
