// Package config loads meshlint CLI configuration from file, environment
// variables, and flags.
package config

import (
	"fmt"

	"github.com/leapstack-labs/meshlint/pkg/templater"
)

// Config holds all CLI configuration options.
type Config struct {
	LineCommentMarkers []string `koanf:"line_comment_markers"`
	HashComments       bool     `koanf:"hash_comments"`
	QuoteEscape        string   `koanf:"quote_escape"` // doubled, backslash
	OutputFormat       string   `koanf:"output"`
	Verbose            bool     `koanf:"verbose"`
}

// Default configuration values.
const (
	DefaultQuoteEscape = "doubled"
	DefaultOutput      = "auto" // TTY: text, otherwise markdown
)

// TemplaterOptions converts the configuration into templater options.
func (c *Config) TemplaterOptions() (templater.Options, error) {
	opts := templater.DefaultOptions()

	if len(c.LineCommentMarkers) > 0 {
		opts.LineCommentMarkers = c.LineCommentMarkers
	}
	if c.HashComments {
		opts.LineCommentMarkers = append(opts.LineCommentMarkers, "#")
	}

	switch c.QuoteEscape {
	case "", DefaultQuoteEscape:
		opts.QuoteEscape = templater.EscapeDoubled
	case "backslash":
		opts.QuoteEscape = templater.EscapeBackslash
	default:
		return templater.Options{}, fmt.Errorf("invalid quote_escape value: %q, must be one of: doubled, backslash", c.QuoteEscape)
	}

	return opts, nil
}
