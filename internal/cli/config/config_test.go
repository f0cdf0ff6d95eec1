package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/meshlint/pkg/templater"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	ResetConfig()

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultQuoteEscape, cfg.QuoteEscape)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.False(t, cfg.Verbose)
	assert.Empty(t, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	ResetConfig()

	content := "quote_escape: backslash\nhash_comments: true\nline_comment_markers:\n  - \"--\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "meshlint.yaml"), []byte(content), 0o600))

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "backslash", cfg.QuoteEscape)
	assert.True(t, cfg.HashComments)
	assert.Equal(t, []string{"--"}, cfg.LineCommentMarkers)
	assert.Equal(t, "meshlint.yaml", GetConfigFileUsed())
}

func TestLoadConfig_ExplicitFileWins(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	ResetConfig()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "meshlint.yaml"), []byte("verbose: false\n"), 0o600))
	other := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(other, []byte("verbose: true\n"), 0o600))

	cfg, err := LoadConfig(other, nil)
	require.NoError(t, err)

	assert.True(t, cfg.Verbose)
	assert.Equal(t, other, GetConfigFileUsed())
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	ResetConfig()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "meshlint.yaml"), []byte("quote_escape: doubled\n"), 0o600))
	t.Setenv("MESHLINT_QUOTE_ESCAPE", "backslash")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "backslash", cfg.QuoteEscape)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	ResetConfig()
	t.Setenv("MESHLINT_OUTPUT", "markdown")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringP("output", "o", DefaultOutput, "")
	flags.Bool("hash-comments", false, "")
	require.NoError(t, flags.Set("output", "json"))
	require.NoError(t, flags.Set("hash-comments", "true"))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.OutputFormat)
	assert.True(t, cfg.HashComments, "kebab-case flag maps to snake_case key")
}

func TestLoadConfig_UnchangedFlagsIgnored(t *testing.T) {
	t.Chdir(t.TempDir())
	ResetConfig()
	t.Setenv("MESHLINT_OUTPUT", "json")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringP("output", "o", DefaultOutput, "")

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.OutputFormat, "flag defaults must not mask env vars")
}

func TestLoadConfig_BadFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	ResetConfig()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "meshlint.yaml"), []byte(": not yaml ["), 0o600))

	_, err := LoadConfig("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "meshlint.yaml")
}

func TestTemplaterOptions(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    templater.Options
		wantErr bool
	}{
		{
			name: "defaults",
			cfg:  Config{},
			want: templater.Options{
				LineCommentMarkers: []string{"--", "//"},
				QuoteEscape:        templater.EscapeDoubled,
			},
		},
		{
			name: "hash comments appended",
			cfg:  Config{HashComments: true},
			want: templater.Options{
				LineCommentMarkers: []string{"--", "//", "#"},
				QuoteEscape:        templater.EscapeDoubled,
			},
		},
		{
			name: "custom markers replace defaults",
			cfg:  Config{LineCommentMarkers: []string{"--"}},
			want: templater.Options{
				LineCommentMarkers: []string{"--"},
				QuoteEscape:        templater.EscapeDoubled,
			},
		},
		{
			name: "backslash escape",
			cfg:  Config{QuoteEscape: "backslash"},
			want: templater.Options{
				LineCommentMarkers: []string{"--", "//"},
				QuoteEscape:        templater.EscapeBackslash,
			},
		},
		{
			name:    "invalid escape",
			cfg:     Config{QuoteEscape: "octal"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.TemplaterOptions()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetLoggerFallback(t *testing.T) {
	logger := GetLogger(t.Context())
	require.NotNil(t, logger)
	assert.False(t, logger.Enabled(t.Context(), 0), "fallback logger stays quiet below warn")
}
