package config

import (
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sibikrish3000/startscript/pkg/launch"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(New(afero.NewMemMapFs()), "")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, log.InfoLevel, cfg.Level())
}

func TestLoad_File(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/startscript.toml", []byte(`
output_dir = "dist"
platforms = ["unix", "windows"]
windows_charset = "cp1252"
concurrency = 3
log_level = "debug"
`), 0o644))

	cfg, err := Load(New(fs), "/etc/startscript.toml")
	require.NoError(t, err)
	assert.Equal(t, Config{
		OutputDir:      "dist",
		Platforms:      []string{"unix", "windows"},
		WindowsCharset: "cp1252",
		Concurrency:    3,
		LogLevel:       "debug",
	}, cfg)
	assert.Equal(t, log.DebugLevel, cfg.Level())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(New(afero.NewMemMapFs()), "/nope.toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/nope.toml")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/c.toml", []byte("concurrency = 3\noutput_dir = \"dist\"\n"), 0o644))
	t.Setenv("STARTSCRIPT_CONCURRENCY", "8")
	t.Setenv("STARTSCRIPT_PLATFORMS", "windows,unix")

	cfg, err := Load(New(fs), "/c.toml")
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, "dist", cfg.OutputDir)
	assert.Equal(t, []string{"windows", "unix"}, cfg.Platforms)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"negative concurrency", "concurrency = -1\n"},
		{"unknown log level", "log_level = \"loud\"\n"},
		{"unknown platform", "platforms = [\"amiga\"]\n"},
		{"unknown charset", "windows_charset = \"utf16le\"\n"},
		{"malformed toml", "concurrency = \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "/c.toml", []byte(tt.body), 0o644))
			_, err := Load(New(fs), "/c.toml")
			assert.Error(t, err)
		})
	}
}

func TestTargets(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Platforms = []string{"windows", "unix"}
	cfg.WindowsCharset = launch.CharsetCP850

	got, err := cfg.Targets()
	require.NoError(t, err)
	assert.Equal(t, []launch.Platform{
		{OS: launch.Windows, Charset: launch.CharsetCP850},
		{OS: launch.Unix, Charset: launch.CharsetUTF8},
	}, got)
}
