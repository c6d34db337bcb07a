package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sibikrish3000/startscript/pkg/launch"
)

func TestWriter_MemFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := Writer{Fs: fs}

	tests := []struct {
		name     string
		platform launch.Platform
		wantPath string
		wantMode os.FileMode
	}{
		{"unix", launch.UnixPlatform, filepath.Join("/dist", "bin", "myapp"), 0o755},
		{"windows", launch.WindowsPlatform, filepath.Join("/dist", "bin", "myapp.bat"), 0o644},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := w.Write("/dist", "bin/myapp", tt.platform, []byte("script"))
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, path)

			data, err := afero.ReadFile(fs, path)
			require.NoError(t, err)
			assert.Equal(t, "script", string(data))

			info, err := fs.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMode, info.Mode().Perm())
		})
	}
}

func TestWriter_MemFsOverwriteFixesMode(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/dist/bin", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/dist/bin/myapp", []byte("old"), 0o600))

	path, err := Writer{Fs: fs}.Write("/dist", "bin/myapp", launch.UnixPlatform, []byte("new"))
	require.NoError(t, err)

	info, err := fs.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestWriter_OSAtomic(t *testing.T) {
	root := t.TempDir()

	path, err := Writer{}.Write(root, "bin/myapp", launch.UnixPlatform, []byte("#!/bin/sh\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "bin", "myapp"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0o100, "owner execute bit")

	_, err = Writer{}.Write(root, "bin/myapp", launch.UnixPlatform, []byte("#!/bin/sh\necho v2\n"))
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\necho v2\n", string(data))

	entries, err := os.ReadDir(filepath.Join(root, "bin"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}
