package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/spf13/afero"

	"github.com/sibikrish3000/startscript/pkg/launch"
)

// Writer places rendered scripts inside a distribution directory.
type Writer struct {
	// Fs receives the files. When nil, scripts go to the OS filesystem and
	// replace any previous script atomically.
	Fs afero.Fs
}

// Write stores data at root/relPath plus the platform's script suffix, with
// the platform's file mode, and returns the written path.
func (w Writer) Write(root, relPath string, p launch.Platform, data []byte) (string, error) {
	path := filepath.Join(root, filepath.FromSlash(relPath)) + p.ScriptSuffix()
	dir := filepath.Dir(path)
	mode := p.FileMode()

	if w.Fs == nil {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
		if err := renameio.WriteFile(path, data, mode, renameio.WithStaticPermissions(mode)); err != nil {
			return "", fmt.Errorf("failed to write script %q: %w", path, err)
		}
		return path, nil
	}

	if err := w.Fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory %q: %w", dir, err)
	}
	if err := afero.WriteFile(w.Fs, path, data, mode); err != nil {
		return "", fmt.Errorf("failed to write script %q: %w", path, err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := w.Fs.Chmod(path, mode); err != nil {
		return "", fmt.Errorf("failed to set mode on %q: %w", path, err)
	}
	return path, nil
}
