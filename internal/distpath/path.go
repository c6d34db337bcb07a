// Package distpath computes paths inside a distribution tree: the way back
// from a script's directory to the installation root, and native separator
// conversion for the target interpreter.
package distpath

import (
	"strings"

	"github.com/sibikrish3000/startscript/pkg/launch"
)

// Relativize returns the forward-slash path leading from the directory that
// contains the script back to the distribution root: "bin/app" gives "..",
// "a/b/c/app" gives "../../..", and a script at the root gives ".".
func Relativize(scriptRelativePath string) (string, error) {
	if err := checkRelative(scriptRelativePath); err != nil {
		return "", err
	}

	segments := strings.Split(scriptRelativePath, "/")
	depth := len(segments) - 1
	if depth == 0 {
		return launch.UnixPlatform.CurrentDir(), nil
	}

	parents := make([]string, depth)
	for i := range parents {
		parents[i] = launch.UnixPlatform.ParentDir()
	}
	return strings.Join(parents, "/"), nil
}

// checkRelative rejects paths whose segment count would not be the directory
// depth of the script.
func checkRelative(p string) error {
	invalid := func(reason string) error {
		return &launch.InvalidPathError{Path: p, Reason: reason}
	}

	switch {
	case p == "":
		return invalid("empty path")
	case strings.HasPrefix(p, "/"):
		return invalid("path must be relative")
	case hasDriveLetter(p):
		return invalid("path must be relative, found drive letter")
	case strings.Contains(p, `\`):
		return invalid(`use "/" as separator`)
	}

	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case "":
			return invalid("empty path segment")
		case ".", "..":
			return invalid("path must not contain . or .. segments")
		}
	}
	return nil
}

func hasDriveLetter(p string) bool {
	if len(p) < 2 || p[1] != ':' {
		return false
	}
	c := p[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// ToNative converts forward slashes to the platform's separator.
func ToNative(p string, platform launch.Platform) string {
	sep := platform.PathSeparator()
	if sep == "/" {
		return p
	}
	return strings.ReplaceAll(p, "/", sep)
}
