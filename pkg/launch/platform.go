package launch

import (
	"fmt"
	"io/fs"
	"strings"
)

// OS identifies the command interpreter family a script is generated for.
type OS int

const (
	// Unix targets POSIX shells (sh, bash, dash, ...).
	Unix OS = iota
	// Windows targets the Windows command interpreter (cmd.exe batch files).
	Windows
)

// String returns the lowercase name used on the command line and in config.
func (o OS) String() string {
	switch o {
	case Unix:
		return "unix"
	case Windows:
		return "windows"
	default:
		return fmt.Sprintf("OS(%d)", int(o))
	}
}

// ParseOS maps a user-facing name to an OS.
func ParseOS(name string) (OS, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "unix", "posix", "linux", "darwin", "sh":
		return Unix, nil
	case "windows", "win", "bat", "cmd":
		return Windows, nil
	default:
		return 0, fmt.Errorf("unsupported platform: %q (supported: unix, windows)", name)
	}
}

// Supported charset names. cp850 and cp437 are the usual OEM code pages of
// cmd.exe consoles; cp1252 is the ANSI code page of western Windows installs.
const (
	CharsetUTF8   = "utf8"
	CharsetCP1252 = "cp1252"
	CharsetCP850  = "cp850"
	CharsetCP437  = "cp437"
	CharsetLatin1 = "latin1"
)

// Platform is a script generation target: an interpreter family plus the
// charset the rendered script is written in.
type Platform struct {
	OS OS

	// Charset is one of the Charset* names. Empty means UTF-8.
	Charset string
}

// Predefined platforms writing UTF-8.
var (
	UnixPlatform    = Platform{OS: Unix, Charset: CharsetUTF8}
	WindowsPlatform = Platform{OS: Windows, Charset: CharsetUTF8}
)

func (p Platform) String() string {
	if p.Charset == "" || p.Charset == CharsetUTF8 {
		return p.OS.String()
	}
	return p.OS.String() + "/" + p.Charset
}

// PathSeparator is the native directory separator.
func (p Platform) PathSeparator() string {
	if p.OS == Windows {
		return `\`
	}
	return "/"
}

// ClasspathSeparator separates classpath entries.
func (p Platform) ClasspathSeparator() string {
	if p.OS == Windows {
		return ";"
	}
	return ":"
}

// HomeReference is the script-side expression for the installation root,
// including the trailing separator.
func (p Platform) HomeReference() string {
	if p.OS == Windows {
		return `%APP_HOME%\`
	}
	return "$APP_HOME/"
}

// CurrentDir is the token used when the script sits in the installation root.
func (p Platform) CurrentDir() string {
	return "."
}

// ParentDir is the token for one directory up.
func (p Platform) ParentDir() string {
	return ".."
}

// LineSeparator is the line ending of rendered scripts.
func (p Platform) LineSeparator() string {
	if p.OS == Windows {
		return "\r\n"
	}
	return "\n"
}

// ScriptSuffix is appended to the script name when it is written.
func (p Platform) ScriptSuffix() string {
	if p.OS == Windows {
		return ".bat"
	}
	return ""
}

// FileMode is the permission set for written scripts.
func (p Platform) FileMode() fs.FileMode {
	if p.OS == Windows {
		return 0o644
	}
	return 0o755
}
