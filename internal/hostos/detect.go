// Package hostos decides which interpreter families to generate scripts for
// when the caller does not name any, based on the machine running the tool.
package hostos

import (
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/sibikrish3000/startscript/pkg/launch"
)

var (
	wslDetectOnce sync.Once
	wslDetected   bool
)

// goos is the operating system the tool runs on; tests override it.
var goos = runtime.GOOS

// procVersionReader is the function used to read /proc/version content.
// It can be overridden in tests for injection.
var procVersionReader = defaultProcVersionReader

func defaultProcVersionReader() (string, error) {
	data, err := os.ReadFile("/proc/version")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func detectWSL() {
	content, err := procVersionReader()
	if err != nil {
		wslDetected = false
		return
	}
	wslDetected = strings.Contains(strings.ToLower(content), "microsoft")
}

// IsWSL reports whether the tool runs inside Windows Subsystem for Linux.
// The result is cached after the first call.
func IsWSL() bool {
	if goos != "linux" {
		return false
	}
	wslDetectOnce.Do(detectWSL)
	return wslDetected
}

// DefaultOSes returns the interpreter families whose scripts can run on this
// host: Windows only on Windows, both inside WSL, Unix elsewhere.
func DefaultOSes() []launch.OS {
	switch {
	case goos == "windows":
		return []launch.OS{launch.Windows}
	case IsWSL():
		return []launch.OS{launch.Unix, launch.Windows}
	default:
		return []launch.OS{launch.Unix}
	}
}

// ResolveOSes parses platform names. "auto" (or no names) expands to
// DefaultOSes and "all" to every family. Duplicates are dropped, order is kept.
func ResolveOSes(names []string) ([]launch.OS, error) {
	if len(names) == 0 {
		return DefaultOSes(), nil
	}

	var out []launch.OS
	seen := make(map[launch.OS]bool)
	add := func(oses ...launch.OS) {
		for _, o := range oses {
			if !seen[o] {
				seen[o] = true
				out = append(out, o)
			}
		}
	}

	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "auto":
			add(DefaultOSes()...)
		case "all":
			add(launch.Unix, launch.Windows)
		default:
			o, err := launch.ParseOS(name)
			if err != nil {
				return nil, err
			}
			add(o)
		}
	}
	return out, nil
}

// resetDetection resets the detection state for testing purposes.
func resetDetection() {
	wslDetectOnce = sync.Once{}
	wslDetected = false
}
