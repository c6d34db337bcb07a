// startscript renders launcher scripts for a packaged application from a
// TOML launch descriptor.
//
// Usage:
//
//	startscript generate [flags] <descriptor.toml>...
//	startscript binding [--platform P] [--format toml|json] <descriptor.toml>
//	startscript escape [--platform P] -- <arg>...
//	startscript init [--name NAME] [--main-class CLASS] [file]
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/afero"
)

// Build-time variables, injected via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionString() string {
	if version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (built %s, %s)", version, date, runtime.Version())
}

func main() {
	a := newApp(afero.NewOsFs(), nil, os.Stderr)
	if err := fang.Execute(
		context.Background(),
		newRootCmd(a),
		fang.WithVersion(versionString()),
		fang.WithCommit(commit),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
