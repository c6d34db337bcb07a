package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/sibikrish3000/startscript/internal/config"
)

// ExitError carries a process exit code out of a RunE handler.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// app is the state shared by every command of one invocation.
type app struct {
	// fs holds descriptor files.
	fs afero.Fs
	// scriptFs receives generated scripts; nil writes atomically to disk.
	scriptFs afero.Fs

	v      *viper.Viper
	cfg    config.Config
	logger *log.Logger

	cfgFile string
	verbose bool

	// isTerminal reports whether w is an interactive terminal.
	isTerminal func(w io.Writer) bool
}

func newApp(fs, scriptFs afero.Fs, logOut io.Writer) *app {
	return &app{
		fs:       fs,
		scriptFs: scriptFs,
		v:        config.New(fs),
		logger: log.NewWithOptions(logOut, log.Options{
			Prefix:          "startscript",
			ReportTimestamp: false,
		}),
		isTerminal: writerIsTerminal,
	}
}

func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// setup loads configuration once flags are parsed.
func (a *app) setup(*cobra.Command, []string) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.logger.SetLevel(cfg.Level())
	if a.verbose {
		a.logger.SetLevel(log.DebugLevel)
	}
	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug("loaded config", "file", used)
	}
	return nil
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "startscript",
		Short: "Generate launcher scripts for packaged applications",
		Long: `startscript renders the start scripts shipped in an application's
distribution: a POSIX shell script and a Windows batch file that locate the
installation directory, build the classpath and launch the runtime with the
configured options.

Settings come from flags, STARTSCRIPT_* environment variables and an optional
startscript.toml in the working directory (or --config).`,
		Example: `  startscript init --name my-app --main-class com.example.Main
  startscript generate --out build/install/my-app launch.toml
  startscript binding --platform windows launch.toml
  startscript escape --platform windows -- -Dmsg="100% done"`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default ./startscript.toml)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	_ = a.v.BindPFlag(config.KeyLogLevel, pf.Lookup("log-level"))

	root.AddCommand(newGenerateCmd(a))
	root.AddCommand(newBindingCmd(a))
	root.AddCommand(newEscapeCmd(a))
	root.AddCommand(newInitCmd(a))
	return root
}
