package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/sibikrish3000/startscript/pkg/launch"
	"github.com/sibikrish3000/startscript/pkg/startscript"
)

func newBindingCmd(a *app) *cobra.Command {
	var platform, format string

	cmd := &cobra.Command{
		Use:   "binding <descriptor.toml>",
		Short: "Print the placeholder values a template receives",
		Long: `Assemble the binding for a descriptor and print it. Values are exactly what
gets substituted into the template, already escaped for the platform.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.platform(platform)
			if err != nil {
				return err
			}
			d, err := launch.LoadFile(a.fs, args[0])
			if err != nil {
				return err
			}
			b, err := startscript.Assemble(d, p)
			if err != nil {
				return err
			}

			var out []byte
			switch format {
			case "text":
				var sb strings.Builder
				for _, k := range b.Keys() {
					fmt.Fprintf(&sb, "%s=%s\n", k, b[k])
				}
				out = []byte(sb.String())
			case "toml":
				out, err = toml.Marshal(map[string]string(b))
			case "json":
				out, err = json.MarshalIndent(b, "", "  ")
				out = append(out, '\n')
			default:
				return fmt.Errorf("unsupported format: %q (supported: toml, json, text)", format)
			}
			if err != nil {
				return fmt.Errorf("failed to encode binding: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&platform, "platform", "p", "unix", "target platform: unix or windows")
	cmd.Flags().StringVarP(&format, "format", "f", "toml", "output format: toml, json or text (key=value lines)")
	return cmd
}

// platform resolves a single platform name, giving Windows the configured
// batch charset.
func (a *app) platform(name string) (launch.Platform, error) {
	o, err := launch.ParseOS(name)
	if err != nil {
		return launch.Platform{}, err
	}
	p := launch.Platform{OS: o, Charset: launch.CharsetUTF8}
	if o == launch.Windows {
		p.Charset = a.cfg.WindowsCharset
	}
	return p, nil
}
