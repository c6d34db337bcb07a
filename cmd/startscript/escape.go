package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sibikrish3000/startscript/pkg/escape"
)

func newEscapeCmd(a *app) *cobra.Command {
	var platform string

	cmd := &cobra.Command{
		Use:   "escape -- <arg>...",
		Short: "Quote arguments the way default JVM options are quoted",
		Long: `Print each argument encoded and quoted for the platform's interpreter, as it
would appear in a generated script's default options.

On a terminal each token is printed on its own line. Otherwise the tokens are
joined by spaces on one line, ready to paste into a script.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.platform(platform)
			if err != nil {
				return err
			}
			enc := escape.For(p.OS)

			tokens := make([]string, 0, len(args))
			for i, arg := range args {
				if err := escape.CheckRepresentable(fmt.Sprintf("argument %d", i+1), arg, p); err != nil {
					return err
				}
				tokens = append(tokens, enc.Quote(arg))
			}

			sep := " "
			if a.isTerminal(cmd.OutOrStdout()) {
				sep = "\n"
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(tokens, sep))
			return err
		},
	}

	cmd.Flags().StringVarP(&platform, "platform", "p", "unix", "target platform: unix or windows")
	return cmd
}
