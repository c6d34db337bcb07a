package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/sibikrish3000/startscript/pkg/launch"
)

const defaultDescriptorFile = "launch.toml"

func newInitCmd(a *app) *cobra.Command {
	var (
		name      string
		mainClass string
		force     bool
	)

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Create a starter launch descriptor",
		Long: `Write a launch descriptor with every field filled in, ready to edit.
Environment variable names and the script path are derived from the name.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := defaultDescriptorFile
			if len(args) > 0 {
				filename = args[0]
			}

			exists, err := afero.Exists(a.fs, filename)
			if err != nil {
				return fmt.Errorf("failed to check %q: %w", filename, err)
			}
			if exists && !force {
				return fmt.Errorf("file %q already exists. Use --force to overwrite", filename)
			}

			d := sampleDescriptor(name, mainClass).WithDefaults()
			if err := d.Validate(); err != nil {
				return err
			}
			data, err := launch.Encode(d)
			if err != nil {
				return err
			}

			if dir := filepath.Dir(filename); dir != "." {
				if err := a.fs.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("failed to create directory %q: %w", dir, err)
				}
			}
			if err := afero.WriteFile(a.fs, filename, data, 0o644); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			a.logger.Info("created descriptor", "file", filename, "application", d.ApplicationName)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "app", "application name")
	cmd.Flags().StringVarP(&mainClass, "main-class", "m", "com.example.Main", "main class")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

func sampleDescriptor(name, mainClass string) launch.Descriptor {
	return launch.Descriptor{
		ApplicationName:       name,
		MainClassName:         mainClass,
		DefaultJvmOpts:        []string{"-Xmx512m"},
		AppNameSystemProperty: name + ".appname",
		Classpath:             []string{"lib/" + name + ".jar"},
	}
}
