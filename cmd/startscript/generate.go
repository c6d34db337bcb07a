package main

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/sibikrish3000/startscript/internal/config"
	"github.com/sibikrish3000/startscript/pkg/launch"
	"github.com/sibikrish3000/startscript/pkg/render"
	"github.com/sibikrish3000/startscript/pkg/workerpool"
)

func newGenerateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <descriptor.toml>...",
		Short: "Render and write start scripts",
		Long: `Render the start scripts described by each descriptor file and write them
under the output directory at the descriptor's script_relative_path.

Unix scripts are written with mode 0755; Windows scripts get a .bat suffix.
The default platform "auto" generates what the current host can run: both
variants inside WSL, the batch file on Windows, the shell script elsewhere.`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.runGenerate,
	}

	f := cmd.Flags()
	f.StringP("out", "o", "", "distribution root to write scripts under")
	f.StringSliceP("platform", "p", nil, "target platforms: unix, windows, auto, all")
	f.String("windows-charset", "", "charset of batch files: utf8, cp1252, cp850, cp437, latin1")
	f.IntP("concurrency", "j", 0, "max scripts generated in parallel (default: number of CPUs)")

	_ = a.v.BindPFlag(config.KeyOutputDir, f.Lookup("out"))
	_ = a.v.BindPFlag(config.KeyPlatforms, f.Lookup("platform"))
	_ = a.v.BindPFlag(config.KeyWindowsCharset, f.Lookup("windows-charset"))
	_ = a.v.BindPFlag(config.KeyConcurrency, f.Lookup("concurrency"))
	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, args []string) error {
	targets, err := a.cfg.Targets()
	if err != nil {
		return err
	}

	unloaded := 0
	var jobs []workerpool.Job
	for _, path := range args {
		d, err := launch.LoadFile(a.fs, path)
		if err != nil {
			a.logger.Error("skipping descriptor", "err", err)
			unloaded++
			continue
		}
		for _, p := range targets {
			jobs = append(jobs, workerpool.Job{Source: path, Descriptor: d, Platform: p})
		}
	}

	renderer := render.New()
	writer := render.Writer{Fs: a.scriptFs}
	outDir := a.cfg.OutputDir

	executor := func(ctx context.Context, job workerpool.Job) (workerpool.Output, error) {
		if err := ctx.Err(); err != nil {
			return workerpool.Output{}, err
		}
		start := time.Now()
		script, err := renderer.Generate(job.Descriptor, job.Platform)
		if err != nil {
			return workerpool.Output{}, err
		}
		path, err := writer.Write(outDir, job.Descriptor.ScriptRelativePath, job.Platform, script)
		if err != nil {
			return workerpool.Output{}, err
		}
		return workerpool.Output{Path: path, Script: script, Duration: time.Since(start)}, nil
	}

	a.logger.Debug("generating", "scripts", len(jobs), "out", outDir, "concurrency", a.cfg.Concurrency)
	pool := workerpool.NewPool(cmd.Context(), a.cfg.Concurrency, executor, workerpool.WithLogger(a.logger))
	results := pool.Run(jobs)

	sort.Slice(results, func(i, j int) bool {
		if results[i].Job.Source != results[j].Job.Source {
			return results[i].Job.Source < results[j].Job.Source
		}
		return results[i].Job.Platform.OS < results[j].Job.Platform.OS
	})

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			a.logger.Error("generation failed", "descriptor", r.Job.Source, "platform", r.Job.Platform, "err", r.Err)
			failed++
			continue
		}
		a.logger.Info("wrote script", "script", r.Job.Descriptor.ScriptName()+r.Job.Platform.ScriptSuffix(),
			"path", r.Output.Path, "platform", r.Job.Platform,
			"duration", r.Output.Duration.Round(time.Microsecond))
	}

	switch {
	case unloaded > 0:
		return &ExitError{Code: 1, Err: fmt.Errorf("%d of %d descriptors could not be loaded, %d of %d scripts failed", unloaded, len(args), failed, len(jobs))}
	case failed > 0:
		return &ExitError{Code: 1, Err: fmt.Errorf("%d of %d scripts failed", failed, len(jobs))}
	}
	return nil
}
