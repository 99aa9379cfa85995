package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lumen/internal/driver"
	"lumen/internal/project"
)

var (
	lowerJobs  int
	lowerCache bool
	lowerUI    bool
	lowerOut   string
)

func init() {
	lowerCmd.Flags().IntVar(&lowerJobs, "jobs", 0, "max parallel unit workers (0 = NumCPU)")
	lowerCmd.Flags().BoolVar(&lowerCache, "cache", false, "reuse cached results for unchanged units")
	lowerCmd.Flags().BoolVar(&lowerUI, "ui", false, "render interactive progress")
	lowerCmd.Flags().StringVarP(&lowerOut, "out", "o", "", "write lowered output to a file instead of stdout")
}

var lowerCmd = &cobra.Command{
	Use:   "lower <unit-file-or-dir>",
	Short: "Lower unit declarations to output units",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := args[0]
		quiet, _ := cmd.Flags().GetBool("quiet")

		manifest, err := project.Find(dirOf(target))
		if err != nil {
			return err
		}

		opts := &driver.Options{
			Jobs:     lowerJobs,
			Manifest: manifest,
		}
		if lowerCache {
			cache, err := driver.OpenDiskCache("lumen")
			if err != nil {
				return err
			}
			opts.Cache = cache
		}

		results, err := runLower(cmd.Context(), target, opts)
		if err != nil {
			return err
		}
		return writeResults(results, quiet)
	},
}

func dirOf(target string) string {
	info, err := os.Stat(target)
	if err == nil && info.IsDir() {
		return target
	}
	slash := strings.LastIndexByte(target, os.PathSeparator)
	if slash < 0 {
		return "."
	}
	return target[:slash]
}

func runLower(ctx context.Context, target string, opts *driver.Options) ([]*driver.Result, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		res, err := driver.LowerFile(target, opts)
		if err != nil {
			return nil, err
		}
		return []*driver.Result{res}, nil
	}
	if lowerUI && isTerminal(os.Stdout) {
		return runLowerDirWithUI(ctx, target, opts)
	}
	return driver.LowerDir(ctx, target, opts)
}

func writeResults(results []*driver.Result, quiet bool) error {
	out := os.Stdout
	if lowerOut != "" {
		f, err := os.Create(lowerOut)
		if err != nil {
			return err
		}
		defer f.Close() //nolint:errcheck // flushed below
		out = f
	}

	okColor := color.New(color.FgGreen)
	cachedColor := color.New(color.FgCyan)
	for _, res := range results {
		if !quiet {
			tag := okColor.Sprint("lowered")
			if res.Cached {
				tag = cachedColor.Sprint("cached")
			}
			fmt.Fprintf(os.Stderr, "%s %s (%d funcs, %d props, %d hoisted, %d exports)\n",
				tag, res.Path, res.Stats.Funcs, res.Stats.Props, res.Stats.Hoisted, res.Stats.Exports)
		}
		if _, err := fmt.Fprint(out, res.Printed); err != nil {
			return err
		}
	}
	return nil
}
