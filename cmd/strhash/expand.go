package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"strhash/internal/diagfmt"
	"strhash/internal/driver"
	"strhash/internal/expand"
	"strhash/internal/observ"
	"strhash/internal/project"
)

var expandCmd = &cobra.Command{
	Use:   "expand [flags] [file|directory]",
	Short: "Expand hash-macro invocations in place",
	Long: `Expand rewrites every str_hash_default / str_hash_fnv1a invocation
into its precomputed hash constant. Without an argument the target is
resolved through strhash.toml (searched upward from the current
directory).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExpand,
}

func init() {
	expandCmd.Flags().Bool("check", false, "report what would change without writing")
	expandCmd.Flags().Bool("backup", false, "write .bak files next to rewritten files")
	expandCmd.Flags().Int("jobs", 0, "parallel workers (0 = number of CPUs)")
	expandCmd.Flags().Bool("no-cache", false, "disable the clean-file disk cache")
	expandCmd.Flags().Bool("timings", false, "print per-phase timings to stderr")
}

func runExpand(cmd *cobra.Command, args []string) error {
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	backup, err := cmd.Flags().GetBool("backup")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	timings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	manifest, err := resolveManifest(args)
	if err != nil {
		return err
	}

	opts := driver.Options{
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
		Check:          check,
		Backup:         backup || manifest.Expand.Backup,
		Registry:       registryFrom(manifest),
	}
	if !noCache && !check {
		if cache, err := driver.OpenDiskCache("strhash"); err == nil {
			opts.Cache = cache
		}
	}
	if timings {
		opts.Timer = observ.NewTimer()
	}

	results, err := driver.ExpandAll(context.Background(), manifest, opts)
	if err != nil {
		return fmt.Errorf("expand failed: %w", err)
	}
	if opts.Timer != nil {
		fmt.Fprint(cmd.ErrOrStderr(), opts.Timer.Summary())
	}

	pretty := diagfmt.PrettyOpts{Color: useColor(cmd, os.Stderr), Context: 2}
	hadErrors := false
	expanded := 0
	for _, res := range results {
		if res.Bag.HasWarnings() || res.Bag.HasErrors() {
			res.Bag.Sort()
			diagfmt.Pretty(os.Stderr, res.Bag, res.FileSet, pretty)
		}
		if res.Bag.HasErrors() {
			hadErrors = true
		}
		if res.Rewritten {
			expanded += len(res.Edits)
			if !quiet {
				verb := "expanded"
				if check {
					verb = "would expand"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s %d invocation(s)\n", res.Path, verb, len(res.Edits))
			}
		}
	}

	if hadErrors {
		return errors.New("expansion finished with errors")
	}
	if !quiet && expanded == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "nothing to expand")
	}
	return nil
}

// resolveManifest maps the optional CLI argument onto a manifest: explicit
// file, explicit directory, or the nearest strhash.toml.
func resolveManifest(args []string) (*project.Manifest, error) {
	if len(args) == 1 {
		info, err := os.Stat(args[0])
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			m := project.Default(".")
			m.Expand.Include = []string{args[0]}
			return m, nil
		}
		if path, err := project.Find(args[0]); err == nil {
			return project.Load(path)
		}
		return project.Default(args[0]), nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	path, err := project.Find(wd)
	if errors.Is(err, project.ErrNotFound) {
		return nil, fmt.Errorf("%w\nrun `strhash init` or pass a file or directory explicitly", err)
	}
	if err != nil {
		return nil, err
	}
	return project.Load(path)
}

// registryFrom filters the built-in macros through the manifest.
func registryFrom(m *project.Manifest) *expand.Registry {
	var enabled []expand.Macro
	for _, macro := range expand.DefaultMacros() {
		if m.MacroEnabled(macro.Name) {
			enabled = append(enabled, macro)
		}
	}
	return expand.NewRegistry(enabled...)
}
