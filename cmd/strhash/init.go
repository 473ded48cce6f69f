package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"strhash/internal/project"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create a strhash.toml manifest",
	Long: `Init writes a starter strhash.toml into the target directory (the
current directory when omitted). It refuses to overwrite an existing
manifest.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

const manifestTemplate = `[package]
name = %q

[expand]
# Files or directories to scan, relative to this manifest.
include = ["."]
# Restrict directory walks to these extensions; empty means all files.
extensions = []
# Enabled macros; empty means all built-ins.
macros = []
# Keep .bak copies of rewritten files.
backup = false
`

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return err
	}

	path := filepath.Join(abs, project.ManifestName)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	content := fmt.Sprintf(manifestTemplate, filepath.Base(abs))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
	return nil
}
