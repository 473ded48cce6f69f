package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"strhash/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

var versionFormat string

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show strhash build fingerprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := versionPayload{
			Tool:      "strhash",
			Version:   version.Version,
			GitCommit: version.GitCommit,
			BuildDate: version.BuildDate,
		}

		switch strings.ToLower(versionFormat) {
		case "pretty":
			fmt.Fprintf(cmd.OutOrStdout(), "strhash %s\n", payload.Version)
			if payload.GitCommit != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", payload.GitCommit)
			}
			if payload.BuildDate != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", payload.BuildDate)
			}
			return nil
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(payload)
		default:
			return fmt.Errorf("unknown format: %s", versionFormat)
		}
	},
}
