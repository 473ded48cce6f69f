package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"strhash"
)

var hashCmd = &cobra.Command{
	Use:   "hash [flags] <string>...",
	Short: "Hash strings from the command line",
	Long: `Hash prints the hash of each argument, one per line. Useful for
cross-checking values the preprocessor baked into a build.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runHash,
}

func init() {
	hashCmd.Flags().String("algo", "default", "hash algorithm (default|fnv1a)")
	hashCmd.Flags().Bool("hex", false, "print values in hexadecimal")
}

func runHash(cmd *cobra.Command, args []string) error {
	algo, err := cmd.Flags().GetString("algo")
	if err != nil {
		return err
	}
	hex, err := cmd.Flags().GetBool("hex")
	if err != nil {
		return err
	}

	for _, s := range args {
		var line string
		switch algo {
		case "default":
			v := strhash.Default64(s)
			if hex {
				line = fmt.Sprintf("%#016x", v)
			} else {
				line = fmt.Sprintf("%d", v)
			}
		case "fnv1a":
			v := strhash.FNV1a32(s)
			if hex {
				line = fmt.Sprintf("%#08x", v)
			} else {
				line = fmt.Sprintf("%d", v)
			}
		default:
			return fmt.Errorf("unknown algorithm: %s", algo)
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}
