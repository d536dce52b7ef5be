package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.com/haugli/kontobean/pkg/extract"
)

// inspectCmd runs a file through format detection and extraction only and
// dumps the raw transactions, for debugging adapters against a new export.
var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Parse a bank export and dump its raw transactions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		format, ok := extract.DetectFormat(filepath.Base(path), data)
		if !ok {
			return fmt.Errorf("unrecognized file type: %s", path)
		}

		skipBalanceForward, _ := cmd.Flags().GetBool("skip-balance-forward")
		extractor, err := extract.New(format, extract.Options{
			SkipBalanceForward: skipBalanceForward,
		})
		if err != nil {
			return err
		}

		transactions, rowErrs, err := extractor.Extract(data)
		if err != nil {
			return err
		}

		fmt.Printf("%s: %s, %d transactions\n", path, format, len(transactions))
		pp.Println(transactions)
		for _, re := range rowErrs {
			fmt.Fprintf(os.Stderr, "  %v\n", re)
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().Bool("skip-balance-forward", false, "Drop carried-balance rows on card statements")
}
