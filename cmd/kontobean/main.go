package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/subosito/gotenv"

	"github.com/haugli/kontobean/pkg/config"
	"github.com/haugli/kontobean/pkg/importer"
	"github.com/haugli/kontobean/pkg/service"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "kontobean",
	Short: "Import Norwegian bank exports into a beancount ledger",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var importCmd = &cobra.Command{
	Use:   "import [flags] <path or glob>",
	Short: "Categorize bank export files and write beancount entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		importers, err := importer.FromConfig(cfg, logger)
		if err != nil {
			return err
		}

		processor := service.New(importers, cfg.Output, logger)
		summary, err := processor.ProcessPath(args[0])
		if err != nil {
			return err
		}

		fmt.Fprint(os.Stderr, summary.Render())
		if summary.Failed() {
			return fmt.Errorf("one or more files failed to import")
		}
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the importer configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger := newLogger()

		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		importers, err := importer.FromConfig(cfg, logger)
		if err != nil {
			return err
		}

		for _, imp := range importers {
			line := fmt.Sprintf("%s: %s, %d rules, format %s",
				imp.Name(), imp.Account(), imp.RuleCount(), imp.Format())
			if number := imp.AccountNumber(); number != "" {
				line += fmt.Sprintf(", account number %s", number)
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is kontobean.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	importCmd.Flags().StringP("output", "o", "", "Output directory (default: stdout)")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(inspectCmd)
}

func newLogger() *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "kontobean",
		Level:           level,
	})
}

func main() {
	_ = gotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
