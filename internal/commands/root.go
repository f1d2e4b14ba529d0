package commands

import (
	"github.com/spf13/cobra"

	"github.com/insightdelivered/bank-statement-tool/internal/config"
	"github.com/insightdelivered/bank-statement-tool/internal/logger"
)

// Version is reported by --version and the health endpoint.
var Version = "1.0.0"

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var (
		logLevel  string
		logFormat string
	)

	rootCmd := &cobra.Command{
		Use:   "bankstatement",
		Short: "Extract transactions from bank statement PDFs",
		Long: `Reconstructs the transaction table (date, particulars, deposit, withdrawal,
closing balance) from the text of a bank statement PDF and exports it as a
spreadsheet or CSV. Deposits and withdrawals are inferred from the running
balance.`,
		Version: Version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level = logLevel
			}
			if cmd.Flags().Changed("log-format") {
				cfg.Log.Format = logFormat
			}

			log := logger.New(cfg.Log.Level, cfg.Log.Format)
			ctx := logger.WithContext(cmd.Context(), log)
			cmd.SetContext(withConfig(ctx, cfg))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console, json)")

	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newServeCommand())

	return rootCmd
}
