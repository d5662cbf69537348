package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-parser/internal/api"
	"github.com/insightdelivered/statement-parser/internal/config"
	"github.com/insightdelivered/statement-parser/internal/logger"
)

const version = "1.0.0"

type rootOptions struct {
	envFile string
	debug   bool
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "statement-parser",
		Short: "Extract account details and totals from OCR'd bank statements",
		Long: `statement-parser reads the text of a scanned bank statement (OCR output
saved as .txt, or a PDF with a text layer) and extracts:

  - the customer name and address
  - total deposits
  - total ATM withdrawals
  - purchases from the configured merchant (WAL-MART by default)

Example:
  statement-parser parse statement.txt
  statement-parser parse --format csv --output purchases.csv statement.txt
  statement-parser serve`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.envFile)
			if err != nil {
				return err
			}
			if opts.debug {
				cfg.LogLevel = "debug"
			}
			opts.cfg = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.envFile, "config", "", "env file to load (default is .env if present)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(newParseCmd(opts))
	cmd.AddCommand(newServeCmd(opts))
	return cmd
}

func init() {
	api.Version = version
}

// cliLogger logs as text on stderr so stdout stays clean for output.
func (o *rootOptions) cliLogger() {
	logger.Init(os.Stderr, logger.FormatText, o.cfg.LogLevel)
}
