package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-parser/internal/extractor"
	"github.com/insightdelivered/statement-parser/internal/models"
	"github.com/insightdelivered/statement-parser/internal/parser"
	"github.com/insightdelivered/statement-parser/internal/writer"
)

type parseOptions struct {
	format  string
	output  string
	header  bool
	verbose bool
}

func newParseCmd(root *rootOptions) *cobra.Command {
	opts := &parseOptions{}

	cmd := &cobra.Command{
		Use:   "parse <statement> [statement ...]",
		Short: "Parse one or more statements",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root.cliLogger()
			switch opts.format {
			case "report", "csv", "json":
			default:
				return fmt.Errorf("unknown format %q: use report, csv or json", opts.format)
			}
			if opts.output != "" && len(args) > 1 {
				return fmt.Errorf("--output can only be used with a single statement")
			}

			for _, path := range args {
				if err := parseFile(cmd.OutOrStdout(), path, root, opts); err != nil {
					return fmt.Errorf("processing %s: %w", path, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "report", "output format: report, csv or json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write output to this file instead of stdout")
	cmd.Flags().BoolVar(&opts.header, "header", true, "include summary rows in CSV output")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "list lines that could not be parsed")
	return cmd
}

func parseFile(stdout io.Writer, path string, root *rootOptions, opts *parseOptions) error {
	text, err := extractor.ExtractFile(path)
	if err != nil {
		return err
	}

	log := slog.Default().With("file", filepath.Base(path))
	p := parser.New(text, parser.WithLayout(root.cfg.Layout), parser.WithLogger(log))
	summary := p.Summary()

	if !summary.Clean() {
		log.Warn("some statement lines could not be parsed", "skipped", len(summary.SkippedLines))
	}
	if summary.CustomerName == "" {
		log.Warn("statement is shorter than the expected layout; no customer name found")
	}

	if opts.output == "" {
		return render(stdout, summary, root, opts)
	}
	if opts.format == "csv" {
		return (&writer.CSVWriter{IncludeHeader: opts.header}).WriteToFile(opts.output, summary)
	}

	var buf bytes.Buffer
	if err := render(&buf, summary, root, opts); err != nil {
		return err
	}
	if err := os.WriteFile(opts.output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write output file %q: %w", opts.output, err)
	}
	return nil
}

func render(out io.Writer, s *models.StatementSummary, root *rootOptions, opts *parseOptions) error {
	switch strings.ToLower(opts.format) {
	case "csv":
		return (&writer.CSVWriter{IncludeHeader: opts.header}).Write(out, s)
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	default:
		w := &writer.ReportWriter{Currency: root.cfg.Currency, Verbose: opts.verbose}
		return w.Write(out, s)
	}
}
