package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"audiocat/internal/config"
	"audiocat/internal/deps"
	"audiocat/internal/logging"
	"audiocat/internal/scan"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "scan <root>",
		Short: "Scan an archive and write one JSON record per audio file",
		Long: "Scan walks <root>, extracts metadata for every audio file, and writes\n" +
			"JSON Lines to --output (the configured output by default, \"-\" for stdout).",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}

			root, err := scan.ResolveRoot(args[0])
			if err != nil {
				return err
			}
			warnMissingDependencies(logger, cfg)

			target := strings.TrimSpace(outputPath)
			if target == "" {
				target = cfg.Paths.Output
			}

			var writer *scan.Writer
			var skip []string
			if target == "-" {
				writer = scan.NewWriter(cmd.OutOrStdout())
			} else {
				if abs, err := filepath.Abs(target); err == nil {
					target = abs
				}
				writer, err = scan.OpenOutput(target)
				if err != nil {
					return err
				}
				skip = append(skip, target)
			}

			scanner := scan.New(scan.Options{
				Extensions:  cfg.Scan.Extensions,
				ExcludeDirs: cfg.Scan.ExcludeDirs,
				SkipPaths:   skip,
			}, scan.DefaultExtractors(cfg),
				scan.WithLogger(logger),
				scan.WithObserver(newProgressObserver(cmd.ErrOrStderr(), logger)),
			)

			summary, runErr := scanner.Run(cmd.Context(), root, writer)
			closeErr := writer.Close()
			if runErr != nil {
				return runErr
			}
			if closeErr != nil {
				return closeErr
			}
			if target == "-" {
				// stdout carries the records; keep the summary off it.
				fmt.Fprintln(cmd.ErrOrStderr(), renderSummary(summary))
				return nil
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderSummary(summary))
			fmt.Fprintf(out, "Wrote %d records to %s\n", writer.Written(), target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "JSON Lines output path (\"-\" for stdout)")
	return cmd
}

func renderSummary(summary scan.Summary) string {
	rows := [][]string{
		{"Discovered", strconv.Itoa(summary.Discovered)},
		{"Processed", strconv.Itoa(summary.Processed)},
		{"Skipped (unreadable)", strconv.Itoa(summary.Skipped)},
		{"Malformed sources", strconv.Itoa(summary.Malformed)},
		{"Duration", summary.Duration.Round(time.Millisecond).String()},
	}
	types := make([]string, 0, len(summary.ContentTypes))
	for ct := range summary.ContentTypes {
		types = append(types, ct)
	}
	sort.Strings(types)
	for _, ct := range types {
		rows = append(rows, []string{"Type: " + ct, strconv.Itoa(summary.ContentTypes[ct])})
	}
	return renderTable([]string{"Metric", "Value"}, rows, 1)
}

func warnMissingDependencies(logger *slog.Logger, cfg *config.Config) {
	for _, st := range deps.Missing(deps.Check(deps.Requirements(cfg))) {
		logging.WarnWithContext(logger, "dependency unavailable", "dependency_missing",
			logging.String("dependency", st.Name),
			logging.String("detail", st.Detail),
			logging.Hint("install "+st.Name+" or set probe.enabled = false"),
			logging.Impact("technical properties limited to MP3 files"),
		)
	}
}
