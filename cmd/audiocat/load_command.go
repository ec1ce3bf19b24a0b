package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"audiocat/internal/archivedb"
	"audiocat/internal/config"
)

func newLoadCommand(ctx *commandContext) *cobra.Command {
	var dbPath string
	var clear bool

	cmd := &cobra.Command{
		Use:   "load <records.jsonl>",
		Short: "Import scan output into the SQLite catalogue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			db, err := openCatalogue(cmd, cfg, dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			stats, err := db.ImportFile(cmd.Context(), args[0], archivedb.ImportOptions{Clear: clear})
			if err != nil {
				return err
			}
			total, err := db.Count(cmd.Context())
			if err != nil {
				return err
			}
			groups, err := db.CountBy(cmd.Context(), "content_type")
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Import", "Count"}, [][]string{
				{"Lines read", strconv.Itoa(stats.Lines)},
				{"Imported", strconv.Itoa(stats.Imported)},
				{"Rejected", strconv.Itoa(stats.Rejected)},
				{"Invalid dates nulled", strconv.Itoa(stats.InvalidDates)},
			}, 1))
			rows := make([][]string, 0, len(groups))
			for _, g := range groups {
				rows = append(rows, []string{displayGroup(g.Value), strconv.Itoa(g.Count)})
			}
			fmt.Fprintln(out, renderTable([]string{"Content type", "Files"}, rows, 1))
			fmt.Fprintf(out, "Database ready: %s (%d files indexed)\n", db.Path(), total)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Catalogue database path (defaults to paths.database)")
	cmd.Flags().BoolVar(&clear, "clear", false, "Remove existing rows before importing")
	return cmd
}

func newQueryCommand(ctx *commandContext) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "query <sql>",
		Short: "Run a SQL statement against the catalogue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			db, err := openCatalogue(cmd, cfg, dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			rows, err := db.Query(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(rows.Values) == 0 {
				fmt.Fprintln(out, "No results found")
				return nil
			}
			fmt.Fprintln(out, renderTable(rows.Columns, rows.Values))
			fmt.Fprintf(out, "%d rows returned\n", len(rows.Values))
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Catalogue database path (defaults to paths.database)")
	return cmd
}

func openCatalogue(cmd *cobra.Command, cfg *config.Config, override string) (*archivedb.DB, error) {
	path := cfg.Paths.Database
	if override = strings.TrimSpace(override); override != "" {
		expanded, err := config.ExpandPath(override)
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
		path = expanded
	}
	return archivedb.Open(cmd.Context(), path)
}

func displayGroup(value string) string {
	if value == "" {
		return "(none)"
	}
	return value
}
