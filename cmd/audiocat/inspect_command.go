package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"audiocat/internal/metadata"
	"audiocat/internal/scan"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var rootDir string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show what every source extracts for one audio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}
			scanner := scan.NewFromConfig(cfg, scan.WithLogger(logger))
			inspection, err := scanner.InspectPath(cmd.Context(), strings.TrimSpace(rootDir), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetEscapeHTML(false)
				enc.SetIndent("", "  ")
				return enc.Encode(inspection.Record)
			}
			fmt.Fprintf(out, "File: %s\n", inspection.File.Path)
			fmt.Fprintf(out, "Root: %s\n\n", inspection.File.Root)
			fmt.Fprintln(out, renderCandidates(inspection))
			fmt.Fprintln(out)
			fmt.Fprintln(out, renderRecord(inspection))
			return nil
		},
	}

	cmd.Flags().StringVar(&rootDir, "root", "", "Archive root used for folder metadata (defaults to the file's directory)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print only the merged record as JSON")
	return cmd
}

func renderCandidates(inspection scan.Inspection) string {
	var rows [][]string
	for _, res := range inspection.Results {
		for _, field := range res.Result.Fields.Fields() {
			value, _ := res.Result.Fields.Get(field)
			rows = append(rows, []string{res.Source.String(), string(field), value})
		}
		for _, event := range res.Result.Events {
			rows = append(rows, []string{res.Source.String(), "(" + string(event.Kind) + ")", event.Reason()})
		}
	}
	for _, event := range inspection.Events {
		if event.Source == "scan" {
			rows = append(rows, []string{event.Source, "(" + string(event.Kind) + ")", event.Reason()})
		}
	}
	if len(rows) == 0 {
		return "No candidates found"
	}
	return renderTable([]string{"Source", "Field", "Value"}, rows)
}

func renderRecord(inspection scan.Inspection) string {
	data, err := json.Marshal(inspection.Record)
	if err != nil {
		return fmt.Sprintf("encode record: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Sprintf("decode record: %v", err)
	}
	var rows [][]string
	for _, key := range metadata.RecordColumns {
		value := fields[key]
		if value == nil {
			continue
		}
		rows = append(rows, []string{key, fmt.Sprint(value)})
	}
	return renderTable([]string{"Field", "Merged value"}, rows)
}
