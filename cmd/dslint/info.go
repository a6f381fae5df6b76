package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phyten/dslint/decree"
	"github.com/phyten/dslint/internal/output"
	"github.com/phyten/dslint/internal/rules"
)

type ruleRow struct {
	ID          string `json:"id"`
	Qualified   string `json:"qualified"`
	Group       string `json:"group"`
	Description string `json:"description"`
}

func newRulesCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List rule ids, qualified ids and descriptions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all := rules.All()
			rows := make([]ruleRow, 0, len(all))
			for _, r := range all {
				rows = append(rows, ruleRow{ID: r.ID, Qualified: decree.QualifiedRule(r.ID), Group: r.Group, Description: r.Description})
			}
			switch strings.ToLower(strings.TrimSpace(format)) {
			case "json":
				return writeJSONTo(a, rows)
			case "", "table":
				header := []string{"RULE", "GROUP", "DESCRIPTION"}
				body := make([][]string, 0, len(rows))
				for _, r := range rows {
					body = append(body, []string{r.Qualified, r.Group, r.Description})
				}
				return output.WritePlainTable(a.stdout, header, body, output.TableOptions{})
			default:
				return fmt.Errorf("invalid --format: %s", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "table", "output format (table|json)")
	return cmd
}

func newMetadataCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "metadata",
		Short: "Print the rule set metadata as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSONTo(a, decree.Default().Metadata())
		},
	}
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the dslint version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(a.stdout, "dslint %s (abi %s)\n", decree.Version, decree.ABIVersion)
			return err
		},
	}
}

func writeJSONTo(a *app, v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
