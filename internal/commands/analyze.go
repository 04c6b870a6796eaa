package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fecscope/fecscope/internal/analysis"
	"github.com/fecscope/fecscope/internal/fec"
	"github.com/fecscope/fecscope/internal/model"
	"github.com/fecscope/fecscope/internal/pcg"
	"github.com/fecscope/fecscope/internal/render"
)

func newAnalyzeCommand() *cobra.Command {
	var priorPath string
	var rulesPath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze <fec-file>",
		Short: "Derive statements from a FEC export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := fec.ReadFile(args[0])
			if err != nil {
				return err
			}

			var priorEntries []model.LedgerEntry
			if priorPath != "" {
				priorEntries, err = fec.ReadFile(priorPath)
				if err != nil {
					return fmt.Errorf("prior period: %w", err)
				}
			}

			engine, err := newEngine(rulesPath)
			if err != nil {
				return err
			}
			res := engine.Run(entries, priorEntries)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}

			fmt.Fprintf(out, "%d écritures, débit %s / crédit %s\n\n",
				res.Summary.Entries,
				res.Summary.TotalDebit.StringFixed(2),
				res.Summary.TotalCredit.StringFixed(2))
			fmt.Fprintln(out, render.BalanceSheet(res.BalanceSheet))
			fmt.Fprintln(out, render.IncomeStatement(res.IncomeStatement))
			fmt.Fprintln(out, render.SIG(res.SIG))
			fmt.Fprintln(out, render.CashFlow(res.CashFlow))
			fmt.Fprintln(out, render.Cycles(res.Cycles))
			fmt.Fprintln(out, render.Materiality(res.Materiality))
			return nil
		},
	}

	cmd.Flags().StringVar(&priorPath, "prior", "", "FEC file of the prior period (enables the cash-flow statement)")
	cmd.Flags().StringVar(&rulesPath, "rules", "", "classification rule table (YAML); embedded defaults when empty")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the full result bundle as JSON")

	return cmd
}

func newEngine(rulesPath string) (*analysis.Engine, error) {
	if rulesPath == "" {
		return analysis.NewDefaultEngine()
	}
	table, err := pcg.LoadTable(rulesPath)
	if err != nil {
		return nil, err
	}
	return analysis.NewEngine(table), nil
}
