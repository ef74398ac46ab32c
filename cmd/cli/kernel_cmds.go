package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/iho/glkernel/internal/domain"
	"github.com/iho/glkernel/internal/kernel"
)

// readInput decodes the JSON file at path, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string, v any) error {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode input: %w", err)
	}
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func inputFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "input", "i", "-", "JSON input file, - for stdin")
}

func deriveCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive balanced journal lines from an event amount and mapping rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			var in kernel.DerivationInput
			if err := readInput(cmd, input, &in); err != nil {
				return err
			}
			result, err := kernel.Derive(in)
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}
	inputFlag(cmd, &input)
	return cmd
}

func reclassCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "reclass",
		Short: "Build reclassification lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			var in struct {
				Entries []kernel.ReclassEntry `json:"entries"`
			}
			if err := readInput(cmd, input, &in); err != nil {
				return err
			}
			lines, err := kernel.ComputeReclassLines(in.Entries)
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]any{"lines": lines})
		},
	}
	inputFlag(cmd, &input)
	return cmd
}

func allocateCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "allocate",
		Short: "Split a source balance across weighted targets",
		RunE: func(cmd *cobra.Command, args []string) error {
			var in struct {
				SourceAccountID string                    `json:"sourceAccountId"`
				TotalMinor      int64                     `json:"totalMinor"`
				Targets         []kernel.AllocationTarget `json:"targets"`
			}
			if err := readInput(cmd, input, &in); err != nil {
				return err
			}
			lines, shares, err := kernel.AllocationLines(in.SourceAccountID, in.TotalMinor, in.Targets)
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]any{"shares": shares, "lines": lines})
		},
	}
	inputFlag(cmd, &input)
	return cmd
}

func accrueCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "accrue",
		Short: "Compute one period of a straight-line accrual",
		RunE: func(cmd *cobra.Command, args []string) error {
			var in kernel.AccrualInput
			if err := readInput(cmd, input, &in); err != nil {
				return err
			}
			result, err := kernel.ComputeAccrualLines(in)
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}
	inputFlag(cmd, &input)
	return cmd
}

func trialBalanceCmd() *cobra.Command {
	var input, asOf string
	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Aggregate posted lines into a trial balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			if asOf != "" {
				if err := domain.ValidateDate("asOf", asOf); err != nil {
					return err
				}
			}
			var lines []domain.PostedLine
			if err := readInput(cmd, input, &lines); err != nil {
				return err
			}
			rows := kernel.AggregateTrialBalance(lines, asOf)
			debit, credit, balanced := kernel.TrialBalanceTotals(rows)
			return printJSON(cmd, map[string]any{
				"asOf":             asOf,
				"rows":             rows,
				"totalDebitMinor":  debit,
				"totalCreditMinor": credit,
				"balanced":         balanced,
			})
		},
	}
	inputFlag(cmd, &input)
	cmd.Flags().StringVar(&asOf, "as-of", "", "Ignore lines posted after this YYYY-MM-DD date")
	return cmd
}

func coaCmd() *cobra.Command {
	var input string
	coa := &cobra.Command{
		Use:   "coa",
		Short: "Chart of accounts checks and navigation",
	}
	coa.PersistentFlags().StringVarP(&input, "input", "i", "-", "JSON array of accounts, - for stdin")

	load := func(cmd *cobra.Command) ([]domain.AccountNode, error) {
		var accounts []domain.AccountNode
		err := readInput(cmd, input, &accounts)
		return accounts, err
	}

	validate := &cobra.Command{
		Use:   "validate",
		Short: "Validate chart integrity",
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts, err := load(cmd)
			if err != nil {
				return err
			}
			report, err := kernel.ValidateCoaIntegrity(accounts)
			if err != nil {
				return err
			}
			return printJSON(cmd, report)
		},
	}

	ancestors := &cobra.Command{
		Use:   "ancestors ACCOUNT_ID",
		Short: "List the chain from an account up to its root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts, err := load(cmd)
			if err != nil {
				return err
			}
			chain, err := kernel.GetAncestors(args[0], accounts)
			if err != nil {
				return err
			}
			return printJSON(cmd, chain)
		},
	}

	var root string
	subtree := &cobra.Command{
		Use:   "subtree",
		Short: "List descendants of --root, or every account",
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts, err := load(cmd)
			if err != nil {
				return err
			}
			return printJSON(cmd, kernel.GetSubtree(root, accounts))
		},
	}
	subtree.Flags().StringVar(&root, "root", "", "Root account ID")

	coa.AddCommand(validate, ancestors, subtree)
	return coa
}

func periodCmd() *cobra.Command {
	period := &cobra.Command{
		Use:   "period",
		Short: "Posting period checks",
	}

	var input string
	check := &cobra.Command{
		Use:   "check",
		Short: "Check a proposed period against existing periods",
		RunE: func(cmd *cobra.Command, args []string) error {
			var in struct {
				Proposed domain.PostingPeriod   `json:"proposed"`
				Existing []domain.PostingPeriod `json:"existing"`
			}
			if err := readInput(cmd, input, &in); err != nil {
				return err
			}
			if err := kernel.ValidatePeriodOverlap(in.Proposed, in.Existing); err != nil {
				return err
			}
			return printJSON(cmd, map[string]any{"valid": true, "periodKey": in.Proposed.PeriodKey})
		},
	}
	inputFlag(check, &input)

	var closeInput, closeType string
	closeCmd := &cobra.Command{
		Use:   "close",
		Short: "Apply a soft or hard close to a period",
		RunE: func(cmd *cobra.Command, args []string) error {
			var p domain.PostingPeriod
			if err := readInput(cmd, closeInput, &p); err != nil {
				return err
			}
			closed, err := kernel.ClosePeriod(p, domain.CloseType(closeType))
			if err != nil {
				return err
			}
			return printJSON(cmd, closed)
		},
	}
	inputFlag(closeCmd, &closeInput)
	closeCmd.Flags().StringVar(&closeType, "type", string(domain.CloseTypeSoft), "Close type: soft or hard")

	period.AddCommand(check, closeCmd)
	return period
}

func numberingCmd() *cobra.Command {
	numbering := &cobra.Command{
		Use:   "numbering",
		Short: "Document numbering",
	}

	var input string
	var count int
	allocate := &cobra.Command{
		Use:   "allocate",
		Short: "Allocate the next document numbers of a sequence",
		RunE: func(cmd *cobra.Command, args []string) error {
			var seq domain.DocumentSequence
			if err := readInput(cmd, input, &seq); err != nil {
				return err
			}
			numbers, next, usage, err := kernel.AllocateNumbers(seq, count)
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]any{"numbers": numbers, "sequence": next, "usage": usage})
		},
	}
	inputFlag(allocate, &input)
	allocate.Flags().IntVarP(&count, "count", "n", 1, "How many numbers to allocate")

	numbering.AddCommand(allocate)
	return numbering
}

func dimensionsCmd() *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   "dimensions",
		Short: "Validate journal lines against dimension definitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			var in struct {
				Lines       []domain.DimensionedLine     `json:"lines"`
				Definitions []domain.DimensionDefinition `json:"definitions"`
			}
			if err := readInput(cmd, input, &in); err != nil {
				return err
			}
			if err := kernel.ValidateDimensions(in.Lines, in.Definitions); err != nil {
				return err
			}
			return printJSON(cmd, map[string]any{"valid": true, "lineCount": len(in.Lines)})
		},
	}
	inputFlag(cmd, &input)
	return cmd
}
