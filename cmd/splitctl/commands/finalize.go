package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitter/internal/editor"
	"github.com/mmynk/splitter/internal/models"
)

// finalize --bill N [--equal] [--share item=user:weight ...]
func finalizeCmd() *cobra.Command {
	var (
		equal  bool
		shares []string
		raw    bool
	)
	cmd := &cobra.Command{
		Use:   "finalize",
		Short: "Assign shares, submit them and print the per-user summary",
		Long: `Loads the receipt and any stored shares, applies --equal and then each
--share in order, and submits the result.

A share is item=user:weight. Items are 1-based positions or names; users are
IDs or names. Weights are relative: pizza=ann:2 pizza=bob:1 gives Ann two
thirds of the pizza.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := workflow.Load(cmd.Context(), billID)
			if err != nil {
				return describe(err)
			}

			if equal {
				if state, err = state.EqualSplitAll(); err != nil {
					return err
				}
			}
			for _, s := range shares {
				if state, err = applyShare(state, s); err != nil {
					return err
				}
			}

			res, err := workflow.Finalize(cmd.Context(), state)
			if err != nil {
				return err
			}
			if res.Notice != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), res.Notice)
			}
			if raw {
				fmt.Fprintln(cmd.OutOrStdout(), res.Text)
				return nil
			}
			return printSummary(cmd.OutOrStdout(), res.Summary)
		},
	}
	requireBill(cmd)
	cmd.Flags().BoolVar(&equal, "equal", false, "split every item equally among all users first")
	cmd.Flags().StringArrayVar(&shares, "share", nil, "item=user:weight (repeatable)")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the summary text as received")
	return cmd
}

func applyShare(state editor.State, spec string) (editor.State, error) {
	s, err := parseShare(spec)
	if err != nil {
		return state, err
	}
	item, err := resolveItem(state.Bill().Items, s.item)
	if err != nil {
		return state, err
	}
	user, err := resolveUser(state.Users(), s.user)
	if err != nil {
		return state, err
	}
	return state.UpdateShareText(item, user, s.weight)
}

func printSummary(w io.Writer, summary models.CalculationSummary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	for _, u := range summary.Users {
		name := u.Name
		if name == "" {
			name = u.Key()
		}
		fmt.Fprintf(tw, "%s\t%s\t\n", name, formatMoney(u.Cost, currency))
	}
	fmt.Fprintf(tw, "Subtotal\t%s\t\n", formatMoney(summary.Subtotal, currency))
	fmt.Fprintf(tw, "Tax\t%s\t\n", formatMoney(summary.Tax, currency))
	fmt.Fprintf(tw, "Grand Total\t%s\t\n", formatMoney(summary.DisplayTotal(), currency))
	return tw.Flush()
}
