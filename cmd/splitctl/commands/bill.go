package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitter/internal/apiconv"
	"github.com/mmynk/splitter/pkg/api"
)

func billCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bill",
		Short: "Upload or print a receipt",
	}
	cmd.AddCommand(billPutCmd(), billShowCmd())
	return cmd
}

// bill put <file.json>: upload a receipt in the gateway's JSON form.
func billPutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "put <file.json>",
		Short: "Upload a receipt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var bill api.Bill
			if err := json.Unmarshal(data, &bill); err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			id, err := gw.PutBill(cmd.Context(), *apiconv.BillFromAPI(bill))
			if err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "bill %d stored\n", id)
			return nil
		},
	}
}

func billShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a receipt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bill, err := gw.FetchBill(cmd.Context(), billID)
			if err != nil {
				return describe(err)
			}

			out := cmd.OutOrStdout()
			if bill.StoreName != "" {
				fmt.Fprintln(out, bill.StoreName)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
			for i, item := range bill.Items {
				fmt.Fprintf(tw, "%d\t%s\t%s\t\n", i+1, item.Name, formatMoney(item.Price, currency))
			}
			totals := bill.Totals()
			fmt.Fprintf(tw, "\tSubtotal\t%s\t\n", formatMoney(totals.Subtotal, currency))
			fmt.Fprintf(tw, "\tTax\t%s\t\n", formatMoney(totals.Tax, currency))
			fmt.Fprintf(tw, "\tGrand Total\t%s\t\n", formatMoney(totals.GrandTotal(), currency))
			return tw.Flush()
		},
	}
	requireBill(cmd)
	return cmd
}
