package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitter/internal/models"
)

func usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage a receipt's roster",
	}
	cmd.AddCommand(usersAddCmd(), usersListCmd(), usersRmCmd())
	return cmd
}

// users add --bill N <name>...: IDs are assigned by the gateway.
func usersAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>...",
		Short: "Add users to a receipt",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			users := make([]models.User, len(args))
			for i, name := range args {
				users[i] = models.User{BillID: billID, Name: name}
			}
			saved, err := gw.AddUsers(cmd.Context(), users)
			if err != nil {
				return describe(err)
			}
			for _, u := range saved {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", u.ID, u.Name)
			}
			return nil
		},
	}
	requireBill(cmd)
	return cmd
}

func usersListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a receipt's users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := gw.FetchUsers(cmd.Context(), billID)
			if err != nil {
				return describe(err)
			}
			for _, u := range users {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", u.ID, u.Name)
			}
			return nil
		},
	}
	requireBill(cmd)
	return cmd
}

func usersRmCmd() *cobra.Command {
	var userID int64
	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Remove a user and their shares",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := gw.RemoveUser(cmd.Context(), billID, userID); err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user %d removed\n", userID)
			return nil
		},
	}
	requireBill(cmd)
	cmd.Flags().Int64Var(&userID, "user", 0, "user ID")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
