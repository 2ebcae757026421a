package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/carson-networks/cashflow-server/internal/config"
	"github.com/carson-networks/cashflow-server/internal/operator/actions"
	"github.com/carson-networks/cashflow-server/internal/storage"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "account_maintenance",
		Short: "Destructive and corrective account data operations",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newDeleteTransactionsCommand())
	rootCmd.AddCommand(newDeleteAllDataCommand())
	rootCmd.AddCommand(newRecalculateBalanceCommand())

	return rootCmd
}

func newDeleteTransactionsCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete-transactions <account-id>",
		Short: "Delete every transaction held by an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, err := uuid.FromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid account id: %w", err)
			}
			if !force && !confirm(fmt.Sprintf("Delete ALL transactions for account %s?", accountID)) {
				return nil
			}
			return runDelete(cmd.Context(), accountID, false)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip the confirmation prompt")
	return cmd
}

func newDeleteAllDataCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete-all-data <account-id>",
		Short: "Delete an account's transactions and import history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, err := uuid.FromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid account id: %w", err)
			}
			if !force && !confirm(fmt.Sprintf("Delete ALL transactions AND import history for account %s?", accountID)) {
				return nil
			}
			return runDelete(cmd.Context(), accountID, true)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip the confirmation prompt")
	return cmd
}

func newRecalculateBalanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "recalculate-balance <account-id>",
		Short: "Rebuild an account's cached balance from the ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, err := uuid.FromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid account id: %w", err)
			}

			action := &actions.RecalculateBalance{AccountID: accountID}
			if err := performAction(cmd.Context(), action); err != nil {
				return err
			}

			logrus.WithFields(logrus.Fields{
				"accountID": accountID.String(),
				"balance":   action.Balance.String(),
			}).Info("Balance recalculated")
			return nil
		},
	}
}

func runDelete(ctx context.Context, accountID uuid.UUID, includeImportHistory bool) error {
	action := &actions.DeleteAccountData{
		AccountID:           accountID,
		DeleteImportHistory: includeImportHistory,
	}
	if err := performAction(ctx, action); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"accountID":           accountID.String(),
		"deletedTransactions": action.DeletedTransactions,
		"deletedBatches":      action.DeletedBatches,
	}).Info("Account data deleted")
	return nil
}

// performAction runs one action in its own database transaction, the same
// commit-or-rollback shape the server's operator uses.
func performAction(ctx context.Context, action interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}) error {
	env, err := config.ProcessEnvironmentVariables()
	if err != nil {
		return err
	}

	dbStorage, err := storage.NewStorage(env)
	if err != nil {
		return err
	}
	defer dbStorage.Close()

	writer, err := dbStorage.Write(ctx)
	if err != nil {
		return err
	}

	if err := action.Perform(ctx, writer); err != nil {
		_ = writer.Rollback()
		return err
	}
	return writer.Commit()
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	if answer != "y" && answer != "yes" {
		fmt.Println("Aborted.")
		return false
	}
	return true
}
