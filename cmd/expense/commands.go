// cmd/expense/commands.go
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	app "expense-tracker/internal"
	"expense-tracker/internal/cli"
	"expense-tracker/internal/config"
	"expense-tracker/internal/domain"
	"expense-tracker/internal/util"
	"expense-tracker/pkg/db"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the transaction table if it does not exist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := config.LoadConfig(viper.GetViper())
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			closer, err := util.InitLogger(cfg.Logging)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer closer.Close()

			err = db.WithConnection(ctx, cfg.DB, func(conn *sqlx.DB) error {
				return db.EnsureSchema(ctx, conn)
			})
			if err != nil {
				return err
			}

			slog.Info("Schema ensured", "driver", cfg.DB.Driver)
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Database ready (%s).", cfg.DB.Driver)))
			return nil
		},
	}
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all transactions with the total expenditure",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return app.Run(ctx, viper.GetViper(), os.Stdin, cmd.OutOrStdout(), func(a *app.Application) error {
				return a.Workflow.View(ctx)
			})
		},
	}
}

func addCmd() *cobra.Command {
	var date, details, amount, remarks string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction without the interactive menu",
		Example: `  expense add --date 25-12-2024 --details "Christmas dinner" --amount 1250.50
  expense add --date 01-01-2025 --details Fuel --amount 2000 --remarks "full tank"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := domain.ParseInput(date, details, amount, remarks)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			return app.Run(ctx, viper.GetViper(), os.Stdin, cmd.OutOrStdout(), func(a *app.Application) error {
				id, err := a.TransactionService.Insert(ctx, in)
				if err != nil {
					return err
				}
				a.Console.Success(fmt.Sprintf("Transaction added successfully with ID %d.", id))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "transaction date (DD-MM-YYYY)")
	cmd.Flags().StringVar(&details, "details", "", "transaction details")
	cmd.Flags().StringVar(&amount, "amount", "", "amount, e.g. 1250.50")
	cmd.Flags().StringVar(&remarks, "remarks", "", "optional remarks")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("details")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <statement.ofx>",
		Short: "Import the debits of an OFX/QFX bank or credit card statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return app.Run(ctx, viper.GetViper(), os.Stdin, cmd.OutOrStdout(), func(a *app.Application) error {
				summary, err := a.Importer.ImportFile(ctx, args[0])
				if err != nil {
					return err
				}
				a.Console.Success(fmt.Sprintf("Imported %d transactions.", summary.Imported))
				if summary.Duplicates > 0 {
					a.Console.Info(fmt.Sprintf("%d already imported, skipped.", summary.Duplicates))
				}
				if summary.Skipped > 0 {
					a.Console.Info(fmt.Sprintf("%d credits or invalid entries skipped.", summary.Skipped))
				}
				return nil
			})
		},
	}
}
