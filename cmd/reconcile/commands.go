package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"payroll-reconciliation-backend/internal/config"
	"payroll-reconciliation-backend/internal/logger"
	"payroll-reconciliation-backend/internal/repository"
	service "payroll-reconciliation-backend/internal/services/reconciliation"
	"payroll-reconciliation-backend/internal/table"
)

type app struct {
	cfg *config.Config

	database    string
	input       string
	accountants string
	results     string
	out         string
}

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "reconcile",
		Short:        "Reconcile payroll names against the authoritative employee table",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger.Init(cfg.Logger)
			a.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&a.out, "out", "o", "results.csv", "output file (.csv or .xlsx)")

	root.AddCommand(
		a.matchCommand("names", "Match names and attach bank accounts (flags shared accounts)"),
		a.matchCommand("sections", "Match names and attach grade, title, workplace and section"),
		a.linkCommand(),
	)
	return root
}

func (a *app) matchCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runMatch(cmd, use)
		},
	}
	cmd.Flags().StringVar(&a.database, "database", "", "authoritative table (.csv/.xlsx); defaults to DATABASE_URL")
	cmd.Flags().StringVar(&a.input, "input", "", "names table (.csv/.xlsx)")
	cmd.Flags().StringVar(&a.accountants, "accountants", "", "accountant assignment table (.csv/.xlsx)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func (a *app) linkCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Append accountant columns to an existing result table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := table.ReadFile("results", a.results)
			if err != nil {
				return err
			}
			accountants, err := table.ReadFile("accountants", a.accountants)
			if err != nil {
				return err
			}
			out, err := service.NewReconciliationService(a.cfg.Matching.Policy(), nil).LinkTable(results, accountants)
			if err != nil {
				return err
			}
			if err := out.WriteFile(a.out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "linked %d rows -> %s\n", out.Len(), a.out)
			return nil
		},
	}
	cmd.Flags().StringVar(&a.results, "results", "", "result table to enrich (.csv/.xlsx)")
	cmd.Flags().StringVar(&a.accountants, "accountants", "", "accountant assignment table (.csv/.xlsx)")
	_ = cmd.MarkFlagRequired("results")
	_ = cmd.MarkFlagRequired("accountants")
	return cmd
}

func (a *app) runMatch(cmd *cobra.Command, mode string) error {
	req := service.Request{}
	var err error

	if req.Input, err = table.ReadFile("input", a.input); err != nil {
		return err
	}
	if a.database != "" {
		if req.Database, err = table.ReadFile("database", a.database); err != nil {
			return err
		}
	}
	if a.accountants != "" {
		if req.Accountants, err = table.ReadFile("accountants", a.accountants); err != nil {
			return err
		}
	}

	var source service.RecordSource
	if req.Database == nil && a.cfg.Database.URL != "" {
		db, err := repository.Open(a.cfg.Database.URL)
		if err != nil {
			return err
		}
		source = repository.NewEmployeeRepository(db, a.cfg.Database.EmployeesTable)
	}

	svc := service.NewReconciliationService(a.cfg.Matching.Policy(), source)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var report *service.Report
	if mode == "sections" {
		report, err = svc.ReconcileSections(ctx, req)
	} else {
		report, err = svc.ReconcileNames(ctx, req)
	}
	if err != nil {
		return err
	}

	if err := report.Table().WriteFile(a.out); err != nil {
		return err
	}

	run := report.Run
	fmt.Fprintf(cmd.OutOrStdout(), "run %s: %d rows, %d matched, %d not matched, %d duplicate accounts, %d dropped duplicates -> %s\n",
		run.ID, run.TotalRows, run.MatchedCount, run.NotMatchedCount, run.DuplicateCount, run.DroppedDuplicates, a.out)
	return nil
}
