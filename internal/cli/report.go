package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"payroll-bot/internal/app/service"
)

func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	var month, year int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Сформировать расчётную ведомость за месяц",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			if month == 0 {
				month = int(now.Month())
			}
			if year == 0 {
				year = now.Year()
			}
			if month < 1 || month > 12 {
				return fmt.Errorf("month must be in 1..12, got %d", month)
			}

			app, err := loadApp(rootOpts)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, cancel := context.WithTimeout(commandContext(cmd), app.Config.ReportTimeout)
			defer cancel()

			res := <-app.Reports.GeneratePayrollReport(ctx, time.Month(month), year)
			if res.Err != nil {
				return fmt.Errorf("generate report: %w", res.Err)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), service.FormatReport(res.Report))
			return err
		},
	}

	cmd.Flags().IntVar(&month, "month", 0, "месяц 1..12 (по умолчанию текущий)")
	cmd.Flags().IntVar(&year, "year", 0, "год (по умолчанию текущий)")
	return cmd
}
