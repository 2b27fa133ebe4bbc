// Package cli команды payroll-bot: бот, HTTP API, ведомость, сиды и миграции.
package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions общие флаги всех команд.
type RootOptions struct {
	EnvFile  string
	LogLevel string // пусто — берётся LOG_LEVEL
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "payroll-bot",
		Short:         "Расчёт зарплаты сотрудников",
		Long:          "Реестр сотрудников и расчёт зарплаты: Telegram-бот, HTTP API и ведомости.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env", "", "env-файл с настройками (по умолчанию .env)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "уровень логов (debug|info|warn|error)")

	cmd.AddCommand(NewBotCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewReportCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))

	return cmd
}
