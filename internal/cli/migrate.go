package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewMigrateCommand создаёт таблицы. Open уже мигрирует, команда нужна
// для подготовки базы без запуска бота.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Применить миграции SQLite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(rootOpts)
			if err != nil {
				return err
			}
			defer app.Close()
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "База %s готова\n", app.Config.DBPath)
			return err
		},
	}
}
