package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"payroll-bot/internal/seed"
)

func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Загрузить сотрудников и справочники из YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			doc, err := seed.Parse(f)
			if err != nil {
				return err
			}

			app, err := loadApp(rootOpts)
			if err != nil {
				return err
			}
			defer app.Close()

			n, err := seed.Apply(doc, seed.Targets{
				Registry:   app.Registry,
				Taxes:      app.Taxes,
				Scores:     app.Scores,
				Attendance: app.Attendance,
			})
			if err != nil {
				return err
			}
			app.Logger.Info("seed applied", zap.String("file", file), zap.Int("employees", n))
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Загружено сотрудников: %d\n", n)
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML-файл с сотрудниками")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
