package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"payroll-bot/internal/delivery/http"
)

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(rootOpts)
			if err != nil {
				return err
			}
			defer app.Close()
			if addr == "" {
				addr = app.Config.HTTPAddr
			}
			if app.Config.JWTSecret == "" {
				app.Logger.Warn("JWT_SECRET is empty, write routes are not protected")
			}

			server := &http.Server{
				Registry:      app.Registry,
				Payroll:       app.Payroll,
				Reports:       app.Reports,
				Taxes:         app.Taxes,
				Scores:        app.Scores,
				Attendance:    app.Attendance,
				Async:         app.Async,
				JWTSecret:     app.Config.JWTSecret,
				ReportTimeout: app.Config.ReportTimeout,
				Logger:        app.Logger,
			}
			fiberApp := server.NewApp()

			ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := fiberApp.ShutdownWithContext(shutdownCtx); err != nil {
					app.Logger.Warn("http shutdown", zap.Error(err))
				}
			}()

			app.Logger.Info("http server started", zap.String("addr", addr))
			return fiberApp.Listen(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "адрес HTTP (по умолчанию HTTP_ADDR)")
	return cmd
}
