package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/telebot.v3"

	"payroll-bot/internal/delivery/telegram"
	"payroll-bot/pkg/calendar"
)

func NewBotCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Запустить Telegram-бота",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(rootOpts)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.Config.RequireToken(); err != nil {
				return err
			}

			bot, err := telebot.NewBot(telebot.Settings{
				Token:  app.Config.TelegramToken,
				Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
				OnError: func(err error, c telebot.Context) {
					app.Logger.Error("telegram handler", zap.Error(err))
				},
			})
			if err != nil {
				return err
			}

			handler := &telegram.Handler{
				Bot:           bot,
				Registry:      app.Registry,
				Payroll:       app.Payroll,
				Reports:       app.Reports,
				Attendance:    app.Attendance,
				Calendar:      calendar.NewCalendarController(),
				Logger:        app.Logger,
				ReportTimeout: app.Config.ReportTimeout,
			}
			handler.Register()

			ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				bot.Stop()
			}()

			app.Logger.Info("bot started")
			bot.Start()
			app.Logger.Info("bot stopped")
			return nil
		},
	}
}

// контекст по умолчанию, если команду вызвали без ExecuteContext
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
