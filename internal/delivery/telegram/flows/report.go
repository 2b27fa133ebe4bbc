package flows

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/telebot.v3"

	"payroll-bot/internal/app/service"
	"payroll-bot/internal/delivery/telegram/keyboards"
	"payroll-bot/internal/delivery/telegram/middleware"
	"payroll-bot/internal/delivery/telegram/router"
	"payroll-bot/internal/domain"
	"payroll-bot/internal/logger"
)

// Sender то, чем ведомость доставляется в чат после расчёта.
type Sender interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// ReportFlow выбор месяца и асинхронная ведомость.
type ReportFlow struct {
	Reports domain.ReportGenerator
	Timeout time.Duration
	Logger  *zap.Logger
	Now     func() time.Time
}

func (f *ReportFlow) Register(r *router.CallbackRouter) {
	f.Logger = logger.OrNop(f.Logger)
	if f.Now == nil {
		f.Now = time.Now
	}

	r.Register("month_prev", func(c telebot.Context, payload string) error {
		y, err := strconv.Atoi(payload)
		if err != nil {
			return nil
		}
		return f.ShowMonths(c, y-1)
	})

	r.Register("month_next", func(c telebot.Context, payload string) error {
		y, err := strconv.Atoi(payload)
		if err != nil {
			return nil
		}
		return f.ShowMonths(c, y+1)
	})

	r.Register("pick_month", func(c telebot.Context, payload string) error {
		month, year, err := ParseMonthPayload(payload)
		if err != nil {
			return nil
		}
		msg := fmt.Sprintf("Формирую ведомость за %02d.%04d…", int(month), year)
		if err := middleware.EditOrSend(c, msg); err != nil {
			return err
		}
		go f.Deliver(c.Bot(), c.Chat(), month, year)
		return nil
	})
}

func (f *ReportFlow) ShowMonths(c telebot.Context, year int) error {
	title, markup := keyboards.BuildMonthKeyboard(year)
	return middleware.EditOrSend(c, title, markup)
}

// Deliver ждёт ведомость не дольше Timeout и отправляет её в чат.
func (f *ReportFlow) Deliver(bot Sender, chat telebot.Recipient, month time.Month, year int) {
	log := logger.OrNop(f.Logger)
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var text string
	select {
	case res := <-f.Reports.GeneratePayrollReport(ctx, month, year):
		switch {
		case res.Err == nil:
			text = service.FormatReport(res.Report)
		case errors.Is(res.Err, context.DeadlineExceeded):
			text = "Ведомость не успела сформироваться, попробуйте позже."
		default:
			log.Error("report failed", zap.Error(res.Err))
			text = "Ошибка при формировании ведомости: " + res.Err.Error()
		}
	case <-ctx.Done():
		text = "Ведомость не успела сформироваться, попробуйте позже."
	}

	if _, err := bot.Send(chat, text); err != nil {
		log.Warn("send report", zap.Error(err))
	}
}

// ParseMonthPayload разбирает "YYYY-MM".
func ParseMonthPayload(payload string) (time.Month, int, error) {
	parts := strings.Split(payload, "-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("bad month payload %q", payload)
	}
	y, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("bad year in %q: %w", payload, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 1 || m > 12 {
		return 0, 0, fmt.Errorf("bad month in %q", payload)
	}
	return time.Month(m), y, nil
}
