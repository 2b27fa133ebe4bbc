package router

import (
	"strings"

	"go.uber.org/zap"
	"gopkg.in/telebot.v3"

	"payroll-bot/internal/logger"
)

type HandlerFunc func(c telebot.Context, payload string) error

// CallbackRouter единая точка входа для inline-кнопок. Кнопки с префиксом
// cal_ уходят календарю.
type CallbackRouter struct {
	handlers    map[string]HandlerFunc
	CalDelegate func(c telebot.Context) error
	Logger      *zap.Logger
}

func New(log *zap.Logger) *CallbackRouter {
	return &CallbackRouter{handlers: make(map[string]HandlerFunc), Logger: logger.OrNop(log)}
}

func (r *CallbackRouter) Register(key string, h HandlerFunc) {
	r.handlers[key] = h
}

func (r *CallbackRouter) Attach(bot *telebot.Bot) {
	bot.Handle(telebot.OnCallback, func(c telebot.Context) error {
		_, err := r.Dispatch(c)
		return err
	})
}

// ParseCallback разбирает "\fkey|payload".
func ParseCallback(raw string) (key, payload string) {
	raw = strings.TrimPrefix(raw, "\f")
	key = raw
	if i := strings.IndexByte(raw, '|'); i >= 0 {
		key = raw[:i]
		payload = raw[i+1:]
	}
	return key, payload
}

// Dispatch возвращает false, если для кнопки нет обработчика.
func (r *CallbackRouter) Dispatch(c telebot.Context) (bool, error) {
	key, payload := ParseCallback(c.Data())
	r.Logger.Debug("callback", zap.String("key", key), zap.String("payload", payload))
	// убираем часики у кнопки
	_ = c.Respond()

	if strings.HasPrefix(key, "cal_") {
		if r.CalDelegate != nil {
			return true, r.CalDelegate(c)
		}
		return true, nil
	}
	if h, ok := r.handlers[key]; ok {
		return true, h(c, payload)
	}
	return false, nil
}
