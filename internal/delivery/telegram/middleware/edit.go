package middleware

import (
	"gopkg.in/telebot.v3"
)

// EditOrSend редактирует сообщение с кнопкой, а если это невозможно
// (не callback, текст не изменился, сообщение устарело) — отправляет новое.
func EditOrSend(c telebot.Context, text string, opts ...interface{}) error {
	if c.Callback() != nil {
		if err := c.Edit(text, opts...); err == nil {
			return nil
		}
	}
	return c.Send(text, opts...)
}
