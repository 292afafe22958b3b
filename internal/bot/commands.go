package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"football-roster-bot/internal/roster"
)

const helpText = "Привет! Я веду список на футбол.\n" +
	"Участникам: '+' (записаться), '-' (выйти), '+N' (привести N гостей), '-N' (убрать N гостей)\n\n" +
	"Админам:\n" +
	"/open [ДД/ММ/ГГ] [ЧЧ:ММ-ЧЧ:ММ]\n" +
	"/setdate ДД/ММ/ГГ\n" +
	"/settime ЧЧ:ММ-ЧЧ:ММ\n" +
	"/setfield ТЕКСТ\n" +
	"/setlimit N\n" +
	"/remove @username|Имя\n" +
	"/list\n" +
	"/reset\n" +
	"/export\n" +
	"/close\n" +
	"/help"

// handleCommand обрабатывает слэш-команды. Административные команды
// от обычных участников молча игнорируются, без ответа.
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	args := msg.CommandArguments()

	switch msg.Command() {
	case "start", "help":
		b.reply(chatID, helpText)

	case "list":
		var rendered string
		b.store.View(chatID, func(r *roster.Roster) {
			rendered = r.Render()
		})
		b.reply(chatID, rendered)

	case "open":
		if !b.requireAdmin(msg) {
			return
		}
		fields := strings.Fields(args)
		date, timeRange := "", ""
		if len(fields) >= 1 {
			date = fields[0]
		}
		if len(fields) >= 2 {
			timeRange = fields[1]
		}
		var rendered string
		var fieldErr error
		// OpenSignup открывает запись даже при недопустимой дате или
		// времени, поэтому сохранение нужно в любом случае.
		err := b.store.Update(chatID, func(r *roster.Roster) error {
			fieldErr = r.OpenSignup(date, timeRange)
			rendered = r.Render()
			return nil
		})
		if err != nil {
			b.logger.Error("failed to persist state", "error", err)
			return
		}
		reply := "Запись открыта ✅"
		if fieldErr != nil {
			reply += fmt.Sprintf("\nОшибка: %s", fieldErr)
		}
		b.reply(chatID, reply+"\n\n"+rendered)

	case "close":
		if !b.requireAdmin(msg) {
			return
		}
		var rendered string
		if err := b.store.Update(chatID, func(r *roster.Roster) error {
			r.CloseSignup()
			rendered = r.Render()
			return nil
		}); err != nil {
			b.logger.Error("failed to persist state", "error", err)
			return
		}
		b.reply(chatID, "Запись закрыта ⛔️\n\n"+rendered)

	case "setdate":
		if !b.requireAdmin(msg) {
			return
		}
		if args == "" {
			b.reply(chatID, "Укажите дату: /setdate ДД/ММ/ГГ")
			return
		}
		b.runSetter(chatID, "Дата обновлена ✅", func(r *roster.Roster) error {
			return r.SetDate(strings.TrimSpace(args))
		})

	case "settime":
		if !b.requireAdmin(msg) {
			return
		}
		if args == "" {
			b.reply(chatID, "Укажите время: /settime ЧЧ:ММ-ЧЧ:ММ")
			return
		}
		b.runSetter(chatID, "Время обновлено ✅", func(r *roster.Roster) error {
			return r.SetTime(strings.TrimSpace(args))
		})

	case "setfield":
		if !b.requireAdmin(msg) {
			return
		}
		venue := strings.TrimSpace(args)
		if venue == "" {
			b.reply(chatID, "Укажите название поля: /setfield Горизонт-арена")
			return
		}
		b.runSetter(chatID, "Поле обновлено ✅", func(r *roster.Roster) error {
			r.SetVenue(venue)
			return nil
		})

	case "setlimit":
		if !b.requireAdmin(msg) {
			return
		}
		if args == "" {
			b.reply(chatID, "Укажите лимит: /setlimit 28 (0 = без лимита)")
			return
		}
		var rendered string
		err := b.store.Update(chatID, func(r *roster.Roster) error {
			if setErr := r.SetLimit(args); setErr != nil {
				return setErr
			}
			rendered = r.Render()
			return nil
		})
		if err != nil {
			b.reply(chatID, "Неверное значение. Пример: /setlimit 28")
			return
		}
		b.reply(chatID, "Лимит обновлён ✅\n\n"+rendered)

	case "remove":
		if !b.requireAdmin(msg) {
			return
		}
		key := strings.TrimSpace(args)
		if key == "" {
			b.reply(chatID, "Кого убрать? /remove @username или /remove Имя")
			return
		}
		var removed int
		var rendered string
		if err := b.store.Update(chatID, func(r *roster.Roster) error {
			removed = r.RemoveByKey(key)
			rendered = r.Render()
			return nil
		}); err != nil {
			b.logger.Error("failed to persist state", "error", err)
			return
		}
		b.reply(chatID, fmt.Sprintf("Убрано: %d\n\n%s", removed, rendered))

	case "reset":
		if !b.requireAdmin(msg) {
			return
		}
		var rendered string
		if err := b.store.Update(chatID, func(r *roster.Roster) error {
			r.Reset()
			rendered = r.Render()
			return nil
		}); err != nil {
			b.logger.Error("failed to persist state", "error", err)
			return
		}
		b.reply(chatID, "Список очищен 🧹\n\n"+rendered)

	case "export":
		if !b.requireAdmin(msg) {
			return
		}
		b.handleExport(chatID)

	default:
		b.reply(chatID, "Я не знаю такой команды.")
	}
}

// requireAdmin проверяет права отправителя на административную команду.
func (b *Bot) requireAdmin(msg *tgbotapi.Message) bool {
	if msg.From == nil {
		return false
	}
	return b.isAdmin(msg.Chat.ID, msg.From.ID)
}

// runSetter выполняет сеттер метаданных и отвечает либо подтверждением
// со свежим списком, либо текстом ошибки валидации.
func (b *Bot) runSetter(chatID int64, okText string, fn func(r *roster.Roster) error) {
	var rendered string
	err := b.store.Update(chatID, func(r *roster.Roster) error {
		if setErr := fn(r); setErr != nil {
			return setErr
		}
		rendered = r.Render()
		return nil
	})
	if err != nil {
		b.reply(chatID, fmt.Sprintf("Ошибка: %s", err))
		return
	}
	b.reply(chatID, okText+"\n\n"+rendered)
}
