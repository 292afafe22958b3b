// Package bot реализует Telegram-транспорт: цикл обновлений, разбор
// команд, проверку прав администратора и тексты ответов. Вся логика
// списка живёт в internal/roster, здесь только её вызовы и формулировки.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"football-roster-bot/cmd/bot/config"
	"football-roster-bot/internal/command"
	"football-roster-bot/internal/roster"
	"football-roster-bot/internal/store"
)

const closedReply = "Запись закрыта ⛔️. Админам: /open"

// Bot представляет собой основной объект Telegram-бота.
type Bot struct {
	api    *tgbotapi.BotAPI
	cfg    config.BotConfig
	store  *store.Store
	logger *slog.Logger

	// Поля-функции вместо прямых вызовов API, чтобы тесты работали
	// без живого Telegram.
	sendMessageFunc   func(msg tgbotapi.Chattable) (tgbotapi.Message, error)
	getChatMemberFunc func(cfg tgbotapi.GetChatMemberConfig) (tgbotapi.ChatMember, error)
}

// NewBot создает и инициализирует новый экземпляр бота.
func NewBot(cfg config.BotConfig, st *store.Store, logger *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot api: %w", err)
	}

	logger.Info("Authorized on account", slog.String("username", api.Self.UserName))

	b := &Bot{
		api:    api,
		cfg:    cfg,
		store:  st,
		logger: logger,
	}
	b.sendMessageFunc = api.Send
	b.getChatMemberFunc = api.GetChatMember
	return b, nil
}

// Start запускает основной цикл обработки обновлений от Telegram.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Context cancelled, stopping bot...")
			b.api.StopReceivingUpdates()
			return
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение.
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.Chat == nil {
		return
	}
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	// Короткие команды участников работают только в групповых чатах.
	if !msg.Chat.IsGroup() && !msg.Chat.IsSuperGroup() {
		return
	}
	op := command.Parse(msg.Text)
	if op.Kind == command.None {
		return
	}
	b.handleRosterOp(msg, op)
}

// displayName собирает каноническое отображаемое имя участника:
// имя и фамилия, опционально "(@username)".
func displayName(u *tgbotapi.User) string {
	if u == nil {
		return "Без имени"
	}
	var parts []string
	if u.FirstName != "" {
		parts = append(parts, u.FirstName)
	}
	if u.LastName != "" {
		parts = append(parts, u.LastName)
	}
	name := strings.Join(parts, " ")
	if name == "" {
		if u.UserName != "" {
			name = u.UserName
		} else {
			name = fmt.Sprintf("%d", u.ID)
		}
	}
	if u.UserName != "" {
		return fmt.Sprintf("%s (@%s)", name, u.UserName)
	}
	return name
}

// isAdmin проверяет, является ли пользователь администратором чата.
// Проверка идёт через Bot API до захвата блокировки хранилища.
func (b *Bot) isAdmin(chatID, userID int64) bool {
	member, err := b.getChatMemberFunc(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{ChatID: chatID, UserID: userID},
	})
	if err != nil {
		b.logger.Error("failed to get chat member", slog.Any("error", err))
		return false
	}
	return member.Status == "administrator" || member.Status == "creator"
}

// reply отправляет текстовый ответ в чат.
func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.sendMessageFunc(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Error("failed to send message", slog.Any("error", err))
	}
}

// handleRosterOp применяет короткую команду участника к списку чата.
// Оператор хранилища держит блокировку на всю цепочку "найти участника →
// проверить лимит → изменить → сохранить"; ответ отправляется уже после
// её освобождения.
func (b *Bot) handleRosterOp(msg *tgbotapi.Message, op command.Op) {
	chatID := msg.Chat.ID
	disp := displayName(msg.From)
	uname := ""
	if msg.From != nil {
		uname = msg.From.UserName
	}

	var rendered string
	switch op.Kind {
	case command.Join:
		var outcome roster.JoinOutcome
		err := b.store.Update(chatID, func(r *roster.Roster) error {
			var opErr error
			outcome, opErr = r.Join(disp, uname)
			if opErr != nil {
				return opErr
			}
			rendered = r.Render()
			return nil
		})
		if err != nil {
			b.reply(chatID, joinErrorReply(err))
			return
		}
		if outcome == roster.JoinedRehost {
			b.reply(chatID, "Вернул тебя, гость остаётся 👥✅\n\n"+rendered)
		} else {
			b.reply(chatID, "Записал! ✅\n\n"+rendered)
		}

	case command.Leave:
		var outcome roster.LeaveOutcome
		err := b.store.Update(chatID, func(r *roster.Roster) error {
			var opErr error
			outcome, opErr = r.Leave(disp, uname)
			if opErr != nil {
				return opErr
			}
			rendered = r.Render()
			return nil
		})
		if err != nil {
			b.reply(chatID, leaveErrorReply(err))
			return
		}
		if outcome == roster.LeftGuestsStay {
			b.reply(chatID, "Убрал тебя, гость остаётся 👤➡️👥\n\n"+rendered)
		} else {
			b.reply(chatID, "Убрал тебя из списка 👌\n\n"+rendered)
		}

	case command.AddGuests:
		var outcome roster.AddOutcome
		err := b.store.Update(chatID, func(r *roster.Roster) error {
			var opErr error
			outcome, opErr = r.AddGuests(disp, uname, op.N)
			if opErr != nil {
				return opErr
			}
			rendered = r.Render()
			return nil
		})
		if err != nil {
			b.reply(chatID, addGuestsErrorReply(err, op.N))
			return
		}
		if outcome == roster.GuestsAddedNewEntry {
			b.reply(chatID, fmt.Sprintf("Записал тебя с +%d 👥✅\n\n%s", op.N, rendered))
		} else {
			b.reply(chatID, fmt.Sprintf("Добавил +%d 👥✅\n\n%s", op.N, rendered))
		}

	case command.RemoveGuests:
		err := b.store.Update(chatID, func(r *roster.Roster) error {
			if _, opErr := r.RemoveGuests(disp, uname, op.N); opErr != nil {
				return opErr
			}
			rendered = r.Render()
			return nil
		})
		if err != nil {
			b.reply(chatID, removeGuestsErrorReply(err))
			return
		}
		b.reply(chatID, fmt.Sprintf("Убрал твоего +%d 👌\n\n%s", op.N, rendered))
	}
}

// joinErrorReply подбирает текст отказа для "+".
func joinErrorReply(err error) string {
	var capErr *roster.CapacityError
	switch {
	case errors.Is(err, roster.ErrClosed):
		return closedReply
	case errors.Is(err, roster.ErrAlreadyJoined):
		return "Ты уже в списке ✅"
	case errors.As(err, &capErr):
		return fmt.Sprintf("⚠️ Нет свободных мест (лимит %d).", capErr.Limit)
	default:
		return "Не получилось записать: " + err.Error()
	}
}

// leaveErrorReply подбирает текст отказа для "-".
func leaveErrorReply(err error) string {
	var nfErr *roster.NotFoundError
	switch {
	case errors.As(err, &nfErr):
		return "Тебя нет в списке — ничего не удалял."
	case errors.Is(err, roster.ErrGuestOnlyRemains):
		return "У тебя уже остался только гость. Чтобы убрать гостя — отправь -1."
	default:
		return "Не получилось убрать: " + err.Error()
	}
}

// addGuestsErrorReply подбирает текст отказа для "+N".
func addGuestsErrorReply(err error, n int) string {
	var capErr *roster.CapacityError
	switch {
	case errors.Is(err, roster.ErrClosed):
		return closedReply
	case errors.As(err, &capErr):
		if capErr.PerHost {
			return fmt.Sprintf("⚠️ Слишком много гостей (максимум %d).", roster.MaxGuests)
		}
		return fmt.Sprintf("⚠️ Не хватает мест для +%d (лимит %d).", n, capErr.Limit)
	default:
		return "Не получилось добавить гостей: " + err.Error()
	}
}

// removeGuestsErrorReply подбирает текст отказа для "-N".
func removeGuestsErrorReply(err error) string {
	var nfErr *roster.NotFoundError
	switch {
	case errors.As(err, &nfErr):
		return "Тебя нет в списке — нечего менять."
	case errors.Is(err, roster.ErrNoGuests):
		return "У тебя нет гостей."
	default:
		return "Не получилось убрать гостей: " + err.Error()
	}
}
