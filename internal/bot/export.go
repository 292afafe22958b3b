package bot

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"time"

	runewidth "github.com/mattn/go-runewidth"
	"github.com/xuri/excelize/v2"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"football-roster-bot/internal/roster"
)

// exportRow — одна строка выгрузки: запись списка в табличной форме.
type exportRow struct {
	Name   string
	Guests int
	Status string
}

// handleExport отправляет список чата администратору: начиная с
// настроенного порога занятых мест — Excel-файлом, иначе — текстовой
// таблицей.
func (b *Bot) handleExport(chatID int64) {
	var rows []exportRow
	var date string
	var total int
	b.store.View(chatID, func(r *roster.Roster) {
		date = r.Date
		total = r.TotalOccupied()
		for _, e := range r.Entries {
			status := "в списке"
			if !e.HostPresent {
				status = "вышел, гости остались"
			}
			rows = append(rows, exportRow{Name: e.HostDisplay, Guests: e.Guests, Status: status})
		}
	})

	if len(rows) == 0 {
		b.reply(chatID, "Список пуст, выгружать нечего.")
		return
	}

	if total >= b.cfg.ExportThreshold {
		b.sendExcelExport(chatID, date, total, rows)
	} else {
		b.sendTextExport(chatID, date, total, rows)
	}
}

// sendExcelExport формирует xlsx-файл со списком и отправляет его документом.
func (b *Bot) sendExcelExport(chatID int64, date string, total int, rows []exportRow) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			b.logger.Error("failed to close excel file", slog.Any("error", err))
		}
	}()

	sheetName := "Участники"
	index, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"№", "Участник", "Гостей", "Статус"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	for i, r := range rows {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), r.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), r.Guests)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), r.Status)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		b.logger.Error("failed to write excel to buffer", slog.Any("error", err))
		b.reply(chatID, "Не удалось сгенерировать Excel-файл.")
		return
	}

	fileName := fmt.Sprintf("roster_%s.xlsx", time.Now().Format("2006-01-02_15-04-05"))
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: fileName, Bytes: buf.Bytes()})
	doc.Caption = fmt.Sprintf("Список на %s: %d мест занято.", date, total)
	if _, err := b.sendMessageFunc(doc); err != nil {
		b.logger.Error("failed to send document", slog.Any("error", err))
	}
}

// sendTextExport отправляет список выровненной моноширинной таблицей в
// HTML-блоке. Выравнивание учитывает реальную ширину рун.
func (b *Bot) sendTextExport(chatID int64, date string, total int, rows []exportRow) {
	nameWidth := runewidth.StringWidth("Участник")
	for _, r := range rows {
		if w := runewidth.StringWidth(r.Name); w > nameWidth {
			nameWidth = w
		}
	}
	statusWidth := runewidth.StringWidth("вышел, гости остались")

	var sb strings.Builder
	fmt.Fprintf(&sb, "Список на %s: %d мест занято.\n", date, total)
	sb.WriteString("<pre><code>")
	fmt.Fprintf(&sb, "| %s%s | Гостей | %s%s |\n",
		"Участник", pad("Участник", nameWidth),
		"Статус", pad("Статус", statusWidth))
	fmt.Fprintf(&sb, "|%s|%s|%s|\n",
		strings.Repeat("-", nameWidth+2),
		strings.Repeat("-", 8),
		strings.Repeat("-", statusWidth+2))
	for _, r := range rows {
		fmt.Fprintf(&sb, "| %s%s | %6d | %s%s |\n",
			r.Name, pad(r.Name, nameWidth),
			r.Guests,
			r.Status, pad(r.Status, statusWidth))
	}
	sb.WriteString("</code></pre>")

	reply := tgbotapi.NewMessage(chatID, sb.String())
	reply.ParseMode = tgbotapi.ModeHTML
	if _, err := b.sendMessageFunc(reply); err != nil {
		b.logger.Error("failed to send text export", slog.Any("error", err))
	}
}

// pad добивает строку пробелами до нужной ширины колонки.
func pad(s string, width int) string {
	if n := width - runewidth.StringWidth(s); n > 0 {
		return strings.Repeat(" ", n)
	}
	return ""
}
