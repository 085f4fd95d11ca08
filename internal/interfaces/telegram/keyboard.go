package telegram

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/andikarh/parlaybot/internal/domain/selection"
)

const (
	callbackTogglePrefix = "toggle:"
	callbackDone         = "done"

	doneButtonLabel = "✅ Selesai"
)

// leagueKeyboard renders one button per discovered league, checkmarked
// when toggled on, plus a final confirm row. Leagues come back in id order
// so the layout is stable across re-renders.
func leagueKeyboard(sess *selection.Session) tgbotapi.InlineKeyboardMarkup {
	leagues := sess.Leagues()
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(leagues)+1)
	for _, f := range leagues {
		label := f.LeagueLabel()
		if sess.IsSelected(f.LeagueID) {
			label = "✅ " + label
		}
		data := callbackTogglePrefix + strconv.FormatInt(f.LeagueID, 10)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, data),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(doneButtonLabel, callbackDone),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// parseToggle extracts the league id from a toggle callback payload.
func parseToggle(data string) (int64, bool) {
	if len(data) <= len(callbackTogglePrefix) || data[:len(callbackTogglePrefix)] != callbackTogglePrefix {
		return 0, false
	}
	id, err := strconv.ParseInt(data[len(callbackTogglePrefix):], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
