package telegram

import (
	"context"
	"errors"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/valyala/bytebufferpool"

	"github.com/andikarh/parlaybot/internal/domain/fixture"
	"github.com/andikarh/parlaybot/internal/domain/prediction"
	"github.com/andikarh/parlaybot/internal/domain/selection"
	"github.com/andikarh/parlaybot/internal/infrastructure/statefile"
	"github.com/andikarh/parlaybot/internal/report"
)

// User-facing status strings. Short and Indonesian, matching the bot's
// audience; raw errors never reach the chat.
const (
	msgStart = "Halo! Perintah yang tersedia:\n" +
		"/get — prediksi untuk liga pilihan\n" +
		"/jadwal — jadwal pertandingan\n" +
		"/prediksi — pilih liga lalu terima prediksi"
	msgSearching      = "Mencari jadwal pertandingan..."
	msgNoFixtures     = "Tidak ada pertandingan yang akan datang."
	msgNoPredictions  = "Tidak ada prediksi yang tersedia saat ini."
	msgBuildingReport = "Menyusun laporan..."
	msgDone           = "Selesai ✅"
	msgChooseLeagues  = "Pilih liga, lalu tekan Selesai."
	msgEmptySelection = "Pilih minimal satu liga dulu."
	msgNoSession      = "Sesi pemilihan sudah berakhir. Kirim /prediksi lagi."
	msgFailed         = "Terjadi kesalahan. Coba lagi nanti."

	maxMessageLen = 3500
)

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if !msg.IsCommand() {
		return
	}

	chatID := msg.Chat.ID
	switch msg.Command() {
	case "start", "help":
		b.sendText(chatID, msgStart)
	case "get":
		b.handleGet(ctx, chatID)
	case "jadwal":
		b.handleSchedule(ctx, chatID)
	case "prediksi":
		b.handleInteractive(ctx, chatID)
	}
}

// handleGet runs the full pipeline without interaction: allow-list
// filtered discovery, the daily cache, prediction fan-out, one document.
func (b *Bot) handleGet(ctx context.Context, chatID int64) {
	statusID := b.sendStatus(chatID, msgSearching)

	today := b.timeNow().In(b.location).Format("2006-01-02")
	if entry, ok := b.svc.Cache.Lookup(ctx, today); ok && len(entry.Predictions) > 0 {
		b.editStatus(chatID, statusID, msgBuildingReport)
		b.deliverReport(ctx, chatID, statusID, entry.Predictions)
		return
	}

	fixtures, err := b.svc.Discovery.Discover(ctx, true)
	if err != nil {
		b.logger.ErrorContext(ctx, "fixture discovery failed", "chat_id", chatID, "error", err)
		b.editStatus(chatID, statusID, msgFailed)
		return
	}
	if len(fixtures) == 0 {
		b.editStatus(chatID, statusID, msgNoFixtures)
		return
	}

	b.editStatus(chatID, statusID, "Mengambil prediksi untuk "+strconv.Itoa(len(fixtures))+" pertandingan...")
	records, err := b.svc.Predictions.Collect(ctx, fixtures)
	if err != nil {
		b.logger.ErrorContext(ctx, "prediction collection failed", "chat_id", chatID, "error", err)
		b.editStatus(chatID, statusID, msgFailed)
		return
	}
	if len(records) == 0 {
		b.editStatus(chatID, statusID, msgNoPredictions)
		return
	}

	if err := b.svc.Cache.Save(ctx, today, statefile.CacheEntry{Fixtures: fixtures, Predictions: records}); err != nil {
		b.logger.WarnContext(ctx, "daily cache write failed", "error", err)
	}

	b.editStatus(chatID, statusID, msgBuildingReport)
	b.deliverReport(ctx, chatID, statusID, records)
}

// handleSchedule lists upcoming fixtures as plain text, split into chunks
// under the transport's message size limit.
func (b *Bot) handleSchedule(ctx context.Context, chatID int64) {
	statusID := b.sendStatus(chatID, msgSearching)

	fixtures, err := b.svc.Discovery.Discover(ctx, false)
	if err != nil {
		b.logger.ErrorContext(ctx, "fixture discovery failed", "chat_id", chatID, "error", err)
		b.editStatus(chatID, statusID, msgFailed)
		return
	}
	if len(fixtures) == 0 {
		b.editStatus(chatID, statusID, msgNoFixtures)
		return
	}

	b.editStatus(chatID, statusID, "📅 Jadwal pertandingan ("+strconv.Itoa(len(fixtures))+"):")
	for _, chunk := range scheduleChunks(fixtures, b.localKickoff) {
		b.sendText(chatID, chunk)
	}
}

// handleInteractive starts a selection round: discovery, then one inline
// keyboard the user toggles until confirming.
func (b *Bot) handleInteractive(ctx context.Context, chatID int64) {
	statusID := b.sendStatus(chatID, msgSearching)

	fixtures, err := b.svc.Discovery.Discover(ctx, false)
	if err != nil {
		b.logger.ErrorContext(ctx, "fixture discovery failed", "chat_id", chatID, "error", err)
		b.editStatus(chatID, statusID, msgFailed)
		return
	}
	if len(fixtures) == 0 {
		b.editStatus(chatID, statusID, msgNoFixtures)
		return
	}

	if resumed, ok := b.svc.Sessions.Restore(ctx, chatID, fixtures); ok {
		b.runPredictions(ctx, chatID, statusID, resumed)
		return
	}

	sess := b.svc.Sessions.Begin(chatID, fixtures)

	edit := tgbotapi.NewEditMessageText(chatID, statusID, msgChooseLeagues)
	markup := leagueKeyboard(sess)
	edit.ReplyMarkup = &markup
	if _, err := b.api.Send(edit); err != nil {
		b.logger.WarnContext(ctx, "send league keyboard failed", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if query.Message == nil {
		return
	}
	chatID := query.Message.Chat.ID

	if leagueID, ok := parseToggle(query.Data); ok {
		b.handleToggle(ctx, query, chatID, leagueID)
		return
	}
	if query.Data == callbackDone {
		b.handleDone(ctx, query, chatID)
	}
}

func (b *Bot) handleToggle(ctx context.Context, query *tgbotapi.CallbackQuery, chatID, leagueID int64) {
	sess, _, err := b.svc.Sessions.Toggle(chatID, leagueID)
	if err != nil {
		b.answerCallback(query.ID, msgNoSession)
		return
	}

	markup := leagueKeyboard(sess)
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, query.Message.MessageID, markup)
	if _, err := b.api.Send(edit); err != nil {
		b.logger.WarnContext(ctx, "keyboard re-render failed", "chat_id", chatID, "error", err)
	}
	b.answerCallback(query.ID, "")
}

func (b *Bot) handleDone(ctx context.Context, query *tgbotapi.CallbackQuery, chatID int64) {
	fixtures, err := b.svc.Sessions.Confirm(ctx, chatID)
	switch {
	case errors.Is(err, selection.ErrEmptySelection):
		b.answerCallback(query.ID, msgEmptySelection)
		return
	case err != nil:
		b.answerCallback(query.ID, msgNoSession)
		return
	}
	b.answerCallback(query.ID, "")

	b.runPredictions(ctx, chatID, query.Message.MessageID, fixtures)
}

// runPredictions is the tail of the interactive flow: fan out for the
// confirmed fixtures and deliver the document. The session and its
// persisted selection are cleared once the chat has its answer.
func (b *Bot) runPredictions(ctx context.Context, chatID int64, statusID int, fixtures []fixture.Fixture) {
	b.editStatus(chatID, statusID, "Mengambil prediksi untuk "+strconv.Itoa(len(fixtures))+" pertandingan...")

	records, err := b.svc.Predictions.Collect(ctx, fixtures)
	if err != nil {
		b.logger.ErrorContext(ctx, "prediction collection failed", "chat_id", chatID, "error", err)
		b.editStatus(chatID, statusID, msgFailed)
		return
	}
	if len(records) == 0 {
		b.editStatus(chatID, statusID, msgNoPredictions)
		b.svc.Sessions.Reset(ctx, chatID)
		return
	}

	b.editStatus(chatID, statusID, msgBuildingReport)
	if b.deliverReport(ctx, chatID, statusID, records) {
		b.svc.Sessions.Reset(ctx, chatID)
	}
}

// deliverReport renders the workbook and sends it as a document. Reports
// success so callers know whether to clear session state.
func (b *Bot) deliverReport(ctx context.Context, chatID int64, statusID int, records []prediction.Record) bool {
	buf, err := report.Render(records)
	if err != nil {
		b.logger.ErrorContext(ctx, "report rendering failed", "chat_id", chatID, "error", err)
		b.editStatus(chatID, statusID, msgFailed)
		return false
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  report.FileName,
		Bytes: buf.Bytes(),
	})
	doc.Caption = "Prediksi " + strconv.Itoa(len(records)) + " pertandingan"
	if _, err := b.api.Send(doc); err != nil {
		b.logger.ErrorContext(ctx, "document delivery failed", "chat_id", chatID, "error", err)
		b.editStatus(chatID, statusID, msgFailed)
		return false
	}

	b.editStatus(chatID, statusID, msgDone)
	return true
}

func (b *Bot) localKickoff(f fixture.Fixture) string {
	at, ok := f.ParseKickoff(b.location)
	if !ok {
		return f.KickoffAt
	}
	return at.In(b.location).Format("2006-01-02 15:04")
}

// scheduleChunks renders fixture lines into messages below the size limit.
func scheduleChunks(fixtures []fixture.Fixture, kickoff func(fixture.Fixture) string) []string {
	var chunks []string

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for _, f := range fixtures {
		line := kickoff(f) + " — " + f.LeagueLabel() + ": " + f.HomeTeam + " vs " + f.AwayTeam + "\n"
		if buf.Len() > 0 && buf.Len()+len(line) > maxMessageLen {
			chunks = append(chunks, buf.String())
			buf.Reset()
		}
		_, _ = buf.WriteString(line)
	}
	if buf.Len() > 0 {
		chunks = append(chunks, buf.String())
	}
	return chunks
}

func (b *Bot) sendText(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Warn("send message failed", "chat_id", chatID, "error", err)
	}
}

// sendStatus sends the progress message whose text is edited in place as
// the pipeline advances. Returns 0 when the send failed; edits on id 0 are
// silently dropped by the transport, which is acceptable here.
func (b *Bot) sendStatus(chatID int64, text string) int {
	sent, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		b.logger.Warn("send status failed", "chat_id", chatID, "error", err)
		return 0
	}
	return sent.MessageID
}

func (b *Bot) editStatus(chatID int64, messageID int, text string) {
	if messageID == 0 {
		return
	}
	if _, err := b.api.Send(tgbotapi.NewEditMessageText(chatID, messageID, text)); err != nil {
		b.logger.Warn("edit status failed", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) answerCallback(callbackID, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		b.logger.Warn("answer callback failed", "error", err)
	}
}
