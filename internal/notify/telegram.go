package notify

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"wordaday/internal/domain"
)

// TelegramAnnouncer posts each new word of the day to a Telegram channel.
// Announcements are best-effort: a send failure is logged and dropped.
type TelegramAnnouncer struct {
	bot    *tele.Bot
	chatID int64
	logger *zap.Logger
}

// NewTelegramAnnouncer creates an announcer posting to the given chat.
func NewTelegramAnnouncer(token string, chatID int64, logger *zap.Logger) (*TelegramAnnouncer, error) {
	bot, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &TelegramAnnouncer{bot: bot, chatID: chatID, logger: logger}, nil
}

// Announce posts the new word, and the archived day's winners when a day
// was closed out.
func (a *TelegramAnnouncer) Announce(word domain.Word, archived *domain.ArchivedWord) {
	msg := formatAnnouncement(word, archived)
	if _, err := a.bot.Send(tele.ChatID(a.chatID), msg); err != nil {
		a.logger.Warn("Failed to announce new word",
			zap.String("word", word.Word),
			zap.Error(err),
		)
		return
	}
	a.logger.Info("Announced new word", zap.String("word", word.Word))
}

func formatAnnouncement(word domain.Word, archived *domain.ArchivedWord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📖 Word of the day: %s\n", word.Word)
	if word.AIMeaning != "" {
		fmt.Fprintf(&b, "%s\n", word.AIMeaning)
	}
	b.WriteString("\nWhat do you think it means? Come submit your interpretation!")

	if archived != nil {
		fmt.Fprintf(&b, "\n\n🏆 Winning definitions for %s:\n", archived.Word)
		for _, def := range archived.WinningDefinitions {
			fmt.Fprintf(&b, "• %s\n", def)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
