package notify

import (
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"studyplan/internal"
	"studyplan/ports"
)

// TelegramNotifier delivers reminders to a Telegram chat. Dedup tags map to
// message ids: re-sending a tag edits the previous message in place, so
// repeated hourly reminders coalesce instead of stacking.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	log    *internal.Logger

	mu         sync.Mutex
	tagMessage map[string]int
}

// NewTelegramNotifier connects the bot. An empty token or zero chat id means
// the channel is unconfigured; use the log notifier instead.
func NewTelegramNotifier(token string, chatID int64, log *internal.Logger) (*TelegramNotifier, error) {
	if token == "" || chatID == 0 {
		return nil, fmt.Errorf("telegram notifier requires a token and chat id")
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to connect telegram bot: %w", err)
	}
	if log == nil {
		log = internal.DefaultLogger
	}
	return &TelegramNotifier{
		bot:        bot,
		chatID:     chatID,
		log:        log,
		tagMessage: make(map[string]int),
	}, nil
}

// Permission reports granted: a connected bot may always deliver.
func (n *TelegramNotifier) Permission(ctx context.Context) ports.Permission {
	return ports.PermissionGranted
}

// Send delivers one notification, replacing any prior message with the same tag.
func (n *TelegramNotifier) Send(ctx context.Context, notification ports.Notification) error {
	text := notification.Title
	if notification.Body != "" {
		text += "\n" + notification.Body
	}

	n.mu.Lock()
	prevID, seen := n.tagMessage[notification.Tag]
	n.mu.Unlock()

	if seen && notification.Tag != "" {
		edit := tgbotapi.NewEditMessageText(n.chatID, prevID, text)
		if _, err := n.bot.Send(edit); err == nil {
			return nil
		}
		// Edit can fail when the old message was deleted; fall through and
		// send a fresh one.
		n.log.Debug("telegram edit failed for tag %s, sending new message", notification.Tag)
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	sent, err := n.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("failed to send telegram notification: %w", err)
	}
	if notification.Tag != "" {
		n.mu.Lock()
		n.tagMessage[notification.Tag] = sent.MessageID
		n.mu.Unlock()
	}
	return nil
}
