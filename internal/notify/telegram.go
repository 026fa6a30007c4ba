// Optional run-status notifications. A nil *Notifier is valid and does
// nothing, so callers never have to branch on whether Telegram is configured.

package notify

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewNotifier(token string, chatID int64) (*Notifier, error) {
	if token == "" || chatID == 0 {
		return nil, nil
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &Notifier{api: api, chatID: chatID}, nil
}

// RunSummary reports what one scrape run produced.
func (n *Notifier) RunSummary(years []string, jobRows, ppoCompanies int, elapsed time.Duration) error {
	if n == nil {
		return nil
	}
	msgText := fmt.Sprintf("✅ Placement scrape finished.\nYears: %s\nJob rows: %d\nPPO companies: %d\nDuration: %s",
		strings.Join(years, ", "), jobRows, ppoCompanies, elapsed.Round(time.Second))
	msg := tgbotapi.NewMessage(n.chatID, msgText)
	_, err := n.api.Send(msg)
	return err
}

// RunError reports a fatal run error.
func (n *Notifier) RunError(runErr error) error {
	if n == nil {
		return nil
	}
	msg := tgbotapi.NewMessage(n.chatID, fmt.Sprintf("❌ Placement scrape failed: %v", runErr))
	_, err := n.api.Send(msg)
	return err
}
