package notify

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const telegramAPIBase = "https://api.telegram.org"

// Telegram posts messages to a chat through the Bot API. Errors are logged
// and discarded; a dead bot never blocks or aborts a ledger operation.
type Telegram struct {
	botToken string
	chatID   string
	baseURL  string
	client   *http.Client
	logger   *slog.Logger
}

// NewTelegram creates a Telegram notifier.
func NewTelegram(botToken, chatID string, logger *slog.Logger) *Telegram {
	return &Telegram{
		botToken: botToken,
		chatID:   chatID,
		baseURL:  telegramAPIBase,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
	}
}

// Notify sends the text as a chat message. Best-effort.
func (t *Telegram) Notify(ctx context.Context, text string) {
	endpoint := t.baseURL + "/bot" + t.botToken + "/sendMessage"
	form := url.Values{
		"chat_id": {t.chatID},
		"text":    {text},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		t.logger.Warn("telegram notification skipped", slog.String("error", err.Error()))
		return
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		t.logger.Warn("telegram notification failed", slog.String("error", err.Error()))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.logger.Warn("telegram notification rejected", slog.Int("status", resp.StatusCode))
	}
}
