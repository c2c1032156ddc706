// Package notify announces finished catalog imports to a Telegram chat.
package notify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"exam-ingest/internal/config"
	"exam-ingest/internal/domain"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// maxMessageRunes is the Telegram limit for one text message.
const maxMessageRunes = 4096

// TelegramNotifier implements domain.Notifier.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *zap.Logger
}

var _ domain.Notifier = (*TelegramNotifier)(nil)

// NewTelegramNotifier authenticates the bot token against the Bot API.
func NewTelegramNotifier(cfg config.TelegramConfig, logger *zap.Logger) (*TelegramNotifier, error) {
	endpoint := cfg.APIEndpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	bot, err := tgbotapi.NewBotAPIWithClient(cfg.Token, endpoint, &http.Client{Timeout: 15 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	logger.Info("Telegram notifier ready", zap.String("bot", bot.Self.UserName), zap.Int64("chat_id", cfg.ChatID))
	return &TelegramNotifier{bot: bot, chatID: cfg.ChatID, logger: logger}, nil
}

// NotifyImportSummary sends one message describing results.
func (n *TelegramNotifier) NotifyImportSummary(ctx context.Context, results []*domain.ImportResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(n.chatID, FormatSummary(results))
	msg.DisableWebPagePreview = true
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send import summary: %w", err)
	}
	return nil
}

// FormatSummary renders the totals of a catalog import followed by one line per failed source.
func FormatSummary(results []*domain.ImportResult) string {
	var saved, duplicates, parseErrors, succeeded int
	var failures []string
	for _, r := range results {
		saved += r.Saved
		duplicates += r.Duplicates
		parseErrors += r.ParseErrors
		if r.Success {
			succeeded++
		} else {
			failures = append(failures, fmt.Sprintf("✗ %s [%s] %s", r.SourceURL, r.ErrorCode, r.Message))
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Import finished: %d/%d sources succeeded\n", succeeded, len(results))
	fmt.Fprintf(&sb, "Saved: %d, duplicates: %d, parse errors: %d", saved, duplicates, parseErrors)
	for _, f := range failures {
		sb.WriteString("\n")
		sb.WriteString(f)
	}
	return truncate(sb.String(), maxMessageRunes)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
