package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/phuslu/log"
)

// CommandHandler turns an incoming message into a reply.
type CommandHandler func(ctx context.Context, text string) string

// telegramUpdate represents a Telegram update from long polling.
type telegramUpdate struct {
	UpdateID int `json:"update_id"`
	Message  *struct {
		Text string `json:"text"`
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
	} `json:"message"`
}

// StartPolling long-polls for messages and answers each with handler.
// Blocks until ctx is cancelled.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler CommandHandler) {
	offset := 0
	client := &http.Client{Timeout: 35 * time.Second, Transport: t.Client.Transport}

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("telegram polling stopped")
			return
		default:
		}

		updates, err := t.poll(ctx, client, offset)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Warn().Err(err).Msg("telegram polling failed")
			sleep(ctx, 5*time.Second)
			continue
		}

		for _, update := range updates {
			offset = update.UpdateID + 1
			t.handleUpdate(ctx, update, handler)
		}
	}
}

func (t *TelegramNotifier) poll(ctx context.Context, client *http.Client, offset int) ([]telegramUpdate, error) {
	apiURL := fmt.Sprintf("%s?offset=%d&timeout=30", t.method("getUpdates"), offset)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create polling request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("read polling response: %w", err)
	}

	var result struct {
		OK     bool             `json:"ok"`
		Result []telegramUpdate `json:"result"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode polling response: %w", err)
	}
	return result.Result, nil
}

func (t *TelegramNotifier) handleUpdate(ctx context.Context, update telegramUpdate, handler CommandHandler) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}
	chatID := strconv.FormatInt(update.Message.Chat.ID, 10)
	if t.ChatID != "" && chatID != t.ChatID {
		log.Warn().Str("chat", chatID).Msg("ignoring message from unknown chat")
		return
	}

	text := strings.TrimSpace(update.Message.Text)
	log.Info().Str("chat", chatID).Str("text", text).Msg("received message")
	reply := handler(ctx, text)
	if reply == "" {
		return
	}

	reply, chart := ExtractChart(reply)
	if err := t.SendWithRetry(ctx, chatID, reply, 2); err != nil {
		log.Error().Err(err).Str("chat", chatID).Msg("send reply")
	}
	if chart != "" {
		if t.ChartDir != "" {
			chart = filepath.Join(t.ChartDir, filepath.Base(chart))
		}
		if err := t.SendDocument(ctx, chatID, chart, "Chart"); err != nil {
			log.Error().Err(err).Str("chart", chart).Msg("send chart")
		}
	}
}

func sleep(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
