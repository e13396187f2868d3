package render

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramSurface posts bet cards to one Telegram chat. Handles encode
// "chatID:messageID" so an edit can address its message after a restart.
type TelegramSurface struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramSurface(token string, chatID int64) (*TelegramSurface, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}
	bot.Debug = false
	if _, err := bot.GetMe(); err != nil {
		return nil, fmt.Errorf("telegram getMe: %w", err)
	}
	return &TelegramSurface{bot: bot, chatID: chatID}, nil
}

func (s *TelegramSurface) Post(_ context.Context, text string) (string, error) {
	msg := tgbotapi.NewMessage(s.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	sent, err := s.bot.Send(msg)
	if err != nil {
		return "", fmt.Errorf("telegram send: %w", err)
	}
	return fmt.Sprintf("%d:%d", s.chatID, sent.MessageID), nil
}

func (s *TelegramSurface) Edit(_ context.Context, handle, text string) error {
	chatID, messageID, err := parseHandle(handle)
	if err != nil {
		return err
	}
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdown
	if _, err := s.bot.Send(edit); err != nil {
		return fmt.Errorf("telegram edit: %w", err)
	}
	return nil
}

func parseHandle(handle string) (chatID int64, messageID int, err error) {
	parts := strings.SplitN(handle, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("bad render handle %q", handle)
	}
	chatID, err = strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad render handle %q", handle)
	}
	messageID, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("bad render handle %q", handle)
	}
	return chatID, messageID, nil
}

// PhotoHandler receives the raw bytes of a slip photo sent to the bot.
type PhotoHandler func(ctx context.Context, image []byte, caption string)

// ListenPhotos long-polls the bot for photo messages and hands each
// largest-size photo to the handler. Blocks until ctx is cancelled.
func (s *TelegramSurface) ListenPhotos(ctx context.Context, handler PhotoHandler) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := s.bot.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			s.bot.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || len(update.Message.Photo) == 0 {
				continue
			}
			// last photo size is the largest
			photo := update.Message.Photo[len(update.Message.Photo)-1]
			data, err := s.downloadFile(ctx, photo.FileID)
			if err != nil {
				log.Printf("[render] photo download failed: %v", err)
				continue
			}
			handler(ctx, data, update.Message.Caption)
		}
	}
}

func (s *TelegramSurface) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	url, err := s.bot.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("resolving file %s: %w", fileID, err)
	}
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("downloading file: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
