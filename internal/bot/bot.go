// Package bot runs the Telegram front end for the advisor. It translates
// chat commands into pipeline and store calls and renders the results as
// Markdown messages or PDF documents.
package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/hotelrisk/riskadvisor/internal/model"
	"github.com/hotelrisk/riskadvisor/internal/pipeline"
	"github.com/hotelrisk/riskadvisor/internal/store"
	"go.uber.org/zap"
)

// Bot is the Telegram transport.
type Bot struct {
	api      *tgbotapi.BotAPI
	pipeline *pipeline.Pipeline
	store    *store.Client
	cfg      model.TelegramConfig
	outDir   string
	logger   *zap.Logger
}

// New creates a Bot from configuration.
func New(cfg model.TelegramConfig, outDir string, p *pipeline.Pipeline, s *store.Client, logger *zap.Logger) (*Bot, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("telegram token is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("telegram connect: %w", err)
	}

	return &Bot{
		api:      api,
		pipeline: p,
		store:    s,
		cfg:      cfg,
		outDir:   outDir,
		logger:   logger,
	}, nil
}

// Run polls for updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("bot started", zap.String("username", b.api.Self.UserName))

	updateCfg := tgbotapi.NewUpdate(0)
	updateCfg.Timeout = b.cfg.PollTimeout
	updates := b.api.GetUpdatesChan(updateCfg)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("bot stopped")
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// send delivers text as one or more Markdown messages, splitting at the
// transport's length cap.
func (b *Bot) send(chatID int64, text string) {
	for _, chunk := range splitForTransport(text, b.cfg.MessageLimit) {
		msg := tgbotapi.NewMessage(chatID, chunk)
		msg.ParseMode = tgbotapi.ModeMarkdown
		if _, err := b.api.Send(msg); err != nil {
			// Markdown parse failures are common with odd record text.
			// Resend without formatting rather than dropping the reply.
			plain := tgbotapi.NewMessage(chatID, chunk)
			if _, err := b.api.Send(plain); err != nil {
				b.logger.Error("send message failed", zap.Error(err))
			}
		}
	}
}

func (b *Bot) sendDocument(chatID int64, path, caption string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
	doc.Caption = caption
	_, err := b.api.Send(doc)
	return err
}
