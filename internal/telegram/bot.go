package telegram

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/azizzya/zozh-bot/internal/clock"
	"github.com/azizzya/zozh-bot/internal/config"
	"github.com/azizzya/zozh-bot/internal/errors"
	"github.com/azizzya/zozh-bot/internal/meal"
	"github.com/azizzya/zozh-bot/internal/ops"
)

// API is the subset of *tgbotapi.BotAPI used by the bot.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot receives meal messages over Telegram long polling and delivers
// daily summaries. It implements ops.Notifier.
type Bot struct {
	api   API
	db    *sql.DB
	cfg   *config.Config
	loc   *time.Location
	clock clock.Clock

	wg sync.WaitGroup
}

var _ ops.Notifier = (*Bot)(nil)

// NewAPI connects to the Telegram Bot API with token.
func NewAPI(token string) (*tgbotapi.BotAPI, error) {
	if token == "" {
		return nil, errors.NewInvalidRequest(config.EnvBotToken + " not set")
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	api.Debug = false
	return api, nil
}

// NewBot creates a Bot. A nil loc means time.Local.
func NewBot(api API, database *sql.DB, cfg *config.Config, loc *time.Location, c clock.Clock) *Bot {
	if loc == nil {
		loc = time.Local
	}
	return &Bot{api: api, db: database, cfg: cfg, loc: loc, clock: c}
}

// Run polls for updates until ctx is cancelled, handling each on its own
// goroutine. Handlers already started are allowed to finish before Run
// returns.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.PollTimeoutSeconds

	updates := b.api.GetUpdatesChan(u)
	log.Info().Msg("Telegram bot started")

	// In-flight handlers outlive shutdown so a stored meal still gets its reply.
	handlerCtx := context.WithoutCancel(ctx)
	defer b.wg.Wait()

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			log.Info().Msg("Telegram bot stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.wg.Add(1)
			go func() {
				defer b.wg.Done()
				b.HandleUpdate(handlerCtx, update)
			}()
		}
	}
}

// HandleUpdate processes one update synchronously.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return
	}

	switch {
	case msg.IsCommand():
		b.handleCommand(ctx, msg)
	case msg.Text != "":
		b.handleMeal(ctx, msg)
	default:
		b.reply(msg, meal.FormatHint)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start", "help":
		b.reply(msg, meal.HelpText)

	case "today":
		out, err := ops.DayTotal(ctx, b.db, ops.DayTotalInput{
			UserID:   msg.From.ID,
			Day:      b.clock.Now(),
			Location: b.loc,
		})
		if err != nil {
			log.Error().Err(err).Int64("user_id", msg.From.ID).Msg("Failed to compute day total")
			return
		}
		b.reply(msg, out.Text)

	default:
		b.reply(msg, "Неизвестная команда. /help — справка.")
	}
}

func (b *Bot) handleMeal(ctx context.Context, msg *tgbotapi.Message) {
	out, err := ops.LogMeal(ctx, b.db, ops.LogInput{
		UserID:     msg.From.ID,
		Text:       msg.Text,
		ReceivedAt: b.clock.Now(),
		Location:   b.loc,
	})
	if errors.Is(err, errors.ErrEmptyMeal) {
		b.reply(msg, meal.FormatHint)
		return
	}
	if err != nil {
		log.Error().Err(err).Int64("user_id", msg.From.ID).Msg("Failed to log meal")
		return
	}

	log.Debug().Int64("user_id", msg.From.ID).Str("meal_id", out.ID).
		Int("items", len(out.Items)).Float64("calories", out.TotalCalories).Msg("Meal logged")
	b.reply(msg, out.Reply)
}

// Notify sends text to the user's private chat.
func (b *Bot) Notify(_ context.Context, userID int64, text string) error {
	m := tgbotapi.NewMessage(userID, text)
	m.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(m); err != nil {
		return fmt.Errorf("send to %d: %w", userID, err)
	}
	return nil
}

func (b *Bot) reply(msg *tgbotapi.Message, text string) {
	m := tgbotapi.NewMessage(msg.Chat.ID, text)
	m.ParseMode = tgbotapi.ModeMarkdown
	m.ReplyToMessageID = msg.MessageID
	if _, err := b.api.Send(m); err != nil {
		log.Warn().Err(err).Int64("chat_id", msg.Chat.ID).Msg("Failed to send reply")
	}
}
