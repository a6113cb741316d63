package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"cekkuota-bot/internal/config"
	"cekkuota-bot/internal/domain/model"
	"cekkuota-bot/internal/domain/ports/adapter"
	"cekkuota-bot/internal/domain/ports/repository"
	"cekkuota-bot/internal/infra/logging"
	"cekkuota-bot/internal/infra/metrics"
)

const (
	// longPollWait is the server-side wait passed to the transport fetch.
	longPollWait = 50 // seconds

	// fetchBackoff applies after a failed fetch; after
	// fetchFailureEscalation consecutive failures the loop slows down to
	// fetchBackoffSlow instead. The loop never terminates on fetch failure.
	fetchBackoff           = 1 * time.Second
	fetchBackoffSlow       = 10 * time.Second
	fetchFailureEscalation = 5
)

// Compile-time check
var _ UpdateLoop = (*pollUC)(nil)

// UpdateLoop is the daemon entry point: a cooperative long-poll cycle that
// feeds authorized updates to the command dispatcher and advances a durable
// cursor. Only ctx cancellation stops it.
type UpdateLoop interface {
	Run(ctx context.Context) error
}

type pollUC struct {
	cfg        *config.Config
	bot        adapter.Messenger
	dispatcher CommandDispatcher
	cursors    repository.CursorStore
	sleep      func(time.Duration)
	log        *zerolog.Logger

	allowed map[string]struct{}
}

func NewPollUseCase(cfg *config.Config, bot adapter.Messenger, dispatcher CommandDispatcher, cursors repository.CursorStore, logger *zerolog.Logger) *pollUC {
	allowed := make(map[string]struct{}, len(cfg.Bot.ChatIDs))
	for _, id := range cfg.Bot.ChatIDs {
		allowed[id] = struct{}{}
	}
	return &pollUC{
		cfg:        cfg,
		bot:        bot,
		dispatcher: dispatcher,
		cursors:    cursors,
		sleep:      time.Sleep,
		log:        logger,
		allowed:    allowed,
	}
}

// Run executes the loop until ctx is cancelled. Startup clears any webhook
// and seeds the cursor from the most recent available update; messages sent
// while the daemon was offline are dropped on purpose, a restart must not
// replay a backlog flood at the recipients.
func (p *pollUC) Run(ctx context.Context) error {
	if err := p.bot.ClearWebhook(ctx); err != nil {
		p.log.Warn().Err(err).Msg("clear webhook failed")
	}

	cursor := p.bootstrapCursor(ctx)
	metrics.SetUpdateCursor(cursor)
	p.log.Info().Int64("cursor", cursor).Msg("update loop started")

	p.announceOnline(ctx)

	failures := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		updates, err := p.bot.FetchUpdates(ctx, cursor+1, longPollWait)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			failures++
			metrics.IncPollFailure()
			delay := fetchBackoff
			if failures >= fetchFailureEscalation {
				delay = fetchBackoffSlow
			}
			p.log.Warn().Err(err).Int("consecutive", failures).Dur("backoff", delay).Msg("fetch updates failed")
			p.sleep(delay)
			continue
		}
		failures = 0

		if len(updates) == 0 {
			continue
		}
		for _, upd := range updates {
			if upd.UpdateID > cursor {
				cursor = upd.UpdateID
			}
			p.handleUpdate(ctx, upd)
		}
		// One write per batch keeps persistence cheap while still being
		// durable before the next poll.
		p.cursors.Save(cursor)
		metrics.SetUpdateCursor(cursor)
	}
}

// bootstrapCursor adopts the most recent update id the transport knows
// about, falling back to the persisted cursor when the probe yields nothing.
func (p *pollUC) bootstrapCursor(ctx context.Context) int64 {
	persisted := p.cursors.Load()
	id, ok, err := p.bot.LatestUpdateID(ctx)
	if err != nil {
		p.log.Warn().Err(err).Msg("cursor bootstrap probe failed, using persisted cursor")
		return persisted
	}
	if !ok {
		return persisted
	}
	if id > persisted {
		return id
	}
	return persisted
}

func (p *pollUC) announceOnline(ctx context.Context) {
	for _, chatID := range p.cfg.Bot.ChatIDs {
		if err := p.bot.SendText(ctx, chatID, "🤖 Bot online. Ketik /menu"); err != nil {
			p.log.Warn().Err(err).Str("chat_id", chatID).Msg("online notice failed")
		}
	}
}

// handleUpdate filters and dispatches a single update. Dispatch errors are
// contained here so one malformed update cannot stop the loop.
func (p *pollUC) handleUpdate(ctx context.Context, upd model.Update) {
	if !upd.Dispatchable() {
		metrics.IncUpdateSkipped("no_payload")
		return
	}
	if !p.allowedChat(upd.ChatID) {
		metrics.IncUpdateSkipped("unauthorized")
		return
	}

	ctx = logging.WithTraceID(ctx, uuid.NewString())
	if err := p.dispatcher.Dispatch(ctx, upd.ChatID, upd.Text); err != nil {
		logging.With(ctx, p.log).Error().Err(err).Int64("update_id", upd.UpdateID).Msg("dispatch failed")
		return
	}
	metrics.IncUpdateProcessed()
}

func (p *pollUC) allowedChat(chatID string) bool {
	if p.cfg.Bot.AllowAnyChat {
		return true
	}
	_, ok := p.allowed[chatID]
	return ok
}
