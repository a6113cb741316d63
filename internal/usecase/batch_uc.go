package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"cekkuota-bot/internal/config"
	"cekkuota-bot/internal/domain/ports/adapter"
	"cekkuota-bot/internal/infra/logging"
	"cekkuota-bot/internal/msisdn"
)

// Compile-time check
var _ BatchRunner = (*batchUC)(nil)

// BatchRunner is the one-shot entry point, intended to be triggered by an
// external timer (cron).
type BatchRunner interface {
	Run(ctx context.Context) error
}

type batchUC struct {
	cfg   *config.Config
	bot   adapter.Messenger
	quota adapter.QuotaChecker
	sleep func(time.Duration)
	log   *zerolog.Logger
}

func NewBatchUseCase(cfg *config.Config, bot adapter.Messenger, quota adapter.QuotaChecker, logger *zerolog.Logger) *batchUC {
	return &batchUC{cfg: cfg, bot: bot, quota: quota, sleep: time.Sleep, log: logger}
}

// Run checks every configured identifier and broadcasts each rendered result
// to all recipients. When required configuration is missing it aborts before
// any network call, naming the missing items.
func (b *batchUC) Run(ctx context.Context) error {
	if missing := b.cfg.MissingForBatch(); len(missing) > 0 {
		err := fmt.Errorf("missing configuration: %v", missing)
		b.log.Error().Strs("missing", missing).Msg("batch run aborted")
		return err
	}

	ctx = logging.WithTraceID(ctx, uuid.NewString())
	log := logging.With(ctx, b.log)
	log.Info().Int("msisdns", len(b.cfg.Quota.MSISDNs)).Int("recipients", len(b.cfg.Bot.ChatIDs)).Msg("batch run started")

	for _, number := range b.cfg.Quota.MSISDNs {
		if !msisdn.Valid(number) {
			b.broadcast(ctx, "⚠️ Nomor tidak valid: `"+number+"`")
			continue
		}
		status, body := b.quota.Check(logging.WithMSISDN(ctx, number), number)
		b.broadcast(ctx, Render(number, status, body))
		b.sleep(interCheckDelay)
	}

	log.Info().Msg("batch run finished")
	return nil
}

func (b *batchUC) broadcast(ctx context.Context, text string) {
	for _, chatID := range b.cfg.Bot.ChatIDs {
		if err := b.bot.SendText(ctx, chatID, text); err != nil {
			logging.With(ctx, b.log).Warn().Err(err).Str("chat_id", chatID).Msg("broadcast send failed")
		}
	}
}
