package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"cekkuota-bot/internal/config"
	"cekkuota-bot/internal/domain/ports/adapter"
	"cekkuota-bot/internal/infra/logging"
	"cekkuota-bot/internal/msisdn"
)

type CommandKind string

const (
	CmdHelp     CommandKind = "help"
	CmdPing     CommandKind = "ping"
	CmdSchedule CommandKind = "jadwal"
	CmdCheckAll CommandKind = "cek_all"
	CmdCheck    CommandKind = "cek"
	CmdUnknown  CommandKind = "unknown"
)

// Command is the tagged result of tokenizing one inbound text.
type Command struct {
	Kind CommandKind
	Args []string
}

// ParseCommand tokenizes free text into a Command: trim, split on
// whitespace, lower-case the first token, strip a bot-mention @suffix and a
// leading slash. Total over all input; anything unrecognized maps to
// CmdUnknown.
func ParseCommand(text string) Command {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) == 0 {
		return Command{Kind: CmdUnknown}
	}
	head := strings.ToLower(fields[0])
	if at := strings.Index(head, "@"); at >= 0 {
		head = head[:at]
	}
	head = strings.TrimPrefix(head, "/")

	args := fields[1:]
	switch head {
	case "start", "mbot", "menu":
		return Command{Kind: CmdHelp, Args: args}
	case "ping":
		return Command{Kind: CmdPing, Args: args}
	case "jadwal":
		return Command{Kind: CmdSchedule, Args: args}
	case "cek_all":
		return Command{Kind: CmdCheckAll, Args: args}
	case "cek":
		return Command{Kind: CmdCheck, Args: args}
	default:
		return Command{Kind: CmdUnknown}
	}
}

const helpText = "📋 *Menu*\n" +
	"/menu – daftar perintah\n" +
	"/cek `<msisdn>` – cek satu nomor\n" +
	"/cek_all – cek semua nomor di konfigurasi\n" +
	"/jadwal – lihat jadwal cron (5×/hari)\n" +
	"/ping – respons cepat\n"

// interCheckDelay spaces sequential upstream calls so the quota service is
// never hammered.
const interCheckDelay = 200 * time.Millisecond

// Compile-time check
var _ CommandDispatcher = (*commandUC)(nil)

// CommandDispatcher handles one inbound command per invocation. Stateless:
// each call is independent given (chatID, text). Authorization is enforced
// by the update loop before dispatch, never here.
type CommandDispatcher interface {
	Dispatch(ctx context.Context, chatID string, text string) error
}

type commandUC struct {
	cfg   *config.Config
	bot   adapter.Messenger
	quota adapter.QuotaChecker
	sleep func(time.Duration)
	log   *zerolog.Logger
}

func NewCommandUseCase(cfg *config.Config, bot adapter.Messenger, quota adapter.QuotaChecker, logger *zerolog.Logger) *commandUC {
	return &commandUC{cfg: cfg, bot: bot, quota: quota, sleep: time.Sleep, log: logger}
}

func (c *commandUC) Dispatch(ctx context.Context, chatID string, text string) error {
	ctx = logging.WithChatID(ctx, chatID)
	cmd := ParseCommand(text)

	switch cmd.Kind {
	case CmdHelp:
		return c.bot.SendText(ctx, chatID, helpText)
	case CmdPing:
		return c.bot.SendText(ctx, chatID, "pong ✅")
	case CmdSchedule:
		return c.bot.SendText(ctx, chatID, c.scheduleText())
	case CmdCheckAll:
		return c.checkAll(ctx, chatID)
	case CmdCheck:
		return c.checkOne(ctx, chatID, cmd.Args)
	default:
		return c.bot.SendText(ctx, chatID, "Perintah tidak dikenali. Ketik /menu")
	}
}

func (c *commandUC) scheduleText() string {
	var b strings.Builder
	b.WriteString("🕒 *Jadwal Cek (5×/hari)*\n")
	b.WriteString("TZ: `" + c.cfg.Quota.Timezone + "`\n")
	for _, s := range c.cfg.Quota.Schedules {
		b.WriteString("`" + s + "`\n")
	}
	b.WriteString("\nMSISDN:\n```\n")
	b.WriteString(strings.Join(c.cfg.Quota.MSISDNs, "\n"))
	b.WriteString("\n```")
	return b.String()
}

func (c *commandUC) checkAll(ctx context.Context, chatID string) error {
	if err := c.bot.SendText(ctx, chatID, "Oke, cek semua nomor…"); err != nil {
		logging.With(ctx, c.log).Warn().Err(err).Msg("send ack failed")
	}
	for _, number := range c.cfg.Quota.MSISDNs {
		if !msisdn.Valid(number) {
			if err := c.bot.SendText(ctx, chatID, "⚠️ Nomor tidak valid: `"+number+"`"); err != nil {
				logging.With(ctx, c.log).Warn().Err(err).Msg("send warning failed")
			}
			continue
		}
		status, body := c.quota.Check(ctx, number)
		if err := c.bot.SendText(ctx, chatID, Render(number, status, body)); err != nil {
			logging.With(ctx, c.log).Warn().Err(err).Str("msisdn", number).Msg("send report failed")
		}
		c.sleep(interCheckDelay)
	}
	return c.bot.SendText(ctx, chatID, "Selesai ✅")
}

func (c *commandUC) checkOne(ctx context.Context, chatID string, args []string) error {
	if len(args) == 0 {
		return c.bot.SendText(ctx, chatID, "Format: `/cek 0877xxxxxxxx`")
	}
	number := strings.TrimSpace(args[0])
	if !msisdn.Valid(number) {
		return c.bot.SendText(ctx, chatID, "⚠️ Nomor tidak valid. Gunakan 08xxxxxxxxxx / 628xxxxxxxxxx / +628xxxxxxxxxx")
	}
	if err := c.bot.SendText(ctx, chatID, "Cek kuota `"+number+"`…"); err != nil {
		logging.With(ctx, c.log).Warn().Err(err).Msg("send ack failed")
	}
	status, body := c.quota.Check(logging.WithMSISDN(ctx, number), number)
	return c.bot.SendText(ctx, chatID, Render(number, status, body))
}
