package bot

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"

	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"

	"tasasbot/internal/command"
	"tasasbot/internal/exchange"
	"tasasbot/internal/rates"
	"tasasbot/internal/reply"
)

var errInternal = errors.New("internal error")

// RateSource yields the current rate table.
type RateSource interface {
	Table(ctx context.Context) (rates.Table, error)
}

// Router answers every inbound text message: it classifies the text, runs the
// matching lookup and sends exactly one reply. Failures become reply text.
type Router struct {
	rates     RateSource
	local     exchange.API
	formatter *reply.Formatter
	limiter   *ChatLimiter
	logger    *slog.Logger
}

func NewRouter(rs RateSource, local exchange.API, f *reply.Formatter, limiter *ChatLimiter, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		rates:     rs,
		local:     local,
		formatter: f,
		limiter:   limiter,
		logger:    logger.With("component", "bot"),
	}
}

func (r *Router) Handle(ctx context.Context, s Sender, update *models.Update) {
	if update == nil || update.Message == nil || update.Message.Text == "" {
		return
	}
	chatID := update.Message.Chat.ID
	log := r.logger.With(
		"update_id", update.ID,
		"chat_id", chatID,
		"trace_id", uuid.NewString(),
	)

	defer func() {
		if p := recover(); p != nil {
			log.Error("handler panic", slog.Any("panic", p), slog.String("stack", string(debug.Stack())))
			if err := sendWithMenu(ctx, s, chatID, r.formatter.Error(errInternal)); err != nil {
				replyFailures.Inc()
				log.Error("send reply", slog.Any("error", err))
			}
		}
	}()

	if !r.limiter.Allow(chatID) {
		messagesDropped.Inc()
		log.Warn("message dropped by rate limit")
		return
	}

	intent := command.Parse(update.Message.Text)
	name := command.Name(intent)
	messagesTotal.WithLabelValues(name).Inc()
	log = log.With("intent", name)

	text, err := r.respond(ctx, intent)
	if err != nil {
		if userError(err) {
			log.Info("request rejected", slog.Any("error", err))
		} else {
			log.Error("request failed", slog.Any("error", err))
		}
		text = r.formatter.Error(err)
	}

	if err := sendWithMenu(ctx, s, chatID, text); err != nil {
		replyFailures.Inc()
		log.Error("send reply", slog.Any("error", err))
		return
	}
	log.Debug("reply sent")
}

func (r *Router) respond(ctx context.Context, intent command.Intent) (string, error) {
	switch i := intent.(type) {
	case command.Help:
		return r.formatter.Help(r.origins(ctx)), nil
	case command.LocalRate:
		return r.localRate(ctx, i)
	case command.Conversion:
		return r.conversion(ctx, i)
	default:
		return r.formatter.Unrecognized(), nil
	}
}

// origins lists the table's origins, or nothing when the table cannot be
// loaded so that help still renders.
func (r *Router) origins(ctx context.Context) []string {
	t, err := r.rates.Table(ctx)
	if err != nil {
		r.logger.Warn("help without rate table", slog.Any("error", err))
		return nil
	}
	return t.Origins()
}

func (r *Router) localRate(ctx context.Context, i command.LocalRate) (string, error) {
	amount, hasAmount, err := i.Amount()
	if err != nil {
		return "", err
	}
	rs, err := r.local.Rates(ctx)
	if err != nil {
		return "", err
	}
	rate, err := exchange.Find(rs, kindName(i.Kind))
	if err != nil {
		return "", err
	}
	return r.formatter.LocalRate(rate, amount, hasAmount), nil
}

func (r *Router) conversion(ctx context.Context, i command.Conversion) (string, error) {
	req, err := i.Request()
	if err != nil {
		return "", err
	}
	t, err := r.rates.Table(ctx)
	if err != nil {
		return "", err
	}
	res, err := rates.Convert(req, t)
	if err != nil {
		return "", err
	}
	return r.formatter.Conversion(res), nil
}

func kindName(k command.Kind) string {
	if k == command.KindOfficial {
		return exchange.NameOfficial
	}
	return exchange.NameParallel
}

func userError(err error) bool {
	return errors.Is(err, rates.ErrInvalidAmount) ||
		rates.IsNotFound(err, rates.SideOrigin) ||
		rates.IsNotFound(err, rates.SideDestination)
}
