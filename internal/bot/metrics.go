package bot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	messagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tasasbot_bot_messages_total",
		Help: "Inbound text messages by classified intent",
	}, []string{"intent"})

	messagesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tasasbot_bot_messages_dropped_total",
		Help: "Messages dropped by the per-chat rate limit",
	})

	replyFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tasasbot_bot_reply_failures_total",
		Help: "Replies the Telegram API did not accept",
	})
)
