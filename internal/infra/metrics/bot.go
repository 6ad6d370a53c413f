package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		botUpdates,
		eventsStored,
		postsGenerated,
	)
}

var (
	botUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_updates_total",
			Help: "Handled Telegram updates per kind (start/generate/text) and outcome.",
		},
		[]string{"kind", "outcome"},
	)

	eventsStored = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_events_stored_total",
			Help: "Day events persisted for users.",
		},
	)

	postsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_posts_generated_total",
			Help: "Generated posts per outcome (ok/empty/error).",
		},
		[]string{"outcome"},
	)
)

func IncUpdate(kind string, ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	botUpdates.WithLabelValues(norm(kind), outcome).Inc()
}

func IncEventStored() { eventsStored.Inc() }

func IncPostGenerated(outcome string) {
	postsGenerated.WithLabelValues(norm(outcome)).Inc()
}
