package ltptracker

import (
	"fmt"
	"os"

	"github.com/robfig/cron"
	"github.com/rs/zerolog"
)

// ChainTarget names one underlying whose option chain is watched. Targets
// without an expiry are skipped entirely.
type ChainTarget struct {
	Name   string
	Symbol string
	Expiry string
}

// ChainWatcher periodically fetches option chains and reports the strike
// count per target. No analytics, just fetch counts.
type ChainWatcher struct {
	src     ChainSource
	alerter Alerter
	targets []ChainTarget
	spec    string
	lg      zerolog.Logger
}

type ChainWatcherConfig struct {
	Source   ChainSource
	Alerter  Alerter
	Targets  []ChainTarget
	Schedule string // cron spec. 미지정 시 1분 간격
}

func NewChainWatcher(conf ChainWatcherConfig) *ChainWatcher {

	spec := conf.Schedule
	if spec == "" {
		spec = "@every 1m"
	}

	return &ChainWatcher{
		src:     conf.Source,
		alerter: conf.Alerter,
		targets: conf.Targets,
		spec:    spec,
		lg:      zerolog.New(os.Stdout).With().Str("Module", "ChainWatcher").Timestamp().Logger(),
	}
}

// Run schedules the watcher. Returns without scheduling when no target has
// an expiry configured.
func (w *ChainWatcher) Run() {

	active := 0
	for _, tg := range w.targets {
		if tg.Expiry != "" {
			active++
		}
	}
	if active == 0 {
		w.lg.Info().Msg("No chain targets with expiry configured. Watcher disabled")
		return
	}

	c := cron.New()
	c.AddFunc(w.spec, w.ChainEvent)
	c.Start()

	w.lg.Info().Int("targets", active).Str("spec", w.spec).Msg("Chain watcher scheduled")
}

// ChainEvent fetches every active target once and alerts the strike counts.
func (w *ChainWatcher) ChainEvent() {

	for _, tg := range w.targets {
		if tg.Expiry == "" {
			continue
		}

		raw, err := w.src.FetchOptionChain(tg.Symbol, tg.Expiry)
		if err != nil {
			w.lg.Warn().Err(err).Str("symbol", tg.Symbol).Msg("Error fetching chain")
			continue
		}

		n := countStrikes(raw)
		if err := w.alerter.SendMessage(fmt.Sprintf("%s Chain: %d strikes fetched", tg.Name, n)); err != nil {
			w.lg.Warn().Err(err).Msg("Telegram send failed")
		}
	}
}

// countStrikes counts rows only when the response carries a list under
// "data"; any other shape counts as zero.
func countStrikes(raw any) int {
	m, ok := raw.(map[string]any)
	if !ok {
		return 0
	}
	rows, ok := m["data"].([]any)
	if !ok {
		return 0
	}
	return len(rows)
}
