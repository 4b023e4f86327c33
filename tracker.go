package ltptracker

import (
	"fmt"
	"math"
	"os"
	"strings"
	"sync"
	"time"

	"ltptracker/internal/quote"

	"github.com/rs/zerolog"
)

const updateHeaderForm = "📈 Upstox LTP Update — %s"
const staleNoteForm = "⚠️ %d/%d 종목 가격 미수신"

// Tracker keeps the last successfully extracted price per instrument and
// decides once per cycle whether the batch is worth a notification.
// The cache lives for the process lifetime only.
type Tracker struct {
	alerter    Alerter
	threshold  float64 // percent. 0 이하면 값이 다르기만 해도 변동으로 간주
	alwaysSend bool
	mu         sync.RWMutex
	last       map[string]float64
	lg         zerolog.Logger
}

type TrackerConfig struct {
	Alerter      Alerter
	ThresholdPct float64
	AlwaysSend   bool
}

func NewTracker(conf TrackerConfig) *Tracker {
	return &Tracker{
		alerter:    conf.Alerter,
		threshold:  conf.ThresholdPct,
		alwaysSend: conf.AlwaysSend,
		last:       make(map[string]float64),
		lg:         zerolog.New(os.Stdout).With().Str("Module", "Tracker").Timestamp().Logger(),
	}
}

// Notify renders one line per quote in input order, updates the cache for
// every extracted price, and dispatches a single message when any instrument
// moved past the threshold (or the always-send flag is set). Dispatch
// failures are logged and swallowed; they never touch the cache.
func (t *Tracker) Notify(quotes []quote.Quote) {

	lines := make([]string, 0, len(quotes))
	changed := false
	missing := 0

	t.mu.Lock()
	for _, q := range quotes {
		if q.Ltp == nil {
			lines = append(lines, q.Symbol+": NA")
			missing++
			continue
		}

		cur := *q.Ltp
		prev, exists := t.last[q.Key]
		if !exists || t.moved(prev, cur) {
			changed = true
		}
		t.last[q.Key] = cur // 발송 여부와 무관하게 항상 최신화

		lines = append(lines, fmt.Sprintf("%s: %.2f", q.Symbol, cur))
	}
	t.mu.Unlock()

	if !changed && !t.alwaysSend {
		t.lg.Info().Int("instruments", len(quotes)).Msg("No notable move. Skipping dispatch")
		return
	}

	ts := time.Now().Format("2006-01-02 15:04:05")
	msg := fmt.Sprintf(updateHeaderForm, ts) + "\n" + strings.Join(lines, "\n")
	if len(quotes) > 0 && missing >= max(3, len(quotes)/2) {
		msg += "\n" + fmt.Sprintf(staleNoteForm, missing, len(quotes))
	}

	if err := t.alerter.SendMessage(msg); err != nil {
		t.lg.Warn().Err(err).Msg("Telegram send failed")
		return
	}
	t.lg.Info().Int("instruments", len(quotes)).Msg("Sent update")
}

// moved reports whether cur counts as a notify-worthy change from prev.
func (t *Tracker) moved(prev float64, cur float64) bool {
	if t.threshold <= 0 {
		return cur != prev
	}
	if prev == 0 {
		return cur != 0
	}
	return math.Abs(cur-prev)/math.Abs(prev)*100 >= t.threshold
}

// Snapshot copies the current last-value cache for read-only use.
func (t *Tracker) Snapshot() map[string]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[string]float64, len(t.last))
	for k, v := range t.last {
		out[k] = v
	}
	return out
}
