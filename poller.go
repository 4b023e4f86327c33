package ltptracker

import (
	"os"
	"strings"
	"sync/atomic"
	"time"

	"ltptracker/internal/quote"

	"github.com/rs/zerolog"
)

const (
	defaultBatchSize  = 4
	defaultRetryCount = 2
	defaultRetryDelay = time.Second
	defaultInterval   = 60 * time.Second
)

// Poller drives the fetch-extract-decide cycle: it chunks the configured
// instrument keys into fixed-size batches, retries instruments whose price
// could not be extracted, and hands each cycle's results to the Tracker.
type Poller struct {
	src        QuoteSource
	tracker    *Tracker
	keys       []string
	batchSize  int
	retryCount int
	retryDelay time.Duration
	interval   time.Duration

	cycles    atomic.Uint64
	lastCycle atomic.Int64 // unix seconds

	lg zerolog.Logger
}

type PollerConfig struct {
	Source  QuoteSource
	Tracker *Tracker
	Keys    []string

	BatchSize  int           // 미지정 시 4
	RetryCount int           // 미지정 시 2
	RetryDelay time.Duration // 미지정 시 1초
	Interval   time.Duration // 미지정 시 60초
}

func NewPoller(conf PollerConfig) *Poller {

	p := &Poller{
		src:        conf.Source,
		tracker:    conf.Tracker,
		keys:       conf.Keys,
		batchSize:  conf.BatchSize,
		retryCount: conf.RetryCount,
		retryDelay: conf.RetryDelay,
		interval:   conf.Interval,
		lg:         zerolog.New(os.Stdout).With().Str("Module", "Poller").Timestamp().Logger(),
	}
	if p.batchSize <= 0 {
		p.batchSize = defaultBatchSize
	}
	if p.retryCount <= 0 {
		p.retryCount = defaultRetryCount
	}
	if p.retryDelay <= 0 {
		p.retryDelay = defaultRetryDelay
	}
	if p.interval <= 0 {
		p.interval = defaultInterval
	}
	return p
}

// Run loops forever. A single cycle's failure never stops the loop; the only
// way out is an empty key configuration, which logs and returns before the
// first cycle.
func (p *Poller) Run() {

	if len(p.keys) == 0 {
		p.lg.Error().Msg("No instrument keys configured")
		return
	}

	p.lg.Info().Int("keys", len(p.keys)).Str("keys_list", joinPreview(p.keys)).Msg("Starting poller")

	for {
		p.RunCycle()
		time.Sleep(p.interval)
	}
}

// RunCycle performs one fetch-extract-decide-dispatch pass. Panics inside a
// cycle are recovered and logged so the loop (or the manual trigger) stays
// alive.
func (p *Poller) RunCycle() (quotes []quote.Quote) {

	defer func() {
		if r := recover(); r != nil {
			p.lg.Error().Interface("panic", r).Msg("Error in poll cycle")
		}
	}()

	quotes = p.PollOnce()
	p.tracker.Notify(quotes)

	p.cycles.Add(1)
	p.lastCycle.Store(time.Now().Unix())

	return quotes
}

// PollOnce fetches every configured instrument once, in configured order.
// Batch fetch failures degrade to null prices for the affected instruments;
// nulls are then retried individually up to the configured count.
func (p *Poller) PollOnce() []quote.Quote {

	results := make([]quote.Quote, 0, len(p.keys))
	for start := 0; start < len(p.keys); start += p.batchSize {
		end := min(start+p.batchSize, len(p.keys))
		results = append(results, p.pollBatch(p.keys[start:end])...)
	}

	p.retryMissing(results)
	return results
}

// pollBatch issues one fetch for a batch and extracts a quote per key.
// A failed fetch is treated as an empty response, never as a cycle abort.
func (p *Poller) pollBatch(keys []string) []quote.Quote {

	payloads := map[string]any{}

	raw, err := p.src.FetchLTP(keys)
	if err != nil {
		p.lg.Error().Err(err).Strs("keys", keys).Msg("Batch fetch failed")
	} else {
		payloads = quote.Normalize(raw)
	}

	out := make([]quote.Quote, 0, len(keys))
	for _, k := range keys {
		payload := payloads[k]
		out = append(out, quote.Quote{
			Key:    k,
			Symbol: quote.SymbolOf(k, payload),
			Ltp:    quote.ExtractLTP(payload),
		})
	}
	return out
}

// retryMissing resolves retries into a separate map keyed by result index and
// merges them back afterwards, instead of mutating the slice mid-iteration.
func (p *Poller) retryMissing(results []quote.Quote) {

	missing := make([]int, 0)
	for i, q := range results {
		if q.Ltp == nil {
			missing = append(missing, i)
		}
	}
	if len(missing) == 0 {
		return
	}

	resolved := make(map[int]quote.Quote)
	for _, i := range missing {
		key := results[i].Key
		for attempt := 1; attempt <= p.retryCount; attempt++ {
			time.Sleep(p.retryDelay)
			q := p.pollBatch([]string{key})[0]
			if q.Ltp != nil {
				resolved[i] = q
				break
			}
			p.lg.Warn().Str("key", key).Int("attempt", attempt).Msg("Retry returned no price")
		}
	}

	for i, q := range resolved {
		results[i] = q
	}
}

// Status reports the completed cycle count and the last cycle's finish time.
func (p *Poller) Status() (uint64, time.Time) {
	return p.cycles.Load(), time.Unix(p.lastCycle.Load(), 0)
}

// Keys returns the configured instrument keys in display order.
func (p *Poller) Keys() []string {
	return p.keys
}

func joinPreview(keys []string) string {
	const limit = 8
	if len(keys) <= limit {
		return strings.Join(keys, ", ")
	}
	return strings.Join(keys[:limit], ", ") + ", ..."
}
