package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type QuoteHandler struct {
	r       SnapshotRetriever
	p       CycleRunner
	started time.Time
}

func NewQuoteHandler(r SnapshotRetriever, p CycleRunner) *QuoteHandler {
	return &QuoteHandler{
		r:       r,
		p:       p,
		started: time.Now(),
	}
}

func (h *QuoteHandler) InitRoute(app *fiber.App) {

	app.Get("/quotes", h.Quotes)
	app.Get("/instruments", h.Instruments)
	app.Get("/status", h.Status)
	app.Get("/poll", h.Poll)
}

type statusResponse struct {
	UptimeSec  int64  `json:"uptime_sec"`
	Cycles     uint64 `json:"cycles"`
	LastCycle  string `json:"last_cycle"`
	Instrument int    `json:"instruments"`
}

type quoteResponse struct {
	Key    string   `json:"key"`
	Symbol string   `json:"symbol"`
	Ltp    *float64 `json:"ltp"`
}

// Quotes returns the last successfully extracted price per instrument.
func (h *QuoteHandler) Quotes(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.r.Snapshot())
}

// Instruments returns the configured keys in display order.
func (h *QuoteHandler) Instruments(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.p.Keys())
}

func (h *QuoteHandler) Status(c *fiber.Ctx) error {

	cycles, last := h.p.Status()

	lastStr := ""
	if cycles > 0 {
		lastStr = last.Format("2006-01-02 15:04:05")
	}

	return c.Status(fiber.StatusOK).JSON(statusResponse{
		UptimeSec:  int64(time.Since(h.started).Seconds()),
		Cycles:     cycles,
		LastCycle:  lastStr,
		Instrument: len(h.p.Keys()),
	})
}

// Poll triggers one fetch-extract-decide-dispatch cycle immediately and
// returns the cycle's quotes in configured order.
func (h *QuoteHandler) Poll(c *fiber.Ctx) error {

	quotes := h.p.RunCycle()

	rtn := make([]quoteResponse, len(quotes))
	for i, q := range quotes {
		rtn[i] = quoteResponse{
			Key:    q.Key,
			Symbol: q.Symbol,
			Ltp:    q.Ltp,
		}
	}

	return c.Status(fiber.StatusOK).JSON(rtn)
}
