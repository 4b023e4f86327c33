package handler

import (
	"time"

	"ltptracker/internal/quote"
)

type SnapshotRetriever interface {
	Snapshot() map[string]float64
}

type CycleRunner interface {
	RunCycle() []quote.Quote
	Status() (uint64, time.Time)
	Keys() []string
}
