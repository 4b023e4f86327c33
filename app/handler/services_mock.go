package handler

import (
	"fmt"
	"time"

	"ltptracker/internal/quote"

	"github.com/kr/pretty"
)

type SnapshotRetrieverMock struct {
	snap map[string]float64
}

func (mock SnapshotRetrieverMock) Snapshot() map[string]float64 {
	fmt.Println("Snapshot Called")
	return mock.snap
}

type CycleRunnerMock struct {
	quotes []quote.Quote
	keys   []string
	cycles uint64
}

func (mock *CycleRunnerMock) RunCycle() []quote.Quote {
	fmt.Println("RunCycle Called")
	mock.cycles++
	return mock.quotes
}

func (mock *CycleRunnerMock) Status() (uint64, time.Time) {
	return mock.cycles, time.Now()
}

func (mock *CycleRunnerMock) Keys() []string {
	return mock.keys
}

func (mock *CycleRunnerMock) prettyPrint() {
	fmt.Printf("%# v\n", pretty.Formatter(mock.quotes))
}
