package ltptracker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ltpResponse(prices map[string]float64) any {
	data := map[string]any{}
	for k, v := range prices {
		data[k] = map[string]any{"last_price": v, "trading_symbol": "SYM_" + k}
	}
	return map[string]any{"status": "success", "data": data}
}

func newTestPoller(src QuoteSource, keys []string, batchSize int) *Poller {
	return NewPoller(PollerConfig{
		Source:     src,
		Tracker:    NewTracker(TrackerConfig{Alerter: &AlerterMock{}}),
		Keys:       keys,
		BatchSize:  batchSize,
		RetryDelay: time.Millisecond,
	})
}

func TestPollOnceBatching(t *testing.T) {

	src := &QuoteSourceMock{fn: func(keys []string) (any, error) {
		prices := map[string]float64{}
		for i, k := range keys {
			prices[k] = float64(100 + i)
		}
		return ltpResponse(prices), nil
	}}

	p := newTestPoller(src, []string{"A", "B", "C"}, 2)
	quotes := p.PollOnce()

	// batch 분할 및 호출 순서
	assert.Equal(t, [][]string{{"A", "B"}, {"C"}}, src.calls)

	// 입력 순서 보존
	assert.Equal(t, 3, len(quotes))
	assert.Equal(t, "A", quotes[0].Key)
	assert.Equal(t, "B", quotes[1].Key)
	assert.Equal(t, "C", quotes[2].Key)

	// payload에서 display name 추출
	assert.Equal(t, "SYM_A", quotes[0].Symbol)
	assert.NotNil(t, quotes[0].Ltp)
}

func TestPollOnceRetriesMissingKey(t *testing.T) {

	t.Run("재시도 성공 시 값 채움", func(t *testing.T) {
		src := &QuoteSourceMock{}
		src.fn = func(keys []string) (any, error) {
			if len(keys) == 1 && keys[0] == "C" && len(src.calls) >= 2 {
				return ltpResponse(map[string]float64{"C": 300}), nil
			}
			// batch 응답에서 C 누락
			return ltpResponse(map[string]float64{"A": 100, "B": 200}), nil
		}

		p := newTestPoller(src, []string{"A", "B", "C"}, 4)
		quotes := p.PollOnce()

		// batch 1회 + C 단건 재시도 1회
		assert.Equal(t, 2, len(src.calls))
		assert.Equal(t, []string{"C"}, src.calls[1])
		assert.NotNil(t, quotes[2].Ltp)
		assert.Equal(t, 300.0, *quotes[2].Ltp)
	})

	t.Run("재시도 소진 시 null 유지", func(t *testing.T) {
		src := &QuoteSourceMock{fn: func(keys []string) (any, error) {
			return ltpResponse(map[string]float64{"A": 100}), nil
		}}

		p := newTestPoller(src, []string{"A", "B"}, 4)
		quotes := p.PollOnce()

		// batch 1회 + B 재시도 2회
		assert.Equal(t, 3, len(src.calls))
		assert.Nil(t, quotes[1].Ltp)
		assert.Equal(t, "B", quotes[1].Symbol)
	})
}

func TestPollOnceBatchFetchFailure(t *testing.T) {

	src := &QuoteSourceMock{fn: func(keys []string) (any, error) {
		return nil, errors.New("connection reset")
	}}

	p := newTestPoller(src, []string{"A", "B"}, 4)
	quotes := p.PollOnce()

	// 실패해도 cycle은 계속되고 전 종목 null 처리 후 재시도까지 수행
	assert.Equal(t, 2, len(quotes))
	assert.Nil(t, quotes[0].Ltp)
	assert.Nil(t, quotes[1].Ltp)
	assert.Equal(t, 1+2*2, len(src.calls))
}

func TestRunCycleRecovers(t *testing.T) {

	src := &QuoteSourceMock{fn: func(keys []string) (any, error) {
		panic("unexpected payload")
	}}

	p := newTestPoller(src, []string{"A"}, 4)

	assert.NotPanics(t, func() {
		p.RunCycle()
	})
}

func TestPollerStatus(t *testing.T) {

	src := &QuoteSourceMock{fn: func(keys []string) (any, error) {
		return ltpResponse(map[string]float64{"A": 1}), nil
	}}

	p := newTestPoller(src, []string{"A"}, 4)
	p.RunCycle()
	p.RunCycle()

	cycles, last := p.Status()
	assert.Equal(t, uint64(2), cycles)
	assert.WithinDuration(t, time.Now(), last, 5*time.Second)
}
