package ltptracker

type QuoteSourceMock struct {
	calls [][]string
	fn    func(keys []string) (any, error)
}

func (m *QuoteSourceMock) FetchLTP(keys []string) (any, error) {
	copied := make([]string, len(keys))
	copy(copied, keys)
	m.calls = append(m.calls, copied)

	if m.fn == nil {
		return nil, nil
	}
	return m.fn(keys)
}

type ChainSourceMock struct {
	calls int
	raw   any
	err   error
}

func (m *ChainSourceMock) FetchOptionChain(symbol string, expiry string) (any, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.raw, nil
}

type AlerterMock struct {
	msgs []string
	err  error
}

func (m *AlerterMock) SendMessage(msg string) error {
	m.msgs = append(m.msgs, msg)
	return m.err
}
