package ltptracker

// QuoteSource is the HTTP quote API collaborator. The returned value is the
// decoded JSON body in whatever shape the API chose to answer with.
type QuoteSource interface {
	FetchLTP(keys []string) (any, error)
}

// ChainSource fetches an option chain for one underlying and expiry.
type ChainSource interface {
	FetchOptionChain(symbol string, expiry string) (any, error)
}

// Alerter delivers one text message to the notification channel.
type Alerter interface {
	SendMessage(msg string) error
}
