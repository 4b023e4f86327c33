package main

import (
	"ltptracker"
	"ltptracker/app"
	"ltptracker/bot"
	"ltptracker/config"
	"ltptracker/upstox"

	"github.com/rs/zerolog"
)

func main() {

	conf, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	level, err := conf.LogLevel()
	if err != nil {
		panic(err)
	}
	zerolog.SetGlobalLevel(level)

	botConf, err := conf.BotConfig()
	if err != nil {
		panic(err)
	}

	teleBot, err := bot.NewTeleBot(botConf)
	if err != nil {
		panic(err)
	}

	client := upstox.NewClient(conf.UpstoxConfig())

	tracker := ltptracker.NewTracker(ltptracker.TrackerConfig{
		Alerter:      teleBot,
		ThresholdPct: conf.Poll.ThresholdPct,
		AlwaysSend:   conf.Poll.AlwaysSend,
	})

	poller := ltptracker.NewPoller(ltptracker.PollerConfig{
		Source:     client,
		Tracker:    tracker,
		Keys:       conf.InstrumentKeys(),
		BatchSize:  conf.Poll.BatchSize,
		RetryCount: conf.Poll.RetryCount,
		RetryDelay: conf.RetryDelay(),
		Interval:   conf.PollInterval(),
	})

	watcher := ltptracker.NewChainWatcher(ltptracker.ChainWatcherConfig{
		Source:   client,
		Alerter:  teleBot,
		Targets:  conf.ChainTargets(),
		Schedule: conf.Chain.Schedule,
	})
	watcher.Run()

	go poller.Run()

	go func() {
		app.Run(conf.App.Port, conf.App.Passkey, tracker, poller)
	}()

	ch := make(chan string)
	teleBot.Run(ch, conf.App.Port, conf.App.Passkey)
}
