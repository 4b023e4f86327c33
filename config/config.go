package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"ltptracker"
	"ltptracker/bot"
	"ltptracker/upstox"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

//go:embed config.yaml
var configByte []byte

type Config struct {
	Log string `yaml:"log"`
	App struct {
		Port    int    `yaml:"port"`
		Passkey string `yaml:"passkey"`
	} `yaml:"app"`
	Upstox struct {
		AccessToken string `yaml:"access-token" validate:"required"`
	} `yaml:"upstox"`
	Telegram struct {
		ChatId string `yaml:"chatId" validate:"required"`
		Token  string `yaml:"token" validate:"required"`
	} `yaml:"telegram"`
	Poll struct {
		InstrumentKeys string  `yaml:"instrument-keys"`
		Interval       int     `yaml:"interval"`
		BatchSize      int     `yaml:"batch-size"`
		RetryCount     int     `yaml:"retry-count"`
		RetryDelay     float64 `yaml:"retry-delay"`
		AlwaysSend     bool    `yaml:"always-send"`
		ThresholdPct   float64 `yaml:"change-threshold-pct"`
	} `yaml:"poll"`
	Chain struct {
		Schedule    string `yaml:"schedule"`
		NiftySymbol string `yaml:"nifty-symbol"`
		NiftyExpiry string `yaml:"nifty-expiry"`
		TcsSymbol   string `yaml:"tcs-symbol"`
		TcsExpiry   string `yaml:"tcs-expiry"`
	} `yaml:"chain"`
}

func NewConfig() (*Config, error) {

	var ConfigInfo Config = Config{}

	err := yaml.Unmarshal(configByte, &ConfigInfo)
	if err != nil {
		return nil, err
	}

	overrideFromEnv(&ConfigInfo)

	// 필수값 미존재는 기동 실패
	if err := validator.New().Struct(&ConfigInfo); err != nil {
		return nil, fmt.Errorf("missing mandatory config %w", err)
	}

	return &ConfigInfo, nil
}

func (c Config) LogLevel() (zerolog.Level, error) {

	level, err := zerolog.ParseLevel(c.Log)
	if err != nil {
		return zerolog.InfoLevel, err // Default로는 Info 레벨 설정
	}

	return level, nil
}

func (c Config) BotConfig() (*bot.TeleBotConfig, error) {

	chatId, err := strconv.ParseInt(c.Telegram.ChatId, 10, 64)
	if err != nil {
		return nil, err
	}

	return &bot.TeleBotConfig{
		Token:  c.Telegram.Token,
		ChatId: chatId,
	}, nil
}

func (c Config) UpstoxConfig() *upstox.ClientConfig {
	return &upstox.ClientConfig{
		AccessToken: c.Upstox.AccessToken,
	}
}

func (c Config) InstrumentKeys() []string {

	keys := make([]string, 0)
	for _, k := range strings.Split(c.Poll.InstrumentKeys, ",") {
		k = strings.TrimSpace(k)
		if k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

func (c Config) PollInterval() time.Duration {
	return time.Duration(c.Poll.Interval) * time.Second
}

func (c Config) RetryDelay() time.Duration {
	return time.Duration(c.Poll.RetryDelay * float64(time.Second))
}

func (c Config) ChainTargets() []ltptracker.ChainTarget {
	return []ltptracker.ChainTarget{
		{Name: "NIFTY", Symbol: c.Chain.NiftySymbol, Expiry: c.Chain.NiftyExpiry},
		{Name: "TCS", Symbol: c.Chain.TcsSymbol, Expiry: c.Chain.TcsExpiry},
	}
}

func overrideFromEnv(conf *Config) {
	envStr(&conf.Upstox.AccessToken, "UPSTOX_ACCESS_TOKEN")
	envStr(&conf.Telegram.Token, "TELEGRAM_BOT_TOKEN")
	envStr(&conf.Telegram.ChatId, "TELEGRAM_CHAT_ID")
	envStr(&conf.Poll.InstrumentKeys, "EXPLICIT_INSTRUMENT_KEYS")
	envInt(&conf.Poll.Interval, "POLL_INTERVAL")
	envInt(&conf.Poll.BatchSize, "BATCH_SIZE")
	envInt(&conf.Poll.RetryCount, "RETRY_COUNT")
	envFloat(&conf.Poll.RetryDelay, "RETRY_DELAY")
	envBool(&conf.Poll.AlwaysSend, "ALWAYS_SEND")
	envFloat(&conf.Poll.ThresholdPct, "CHANGE_THRESHOLD_PCT")
	envStr(&conf.Chain.NiftySymbol, "OPTION_SYMBOL_NIFTY")
	envStr(&conf.Chain.NiftyExpiry, "OPTION_EXPIRY_NIFTY")
	envStr(&conf.Chain.TcsSymbol, "OPTION_SYMBOL_TCS")
	envStr(&conf.Chain.TcsExpiry, "OPTION_EXPIRY_TCS")
}

func envStr(target *string, name string) {
	if v := os.Getenv(name); v != "" {
		*target = v
	}
}

func envInt(target *int, name string) {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*target = n
		}
	}
}

func envFloat(target *float64, name string) {
	if v := os.Getenv(name); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*target = f
		}
	}
}

func envBool(target *bool, name string) {
	if v := os.Getenv(name); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*target = b
		}
	}
}
