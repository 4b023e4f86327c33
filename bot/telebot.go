package bot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

type TeleBot struct {
	bot     *tgbotapi.BotAPI
	chatId  int64
	updates tgbotapi.UpdatesChannel
	lg      zerolog.Logger
}

type TeleBotConfig struct {
	Token  string
	ChatId int64
}

func NewTeleBot(conf *TeleBotConfig) (*TeleBot, error) {

	bot, err := tgbotapi.NewBotAPI(conf.Token)
	if err != nil {
		return nil, err
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)

	return &TeleBot{
		bot:     bot,
		chatId:  conf.ChatId,
		updates: updates,
		lg:      zerolog.New(os.Stdout).With().Str("Module", "TeleBot").Timestamp().Logger(),
	}, nil
}

// SendMessage delivers one message to the configured chat. The error is the
// caller's to handle; dispatch failure must never crash a poll cycle.
func (t *TeleBot) SendMessage(msg string) error {
	_, err := t.bot.Send(tgbotapi.NewMessage(t.chatId, msg))
	return err
}

// Run announces startup, then fans in messages from ch while answering
// slash-commands in the background. Blocks forever.
func (t *TeleBot) Run(ch chan string, port int, passkey string) {

	if err := t.SendMessage("LTP TRACKER LAUNCHED"); err != nil {
		t.lg.Warn().Err(err).Msg("Telegram send failed")
	}

	go func() {
		t.communicate(ch, port, passkey)
	}()

	for msg := range ch {
		if err := t.SendMessage(msg); err != nil {
			t.lg.Warn().Err(err).Msg("Telegram send failed")
		}
		t.lg.Info().Msg(msg)
	}
}

// communicate forwards slash-commands to the local status app and pushes the
// replies back through ch.
func (t *TeleBot) communicate(ch chan string, port int, passkey string) {

	for update := range t.updates {
		if update.Message == nil {
			continue
		}

		txt := update.Message.Text
		if !strings.HasPrefix(txt, "/") {
			continue
		}

		switch txt {
		case "/help":
			ch <- `
			조회 API 목록
			/quotes
			/instruments
			/status
			/poll
			`
		default:
			rtn, err := httpsend(fmt.Sprintf("http://localhost:%d%s", port, txt), passkey)
			if err != nil {
				ch <- err.Error()
			} else {
				ch <- rtn
			}
		}
	}
}

func httpsend(url string, passkey string) (string, error) {

	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", passkey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		return "", err
	}

	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	var jsonData interface{}

	err = json.Unmarshal(body, &jsonData)
	if err != nil {
		return "", err
	}

	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false) // Disable HTML escaping

	encoder.SetIndent("", "\t")
	err = encoder.Encode(jsonData)
	if err != nil {
		return "", err
	}

	return buffer.String(), nil
}
