package upstox

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultBaseUrl = "https://api.upstox.com/v3"
	ltpPath        = "/market-quote/ltp"
	chainPath      = "/option/chain"

	maxErrorBody = 1000 // 에러 로그에 남길 응답 body 최대 길이
)

// FetchError distinguishes an HTTP-status failure (Status > 0, Body holds the
// truncated response) from a transport/decode failure (Err holds the cause).
type FetchError struct {
	Status int
	Body   string
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("upstox HTTPError %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("upstox fetch failed: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

type Client struct {
	baseUrl string
	token   string
	client  *http.Client
	lg      zerolog.Logger
}

type ClientConfig struct {
	AccessToken string
	BaseUrl     string        // 미지정 시 운영 API 사용
	Timeout     time.Duration // 미지정 시 20초
}

func NewClient(conf *ClientConfig) *Client {

	baseUrl := conf.BaseUrl
	if baseUrl == "" {
		baseUrl = defaultBaseUrl
	}
	timeout := conf.Timeout
	if timeout == 0 {
		timeout = 20 * time.Second
	}

	return &Client{
		baseUrl: baseUrl,
		token:   conf.AccessToken,
		client:  &http.Client{Timeout: timeout},
		lg:      zerolog.New(os.Stdout).With().Str("Module", "Upstox").Timestamp().Logger(),
	}
}

// FetchLTP requests last-traded prices for a batch of instrument keys in one
// call. The decoded body is returned as-is; shape handling is the caller's
// concern.
func (c *Client) FetchLTP(keys []string) (any, error) {

	if len(keys) == 0 {
		return nil, errors.New("instrument key 미존재")
	}

	u := c.baseUrl + ltpPath + "?instrument_key=" + url.QueryEscape(strings.Join(keys, ","))
	return c.getJson(u)
}

// FetchOptionChain requests the option chain for one underlying and expiry.
func (c *Client) FetchOptionChain(symbol string, expiry string) (any, error) {

	u := c.baseUrl + chainPath + "?symbol=" + url.QueryEscape(symbol) + "&expiry_date=" + url.QueryEscape(expiry)
	return c.getJson(u)
}

func (c *Client) getJson(u string) (any, error) {

	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, &FetchError{Err: fmt.Errorf("error making request\n%w", err)}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	res, err := c.client.Do(req)
	if err != nil {
		return nil, &FetchError{Err: fmt.Errorf("error sending request\n%w", err)}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		c.lg.Error().Int("status", res.StatusCode).Str("body", string(body)).Msg("Upstox non-success status")
		return nil, &FetchError{Status: res.StatusCode, Body: string(body)}
	}

	var out any
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, &FetchError{Err: fmt.Errorf("error response body decoding\n%w", err)}
	}

	return out, nil
}
