package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"ltptracker/app/middleware"
	"ltptracker/internal/quote"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

const testPasskey = "test-passkey"

func sendReqeust(app *fiber.App, path string, method string, response any) error {

	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", testPasskey)

	res, err := app.Test(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", res.StatusCode)
	}
	if response == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(response)
}

func TestQuoteHandler(t *testing.T) {

	app := fiber.New()
	middleware.SetupMiddleware(app, testPasskey)

	ltp := 98750.0
	snapMock := SnapshotRetrieverMock{snap: map[string]float64{"MCX_FO|463267": 98750}}
	runnerMock := &CycleRunnerMock{
		quotes: []quote.Quote{
			{Key: "MCX_FO|463267", Symbol: "GOLDTEN", Ltp: &ltp},
			{Key: "MCX_FO|458302", Symbol: "GOLDGUINEA"},
		},
		keys: []string{"MCX_FO|463267", "MCX_FO|458302"},
	}

	h := NewQuoteHandler(snapMock, runnerMock)
	h.InitRoute(app)

	t.Run("현재가 cache 조회", func(t *testing.T) {
		resp := make(map[string]float64)
		err := sendReqeust(app, "/quotes", "GET", &resp)

		assert.NoError(t, err)
		assert.Equal(t, 98750.0, resp["MCX_FO|463267"])
	})

	t.Run("종목 목록 조회", func(t *testing.T) {
		resp := make([]string, 0)
		err := sendReqeust(app, "/instruments", "GET", &resp)

		assert.NoError(t, err)
		assert.Equal(t, runnerMock.keys, resp)
	})

	t.Run("수동 poll 트리거", func(t *testing.T) {
		resp := make([]quoteResponse, 0)
		err := sendReqeust(app, "/poll", "GET", &resp)

		assert.NoError(t, err)
		assert.Equal(t, 2, len(resp))
		assert.Equal(t, "GOLDTEN", resp[0].Symbol)
		assert.Nil(t, resp[1].Ltp)
		runnerMock.prettyPrint()
	})

	t.Run("status 조회", func(t *testing.T) {
		resp := statusResponse{}
		err := sendReqeust(app, "/status", "GET", &resp)

		assert.NoError(t, err)
		assert.Equal(t, uint64(1), resp.Cycles) // /poll 트리거 1회 반영
		assert.Equal(t, 2, resp.Instrument)
	})

	t.Run("passkey 미존재 시 401", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/quotes", nil)
		res, err := app.Test(req)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})
}
