package robinhood

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// upstream заглушка одного из хостов API, считающая обращения к маршрутам.
type upstream struct {
	t      *testing.T
	srv    *httptest.Server
	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	calls  map[string]int
	total  int
}

func newUpstream(t *testing.T) *upstream {
	u := &upstream{
		t:      t,
		routes: make(map[string]http.HandlerFunc),
		calls:  make(map[string]int),
	}
	u.srv = httptest.NewServer(u)
	t.Cleanup(u.srv.Close)
	return u
}

func (u *upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	u.mu.Lock()
	u.calls[key]++
	u.total++
	h, ok := u.routes[key]
	u.mu.Unlock()
	if !ok {
		http.Error(w, `{"detail":"Not found."}`, http.StatusNotFound)
		return
	}
	h(w, r)
}

func (u *upstream) handle(method, path string, h http.HandlerFunc) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.routes[method+" "+path] = h
}

func (u *upstream) reply(method, path string, status int, body any) {
	u.handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, status, body)
	})
}

func (u *upstream) count(method, path string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.calls[method+" "+path]
}

func (u *upstream) totalCalls() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.total
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	return body
}

type page map[string]any

func results(items ...map[string]any) page {
	if items == nil {
		items = []map[string]any{}
	}
	return page{"next": nil, "previous": nil, "results": items}
}

var (
	btcPair = map[string]any{
		"id":          "pair-btc",
		"symbol":      "BTC-USD",
		"tradability": "tradable",
		"asset_currency": map[string]any{
			"id":   "cur-btc",
			"code": "BTC",
			"name": "Bitcoin",
			"type": "cryptocurrency",
		},
	}
	dogePair = map[string]any{
		"id":          "pair-doge",
		"symbol":      "DOGE-USD",
		"tradability": "untradable",
		"asset_currency": map[string]any{
			"id":   "cur-doge",
			"code": "DOGE",
			"name": "Dogecoin",
			"type": "cryptocurrency",
		},
	}
	aaplInstrument = map[string]any{
		"id":          "inst-aapl",
		"name":        "Apple Inc. Common Stock",
		"simple_name": "Apple",
		"symbol":      "AAPL",
		"tradeable":   true,
		"type":        "stock",
	}
)

// env пара заглушек (API акций и nummus) и клиент, направленный на них.
type env struct {
	api    *upstream
	nummus *upstream
	cli    *Client
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{api: newUpstream(t), nummus: newUpstream(t)}
	e.nummus.reply(http.MethodGet, currencyPairsPath, http.StatusOK, results(btcPair, dogePair))
	e.api.reply(http.MethodGet, accountsPath, http.StatusOK, results(
		map[string]any{"account_number": "5RY00001"},
		map[string]any{"account_number": "5RY00002"},
	))
	e.nummus.reply(http.MethodGet, nummusAccountsPath, http.StatusOK, results(
		map[string]any{"id": "nummus-1"},
		map[string]any{"id": "nummus-2"},
	))

	cli, err := NewClient(WithBaseURL(e.api.srv.URL), WithNummusURL(e.nummus.srv.URL))
	require.NoError(t, err)
	e.cli = cli
	return e
}

// loggedIn входит по токену и регистрирует инструмент AAPL.
func (e *env) loggedIn(t *testing.T) *env {
	t.Helper()
	require.NoError(t, e.cli.LoginWithToken("token-1"))
	e.api.handle(http.MethodGet, instrumentsPath, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("symbol") == "AAPL" {
			writeJSON(w, http.StatusOK, results(aaplInstrument))
			return
		}
		writeJSON(w, http.StatusOK, results())
	})
	return e
}

func (e *env) stock(t *testing.T) *Stock {
	t.Helper()
	asset, err := e.cli.Asset("AAPL")
	require.NoError(t, err)
	stock, ok := asset.(*Stock)
	require.True(t, ok)
	return stock
}

func (e *env) currency(t *testing.T, code string) *Currency {
	t.Helper()
	asset, err := e.cli.Asset(code)
	require.NoError(t, err)
	currency, ok := asset.(*Currency)
	require.True(t, ok)
	return currency
}
