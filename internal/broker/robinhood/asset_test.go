package robinhood

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrencyPreload(t *testing.T) {
	e := newEnv(t)

	assert.Equal(t, 1, e.nummus.count(http.MethodGet, currencyPairsPath))
	assert.Equal(t, []string{"BTC", "DOGE"}, e.cli.Currencies())

	before := e.nummus.totalCalls() + e.api.totalCalls()
	btc := e.currency(t, "BTC")
	assert.Equal(t, before, e.nummus.totalCalls()+e.api.totalCalls())

	assert.Equal(t, "Bitcoin", btc.Name)
	assert.Equal(t, "BTC-USD", btc.Symbol)
	assert.Equal(t, "pair-btc", btc.PairID)
	assert.Equal(t, "cur-btc", btc.AssetID)
	assert.True(t, btc.Tradable)
	assert.False(t, e.currency(t, "DOGE").IsTradable())
	assert.Equal(t, "Currency<Bitcoin [BTC]>", btc.String())
}

func TestNewClientFailsWithoutCurrencyPairs(t *testing.T) {
	nummus := newUpstream(t)
	nummus.reply(http.MethodGet, currencyPairsPath, http.StatusServiceUnavailable, map[string]any{"detail": "down"})

	_, err := NewClient(WithNummusURL(nummus.srv.URL))
	require.Error(t, err)
	assert.True(t, IsUpstream(err))
}

func TestStockLookupCached(t *testing.T) {
	e := newEnv(t).loggedIn(t)

	first := e.stock(t)
	second := e.stock(t)

	assert.Same(t, first, second)
	assert.Equal(t, 1, e.api.count(http.MethodGet, instrumentsPath))
	assert.Equal(t, "inst-aapl", first.ID)
	assert.Equal(t, e.api.srv.URL+"/instruments/inst-aapl/", first.InstrumentURL)
	assert.Equal(t, "Stock<Apple [AAPL]>", first.String())
}

func TestStockLookupQuery(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.cli.LoginWithToken("token-1"))
	e.api.handle(http.MethodGet, instrumentsPath, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "false", r.URL.Query().Get("active_instruments_only"))
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		assert.Equal(t, apiVersion, r.Header.Get("X-Robinhood-API-Version"))
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		writeJSON(w, http.StatusOK, results(aaplInstrument))
	})

	_, err := e.cli.Asset("AAPL")
	require.NoError(t, err)
}

func TestStockLookupNotFound(t *testing.T) {
	e := newEnv(t).loggedIn(t)

	_, err := e.cli.Asset("NOPE")
	require.Error(t, err)
	assert.True(t, IsLookup(err))
	assert.ErrorIs(t, err, ErrAssetNotFound)
}

func TestStockLookupUpstreamFailure(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.cli.LoginWithToken("token-1"))
	e.api.reply(http.MethodGet, instrumentsPath, http.StatusInternalServerError, map[string]any{"detail": "boom"})

	_, err := e.cli.Asset("AAPL")
	require.Error(t, err)
	assert.True(t, IsLookup(err))

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusInternalServerError, upstream.Status)
}

func TestAssetLookupRequiresLogin(t *testing.T) {
	e := newEnv(t)

	_, err := e.cli.Asset("AAPL")
	require.Error(t, err)
	assert.True(t, IsPrecondition(err))
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Equal(t, 0, e.api.count(http.MethodGet, instrumentsPath))
}

func TestCurrencyQuoteIsLive(t *testing.T) {
	e := newEnv(t)
	quotePath := forexQuotesPath + "pair-btc/"
	e.api.reply(http.MethodGet, quotePath, http.StatusOK, map[string]any{
		"mark_price": "100.50",
		"ask_price":  "101.00",
		"bid_price":  "100.00",
	})
	btc := e.currency(t, "BTC")

	price, err := btc.Price()
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.RequireFromString("100.5")))

	ask, err := btc.Ask()
	require.NoError(t, err)
	assert.True(t, ask.Equal(decimal.NewFromInt(101)))

	bid, err := btc.Bid()
	require.NoError(t, err)
	assert.True(t, bid.Equal(decimal.NewFromInt(100)))

	assert.Equal(t, 3, e.api.count(http.MethodGet, quotePath))
}

func TestStockQuote(t *testing.T) {
	e := newEnv(t).loggedIn(t)
	e.api.reply(http.MethodGet, quotesPath+"AAPL/", http.StatusOK, map[string]any{
		"symbol":           "AAPL",
		"last_trade_price": "190.120000",
		"ask_price":        "190.200000",
		"bid_price":        "190.100000",
	})
	stock := e.stock(t)

	q, err := stock.CurrentQuote()
	require.NoError(t, err)
	assert.Equal(t, "AAPL", q.Symbol)

	price, err := stock.Price()
	require.NoError(t, err)
	assert.Equal(t, "190.12", price.String())

	bid, err := stock.Bid()
	require.NoError(t, err)
	assert.Equal(t, "190.1", bid.String())
}

func TestQuoteFailureKeepsCause(t *testing.T) {
	e := newEnv(t)
	e.api.reply(http.MethodGet, forexQuotesPath+"pair-btc/", http.StatusBadGateway, map[string]any{"detail": "bad gateway"})

	_, err := e.currency(t, "BTC").Price()
	require.Error(t, err)
	assert.True(t, IsUpstream(err))

	var rhErr *Error
	require.ErrorAs(t, err, &rhErr)
	assert.Equal(t, "Currency.CurrentQuote", rhErr.Endpoint)
	assert.Equal(t, http.StatusBadGateway, rhErr.UpstreamStatus())
}
