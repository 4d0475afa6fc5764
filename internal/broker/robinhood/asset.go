package robinhood

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/nikita55612/tradinhood/internal/broker/robinhood/models"
	"github.com/shopspring/decimal"
)

// Asset торгуемый актив. Реализации: *Currency и *Stock.
type Asset interface {
	Ticker() string
	IsTradable() bool
	Price() (decimal.Decimal, error)
	Ask() (decimal.Decimal, error)
	Bid() (decimal.Decimal, error)
	String() string
	asset()
}

// quoteFetcher дает активу доступ к HTTP-сессии клиента только для котировок.
type quoteFetcher interface {
	getJSON(endpoint, url string, result any) error
}

// Currency криптовалютная пара. Цена не хранится, каждый вызов Price/Ask/Bid
// запрашивает свежую котировку.
type Currency struct {
	Name     string // Название базовой валюты
	Code     string // Код базовой валюты (BTC)
	Symbol   string // Символ пары (BTC-USD)
	Type     string // Тип базовой валюты
	Tradable bool
	PairID   string // Идентификатор пары
	AssetID  string // Идентификатор базовой валюты

	quoteURL string
	api      quoteFetcher
}

func newCurrency(api quoteFetcher, baseURL string, pair *models.CurrencyPair) *Currency {
	return &Currency{
		Name:     pair.AssetCurrency.Name,
		Code:     pair.AssetCurrency.Code,
		Symbol:   pair.Symbol,
		Type:     pair.AssetCurrency.Type,
		Tradable: pair.Tradability == "tradable",
		PairID:   pair.ID,
		AssetID:  pair.AssetCurrency.ID,
		quoteURL: fmt.Sprintf("%s%s%s/", baseURL, forexQuotesPath, pair.ID),
		api:      api,
	}
}

func (*Currency) asset() {}

func (c *Currency) Ticker() string   { return c.Code }
func (c *Currency) IsTradable() bool { return c.Tradable }

// CurrentQuote запрашивает текущую котировку пары.
func (c *Currency) CurrentQuote() (*models.ForexQuote, error) {
	var quote models.ForexQuote
	if err := c.api.getJSON("Currency.CurrentQuote", c.quoteURL, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

func (c *Currency) Price() (decimal.Decimal, error) {
	q, err := c.CurrentQuote()
	if err != nil {
		return decimal.Zero, err
	}
	return q.MarkPrice, nil
}

func (c *Currency) Ask() (decimal.Decimal, error) {
	q, err := c.CurrentQuote()
	if err != nil {
		return decimal.Zero, err
	}
	return q.AskPrice, nil
}

func (c *Currency) Bid() (decimal.Decimal, error) {
	q, err := c.CurrentQuote()
	if err != nil {
		return decimal.Zero, err
	}
	return q.BidPrice, nil
}

func (c *Currency) String() string {
	return fmt.Sprintf("Currency<%s [%s]>", c.Name, c.Code)
}

// Stock акция. Как и Currency, котировка запрашивается при каждом обращении.
type Stock struct {
	ID            string
	Name          string
	SimpleName    string
	Symbol        string
	Type          string
	Tradable      bool
	InstrumentURL string // Ссылка на инструмент, передается в ордере

	quoteURL string
	api      quoteFetcher
}

func newStock(api quoteFetcher, baseURL string, inst *models.Instrument) *Stock {
	return &Stock{
		ID:            inst.ID,
		Name:          inst.Name,
		SimpleName:    inst.SimpleName,
		Symbol:        inst.Symbol,
		Type:          inst.Type,
		Tradable:      inst.Tradeable,
		InstrumentURL: fmt.Sprintf("%s%s%s/", baseURL, instrumentsPath, inst.ID),
		quoteURL:      fmt.Sprintf("%s%s%s/", baseURL, quotesPath, url.PathEscape(inst.Symbol)),
		api:           api,
	}
}

func (*Stock) asset() {}

func (s *Stock) Ticker() string   { return s.Symbol }
func (s *Stock) IsTradable() bool { return s.Tradable }

// CurrentQuote запрашивает текущую котировку акции.
func (s *Stock) CurrentQuote() (*models.StockQuote, error) {
	var quote models.StockQuote
	if err := s.api.getJSON("Stock.CurrentQuote", s.quoteURL, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

func (s *Stock) Price() (decimal.Decimal, error) {
	q, err := s.CurrentQuote()
	if err != nil {
		return decimal.Zero, err
	}
	return q.LastTradePrice, nil
}

func (s *Stock) Ask() (decimal.Decimal, error) {
	q, err := s.CurrentQuote()
	if err != nil {
		return decimal.Zero, err
	}
	return q.AskPrice, nil
}

func (s *Stock) Bid() (decimal.Decimal, error) {
	q, err := s.CurrentQuote()
	if err != nil {
		return decimal.Zero, err
	}
	return q.BidPrice, nil
}

func (s *Stock) String() string {
	name := s.SimpleName
	if name == "" {
		name = s.Name
	}
	return fmt.Sprintf("Stock<%s [%s]>", name, s.Symbol)
}

// Asset возвращает актив по символу: сначала из каталога криптовалют, затем из
// каталога акций. Акции, которых нет в каталоге, ищутся через /instruments/.
func (c *Client) Asset(symbol string) (Asset, error) {
	if currency, ok := c.currencies.get(symbol); ok {
		return currency, nil
	}
	if stock, ok := c.stocks.get(symbol); ok {
		return stock, nil
	}
	if err := c.requireLogin("Asset"); err != nil {
		return nil, err
	}

	req := c.request(http.MethodGet, c.apiURL+instrumentsPath).
		WithQuery("active_instruments_only", "false", "symbol", symbol)
	var page models.Page[models.Instrument]
	if err := c.callAPI("Asset", req, nil, &page); err != nil {
		err := fmt.Errorf("%w %q: %w", ErrAssetNotFound, symbol, err)
		return nil, NewError(LookupErrorT, err).SetEndpoint("Asset")
	}
	if len(page.Results) == 0 {
		err := fmt.Errorf("%w %q", ErrAssetNotFound, symbol)
		return nil, NewError(LookupErrorT, err).SetEndpoint("Asset")
	}

	stock := newStock(c, c.apiURL, &page.Results[0])
	return c.stocks.put(stock.Symbol, stock), nil
}

// Currencies возвращает отсортированные коды загруженных криптовалют.
func (c *Client) Currencies() []string {
	return c.currencies.symbols()
}

// loadCurrencies загружает все криптовалютные пары в каталог.
// https://nummus.robinhood.com/currency_pairs/
func (c *Client) loadCurrencies() error {
	var page models.Page[models.CurrencyPair]
	if err := c.getJSON("LoadCurrencies", c.nummusURL+currencyPairsPath, &page); err != nil {
		return err
	}
	for i := range page.Results {
		currency := newCurrency(c, c.apiURL, &page.Results[i])
		c.currencies.put(currency.Code, currency)
	}
	c.logger.WithField("count", c.currencies.len()).Debug("currency pairs loaded")

	return nil
}
