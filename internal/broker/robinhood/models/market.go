package models

import "github.com/shopspring/decimal"

// AssetCurrency описание одной из валют торговой пары
type AssetCurrency struct {
	ID        string          `json:"id"`        // Идентификатор валюты
	Code      string          `json:"code"`      // Код (BTC, ETH, USD)
	Name      string          `json:"name"`      // Название
	Type      string          `json:"type"`      // cryptocurrency, fiat
	Increment decimal.Decimal `json:"increment"` // Минимальный шаг количества
}

// CurrencyPair торговая пара криптовалютной площадки
type CurrencyPair struct {
	ID                string          `json:"id"`              // Идентификатор пары (используется в ордерах и котировках)
	Symbol            string          `json:"symbol"`          // Символ пары (BTC-USD)
	DisplayOnly       bool            `json:"display_only"`    // Пара только для отображения
	Tradability       string          `json:"tradability"`     // tradable, untradable
	MinOrderSize      decimal.Decimal `json:"min_order_size"`  // Минимальный размер ордера
	MaxOrderSize      decimal.Decimal `json:"max_order_size"`  // Максимальный размер ордера
	MinOrderPriceIncr decimal.Decimal `json:"min_order_price_increment"`
	AssetCurrency     AssetCurrency   `json:"asset_currency"` // Базовая валюта
	QuoteCurrency     AssetCurrency   `json:"quote_currency"` // Котируемая валюта
}

// Instrument торговый инструмент фондового рынка
type Instrument struct {
	ID         string `json:"id"`          // Идентификатор инструмента
	URL        string `json:"url"`         // Ссылка на инструмент
	Name       string `json:"name"`        // Полное название
	SimpleName string `json:"simple_name"` // Короткое название (может отсутствовать)
	Symbol     string `json:"symbol"`      // Тикер
	Tradeable  bool   `json:"tradeable"`   // Доступен ли для торговли
	Type       string `json:"type"`        // stock, etp, adr, ...
	State      string `json:"state"`       // active, inactive
	Quote      string `json:"quote"`       // Ссылка на котировку
	Market     string `json:"market"`      // Ссылка на биржу
}

// StockQuote котировка акции
type StockQuote struct {
	Symbol         string          `json:"symbol"`
	LastTradePrice decimal.Decimal `json:"last_trade_price"` // Цена последней сделки
	AskPrice       decimal.Decimal `json:"ask_price"`
	AskSize        int64           `json:"ask_size"`
	BidPrice       decimal.Decimal `json:"bid_price"`
	BidSize        int64           `json:"bid_size"`
	PreviousClose  decimal.Decimal `json:"previous_close"`
	TradingHalted  bool            `json:"trading_halted"`
	UpdatedAt      string          `json:"updated_at"`
}

// ForexQuote котировка криптовалютной пары
type ForexQuote struct {
	ID        string          `json:"id"`         // Идентификатор пары
	Symbol    string          `json:"symbol"`     // BTCUSD
	MarkPrice decimal.Decimal `json:"mark_price"` // Справочная цена
	AskPrice  decimal.Decimal `json:"ask_price"`
	BidPrice  decimal.Decimal `json:"bid_price"`
	OpenPrice decimal.Decimal `json:"open_price"`
	HighPrice decimal.Decimal `json:"high_price"`
	LowPrice  decimal.Decimal `json:"low_price"`
	Volume    decimal.Decimal `json:"volume"`
}
