package models

// CurrencyOrder тело запроса на создание ордера криптовалютной площадки
type CurrencyOrder struct {
	Type           string `json:"type"`             // market, limit
	Side           string `json:"side"`             // buy, sell
	Quantity       string `json:"quantity"`         // Количество в виде десятичной строки
	AccountID      string `json:"account_id"`       // Идентификатор nummus счета
	CurrencyPairID string `json:"currency_pair_id"` // Идентификатор пары
	Price          string `json:"price"`
	RefID          string `json:"ref_id"` // Клиентский идентификатор запроса (UUID)
	TimeInForce    string `json:"time_in_force"`
}

// EquityOrder тело запроса на создание ордера по акции
type EquityOrder struct {
	TimeInForce   string `json:"time_in_force"`
	Price         string `json:"price"`
	Quantity      string `json:"quantity"` // Целое количество акций
	Side          string `json:"side"`
	Trigger       string `json:"trigger"` // immediate, stop
	Type          string `json:"type"`    // market, limit
	Account       string `json:"account"` // Ссылка на счет
	Instrument    string `json:"instrument"`
	Symbol        string `json:"symbol"`
	RefID         string `json:"ref_id"`
	ExtendedHours bool   `json:"extended_hours"`
	StopPrice     string `json:"stop_price,omitempty"` // Только для trigger=stop
}
