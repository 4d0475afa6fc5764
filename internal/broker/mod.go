package broker

import "github.com/shopspring/decimal"

// Broker минимальный интерфейс площадки, не зависящий от конкретного API.
type Broker interface {
	GetInstrumentInfo(symbol string) ([]byte, error)
	GetQuote(symbol string) ([]byte, error)
	GetQuantity(symbol string, includeHeld bool) (decimal.Decimal, error)
	// PlaceOrder создает ордер: qty > 0 покупка, qty < 0 продажа. Если price
	// задан, ордер лимитный.
	PlaceOrder(symbol string, qty decimal.Decimal, price *decimal.Decimal) ([]byte, error)
}
