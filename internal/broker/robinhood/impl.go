package robinhood

import (
	"encoding/json"

	"github.com/nikita55612/tradinhood/internal/broker"
	"github.com/shopspring/decimal"
)

func (c *Client) BrokerImpl() broker.Broker {
	return &BrokerImpl{cli: c}
}

type BrokerImpl struct {
	cli *Client
}

func (b *BrokerImpl) GetInstrumentInfo(symbol string) ([]byte, error) {
	asset, err := b.cli.Asset(symbol)
	if err != nil {
		return nil, err
	}

	var infoData map[string]any
	switch a := asset.(type) {
	case *Currency:
		infoData = map[string]any{
			"kind":     "currency",
			"symbol":   a.Code,
			"pair":     a.Symbol,
			"name":     a.Name,
			"id":       a.PairID,
			"tradable": a.Tradable,
		}
	case *Stock:
		infoData = map[string]any{
			"kind":     "stock",
			"symbol":   a.Symbol,
			"name":     a.Name,
			"id":       a.ID,
			"tradable": a.Tradable,
		}
	}

	return json.Marshal(infoData)
}

func (b *BrokerImpl) GetQuote(symbol string) ([]byte, error) {
	asset, err := b.cli.Asset(symbol)
	if err != nil {
		return nil, err
	}

	var price, ask, bid decimal.Decimal
	switch a := asset.(type) {
	case *Currency:
		q, err := a.CurrentQuote()
		if err != nil {
			return nil, err
		}
		price, ask, bid = q.MarkPrice, q.AskPrice, q.BidPrice
	case *Stock:
		q, err := a.CurrentQuote()
		if err != nil {
			return nil, err
		}
		price, ask, bid = q.LastTradePrice, q.AskPrice, q.BidPrice
	}
	quoteData := map[string]any{
		"symbol": asset.Ticker(),
		"price":  price,
		"ask":    ask,
		"bid":    bid,
	}

	return json.Marshal(quoteData)
}

func (b *BrokerImpl) GetQuantity(symbol string, includeHeld bool) (decimal.Decimal, error) {
	return b.cli.QuantityOf(symbol, includeHeld)
}

func (b *BrokerImpl) PlaceOrder(symbol string, qty decimal.Decimal, price *decimal.Decimal) ([]byte, error) {
	asset, err := b.cli.Asset(symbol)
	if err != nil {
		return nil, err
	}

	side := SideBuy
	if qty.IsNegative() {
		side = SideSell
	}
	var opts []OrderOption
	if price != nil {
		opts = append(opts, WithOrderType(OrderLimit), WithPrice(*price))
	}
	res, err := b.cli.Order(side, asset, qty.Abs(), opts...)
	if err != nil {
		return nil, err
	}
	if err := res.Err(); err != nil {
		return res.Raw, err
	}

	return res.Raw, nil
}
