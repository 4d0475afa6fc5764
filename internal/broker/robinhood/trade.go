package robinhood

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/nikita55612/tradinhood/internal/broker/robinhood/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

type OrderType string

const (
	OrderMarket    OrderType = "market"
	OrderLimit     OrderType = "limit"
	OrderStopLoss  OrderType = "stoploss"
	OrderStopLimit OrderType = "stoplimit"
)

// TimeInForce время жизни ордера
type TimeInForce string

const (
	GoodTilCanceled   TimeInForce = "gtc"
	GoodForDay        TimeInForce = "gfd"
	ImmediateOrCancel TimeInForce = "ioc"
	AtTheOpening      TimeInForce = "opg"
)

const (
	triggerImmediate = "immediate"
	triggerStop      = "stop"
)

var validate = validator.New()

// OrderRequest логический запрос на ордер, общий для акций и криптовалют.
type OrderRequest struct {
	Side        Side        `validate:"oneof=buy sell"`
	Type        OrderType   `validate:"oneof=market limit stoploss stoplimit"`
	TimeInForce TimeInForce `validate:"oneof=gtc gfd ioc opg"`
	Amount      decimal.Decimal
	Price       *decimal.Decimal // Если nil, используется текущая цена актива
	StopPrice   *decimal.Decimal // Только для stoploss и stoplimit
}

func NewOrderRequest(side Side, amount decimal.Decimal, opts ...OrderOption) *OrderRequest {
	r := &OrderRequest{
		Side:        side,
		Type:        OrderMarket,
		TimeInForce: GoodTilCanceled,
		Amount:      amount,
	}
	for _, option := range opts {
		option(r)
	}
	return r
}

type OrderOption func(*OrderRequest)

func WithOrderType(t OrderType) OrderOption {
	return func(r *OrderRequest) {
		r.Type = t
	}
}

func WithPrice(price decimal.Decimal) OrderOption {
	return func(r *OrderRequest) {
		r.Price = &price
	}
}

func WithStopPrice(price decimal.Decimal) OrderOption {
	return func(r *OrderRequest) {
		r.StopPrice = &price
	}
}

func WithTimeInForce(tif TimeInForce) OrderOption {
	return func(r *OrderRequest) {
		r.TimeInForce = tif
	}
}

// OrderResult необработанный ответ сервера на создание ордера.
// Возвращается при любом HTTP статусе: отказ площадки не считается ошибкой клиента.
type OrderResult struct {
	StatusCode int
	RefID      string // ref_id, отправленный в запросе
	Raw        json.RawMessage
}

// Err возвращает UpstreamError, если сервер ответил статусом вне 2xx.
func (r *OrderResult) Err() error {
	if r.StatusCode >= 200 && r.StatusCode < 300 {
		return nil
	}
	upstream := &UpstreamError{Status: r.StatusCode, Body: r.Raw}
	return NewError(UpstreamErrorT, upstream).SetEndpoint("Order")
}

// Decode разбирает ответ в v.
func (r *OrderResult) Decode(v any) error {
	if err := json.Unmarshal(r.Raw, v); err != nil {
		return NewError(SerDeErrorT, err).SetEndpoint("Order")
	}
	return nil
}

// Order создает ордер на акцию или криптовалюту. Каждый вызов отправляет ровно
// один запрос с новым ref_id; повторов нет.
// https://api.robinhood.com/orders/
// https://nummus.robinhood.com/orders/
func (c *Client) Order(side Side, asset Asset, amount decimal.Decimal, opts ...OrderOption) (*OrderResult, error) {
	if err := c.requireLogin("Order"); err != nil {
		return nil, err
	}
	req := NewOrderRequest(side, amount, opts...)
	if err := checkOrder(asset, req); err != nil {
		return nil, err.SetEndpoint("Order")
	}
	if req.Price == nil {
		price, err := asset.Price()
		if err != nil {
			return nil, err
		}
		req.Price = &price
	}

	refID := uuid.NewString()
	venue, path, payload := c.composeOrder(asset, req, refID)
	status, raw, err := c.send("Order", c.request(http.MethodPost, path), payload)
	if err != nil {
		return nil, err
	}
	if c.metrics != nil {
		c.metrics.ObserveOrder(venue, string(req.Side), status)
	}
	c.logger.WithFields(logrus.Fields{
		"venue":  venue,
		"symbol": asset.Ticker(),
		"side":   req.Side,
		"type":   req.Type,
		"amount": req.Amount.String(),
		"ref_id": refID,
		"status": status,
	}).Info("order submitted")

	return &OrderResult{
		StatusCode: status,
		RefID:      refID,
		Raw:        json.RawMessage(raw),
	}, nil
}

func (c *Client) Buy(asset Asset, amount decimal.Decimal, opts ...OrderOption) (*OrderResult, error) {
	return c.Order(SideBuy, asset, amount, opts...)
}

func (c *Client) Sell(asset Asset, amount decimal.Decimal, opts ...OrderOption) (*OrderResult, error) {
	return c.Order(SideSell, asset, amount, opts...)
}

// BuySymbol находит актив по символу и создает ордер на покупку.
func (c *Client) BuySymbol(symbol string, amount decimal.Decimal, opts ...OrderOption) (*OrderResult, error) {
	asset, err := c.Asset(symbol)
	if err != nil {
		return nil, err
	}
	return c.Buy(asset, amount, opts...)
}

// SellSymbol находит актив по символу и создает ордер на продажу.
func (c *Client) SellSymbol(symbol string, amount decimal.Decimal, opts ...OrderOption) (*OrderResult, error) {
	asset, err := c.Asset(symbol)
	if err != nil {
		return nil, err
	}
	return c.Sell(asset, amount, opts...)
}

// checkOrder проверяет запрос до любого обращения к сети.
func checkOrder(asset Asset, req *OrderRequest) *Error {
	if isNilAsset(asset) {
		return preconditionf("invalid asset")
	}
	if err := validate.Struct(req); err != nil {
		return NewError(PreconditionErrorT, fmt.Errorf("invalid order request: %w", err))
	}
	if !req.Amount.IsPositive() {
		return preconditionf("amount must be positive, got %s", req.Amount)
	}
	if req.Price != nil && !req.Price.IsPositive() {
		return preconditionf("price must be positive, got %s", req.Price)
	}
	if !asset.IsTradable() {
		return NewError(PreconditionErrorT, fmt.Errorf("%w: %s", ErrNotTradable, asset))
	}

	switch asset.(type) {
	case *Currency:
		if req.Type != OrderMarket && req.Type != OrderLimit {
			return preconditionf("order type %q is not supported for currencies", req.Type)
		}
		if req.StopPrice != nil {
			return preconditionf("stop price is not supported for currencies")
		}
	case *Stock:
		if !req.Amount.RoundBank(0).IsPositive() {
			return preconditionf("amount %s rounds to zero shares", req.Amount)
		}
		_, trigger := equityOrderType(req.Type)
		if trigger == triggerStop && req.StopPrice == nil {
			return preconditionf("stop price is required for %s orders", req.Type)
		}
		if trigger == triggerImmediate && req.StopPrice != nil {
			return preconditionf("stop price is not allowed for %s orders", req.Type)
		}
	default:
		return preconditionf("invalid asset %v", asset)
	}

	return nil
}

func isNilAsset(asset Asset) bool {
	switch a := asset.(type) {
	case nil:
		return true
	case *Currency:
		return a == nil
	case *Stock:
		return a == nil
	}
	return false
}

// equityOrderType сводит тип ордера к паре (type, trigger) API акций.
func equityOrderType(t OrderType) (orderType, trigger string) {
	switch t {
	case OrderStopLoss:
		return string(OrderMarket), triggerStop
	case OrderStopLimit:
		return string(OrderLimit), triggerStop
	case OrderLimit:
		return string(OrderLimit), triggerImmediate
	default:
		return string(OrderMarket), triggerImmediate
	}
}

// composeOrder строит тело запроса и URL для проверенного запроса с заданной ценой.
func (c *Client) composeOrder(asset Asset, req *OrderRequest, refID string) (venue, path string, payload any) {
	switch a := asset.(type) {
	case *Currency:
		return "nummus", c.nummusURL + nummusOrdersPath, &models.CurrencyOrder{
			Type:           string(req.Type),
			Side:           string(req.Side),
			Quantity:       req.Amount.String(),
			AccountID:      c.nummusID,
			CurrencyPairID: a.PairID,
			Price:          req.Price.String(),
			RefID:          refID,
			TimeInForce:    string(req.TimeInForce),
		}
	case *Stock:
		orderType, trigger := equityOrderType(req.Type)
		order := &models.EquityOrder{
			TimeInForce:   string(req.TimeInForce),
			Price:         req.Price.String(),
			Quantity:      req.Amount.RoundBank(0).String(),
			Side:          string(req.Side),
			Trigger:       trigger,
			Type:          orderType,
			Account:       c.accountURL,
			Instrument:    a.InstrumentURL,
			Symbol:        a.Symbol,
			RefID:         refID,
			ExtendedHours: false,
		}
		if req.StopPrice != nil {
			order.StopPrice = req.StopPrice.String()
		}
		return "equities", c.apiURL + ordersPath, order
	}
	panic(fmt.Sprintf("composeOrder: unchecked asset %T", asset))
}
