package models

import "github.com/shopspring/decimal"

// Page страница списка, которую возвращают эндпоинты вида /accounts/, /holdings/ и т.д.
type Page[T any] struct {
	Next     *string `json:"next"`     // URL следующей страницы (nil, если страница последняя)
	Previous *string `json:"previous"` // URL предыдущей страницы
	Results  []T     `json:"results"`  // Элементы страницы
}

// TokenRequest тело запроса на обмен логина и пароля на токен (password grant)
type TokenRequest struct {
	ClientID  string `json:"client_id"`  // Идентификатор OAuth клиента
	ExpiresIn int    `json:"expires_in"` // Запрошенное время жизни токена в секундах
	GrantType string `json:"grant_type"` // Всегда "password"
	Scope     string `json:"scope"`      // Всегда "internal"
	Username  string `json:"username"`
	Password  string `json:"password"`
}

// TokenResponse ответ эндпоинта /oauth2/token/
type TokenResponse struct {
	AccessToken  string `json:"access_token"`  // Bearer токен
	RefreshToken string `json:"refresh_token"` // Токен обновления
	ExpiresIn    int    `json:"expires_in"`    // Время жизни в секундах
	TokenType    string `json:"token_type"`    // Обычно "Bearer"
	Scope        string `json:"scope"`
	MFARequired  bool   `json:"mfa_required"` // Требуется ли второй фактор
}

// Account брокерский счет для торговли акциями
type Account struct {
	URL                        string          `json:"url"`                           // Ссылка на счет
	AccountNumber              string          `json:"account_number"`                // Номер счета
	Type                       string          `json:"type"`                          // cash, margin
	Cash                       decimal.Decimal `json:"cash"`                          // Денежные средства
	BuyingPower                decimal.Decimal `json:"buying_power"`                  // Покупательная способность
	CashAvailableForWithdrawal decimal.Decimal `json:"cash_available_for_withdrawal"` // Доступно к выводу
	UnsettledFunds             decimal.Decimal `json:"unsettled_funds"`               // Средства в процессе расчетов
	UnclearedDeposits          decimal.Decimal `json:"uncleared_deposits"`            // Непроведенные депозиты
	Positions                  string          `json:"positions"`                     // Ссылка на позиции счета
	Deactivated                bool            `json:"deactivated"`
	CreatedAt                  string          `json:"created_at"`
	UpdatedAt                  string          `json:"updated_at"`
}

// NummusAccount счет площадки криптовалют
type NummusAccount struct {
	ID        string `json:"id"`      // Идентификатор счета
	UserID    string `json:"user_id"` // Идентификатор пользователя
	Status    string `json:"status"`  // active, ...
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// HoldingCurrency валюта, к которой относится криптовалютное владение
type HoldingCurrency struct {
	ID   string `json:"id"`
	Code string `json:"code"` // Код валюты (например BTC)
	Name string `json:"name"`
	Type string `json:"type"` // cryptocurrency
}

// Holding владение криптовалютой
type Holding struct {
	ID                  string          `json:"id"`
	AccountID           string          `json:"account_id"`
	Currency            HoldingCurrency `json:"currency"`
	Quantity            decimal.Decimal `json:"quantity"`               // Общее количество
	QuantityAvailable   decimal.Decimal `json:"quantity_available"`     // Доступно для новых ордеров
	QuantityHeldForBuy  decimal.Decimal `json:"quantity_held_for_buy"`  // Зарезервировано под покупки
	QuantityHeldForSell decimal.Decimal `json:"quantity_held_for_sell"` // Зарезервировано под продажи
	CreatedAt           string          `json:"created_at"`
	UpdatedAt           string          `json:"updated_at"`
}

// Position позиция по акции
type Position struct {
	URL                            string          `json:"url"`
	Account                        string          `json:"account"`    // Ссылка на счет
	Instrument                     string          `json:"instrument"` // Ссылка на инструмент
	Quantity                       decimal.Decimal `json:"quantity"`
	AverageBuyPrice                decimal.Decimal `json:"average_buy_price"`
	SharesHeldForBuys              decimal.Decimal `json:"shares_held_for_buys"`
	SharesHeldForSells             decimal.Decimal `json:"shares_held_for_sells"`
	SharesHeldForOptionsCollateral decimal.Decimal `json:"shares_held_for_options_collateral"`
	SharesHeldForOptionsEvents     decimal.Decimal `json:"shares_held_for_options_events"`
	SharesHeldForStockGrants       decimal.Decimal `json:"shares_held_for_stock_grants"`
	CreatedAt                      string          `json:"created_at"`
	UpdatedAt                      string          `json:"updated_at"`
}
