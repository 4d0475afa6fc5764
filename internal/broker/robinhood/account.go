package robinhood

import (
	"strings"

	"github.com/nikita55612/tradinhood/internal/broker/robinhood/models"
	"github.com/shopspring/decimal"
)

// AccountInfo возвращает информацию о брокерском счете.
// https://api.robinhood.com/accounts/{account_number}/
func (c *Client) AccountInfo() (*models.Account, error) {
	if err := c.requireLogin("AccountInfo"); err != nil {
		return nil, err
	}
	var account models.Account
	if err := c.getJSON("AccountInfo", c.accountURL, &account); err != nil {
		return nil, err
	}

	return &account, nil
}

// Holdings возвращает владения на криптовалютной площадке.
// https://nummus.robinhood.com/holdings/
func (c *Client) Holdings() ([]models.Holding, error) {
	if err := c.requireLogin("Holdings"); err != nil {
		return nil, err
	}
	var page models.Page[models.Holding]
	if err := c.getJSON("Holdings", c.nummusURL+holdingsPath, &page); err != nil {
		return nil, err
	}

	return page.Results, nil
}

// Positions возвращает позиции по акциям.
// https://api.robinhood.com/accounts/{account_number}/positions/
func (c *Client) Positions() ([]models.Position, error) {
	if err := c.requireLogin("Positions"); err != nil {
		return nil, err
	}
	var page models.Page[models.Position]
	if err := c.getJSON("Positions", c.accountURL+"positions/", &page); err != nil {
		return nil, err
	}

	return page.Results, nil
}

func (c *Client) WithdrawableCash() (decimal.Decimal, error) {
	account, err := c.AccountInfo()
	if err != nil {
		return decimal.Zero, err
	}
	return account.CashAvailableForWithdrawal, nil
}

func (c *Client) BuyingPower() (decimal.Decimal, error) {
	account, err := c.AccountInfo()
	if err != nil {
		return decimal.Zero, err
	}
	return account.BuyingPower, nil
}

func (c *Client) UnsettledFunds() (decimal.Decimal, error) {
	account, err := c.AccountInfo()
	if err != nil {
		return decimal.Zero, err
	}
	return account.UnsettledFunds, nil
}

// Quantity возвращает количество актива на счете. Если includeHeld, к доступному
// количеству добавляются зарезервированные объемы. Отсутствие актива в
// владениях означает нулевую позицию, а не ошибку.
func (c *Client) Quantity(asset Asset, includeHeld bool) (decimal.Decimal, error) {
	if err := c.requireLogin("Quantity"); err != nil {
		return decimal.Zero, err
	}
	if isNilAsset(asset) {
		return decimal.Zero, preconditionf("invalid asset").SetEndpoint("Quantity")
	}

	switch a := asset.(type) {
	case *Currency:
		holdings, err := c.Holdings()
		if err != nil {
			return decimal.Zero, err
		}
		for _, h := range holdings {
			if h.Currency.Code != a.Code {
				continue
			}
			amt := h.QuantityAvailable
			if includeHeld {
				amt = amt.Add(h.QuantityHeldForBuy).Add(h.QuantityHeldForSell)
			}
			return amt, nil
		}
	case *Stock:
		positions, err := c.Positions()
		if err != nil {
			return decimal.Zero, err
		}
		for _, p := range positions {
			if !strings.Contains(p.Instrument, a.ID) {
				continue
			}
			amt := p.Quantity
			if includeHeld {
				amt = decimal.Sum(amt,
					p.SharesHeldForBuys,
					p.SharesHeldForSells,
					p.SharesHeldForOptionsCollateral,
					p.SharesHeldForOptionsEvents,
					p.SharesHeldForStockGrants,
				)
			}
			return amt, nil
		}
	default:
		return decimal.Zero, preconditionf("invalid asset %v", asset).SetEndpoint("Quantity")
	}

	return decimal.Zero, nil
}

// QuantityOf то же, что Quantity, но принимает символ актива.
func (c *Client) QuantityOf(symbol string, includeHeld bool) (decimal.Decimal, error) {
	asset, err := c.Asset(symbol)
	if err != nil {
		return decimal.Zero, err
	}
	return c.Quantity(asset, includeHeld)
}
