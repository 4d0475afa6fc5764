package robinhood

import (
	"errors"
	"net/http"

	"github.com/nikita55612/tradinhood/internal/broker/robinhood/models"
)

const tokenLifetime = 86400

// LoginOption задает явные идентификаторы счетов вместо первых из списка.
type LoginOption func(*loginOptions)

type loginOptions struct {
	accountNumber string
	nummusID      string
}

func WithAccountNumber(accountNumber string) LoginOption {
	return func(o *loginOptions) {
		o.accountNumber = accountNumber
	}
}

func WithNummusID(nummusID string) LoginOption {
	return func(o *loginOptions) {
		o.nummusID = nummusID
	}
}

// Login обменивает логин и пароль на bearer токен и определяет счета.
// https://api.robinhood.com/oauth2/token/
func (c *Client) Login(username, password string, opts ...LoginOption) error {
	if username == "" || password == "" {
		return preconditionf("username and password are required").SetEndpoint("Login")
	}
	body := &models.TokenRequest{
		ClientID:  oauthClientID,
		ExpiresIn: tokenLifetime,
		GrantType: "password",
		Scope:     "internal",
		Username:  username,
		Password:  password,
	}
	var token models.TokenResponse
	if err := c.callAPI("Login", c.request(http.MethodPost, c.apiURL+tokenPath), body, &token); err != nil {
		return err
	}
	if token.AccessToken == "" {
		return NewError(AuthErrorT, ErrNoAccessToken).SetEndpoint("Login")
	}

	return c.authorize(token.AccessToken, opts)
}

// LoginWithToken использует ранее выданный токен без обмена учетных данных.
func (c *Client) LoginWithToken(token string, opts ...LoginOption) error {
	if token == "" {
		return preconditionf("token is required").SetEndpoint("LoginWithToken")
	}
	return c.authorize(token, opts)
}

func (c *Client) authorize(token string, opts []LoginOption) error {
	var o loginOptions
	for _, option := range opts {
		option(&o)
	}

	c.token = token
	c.loggedIn = true
	if err := c.loadAuth(o.accountNumber, o.nummusID); err != nil {
		c.logout()
		return err
	}
	c.logger.WithField("account", c.accountNumber).Info("logged in")

	return nil
}

// loadAuth определяет номер брокерского счета и идентификатор nummus счета.
func (c *Client) loadAuth(accountNumber, nummusID string) error {
	if accountNumber == "" {
		var page models.Page[models.Account]
		if err := c.getJSON("LoadAccounts", c.apiURL+accountsPath, &page); err != nil {
			return err
		}
		if len(page.Results) == 0 {
			return NewError(AuthErrorT, errors.New("no brokerage accounts")).SetEndpoint("LoadAccounts")
		}
		accountNumber = page.Results[0].AccountNumber
	}
	if nummusID == "" {
		var page models.Page[models.NummusAccount]
		if err := c.getJSON("LoadNummusAccounts", c.nummusURL+nummusAccountsPath, &page); err != nil {
			return err
		}
		if len(page.Results) == 0 {
			return NewError(AuthErrorT, errors.New("no nummus accounts")).SetEndpoint("LoadNummusAccounts")
		}
		nummusID = page.Results[0].ID
	}

	c.accountNumber = accountNumber
	c.accountURL = c.apiURL + accountsPath + accountNumber + "/"
	c.nummusID = nummusID

	return nil
}

func (c *Client) logout() {
	c.token = ""
	c.loggedIn = false
	c.accountNumber = ""
	c.accountURL = ""
	c.nummusID = ""
}
