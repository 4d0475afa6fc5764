package robinhood

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nikita55612/httpx"
	"github.com/sirupsen/logrus"
)

const (
	APIURL    = "https://api.robinhood.com"
	NummusURL = "https://nummus.robinhood.com"

	oauthClientID = "c82SH0WZOsabOXGP2sxqcj34FxkvfnWRZBKlBjFS"
	apiVersion    = "1.221.0"
	userAgent     = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/67.0.3396.99 Safari/537.36"
)

// Пути относительно APIURL
const (
	tokenPath       = "/oauth2/token/"
	accountsPath    = "/accounts/"
	instrumentsPath = "/instruments/"
	quotesPath      = "/quotes/"
	ordersPath      = "/orders/"
	forexQuotesPath = "/marketdata/forex/quotes/"
)

// Пути относительно NummusURL
const (
	nummusAccountsPath = "/accounts/"
	nummusOrdersPath   = "/orders/"
	holdingsPath       = "/holdings/"
	currencyPairsPath  = "/currency_pairs/"
)

var defaultHeaders = map[string]string{
	"Accept":                  "*/*",
	"Accept-Language":         "en-US,en;q=0.9",
	"User-Agent":              userAgent,
	"Connection":              "keep-alive",
	"X-Robinhood-API-Version": apiVersion,
}

// Metrics принимает наблюдения о вызовах API и отправленных ордерах.
type Metrics interface {
	ObserveRequest(endpoint string, status int, duration time.Duration)
	ObserveOrder(venue, side string, status int)
}

// Client сессия работы с приватным API Robinhood.
// Клиент рассчитан на использование из одной горутины: состояние авторизации
// не синхронизировано.
type Client struct {
	apiURL    string          // базовый URL API акций
	nummusURL string          // базовый URL криптовалютной площадки
	ctx       context.Context // контекст для выполнения запросов
	timeout   time.Duration   // таймаут HTTP-запросов
	proxyAddr string          // адрес SOCKS5 прокси (host:port или URL)
	proxyURL  string
	logger    *logrus.Entry
	metrics   Metrics

	token         string
	accountNumber string
	nummusID      string
	accountURL    string
	loggedIn      bool

	currencies *catalog[*Currency]
	stocks     *catalog[*Stock]
}

// NewClient создает клиента и загружает список криптовалютных пар.
// Принимает опциональные параметры конфигурации через Option функции.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		apiURL:     APIURL,
		nummusURL:  NummusURL,
		timeout:    30 * time.Second,
		logger:     logrus.NewEntry(logrus.StandardLogger()),
		currencies: newCatalog[*Currency](),
		stocks:     newCatalog[*Stock](),
	}
	for _, option := range opts {
		option(c)
	}
	c.logger = c.logger.WithField("broker", "robinhood")

	if c.proxyAddr != "" {
		proxyURL, err := socksURL(c.proxyAddr)
		if err != nil {
			return nil, NewError(InternalErrorT, err).SetEndpoint("NewClient")
		}
		c.proxyURL = proxyURL
	}

	if err := c.loadCurrencies(); err != nil {
		return nil, err
	}

	return c, nil
}

// Option определяет тип функции для настройки Client
type Option func(*Client)

// WithContext устанавливает контекст для выполнения запросов
func WithContext(ctx context.Context) Option {
	return func(c *Client) {
		c.ctx = ctx
	}
}

// WithTimeout устанавливает таймаут для HTTP-запросов
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithBaseURL устанавливает пользовательский базовый URL API акций
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.apiURL = url
	}
}

// WithNummusURL устанавливает пользовательский базовый URL криптовалютной площадки
func WithNummusURL(url string) Option {
	return func(c *Client) {
		c.nummusURL = url
	}
}

// WithProxy направляет все запросы через SOCKS5 прокси
func WithProxy(addr string) Option {
	return func(c *Client) {
		c.proxyAddr = addr
	}
}

func WithLogger(logger *logrus.Entry) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithMetrics(m Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

func (c *Client) LoggedIn() bool {
	return c.loggedIn
}

func (c *Client) AccountNumber() string {
	return c.accountNumber
}

// NummusID возвращает идентификатор счета криптовалютной площадки
func (c *Client) NummusID() string {
	return c.nummusID
}

func (c *Client) AccountURL() string {
	return c.accountURL
}

func (c *Client) requireLogin(endpoint string) error {
	if !c.loggedIn {
		return NewError(PreconditionErrorT, ErrNotLoggedIn).SetEndpoint(endpoint)
	}
	return nil
}

// request начинает запрос со статическими заголовками, токеном и
// настройками клиента.
func (c *Client) request(method, url string) httpx.RequestBuilder {
	req := httpx.NewRequestBuilder(method, url)
	for k, v := range defaultHeaders {
		req = req.WithHeader(k, v)
	}
	if c.token != "" {
		req = req.WithHeader("Authorization", "Bearer "+c.token)
	}
	if c.ctx != nil {
		req = req.WithContext(c.ctx)
	}
	if c.timeout > 0 {
		req = req.WithTimeout(c.timeout)
	}
	if c.proxyURL != "" {
		req = req.WithProxy(c.proxyURL)
	}
	return req
}

// send выполняет запрос и возвращает статус и тело ответа при любом HTTP статусе.
func (c *Client) send(endpoint string, req httpx.RequestBuilder, body any) (int, []byte, error) {
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, NewError(SerDeErrorT, err).SetEndpoint(endpoint)
		}
		req = req.WithHeader("Content-Type", "application/json").WithData(data)
	}

	start := time.Now()
	res, err := req.Build().Do()
	if err != nil {
		c.observe(endpoint, 0, time.Since(start))
		c.logger.WithError(err).WithField("endpoint", endpoint).Warn("request failed")
		return 0, nil, NewError(RequestErrorT, err).SetEndpoint(endpoint)
	}
	defer res.Close()

	raw, err := res.ReadBody()
	duration := time.Since(start)
	c.observe(endpoint, res.StatusCode, duration)
	if err != nil {
		return 0, nil, NewError(RequestErrorT, err).SetEndpoint(endpoint)
	}
	c.logger.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"status":   res.StatusCode,
		"duration": duration,
	}).Debug("api call")

	return res.StatusCode, raw, nil
}

// callAPI выполняет запрос и декодирует успешный ответ в result.
func (c *Client) callAPI(endpoint string, req httpx.RequestBuilder, body, result any) error {
	status, raw, err := c.send(endpoint, req, body)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		upstream := &UpstreamError{Status: status, Body: raw}
		return NewError(UpstreamErrorT, upstream).SetEndpoint(endpoint)
	}
	if result != nil {
		if err := json.Unmarshal(raw, result); err != nil {
			return NewError(SerDeErrorT, err).SetEndpoint(endpoint)
		}
	}
	return nil
}

// getJSON выполняет GET запрос. Используется активами для получения котировок.
func (c *Client) getJSON(endpoint, url string, result any) error {
	return c.callAPI(endpoint, c.request(http.MethodGet, url), nil, result)
}

func (c *Client) observe(endpoint string, status int, duration time.Duration) {
	if c.metrics != nil {
		c.metrics.ObserveRequest(endpoint, status, duration)
	}
}

// socksURL приводит host:port к URL SOCKS5 прокси.
func socksURL(addr string) (string, error) {
	if !strings.Contains(addr, "://") {
		addr = "socks5://" + addr
	}
	u, err := url.Parse(addr)
	if err != nil {
		return "", fmt.Errorf("invalid proxy address: %w", err)
	}
	if u.Scheme != "socks5" && u.Scheme != "socks5h" {
		return "", fmt.Errorf("unsupported proxy scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("proxy address %q has no host", addr)
	}
	return u.String(), nil
}
