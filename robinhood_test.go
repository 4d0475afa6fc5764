package main_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/nikita55612/tradinhood/internal/broker/robinhood"
	"github.com/nikita55612/tradinhood/internal/config"
	"github.com/stretchr/testify/require"
)

// Тесты ходят в настоящий API и выполняются только при наличии учетных данных.
func newLiveClient(t *testing.T) *robinhood.Client {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	if cfg.Robinhood.Token == "" {
		t.Skip("ROBINHOOD_TOKEN is not set")
	}
	cli, err := robinhood.NewClient(robinhood.WithTimeout(cfg.Timeout()), robinhood.WithProxy(cfg.Robinhood.Proxy))
	require.NoError(t, err)
	require.NoError(t, cli.LoginWithToken(cfg.Robinhood.Token,
		robinhood.WithAccountNumber(cfg.Robinhood.AccountNumber),
		robinhood.WithNummusID(cfg.Robinhood.NummusID),
	))
	return cli
}

func TestLiveAccountInfo(t *testing.T) {
	cli := newLiveClient(t)
	account, err := cli.AccountInfo()
	require.NoError(t, err)
	data, _ := json.MarshalIndent(account, "", "    ")
	fmt.Println(string(data))
}

func TestLiveQuotes(t *testing.T) {
	cli := newLiveClient(t)
	b := cli.BrokerImpl()
	for _, symbol := range []string{"BTC", "AAPL"} {
		quote, err := b.GetQuote(symbol)
		require.NoError(t, err)
		fmt.Println(string(quote))
	}
}

func TestLiveQuantity(t *testing.T) {
	cli := newLiveClient(t)
	qty, err := cli.QuantityOf("BTC", true)
	require.NoError(t, err)
	fmt.Println("BTC", qty)
}
