package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/nikita55612/tradinhood/internal/broker/robinhood"
	"github.com/nikita55612/tradinhood/internal/config"
	"github.com/nikita55612/tradinhood/internal/metrics"
	"github.com/nikita55612/tradinhood/internal/utils/logger"
	"github.com/nikita55612/tradinhood/internal/utils/tools"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

var (
	configPath = flag.String("config", config.DefaultConfigPath, "path to config file")
	side       = flag.String("side", "", "place an order: buy or sell")
	symbol     = flag.String("symbol", "", "order symbol (BTC, AAPL, ...)")
	qty        = flag.String("qty", "", "order quantity")
	orderType  = flag.String("type", string(robinhood.OrderMarket), "market, limit, stoploss or stoplimit")
	price      = flag.String("price", "", "order price (defaults to current quote)")
	stopPrice  = flag.String("stop", "", "stop price for stoploss and stoplimit")
	tif        = flag.String("tif", string(robinhood.GoodTilCanceled), "time in force: gtc, gfd, ioc or opg")
)

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Error("tradinhood stopped")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	collector := metrics.NewCollector()
	reg := prometheus.NewRegistry()
	if err := collector.Register(reg); err != nil {
		return err
	}
	if cfg.Metrics.Addr != "" {
		srv := metrics.Serve(cfg.Metrics.Addr, reg)
		defer srv.Close()
		log.WithField("addr", cfg.Metrics.Addr).Info("metrics enabled")
	}

	r := cfg.Robinhood
	cli, err := robinhood.NewClient(
		robinhood.WithContext(ctx),
		robinhood.WithTimeout(cfg.Timeout()),
		robinhood.WithBaseURL(r.APIURL),
		robinhood.WithNummusURL(r.NummusURL),
		robinhood.WithProxy(r.Proxy),
		robinhood.WithLogger(logrus.NewEntry(log)),
		robinhood.WithMetrics(collector),
	)
	if err != nil {
		return err
	}
	if err := login(cli, cfg); err != nil {
		return err
	}

	account, err := cli.AccountInfo()
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"account":      account.AccountNumber,
		"buying_power": account.BuyingPower.String(),
		"withdrawable": account.CashAvailableForWithdrawal.String(),
		"unsettled":    account.UnsettledFunds.String(),
	}).Info("account")

	b := cli.BrokerImpl()
	for _, s := range cfg.Watch {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		quote, err := b.GetQuote(s)
		if err != nil {
			log.WithError(err).WithField("symbol", s).Warn("quote unavailable")
			continue
		}
		held, err := b.GetQuantity(s, true)
		if err != nil {
			log.WithError(err).WithField("symbol", s).Warn("quantity unavailable")
			continue
		}
		fmt.Printf("%s quantity=%s quote=%s\n", s, held, quote)
	}

	if *side == "" {
		return nil
	}
	return placeOrder(cli, log)
}

func login(cli *robinhood.Client, cfg *config.Config) error {
	r := cfg.Robinhood
	opts := []robinhood.LoginOption{
		robinhood.WithAccountNumber(r.AccountNumber),
		robinhood.WithNummusID(r.NummusID),
	}
	if r.Token != "" {
		return cli.LoginWithToken(r.Token, opts...)
	}

	username, password := r.Username, r.Password
	if cfg.HasCredentials() {
		return cli.Login(username, password, opts...)
	}
	if username == "" {
		fmt.Print("Username: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return err
		}
		username = strings.TrimSpace(line)
	}
	if password == "" {
		fmt.Print("Password: ")
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return err
		}
		password = string(secret)
	}

	return cli.Login(username, password, opts...)
}

func placeOrder(cli *robinhood.Client, log *logrus.Logger) error {
	amount, err := decimal.NewFromString(*qty)
	if err != nil {
		return fmt.Errorf("invalid -qty %q: %w", *qty, err)
	}
	limit, err := tools.ParseOptionalDecimal(*price)
	if err != nil {
		return err
	}
	trigger, err := tools.ParseOptionalDecimal(*stopPrice)
	if err != nil {
		return err
	}

	opts := []robinhood.OrderOption{
		robinhood.WithOrderType(robinhood.OrderType(*orderType)),
		robinhood.WithTimeInForce(robinhood.TimeInForce(*tif)),
	}
	if limit != nil {
		opts = append(opts, robinhood.WithPrice(*limit))
	}
	if trigger != nil {
		opts = append(opts, robinhood.WithStopPrice(*trigger))
	}

	asset, err := cli.Asset(*symbol)
	if err != nil {
		return err
	}
	res, err := cli.Order(robinhood.Side(*side), asset, amount, opts...)
	if err != nil {
		return err
	}
	fmt.Println(string(res.Raw))
	if err := res.Err(); err != nil {
		log.WithField("ref_id", res.RefID).Warn("order rejected")
		return err
	}

	return nil
}
