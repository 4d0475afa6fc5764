package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/nikita55612/tradinhood/internal/utils/logger"
	"github.com/nikita55612/tradinhood/internal/utils/tools"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "./config.yaml"
	DefaultEnvPath    = ".env"
)

// Robinhood параметры подключения и авторизации
type Robinhood struct {
	Username      string `yaml:"username"`
	Password      string `yaml:"password"`
	Token         string `yaml:"token"`          // ранее выданный токен, если задан, логин и пароль не нужны
	AccountNumber string `yaml:"account_number"` // пусто: первый счет из списка
	NummusID      string `yaml:"nummus_id"`      // пусто: первый nummus счет из списка
	APIURL        string `yaml:"api_url"`
	NummusURL     string `yaml:"nummus_url"`
	Proxy         string `yaml:"proxy"` // SOCKS5 host:port
	TimeoutSecs   int    `yaml:"timeout_secs"`
}

type Metrics struct {
	Addr string `yaml:"addr"` // пусто: метрики не публикуются
}

type Config struct {
	Robinhood Robinhood     `yaml:"robinhood"`
	Log       logger.Config `yaml:"log"`
	Metrics   Metrics       `yaml:"metrics"`
	Watch     []string      `yaml:"watch"` // символы для вывода котировок и позиций
}

func Default() *Config {
	return &Config{
		Robinhood: Robinhood{
			APIURL:      "https://api.robinhood.com",
			NummusURL:   "https://nummus.robinhood.com",
			TimeoutSecs: 30,
		},
		Log: logger.Config{
			Level:      "info",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     7,
		},
	}
}

// Load читает YAML файл поверх значений по умолчанию, затем применяет
// переменные окружения (включая .env). Отсутствующий файл не считается ошибкой.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}
	cfg := Default()
	if tools.PathExists(path) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "decode config %s", path)
		}
	}
	if tools.PathExists(DefaultEnvPath) {
		if err := godotenv.Load(DefaultEnvPath); err != nil {
			return nil, errors.Wrap(err, "load .env")
		}
	}
	cfg.applyEnv()

	return cfg, nil
}

func (c *Config) applyEnv() {
	r := &c.Robinhood
	r.Username = tools.FirstNonEmpty(os.Getenv("ROBINHOOD_USERNAME"), r.Username)
	r.Password = tools.FirstNonEmpty(os.Getenv("ROBINHOOD_PASSWORD"), r.Password)
	r.Token = tools.FirstNonEmpty(os.Getenv("ROBINHOOD_TOKEN"), r.Token)
	r.AccountNumber = tools.FirstNonEmpty(os.Getenv("ROBINHOOD_ACCOUNT_NUMBER"), r.AccountNumber)
	r.NummusID = tools.FirstNonEmpty(os.Getenv("ROBINHOOD_NUMMUS_ID"), r.NummusID)
	r.Proxy = tools.FirstNonEmpty(os.Getenv("ROBINHOOD_PROXY"), r.Proxy)
	c.Log.Level = tools.FirstNonEmpty(os.Getenv("LOG_LEVEL"), c.Log.Level)
	c.Metrics.Addr = tools.FirstNonEmpty(os.Getenv("METRICS_ADDR"), c.Metrics.Addr)
	if watch := os.Getenv("ROBINHOOD_WATCH"); watch != "" {
		c.Watch = strings.Split(watch, ",")
	}
}

// Timeout таймаут HTTP-запросов
func (c *Config) Timeout() time.Duration {
	if c.Robinhood.TimeoutSecs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Robinhood.TimeoutSecs) * time.Second
}

// HasCredentials сообщает, достаточно ли данных для входа без запроса пароля.
func (c *Config) HasCredentials() bool {
	r := c.Robinhood
	return r.Token != "" || (r.Username != "" && r.Password != "")
}
