package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

const Prefix = "SHOPBOT"

type Config struct {
	BotToken       string `split_words:"true"`
	Operators      OperatorList
	FilesChannelID int64 `split_words:"true"`
	LogChannelID   int64 `split_words:"true"`

	DBDriver string `envconfig:"DB_DRIVER" default:"sqlite"`
	DBDSN    string `envconfig:"DB_DSN" default:"shopbot.db"`

	LogFile   string `split_words:"true"`
	LogDebug  bool   `split_words:"true" default:"false"`
	LogPretty bool   `split_words:"true" default:"false"`

	HTTPAddr       string `envconfig:"HTTP_ADDR" default:":8081"`
	WebhookURL     string `split_words:"true"`
	WebhookSecret  string `split_words:"true"`
	AdminTokenHash string `split_words:"true"` // bcrypt hash of the admin API bearer token

	SessionBackend string        `split_words:"true" default:"memory"`
	SessionTTL     time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	RedisAddr      string        `split_words:"true" default:"localhost:6379"`
	RedisPassword  string        `split_words:"true"`
	RedisDB        int           `envconfig:"REDIS_DB" default:"0"`

	SendRate float64 `split_words:"true" default:"25"`

	WBStoreURL   string `envconfig:"WB_STORE_URL"`
	OzonStoreURL string `envconfig:"OZON_STORE_URL"`
	YMStoreURL   string `envconfig:"YM_STORE_URL"`
}

// Load reads SHOPBOT_* variables, exporting envFile first when given
// (or ./.env when it exists).
func Load(envFile string) (Config, error) {
	cfg, err := New[Config](Prefix, envFile)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return *cfg, nil
}

// RequireBot checks the settings only the bot process needs.
func (c Config) RequireBot() error {
	if c.BotToken == "" {
		return errors.New(Prefix + "_BOT_TOKEN is required")
	}
	if len(c.Operators) == 0 {
		return errors.New(Prefix + "_OPERATORS must list at least one operator id")
	}
	return nil
}

func (c Config) Validate() error {
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported db driver %q", c.DBDriver)
	}
	switch c.SessionBackend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unsupported session backend %q", c.SessionBackend)
	}
	if c.WebhookURL != "" && c.WebhookSecret == "" {
		return errors.New("webhook secret is required in webhook mode")
	}
	if c.SendRate <= 0 {
		return errors.New("send rate must be positive")
	}
	return nil
}

// OperatorList is the ordered operator allow-list, parsed from "1, 2, 3".
type OperatorList []int64

func (l *OperatorList) Decode(value string) error {
	var out OperatorList
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return fmt.Errorf("operator id %q: %w", part, err)
		}
		out = append(out, id)
	}
	*l = out
	return nil
}

// Contains reports whether id is in the list.
func (l OperatorList) Contains(id int64) bool {
	for _, op := range l {
		if op == id {
			return true
		}
	}
	return false
}

func New[T any](prefix, envFile string) (*T, error) {
	envFile = strings.TrimSpace(envFile)
	if envFile != "" {
		if err := exportEnvironment(envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	} else if err := exportEnvironmentIfExists(".env"); err != nil {
		return nil, fmt.Errorf("failed to load default env file: %w", err)
	}

	var conf T
	if err := envconfig.Process(prefix, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

func exportEnvironmentIfExists(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if info.IsDir() {
		return nil
	}
	return exportEnvironment(path)
}

// exportEnvironment copies keys from the file into the process environment
// without overriding variables that are already set.
func exportEnvironment(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	for k, val := range v.AllSettings() {
		key := strings.ToUpper(k)
		if _, set := os.LookupEnv(key); set {
			continue
		}
		if err := os.Setenv(key, fmt.Sprint(val)); err != nil {
			return err
		}
	}
	return nil
}
