package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	authConfig "github.com/iurnickita/entitlementsupport/internal/auth/config"
	clientConfig "github.com/iurnickita/entitlementsupport/internal/entitlementclient/config"
	handlerConfig "github.com/iurnickita/entitlementsupport/internal/handler/config"
	journalConfig "github.com/iurnickita/entitlementsupport/internal/journal/config"
	loggerConfig "github.com/iurnickita/entitlementsupport/internal/logger/config"
)

type Config struct {
	Handler handlerConfig.Config
	Client  clientConfig.Config
	Journal journalConfig.Config
	Auth    authConfig.Config
	Logger  loggerConfig.Config
}

func GetConfig() (Config, error) {
	return Load(".env", os.Args[1:])
}

// Load читает конфигурацию: значения по умолчанию, файл dotenv,
// переменные окружения, флаги. Каждый следующий источник важнее.
func Load(dotenv string, args []string) (Config, error) {
	var cfg Config

	// файл не обязателен, уже заданные переменные окружения он не меняет
	if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load %s: %w", dotenv, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	flags := pflag.NewFlagSet("entitlementsupport", pflag.ContinueOnError)
	flags.StringVarP(&cfg.Handler.ServerAddr, "address", "a", cfg.Handler.ServerAddr, "panel listen address")
	flags.DurationVar(&cfg.Handler.SubmitWait, "submit-wait", cfg.Handler.SubmitWait, "how long a form submit waits for the entitlement API")
	flags.StringVar(&cfg.Client.BaseURL, "api-url", cfg.Client.BaseURL, "entitlement API base URL")
	flags.StringVar(&cfg.Client.ListPath, "api-list-path", cfg.Client.ListPath, "entitlement list endpoint path")
	flags.StringVar(&cfg.Client.Secret, "api-secret", cfg.Client.Secret, "secret for entitlement API tokens")
	flags.StringVar(&cfg.Client.Issuer, "api-issuer", cfg.Client.Issuer, "issuer of entitlement API tokens")
	flags.StringVar(&cfg.Auth.SessionSecret, "session-secret", cfg.Auth.SessionSecret, "secret for staff session tokens, empty disables auth")
	flags.StringVarP(&cfg.Journal.DBDsn, "database-dsn", "d", cfg.Journal.DBDsn, "support journal database DSN, empty disables the journal")
	flags.StringVarP(&cfg.Logger.LogLevel, "log-level", "l", cfg.Logger.LogLevel, "log level")
	if err := flags.Parse(args); err != nil {
		return cfg, err
	}

	return cfg, nil
}
