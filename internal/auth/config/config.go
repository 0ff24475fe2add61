package config

type Config struct {
	SessionSecret string `env:"SESSION_SECRET"`
}
