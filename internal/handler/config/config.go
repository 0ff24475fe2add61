package config

import "time"

type Config struct {
	ServerAddr string        `env:"RUN_ADDRESS" envDefault:":8080"`
	SubmitWait time.Duration `env:"SUBMIT_WAIT" envDefault:"2s"`
}
