package config

type Config struct {
	BaseURL  string `env:"ENTITLEMENT_API_URL" envDefault:"http://localhost:18000"`
	ListPath string `env:"ENTITLEMENT_LIST_PATH" envDefault:"/api/entitlements/v1/entitlements"`
	Secret   string `env:"ENTITLEMENT_API_SECRET"`
	Issuer   string `env:"ENTITLEMENT_API_ISSUER" envDefault:"entitlement-support"`
}
